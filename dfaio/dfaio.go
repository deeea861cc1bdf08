// Package dfaio persists a minimized DFA to and from the compact text
// format, so a DFA built once can be reused without re-running the
// regex/Thompson/subset-construction/minimization pipeline.
package dfaio

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/shadowCow/lexparse-go/automata"
)

// Format, one field per line:
//   1. number of states
//   2. start state id
//   3. comma-separated sorted accept state ids
//   4. comma-separated sorted alphabet symbols
//   5. one `from,symbol,to` line per transition, sorted by from then
//      symbol; the file ends after the last transition line.

// Write serializes d in the compact text format.
func Write(w io.Writer, d *automata.DFA) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%d\n", len(d.States))
	fmt.Fprintf(bw, "%d\n", d.Start)

	var acceptIDs []int
	for id, st := range d.States {
		if st.Accepting {
			acceptIDs = append(acceptIDs, int(id))
		}
	}
	sort.Ints(acceptIDs)
	acceptParts := make([]string, len(acceptIDs))
	for i, id := range acceptIDs {
		acceptParts[i] = strconv.Itoa(id)
	}
	fmt.Fprintf(bw, "%s\n", strings.Join(acceptParts, ","))

	var alphabet []rune
	for r := range d.Alphabet {
		alphabet = append(alphabet, r)
	}
	sort.Slice(alphabet, func(i, j int) bool { return alphabet[i] < alphabet[j] })
	alphabetParts := make([]string, len(alphabet))
	for i, r := range alphabet {
		alphabetParts[i] = string(r)
	}
	fmt.Fprintf(bw, "%s\n", strings.Join(alphabetParts, ","))

	var stateIDs []int
	for id := range d.States {
		stateIDs = append(stateIDs, int(id))
	}
	sort.Ints(stateIDs)

	type transition struct {
		from int
		sym  rune
		to   int
	}
	var transitions []transition
	for _, from := range stateIDs {
		st := d.States[automata.StateID(from)]
		var runes []rune
		for r := range st.Transitions {
			runes = append(runes, r)
		}
		sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
		for _, r := range runes {
			transitions = append(transitions, transition{from, r, int(st.Transitions[r])})
		}
	}
	for _, tr := range transitions {
		fmt.Fprintf(bw, "%d,%c,%d\n", tr.from, tr.sym, tr.to)
	}

	return bw.Flush()
}

// Read parses the compact text format back into a DFA.
func Read(r io.Reader) (*automata.DFA, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) < 4 {
		return nil, fmt.Errorf("dfaio: expected at least 4 lines, got %d", len(lines))
	}

	stateCount, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return nil, fmt.Errorf("dfaio: bad state count: %w", err)
	}

	start, err := strconv.Atoi(strings.TrimSpace(lines[1]))
	if err != nil {
		return nil, fmt.Errorf("dfaio: bad start state: %w", err)
	}

	d := automata.NewDFA()
	for i := 0; i < stateCount; i++ {
		d.AddState(nil)
	}
	d.Start = automata.StateID(start)

	acceptField := strings.TrimSpace(lines[2])
	if acceptField != "" {
		for _, part := range strings.Split(acceptField, ",") {
			id, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("dfaio: bad accept state id %q: %w", part, err)
			}
			st, ok := d.States[automata.StateID(id)]
			if !ok {
				return nil, fmt.Errorf("dfaio: accept state %d out of range", id)
			}
			st.Accepting = true
		}
	}

	alphabetField := strings.TrimSpace(lines[3])
	if alphabetField != "" {
		for _, part := range strings.Split(alphabetField, ",") {
			runes := []rune(part)
			if len(runes) != 1 {
				return nil, fmt.Errorf("dfaio: malformed alphabet symbol %q", part)
			}
			d.Alphabet[runes[0]] = true
		}
	}

	for i, line := range lines[4:] {
		fields := strings.SplitN(line, ",", 3)
		if len(fields) != 3 {
			return nil, fmt.Errorf("dfaio: malformed transition line %d %q", i+5, line)
		}
		from, err1 := strconv.Atoi(fields[0])
		to, err2 := strconv.Atoi(fields[2])
		symRunes := []rune(fields[1])
		if err1 != nil || err2 != nil || len(symRunes) != 1 {
			return nil, fmt.Errorf("dfaio: malformed transition line %d %q", i+5, line)
		}
		st, ok := d.States[automata.StateID(from)]
		if !ok {
			return nil, fmt.Errorf("dfaio: transition source state %d out of range", from)
		}
		st.Transitions[symRunes[0]] = automata.StateID(to)
		d.Alphabet[symRunes[0]] = true
	}

	return d, nil
}
