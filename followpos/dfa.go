package followpos

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shadowCow/lexparse-go/automata"
)

func sortedPositions(set map[Position]bool) []automata.StateID {
	ids := make([]automata.StateID, 0, len(set))
	for p := range set {
		ids = append(ids, automata.StateID(p))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func positionKey(ids []automata.StateID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(int(id))
	}
	return strings.Join(parts, ",")
}

// acceptInfoFor resolves which pattern (if any) a DFA state formed from the
// given set of followpos positions accepts, breaking ties by lowest
// Priority, the same rule automata.SubsetConstruct applies to NFA accept
// states.
func acceptInfoFor(t *Table, positions map[Position]bool) (string, bool) {
	best := AcceptInfo{Priority: -1}
	found := false
	for p := range positions {
		leaf := t.Leaves[p]
		if leaf == nil || leaf.Accept == nil {
			continue
		}
		if !found || leaf.Accept.Priority < best.Priority {
			best = *leaf.Accept
			found = true
		}
	}
	return best.PatternName, found
}

// BuildDFA constructs a DFA directly from tree's followpos table, without
// ever building an NFA: the start state is firstpos(root); from a state
// (a set of positions), the transition on rune r goes to the union of
// followpos(p) for every position p in the state whose leaf symbol is r.
// State identity is the sorted position-set tuple, mirroring
// automata.SubsetConstruct's NFA-state-set canonicalization.
func BuildDFA(tree Node) *automata.DFA {
	t := Compute(tree)

	symbolPositions := make(map[rune]map[Position]bool)
	for pos, leaf := range t.Leaves {
		if leaf.Symbol == EndMarker {
			continue
		}
		if symbolPositions[leaf.Symbol] == nil {
			symbolPositions[leaf.Symbol] = make(map[Position]bool)
		}
		symbolPositions[leaf.Symbol][pos] = true
	}

	d := automata.NewDFA()
	for r := range symbolPositions {
		d.Alphabet[r] = true
	}

	startSet := t.Firstpos[tree]
	startIDs := sortedPositions(startSet)
	seen := make(map[string]automata.StateID)

	startState := d.AddState(startIDs)
	seen[positionKey(startIDs)] = startState.ID
	d.Start = startState.ID
	if name, ok := acceptInfoFor(t, startSet); ok {
		startState.Accepting = true
		startState.PatternName = name
	}

	var worklist []automata.StateID
	worklist = append(worklist, startState.ID)

	for len(worklist) > 0 {
		curID := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		cur := d.States[curID]

		curPositions := make(map[Position]bool, len(cur.NFAStates))
		for _, id := range cur.NFAStates {
			curPositions[Position(id)] = true
		}

		for r := range symbolPositions {
			next := make(map[Position]bool)
			for p := range curPositions {
				if !symbolPositions[r][p] {
					continue
				}
				for q := range t.Followpos[p] {
					next[q] = true
				}
			}
			if len(next) == 0 {
				continue
			}
			ids := sortedPositions(next)
			key := positionKey(ids)

			targetID, exists := seen[key]
			if !exists {
				target := d.AddState(ids)
				if name, ok := acceptInfoFor(t, next); ok {
					target.Accepting = true
					target.PatternName = name
				}
				seen[key] = target.ID
				targetID = target.ID
				worklist = append(worklist, targetID)
			}
			cur.Transitions[r] = targetID
		}
	}

	return d
}
