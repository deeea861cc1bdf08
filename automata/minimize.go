package automata

import (
	"sort"
	"strconv"
)

// Minimize reduces a DFA to its minimal equivalent via Hopcroft-style
// partition refinement. States start grouped by (accepting?, pattern
// name): two accepting states for different token patterns are never
// merged, even if otherwise indistinguishable, since collapsing them
// would erase priority information the scanner needs. Groups are then
// repeatedly split while two states in the same group disagree on which
// group their transition on some rune lands in, until a fixed point is
// reached.
func Minimize(d *DFA) *DFA {
	alphabet := make([]rune, 0, len(d.Alphabet))
	for r := range d.Alphabet {
		alphabet = append(alphabet, r)
	}
	sort.Slice(alphabet, func(i, j int) bool { return alphabet[i] < alphabet[j] })

	groupOf := make(map[StateID]int)
	var groups [][]StateID
	initial := make(map[string]int)

	ids := make([]StateID, 0, len(d.States))
	for id := range d.States {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		st := d.States[id]
		key := "n"
		if st.Accepting {
			key = "a:" + st.PatternName
		}
		gid, ok := initial[key]
		if !ok {
			gid = len(groups)
			initial[key] = gid
			groups = append(groups, nil)
		}
		groups[gid] = append(groups[gid], id)
		groupOf[id] = gid
	}

	for {
		changed := false
		var next [][]StateID
		nextGroupOf := make(map[StateID]int)

		for _, members := range groups {
			buckets := make(map[string][]StateID)
			var order []string
			for _, id := range members {
				st := d.States[id]
				sig := make([]byte, 0, len(alphabet)*4)
				for _, r := range alphabet {
					sig = append(sig, byte(r), ':')
					if to, ok := st.Transitions[r]; ok {
						sig = append(sig, []byte(strconv.Itoa(groupOf[to]))...)
					} else {
						sig = append(sig, '-')
					}
					sig = append(sig, ',')
				}
				k := string(sig)
				if _, ok := buckets[k]; !ok {
					order = append(order, k)
				}
				buckets[k] = append(buckets[k], id)
			}
			if len(buckets) > 1 {
				changed = true
			}
			sort.Strings(order)
			for _, k := range order {
				gid := len(next)
				next = append(next, buckets[k])
				for _, id := range buckets[k] {
					nextGroupOf[id] = gid
				}
			}
		}

		groups = next
		groupOf = nextGroupOf
		if !changed {
			break
		}
	}

	min := newDFA()
	for r := range d.Alphabet {
		min.Alphabet[r] = true
	}

	groupState := make([]*DFAState, len(groups))
	for gid, members := range groups {
		rep := d.States[members[0]]
		s := min.addState(nil)
		s.Accepting = rep.Accepting
		s.PatternName = rep.PatternName
		groupState[gid] = s
	}

	min.Start = groupState[groupOf[d.Start]].ID

	for gid, members := range groups {
		rep := d.States[members[0]]
		s := groupState[gid]
		for r, to := range rep.Transitions {
			s.Transitions[r] = groupState[groupOf[to]].ID
		}
	}

	return min
}
