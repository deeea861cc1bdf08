package automata

import (
	"sort"
	"strconv"
	"strings"
)

// EpsilonClosure returns the set of states reachable from any state in
// states via zero or more epsilon transitions, computed with a worklist
// rather than recursion.
func EpsilonClosure(n *NFA, states map[StateID]bool) map[StateID]bool {
	closure := make(map[StateID]bool, len(states))
	var worklist []StateID
	for s := range states {
		closure[s] = true
		worklist = append(worklist, s)
	}
	for len(worklist) > 0 {
		s := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		for t := range n.States[s].Epsilon {
			if !closure[t] {
				closure[t] = true
				worklist = append(worklist, t)
			}
		}
	}
	return closure
}

// Move returns the set of states reachable from any state in states on
// input r, with no closure applied.
func Move(n *NFA, states map[StateID]bool, r rune) map[StateID]bool {
	result := make(map[StateID]bool)
	for s := range states {
		for t := range n.States[s].Transitions[r] {
			result[t] = true
		}
	}
	return result
}

// sortedIDs returns the sorted slice of ids in a state set; this sorted
// tuple is the canonical identity of a DFA state built from that NFA state
// set.
func sortedIDs(states map[StateID]bool) []StateID {
	ids := make([]StateID, 0, len(states))
	for s := range states {
		ids = append(ids, s)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func stateKey(ids []StateID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(int(id))
	}
	return strings.Join(parts, ",")
}

func alphabetOf(n *NFA) map[rune]bool {
	alphabet := make(map[rune]bool)
	for _, st := range n.States {
		for r := range st.Transitions {
			alphabet[r] = true
		}
	}
	return alphabet
}

// acceptInfoFor resolves which pattern (if any) a DFA state formed from the
// given NFA state set accepts. When several NFA accept states are present
// in the set (ambiguity between patterns), the one with the lowest
// Priority wins, following declaration-order as the tie-break.
func acceptInfoFor(n *NFA, ids []StateID) (string, bool) {
	best := AcceptInfo{Priority: -1}
	found := false
	for _, id := range ids {
		info, ok := n.AcceptStates[id]
		if !ok {
			continue
		}
		if !found || info.Priority < best.Priority {
			best = info
			found = true
		}
	}
	return best.PatternName, found
}

// SubsetConstruct builds a DFA from an NFA via the classic subset
// construction: the DFA start state is the epsilon-closure of the NFA
// start, and each DFA state's transitions are computed by moving then
// closing over every rune in the alphabet. Equivalent state sets (by
// sorted NFA-state-id tuple) are recognized and merged.
func SubsetConstruct(n *NFA) *DFA {
	d := newDFA()
	alphabet := alphabetOf(n)
	for r := range alphabet {
		d.Alphabet[r] = true
	}

	startClosure := EpsilonClosure(n, map[StateID]bool{n.Start: true})
	startIDs := sortedIDs(startClosure)
	seen := make(map[string]StateID)

	startState := d.addState(startIDs)
	seen[stateKey(startIDs)] = startState.ID
	d.Start = startState.ID
	if name, ok := acceptInfoFor(n, startIDs); ok {
		startState.Accepting = true
		startState.PatternName = name
	}

	var worklist []StateID
	worklist = append(worklist, startState.ID)

	for len(worklist) > 0 {
		curID := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		cur := d.States[curID]

		curSet := make(map[StateID]bool, len(cur.NFAStates))
		for _, id := range cur.NFAStates {
			curSet[id] = true
		}

		for r := range alphabet {
			moved := Move(n, curSet, r)
			if len(moved) == 0 {
				continue
			}
			closed := EpsilonClosure(n, moved)
			ids := sortedIDs(closed)
			key := stateKey(ids)

			targetID, exists := seen[key]
			if !exists {
				target := d.addState(ids)
				if name, ok := acceptInfoFor(n, ids); ok {
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
