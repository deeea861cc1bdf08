// Package automata builds and minimizes finite automata: Thompson's
// construction from a postfix regex token stream, combination of several
// named pattern NFAs into one, subset construction to a DFA, and Hopcroft
// minimization. The followpos-based direct construction, an alternative to
// Thompson+subset, lives in the followpos package and builds this
// package's DFA type.
package automata

import "sort"

// StateID identifies an NFA or DFA state within one construction. IDs are
// assigned by a counter that must be reset between independent
// constructions so that state identity stays comparable within a single
// automaton.
type StateID int

// NFAState is one state of an NFA: a set of epsilon transitions and a map
// from input rune to the set of states reachable on that rune.
type NFAState struct {
	ID          StateID
	Transitions map[rune]map[StateID]bool
	Epsilon     map[StateID]bool
}

func newNFAState(id StateID) *NFAState {
	return &NFAState{
		ID:          id,
		Transitions: make(map[rune]map[StateID]bool),
		Epsilon:     make(map[StateID]bool),
	}
}

// AcceptInfo records which named pattern a final state accepts and that
// pattern's declaration-order priority (lower wins ties).
type AcceptInfo struct {
	PatternName string
	Priority    int
}

// NFA is a single nondeterministic finite automaton fragment or, after
// combination, a union of several named-pattern fragments sharing one start
// state.
type NFA struct {
	Start        StateID
	Accept       StateID
	States       map[StateID]*NFAState
	AcceptStates map[StateID]AcceptInfo
	nextID       StateID
}

// NewNFA creates an empty NFA with its own state-id counter starting at 0.
func NewNFA() *NFA {
	return &NFA{
		States:       make(map[StateID]*NFAState),
		AcceptStates: make(map[StateID]AcceptInfo),
	}
}

// AddState allocates and returns a fresh state.
func (n *NFA) AddState() *NFAState {
	s := newNFAState(n.nextID)
	n.States[s.ID] = s
	n.nextID++
	return s
}

// AddTransition adds an edge labeled r from 'from' to 'to'.
func (n *NFA) AddTransition(from StateID, r rune, to StateID) {
	st := n.States[from]
	if st.Transitions[r] == nil {
		st.Transitions[r] = make(map[StateID]bool)
	}
	st.Transitions[r][to] = true
}

// AddEpsilonTransition adds an epsilon edge from 'from' to 'to'.
func (n *NFA) AddEpsilonTransition(from, to StateID) {
	n.States[from].Epsilon[to] = true
}

// merge copies all states, transitions and accept labels of other into n,
// renumbering other's states by offset to avoid collisions. It returns the
// mapping from other's original IDs to their new IDs in n.
func (n *NFA) merge(other *NFA, offset StateID) map[StateID]StateID {
	remap := make(map[StateID]StateID, len(other.States))
	ids := make([]StateID, 0, len(other.States))
	for id := range other.States {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		remap[id] = id + offset
	}
	for _, id := range ids {
		old := other.States[id]
		ns := newNFAState(remap[id])
		for r, targets := range old.Transitions {
			ns.Transitions[r] = make(map[StateID]bool, len(targets))
			for t := range targets {
				ns.Transitions[r][remap[t]] = true
			}
		}
		for t := range old.Epsilon {
			ns.Epsilon[remap[t]] = true
		}
		n.States[ns.ID] = ns
	}
	for id, info := range other.AcceptStates {
		n.AcceptStates[remap[id]] = info
	}
	if offset+other.nextID > n.nextID {
		n.nextID = offset + other.nextID
	}
	return remap
}
