package automata

// Combine unions several independently-built pattern NFAs into one NFA with
// a fresh start state epsilon-connected to each pattern's own start state.
// Each input NFA's states are renumbered to avoid collisions; accept-state
// labels (pattern name + priority) carry over unchanged. Later stages break
// accept ties by each pattern's Priority field, not by argument order.
func Combine(patterns []*NFA) *NFA {
	combined := NewNFA()
	start := combined.AddState()
	combined.Start = start.ID

	offset := combined.nextID
	for _, p := range patterns {
		remap := combined.merge(p, offset)
		combined.AddEpsilonTransition(start.ID, remap[p.Start])
		offset = combined.nextID
	}

	return combined
}
