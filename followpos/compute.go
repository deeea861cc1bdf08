package followpos

// Table holds the nullable/firstpos/lastpos/followpos results for one
// augmented syntax tree, plus the leaf lookup needed to drive the DFA
// construction.
type Table struct {
	Leaves     map[Position]*Leaf
	Nullable   map[Node]bool
	Firstpos   map[Node]map[Position]bool
	Lastpos    map[Node]map[Position]bool
	Followpos  map[Position]map[Position]bool
}

// Compute walks tree once, filling in nullable, firstpos, lastpos for every
// subtree and followpos for every leaf position, per the standard
// Aho-Sethi-Ullman rules.
func Compute(tree Node) *Table {
	t := &Table{
		Leaves:    make(map[Position]*Leaf),
		Nullable:  make(map[Node]bool),
		Firstpos:  make(map[Node]map[Position]bool),
		Lastpos:   make(map[Node]map[Position]bool),
		Followpos: make(map[Position]map[Position]bool),
	}
	t.visit(tree)
	return t
}

func union(a, b map[Position]bool) map[Position]bool {
	out := make(map[Position]bool, len(a)+len(b))
	for p := range a {
		out[p] = true
	}
	for p := range b {
		out[p] = true
	}
	return out
}

func (t *Table) followpos(p Position) map[Position]bool {
	if t.Followpos[p] == nil {
		t.Followpos[p] = make(map[Position]bool)
	}
	return t.Followpos[p]
}

func (t *Table) addFollowpos(p Position, set map[Position]bool) {
	fp := t.followpos(p)
	for q := range set {
		fp[q] = true
	}
}

func (t *Table) visit(n Node) {
	if _, done := t.Nullable[n]; done {
		return
	}
	switch node := n.(type) {
	case *Leaf:
		t.Nullable[n] = false
		t.Firstpos[n] = map[Position]bool{node.Pos: true}
		t.Lastpos[n] = map[Position]bool{node.Pos: true}
		t.Leaves[node.Pos] = node

	case *Empty:
		t.Nullable[n] = true
		t.Firstpos[n] = map[Position]bool{}
		t.Lastpos[n] = map[Position]bool{}

	case *Cat:
		t.visit(node.Left)
		t.visit(node.Right)
		t.Nullable[n] = t.Nullable[node.Left] && t.Nullable[node.Right]

		if t.Nullable[node.Left] {
			t.Firstpos[n] = union(t.Firstpos[node.Left], t.Firstpos[node.Right])
		} else {
			t.Firstpos[n] = t.Firstpos[node.Left]
		}

		if t.Nullable[node.Right] {
			t.Lastpos[n] = union(t.Lastpos[node.Left], t.Lastpos[node.Right])
		} else {
			t.Lastpos[n] = t.Lastpos[node.Right]
		}

		for p := range t.Lastpos[node.Left] {
			t.addFollowpos(p, t.Firstpos[node.Right])
		}

	case *Or:
		t.visit(node.Left)
		t.visit(node.Right)
		t.Nullable[n] = t.Nullable[node.Left] || t.Nullable[node.Right]
		t.Firstpos[n] = union(t.Firstpos[node.Left], t.Firstpos[node.Right])
		t.Lastpos[n] = union(t.Lastpos[node.Left], t.Lastpos[node.Right])

	case *Star:
		t.visit(node.Child)
		t.Nullable[n] = true
		t.Firstpos[n] = t.Firstpos[node.Child]
		t.Lastpos[n] = t.Lastpos[node.Child]
		for p := range t.Lastpos[node.Child] {
			t.addFollowpos(p, t.Firstpos[node.Child])
		}
	}
}
