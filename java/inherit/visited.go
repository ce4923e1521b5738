package inherit

// Visited is an immutable set of type names. Adding a name returns a new
// set and leaves the receiver unchanged, so sibling branches of a traversal
// never see each other's additions.
type Visited struct {
	head *visitedNode
}

type visitedNode struct {
	name string
	next *visitedNode
}

// NewVisited returns a set holding names.
func NewVisited(names ...string) Visited {
	var v Visited
	for _, name := range names {
		v = v.With(name)
	}
	return v
}

func (v Visited) Has(name string) bool {
	for n := v.head; n != nil; n = n.next {
		if n.name == name {
			return true
		}
	}
	return false
}

// With returns a set holding the names of v and name.
func (v Visited) With(name string) Visited {
	if name == "" || v.Has(name) {
		return v
	}
	return Visited{head: &visitedNode{name: name, next: v.head}}
}
