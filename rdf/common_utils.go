package rdf

import "strconv"

// blankNodeGenerator hands out fresh blank node labels b1, b2, ... that do
// not collide with labels already present in the output.
type blankNodeGenerator struct {
	counter int
	taken   map[string]bool
}

// newBlankNodeGenerator creates a generator that skips the labels in taken.
func newBlankNodeGenerator(taken map[string]bool) *blankNodeGenerator {
	if taken == nil {
		taken = make(map[string]bool)
	}
	return &blankNodeGenerator{taken: taken}
}

// next generates the next unused blank node.
func (g *blankNodeGenerator) next() BlankNode {
	for {
		g.counter++
		id := generateBlankNodeID(g.counter)
		if !g.taken[id] {
			g.taken[id] = true
			return BlankNode{ID: id}
		}
	}
}

// generateBlankNodeID formats a counter value as a label: "b" followed by
// the number.
func generateBlankNodeID(counter int) string {
	return "b" + strconv.Itoa(counter)
}
