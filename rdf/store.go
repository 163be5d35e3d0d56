package rdf

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Store is the query interface the serializers consume.
// A nil argument is a wildcard.
type Store interface {
	StatementsMatching(s, p, o, g Term) []Statement
}

// NamespaceSource is implemented by stores that carry their own prefix table.
// Its bindings are applied to serializers as suggestions.
type NamespaceSource interface {
	Namespaces() []Namespace
}

// Graph is an in-memory statement set. It is both a Store and a Term, so a
// Graph can appear as the object of a statement (an N3 formula).
type Graph struct {
	statements []Statement
	namespaces *orderedmap.OrderedMap[string, string]
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{namespaces: orderedmap.New[string, string]()}
}

// Kind returns TermGraph.
func (g *Graph) Kind() TermKind { return TermGraph }

// String returns the statements in braces, one per line.
func (g *Graph) String() string {
	lines := make([]string, len(g.statements))
	for i, st := range g.statements {
		lines[i] = st.String()
	}
	return "{" + strings.Join(lines, "\n") + "}"
}

// Add appends a statement. A nil graph term puts it in the default graph.
func (g *Graph) Add(s Term, p IRI, o Term, graph Term) {
	g.statements = append(g.statements, Statement{S: s, P: p, O: o, G: graph})
}

// AddStatement appends st.
func (g *Graph) AddStatement(st Statement) {
	g.statements = append(g.statements, st)
}

// Statements returns the statements in insertion order.
func (g *Graph) Statements() []Statement {
	out := make([]Statement, len(g.statements))
	copy(out, g.statements)
	return out
}

// Len returns the number of statements.
func (g *Graph) Len() int { return len(g.statements) }

// StatementsMatching returns the statements whose positions equal the given
// terms, in insertion order. A DefaultGraph pattern matches statements
// without a named graph.
func (g *Graph) StatementsMatching(s, p, o, graph Term) []Statement {
	var out []Statement
	for _, st := range g.statements {
		if s != nil && !sameTerm(st.S, s) {
			continue
		}
		if p != nil && !sameTerm(st.P, p) {
			continue
		}
		if o != nil && !sameTerm(st.O, o) {
			continue
		}
		if graph != nil && !sameTerm(st.Graph(), graph) {
			continue
		}
		out = append(out, st)
	}
	return out
}

// GraphNames returns the distinct named graphs in order of first appearance.
func (g *Graph) GraphNames() []Term {
	seen := make(map[string]bool)
	var out []Term
	for _, st := range g.statements {
		if st.InDefaultGraph() {
			continue
		}
		key := st.G.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, st.G)
	}
	return out
}

// SetPrefix records a prefix binding for serializers to pick up.
func (g *Graph) SetPrefix(prefix, uri string) {
	g.namespaces.Set(prefix, uri)
}

// Namespaces returns the graph's prefix bindings in the order they were set.
func (g *Graph) Namespaces() []Namespace {
	out := make([]Namespace, 0, g.namespaces.Len())
	for pair := g.namespaces.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, Namespace{Prefix: pair.Key, URI: pair.Value})
	}
	return out
}

func sameTerm(a, b Term) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if ga, ok := a.(*Graph); ok {
		gb, ok := b.(*Graph)
		return ok && ga == gb
	}
	return a.Kind() == b.Kind() && a.String() == b.String()
}
