package rdf

import (
	"errors"
	"testing"
)

func iri(local string) IRI { return IRI{Value: "http://example.com/" + local} }

func rootKeys(a *RootAnalysis) []string {
	keys := make([]string, len(a.Roots))
	for i, r := range a.Roots {
		keys[i] = r.String()
	}
	return keys
}

func TestRootSubjects(t *testing.T) {
	statements := []Statement{
		NewTriple(iri("a"), iri("p"), BlankNode{ID: "b1"}),
		NewTriple(BlankNode{ID: "b1"}, iri("q"), Literal{Lexical: "x"}),
		NewTriple(BlankNode{ID: "c"}, iri("p"), iri("a")),
		NewTriple(BlankNode{ID: "l"}, iri("p"), BlankNode{ID: "l"}),
		NewTriple(iri("a"), iri("r"), BlankNode{ID: "d"}),
		NewTriple(iri("e"), iri("r"), BlankNode{ID: "d"}),
		NewTriple(BlankNode{ID: "d"}, iri("q"), Literal{Lexical: "y"}),
	}
	s := NewSerializer(FormatTurtle, nil)
	a, err := s.RootSubjects(statements)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"<http://example.com/a>", "_:c", "<http://example.com/e>", "_:d", "_:l"}
	got := rootKeys(a)
	if len(got) != len(want) {
		t.Fatalf("expected roots %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected roots %v, got %v", want, got)
		}
	}
	if a.IsRoot(BlankNode{ID: "b1"}) {
		t.Fatal("expected _:b1 to be nested")
	}
	if !a.inlineable(BlankNode{ID: "b1"}) || a.inlineable(BlankNode{ID: "d"}) {
		t.Fatal("unexpected inlineable result")
	}
	if n := len(a.StatementsOf(iri("a"))); n != 2 {
		t.Fatalf("expected 2 statements for <a>, got %d", n)
	}
}

func TestRootSubjectsCycle(t *testing.T) {
	statements := []Statement{
		NewTriple(BlankNode{ID: "x"}, iri("p"), BlankNode{ID: "y"}),
		NewTriple(BlankNode{ID: "y"}, iri("p"), BlankNode{ID: "x"}),
	}
	a, err := NewSerializer(FormatTurtle, nil).RootSubjects(statements)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rootKeys(a); len(got) != 1 || got[0] != "_:x" {
		t.Fatalf("expected the cycle to be rooted at _:x, got %v", got)
	}
}

func TestRootSubjectsCollectionMembers(t *testing.T) {
	statements := []Statement{
		NewTriple(iri("s"), iri("p"), NewCollection(BlankNode{ID: "m"})),
		NewTriple(BlankNode{ID: "m"}, iri("q"), Literal{Lexical: "v"}),
	}
	a, err := NewSerializer(FormatTurtle, nil).RootSubjects(statements)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.IsRoot(BlankNode{ID: "m"}) {
		t.Fatalf("expected the collection member to be nested, roots %v", rootKeys(a))
	}
}

func TestRootSubjectsNestedGraph(t *testing.T) {
	inner := NewGraph()
	inner.Add(iri("a"), iri("b"), iri("c"), nil)
	s := NewSerializer(FormatN3, nil)
	a, err := s.RootSubjects([]Statement{NewTriple(inner, iri("says"), iri("x"))})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Roots) != 1 || a.Roots[0] != Term(inner) {
		t.Fatalf("expected the formula itself as root, got %v", a.Roots)
	}
}

func TestFromStr(t *testing.T) {
	s := NewSerializer(FormatTurtle, nil)
	term, err := s.fromStr(`"chat"@fr`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lit, ok := term.(Literal); !ok || lit.Lexical != "chat" || lit.Lang != "fr" {
		t.Fatalf("expected the French literal, got %#v", term)
	}
	if _, err := s.fromStr("{<a> <b> <c> .}"); !errors.Is(err, ErrUnresolvedGraph) {
		t.Fatalf("expected ErrUnresolvedGraph, got %v", err)
	}
}
