package rdf

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

const (
	rdfFirstNT = "<" + rdfFirst + ">"
	rdfRestNT  = "<" + rdfRest + ">"
	rdfNilNT   = "<" + rdfNil + ">"
)

func ntriples(t *testing.T, g *Graph, ct ContentType) string {
	t.Helper()
	out, err := Serialize(nil, g, OptContentType(ct))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out
}

func TestNTriplesSingleStatement(t *testing.T) {
	g := NewGraph()
	g.Add(iri("subject"), iri("predicate"), Literal{Lexical: "some text"}, nil)
	want := "<http://example.com/subject> <http://example.com/predicate> \"some text\" .\n"
	if got := ntriples(t, g, ContentTypeNTriples); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestNTriplesEscapesAndOrder(t *testing.T) {
	g := NewGraph()
	g.Add(iri("b"), iri("p"), Literal{Lexical: "café"}, nil)
	g.Add(iri("a"), iri("p"), Literal{Lexical: "7", Datatype: IRI{Value: xsdInteger}}, nil)
	g.Add(iri("a"), iri("q"), Literal{Lexical: "hi", Lang: "en"}, nil)
	want := "<http://example.com/a> <http://example.com/p> \"7\"^^<http://www.w3.org/2001/XMLSchema#integer> .\n" +
		"<http://example.com/a> <http://example.com/q> \"hi\"@en .\n" +
		"<http://example.com/b> <http://example.com/p> \"caf\\u00e9\" .\n"
	if got := ntriples(t, g, ContentTypeNTriples); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestNTriplesIgnoresUserFlags(t *testing.T) {
	g := NewGraph()
	g.Add(iri("subject"), iri("predicate"), Literal{Lexical: "some text"}, nil)
	out, err := Serialize(nil, g, OptContentType(ContentTypeNTriples), OptFlags("k"), OptBase("http://example.com/"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "<http://example.com/subject> ") {
		t.Fatalf("expected absolute IRIs, got %q", out)
	}
}

func TestNQuadsGraphTerms(t *testing.T) {
	g := NewGraph()
	g.Add(iri("s"), iri("p"), iri("a"), iri("g"))
	g.Add(iri("s"), iri("p"), iri("b"), nil)
	want := "<http://example.com/s> <http://example.com/p> <http://example.com/a> <http://example.com/g> .\n" +
		"<http://example.com/s> <http://example.com/p> <http://example.com/b> .\n"
	if got := ntriples(t, g, ContentTypeNQuads); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	// N-Triples drops the graph.
	if got := ntriples(t, g, ContentTypeNTriples); strings.Contains(got, "<http://example.com/g>") {
		t.Fatalf("expected no graph terms, got %q", got)
	}
}

func TestNTriplesCollectionExpansion(t *testing.T) {
	g := NewGraph()
	g.Add(iri("s"), iri("p"), NewCollection(iri("a"), iri("b")), nil)
	want := "_:b1 " + rdfFirstNT + " <http://example.com/b>.\n" +
		"_:b1 " + rdfRestNT + " " + rdfNilNT + ".\n" +
		"_:b2 " + rdfFirstNT + " <http://example.com/a>.\n" +
		"_:b2 " + rdfRestNT + " _:b1.\n" +
		"<http://example.com/s> <http://example.com/p> _:b2 .\n"
	if got := ntriples(t, g, ContentTypeNTriples); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestNTriplesNestedCollection(t *testing.T) {
	g := NewGraph()
	g.Add(iri("s"), iri("p"), NewCollection(NewCollection(iri("a"))), nil)
	out := ntriples(t, g, ContentTypeNTriples)
	for _, line := range []string{
		"_:b2 " + rdfFirstNT + " <http://example.com/a>.\n",
		"_:b2 " + rdfRestNT + " " + rdfNilNT + ".\n",
		"_:b1 " + rdfFirstNT + " _:b2.\n",
		"_:b1 " + rdfRestNT + " " + rdfNilNT + ".\n",
		"<http://example.com/s> <http://example.com/p> _:b1 .\n",
	} {
		if !strings.Contains(out, line) {
			t.Fatalf("expected %q in %q", line, out)
		}
	}
}

func TestNTriplesCollectionAvoidsExistingLabels(t *testing.T) {
	g := NewGraph()
	g.Add(BlankNode{ID: "b1"}, iri("p"), Literal{Lexical: "x"}, nil)
	g.Add(iri("s"), iri("p"), NewCollection(iri("a")), nil)
	want := "_:b2 " + rdfFirstNT + " <http://example.com/a>.\n" +
		"_:b2 " + rdfRestNT + " " + rdfNilNT + ".\n" +
		"<http://example.com/s> <http://example.com/p> _:b2 .\n" +
		"_:b1 <http://example.com/p> \"x\" .\n"
	if got := ntriples(t, g, ContentTypeNTriples); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestNTriplesRejectsFormula(t *testing.T) {
	g := NewGraph()
	g.Add(iri("s"), iri("p"), NewGraph(), nil)
	_, err := Serialize(nil, g, OptContentType(ContentTypeNTriples))
	if !errors.Is(err, ErrUnsupportedTerm) {
		t.Fatalf("expected ErrUnsupportedTerm, got %v", err)
	}
}

func TestNQuadsReader(t *testing.T) {
	input := `# comment
<http://example.com/s> <http://example.com/p> "line\nbreak"@en-GB .

_:b0 <http://example.com/p> "5"^^<http://www.w3.org/2001/XMLSchema#integer> <http://example.com/g> .
<http://example.com/s> <http://example.com/p> "plain"^^<http://www.w3.org/2001/XMLSchema#string> .
<http://example.com/s> <http://example.com/p> "\u00e9\U0001F600" .
`
	r := NewNQuadsReader(strings.NewReader(input))
	var got []Statement
	for {
		st, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, st)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(got))
	}
	if lit := got[0].O.(Literal); lit.Lexical != "line\nbreak" || lit.Lang != "en-GB" {
		t.Fatalf("unexpected literal %#v", lit)
	}
	if got[1].S != (BlankNode{ID: "b0"}) || got[1].G != iri("g") {
		t.Fatalf("unexpected quad %v", got[1])
	}
	if lit := got[1].O.(Literal); lit.Datatype.Value != xsdInteger {
		t.Fatalf("expected integer datatype, got %#v", lit)
	}
	if lit := got[2].O.(Literal); lit.Datatype.Value != "" {
		t.Fatalf("expected xsd:string to be normalized, got %#v", lit)
	}
	if lit := got[3].O.(Literal); lit.Lexical != "é\U0001F600" {
		t.Fatalf("unexpected unescaped text %q", lit.Lexical)
	}
}

func TestNQuadsReaderErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"missing object", "<http://example.com/s> <http://example.com/p> .\n", "line 1"},
		{"literal subject", "\"s\" <http://example.com/p> <http://example.com/o> .\n", "literal not allowed"},
		{"missing dot", "<http://example.com/s> <http://example.com/p> <http://example.com/o>\n", "expected '.'"},
		{"trailing text", "<http://example.com/s> <http://example.com/p> <http://example.com/o> . x\n", "unexpected text"},
		{"bad lang", "<http://example.com/s> <http://example.com/p> \"x\"@1a .\n", "invalid language tag"},
		{"bad escape", "<http://example.com/s> <http://example.com/p> \"\\q\" .\n", "invalid escape"},
		{"second line", "<http://example.com/s> <http://example.com/p> <http://example.com/o> .\n<oops\n", "line 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGraph(context.Background(), strings.NewReader(tt.input))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestNQuadsReaderLineLimit(t *testing.T) {
	r := NewNQuadsReader(strings.NewReader("<http://example.com/s> <http://example.com/p> <http://example.com/o> .\n"))
	r.maxBytes = 10
	_, err := r.Next()
	if !errors.Is(err, ErrLineTooLong) || Code(err) != ErrCodeLineTooLong {
		t.Fatalf("expected ErrLineTooLong, got %v", err)
	}
}

func TestReadGraphCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ReadGraph(ctx, strings.NewReader("<http://example.com/s> <http://example.com/p> <http://example.com/o> .\n"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNQuadsRoundTrip(t *testing.T) {
	g := NewGraph()
	g.Add(iri("s"), iri("p"), Literal{Lexical: "multi\nline \"quoted\" text é"}, iri("g"))
	g.Add(BlankNode{ID: "x"}, iri("p"), Literal{Lexical: "1.5", Datatype: IRI{Value: xsdDecimal}}, nil)
	out := ntriples(t, g, ContentTypeNQuads)

	back, err := ReadGraph(context.Background(), strings.NewReader(out))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back.Len() != g.Len() {
		t.Fatalf("expected %d statements, got %d", g.Len(), back.Len())
	}
	for _, st := range g.Statements() {
		if len(back.StatementsMatching(st.S, st.P, st.O, st.Graph())) != 1 {
			t.Fatalf("statement %v lost in round trip:\n%s", st, out)
		}
	}
}

func TestNQuadsReaderDottedBlankLabels(t *testing.T) {
	input := "_:a.b <http://example.com/p> _:c.d.\n" +
		"_:e <http://example.com/p> \"v\"@en.\n"
	g, err := ReadGraph(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sts := g.Statements()
	if len(sts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(sts))
	}
	if sts[0].S != (BlankNode{ID: "a.b"}) || sts[0].O != (BlankNode{ID: "c.d"}) {
		t.Fatalf("expected dotted labels to be kept, got %v", sts[0])
	}
	if lit := sts[1].O.(Literal); lit.Lang != "en" {
		t.Fatalf("expected the final dot to end the statement, got %#v", lit)
	}
}
