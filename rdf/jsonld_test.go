package rdf

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestJSONLDConverterReceivesTurtle(t *testing.T) {
	g := NewGraph()
	g.Add(iri("s"), IRI{Value: "http://xmlns.com/foaf/0.1/name"}, Literal{Lexical: "Alice"}, nil)
	var doc TurtleDocument
	converter := JSONLDConverterFunc(func(d TurtleDocument) (string, error) {
		doc = d
		return `{"ok":true}`, nil
	})
	out, err := Serialize(nil, g, OptContentType(ContentTypeJSONLD), OptJSONLDConverter(converter))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `{"ok":true}` {
		t.Fatalf("expected the converter output, got %q", out)
	}
	if !strings.Contains(doc.Text, "exa:s foaf:name \"Alice\".") {
		t.Fatalf("expected Turtle input, got %q", doc.Text)
	}
	if len(doc.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(doc.Statements))
	}
	prefixes := map[string]string{}
	for _, ns := range doc.Prefixes {
		prefixes[ns.Prefix] = ns.URI
	}
	if prefixes["exa"] != "http://example.com/" || prefixes["foaf"] != "http://xmlns.com/foaf/0.1/" || len(prefixes) != 2 {
		t.Fatalf("expected only the used prefixes, got %v", doc.Prefixes)
	}
}

func TestJSONLDConverterError(t *testing.T) {
	g := NewGraph()
	g.Add(iri("s"), iri("p"), iri("o"), nil)
	boom := errors.New("boom")
	converter := JSONLDConverterFunc(func(TurtleDocument) (string, error) { return "", boom })
	_, err := Serialize(nil, g, OptContentType(ContentTypeJSONLD), OptJSONLDConverter(converter))
	if !errors.Is(err, ErrJSONLD) || !errors.Is(err, boom) {
		t.Fatalf("expected ErrJSONLD wrapping the converter error, got %v", err)
	}
	if Code(err) != ErrCodeJSONLD {
		t.Fatalf("expected %s, got %s", ErrCodeJSONLD, Code(err))
	}
	var serr *SerializeError
	if !errors.As(err, &serr) || serr.Format != ContentTypeJSONLD {
		t.Fatalf("expected a SerializeError for %s, got %#v", ContentTypeJSONLD, err)
	}
}

func TestGoldConverter(t *testing.T) {
	g := NewGraph()
	g.Add(iri("s"), IRI{Value: "http://xmlns.com/foaf/0.1/name"}, Literal{Lexical: "Alice"}, nil)
	out, err := Serialize(nil, g, OptContentType(ContentTypeJSONLD))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", out, err)
	}
	if doc["@id"] != "exa:s" {
		t.Fatalf("expected compacted @id exa:s, got %v", doc["@id"])
	}
	if doc["foaf:name"] != "Alice" {
		t.Fatalf("expected foaf:name Alice, got %v", doc["foaf:name"])
	}
	ctx, ok := doc["@context"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected an @context object, got %v", doc["@context"])
	}
	if ctx["exa"] != "http://example.com/" || ctx["foaf"] != "http://xmlns.com/foaf/0.1/" {
		t.Fatalf("unexpected context %v", ctx)
	}
}

func TestJSONLDRejectsVariables(t *testing.T) {
	g := NewGraph()
	g.Add(iri("s"), iri("p"), Variable{Name: "x"}, nil)
	_, err := Serialize(nil, g, OptContentType(ContentTypeJSONLD))
	if !errors.Is(err, ErrJSONLD) || !errors.Is(err, ErrUnsupportedTerm) {
		t.Fatalf("expected ErrJSONLD and ErrUnsupportedTerm, got %v", err)
	}
}
