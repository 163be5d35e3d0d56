package rdf

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteStore(t *testing.T) {
	store := NewGraph()
	store.Add(iri("s"), iri("p"), iri("o"), iri("g"))
	store.Add(iri("req"), IRI{Value: linkRequestURI}, Literal{Lexical: "http://example.com/doc"}, iri("meta"))
	store.Add(iri("req"), iri("status"), Literal{Lexical: "200"}, iri("req"))

	var buf bytes.Buffer
	if err := NewSerializer(FormatN3, store).WriteStore(&buf, store); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"\nexa:g log:semantics { ",
		"exa:s exa:p exa:o.",
		"\n<http://example.com/doc> log:metadata {\n",
		"exa:req exa:status \"200\".",
		"@prefix log: <http://www.w3.org/2000/10/swap/log#>.\n",
		"@prefix exa: <http://example.com/>.\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in\n%s", want, out)
		}
	}
	if strings.Index(out, "log:semantics") > strings.Index(out, "log:metadata") {
		t.Fatalf("expected graphs before metadata, got\n%s", out)
	}
}
