package rdf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	ld "github.com/piprate/json-gold/ld"
)

// TurtleDocument is the intermediate Turtle rendering handed to a
// JSONLDConverter, with the data it was produced from.
type TurtleDocument struct {
	// Text is the Turtle serialization, including prefix directives.
	Text string
	// Base is the base IRI, if any.
	Base string
	// Prefixes are the bindings declared by Text.
	Prefixes []Namespace
	// Statements are the statements Text encodes.
	Statements []Statement
}

// JSONLDConverter turns a Turtle document into JSON-LD text.
type JSONLDConverter interface {
	ConvertTurtle(doc TurtleDocument) (string, error)
}

// JSONLDConverterFunc adapts a function to JSONLDConverter.
type JSONLDConverterFunc func(doc TurtleDocument) (string, error)

// ConvertTurtle calls f(doc).
func (f JSONLDConverterFunc) ConvertTurtle(doc TurtleDocument) (string, error) { return f(doc) }

// jsonldQuadsFlags writes plain N-Quads for the JSON-LD processor:
// absolute IRIs and unescaped non-ASCII text.
const jsonldQuadsFlags = "dinprstx q"

// GoldConverter converts with json-gold: the statements go in as N-Quads,
// are turned into expanded JSON-LD and compacted against the prefixes the
// Turtle document declares.
type GoldConverter struct{}

// ConvertTurtle implements JSONLDConverter.
func (GoldConverter) ConvertTurtle(doc TurtleDocument) (string, error) {
	if err := checkJSONLDTerms(doc.Statements); err != nil {
		return "", err
	}
	nquads, err := NewSerializer(FormatNQuads, nil, OptFlags(jsonldQuadsFlags)).serializeNTriples(doc.Statements)
	if err != nil {
		return "", err
	}
	proc := ld.NewJsonLdProcessor()
	opts := ld.NewJsonLdOptions("")
	opts.Format = "application/n-quads"
	expanded, err := proc.FromRDF(nquads, opts)
	if err != nil {
		return "", err
	}
	context := make(map[string]interface{}, len(doc.Prefixes))
	for _, ns := range doc.Prefixes {
		context[ns.Prefix] = ns.URI
	}
	compacted, err := proc.Compact(expanded, map[string]interface{}{"@context": context}, ld.NewJsonLdOptions(""))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(compacted); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// checkJSONLDTerms rejects terms that have no JSON-LD form.
func checkJSONLDTerms(statements []Statement) error {
	var check func(t Term) error
	check = func(t Term) error {
		switch v := t.(type) {
		case *Graph, Variable:
			return termError(ErrUnsupportedTerm, t, "%s cannot be written as JSON-LD", t.Kind())
		case Collection:
			for _, el := range v.Elements {
				if err := check(el); err != nil {
					return err
				}
			}
		}
		return nil
	}
	for _, st := range statements {
		for _, t := range []Term{st.S, st.O, st.G} {
			if err := check(t); err != nil {
				return err
			}
		}
	}
	return nil
}

// serializeJSONLD renders Turtle first, then converts it.
func (s *Serializer) serializeJSONLD(statements []Statement) (string, error) {
	text, err := s.serializeN3(statements)
	if err != nil {
		return "", err
	}
	var prefixes []Namespace
	for _, ns := range s.registry.Bindings() {
		if s.registry.Used(ns.URI) > 0 {
			prefixes = append(prefixes, ns)
		}
	}
	doc := TurtleDocument{Text: text, Base: s.base, Prefixes: prefixes, Statements: statements}
	converter := s.jsonld
	if converter == nil {
		converter = GoldConverter{}
	}
	out, err := converter.ConvertTurtle(doc)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrJSONLD, err)
	}
	return out, nil
}
