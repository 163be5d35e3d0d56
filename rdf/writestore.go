package rdf

import (
	"bufio"
	"io"
)

// WriteStore writes a whole dataset as N3: each named graph becomes a
// "<g> log:semantics { ... }." block, followed by a "log:metadata" block for
// every link:requestedURI record and a final prefix declaration block.
func (s *Serializer) WriteStore(w io.Writer, store *Graph) error {
	bw := bufio.NewWriter(w)
	semantics, err := s.AtomicTermToN3(IRI{Value: logSemantics})
	if err != nil {
		return err
	}
	for _, g := range store.GraphNames() {
		name, err := s.AtomicTermToN3(g)
		if err != nil {
			return err
		}
		body, err := s.serializeN3(store.StatementsMatching(nil, nil, nil, g))
		if err != nil {
			return err
		}
		if _, err := bw.WriteString("\n" + name + " " + semantics + " { " + body + " }.\n"); err != nil {
			return err
		}
	}
	for _, st := range store.StatementsMatching(nil, IRI{Value: linkRequestURI}, nil, nil) {
		body, err := s.serializeN3(store.StatementsMatching(nil, nil, nil, st.S))
		if err != nil {
			return err
		}
		if _, err := bw.WriteString("\n<" + termValue(st.O) + "> log:metadata {\n" + body + "}.\n"); err != nil {
			return err
		}
	}
	prefixes, err := s.serializeN3(nil)
	if err != nil {
		return err
	}
	if _, err := bw.WriteString(prefixes); err != nil {
		return err
	}
	return bw.Flush()
}
