// Package rdf writes RDF graphs as Turtle, N3, N-Triples, N-Quads, RDF/XML
// and JSON-LD, and reads N-Triples and N-Quads back into a Graph.
//
// Copyright 2026 Geoknoesis LLC (www.geoknoesis.com)
//
// The serializers are layout oriented: statements are grouped by subject,
// blank nodes referenced exactly once are written inline ("[ ... ]" in
// Turtle, nested elements in RDF/XML), IRIs are abbreviated with prefixes
// that are either well known, supplied by the caller or invented from the
// namespace IRI, and long lines are wrapped at 80 columns.
//
//   - Serialize(target, store, opts...) is the one-call entry point. It
//     picks the writer and flag preset from the content type.
//   - NewSerializer returns a reusable Serializer for finer control over
//     prefixes, flags and the base IRI.
//   - NewWriter buffers statements and writes the document on Close.
//   - NewNQuadsReader and ReadGraph load N-Triples and N-Quads input.
//
// Example:
//
//	g := rdf.NewGraph()
//	g.Add(rdf.IRI{Value: "http://example.com/subject"},
//	    rdf.IRI{Value: "http://example.com/predicate"},
//	    rdf.Literal{Lexical: "some text"}, nil)
//	out, err := rdf.Serialize(nil, g, rdf.OptContentType(rdf.ContentTypeTurtle))
//	if err != nil {
//	    // handle error
//	}
//	// out:
//	// @prefix exa: <http://example.com/>.
//	//
//	// exa:subject exa:predicate "some text".
//
// Output depends only on the statements, the options and the order in which
// prefixes were registered; serializing the same input twice with fresh
// serializers yields the same bytes. A Serializer is not safe for concurrent
// use.
package rdf
