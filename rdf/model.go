package rdf

import (
	"strings"
)

// TermKind identifies RDF term types.
type TermKind uint8

const (
	// TermDefaultGraph represents the default graph marker.
	TermDefaultGraph TermKind = iota
	// TermIRI represents an IRI term.
	TermIRI
	// TermBlankNode represents a blank node term.
	TermBlankNode
	// TermLiteral represents a literal term.
	TermLiteral
	// TermVariable represents a query or rule variable.
	TermVariable
	// TermCollection represents an ordered RDF list.
	TermCollection
	// TermGraph represents a nested formula.
	TermGraph
)

// String returns the kind name used in error messages.
func (k TermKind) String() string {
	switch k {
	case TermDefaultGraph:
		return "DefaultGraph"
	case TermIRI:
		return "NamedNode"
	case TermBlankNode:
		return "BlankNode"
	case TermLiteral:
		return "Literal"
	case TermVariable:
		return "Variable"
	case TermCollection:
		return "Collection"
	case TermGraph:
		return "Graph"
	default:
		return "Unknown"
	}
}

// Term is a value that can appear in RDF statements.
//
// String returns the canonical textual form of the term. Two terms are the
// same node exactly when their canonical forms are equal.
type Term interface {
	Kind() TermKind
	String() string
}

// IRI represents an RDF IRI (a named node).
type IRI struct {
	// Value is the IRI string value.
	Value string
}

// Kind returns TermIRI.
func (i IRI) Kind() TermKind { return TermIRI }

// String returns the IRI in angle brackets.
func (i IRI) String() string { return "<" + i.Value + ">" }

// BlankNode represents an RDF blank node.
type BlankNode struct {
	// ID is the blank node identifier.
	ID string
}

// Kind returns TermBlankNode.
func (b BlankNode) Kind() TermKind { return TermBlankNode }

// String returns the blank node identifier prefixed with "_:".
func (b BlankNode) String() string { return "_:" + b.ID }

// Literal represents an RDF literal.
type Literal struct {
	// Lexical is the lexical form of the literal.
	Lexical string
	// Datatype is the datatype IRI. The zero value means xsd:string,
	// or rdf:langString when Lang is set.
	Datatype IRI
	// Lang is the language tag, if any.
	Lang string
}

// Kind returns TermLiteral.
func (l Literal) Kind() TermKind { return TermLiteral }

// DatatypeIRI returns the effective datatype of the literal.
func (l Literal) DatatypeIRI() IRI {
	if l.Datatype.Value != "" {
		return l.Datatype
	}
	if l.Lang != "" {
		return IRI{Value: rdfLangString}
	}
	return IRI{Value: xsdString}
}

// String returns a string representation of the literal.
func (l Literal) String() string {
	var b strings.Builder
	b.WriteByte('"')
	b.WriteString(literalEscaper.Replace(l.Lexical))
	b.WriteByte('"')
	if l.Lang != "" {
		b.WriteByte('@')
		b.WriteString(l.Lang)
	} else if dt := l.DatatypeIRI(); dt.Value != xsdString {
		b.WriteString("^^")
		b.WriteString(dt.String())
	}
	return b.String()
}

var literalEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// Variable is a named placeholder used in N3 rules and queries.
type Variable struct {
	Name string
}

// Kind returns TermVariable.
func (v Variable) Kind() TermKind { return TermVariable }

// String returns the variable name prefixed with "?".
func (v Variable) String() string { return "?" + v.Name }

// DefaultGraph marks the unnamed graph of a dataset.
type DefaultGraph struct{}

// Kind returns TermDefaultGraph.
func (DefaultGraph) Kind() TermKind { return TermDefaultGraph }

// String returns the empty string.
func (DefaultGraph) String() string { return "" }

// Collection is an ordered RDF list. It is written with ( ) in Turtle and
// expanded into rdf:first/rdf:rest chains in line-based formats.
type Collection struct {
	Elements []Term
}

// Kind returns TermCollection.
func (c Collection) Kind() TermKind { return TermCollection }

// String returns the element forms in parentheses.
func (c Collection) String() string {
	parts := make([]string, len(c.Elements))
	for i, el := range c.Elements {
		parts[i] = el.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// NewCollection builds a collection from its elements.
func NewCollection(elements ...Term) Collection {
	return Collection{Elements: elements}
}

// Statement is an RDF statement with an optional graph context.
type Statement struct {
	// S is the subject.
	S Term
	// P is the predicate.
	P IRI
	// O is the object.
	O Term
	// G is the graph name, or nil for the default graph.
	G Term
}

// NewTriple creates a statement in the default graph.
func NewTriple(s Term, p IRI, o Term) Statement {
	return Statement{S: s, P: p, O: o}
}

// NewQuad creates a statement in a named graph.
func NewQuad(s Term, p IRI, o Term, g Term) Statement {
	return Statement{S: s, P: p, O: o, G: g}
}

// Graph returns the graph term, DefaultGraph when G is nil.
func (s Statement) Graph() Term {
	if s.G == nil {
		return DefaultGraph{}
	}
	return s.G
}

// InDefaultGraph reports whether the statement has no named graph.
func (s Statement) InDefaultGraph() bool {
	return s.G == nil || s.G.Kind() == TermDefaultGraph
}

// String returns "S P O ." using the canonical term forms.
func (s Statement) String() string {
	return termString(s.S) + " " + s.P.String() + " " + termString(s.O) + " ."
}

func termString(t Term) string {
	if t == nil {
		return ""
	}
	return t.String()
}

// Well-known vocabulary terms used by the serializers.
const (
	rdfNS   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	xsdNS   = "http://www.w3.org/2001/XMLSchema#"
	owlNS   = "http://www.w3.org/2002/07/owl#"
	logNS   = "http://www.w3.org/2000/10/swap/log#"
	linkNS  = "http://www.w3.org/2007/ont/link#"
	xmlNSID = "reserved:reservedForFutureUse"

	rdfType       = rdfNS + "type"
	rdfFirst      = rdfNS + "first"
	rdfRest       = rdfNS + "rest"
	rdfNil        = rdfNS + "nil"
	rdfLi         = rdfNS + "li"
	rdfLangString = rdfNS + "langString"
	rdfListItem   = rdfNS + "_"

	xsdString  = xsdNS + "string"
	xsdInteger = xsdNS + "integer"
	xsdDecimal = xsdNS + "decimal"
	xsdDouble  = xsdNS + "double"
	xsdBoolean = xsdNS + "boolean"

	owlSameAs      = owlNS + "sameAs"
	logImplies     = logNS + "implies"
	logSemantics   = logNS + "semantics"
	linkRequestURI = linkNS + "requestedURI"
)
