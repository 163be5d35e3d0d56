package rdf

import (
	"cmp"
	"sort"
	"strings"
)

// termClassOrder ranks term kinds when statements are ordered.
var termClassOrder = map[TermKind]int{
	TermDefaultGraph: 0,
	TermLiteral:      1,
	TermCollection:   3,
	TermGraph:        4,
	TermIRI:          5,
	TermBlankNode:    6,
	TermVariable:     7,
}

// termValue is the bare value of a term: the IRI, label, lexical form or name.
func termValue(t Term) string {
	switch v := t.(type) {
	case IRI:
		return v.Value
	case BlankNode:
		return v.ID
	case Literal:
		return v.Lexical
	case Variable:
		return v.Name
	case nil:
		return ""
	default:
		return t.String()
	}
}

// compareTerms orders by kind class, then value, then canonical form.
func compareTerms(a, b Term) int {
	if c := cmp.Compare(termClassOrder[a.Kind()], termClassOrder[b.Kind()]); c != 0 {
		return c
	}
	if c := strings.Compare(termValue(a), termValue(b)); c != 0 {
		return c
	}
	return strings.Compare(a.String(), b.String())
}

// statementOrder sorts statements for the N3 writer. Blank nodes are told
// apart by the statements around them rather than by their labels, so the
// output does not depend on how a parser happened to name them.
type statementOrder struct {
	s          *Serializer
	store      Store
	uriMap     map[string]string
	signatures map[string]string
}

func (s *Serializer) newStatementOrder(statements []Statement) *statementOrder {
	store := s.store
	if store == nil {
		g := NewGraph()
		for _, st := range statements {
			g.AddStatement(st)
		}
		store = g
	}
	return &statementOrder{
		s:          s,
		store:      store,
		uriMap:     map[string]string{rdfType: "aaa:00"},
		signatures: make(map[string]string),
	}
}

// sortStatements orders statements in place by subject, predicate, object.
func (s *Serializer) sortStatements(statements []Statement) {
	order := s.newStatementOrder(statements)
	sort.SliceStable(statements, func(i, j int) bool {
		return order.compareSPO(statements[i], statements[j]) < 0
	})
}

func (o *statementOrder) compareSPO(x, y Statement) int {
	if c := o.compare(x.S, y.S); c != 0 {
		return c
	}
	if c := o.compare(x.P, y.P); c != 0 {
		return c
	}
	return o.compare(x.O, y.O)
}

// compare is a total order: equal results only for identical terms.
func (o *statementOrder) compare(x, y Term) int {
	c := o.heavyCompare(x, y)
	if c == 0 && x.String() != y.String() {
		return strings.Compare(x.String(), y.String())
	}
	return c
}

func (o *statementOrder) heavyCompare(x, y Term) int {
	comparison := compareTerms(x, y)
	if x.Kind() == TermBlankNode && y.Kind() == TermBlankNode {
		if comparison == 0 {
			return 0
		}
		if c := strings.Compare(o.signature(x), o.signature(y)); c != 0 {
			return c
		}
		return comparison
	}
	xi, xok := x.(IRI)
	yi, yok := y.(IRI)
	if xok && yok {
		return o.s.compareStrings(o.mapped(xi.Value), o.mapped(yi.Value))
	}
	return comparison
}

func (o *statementOrder) mapped(uri string) string {
	if m, ok := o.uriMap[uri]; ok {
		return m
	}
	return uri
}

// signature describes a blank node by the statements it takes part in,
// with every blank node in them masked.
func (o *statementOrder) signature(x Term) string {
	key := x.String()
	if sig, ok := o.signatures[key]; ok {
		return sig
	}
	var lines []string
	for _, st := range o.store.StatementsMatching(x, nil, nil, nil) {
		lines = append(lines, signatureLine(st))
	}
	for _, st := range o.store.StatementsMatching(nil, nil, x, nil) {
		lines = append(lines, signatureLine(st))
	}
	sort.Strings(lines)
	sig := strings.Join(lines, "\n")
	o.signatures[key] = sig
	return sig
}

func signatureLine(st Statement) string {
	return nonBlank(st.S) + " " + nonBlank(st.P) + " " + nonBlank(st.O)
}

func nonBlank(t Term) string {
	if t == nil || t.Kind() == TermBlankNode {
		return "null"
	}
	return t.String()
}
