package rdf

import (
	"strings"
)

// n3Writer builds the document tree for N3 and Turtle output.
type n3Writer struct {
	s       *Serializer
	predMap map[string]string
	layout  n3Layout
}

func (s *Serializer) newN3Writer() *n3Writer {
	predMap := make(map[string]string, 3)
	if !s.flags.Has(FlagNoSameAs) {
		predMap[owlSameAs] = "="
	}
	if !s.flags.Has(FlagNoTypeKeyword) {
		predMap[rdfType] = "a"
	}
	if !s.flags.Has(FlagNoImplies) {
		predMap[logImplies] = "=>"
	}
	return &n3Writer{s: s, predMap: predMap, layout: n3Layout{width: s.width, indent: s.indent}}
}

// serializeN3 writes the prefix directives followed by the statements,
// grouped by subject with nested blank nodes inlined.
func (s *Serializer) serializeN3(statements []Statement) (string, error) {
	sorted := make([]Statement, len(statements))
	copy(sorted, statements)
	s.sortStatements(sorted)
	if s.base != "" && s.defaultNamespace == "" {
		s.defaultNamespace = s.base + "#"
	}
	w := s.newN3Writer()
	tree, err := w.statementListToTree(sorted)
	if err != nil {
		return "", err
	}
	body := w.layout.render(tree, -1)
	return w.prefixDirectives() + body, nil
}

func (w *n3Writer) prefixDirectives() string {
	var b strings.Builder
	if !w.s.flags.Has(FlagNoDefaultNamespace) && w.s.defaultNamespace != "" {
		b.WriteString("@prefix : ")
		b.WriteString(w.s.ExplicitURI(w.s.defaultNamespace))
		b.WriteString(".\n")
	}
	for _, ns := range w.s.registry.Bindings() {
		if w.s.registry.Used(ns.URI) == 0 {
			continue
		}
		b.WriteString("@prefix ")
		b.WriteString(ns.Prefix)
		b.WriteString(": ")
		b.WriteString(w.s.ExplicitURI(ns.URI))
		b.WriteString(".\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (w *n3Writer) statementListToTree(statements []Statement) ([]docTree, error) {
	a, err := w.s.RootSubjects(statements)
	if err != nil {
		return nil, err
	}
	out := make([]docTree, 0, len(a.Roots))
	for _, root := range a.Roots {
		t, err := w.subjectTree(root, a)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (w *n3Writer) subjectTree(subject Term, a *RootAnalysis) (docTree, error) {
	if subject.Kind() == TermBlankNode && len(a.Incoming[subject.String()]) == 0 {
		obj, err := w.objectTree(subject, a, true)
		if err != nil {
			return docTree{}, err
		}
		return list(obj, tok(".")), nil
	}
	term, err := w.termToN3(subject, a)
	if err != nil {
		return docTree{}, err
	}
	props, err := w.propertyTree(subject, a)
	if err != nil {
		return docTree{}, err
	}
	return list(term, props, tok(".")), nil
}

// propertyTree lists predicates and objects of subject; consecutive
// statements with the same predicate share it and are separated by ",".
func (w *n3Writer) propertyTree(subject Term, a *RootAnalysis) (docTree, error) {
	var results, objects []docTree
	lastPred := ""
	for i, st := range a.StatementsOf(subject) {
		if i > 0 && st.P.Value == lastPred {
			objects = append(objects, tok(","))
		} else {
			if i > 0 {
				results = append(results, list(objects...), tok(";"))
				objects = nil
			}
			if abbr, ok := w.predMap[st.P.Value]; ok {
				results = append(results, tok(abbr))
			} else {
				pred, err := w.termToN3(st.P, a)
				if err != nil {
					return docTree{}, err
				}
				results = append(results, pred)
			}
		}
		lastPred = st.P.Value
		obj, err := w.objectTree(st.O, a, false)
		if err != nil {
			return docTree{}, err
		}
		objects = append(objects, obj)
	}
	results = append(results, list(objects...))
	return list(results...), nil
}

// objectTree writes a blank node referenced once as "[ ... ]" in place.
func (w *n3Writer) objectTree(obj Term, a *RootAnalysis, force bool) (docTree, error) {
	if obj.Kind() == TermBlankNode && (force || a.inlineable(obj)) {
		if len(a.StatementsOf(obj)) == 0 {
			return tok("[]"), nil
		}
		props, err := w.propertyTree(obj, a)
		if err != nil {
			return docTree{}, err
		}
		return list(tok("["), props, tok("]")), nil
	}
	return w.termToN3(obj, a)
}

func (w *n3Writer) termToN3(expr Term, a *RootAnalysis) (docTree, error) {
	switch v := expr.(type) {
	case *Graph:
		inner, err := w.statementListToTree(v.Statements())
		if err != nil {
			return docTree{}, err
		}
		items := make([]docTree, 0, len(inner)+2)
		items = append(items, tok("{"))
		items = append(items, inner...)
		items = append(items, tok("}"))
		return list(items...), nil
	case Collection:
		items := make([]docTree, 0, len(v.Elements)+2)
		items = append(items, tok("("))
		for _, el := range v.Elements {
			obj, err := w.objectTree(el, a, false)
			if err != nil {
				return docTree{}, err
			}
			items = append(items, list(obj))
		}
		items = append(items, tok(")"))
		return list(items...), nil
	default:
		text, err := w.s.AtomicTermToN3(expr)
		if err != nil {
			return docTree{}, err
		}
		return tok(text), nil
	}
}
