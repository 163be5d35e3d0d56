package rdf

import (
	"cmp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

const rdfDescription = "rdf:Description"

// xmlAttr is an attribute of a generated element.
type xmlAttr struct {
	name  string
	value string
}

// xmlWriter builds the document tree for RDF/XML output.
type xmlWriter struct {
	s      *Serializer
	layout xmlLayout
}

func (s *Serializer) serializeRDFXML(statements []Statement) (string, error) {
	s.registry.SuggestPrefix("rdf", rdfNS)
	s.registry.pinNamespace(rdfNS)
	w := &xmlWriter{s: s, layout: xmlLayout{width: s.width, indent: s.indent}}
	tree, err := w.statementListToTree(statements)
	if err != nil {
		return "", err
	}
	root := "<rdf:RDF" + w.prefixDirectives() + ">"
	return w.layout.render([]docTree{tok(root), list(tree...), tok("</rdf:RDF>")}, -1), nil
}

// relURI relativizes uri against the base only when 'z' is set.
func (w *xmlWriter) relURI(uri string) string {
	if w.s.base != "" && w.s.flags.Has(FlagRelativeXMLNamespaces) {
		return refTo(w.s.base, uri)
	}
	return uri
}

// prefixDirectives declares xml:base, the default namespace and every used
// namespace, most used first.
func (w *xmlWriter) prefixDirectives() string {
	var b strings.Builder
	hasBase := w.s.base != "" && w.s.flags.Has(FlagRelativeXMLNamespaces)
	if hasBase {
		b.WriteString(` xml:base="` + escapeForXML(w.s.base) + `"`)
	}
	if !w.s.flags.Has(FlagNoDefaultNamespace) && w.s.defaultNamespace != "" {
		if hasBase {
			b.WriteString("\n")
		}
		b.WriteString(` xmlns="` + escapeForXML(w.relURI(w.s.defaultNamespace)) + `"`)
	}
	used := w.s.registry.UsedNamespaces()
	sort.SliceStable(used, func(i, j int) bool {
		return w.s.registry.Used(used[i]) > w.s.registry.Used(used[j])
	})
	for _, ns := range used {
		prefix, ok := w.s.registry.Prefix(ns)
		if !ok {
			continue
		}
		b.WriteString("\n xmlns:" + prefix + `="` + escapeForXML(w.relURI(ns)) + `"`)
	}
	return b.String()
}

func (w *xmlWriter) statementListToTree(statements []Statement) ([]docTree, error) {
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

// sortedStatements orders the statements of subject by predicate in place:
// numbered container members numerically, other predicates by collation.
// The sort is stable so objects of one predicate keep their order.
func (w *xmlWriter) sortedStatements(subject Term, a *RootAnalysis) []Statement {
	sts := a.StatementsOf(subject)
	sort.SliceStable(sts, func(i, j int) bool {
		return w.comparePredicates(sts[i].P.Value, sts[j].P.Value) < 0
	})
	return sts
}

// comparePredicates is a total order: canonical rdf:_N members compare by
// N and sit together as one block, placed where the bare rdf:_ prefix
// collates; every other predicate compares by collation.
func (w *xmlWriter) comparePredicates(p, q string) int {
	m, pItem := listItemIndex(p)
	n, qItem := listItemIndex(q)
	switch {
	case pItem && qItem:
		return cmp.Compare(m, n)
	case pItem:
		return -w.compareToListItems(q)
	case qItem:
		return w.compareToListItems(p)
	}
	if c := w.s.compareStrings(p, q); c != 0 {
		return c
	}
	return strings.Compare(p, q)
}

// compareToListItems places a non-member predicate against the block of
// container members. The block follows the bare prefix itself.
func (w *xmlWriter) compareToListItems(p string) int {
	if c := w.s.compareStrings(p, rdfListItem); c != 0 {
		return c
	}
	if c := strings.Compare(p, rdfListItem); c != 0 {
		return c
	}
	return -1
}

// listItemIndex parses rdf:_N predicates whose N is written canonically.
func listItemIndex(uri string) (int, bool) {
	id, ok := strings.CutPrefix(uri, rdfListItem)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(id)
	if err != nil || strconv.Itoa(n) != id {
		return 0, false
	}
	return n, true
}

func (w *xmlWriter) subjectTree(subject Term, a *RootAnalysis) (docTree, error) {
	sts := w.sortedStatements(subject, a)
	typeIndex := -1
	for i, st := range sts {
		if st.P.Value == rdfType && st.O.Kind() == TermIRI {
			typeIndex = i
			break
		}
	}
	tag := rdfDescription
	if typeIndex >= 0 {
		var err error
		if tag, err = w.s.qname(sts[typeIndex].O.(IRI)); err != nil {
			return docTree{}, err
		}
	}
	var attrs []xmlAttr
	switch v := subject.(type) {
	case BlankNode:
		attrs = append(attrs, xmlAttr{"rdf:nodeID", v.ID})
	case IRI:
		attrs = append(attrs, xmlAttr{"rdf:about", w.relURI(v.Value)})
	default:
		return docTree{}, termError(ErrUnsupportedTerm, subject, "can't serialize subject of type %s into XML", subject.Kind())
	}
	children, err := w.propertyTree(subject, a, typeIndex)
	if err != nil {
		return docTree{}, err
	}
	return list(w.element(tag, attrs, children)...), nil
}

// propertyTree renders the statements of subject except the one at skip,
// the rdf:type statement already used as the element name.
func (w *xmlWriter) propertyTree(subject Term, a *RootAnalysis, skip int) ([]docTree, error) {
	var results []docTree
	for i, st := range w.sortedStatements(subject, a) {
		if i == skip {
			continue
		}
		pred := st.P
		if _, ok := listItemIndex(pred.Value); ok {
			pred = IRI{Value: rdfLi}
		}
		tag, err := w.s.qname(pred)
		if err != nil {
			return nil, err
		}
		items, err := w.objectTree(tag, st.O, a)
		if err != nil {
			return nil, err
		}
		results = append(results, items...)
	}
	return results, nil
}

// objectTree nests a blank node referenced once inside its property element.
func (w *xmlWriter) objectTree(tag string, obj Term, a *RootAnalysis) ([]docTree, error) {
	if !a.inlineable(obj) {
		return w.termToXML(tag, obj, a)
	}
	var attrs []xmlAttr
	if tag != rdfDescription {
		attrs = append(attrs, xmlAttr{"rdf:parseType", "Resource"})
	}
	var children []docTree
	if len(a.StatementsOf(obj)) > 0 {
		var err error
		if children, err = w.propertyTree(obj, a, -1); err != nil {
			return nil, err
		}
	}
	return w.element(tag, attrs, children), nil
}

func (w *xmlWriter) termToXML(tag string, node Term, a *RootAnalysis) ([]docTree, error) {
	isDescription := tag == rdfDescription
	switch v := node.(type) {
	case Collection:
		var elements []docTree
		for _, el := range v.Elements {
			items, err := w.objectTree(rdfDescription, el, a)
			if err != nil {
				return nil, err
			}
			elements = append(elements, items...)
		}
		collection := []xmlAttr{{"rdf:parseType", "Collection"}}
		if !isDescription {
			return w.element(tag, collection, elements), nil
		}
		return w.element(tag, nil, w.element("rdf:value", collection, elements)), nil
	case Literal:
		if !utf8.ValidString(v.Lexical) {
			return nil, termError(ErrInvalidLiteral, v, "%q", v.Lexical)
		}
		var attrs []xmlAttr
		if v.Lang != "" {
			attrs = append(attrs, xmlAttr{"xml:lang", v.Lang})
		} else if dt := v.DatatypeIRI(); dt.Value != xsdString {
			attrs = append(attrs, xmlAttr{"rdf:datatype", dt.Value})
		}
		if !isDescription {
			return w.textElement(tag, attrs, v.Lexical), nil
		}
		if len(attrs) == 0 {
			return w.element(tag, []xmlAttr{{"rdf:value", v.Lexical}}, nil), nil
		}
		return w.element(tag, nil, w.textElement("rdf:value", attrs, v.Lexical)), nil
	default:
		text, err := w.atomicTermToXML(tag, node)
		if err != nil {
			return nil, err
		}
		return []docTree{tok(text)}, nil
	}
}

func (w *xmlWriter) atomicTermToXML(tag string, node Term) (string, error) {
	switch v := node.(type) {
	case BlankNode:
		return w.element(tag, []xmlAttr{{"rdf:nodeID", v.ID}}, nil)[0].token, nil
	case IRI:
		name := "rdf:resource"
		if tag == rdfDescription {
			name = "rdf:about"
		}
		return w.element(tag, []xmlAttr{{name, w.relURI(v.Value)}}, nil)[0].token, nil
	case DefaultGraph:
		return "", nil
	default:
		kind := "nil"
		if node != nil {
			kind = node.Kind().String()
		}
		return "", termError(ErrUnsupportedTerm, node, "can't serialize object of type %s into XML", kind)
	}
}

func startTag(tag string, attrs []xmlAttr) string {
	var b strings.Builder
	b.WriteString("<" + tag)
	for _, attr := range attrs {
		b.WriteString(" " + attr.name + `="` + escapeForXML(attr.value) + `"`)
	}
	return b.String()
}

// element renders tag with attrs, self-closing when there are no children.
func (w *xmlWriter) element(tag string, attrs []xmlAttr, children []docTree) []docTree {
	start := startTag(tag, attrs)
	if len(children) == 0 {
		return []docTree{tok(start + " />")}
	}
	return []docTree{tok(start + ">"), list(children...), tok("</" + tag + ">")}
}

// textElement renders tag with escaped text content on one line.
func (w *xmlWriter) textElement(tag string, attrs []xmlAttr, text string) []docTree {
	return []docTree{tok(startTag(tag, attrs) + ">" + escapeForXML(text) + "</" + tag + ">")}
}
