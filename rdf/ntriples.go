package rdf

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ntWriter renders statements one per line. Collections are expanded into
// rdf:first/rdf:rest chains written before the line that uses them.
type ntWriter struct {
	s     *Serializer
	out   strings.Builder
	bnode *blankNodeGenerator
}

func (s *Serializer) serializeNTriples(statements []Statement) (string, error) {
	sorted := make([]Statement, len(statements))
	copy(sorted, statements)
	keys := make([]string, len(sorted))
	for i, st := range sorted {
		keys[i] = st.String() + " " + termString(st.Graph())
	}
	sort.Stable(byKey{statements: sorted, keys: keys})

	w := &ntWriter{s: s, bnode: newBlankNodeGenerator(blankLabels(sorted))}
	quads := s.flags.Has(FlagQuads)
	for _, st := range sorted {
		subj, err := w.termToNT(st.S)
		if err != nil {
			return "", err
		}
		pred, err := w.termToNT(st.P)
		if err != nil {
			return "", err
		}
		obj, err := w.termToNT(st.O)
		if err != nil {
			return "", err
		}
		line := subj + " " + pred + " " + obj + " "
		if quads {
			g, err := w.termToNT(st.Graph())
			if err != nil {
				return "", err
			}
			if g != "" {
				line += g + " "
			}
		}
		w.out.WriteString(line)
		w.out.WriteString(".\n")
	}
	return w.out.String(), nil
}

type byKey struct {
	statements []Statement
	keys       []string
}

func (b byKey) Len() int           { return len(b.statements) }
func (b byKey) Less(i, j int) bool { return b.keys[i] < b.keys[j] }
func (b byKey) Swap(i, j int) {
	b.statements[i], b.statements[j] = b.statements[j], b.statements[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}

func (w *ntWriter) termToNT(x Term) (string, error) {
	c, ok := x.(Collection)
	if !ok {
		return w.s.AtomicTermToN3(x)
	}
	first, err := w.s.AtomicTermToN3(IRI{Value: rdfFirst})
	if err != nil {
		return "", err
	}
	restPred, err := w.s.AtomicTermToN3(IRI{Value: rdfRest})
	if err != nil {
		return "", err
	}
	var rest Term = IRI{Value: rdfNil}
	for i := len(c.Elements) - 1; i >= 0; i-- {
		node := w.bnode.next()
		elem, err := w.termToNT(c.Elements[i])
		if err != nil {
			return "", err
		}
		restText, err := w.termToNT(rest)
		if err != nil {
			return "", err
		}
		label := node.String()
		w.out.WriteString(label + " " + first + " " + elem + ".\n")
		w.out.WriteString(label + " " + restPred + " " + restText + ".\n")
		rest = node
	}
	return w.s.AtomicTermToN3(rest)
}

// blankLabels collects every blank node label used by statements,
// including those inside collections.
func blankLabels(statements []Statement) map[string]bool {
	labels := make(map[string]bool)
	var visit func(t Term)
	visit = func(t Term) {
		switch v := t.(type) {
		case BlankNode:
			labels[v.ID] = true
		case Collection:
			for _, el := range v.Elements {
				visit(el)
			}
		}
	}
	for _, st := range statements {
		visit(st.S)
		visit(st.O)
		visit(st.G)
	}
	return labels
}

// DefaultMaxLineBytes bounds a single N-Quads input line.
const DefaultMaxLineBytes = 1 << 20

// NQuadsReader reads N-Triples and N-Quads documents line by line.
type NQuadsReader struct {
	reader   *bufio.Reader
	maxBytes int
	line     int
	err      error
}

// NewNQuadsReader returns a reader for N-Quads (and therefore N-Triples) input.
func NewNQuadsReader(r io.Reader) *NQuadsReader {
	return &NQuadsReader{reader: bufio.NewReader(r), maxBytes: DefaultMaxLineBytes}
}

// Next returns the next statement, or io.EOF at the end of input.
func (d *NQuadsReader) Next() (Statement, error) {
	if d.err != nil {
		return Statement{}, d.err
	}
	for {
		raw, err := readLineWithLimit(d.reader, d.maxBytes)
		if err != nil {
			d.err = err
			if err != io.EOF {
				d.err = fmt.Errorf("nquads: line %d: %w", d.line+1, err)
			}
			return Statement{}, d.err
		}
		d.line++
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		st, err := parseNQuadsLine(line)
		if err != nil {
			d.err = fmt.Errorf("nquads: line %d: %w", d.line, err)
			return Statement{}, d.err
		}
		return st, nil
	}
}

// ReadGraph reads every statement of an N-Quads document into a new Graph.
func ReadGraph(ctx context.Context, r io.Reader) (*Graph, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	reader := NewNQuadsReader(&contextReader{ctx: ctx, r: r})
	g := NewGraph()
	for {
		st, err := reader.Next()
		if err == io.EOF {
			return g, nil
		}
		if err != nil {
			return nil, err
		}
		g.AddStatement(st)
	}
}

func parseNQuadsLine(line string) (Statement, error) {
	cursor := &ntCursor{input: line}
	subject, err := cursor.parseTerm(false)
	if err != nil {
		return Statement{}, err
	}
	predicate, err := cursor.parseIRI()
	if err != nil {
		return Statement{}, err
	}
	object, err := cursor.parseTerm(true)
	if err != nil {
		return Statement{}, err
	}
	var graph Term
	cursor.skipWS()
	if cursor.pos < len(cursor.input) && cursor.input[cursor.pos] != '.' {
		if graph, err = cursor.parseTerm(false); err != nil {
			return Statement{}, err
		}
	}
	if !cursor.consume('.') {
		return Statement{}, cursor.errorf("expected '.' at end of statement")
	}
	cursor.skipWS()
	if cursor.pos < len(cursor.input) && cursor.input[cursor.pos] != '#' {
		return Statement{}, cursor.errorf("unexpected text after '.'")
	}
	return Statement{S: subject, P: predicate, O: object, G: graph}, nil
}

// ntCursor scans the terms of one line.
type ntCursor struct {
	input string
	pos   int
}

func (c *ntCursor) skipWS() {
	for c.pos < len(c.input) {
		switch c.input[c.pos] {
		case ' ', '\t', '\r', '\n':
			c.pos++
		default:
			return
		}
	}
}

func (c *ntCursor) consume(ch byte) bool {
	c.skipWS()
	if c.pos < len(c.input) && c.input[c.pos] == ch {
		c.pos++
		return true
	}
	return false
}

func (c *ntCursor) parseTerm(allowLiteral bool) (Term, error) {
	c.skipWS()
	if c.pos >= len(c.input) {
		return nil, c.errorf("unexpected end of line")
	}
	switch {
	case c.input[c.pos] == '<':
		return c.parseIRI()
	case strings.HasPrefix(c.input[c.pos:], "_:"):
		return c.parseBlankNode()
	case c.input[c.pos] == '"':
		if !allowLiteral {
			return nil, c.errorf("literal not allowed here")
		}
		return c.parseLiteral()
	case c.input[c.pos] == '?':
		c.pos++
		return Variable{Name: c.scanName()}, nil
	default:
		return nil, c.errorf("unexpected token %q", c.input[c.pos])
	}
}

func (c *ntCursor) parseIRI() (IRI, error) {
	if !c.consume('<') {
		return IRI{}, c.errorf("expected IRI")
	}
	end := strings.IndexByte(c.input[c.pos:], '>')
	if end < 0 {
		return IRI{}, c.errorf("unterminated IRI")
	}
	value, err := UnescapeString(c.input[c.pos : c.pos+end])
	if err != nil {
		return IRI{}, c.errorf("%v", err)
	}
	c.pos += end + 1
	return IRI{Value: value}, nil
}

func (c *ntCursor) parseBlankNode() (BlankNode, error) {
	c.pos += 2
	id := c.scanName()
	if id == "" {
		return BlankNode{}, c.errorf("blank node id missing")
	}
	return BlankNode{ID: id}, nil
}

// scanName reads a label up to the next whitespace, '<' or '"'. Dots may appear inside
// a label but not at its end, where they close the statement instead.
func (c *ntCursor) scanName() string {
	start := c.pos
	for c.pos < len(c.input) && !isTermDelimiter(c.input[c.pos]) {
		c.pos++
	}
	for c.pos > start && c.input[c.pos-1] == '.' {
		c.pos--
	}
	return c.input[start:c.pos]
}

func (c *ntCursor) parseLiteral() (Literal, error) {
	c.pos++
	start := c.pos
	for c.pos < len(c.input) && c.input[c.pos] != '"' {
		if c.input[c.pos] == '\\' {
			c.pos++
		}
		c.pos++
	}
	if c.pos >= len(c.input) {
		return Literal{}, c.errorf("unterminated literal")
	}
	lexical, err := UnescapeString(c.input[start:c.pos])
	if err != nil {
		return Literal{}, c.errorf("%v", err)
	}
	c.pos++
	switch {
	case strings.HasPrefix(c.input[c.pos:], "@"):
		c.pos++
		lang := c.scanName()
		if !isValidLangTag(lang) {
			return Literal{}, c.errorf("invalid language tag %q", lang)
		}
		return Literal{Lexical: lexical, Lang: lang}, nil
	case strings.HasPrefix(c.input[c.pos:], "^^"):
		c.pos += 2
		dt, err := c.parseIRI()
		if err != nil {
			return Literal{}, err
		}
		if dt.Value == xsdString {
			dt = IRI{}
		}
		return Literal{Lexical: lexical, Datatype: dt}, nil
	}
	return Literal{Lexical: lexical}, nil
}

func (c *ntCursor) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("col %d: "+format, append([]interface{}{c.pos + 1}, args...)...)
}

func isTermDelimiter(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', '<', '"':
		return true
	default:
		return false
	}
}
