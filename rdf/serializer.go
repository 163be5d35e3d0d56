package rdf

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	defaultWidth  = 80
	defaultIndent = 4
)

// Serializer holds the state shared by the format writers: flags, base IRI,
// default namespace and the prefix registry. Reusing a Serializer across
// calls accumulates prefixes; a Serializer is not safe for concurrent use.
type Serializer struct {
	format           Format
	flags            Flags
	base             string
	defaultNamespace string
	registry         *PrefixRegistry
	keywords         []string
	store            Store

	// terms maps canonical forms back to the terms that produced them;
	// nested graphs cannot be rebuilt from their text.
	terms    map[string]Term
	formulas map[string]*Graph

	collator *collate.Collator
	jsonld   JSONLDConverter
	width    int
	indent   int
}

// NewSerializer creates a serializer for format. store may be nil; it is
// used to compute blank node signatures when ordering statements.
// Options configure the namespace table, flags, base, prefixes and the
// JSON-LD converter.
func NewSerializer(format Format, store Store, opts ...Option) *Serializer {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	s := newSerializer(format, store, options)
	if options.Flags != "" {
		s.SetFlags(options.Flags)
	}
	if len(options.Namespaces) > 0 {
		s.SetNamespaces(options.Namespaces)
	}
	if options.Base != "" {
		s.SetBase(options.Base)
	}
	return s
}

func newSerializer(format Format, store Store, options Options) *Serializer {
	table := options.NamespaceTable
	if table == nil {
		table = DefaultNamespaces
	}
	width, indent := options.Width, options.Indent
	if width <= 0 {
		width = defaultWidth
	}
	if indent <= 0 {
		indent = defaultIndent
	}
	return &Serializer{
		format:   format,
		registry: NewPrefixRegistry(table),
		keywords: []string{"a"},
		store:    store,
		terms:    make(map[string]Term),
		formulas: make(map[string]*Graph),
		jsonld:   options.JSONLDConverter,
		width:    width,
		indent:   indent,
	}
}

// Format returns the writer this serializer dispatches to.
func (s *Serializer) Format() Format { return s.format }

// SetBase sets the base IRI used for relative IRIs.
func (s *Serializer) SetBase(base string) *Serializer {
	s.base = base
	return s
}

// Base returns the base IRI.
func (s *Serializer) Base() string { return s.base }

// SetFlags replaces the flag set with the letters in flags.
func (s *Serializer) SetFlags(flags string) *Serializer {
	s.flags = ParseFlags(flags)
	return s
}

// Flags returns the active flag set.
func (s *Serializer) Flags() Flags { return s.flags }

// SetDefaultNamespace sets the namespace written as ":local" (or xmlns=).
func (s *Serializer) SetDefaultNamespace(ns string) *Serializer {
	s.defaultNamespace = ns
	return s
}

// DefaultNamespace returns the default namespace, if any.
func (s *Serializer) DefaultNamespace() string { return s.defaultNamespace }

// Registry exposes the prefix registry.
func (s *Serializer) Registry() *PrefixRegistry { return s.registry }

// SetPrefix binds prefix to uri, overriding earlier bindings.
func (s *Serializer) SetPrefix(prefix, uri string) *Serializer {
	s.registry.SetPrefix(prefix, uri)
	return s
}

// SuggestPrefix binds prefix to uri if neither is bound yet.
func (s *Serializer) SuggestPrefix(prefix, uri string) *Serializer {
	s.registry.SuggestPrefix(prefix, uri)
	return s
}

// SetNamespaces applies SetPrefix for every prefix -> uri entry, in prefix order.
func (s *Serializer) SetNamespaces(namespaces map[string]string) *Serializer {
	prefixes := make([]string, 0, len(namespaces))
	for p := range namespaces {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	for _, p := range prefixes {
		s.registry.SetPrefix(p, namespaces[p])
	}
	return s
}

// SuggestNamespaces applies SuggestPrefix for every binding, in order.
func (s *Serializer) SuggestNamespaces(namespaces []Namespace) *Serializer {
	for _, ns := range namespaces {
		s.registry.SuggestPrefix(ns.Prefix, ns.URI)
	}
	return s
}

// MakeUpPrefix invents and installs a prefix for the namespace uri.
func (s *Serializer) MakeUpPrefix(uri string) string {
	return s.registry.MakeUpPrefix(uri)
}

// CheckIntegrity verifies the prefix registry.
func (s *Serializer) CheckIntegrity() error {
	return s.registry.CheckIntegrity()
}

// Serialize renders statements in the serializer's format.
func (s *Serializer) Serialize(statements []Statement) (string, error) {
	switch s.format {
	case FormatTurtle, FormatN3:
		return s.serializeN3(statements)
	case FormatNTriples, FormatNQuads:
		return s.serializeNTriples(statements)
	case FormatRDFXML:
		return s.serializeRDFXML(statements)
	case FormatJSONLD:
		return s.serializeJSONLD(statements)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedContentType, s.format)
	}
}

// ToN3 renders the statements of g as N3.
func (s *Serializer) ToN3(g *Graph) (string, error) {
	return s.serializeN3(g.Statements())
}

// toStr returns the index key of t and remembers t for fromStr.
func (s *Serializer) toStr(t Term) string {
	key := t.String()
	if g, ok := t.(*Graph); ok {
		s.formulas[key] = g
		return key
	}
	s.terms[key] = t
	return key
}

// fromStr resolves a key produced by toStr.
func (s *Serializer) fromStr(key string) (Term, error) {
	if strings.HasPrefix(key, "{") {
		g, ok := s.formulas[key]
		if !ok {
			return nil, fmt.Errorf("%w for %s", ErrUnresolvedGraph, key)
		}
		return g, nil
	}
	if t, ok := s.terms[key]; ok {
		return t, nil
	}
	cursor := &ntCursor{input: key}
	t, err := cursor.parseTerm(true)
	if err != nil {
		return nil, fmt.Errorf("rdf: cannot resolve term %s: %w", key, err)
	}
	return t, nil
}

func (s *Serializer) compareStrings(a, b string) int {
	if s.collator == nil {
		s.collator = collate.New(language.Und)
	}
	return s.collator.CompareString(a, b)
}

func (s *Serializer) isKeyword(local string) bool {
	for _, k := range s.keywords {
		if k == local {
			return true
		}
	}
	return false
}
