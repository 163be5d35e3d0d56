package rdf

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Writer collects statements and serializes them when closed.
type Writer interface {
	Write(Statement) error
	Flush() error
	Close() error
}

// Option configures Serialize, NewSerializer and NewWriter.
type Option func(*Options)

// Options configures serialization.
type Options struct {
	// Base is the base IRI. Serialize defaults it to the target IRI.
	Base string
	// ContentType selects the output format; text/turtle when empty.
	ContentType ContentType
	// Flags are extra flag letters appended to the format preset.
	Flags string
	// Namespaces are prefix -> IRI bindings that override the defaults.
	Namespaces map[string]string
	// Callback receives the result instead of the return values.
	Callback func(result string, err error)

	Logger  *log.Logger
	Metrics *Metrics

	// NamespaceTable seeds the prefix registry; DefaultNamespaces when nil.
	NamespaceTable []Namespace
	// JSONLDConverter converts the intermediate Turtle for application/ld+json.
	JSONLDConverter JSONLDConverter

	// Layout
	Width  int
	Indent int
}

// OptBase sets the base IRI.
func OptBase(base string) Option {
	return func(opts *Options) {
		opts.Base = base
	}
}

// OptContentType selects the output media type.
func OptContentType(ct ContentType) Option {
	return func(opts *Options) {
		opts.ContentType = ct
	}
}

// OptFlags adds flag letters such as "dr".
func OptFlags(flags string) Option {
	return func(opts *Options) {
		opts.Flags = flags
	}
}

// OptNamespaces binds prefixes, overriding the defaults.
func OptNamespaces(namespaces map[string]string) Option {
	return func(opts *Options) {
		opts.Namespaces = namespaces
	}
}

// OptCallback delivers the result to fn. Serialize then returns ("", nil).
func OptCallback(fn func(result string, err error)) Option {
	return func(opts *Options) {
		opts.Callback = fn
	}
}

// OptLogger logs each serialized document at debug level and failures at
// error level.
func OptLogger(logger *log.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// OptMetrics records each serialized document.
func OptMetrics(m *Metrics) Option {
	return func(opts *Options) {
		opts.Metrics = m
	}
}

// OptNamespaceTable replaces the well-known prefix table.
func OptNamespaceTable(table []Namespace) Option {
	return func(opts *Options) {
		opts.NamespaceTable = table
	}
}

// OptJSONLDConverter replaces the Turtle to JSON-LD conversion step.
func OptJSONLDConverter(c JSONLDConverter) Option {
	return func(opts *Options) {
		opts.JSONLDConverter = c
	}
}

// OptLayout sets the line width and indent of the tree layouts.
func OptLayout(width, indent int) Option {
	return func(opts *Options) {
		opts.Width = width
		opts.Indent = indent
	}
}

func defaultOptions() Options {
	return Options{
		ContentType: ContentTypeTurtle,
		Width:       defaultWidth,
		Indent:      defaultIndent,
	}
}

// Serialize writes the statements of store in graph target (all graphs when
// target is nil) in the requested content type.
//
// With OptCallback the callback receives exactly one of the result or the
// error, and Serialize returns ("", nil).
func Serialize(target Term, store Store, opts ...Option) (string, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	result, err := serialize(target, store, options)
	if options.Callback != nil {
		if err != nil {
			options.Callback("", err)
		} else {
			options.Callback(result, nil)
		}
		return "", nil
	}
	return result, err
}

func serialize(target Term, store Store, options Options) (string, error) {
	if store == nil {
		return "", errors.New("rdf: serialize: nil store")
	}
	ct := options.ContentType
	if ct == "" {
		ct = ContentTypeTurtle
	}
	normalized, ok := ParseContentType(string(ct))
	if !ok {
		err := &SerializeError{
			Format: ct,
			Err:    fmt.Errorf("%w: Serialize: Content-type %s not supported for data write", ErrUnsupportedContentType, ct),
		}
		options.Metrics.observe("unknown", 0, 0, err)
		logFailure(options.Logger, ct, err)
		return "", err
	}
	preset := contentTypePresets[normalized]

	base := options.Base
	if base == "" {
		if iri, ok := target.(IRI); ok {
			base = iri.Value
		}
	}

	s := newSerializer(preset.format, store, options)
	s.SetFlags(preset.flags(options.Flags))
	if src, ok := store.(NamespaceSource); ok {
		s.SuggestNamespaces(src.Namespaces())
	}
	if len(options.Namespaces) > 0 {
		s.SetNamespaces(options.Namespaces)
	}
	s.SetBase(base)

	statements := store.StatementsMatching(nil, nil, nil, target)
	start := time.Now()
	out, err := s.Serialize(statements)
	elapsed := time.Since(start)
	options.Metrics.observe(preset.format, len(statements), elapsed, err)
	if err != nil {
		var serr *SerializeError
		if errors.As(err, &serr) && serr.Format == "" {
			serr.Format = normalized
		} else if serr == nil {
			err = &SerializeError{Format: normalized, Err: err}
		}
		logFailure(options.Logger, normalized, err)
		return "", err
	}
	if options.Logger != nil {
		options.Logger.Debug("serialized",
			"content_type", normalized,
			"flags", s.Flags().String(),
			"statements", len(statements),
			"bytes", len(out),
			"elapsed", elapsed)
	}
	return out, nil
}

func logFailure(logger *log.Logger, ct ContentType, err error) {
	if logger == nil {
		return
	}
	logger.Error("serialize failed", "content_type", ct, "code", Code(err), "err", err)
}

// NewWriter returns a Writer that buffers statements and writes the
// serialized document to w on Close. Flush is a no-op: the document layout
// depends on every statement.
func NewWriter(w io.Writer, opts ...Option) Writer {
	return &bufferedWriter{out: w, graph: NewGraph(), opts: opts}
}

type bufferedWriter struct {
	out    io.Writer
	graph  *Graph
	opts   []Option
	closed bool
}

func (b *bufferedWriter) Write(st Statement) error {
	if b.closed {
		return errors.New("rdf: write on closed writer")
	}
	b.graph.AddStatement(st)
	return nil
}

func (b *bufferedWriter) Flush() error { return nil }

func (b *bufferedWriter) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	out, err := Serialize(nil, b.graph, b.opts...)
	if err != nil {
		return err
	}
	_, err = io.WriteString(b.out, out)
	return err
}
