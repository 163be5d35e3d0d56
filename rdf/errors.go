package rdf

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a programmatic error code for error handling.
type ErrorCode string

const (
	// ErrCodeUnsupportedContentType indicates a content type with no serializer.
	ErrCodeUnsupportedContentType ErrorCode = "UNSUPPORTED_CONTENT_TYPE"
	// ErrCodeUnsupportedTerm indicates a term that cannot be written where it occurs.
	ErrCodeUnsupportedTerm ErrorCode = "UNSUPPORTED_TERM"
	// ErrCodeInvalidQName indicates an IRI that cannot become an XML qualified name.
	ErrCodeInvalidQName ErrorCode = "INVALID_QNAME"
	// ErrCodeRegistryIntegrity indicates desynchronized prefix maps.
	ErrCodeRegistryIntegrity ErrorCode = "REGISTRY_INTEGRITY"
	// ErrCodeUnresolvedGraph indicates a nested graph key with no backing graph.
	ErrCodeUnresolvedGraph ErrorCode = "UNRESOLVED_GRAPH"
	// ErrCodeInvalidLiteral indicates a literal whose value is not a valid string.
	ErrCodeInvalidLiteral ErrorCode = "INVALID_LITERAL"
	// ErrCodeJSONLD indicates a failure of the JSON-LD conversion step.
	ErrCodeJSONLD ErrorCode = "JSONLD_ERROR"
	// ErrCodeLineTooLong indicates an input line above the reader limit.
	ErrCodeLineTooLong ErrorCode = "LINE_TOO_LONG"
	// ErrCodeSerializeError indicates any other serialization failure.
	ErrCodeSerializeError ErrorCode = "SERIALIZE_ERROR"
)

var (
	// ErrUnsupportedContentType indicates a content type with no serializer.
	ErrUnsupportedContentType = errors.New("rdf: unsupported content type")
	// ErrUnsupportedTerm indicates a term that cannot be written where it occurs.
	ErrUnsupportedTerm = errors.New("rdf: unsupported term")
	// ErrInvalidQName indicates an IRI that cannot become an XML qualified name.
	ErrInvalidQName = errors.New("rdf: cannot make qname")
	// ErrRegistryIntegrity indicates desynchronized prefix maps.
	ErrRegistryIntegrity = errors.New("rdf: serializer integrity error")
	// ErrUnresolvedGraph indicates a nested graph key with no backing graph.
	ErrUnresolvedGraph = errors.New("rdf: no formula object")
	// ErrInvalidLiteral indicates a literal whose value is not a valid string.
	ErrInvalidLiteral = errors.New("rdf: value of RDF literal node must be a string")
	// ErrJSONLD indicates a failure of the JSON-LD conversion step.
	ErrJSONLD = errors.New("rdf: jsonld conversion failed")
	// ErrLineTooLong indicates an N-Quads input line above the reader limit.
	ErrLineTooLong = errors.New("rdf: line exceeds maximum length")
)

// Code returns the error code for an error, or ErrCodeSerializeError if unknown.
// Returns empty string for nil errors.
func Code(err error) ErrorCode {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrUnsupportedContentType):
		return ErrCodeUnsupportedContentType
	case errors.Is(err, ErrUnsupportedTerm):
		return ErrCodeUnsupportedTerm
	case errors.Is(err, ErrInvalidQName):
		return ErrCodeInvalidQName
	case errors.Is(err, ErrRegistryIntegrity):
		return ErrCodeRegistryIntegrity
	case errors.Is(err, ErrUnresolvedGraph):
		return ErrCodeUnresolvedGraph
	case errors.Is(err, ErrInvalidLiteral):
		return ErrCodeInvalidLiteral
	case errors.Is(err, ErrJSONLD):
		return ErrCodeJSONLD
	case errors.Is(err, ErrLineTooLong):
		return ErrCodeLineTooLong
	}
	return ErrCodeSerializeError
}

// SerializeError provides structured context for serialization failures.
type SerializeError struct {
	Format ContentType // Content type being produced
	Term   string      // Canonical form of the offending term, if any
	Err    error       // Underlying error
}

func (e *SerializeError) Error() string {
	var msg strings.Builder
	msg.WriteString("serialize")
	if e.Format != "" {
		fmt.Fprintf(&msg, " %s", e.Format)
	}
	if e.Term != "" {
		fmt.Fprintf(&msg, " (term %s)", e.Term)
	}
	if e.Err != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Err.Error())
	}
	return msg.String()
}

func (e *SerializeError) Unwrap() error { return e.Err }

// termError wraps a sentinel with the offending term's kind and text.
func termError(sentinel error, t Term, format string, args ...interface{}) error {
	detail := fmt.Sprintf(format, args...)
	if t == nil {
		return fmt.Errorf("%w: %s", sentinel, detail)
	}
	return &SerializeError{Term: t.String(), Err: fmt.Errorf("%w: %s", sentinel, detail)}
}
