package rdf

import (
	"sort"
	"strings"
)

// Format identifies a serializer adapter.
type Format string

const (
	FormatTurtle   Format = "turtle"
	FormatN3       Format = "n3"
	FormatNTriples Format = "ntriples"
	FormatNQuads   Format = "nquads"
	FormatRDFXML   Format = "rdfxml"
	FormatJSONLD   Format = "jsonld"
)

// ContentType is a media type accepted by Serialize.
type ContentType string

const (
	ContentTypeRDFXML       ContentType = "application/rdf+xml"
	ContentTypeTurtle       ContentType = "text/turtle"
	ContentTypeTurtleLegacy ContentType = "application/x-turtle"
	ContentTypeN3           ContentType = "text/n3"
	ContentTypeN3Legacy     ContentType = "application/n3"
	ContentTypeNTriples     ContentType = "application/n-triples"
	ContentTypeNQuads       ContentType = "application/n-quads"
	ContentTypeNQuadsAlt    ContentType = "application/nquads"
	ContentTypeJSONLD       ContentType = "application/ld+json"
)

// formatPreset describes how a content type is serialized.
type formatPreset struct {
	format    Format
	preset    string // flags always applied
	userFlags bool   // whether caller flags are appended
}

var contentTypePresets = map[ContentType]formatPreset{
	ContentTypeRDFXML:       {format: FormatRDFXML, userFlags: true},
	ContentTypeN3:           {format: FormatN3, userFlags: true},
	ContentTypeN3Legacy:     {format: FormatN3, userFlags: true},
	ContentTypeTurtle:       {format: FormatTurtle, preset: turtlePreset, userFlags: true},
	ContentTypeTurtleLegacy: {format: FormatTurtle, preset: turtlePreset, userFlags: true},
	ContentTypeNTriples:     {format: FormatNTriples, preset: ntriplesPreset},
	ContentTypeNQuads:       {format: FormatNQuads, preset: nquadsPreset},
	ContentTypeNQuadsAlt:    {format: FormatNQuads, preset: nquadsPreset},
	ContentTypeJSONLD:       {format: FormatJSONLD, preset: jsonldPreset, userFlags: true},
}

// flags joins the preset and the caller's flag string.
func (p formatPreset) flags(user string) string {
	switch {
	case !p.userFlags || user == "":
		return p.preset
	case p.preset == "":
		return user
	default:
		return p.preset + " " + user
	}
}

// ParseContentType normalizes a media type, dropping parameters such as
// "; charset=utf-8", and reports whether a serializer exists for it.
func ParseContentType(value string) (ContentType, bool) {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(value, ";")[0]))
	ct := ContentType(mediaType)
	_, ok := contentTypePresets[ct]
	return ct, ok
}

// ParseFormat maps a short format name or a media type to a content type.
func ParseFormat(value string) (ContentType, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "turtle", "ttl":
		return ContentTypeTurtle, true
	case "n3":
		return ContentTypeN3, true
	case "ntriples", "nt":
		return ContentTypeNTriples, true
	case "nquads", "nq":
		return ContentTypeNQuads, true
	case "rdfxml", "rdf", "xml":
		return ContentTypeRDFXML, true
	case "jsonld", "json-ld", "json":
		return ContentTypeJSONLD, true
	default:
		return ParseContentType(value)
	}
}

// FormatFor returns the adapter and flag preset used for a content type.
func FormatFor(ct ContentType) (Format, string, bool) {
	p, ok := contentTypePresets[ct]
	if !ok {
		return "", "", false
	}
	return p.format, p.preset, true
}

// ContentTypes lists the supported content types in sorted order.
func ContentTypes() []ContentType {
	out := make([]ContentType, 0, len(contentTypePresets))
	for ct := range contentTypePresets {
		out = append(out, ct)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
