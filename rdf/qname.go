package rdf

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// splitQName splits uri at the last '#', or at the last '/' unless the
// '/' flag is set. ok is false when there is no separator.
func splitQName(uri string, hashOnly bool) (ns, local string, ok bool) {
	sep := strings.IndexByte(uri, '#')
	if sep < 0 && !hashOnly {
		sep = strings.LastIndexByte(uri, '/')
	}
	if sep < 0 {
		return "", "", false
	}
	return uri[:sep+1], uri[sep+1:], true
}

// qname renders an IRI as an XML qualified name, inventing a prefix for
// unknown namespaces and counting every namespace it uses.
func (s *Serializer) qname(iri IRI) (string, error) {
	uri := iri.Value
	ns, local, ok := splitQName(uri, s.flags.Has(FlagHashOnly))
	if !ok {
		return "", termError(ErrInvalidQName, iri, "cannot make qname out of <%s>", uri)
	}
	if first, _ := utf8.DecodeRuneInString(local); local == "" || (first != '_' && !unicode.IsLetter(first)) {
		return "", termError(ErrInvalidQName, iri, "local name %q of <%s> is not an XML name", local, uri)
	}
	for i := 0; i < len(local); i++ {
		if strings.IndexByte(notNameChars, local[i]) >= 0 {
			return "", termError(ErrInvalidQName, iri, "invalid character %q cannot be in XML qname for URI: %s", local[i], uri)
		}
	}
	if s.defaultNamespace != "" && s.defaultNamespace == ns && !s.flags.Has(FlagNoDefaultNamespace) {
		return local, nil
	}
	prefix, ok := s.registry.Prefix(ns)
	if !ok {
		prefix = s.registry.MakeUpPrefix(ns)
	}
	s.registry.UseNamespace(ns)
	return prefix + ":" + local, nil
}

var xmlEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `"`, "&quot;")

// escapeForXML escapes text and attribute values.
func escapeForXML(value string) string {
	return xmlEscaper.Replace(value)
}
