package rdf

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// notNameChars may not appear in a prefixed-name local part or an XML
// qualified name.
const notNameChars = "\t\r\n !\"#$%&'()*,+/;<=>?@[\\]^`{|}~:"

// forbidden characters in short and long string literals, and their escapes.
const (
	stringSpecials = "\b\f\r\t\v\n\\\""
	stringEscapes  = "bfrtvn\\\""
)

// columns measures s in UTF-16 code units, the unit line widths are counted in.
func columns(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// IsValidPNLocal reports whether local can be written as the local part of
// a prefixed name. The empty string is valid.
func IsValidPNLocal(local string) bool {
	if local == "" {
		return true
	}
	if local[len(local)-1] == '.' {
		return false
	}
	for i := 0; i < len(local); i++ {
		if strings.IndexByte(notNameChars, local[i]) >= 0 {
			return false
		}
	}
	return true
}

// StringToN3 renders str as a quoted N3 string. Long strings containing a
// newline or quote use triple quotes unless flags has 'n'. When no flags
// were given at all (the zero set) non-ASCII characters are escaped; a
// parsed but empty flag string such as " " leaves them alone.
func StringToN3(str string, flags Flags) string {
	if flags == 0 {
		flags = FlagEscapeUnicode
	}
	long := columns(str) > 20 &&
		!strings.HasSuffix(str, `"`) &&
		!flags.Has(FlagSingleLineStrings) &&
		(strings.IndexByte(str, '\n') > 0 || strings.IndexByte(str, '"') > 0)

	delim := `"`
	if long {
		delim = `"""`
	}
	var b strings.Builder
	b.Grow(len(str) + 2*len(delim))
	b.WriteString(delim)
	for i := 0; i < len(str); {
		r, size := utf8.DecodeRuneInString(str[i:])
		switch {
		case long && r == '"' && !strings.HasPrefix(str[i:], `"""`):
			b.WriteByte('"')
		case long && (r == '\t' || r == '\n'):
			b.WriteRune(r)
		case r < utf8.RuneSelf && strings.IndexByte(stringSpecials, byte(r)) >= 0:
			b.WriteByte('\\')
			b.WriteByte(stringEscapes[strings.IndexByte(stringSpecials, byte(r))])
		case r >= 0x80 && flags.Has(FlagEscapeUnicode):
			writeUnicodeEscape(&b, r)
		default:
			b.WriteString(str[i : i+size])
		}
		i += size
	}
	b.WriteString(delim)
	return b.String()
}

func writeUnicodeEscape(b *strings.Builder, r rune) {
	if r > 0xFFFF {
		fmt.Fprintf(b, `\U%08x`, r)
		return
	}
	fmt.Fprintf(b, `\u%04x`, r)
}

// StringToN3 renders str with the serializer's flags.
func (s *Serializer) StringToN3(str string) string {
	return StringToN3(str, s.flags)
}

// AtomicTermToN3 renders a non-compound term as N3 text.
func (s *Serializer) AtomicTermToN3(t Term) (string, error) {
	switch v := t.(type) {
	case BlankNode, Variable:
		return t.String(), nil
	case Literal:
		return s.literalToN3(v)
	case IRI:
		return s.SymbolToN3(v), nil
	case DefaultGraph:
		return "", nil
	default:
		kind := "nil"
		if t != nil {
			kind = t.Kind().String()
		}
		return "", termError(ErrUnsupportedTerm, t, "atomicTermToN3 cannot handle %v of termType: %s", t, kind)
	}
}

func (s *Serializer) literalToN3(lit Literal) (string, error) {
	if !utf8.ValidString(lit.Lexical) {
		return "", termError(ErrInvalidLiteral, lit, "%q", lit.Lexical)
	}
	dt := lit.DatatypeIRI()
	if !s.flags.Has(FlagNoNativeLiterals) {
		val := lit.Lexical
		switch dt.Value {
		case xsdInteger:
			return val, nil
		case xsdDecimal:
			if !strings.Contains(val, ".") {
				val += ".0"
			}
			return val, nil
		case xsdDouble:
			exponent := strings.IndexByte(strings.ToLower(val), 'e') > 0
			if !strings.Contains(val, ".") && !exponent {
				val += ".0"
			}
			if !exponent {
				val += "e0"
			}
			return val, nil
		case xsdBoolean:
			if val == "1" || val == "true" {
				return "true", nil
			}
			return "false", nil
		}
	}
	str := StringToN3(lit.Lexical, s.flags)
	switch {
	case lit.Lang != "":
		str += "@" + lit.Lang
	case dt.Value != xsdString:
		d, err := s.AtomicTermToN3(dt)
		if err != nil {
			return "", err
		}
		str += "^^" + d
	}
	return str, nil
}

// SymbolToN3 renders an IRI as ":local", "prefix:local", a bare name or an
// explicit IRI, registering any namespace it uses.
func (s *Serializer) SymbolToN3(iri IRI) string {
	uri := iri.Value
	j := strings.IndexByte(uri, '#')
	if j < 0 && !s.flags.Has(FlagHashOnly) {
		j = strings.LastIndexByte(uri, '/')
	}
	if j >= 0 && !s.flags.Has(FlagNoPrefixes) &&
		(strings.HasPrefix(uri, "http") || strings.HasPrefix(uri, "ws") || strings.HasPrefix(uri, "file")) {
		local, ns := uri[j+1:], uri[:j+1]
		minNamespaceLength := strings.Index(uri, "://") + 4
		if !s.isBaseDir(ns) &&
			!(s.flags.Has(FlagNoDottedLocals) && strings.Contains(local, ".")) &&
			columns(ns) > minNamespaceLength &&
			IsValidPNLocal(local) {
			if s.defaultNamespace != "" && s.defaultNamespace == ns && !s.flags.Has(FlagNoDefaultNamespace) {
				if s.flags.Has(FlagBareKeywords) && !s.isKeyword(local) {
					return local
				}
				return ":" + local
			}
			prefix, ok := s.registry.Prefix(ns)
			if !ok {
				prefix = s.registry.MakeUpPrefix(ns)
			}
			s.registry.UseNamespace(ns)
			return prefix + ":" + local
		}
	}
	return s.ExplicitURI(uri)
}

// isBaseDir reports whether ns is the directory part of the base IRI.
func (s *Serializer) isBaseDir(ns string) bool {
	if s.base == "" {
		return false
	}
	cut := strings.LastIndexByte(s.base, '/')
	if h := strings.LastIndexByte(s.base, '#'); h > cut {
		cut = h
	}
	dir := s.base[:cut+1]
	return dir != "" && dir == ns
}

// ExplicitURI renders uri in angle brackets: relative to the base unless
// 'r' is set, otherwise \u-escaped with 'u' or percent-encoded.
func (s *Serializer) ExplicitURI(uri string) string {
	switch {
	case !s.flags.Has(FlagNoRelativeIRIs) && s.base != "":
		uri = refTo(s.base, uri)
	case s.flags.Has(FlagUnicodeIRIs):
		uri = backslashUify(uri)
	default:
		uri = hexify(uri)
	}
	return "<" + uri + ">"
}

func backslashUify(uri string) string {
	var b strings.Builder
	for _, r := range uri {
		switch {
		case r > 0xFFFF:
			fmt.Fprintf(&b, `\U%08x`, r)
		case r > 126:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// uriSafe are the characters left alone when percent-encoding IRIs.
const uriSafe = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789;,/?:@&=+$-_.!~*'()#"

// hexify percent-encodes the UTF-8 bytes of characters outside uriSafe.
// Existing %XX escapes are kept.
func hexify(uri string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(uri); i++ {
		c := uri[i]
		switch {
		case c == '%' && i+2 < len(uri) && isHexDigit(uri[i+1]) && isHexDigit(uri[i+2]):
			b.WriteString(uri[i : i+3])
			i += 2
		case c < utf8.RuneSelf && strings.IndexByte(uriSafe, c) >= 0:
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0F])
		}
	}
	return b.String()
}
