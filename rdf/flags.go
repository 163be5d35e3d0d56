package rdf

import "strings"

// Flags is a set of serializer behavior switches, one bit per flag letter.
type Flags uint32

const (
	// FlagNoSameAs ('s') disables the "=" abbreviation for owl:sameAs.
	FlagNoSameAs Flags = 1 << iota
	// FlagNoTypeKeyword ('t') disables the "a" abbreviation for rdf:type.
	FlagNoTypeKeyword
	// FlagNoImplies ('i') disables the "=>" abbreviation for log:implies.
	FlagNoImplies
	// FlagNoDefaultNamespace ('d') disables the ":local" default namespace form.
	FlagNoDefaultNamespace
	// FlagNoNativeLiterals ('x') keeps numeric and boolean literals quoted.
	FlagNoNativeLiterals
	// FlagSingleLineStrings ('n') never uses triple-quoted strings.
	FlagSingleLineStrings
	// FlagEscapeUnicode ('e') escapes non-ASCII characters in strings.
	FlagEscapeUnicode
	// FlagNoRelativeIRIs ('r') never relativizes IRIs against the base.
	FlagNoRelativeIRIs
	// FlagUnicodeIRIs ('u') escapes IRIs with \u instead of percent-encoding.
	FlagUnicodeIRIs
	// FlagNoDottedLocals ('o') refuses prefixed names whose local part has a dot.
	FlagNoDottedLocals
	// FlagNoPrefixes ('p') never splits IRIs into prefixed names.
	FlagNoPrefixes
	// FlagHashOnly ('/') splits IRIs at '#' only.
	FlagHashOnly
	// FlagBareKeywords ('k') writes default-namespace names without the colon.
	FlagBareKeywords
	// FlagQuads ('q') makes the N-Triples writer emit graph terms.
	FlagQuads
	// FlagRelativeXMLNamespaces ('z') allows xml:base and relative IRIs in RDF/XML.
	FlagRelativeXMLNamespaces
)

const flagLetters = "stidxneruop/kqz"

// flagsGiven marks a set parsed from a non-empty flag string, so that
// " " or "w" can be told apart from no flags at all. It has no letter.
const flagsGiven Flags = 1 << len(flagLetters)

// ParseFlags converts a flag string such as "si dr" into a Flags set.
// Spaces and unknown letters are ignored.
func ParseFlags(value string) Flags {
	var f Flags
	if value != "" {
		f |= flagsGiven
	}
	for _, r := range value {
		if i := strings.IndexRune(flagLetters, r); i >= 0 {
			f |= 1 << uint(i)
		}
	}
	return f
}

// Has reports whether every flag in mask is set.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

// String returns the set flag letters in their canonical order.
func (f Flags) String() string {
	var b strings.Builder
	for i := 0; i < len(flagLetters); i++ {
		if f&(1<<uint(i)) != 0 {
			b.WriteByte(flagLetters[i])
		}
	}
	return b.String()
}

// Flag presets applied by the content-type dispatcher.
const (
	turtlePreset   = "si"
	ntriplesPreset = "deinprstux"
	nquadsPreset   = "deinprstux q"
	jsonldPreset   = "si dr"
)
