package rdf

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// PrefixRegistry keeps the namespace IRI <-> prefix bindings of one
// serializer and counts which namespaces the output actually references.
//
// The two maps are exact inverses of each other after every public call.
// A registry is not safe for concurrent use: prefix synthesis depends on
// the order of calls.
type PrefixRegistry struct {
	prefixes   *orderedmap.OrderedMap[string, string] // namespace -> prefix
	namespaces *orderedmap.OrderedMap[string, string] // prefix -> namespace
	used       *orderedmap.OrderedMap[string, int]
}

// NewPrefixRegistry returns a registry seeded with table, then with the
// reserved rdf: and xml: bindings. Seeding never overrides an earlier entry.
func NewPrefixRegistry(table []Namespace) *PrefixRegistry {
	r := &PrefixRegistry{
		prefixes:   orderedmap.New[string, string](),
		namespaces: orderedmap.New[string, string](),
		used:       orderedmap.New[string, int](),
	}
	for _, ns := range table {
		r.SuggestPrefix(ns.Prefix, ns.URI)
	}
	r.SuggestPrefix("rdf", rdfNS)
	r.SuggestPrefix("xml", xmlNSID)
	return r
}

// reservedPrefix reports prefixes that other tools generate and that are
// never worth declaring.
func reservedPrefix(prefix string) bool {
	return prefix == "" || strings.HasPrefix(prefix, "default") || strings.HasPrefix(prefix, "ns")
}

// SetPrefix binds prefix to uri, dropping any earlier binding of either side.
func (r *PrefixRegistry) SetPrefix(prefix, uri string) {
	if reservedPrefix(prefix) || uri == "" {
		return
	}
	if oldURI, ok := r.namespaces.Get(prefix); ok {
		if p, _ := r.prefixes.Get(oldURI); p == prefix {
			r.prefixes.Delete(oldURI)
		}
	}
	if oldPrefix, ok := r.prefixes.Get(uri); ok {
		if u, _ := r.namespaces.Get(oldPrefix); u == uri {
			r.namespaces.Delete(oldPrefix)
		}
	}
	r.prefixes.Set(uri, prefix)
	r.namespaces.Set(prefix, uri)
}

// SuggestPrefix binds prefix to uri unless either is already bound.
func (r *PrefixRegistry) SuggestPrefix(prefix, uri string) {
	if reservedPrefix(prefix) || uri == "" {
		return
	}
	if _, ok := r.namespaces.Get(prefix); ok {
		return
	}
	if _, ok := r.prefixes.Get(uri); ok {
		return
	}
	r.prefixes.Set(uri, prefix)
	r.namespaces.Set(prefix, uri)
}

// Prefix returns the prefix bound to the namespace uri.
func (r *PrefixRegistry) Prefix(uri string) (string, bool) {
	return r.prefixes.Get(uri)
}

// Namespace returns the namespace bound to prefix.
func (r *PrefixRegistry) Namespace(prefix string) (string, bool) {
	return r.namespaces.Get(prefix)
}

// Bindings returns every binding in registration order.
func (r *PrefixRegistry) Bindings() []Namespace {
	out := make([]Namespace, 0, r.prefixes.Len())
	for pair := r.prefixes.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, Namespace{Prefix: pair.Value, URI: pair.Key})
	}
	return out
}

// MakeUpPrefix invents and installs a prefix for uri. The choice depends
// only on uri and the prefixes already taken.
func (r *PrefixRegistry) MakeUpPrefix(uri string) string {
	p := uri
	if n := len(p); n > 0 && (p[n-1] == '#' || p[n-1] == '/') {
		p = p[:n-1]
	}
	if slash := strings.LastIndexByte(p, '/'); slash >= 0 {
		p = p[slash+1:]
	}
	i := 0
	for i < len(p) && isASCIILetter(p[i]) {
		i++
	}
	p = p[:i]

	if len(p) < 6 && r.claim(p, uri) {
		return p
	}
	for _, n := range []int{3, 2, 4, 1, 5} {
		if candidate := head(p, n); r.claim(candidate, uri) {
			return candidate
		}
	}
	stem := head(p, 3)
	if !validPrefix(p) || reservedPrefix(stem) {
		stem = "n"
	}
	for j := 0; ; j++ {
		if candidate := stem + strconv.Itoa(j); r.claim(candidate, uri) {
			return candidate
		}
	}
}

func (r *PrefixRegistry) claim(prefix, uri string) bool {
	if !validPrefix(prefix) || reservedPrefix(prefix) {
		return false
	}
	if _, taken := r.namespaces.Get(prefix); taken {
		return false
	}
	if old, ok := r.prefixes.Get(uri); ok {
		r.namespaces.Delete(old)
	}
	r.prefixes.Set(uri, prefix)
	r.namespaces.Set(prefix, uri)
	return true
}

// UseNamespace records one more reference to the namespace uri.
func (r *PrefixRegistry) UseNamespace(uri string) {
	n, _ := r.used.Get(uri)
	if n < math.MaxInt {
		n++
	}
	r.used.Set(uri, n)
}

// pinNamespace marks uri as used more than any other namespace.
func (r *PrefixRegistry) pinNamespace(uri string) {
	r.used.Set(uri, math.MaxInt)
}

// Used returns how often the namespace uri has been referenced.
func (r *PrefixRegistry) Used(uri string) int {
	n, _ := r.used.Get(uri)
	return n
}

// UsedNamespaces returns the referenced namespaces in order of first use.
func (r *PrefixRegistry) UsedNamespaces() []string {
	out := make([]string, 0, r.used.Len())
	for pair := r.used.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// CheckIntegrity verifies that the prefix and namespace maps are inverses.
func (r *PrefixRegistry) CheckIntegrity() error {
	for pair := r.namespaces.Oldest(); pair != nil; pair = pair.Next() {
		if p, _ := r.prefixes.Get(pair.Value); p != pair.Key {
			return fmt.Errorf("%w 1: %s, %s, %s", ErrRegistryIntegrity, pair.Key, pair.Value, p)
		}
	}
	for pair := r.prefixes.Oldest(); pair != nil; pair = pair.Next() {
		if ns, _ := r.namespaces.Get(pair.Value); ns != pair.Key {
			return fmt.Errorf("%w 2: %s, %s, %s", ErrRegistryIntegrity, pair.Key, pair.Value, ns)
		}
	}
	return nil
}

func validPrefix(p string) bool {
	if p == "" || !isASCIILetter(p[0]) {
		return false
	}
	for i := 1; i < len(p); i++ {
		if !isASCIILetter(p[i]) && (p[i] < '0' || p[i] > '9') {
			return false
		}
	}
	return true
}

func isASCIILetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func head(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}
