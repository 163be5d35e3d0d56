package rdf

import (
	"regexp"
	"strings"
)

var commonHost = regexp.MustCompile(`^[-_a-zA-Z0-9.]+:(//[^/]*)?/[^/]*$`)

// refTo returns uri relative to base, or uri unchanged when no shorter
// relative form is safe.
func refTo(base, uri string) string {
	if base == "" {
		return uri
	}
	if base == uri {
		return ""
	}
	i := 0
	for i < len(uri) && i < len(base) && uri[i] == base[i] {
		i++
	}
	if commonHost.MatchString(base[:i]) {
		k := strings.Index(uri, "//")
		if k < 0 {
			k = -2
		}
		if l := indexFrom(uri, "/", k+2); l >= 0 {
			if charAt(uri, l+1) != '/' && charAt(base, l+1) != '/' && l <= len(base) && uri[:l] == base[:l] {
				return uri[l:]
			}
		}
	}
	if charAt(uri, i) == '#' && len(base) == i {
		return uri[i:]
	}
	for i > 0 && uri[i-1] != '/' {
		i--
	}
	if i < 3 {
		return uri
	}
	if indexFrom(base, "//", i-2) > 0 || indexFrom(uri, "//", i-2) > 0 {
		return uri
	}
	if indexFrom(base, "?", i) > 0 {
		return uri
	}
	n := strings.Count(base[i:], "/")
	if n == 0 && charAt(uri, i) == '#' {
		return "./" + uri[i:]
	}
	if n == 0 && i == len(uri) {
		return "./"
	}
	return strings.Repeat("../", n) + uri[i:]
}

// indexFrom is strings.Index starting at from; it returns an absolute index.
func indexFrom(s, sub string, from int) int {
	if from < 0 {
		from = 0
	}
	if from > len(s) {
		return -1
	}
	i := strings.Index(s[from:], sub)
	if i < 0 {
		return -1
	}
	return from + i
}

// charAt returns s[i], or 0 when i is out of range.
func charAt(s string, i int) byte {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}
