package rdf

import "strings"

// docTree is a node of a document tree: a text token or a nested list.
type docTree struct {
	token string
	items []docTree
	list  bool
}

func tok(s string) docTree { return docTree{token: s} }

func list(items ...docTree) docTree { return docTree{items: items, list: true} }

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// n3Layout renders N3/Turtle trees: nested lists that fit in the width are
// collapsed onto one line, punctuation is pulled onto the previous line.
type n3Layout struct {
	width  int
	indent int
}

func (l n3Layout) line(tree []docTree) string {
	var b []byte
	for i, branch := range tree {
		s2 := branch.token
		if branch.list {
			s2 = l.line(branch.items)
		}
		if i != 0 {
			last := byte(' ')
			if len(b) > 0 {
				last = b[len(b)-1]
			}
			switch {
			case s2 == "," || s2 == ";":
			case s2 == "." && strings.IndexByte("0123456789.:", last) < 0:
			default:
				b = append(b, ' ')
			}
		}
		b = append(b, s2...)
	}
	return string(b)
}

func (l n3Layout) render(tree []docTree, level int) string {
	var buf []byte
	lastLength := 100000
	for _, branch := range tree {
		text, isText := branch.token, !branch.list
		if branch.list {
			sub := l.render(branch.items, level+1)
			if columns(sub) < 10*(l.width-l.indent*level) && !strings.Contains(sub, `"""`) {
				if line := l.line(branch.items); columns(line) < l.width-l.indent*level {
					text, isText = line, true
					sub = ""
				}
			}
			if sub != "" {
				lastLength = 10000
			}
			buf = append(buf, sub...)
		}
		if !isText {
			continue
		}
		if (text == "," || text == "." || text == ";") && len(buf) > 0 && buf[len(buf)-1] == '\n' {
			buf = buf[:len(buf)-1]
			if text == "." && (len(buf) == 0 || strings.IndexByte("0123456789.:", buf[len(buf)-1]) >= 0) {
				buf = append(buf, ' ')
				lastLength++
			}
			buf = append(buf, text...)
			buf = append(buf, '\n')
			lastLength++
			continue
		}
		width := columns(text)
		if lastLength < l.indent*level+4 || (lastLength+width+1 < l.width && !endsStatement(buf)) {
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
			}
			buf = append(buf, ' ')
			buf = append(buf, text...)
			buf = append(buf, '\n')
			lastLength += width + 1
			continue
		}
		line := spaces(l.indent*level) + text
		buf = append(buf, line...)
		buf = append(buf, '\n')
		lastLength = columns(line)
		if level < 0 {
			buf = append(buf, '\n')
			lastLength = 100000
		}
	}
	return string(buf)
}

// endsStatement reports whether the line before the final newline ends in ';' or '.'.
func endsStatement(buf []byte) bool {
	if len(buf) < 2 {
		return false
	}
	c := buf[len(buf)-2]
	return c == ';' || c == '.'
}

// xmlLayout renders RDF/XML trees: elements that fit in the width are
// collapsed onto one line.
type xmlLayout struct {
	width  int
	indent int
}

func (l xmlLayout) line(tree []docTree) string {
	var b strings.Builder
	for _, branch := range tree {
		if branch.list {
			b.WriteString(l.line(branch.items))
			continue
		}
		b.WriteString(branch.token)
	}
	return b.String()
}

func (l xmlLayout) render(tree []docTree, level int) string {
	var b strings.Builder
	for _, branch := range tree {
		text, isText := branch.token, !branch.list
		if branch.list {
			sub := l.render(branch.items, level+1)
			if columns(sub) < 10*(l.width-l.indent*level) && !strings.Contains(sub, `"""`) {
				if line := l.line(branch.items); columns(line) < l.width-l.indent*(level+1) {
					text, isText = spaces(l.indent)+line, true
					sub = ""
				}
			}
			b.WriteString(sub)
		}
		if isText {
			b.WriteString(spaces(l.indent * max(level, 0)))
			b.WriteString(text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}
