package rdf

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// RootAnalysis records which subjects of a statement list must be written
// at the top level and which blank nodes can be nested inside their only
// referrer.
type RootAnalysis struct {
	// Roots are the top-level subjects in order of first appearance.
	Roots []Term
	// Subjects groups statements by the canonical form of their subject.
	Subjects *orderedmap.OrderedMap[string, []Statement]
	// RootSet holds the canonical forms of Roots.
	RootSet map[string]bool
	// Incoming lists, per object key, the subject of every referencing statement.
	Incoming map[string][]Term
}

// StatementsOf returns the statements whose subject is t.
func (a *RootAnalysis) StatementsOf(t Term) []Statement {
	sts, _ := a.Subjects.Get(t.String())
	return sts
}

// IsRoot reports whether t is written at the top level.
func (a *RootAnalysis) IsRoot(t Term) bool { return a.RootSet[t.String()] }

// inlineable reports whether t is a blank node that is written nested
// inside the one statement that references it.
func (a *RootAnalysis) inlineable(t Term) bool {
	if t.Kind() != TermBlankNode {
		return false
	}
	key := t.String()
	return !a.RootSet[key] && len(a.Incoming[key]) == 1
}

// RootSubjects analyzes a statement list.
//
// A subject is a root unless it is a blank node referenced exactly once.
// Blank nodes that can only be reached through a cycle of such references
// (including a node that references itself) would never be written, so the
// first of each cycle in subject order is made a root as well.
func (s *Serializer) RootSubjects(statements []Statement) (*RootAnalysis, error) {
	a := &RootAnalysis{
		Subjects: orderedmap.New[string, []Statement](),
		RootSet:  make(map[string]bool),
		Incoming: make(map[string][]Term),
	}
	for _, st := range statements {
		mention := func(x Term) {
			key := s.toStr(x)
			a.Incoming[key] = append(a.Incoming[key], st.S)
		}
		for _, y := range []Term{st.S, st.O} {
			if c, ok := y.(Collection); ok {
				for _, el := range c.Elements {
					mention(el)
				}
			}
		}
		mention(st.O)
		key := s.toStr(st.S)
		bucket, _ := a.Subjects.Get(key)
		a.Subjects.Set(key, append(bucket, st))
	}

	reached := make(map[string]bool)
	var pending []Term
	for pair := a.Subjects.Oldest(); pair != nil; pair = pair.Next() {
		subject, err := s.fromStr(pair.Key)
		if err != nil {
			return nil, err
		}
		if subject.Kind() != TermBlankNode || len(a.Incoming[pair.Key]) != 1 {
			a.addRoot(subject, reached)
			continue
		}
		pending = append(pending, subject)
	}
	for _, subject := range pending {
		if !reached[subject.String()] {
			a.addRoot(subject, reached)
		}
	}
	return a, nil
}

func (a *RootAnalysis) addRoot(subject Term, reached map[string]bool) {
	key := subject.String()
	a.Roots = append(a.Roots, subject)
	a.RootSet[key] = true
	a.markReached(subject, reached)
}

// markReached marks every blank node nested below t.
func (a *RootAnalysis) markReached(t Term, reached map[string]bool) {
	key := t.String()
	if reached[key] {
		return
	}
	reached[key] = true
	var visit func(x Term)
	visit = func(x Term) {
		if c, ok := x.(Collection); ok {
			for _, el := range c.Elements {
				visit(el)
			}
			return
		}
		if a.inlineable(x) {
			a.markReached(x, reached)
		}
	}
	if c, ok := t.(Collection); ok {
		visit(c)
	}
	for _, st := range a.StatementsOf(t) {
		visit(st.O)
	}
}
