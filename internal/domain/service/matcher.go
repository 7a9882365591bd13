package service

import (
	"sort"
	"strings"

	goahocorasick "github.com/anknown/ahocorasick"
)

// substringMatcher reports the first table entry contained in a string.
// It uses an Aho-Corasick automaton and falls back to a linear scan when
// the automaton cannot be built.
type substringMatcher struct {
	patterns []string
	machine  *goahocorasick.Machine
}

func newSubstringMatcher(patterns []string) *substringMatcher {
	m := &substringMatcher{patterns: patterns}
	if len(patterns) == 0 {
		return m
	}

	sorted := make([]string, len(patterns))
	copy(sorted, patterns)
	sort.Strings(sorted)

	keywords := make([][]rune, 0, len(sorted))
	for _, p := range sorted {
		keywords = append(keywords, []rune(p))
	}

	machine := new(goahocorasick.Machine)
	if err := buildMachine(machine, keywords); err == nil {
		m.machine = machine
	}
	return m
}

func buildMachine(machine *goahocorasick.Machine, keywords [][]rune) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errBuildPanicked
		}
	}()
	return machine.Build(keywords)
}

// find returns the matching pattern, or "" and false.
func (m *substringMatcher) find(s string) (string, bool) {
	if len(m.patterns) == 0 || s == "" {
		return "", false
	}
	if m.machine != nil {
		if p, ok, safe := m.search(s); safe {
			return p, ok
		}
	}
	for _, p := range m.patterns {
		if strings.Contains(s, p) {
			return p, true
		}
	}
	return "", false
}

func (m *substringMatcher) search(s string) (pattern string, ok bool, safe bool) {
	defer func() {
		if r := recover(); r != nil {
			safe = false
		}
	}()
	terms := m.machine.MultiPatternSearch([]rune(s), true)
	if len(terms) == 0 {
		return "", false, true
	}
	return string(terms[0].Word), true, true
}
