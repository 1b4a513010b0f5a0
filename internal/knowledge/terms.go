package knowledge

import (
	"regexp"
	"strings"
)

// termMatcher finds a glossary term inside free text.
//
// Terms made only of ASCII letters, digits and whitespace match as whole
// words, case-insensitively, with any run of whitespace inside the term
// matching any run in the text. Terms with other characters (e.g. "TL;DR",
// "C++") fall back to a case-insensitive substring match, since word
// boundaries are meaningless next to punctuation.
type termMatcher struct {
	re     *regexp.Regexp
	lower  string
	simple bool
}

func newTermMatcher(term string) *termMatcher {
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return nil
	}
	if !isSimpleTerm(trimmed) {
		return &termMatcher{lower: strings.ToLower(trimmed)}
	}

	parts := strings.Fields(trimmed)
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	re := regexp.MustCompile(`(?i)\b` + strings.Join(parts, `\s+`) + `\b`)
	return &termMatcher{re: re, simple: true}
}

func (m *termMatcher) matches(text string) bool {
	if text == "" {
		return false
	}
	if m.simple {
		return m.re.MatchString(text)
	}
	return strings.Contains(strings.ToLower(text), m.lower)
}

func isSimpleTerm(term string) bool {
	for _, r := range term {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v':
		default:
			return false
		}
	}
	return true
}

// TermUsed reports whether term occurs in text under the same rules that
// produce termUsage edges.
func TermUsed(text, term string) bool {
	m := newTermMatcher(term)
	return m != nil && m.matches(text)
}
