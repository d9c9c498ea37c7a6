package epubfind

import (
	"fmt"
	"regexp"
	"strings"
)

// Phrase is one user search term. When Regex is false the text is matched
// literally; when true it is treated as a regular expression pattern, which
// allows alternatives like "beamish|uffish" within a single phrase.
type Phrase struct {
	Text  string
	Regex bool
}

// Literals converts plain strings into literal phrases.
func Literals(texts []string) []Phrase {
	phrases := make([]Phrase, len(texts))
	for i, t := range texts {
		phrases[i] = Phrase{Text: t}
	}
	return phrases
}

// Patterns converts plain strings into regular expression phrases.
func Patterns(texts []string) []Phrase {
	phrases := make([]Phrase, len(texts))
	for i, t := range texts {
		phrases[i] = Phrase{Text: t, Regex: true}
	}
	return phrases
}

// whitespaceRun matches a run of whitespace inside a phrase.
var whitespaceRun = regexp.MustCompile(`\s+`)

// Query is a compiled set of search phrases. A paragraph matches the query
// when every phrase matches somewhere within its text.
type Query struct {
	phrases  []string
	patterns []*regexp.Regexp
}

// CompileQuery compiles the phrases into a single conjunctive query.
//
// Literal phrases have regexp metacharacters escaped; regex phrases pass
// through as written. In both, runs of whitespace are rewritten to match
// one or more whitespace characters, so "suddenly vanish away" matches
// regardless of spacing width or line breaks left over from the markup.
// Matching is case-insensitive and anchored to word boundaries at the
// phrase edges.
//
// An empty phrase list, a blank phrase, or an invalid regex fails with an
// error wrapping [ErrInvalidPattern].
func CompileQuery(phrases []Phrase) (*Query, error) {
	if len(phrases) == 0 {
		return nil, fmt.Errorf("epubfind: no search phrases given: %w", ErrInvalidPattern)
	}

	q := &Query{
		phrases:  make([]string, 0, len(phrases)),
		patterns: make([]*regexp.Regexp, 0, len(phrases)),
	}
	for _, p := range phrases {
		s := strings.TrimSpace(p.Text)
		if s == "" {
			return nil, fmt.Errorf("epubfind: empty search phrase: %w", ErrInvalidPattern)
		}
		if !p.Regex {
			s = regexp.QuoteMeta(s)
		}
		// Spaces in the phrase match any width of spacing in the text.
		s = whitespaceRun.ReplaceAllString(s, `\s+`)
		// Only full words get matched. The s flag lets a dot in a user
		// regex span dewrapped line breaks.
		re, err := regexp.Compile(`(?is)\b` + s + `\b`)
		if err != nil {
			return nil, fmt.Errorf("epubfind: phrase %q: %v: %w", p.Text, err, ErrInvalidPattern)
		}
		q.phrases = append(q.phrases, p.Text)
		q.patterns = append(q.patterns, re)
	}
	return q, nil
}

// Match reports whether every phrase of the query matches within text.
func (q *Query) Match(text string) bool {
	for _, re := range q.patterns {
		if !re.MatchString(text) {
			return false
		}
	}
	return true
}

// Phrases returns the original phrase strings, for diagnostics.
func (q *Query) Phrases() []string {
	return append([]string(nil), q.phrases...)
}
