package epubfind

import (
	"errors"
	"testing"
)

func TestCompileQuery_LiteralCaseInsensitive(t *testing.T) {
	q, err := CompileQuery(Literals([]string{"Snark"}))
	if err != nil {
		t.Fatalf("CompileQuery() error: %v", err)
	}
	for _, text := range []string{"the snark was a boojum", "The SNARK", "Snark!"} {
		if !q.Match(text) {
			t.Errorf("Match(%q) = false, want true", text)
		}
	}
	if q.Match("no match here") {
		t.Error(`Match("no match here") = true, want false`)
	}
}

func TestCompileQuery_WhitespaceWidthIgnored(t *testing.T) {
	q, err := CompileQuery(Literals([]string{"suddenly vanish away"}))
	if err != nil {
		t.Fatalf("CompileQuery() error: %v", err)
	}
	texts := []string{
		"it will suddenly vanish away, and never be met with again",
		"it will suddenly   vanish away",
		"it will suddenly vanish\naway, and never",
		"suddenly \t vanish\n\naway",
	}
	for _, text := range texts {
		if !q.Match(text) {
			t.Errorf("Match(%q) = false, want true", text)
		}
	}
}

func TestCompileQuery_LiteralEscapesMetacharacters(t *testing.T) {
	q, err := CompileQuery(Literals([]string{"2+2"}))
	if err != nil {
		t.Fatalf("CompileQuery() error: %v", err)
	}
	if !q.Match("we know 2+2 makes four") {
		t.Error(`Match("we know 2+2 makes four") = false, want true`)
	}
	if q.Match("we know 22 makes nothing") {
		t.Error(`literal "2+2" matched "22"; metacharacters not escaped`)
	}
}

func TestCompileQuery_ConjunctionAcrossPhrases(t *testing.T) {
	q, err := CompileQuery(Literals([]string{"snark", "boojum"}))
	if err != nil {
		t.Fatalf("CompileQuery() error: %v", err)
	}
	if !q.Match("for the snark was a boojum, you see") {
		t.Error("paragraph containing both phrases should match")
	}
	if q.Match("the snark alone") {
		t.Error("paragraph containing only one phrase should not match")
	}
	if q.Match("the boojum alone") {
		t.Error("paragraph containing only one phrase should not match")
	}
}

func TestCompileQuery_RegexAlternationWithinPhrase(t *testing.T) {
	// Disjunction within one phrase, conjunction across phrases.
	q, err := CompileQuery([]Phrase{
		{Text: "snark"},
		{Text: "beamish|uffish", Regex: true},
	})
	if err != nil {
		t.Fatalf("CompileQuery() error: %v", err)
	}
	cases := []struct {
		text string
		want bool
	}{
		{"oh, beamish nephew, the snark is near", true},
		{"the snark looked uffish", true},
		{"the snark said nothing", false},
		{"a beamish boy, no hunting today", false},
	}
	for _, c := range cases {
		if got := q.Match(c.text); got != c.want {
			t.Errorf("Match(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestCompileQuery_WordBoundaries(t *testing.T) {
	q, err := CompileQuery(Literals([]string{"beam"}))
	if err != nil {
		t.Fatalf("CompileQuery() error: %v", err)
	}
	if q.Match("a beamish boy") {
		t.Error(`"beam" matched inside "beamish"; word boundaries not enforced`)
	}
	if !q.Match("a beam of light") {
		t.Error(`Match("a beam of light") = false, want true`)
	}
}

func TestCompileQuery_RegexPassesThroughUnescaped(t *testing.T) {
	q, err := CompileQuery(Patterns([]string{`thimb.es`}))
	if err != nil {
		t.Fatalf("CompileQuery() error: %v", err)
	}
	if !q.Match("they sought it with thimbles") {
		t.Error("regex dot should match any character")
	}
}

func TestCompileQuery_EmptyPhraseRejected(t *testing.T) {
	for _, phrases := range [][]Phrase{
		nil,
		Literals([]string{""}),
		Literals([]string{"   "}),
		Literals([]string{"snark", "\t\n"}),
	} {
		if _, err := CompileQuery(phrases); !errors.Is(err, ErrInvalidPattern) {
			t.Errorf("CompileQuery(%v) error = %v, want ErrInvalidPattern", phrases, err)
		}
	}
}

func TestCompileQuery_InvalidRegexRejected(t *testing.T) {
	_, err := CompileQuery(Patterns([]string{`beamish|(`}))
	if !errors.Is(err, ErrInvalidPattern) {
		t.Fatalf("CompileQuery() error = %v, want ErrInvalidPattern", err)
	}
}

func TestQuery_PhrasesReturnsOriginals(t *testing.T) {
	q, err := CompileQuery([]Phrase{
		{Text: "suddenly vanish away"},
		{Text: "beamish|uffish", Regex: true},
	})
	if err != nil {
		t.Fatalf("CompileQuery() error: %v", err)
	}
	got := q.Phrases()
	want := []string{"suddenly vanish away", "beamish|uffish"}
	if len(got) != len(want) {
		t.Fatalf("Phrases() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Phrases()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
