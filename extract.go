package epubfind

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// headingLevels maps heading elements to their rank. Lower is more major.
var headingLevels = map[atom.Atom]int{
	atom.H1: 1,
	atom.H2: 2,
	atom.H3: 3,
	atom.H4: 4,
	atom.H5: 5,
	atom.H6: 6,
}

// paragraphTags is the set of block elements treated as one logical
// paragraph each. A matching element's whole subtree becomes a single
// paragraph unit; nested blocks contribute line breaks, not extra units.
var paragraphTags = map[atom.Atom]bool{
	atom.P:          true,
	atom.Blockquote: true,
	atom.Li:         true,
}

// headingPart is one heading element merged into the current context.
type headingPart struct {
	level int
	text  string
}

// extractor walks content documents in source order, tracking the current
// heading context and a continuous paragraph counter. One extractor spans
// all documents of a book; it must never outlive the book walk, and the
// walk must create a fresh one so repeated walks are independent.
type extractor struct {
	parts    []headingPart
	paraSeen bool
	order    int
}

// extract walks one parsed document depth-first in document order and
// returns its paragraphs. Heading state and paragraph numbering persist
// across calls on the same extractor.
func (e *extractor) extract(doc *html.Node) []Paragraph {
	var out []Paragraph
	e.walk(doc, &out)
	return out
}

func (e *extractor) walk(n *html.Node, out *[]Paragraph) {
	if n.Type == html.ElementNode {
		switch {
		case n.DataAtom == atom.Script || n.DataAtom == atom.Style:
			return
		case headingLevels[n.DataAtom] != 0:
			e.mergeHeading(headingLevels[n.DataAtom], collapseSpace(blockText(n)))
			return
		case paragraphTags[n.DataAtom]:
			e.emit(blockText(n), out)
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		e.walk(c, out)
	}
}

// emit normalizes the collected block text and, when non-empty, appends a
// paragraph carrying a snapshot of the current heading context.
// Whitespace-only blocks are dropped silently.
func (e *extractor) emit(text string, out *[]Paragraph) {
	text = normalizeText(text)
	if text == "" {
		return
	}
	*out = append(*out, Paragraph{
		Text:    text,
		Heading: e.heading(),
		Order:   e.order,
	})
	e.order++
	e.paraSeen = true
}

// mergeHeading merges a newly seen heading into the tracked context.
//
// Consecutive headings with no paragraph between them accumulate into one
// heading unit: source markup often renders a chapter's label and its
// title as two separate heading elements ("Fit the Third" followed by
// "THE BAKER'S TALE"). Once a paragraph has been emitted, a heading at or
// above the rank of an accumulated part replaces that part and everything
// below it; a deeper heading appends.
func (e *extractor) mergeHeading(level int, text string) {
	if text == "" {
		return
	}
	switch {
	case len(e.parts) == 0:
		e.parts = append(e.parts, headingPart{level, text})
	case e.paraSeen:
		i := len(e.parts)
		for i > 0 && e.parts[i-1].level >= level {
			i--
		}
		e.parts = append(e.parts[:i], headingPart{level, text})
	case level < e.parts[0].level:
		// A higher-ranked heading restarts the accumulation.
		e.parts = append(e.parts[:0], headingPart{level, text})
	default:
		e.parts = append(e.parts, headingPart{level, text})
	}
	e.paraSeen = false
}

// heading returns a snapshot of the current heading context, with the
// accumulated heading lines joined by line breaks.
func (e *extractor) heading() Heading {
	if len(e.parts) == 0 {
		return Heading{}
	}
	lines := make([]string, len(e.parts))
	for i, p := range e.parts {
		lines[i] = p.text
	}
	return Heading{Level: e.parts[0].level, Text: strings.Join(lines, "\n")}
}

// blockText concatenates the text of n's subtree, dewrapping text that the
// markup splits across inline elements such as emphasis spans. Nested
// block boundaries and <br> elements produce line breaks so verse keeps
// its line structure. Script and style content is skipped.
func blockText(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			return
		case html.ElementNode:
			switch {
			case n.DataAtom == atom.Script || n.DataAtom == atom.Style:
				return
			case n.DataAtom == atom.Br:
				sb.WriteByte('\n')
				return
			case n.DataAtom == atom.Div || paragraphTags[n.DataAtom] || headingLevels[n.DataAtom] != 0:
				if sb.Len() > 0 {
					sb.WriteByte('\n')
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		visit(c)
	}
	return sb.String()
}

// normalizeText dewraps source line-wrapping: whitespace runs containing a
// line break collapse to a single newline, every other run to a single
// space. Leading and trailing whitespace is trimmed. The distinction keeps
// verse lines apart for unwrapped display while matching stays unaffected,
// since compiled phrases treat all whitespace alike.
func normalizeText(s string) string {
	var sb strings.Builder
	space, newline := false, false
	for _, r := range s {
		if r == '\n' || r == '\r' {
			space, newline = true, true
			continue
		}
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && sb.Len() > 0 {
			if newline {
				sb.WriteByte('\n')
			} else {
				sb.WriteByte(' ')
			}
		}
		space, newline = false, false
		sb.WriteRune(r)
	}
	return sb.String()
}

// collapseSpace collapses every whitespace run to a single space and trims
// the ends. Heading text is always a single line per heading element.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
