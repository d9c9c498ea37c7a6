package epubfind

import (
	"strings"
	"unicode/utf8"
)

// defaultWidth is the display width used when ReportOptions.Width is zero.
const defaultWidth = 70

// ReportOptions controls how search results are rendered.
type ReportOptions struct {
	// Width is the display width for banner rules and word-wrapped
	// paragraphs. Zero means 70 columns.
	Width int

	// NoWrap preserves each paragraph's own line breaks instead of
	// re-wrapping to Width. Useful for verse, where line breaks are
	// meaningful.
	NoWrap bool

	// Bare prints only the file path of each matching book.
	Bare bool
}

// Render formats one book's matches for terminal display: a banner with
// the book title and file path, then the matching paragraphs grouped under
// their chapter headings in reading order. Consecutive matches sharing a
// heading form one group; a change of heading text starts a new group even
// if the same text appeared earlier. Matches without a heading render with
// no heading banner.
//
// Returns the empty string when matches is empty, so callers can decide
// how to announce books without matches.
func Render(book BookInfo, matches []Match, opts ReportOptions) string {
	if len(matches) == 0 {
		return ""
	}
	if opts.Bare {
		return book.Path + "\n"
	}

	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}
	titleRule := strings.Repeat("-", width)
	headingRule := strings.TrimRight(strings.Repeat("- ", width/2), " ")

	var sb strings.Builder
	banner(&sb, titleRule, book.Title+"\n"+book.Path)

	heading := ""
	for i, m := range matches {
		if h := m.Paragraph.Heading.Text; i == 0 || h != heading {
			heading = h
			if heading != "" {
				banner(&sb, headingRule, heading)
			}
		}
		sb.WriteByte('\n')
		if opts.NoWrap {
			sb.WriteString(m.Paragraph.Text)
		} else {
			sb.WriteString(wrapText(m.Paragraph.Text, width))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// banner writes text between two rule lines, preceded by a blank line.
func banner(sb *strings.Builder, rule, text string) {
	sb.WriteByte('\n')
	sb.WriteString(rule)
	sb.WriteByte('\n')
	sb.WriteString(text)
	sb.WriteByte('\n')
	sb.WriteString(rule)
	sb.WriteByte('\n')
}

// wrapText greedily wraps text to the given width, treating all existing
// whitespace, including line breaks, as word separators. Words longer than
// the width get a line of their own.
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(words[0])
	line := utf8.RuneCountInString(words[0])
	for _, w := range words[1:] {
		n := utf8.RuneCountInString(w)
		if line+1+n > width {
			sb.WriteByte('\n')
			line = n
		} else {
			sb.WriteByte(' ')
			line += 1 + n
		}
		sb.WriteString(w)
	}
	return sb.String()
}
