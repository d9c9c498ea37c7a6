package epubfind

// Heading identifies the nearest preceding heading for a paragraph.
// The zero value means no heading has been seen yet.
type Heading struct {
	// Level is the rank of the heading's topmost element: 1 for <h1>
	// through 6 for <h6>.
	Level int

	// Text is the heading text. When a chapter's label and its title are
	// separate consecutive heading elements ("Fit the Third" followed by
	// "THE BAKER'S TALE"), their lines are joined with a line break into
	// one heading unit.
	Text string
}

// Paragraph is one logical block of body text, dewrapped from the source
// markup and attributed to the nearest preceding heading. Paragraphs are
// immutable once produced.
type Paragraph struct {
	// Text is the paragraph text. Whitespace runs are collapsed to a
	// single space, except that runs containing a line break collapse to
	// a single newline, preserving verse line structure.
	Text string

	// Heading is the heading context in effect where the paragraph
	// appears. The zero Heading means the paragraph precedes any heading.
	Heading Heading

	// Order is the paragraph's position in reading order, continuous
	// across all content documents of the book.
	Order int
}

// BookInfo identifies one processed ePub.
type BookInfo struct {
	// Title is the book title from the OPF metadata, or the file name
	// when the metadata declares none.
	Title string

	// Path is the file system path the book was opened from.
	Path string
}

// Match is one paragraph that satisfied a query, together with the book
// it came from.
type Match struct {
	Paragraph Paragraph
	Book      BookInfo
}

// spineItem is one entry of the book's reading order, resolved against
// the OPF manifest.
type spineItem struct {
	// Href is the content file path within the ePub archive.
	Href string

	// MediaType is the MIME type of the referenced content file.
	MediaType string
}
