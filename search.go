package epubfind

// Search applies the query to every paragraph of the book in reading order
// and returns the matching paragraphs, in order, without deduplication.
// The result is recomputed on each call; searching the same book twice
// with the same query yields identical results.
func Search(b *Book, q *Query) []Match {
	var matches []Match
	info := b.Info()
	for _, p := range b.Paragraphs() {
		if q.Match(p.Text) {
			matches = append(matches, Match{Paragraph: p, Book: info})
		}
	}
	return matches
}
