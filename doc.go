// Package epubfind searches for sets of phrases within EPUB ebooks.
//
// A paragraph from an ebook matches when it contains all the search
// phrases. Matching paragraphs are reported under the book title and the
// chapter heading they appear beneath, grouped and ordered as they appear
// in the book.
//
// Phrases are case-insensitive and ignore the width of the spacing between
// words, so "suddenly vanish away" matches even when the source markup
// wraps the words across lines. A phrase may also be a regular expression
// pattern; "beamish|uffish" finds paragraphs containing either word, while
// separate phrases must all match (conjunction across phrases, alternation
// within one).
//
// # Searching a book
//
// Compile the phrases once, then open and search each book:
//
//	query, err := epubfind.CompileQuery(epubfind.Literals([]string{"snark", "boojum"}))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	book, err := epubfind.Open("snark.epub")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer book.Close()
//
//	matches := epubfind.Search(book, query)
//	fmt.Print(epubfind.Render(book.Info(), matches, epubfind.ReportOptions{}))
//
// [FindBooks] discovers the ePub files under a directory; per-book open
// failures should be reported and skipped rather than aborting the scan.
//
// # Error Handling
//
// The package defines sentinel errors for the failure classes:
//   - [ErrInvalidPattern] – a phrase fails to compile; fatal for the whole
//     invocation, surfaced before any book is opened
//   - [ErrInvalidArchive] – the file is not a readable ZIP container
//   - [ErrInvalidEPub] – the container names no package document
//   - [ErrNoSpine] – the book has no discoverable reading order
//   - [ErrDRMProtected] – the content is encrypted and cannot be searched
//   - [ErrFileNotFound] – a requested archive member is missing
//
// Content documents that fail to parse are skipped, not fatal: the walk
// continues with the rest of the book and the problem is recorded in
// [Book.Warnings].
package epubfind
