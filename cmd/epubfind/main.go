// Command epubfind searches for sets of phrases within an EPUB ebook, or
// within every ebook in a directory.
//
// A paragraph from an ebook matches if it contains all the search phrases.
// Matching paragraphs are output under the book title and chapter heading
// so that they can be located in the book.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/simp-lee/epubfind"
)

const description = `Search for sets of phrases within an EPUB ebook, or within every ebook
in a directory.

A paragraph from an ebook matches if it contains all the search phrases.
Matching paragraphs are output with their book title and chapter heading
so that they can be located in the book.

Search phrases are case-insensitive and ignore the width of the spacing
between words. A phrase can be a single word or several words in quotes,
e.g. 'suddenly vanish away'. With --regexp, each phrase is a regular
expression pattern; 'beamish|uffish' finds paragraphs containing either
word.`

// CLI defines the command-line interface for epubfind.
var CLI struct {
	Bare    bool     `short:"b" help:"Only output the file names of matching books."`
	NoWrap  bool     `short:"n" help:"Do not word-wrap paragraphs; keep their own line breaks."`
	Width   int      `short:"w" default:"70" help:"Display width for banners and wrapped text."`
	Regexp  bool     `short:"e" help:"Treat the phrases as regular expression patterns."`
	Path    string   `arg:"" type:"path" help:"An ePub file or a directory containing ePub files."`
	Phrases []string `arg:"" name:"phrase" help:"Search phrases; a matching paragraph contains all of them."`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("epubfind"),
		kong.Description(description),
	)
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bookError records a book that could not be searched, for reporting after
// all results have been printed.
type bookError struct {
	path string
	err  error
}

func run() error {
	var phrases []epubfind.Phrase
	if CLI.Regexp {
		phrases = epubfind.Patterns(CLI.Phrases)
	} else {
		phrases = epubfind.Literals(CLI.Phrases)
	}
	// Compile before touching any book; a bad phrase aborts the whole run.
	query, err := epubfind.CompileQuery(phrases)
	if err != nil {
		return err
	}

	books, err := epubfind.FindBooks(CLI.Path)
	if err != nil {
		return err
	}

	opts := epubfind.ReportOptions{
		Width:  CLI.Width,
		NoWrap: CLI.NoWrap,
		Bare:   CLI.Bare,
	}

	opened := 0
	var failures []bookError
	for _, path := range books {
		if err := searchBook(path, query, opts); err != nil {
			failures = append(failures, bookError{path, err})
			continue
		}
		opened++
	}

	for _, f := range failures {
		fmt.Fprintf(os.Stderr, "*** Error in %q: %v\n", f.path, f.err)
	}
	if opened == 0 {
		return fmt.Errorf("no ePub could be searched under %q", CLI.Path)
	}
	return nil
}

// searchBook opens one book, prints its report if anything matched, and
// releases the book before the next one is processed.
func searchBook(path string, query *epubfind.Query, opts epubfind.ReportOptions) error {
	book, err := epubfind.Open(path)
	if err != nil {
		return err
	}
	defer book.Close()

	matches := epubfind.Search(book, query)
	if out := epubfind.Render(book.Info(), matches, opts); out != "" {
		fmt.Print(out)
	}
	return nil
}
