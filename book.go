package epubfind

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// Book provides access to one ePub file for searching.
// Use Open or NewReader to create a Book instance.
//
// A Book is not safe for concurrent use by multiple goroutines.
type Book struct {
	zip      *zip.Reader
	zipExact map[string]*zip.File // exact-match ZIP file index
	zipLower map[string]*zip.File // lowercase ZIP file index
	closer   io.Closer            // non-nil only when created via Open
	info     BookInfo
	spine    []spineItem
	warnings []string
}

// Open opens the ePub file at the given path.
// The caller must call Close when done reading from the book.
func Open(path string) (*Book, error) {
	zrc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("epubfind: open %s: %v: %w", path, err, ErrInvalidArchive)
	}

	b, err := initBook(&zrc.Reader, zrc, path)
	if err != nil {
		zrc.Close()
		return nil, err
	}
	return b, nil
}

// NewReader creates a Book from an io.ReaderAt with the given size.
// name stands in for the file path in reports and as the title fallback.
// The caller is responsible for the lifetime of r; Close is a no-op.
func NewReader(r io.ReaderAt, size int64, name string) (*Book, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("epubfind: open %s: %v: %w", name, err, ErrInvalidArchive)
	}
	return initBook(zr, nil, name)
}

// initBook performs common initialisation: DRM detection, OPF discovery,
// title and spine resolution.
func initBook(zr *zip.Reader, closer io.Closer, path string) (*Book, error) {
	b := &Book{
		zip:    zr,
		closer: closer,
	}
	b.buildZipIndex()

	// Encrypted content cannot be searched.
	if err := b.checkDRM(); err != nil {
		return nil, fmt.Errorf("epubfind: %s: %w", path, err)
	}

	opfPath, err := b.findOPF()
	if err != nil {
		return nil, err
	}
	opfFile := b.findFile(opfPath)
	if opfFile == nil {
		return nil, fmt.Errorf("epubfind: OPF file not found in archive: %s: %w", opfPath, ErrInvalidEPub)
	}
	opfData, err := readMember(opfFile)
	if err != nil {
		return nil, fmt.Errorf("epubfind: read OPF file: %w", err)
	}
	pkg, err := parseOPF(opfData)
	if err != nil {
		return nil, err
	}

	b.spine = buildSpine(pkg, opfPath)
	if len(b.spine) == 0 {
		return nil, fmt.Errorf("epubfind: %s: %w", path, ErrNoSpine)
	}

	title := opfTitle(pkg)
	if title == "" {
		// A missing title is never fatal; fall back to the file name.
		title = filepath.Base(path)
		b.warnings = append(b.warnings, "no dc:title in OPF metadata; using file name")
	}
	b.info = BookInfo{Title: title, Path: path}

	return b, nil
}

// Close releases resources held by the Book. When the Book was created via
// Open, Close closes the underlying file. Close is idempotent.
func (b *Book) Close() error {
	if b.closer != nil {
		err := b.closer.Close()
		b.closer = nil
		return err
	}
	return nil
}

// Info returns the book's title and file path.
func (b *Book) Info() BookInfo {
	return b.info
}

// Warnings returns the non-fatal problems encountered while reading the
// book, such as content documents that could not be parsed.
func (b *Book) Warnings() []string {
	return append([]string(nil), b.warnings...)
}

// ReadFile reads a file from the ePub archive by its ZIP-internal path.
// The lookup falls back to a case-insensitive match.
func (b *Book) ReadFile(name string) ([]byte, error) {
	f := b.findFile(name)
	if f == nil {
		return nil, ErrFileNotFound
	}
	return readMember(f)
}

// Paragraphs walks every content document in spine order and returns the
// book's paragraphs in reading order, each attributed to the heading in
// effect where it appears. The heading context carries across document
// boundaries: chapters are sometimes split over several files without
// repeating their heading.
//
// Content documents that cannot be read or parsed are skipped and recorded
// as warnings; the walk continues with the remaining documents. The result
// is recomputed on every call.
func (b *Book) Paragraphs() []Paragraph {
	var paragraphs []Paragraph
	ex := &extractor{}
	for _, si := range b.spine {
		if !isContentDocument(si.MediaType) {
			continue
		}
		data, err := b.ReadFile(si.Href)
		if err != nil {
			b.warn(fmt.Sprintf("skipping %s: %v", si.Href, err))
			continue
		}
		doc, err := html.Parse(bytes.NewReader(stripBOM(data)))
		if err != nil {
			b.warn(fmt.Sprintf("skipping %s: cannot parse: %v", si.Href, err))
			continue
		}
		paragraphs = append(paragraphs, ex.extract(doc)...)
	}
	return paragraphs
}

// warn records a non-fatal problem, deduplicating repeats so that walking
// the book twice does not double the warning list.
func (b *Book) warn(msg string) {
	for _, w := range b.warnings {
		if w == msg {
			return
		}
	}
	b.warnings = append(b.warnings, msg)
}

// buildZipIndex builds exact-match and lowercase ZIP file indexes for O(1) lookups.
func (b *Book) buildZipIndex() {
	b.zipExact = make(map[string]*zip.File, len(b.zip.File))
	b.zipLower = make(map[string]*zip.File, len(b.zip.File))
	for _, f := range b.zip.File {
		if _, exists := b.zipExact[f.Name]; !exists {
			b.zipExact[f.Name] = f // first match wins
		}
		lower := strings.ToLower(f.Name)
		if _, exists := b.zipLower[lower]; !exists {
			b.zipLower[lower] = f
		}
	}
}

// findFile looks up a ZIP entry by path, trying an exact match first and
// falling back to a case-insensitive match.
func (b *Book) findFile(name string) *zip.File {
	if f, ok := b.zipExact[name]; ok {
		return f
	}
	if f, ok := b.zipLower[strings.ToLower(name)]; ok {
		return f
	}
	return nil
}
