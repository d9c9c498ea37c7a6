package epubfind

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FindBooks lists the ePub files to search. A path naming a file is
// returned as-is, whatever its extension: naming it explicitly is taken as
// intent. A directory is walked recursively and yields the files with a
// ".epub" extension (case-insensitive) in lexical order, so repeated scans
// report books in a stable order.
func FindBooks(path string) ([]string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return []string{path}, nil
	}

	var books []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".epub") {
			books = append(books, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return books, nil
}
