package epubfind

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// zipBytes creates an in-memory ZIP archive from the provided files map
// (path → content). It calls t.Fatal on any error.
func zipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	// Write mimetype first if present (ePub spec requires it as first entry).
	if mt, ok := files["mimetype"]; ok {
		fw, err := zw.Create("mimetype")
		if err != nil {
			t.Fatalf("zipBytes: create mimetype: %v", err)
		}
		if _, err := io.WriteString(fw, mt); err != nil {
			t.Fatalf("zipBytes: write mimetype: %v", err)
		}
	}
	for name, content := range files {
		if name == "mimetype" {
			continue
		}
		fw, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zipBytes: create %s: %v", name, err)
		}
		if _, err := io.WriteString(fw, content); err != nil {
			t.Fatalf("zipBytes: write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zipBytes: close writer: %v", err)
	}
	return buf.Bytes()
}

// openTestBook builds an in-memory ePub from the files map and opens it
// via NewReader under the given name.
func openTestBook(t *testing.T, name string, files map[string]string) *Book {
	t.Helper()
	data := zipBytes(t, files)
	b, err := NewReader(bytes.NewReader(data), int64(len(data)), name)
	if err != nil {
		t.Fatalf("openTestBook: %v", err)
	}
	return b
}

// writeTestBook writes an ePub archive to a temporary file and returns its
// path, for tests exercising Open and directory scanning.
func writeTestBook(t *testing.T, dir, name string, files map[string]string) string {
	t.Helper()
	fp := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		t.Fatalf("writeTestBook: mkdir: %v", err)
	}
	if err := os.WriteFile(fp, zipBytes(t, files), 0644); err != nil {
		t.Fatalf("writeTestBook: write file: %v", err)
	}
	return fp
}

const testContainerXML = `<?xml version="1.0"?>
<container xmlns="urn:oasis:names:tc:opendocument:xmlns:container" version="1.0">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

// opfWith builds a minimal OPF package document with the given metadata
// block and one manifest/spine entry per content file name.
func opfWith(metadata string, hrefs ...string) string {
	s := `<?xml version="1.0" encoding="utf-8"?>
<package xmlns="http://www.idpf.org/2007/opf" unique-identifier="uid" version="2.0">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
` + metadata + `  </metadata>
  <manifest>
`
	for i, href := range hrefs {
		s += `    <item id="doc` + string(rune('0'+i)) + `" href="` + href + `" media-type="application/xhtml+xml"/>
`
	}
	s += `  </manifest>
  <spine>
`
	for i := range hrefs {
		s += `    <itemref idref="doc` + string(rune('0'+i)) + `"/>
`
	}
	return s + `  </spine>
</package>`
}

// xhtmlDoc wraps body markup in a complete XHTML content document.
func xhtmlDoc(body string) string {
	return `<?xml version="1.0" encoding="utf-8"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<head><title>test</title></head>
<body>
` + body + `
</body>
</html>`
}

// snarkFiles is the archive layout of a small three-chapter book used
// across tests. Each chapter pairs a fit label with a tale title in two
// consecutive heading elements, and exactly one paragraph per chapter
// contains one of: beamish, uffish, galumphing.
func snarkFiles() map[string]string {
	return map[string]string{
		"mimetype":               "application/epub+zip",
		"META-INF/container.xml": testContainerXML,
		"OEBPS/content.opf": opfWith(
			"    <dc:title>The Hunting of the Snark: An Agony in Eight Fits</dc:title>\n"+
				"    <dc:creator>Lewis Carroll</dc:creator>\n",
			"fit3.xhtml", "fit4.xhtml", "fit5.xhtml"),
		"OEBPS/fit3.xhtml": xhtmlDoc(`
  <h2>Fit the Third</h2>
  <h3>THE BAKER'S TALE</h3>
  <p>They roused him with muffins&#8212;they roused him with ice&#8212;<br/>
They roused him with mustard and cress&#8212;</p>
  <p>"But oh, beamish nephew, beware of the day,<br/>
If your Snark be a Boojum! For then</p>`),
		"OEBPS/fit4.xhtml": xhtmlDoc(`
  <h2>Fit the Fourth</h2>
  <h3>THE HUNTING</h3>
  <p>The Bellman looked uffish, and wrinkled his brow.<br/>
"If only you'd spoken before!</p>
  <p>The rest of the crew said nothing at all.</p>`),
		"OEBPS/fit5.xhtml": xhtmlDoc(`
  <h2>Fit the Fifth</h2>
  <h3>THE BEAVER'S LESSON</h3>
  <p>The Beaver had counted with scrupulous care,<br/>
Attending to every word.</p>
  <p>And it came galumphing back in the night,<br/>
A sound to remember for years.</p>`),
	}
}
