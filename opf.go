package epubfind

import (
	"encoding/xml"
	"fmt"
	"path"
	"regexp"
	"strings"
)

// containerPath is the well-known location of container.xml in an ePub archive.
const containerPath = "META-INF/container.xml"

// containerXML models the META-INF/container.xml file used to locate the OPF.
type containerXML struct {
	XMLName   xml.Name `xml:"container"`
	RootFiles []struct {
		FullPath  string `xml:"full-path,attr"`
		MediaType string `xml:"media-type,attr"`
	} `xml:"rootfiles>rootfile"`
}

// opfPackage models the parts of the OPF package document the search needs:
// title metadata, the manifest, and the spine.
type opfPackage struct {
	XMLName  xml.Name `xml:"package"`
	Metadata struct {
		Titles []string `xml:"http://purl.org/dc/elements/1.1/ title"`
	} `xml:"metadata"`
	Manifest struct {
		Items []opfItem `xml:"item"`
	} `xml:"manifest"`
	Spine struct {
		ItemRefs []struct {
			IDRef string `xml:"idref,attr"`
		} `xml:"itemref"`
	} `xml:"spine"`
}

// opfItem represents a single <item> in the OPF manifest.
type opfItem struct {
	ID        string `xml:"id,attr"`
	Href      string `xml:"href,attr"`
	MediaType string `xml:"media-type,attr"`
}

// findOPF locates the OPF package document inside the archive. It first
// reads META-INF/container.xml; when that is missing it falls back to
// scanning the archive for a ".opf" member.
func (b *Book) findOPF() (string, error) {
	f := b.findFile(containerPath)
	if f == nil {
		for _, zf := range b.zip.File {
			if strings.HasSuffix(strings.ToLower(zf.Name), ".opf") {
				return zf.Name, nil
			}
		}
		return "", fmt.Errorf("epubfind: no container.xml and no OPF file in archive: %w", ErrInvalidEPub)
	}

	data, err := readMember(f)
	if err != nil {
		return "", fmt.Errorf("epubfind: read container.xml: %w", err)
	}

	var c containerXML
	if err := xml.Unmarshal(stripBOM(data), &c); err != nil {
		return "", fmt.Errorf("epubfind: parse container.xml: %w", err)
	}

	for _, rf := range c.RootFiles {
		fullPath := strings.TrimSpace(rf.FullPath)
		if fullPath == "" {
			continue
		}
		if rf.MediaType == "" || strings.EqualFold(strings.TrimSpace(rf.MediaType), "application/oebps-package+xml") {
			return fullPath, nil
		}
	}
	return "", fmt.Errorf("epubfind: container.xml names no package document: %w", ErrInvalidEPub)
}

// parseOPF parses the OPF package document.
func parseOPF(data []byte) (*opfPackage, error) {
	data = preprocessEntities(stripBOM(data))

	var pkg opfPackage
	if err := xml.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("epubfind: parse OPF: %w", err)
	}
	return &pkg, nil
}

// opfTitle returns the first non-empty dc:title, or "" when none is declared.
func opfTitle(pkg *opfPackage) string {
	for _, t := range pkg.Metadata.Titles {
		if v := strings.TrimSpace(t); v != "" {
			return v
		}
	}
	return ""
}

// buildSpine resolves the spine itemrefs against the manifest into ordered
// content references. Hrefs are resolved relative to the OPF directory;
// itemrefs without a manifest entry or with an unsafe path are dropped.
func buildSpine(pkg *opfPackage, opfPath string) []spineItem {
	byID := make(map[string]opfItem, len(pkg.Manifest.Items))
	for _, item := range pkg.Manifest.Items {
		byID[item.ID] = item
	}

	opfDir := path.Dir(opfPath)
	spine := make([]spineItem, 0, len(pkg.Spine.ItemRefs))
	for _, ref := range pkg.Spine.ItemRefs {
		item, ok := byID[ref.IDRef]
		if !ok || item.Href == "" {
			continue
		}
		href := resolveHref(opfDir, item.Href)
		if href == "" {
			continue
		}
		spine = append(spine, spineItem{Href: href, MediaType: item.MediaType})
	}
	return spine
}

// isContentDocument reports whether a spine item's media type is an XHTML
// content document. An empty media type is allowed through for tolerance
// of sloppy manifests.
func isContentDocument(mediaType string) bool {
	switch strings.ToLower(strings.TrimSpace(mediaType)) {
	case "", "application/xhtml+xml", "text/html":
		return true
	}
	return false
}

// entityReplacements maps HTML named entities to XML numeric references.
// encoding/xml only knows the five XML entities, but OPF files in the wild
// use typographic HTML entities freely.
var entityReplacements = map[string]string{
	"nbsp": "&#160;", "mdash": "&#8212;", "ndash": "&#8211;",
	"hellip": "&#8230;",
	"lsquo": "&#8216;", "rsquo": "&#8217;",
	"ldquo": "&#8220;", "rdquo": "&#8221;",
	"copy": "&#169;", "reg": "&#174;", "trade": "&#8482;",
	"eacute": "&#233;", "egrave": "&#232;", "ecirc": "&#234;",
	"agrave": "&#224;", "auml": "&#228;", "ouml": "&#246;",
	"uuml": "&#252;", "ntilde": "&#241;", "ccedil": "&#231;",
}

var entityPattern = regexp.MustCompile(
	`(?i)&(nbsp|mdash|ndash|hellip|lsquo|rsquo|ldquo|rdquo|copy|reg|trade|` +
		`eacute|egrave|ecirc|agrave|auml|ouml|uuml|ntilde|ccedil);`)

// preprocessEntities replaces common HTML named entities with numeric
// character references so encoding/xml can parse the data.
func preprocessEntities(data []byte) []byte {
	return entityPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		name := strings.ToLower(string(match[1 : len(match)-1]))
		if repl, ok := entityReplacements[name]; ok {
			return []byte(repl)
		}
		return match
	})
}
