package epubfind

import (
	"archive/zip"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
)

// maxMemberSize is the maximum allowed decompressed size for a single
// archive member. This guards against zip bombs; no sane content document
// comes close.
const maxMemberSize int64 = 128 * 1024 * 1024

// readMember reads the full contents of an archive member, enforcing
// maxMemberSize and rejecting members whose path escapes the archive root.
func readMember(f *zip.File) ([]byte, error) {
	if !isSafePath(f.Name) {
		return nil, fmt.Errorf("epubfind: unsafe zip entry path: %s", f.Name)
	}
	if f.UncompressedSize64 > uint64(maxMemberSize) {
		return nil, fmt.Errorf("epubfind: zip entry %s too large: %d bytes", f.Name, f.UncompressedSize64)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("epubfind: open zip entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	// Read one byte past the limit to catch forged size declarations.
	data, err := io.ReadAll(io.LimitReader(rc, maxMemberSize+1))
	if err != nil {
		return nil, fmt.Errorf("epubfind: read zip entry %s: %w", f.Name, err)
	}
	if int64(len(data)) > maxMemberSize {
		return nil, fmt.Errorf("epubfind: zip entry %s exceeds decompressed size limit", f.Name)
	}
	return data, nil
}

// isSafePath reports whether p is an archive-internal path that stays
// inside the archive root.
func isSafePath(p string) bool {
	cleaned := path.Clean(p)
	if strings.HasPrefix(cleaned, "/") {
		return false
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return false
	}
	return true
}

// resolveHref resolves a manifest href relative to the OPF directory.
// Hrefs are URL-escaped in the OPF; archive member names are not.
// Returns "" when the resolved path is absolute or escapes the root.
func resolveHref(opfDir, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "/") {
		return ""
	}
	if decoded, err := url.PathUnescape(href); err == nil {
		href = decoded
	}
	resolved := path.Clean(path.Join(opfDir, href))
	if !isSafePath(resolved) {
		return ""
	}
	return resolved
}

// stripBOM removes a leading UTF-8 BOM from data, if present.
func stripBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}
