package testutil

import (
	"bytes"
	"io/fs"
	"testing"

	"github.com/klauspost/compress/zip"
)

// ZipEntry is one file in an archive built by ZipArchive.
type ZipEntry struct {
	Name string
	Body string
	Mode fs.FileMode // 0 means 0644
}

// ZipArchive builds an in-memory zip archive from entries, in order.
// Names ending in "/" become directory entries.
func ZipArchive(t testing.TB, entries ...ZipEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for _, e := range entries {
		header := &zip.FileHeader{Name: e.Name, Method: zip.Deflate}
		mode := e.Mode
		if mode == 0 {
			mode = 0o644
		}
		if len(e.Name) > 0 && e.Name[len(e.Name)-1] == '/' {
			mode |= fs.ModeDir | 0o111
			header.Method = zip.Store
		}
		header.SetMode(mode)

		fw, err := w.CreateHeader(header)
		if err != nil {
			t.Fatalf("failed to add %s to archive: %v", e.Name, err)
		}
		if _, err := fw.Write([]byte(e.Body)); err != nil {
			t.Fatalf("failed to write %s: %v", e.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatalf("failed to close archive: %v", err)
	}
	return buf.Bytes()
}
