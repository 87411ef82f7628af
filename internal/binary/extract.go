package binary

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
)

// Extractor unpacks an archive into a directory.
type Extractor interface {
	// Extract writes the archive entries under destDir and returns the
	// slash-separated paths of the written files, relative to destDir.
	Extract(fs afero.Fs, archive []byte, destDir string) ([]string, error)
}

// ZipExtractor handles zip archive extraction
type ZipExtractor struct{}

// NewZipExtractor creates a new zip extractor
func NewZipExtractor() *ZipExtractor {
	return &ZipExtractor{}
}

// Extract extracts a zip archive held in memory to destDir.
func (e *ZipExtractor) Extract(fs afero.Fs, archive []byte, destDir string) ([]string, error) {
	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("open zip archive: %w", err)
	}

	if err := fs.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("create dest dir: %w", err)
	}

	cleanDest := filepath.Clean(destDir)
	var written []string

	for _, f := range reader.File {
		name := path.Clean(strings.TrimPrefix(f.Name, "./"))
		if name == "." {
			continue
		}
		target := filepath.Join(cleanDest, filepath.FromSlash(name))

		// Security check: prevent path traversal
		if path.IsAbs(name) || !strings.HasPrefix(target, cleanDest+string(os.PathSeparator)) {
			return written, fmt.Errorf("illegal file path: %s", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := fs.MkdirAll(target, 0o755); err != nil {
				return written, fmt.Errorf("create directory %s: %w", target, err)
			}
			continue
		}

		if err := extractFile(fs, f, target); err != nil {
			return written, err
		}
		written = append(written, name)
	}

	return written, nil
}

func extractFile(fs afero.Fs, f *zip.File, target string) error {
	if err := fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create parent dir for %s: %w", target, err)
	}

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}

	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("open %s in archive: %w", f.Name, err)
	}
	defer src.Close()

	out, err := fs.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create file %s: %w", target, err)
	}

	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return fmt.Errorf("write file %s: %w", target, err)
	}

	return out.Close()
}

// flatten moves every extracted entry up one directory level when filename is
// not at the archive root, e.g. "chromedriver-linux64/chromedriver" becomes
// "chromedriver". It returns the entries' final relative paths.
func flatten(fs afero.Fs, destDir string, extracted []string, filename string) ([]string, error) {
	for _, p := range extracted {
		if p == filename {
			return extracted, nil
		}
	}

	type move struct {
		staged string
		final  string
	}
	var (
		moves  []move
		result []string
		tops   = map[string]bool{}
	)

	// Stage nested files at the root under unique names first, so a folder
	// named like the binary it contains can be removed before the move.
	for i, p := range extracted {
		parts := strings.SplitN(p, "/", 2)
		if len(parts) == 1 {
			result = append(result, p)
			continue
		}
		tops[parts[0]] = true

		staged := filepath.Join(destDir, fmt.Sprintf(".flatten-%d-%s", i, path.Base(p)))
		if err := fs.Rename(filepath.Join(destDir, filepath.FromSlash(p)), staged); err != nil {
			return nil, fmt.Errorf("stage %s: %w", p, err)
		}
		moves = append(moves, move{staged: staged, final: parts[1]})
	}

	dirs := make([]string, 0, len(tops))
	for top := range tops {
		dirs = append(dirs, top)
	}
	sort.Strings(dirs)
	for _, top := range dirs {
		if err := fs.RemoveAll(filepath.Join(destDir, top)); err != nil {
			return nil, fmt.Errorf("remove %s: %w", top, err)
		}
	}

	for _, m := range moves {
		target := filepath.Join(destDir, filepath.FromSlash(m.final))
		if err := fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return nil, fmt.Errorf("create parent dir for %s: %w", target, err)
		}
		if err := removeIfExists(fs, target); err != nil {
			return nil, err
		}
		if err := fs.Rename(m.staged, target); err != nil {
			return nil, fmt.Errorf("move %s: %w", m.final, err)
		}
		result = append(result, m.final)
	}

	return result, nil
}

func removeIfExists(fs afero.Fs, path string) error {
	if err := fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

// SetExecutable gives the owner execute permission (rwxr--r--).
func SetExecutable(fs afero.Fs, path string) error {
	if err := fs.Chmod(path, 0o744); err != nil {
		return fmt.Errorf("set executable: %w", err)
	}
	return nil
}
