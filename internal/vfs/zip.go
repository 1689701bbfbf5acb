package vfs

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"
)

// fixedZipTime keeps archives written by WriteZip byte-for-byte reproducible
// (1980-01-01 UTC).
var fixedZipTime = time.Unix(315532800, 0).UTC()

// ZipFS is a read-only FileSystem over a zip archive.
type ZipFS struct {
	r      *zip.Reader
	closer io.Closer
}

// NewZip reads the archive in r.
func NewZip(r io.ReaderAt, size int64) (*ZipFS, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("vfs: open zip: %w", err)
	}
	return &ZipFS{r: zr}, nil
}

// OpenZip opens the archive file at name. Close releases it.
func OpenZip(name string) (*ZipFS, error) {
	rc, err := zip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("vfs: open zip: %w", err)
	}
	return &ZipFS{r: &rc.Reader, closer: rc}, nil
}

func (z *ZipFS) Scheme() string { return "zip" }

func (z *ZipFS) Open(name string) (fs.File, error) { return z.r.Open(name) }

func (z *ZipFS) Close() error {
	if z.closer == nil {
		return nil
	}
	return z.closer.Close()
}

// WriteZip writes every file and directory of src into w in lexical order
// with fixed timestamps. Directories get their own entries so empty ones
// survive the round trip.
func WriteZip(w io.Writer, src fs.FS) error {
	zw := zip.NewWriter(w)
	err := fs.WalkDir(src, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if name == "." {
			return nil
		}
		entry := sanitizeEntry(name)
		if d.IsDir() {
			h := &zip.FileHeader{Name: entry + "/", Method: zip.Store, Modified: fixedZipTime}
			h.SetMode(fs.ModeDir | 0o755)
			_, err := zw.CreateHeader(h)
			return err
		}
		data, err := fs.ReadFile(src, name)
		if err != nil {
			return err
		}
		h := &zip.FileHeader{Name: entry, Method: zip.Deflate, Modified: fixedZipTime}
		h.SetMode(0o644)
		fw, err := zw.CreateHeader(h)
		if err != nil {
			return fmt.Errorf("create %s: %w", entry, err)
		}
		if _, err := fw.Write(data); err != nil {
			return fmt.Errorf("write %s: %w", entry, err)
		}
		return nil
	})
	if err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}

// sanitizeEntry normalizes an entry name: forward slashes, no drive letter,
// no leading '/', and no '.' or '..' segments.
func sanitizeEntry(p string) string {
	s := strings.ReplaceAll(p, `\`, "/")
	if len(s) > 1 && s[1] == ':' {
		s = s[2:]
	}
	s = strings.TrimLeft(s, "/")
	parts := strings.Split(s, "/")
	stack := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		if part == ".." {
			if n := len(stack); n > 0 {
				stack = stack[:n-1]
			}
			continue
		}
		stack = append(stack, part)
	}
	s = strings.Join(stack, "/")
	if s == "" {
		return "entry"
	}
	return s
}
