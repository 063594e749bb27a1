package fs

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
)

// CompressedFS stores every file gzip-compressed on top of another FS.
// Directory operations pass straight through.
type CompressedFS struct {
	base FS
}

func NewCompressedFS(base FS) *CompressedFS {
	return &CompressedFS{base: base}
}

func (c *CompressedFS) Open(path string) (io.ReadSeekCloser, error) {
	data, err := c.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &memReadSeekCloser{Reader: bytes.NewReader(data)}, nil
}

func (c *CompressedFS) ReadFile(path string) ([]byte, error) {
	raw, err := c.base.ReadFile(path)
	if err != nil {
		return nil, err
	}
	gz, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", path, err)
	}
	defer gz.Close()
	return io.ReadAll(gz)
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *CompressedFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	packed, err := compress(data)
	if err != nil {
		return err
	}
	return c.base.WriteFile(path, packed, perm)
}

// CreateTempFile buffers writes and compresses them on Close.
func (c *CompressedFS) CreateTempFile(dir, pattern string) (io.WriteCloser, string, error) {
	w, name, err := c.base.CreateTempFile(dir, pattern)
	if err != nil {
		return nil, "", err
	}
	return &gzipTemp{base: w}, name, nil
}

type gzipTemp struct {
	base io.WriteCloser
	buf  bytes.Buffer
}

func (g *gzipTemp) Write(p []byte) (int, error) { return g.buf.Write(p) }

func (g *gzipTemp) Close() error {
	packed, err := compress(g.buf.Bytes())
	if err != nil {
		g.base.Close()
		return err
	}
	if _, err := g.base.Write(packed); err != nil {
		g.base.Close()
		return err
	}
	return g.base.Close()
}

func (c *CompressedFS) MkdirAll(path string, perm os.FileMode) error {
	return c.base.MkdirAll(path, perm)
}
func (c *CompressedFS) Remove(path string) error { return c.base.Remove(path) }
func (c *CompressedFS) Rename(oldPath, newPath string) error {
	return c.base.Rename(oldPath, newPath)
}
func (c *CompressedFS) Stat(path string) (os.FileInfo, error)      { return c.base.Stat(path) }
func (c *CompressedFS) ReadDir(path string) ([]os.DirEntry, error) { return c.base.ReadDir(path) }
func (c *CompressedFS) IsNotExist(err error) bool                  { return c.base.IsNotExist(err) }
func (c *CompressedFS) IsDir(path string) bool                     { return c.base.IsDir(path) }
func (c *CompressedFS) Exists(path string) bool                    { return c.base.Exists(path) }
