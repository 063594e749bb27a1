package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"

	"golang.org/x/exp/mmap"
)

// OSFS is the disk implementation of FS. Reads go through a read-only
// memory map.
type OSFS struct{}

func NewOSFS() *OSFS {
	return &OSFS{}
}

type mmapFile struct {
	*io.SectionReader
	r *mmap.ReaderAt
}

func (m *mmapFile) Close() error { return m.r.Close() }

func (o *OSFS) Open(path string) (io.ReadSeekCloser, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	return &mmapFile{SectionReader: io.NewSectionReader(r, 0, int64(r.Len())), r: r}, nil
}

func (o *OSFS) ReadFile(path string) ([]byte, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	// an empty file maps to nothing and must not be read from
	if r.Len() == 0 {
		return []byte{}, nil
	}
	data := make([]byte, r.Len())
	if _, err := r.ReadAt(data, 0); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return data, nil
}

func (o *OSFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (o *OSFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (o *OSFS) Remove(path string) error {
	return os.Remove(path)
}

func (o *OSFS) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

func (o *OSFS) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

func (o *OSFS) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}

func (o *OSFS) CreateTempFile(dir, pattern string) (io.WriteCloser, string, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, "", err
	}
	return f, f.Name(), nil
}

func (o *OSFS) IsNotExist(err error) bool {
	return errors.Is(err, iofs.ErrNotExist)
}

func (o *OSFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (o *OSFS) IsDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
