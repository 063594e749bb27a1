package snapshot

import (
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"
)

// File is a named text file tracked by a Snapshot.
type File struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Snapshot is an ordered set of files keyed by name.
// Order is insertion order; replacing a file keeps its position.
type Snapshot struct {
	files []*File
}

// New returns an empty Snapshot.
func New() *Snapshot {
	return &Snapshot{}
}

// FromFiles builds a Snapshot from files, applying Add in order.
func FromFiles(files []File) *Snapshot {
	s := New()
	for _, f := range files {
		s.Add(f.Name, f.Content)
	}
	return s
}

// Add inserts a file or replaces the content of an existing one.
func (s *Snapshot) Add(name, content string) {
	for _, f := range s.files {
		if f.Name == name {
			f.Content = content
			return
		}
	}
	s.files = append(s.files, &File{Name: name, Content: content})
}

// Remove drops the file with the given name, if present.
func (s *Snapshot) Remove(name string) {
	kept := s.files[:0]
	for _, f := range s.files {
		if f.Name != name {
			kept = append(kept, f)
		}
	}
	for i := len(kept); i < len(s.files); i++ {
		s.files[i] = nil
	}
	s.files = kept
}

// Get returns a copy of the named file.
func (s *Snapshot) Get(name string) (File, bool) {
	if s == nil {
		return File{}, false
	}
	for _, f := range s.files {
		if f.Name == name {
			return *f, true
		}
	}
	return File{}, false
}

// Has reports whether the named file exists.
func (s *Snapshot) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Count returns the number of files.
func (s *Snapshot) Count() int {
	if s == nil {
		return 0
	}
	return len(s.files)
}

// Copy returns a deep copy; no File is shared with the receiver.
func (s *Snapshot) Copy() *Snapshot {
	out := &Snapshot{files: make([]*File, 0, s.Count())}
	if s == nil {
		return out
	}
	for _, f := range s.files {
		out.files = append(out.files, &File{Name: f.Name, Content: f.Content})
	}
	return out
}

// Files returns the files in order as values.
func (s *Snapshot) Files() []File {
	out := make([]File, 0, s.Count())
	if s == nil {
		return out
	}
	for _, f := range s.files {
		out = append(out, *f)
	}
	return out
}

// Names returns the file names in order.
func (s *Snapshot) Names() []string {
	out := make([]string, 0, s.Count())
	if s == nil {
		return out
	}
	for _, f := range s.files {
		out = append(out, f.Name)
	}
	return out
}

// Concat joins all contents in order with no separator.
func (s *Snapshot) Concat() string {
	if s == nil {
		return ""
	}
	var b strings.Builder
	for _, f := range s.files {
		b.WriteString(f.Content)
	}
	return b.String()
}

// Digest returns a stable xxh3-128 digest of names and contents in order.
func (s *Snapshot) Digest() string {
	var b strings.Builder
	if s != nil {
		for _, f := range s.files {
			fmt.Fprintf(&b, "%d:%s\n%d:%s\n", len(f.Name), f.Name, len(f.Content), f.Content)
		}
	}
	sum := xxh3.HashString128(b.String()).Bytes()
	return fmt.Sprintf("%x", sum)
}
