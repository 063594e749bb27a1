package fs_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/keshon/minigit/internal/fs"
)

func TestCompressedFS_RoundTrip(t *testing.T) {
	base := fs.NewMemoryFS()
	c := fs.NewCompressedFS(base)
	c.MkdirAll("h", 0o755)

	payload := []byte(strings.Repeat("commit history ", 200))
	if err := c.WriteFile("h/r.json", payload, 0o644); err != nil {
		t.Fatal(err)
	}

	raw, _ := base.ReadFile("h/r.json")
	if len(raw) >= len(payload) {
		t.Fatalf("expected compressed bytes on base, got %d >= %d", len(raw), len(payload))
	}

	got, err := c.ReadFile("h/r.json")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatal("round trip mismatch")
	}
}

func TestCompressedFS_TempFile(t *testing.T) {
	base := fs.NewMemoryFS()
	c := fs.NewCompressedFS(base)
	c.MkdirAll("h", 0o755)

	w, tmp, err := c.CreateTempFile("h", "tmp-*")
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte("part one, "))
	w.Write([]byte("part two"))
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := c.Rename(tmp, "h/final"); err != nil {
		t.Fatal(err)
	}

	got, err := c.ReadFile("h/final")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "part one, part two" {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestCompressedFS_RejectsPlainData(t *testing.T) {
	base := fs.NewMemoryFS()
	base.MkdirAll("h", 0o755)
	base.WriteFile("h/plain", []byte("not gzip"), 0o644)

	if _, err := fs.NewCompressedFS(base).ReadFile("h/plain"); err == nil {
		t.Fatal("expected decompress error")
	}
}
