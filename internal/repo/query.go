package repo

import (
	"fmt"

	"github.com/keshon/minigit/internal/fingerprint"
	"github.com/keshon/minigit/internal/graph"
	"github.com/keshon/minigit/internal/snapshot"
)

// LogResult is the active branch history.
type LogResult struct {
	Branch  string
	Commits []graph.Record
	Total   int
}

// Log returns the active history newest first and its depth.
func (r *Repository) Log() (LogResult, error) {
	if err := r.ensureInit(); err != nil {
		return LogResult{}, err
	}
	head := r.head()
	return LogResult{
		Branch:  r.ActiveBranch(),
		Commits: r.graph.History(head),
		Total:   r.graph.Depth(head),
	}, nil
}

// FileStatus is a file name with its fingerprint.
type FileStatus struct {
	Name string
	Hash string
}

// StatusResult is a read-only report of the repository.
type StatusResult struct {
	Branch        string
	HeadID        string
	Staged        []FileStatus
	Working       []FileStatus
	WorkingDigest string
	UndoCount     int
	RedoCount     int
}

// Status reports staged and working fingerprints and stack depths.
func (r *Repository) Status() (StatusResult, error) {
	if err := r.ensureInit(); err != nil {
		return StatusResult{}, err
	}
	return StatusResult{
		Branch:        r.ActiveBranch(),
		HeadID:        r.HeadID(),
		Staged:        fileStatuses(r.staging),
		Working:       fileStatuses(r.working),
		WorkingDigest: r.working.Digest(),
		UndoCount:     r.undo.size(),
		RedoCount:     r.redo.size(),
	}, nil
}

func fileStatuses(s *snapshot.Snapshot) []FileStatus {
	files := s.Files()
	out := make([]FileStatus, 0, len(files))
	for _, f := range files {
		out = append(out, FileStatus{Name: f.Name, Hash: fingerprint.Of(f.Content)})
	}
	return out
}

// DiffStatus classifies a working file against the active head.
type DiffStatus string

const (
	DiffNew       DiffStatus = "new"
	DiffUnchanged DiffStatus = "unchanged"
	DiffModified  DiffStatus = "modified"
)

// DiffResult compares one working file with its committed version.
// Committed fields are empty unless Status is DiffModified.
type DiffResult struct {
	Filename         string
	Status           DiffStatus
	HasHead          bool
	WorkingHash      string
	WorkingContent   string
	CommittedHash    string
	CommittedContent string
}

// Diff compares a working file with the active head by fingerprint.
func (r *Repository) Diff(name string) (DiffResult, error) {
	if err := r.ensureInit(); err != nil {
		return DiffResult{}, err
	}
	work, ok := r.working.Get(name)
	if !ok {
		return DiffResult{}, fmt.Errorf("file %q: %w", name, ErrFileNotFound)
	}
	res := DiffResult{
		Filename:       name,
		Status:         DiffNew,
		WorkingHash:    fingerprint.Of(work.Content),
		WorkingContent: work.Content,
	}

	head, ok := r.graph.Get(r.head())
	if !ok {
		return res, nil
	}
	res.HasHead = true
	if !head.Snapshot.Has(name) {
		return res, nil
	}

	committed, _ := head.Snapshot.Get(name)
	if fingerprint.Equal(committed.Content, work.Content) {
		return DiffResult{Filename: name, Status: DiffUnchanged, HasHead: true}, nil
	}
	res.Status = DiffModified
	res.CommittedHash = fingerprint.Of(committed.Content)
	res.CommittedContent = committed.Content
	return res, nil
}
