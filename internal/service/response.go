package service

import (
	"github.com/keshon/minigit/internal/graph"
)

// Response is the result of every verb. Failures carry Success=false and
// a readable Message; no verb returns a Go error.
type Response struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Repository string `json:"repository,omitempty"`

	Branch      string `json:"branch,omitempty"`
	CommitID    string `json:"commitId,omitempty"`
	NewCommitID string `json:"newCommitId,omitempty"`
	FileCount   *int   `json:"fileCount,omitempty"`
	Hash        string `json:"hash,omitempty"`

	Filename         string  `json:"filename,omitempty"`
	Status           string  `json:"status,omitempty"`
	WorkingHash      string  `json:"workingHash,omitempty"`
	WorkingContent   *string `json:"workingContent,omitempty"`
	CommittedHash    string  `json:"committedHash,omitempty"`
	CommittedContent *string `json:"committedContent,omitempty"`

	Branches  []BranchEntry  `json:"branches,omitzero"`
	Commits   []graph.Record `json:"commits,omitzero"`
	Total     *int           `json:"total,omitempty"`
	Staged    []FileEntry    `json:"staged,omitzero"`
	Working   []FileEntry    `json:"working,omitzero"`
	UndoCount *int           `json:"undoCount,omitempty"`
	RedoCount *int           `json:"redoCount,omitempty"`

	Repositories []RepoEntry `json:"repositories,omitzero"`
	Path         string      `json:"path,omitempty"`
	GitHashes    []string    `json:"gitHashes,omitzero"`
}

// BranchEntry is one branch in a listing. Head is nil for an empty branch.
type BranchEntry struct {
	Name   string  `json:"name"`
	Active bool    `json:"active"`
	Head   *string `json:"head"`
}

// FileEntry is a file name with its fingerprint.
type FileEntry struct {
	Name string `json:"name"`
	Hash string `json:"hash"`
}

// RepoEntry describes one repository. Loaded is false for a name that only
// has stored history; such an entry carries no ID, branch or commits.
type RepoEntry struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Current bool   `json:"current"`
	Loaded  bool   `json:"loaded"`
	Stored  bool   `json:"stored"`
	Branch  string `json:"branch,omitempty"`
	Commits int    `json:"commits"`
}

func ok(msg string) Response {
	return Response{Success: true, Message: msg}
}

func fail(msg string) Response {
	return Response{Success: false, Message: msg}
}

func count(n int) *int { return &n }

func text(s string) *string { return &s }
