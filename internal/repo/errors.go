package repo

import "errors"

var (
	ErrNotInitialized     = errors.New("repository not initialized, run 'init' first")
	ErrAlreadyInitialized = errors.New("repository already initialized")
	ErrNothingToCommit    = errors.New("nothing to commit, use 'add' first")
	ErrBranchNotFound     = errors.New("branch not found")
	ErrBranchExists       = errors.New("branch already exists")
	ErrActiveBranch       = errors.New("cannot delete the active branch")
	ErrSelfMerge          = errors.New("cannot merge branch into itself")
	ErrEmptySource        = errors.New("source branch has no commits")
	ErrNothingToUndo      = errors.New("nothing to undo")
	ErrNothingToRedo      = errors.New("nothing to redo")
	ErrNoCommits          = errors.New("no commits to revert")
	ErrCommitNotFound     = errors.New("commit not found")
	ErrFileNotFound       = errors.New("file not in working directory")
)
