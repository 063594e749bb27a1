package service

import (
	"errors"
	"fmt"

	"github.com/keshon/minigit/internal/gitexport"
	"github.com/keshon/minigit/internal/repo"
	"github.com/keshon/minigit/internal/store"
)

// NotInitializedMessage is the reply to any verb other than init on a
// repository that has not run init.
const NotInitializedMessage = "Error: repo not initialized. Run 'init' first."

var (
	ErrRepoNotFound = errors.New("repository not found")
	ErrRepoExists   = errors.New("repository already exists")
	ErrRepoCurrent  = errors.New("cannot delete the current repository")
)

// describe turns an error into the message shown to callers. subject is
// the branch, file, commit or repository the verb was about.
func describe(err error, subject string) string {
	switch {
	case errors.Is(err, repo.ErrNotInitialized):
		return NotInitializedMessage
	case errors.Is(err, repo.ErrAlreadyInitialized):
		return "Repository already initialized."
	case errors.Is(err, repo.ErrNothingToCommit):
		return "Nothing to commit. Use 'add' first."
	case errors.Is(err, repo.ErrBranchNotFound):
		return fmt.Sprintf("Branch '%s' not found.", subject)
	case errors.Is(err, repo.ErrBranchExists):
		return fmt.Sprintf("Branch '%s' already exists.", subject)
	case errors.Is(err, repo.ErrActiveBranch):
		return fmt.Sprintf("Cannot delete the active branch '%s'.", subject)
	case errors.Is(err, repo.ErrSelfMerge):
		return "Cannot merge branch into itself."
	case errors.Is(err, repo.ErrEmptySource):
		return "Source branch has no commits."
	case errors.Is(err, repo.ErrNothingToUndo):
		return "Nothing to undo."
	case errors.Is(err, repo.ErrNothingToRedo):
		return "Nothing to redo."
	case errors.Is(err, repo.ErrNoCommits):
		return "No commits to revert."
	case errors.Is(err, repo.ErrCommitNotFound):
		return fmt.Sprintf("Commit '%s' not found.", subject)
	case errors.Is(err, repo.ErrFileNotFound):
		return fmt.Sprintf("File '%s' not in working directory.", subject)
	case errors.Is(err, ErrRepoNotFound):
		return fmt.Sprintf("Repository '%s' not found.", subject)
	case errors.Is(err, ErrRepoExists):
		return fmt.Sprintf("Repository '%s' already exists.", subject)
	case errors.Is(err, ErrRepoCurrent):
		return fmt.Sprintf("Cannot delete the current repository '%s'.", subject)
	case errors.Is(err, store.ErrInvalidName):
		return fmt.Sprintf("Invalid repository name '%s'.", subject)
	case errors.Is(err, gitexport.ErrNoHistory):
		return "No commits to export."
	default:
		return "Error: " + err.Error()
	}
}
