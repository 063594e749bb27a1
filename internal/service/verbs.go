package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/keshon/minigit/internal/gitexport"
	"github.com/keshon/minigit/internal/repo"
)

func required(field, value string) (Response, bool) {
	if strings.TrimSpace(value) == "" {
		return fail(fmt.Sprintf("Field '%s' is required.", field)), false
	}
	return Response{}, true
}

// Init creates the default branch of the current repository.
func (s *Service) Init(ctx context.Context) Response {
	return s.mutate(ctx, "init", func(r *repo.Repository) Response {
		name, err := r.Init()
		if err != nil {
			return fail(describe(err, ""))
		}
		resp := ok("Initialized empty MiniGit repository.")
		resp.Branch = name
		return resp
	})
}

// Add stages filename with content in the working and staging sets.
func (s *Service) Add(ctx context.Context, filename, content string) Response {
	if resp, valid := required("filename", filename); !valid {
		return resp
	}
	return s.view(func(r *repo.Repository) Response {
		hash, err := r.Add(filename, content)
		if err != nil {
			return fail(describe(err, filename))
		}
		resp := ok(fmt.Sprintf("Staged: %s", filename))
		resp.Filename = filename
		resp.Hash = hash
		return resp
	})
}

// Commit records the staged files on the active branch. An empty message
// is allowed; an empty staging area is not.
func (s *Service) Commit(ctx context.Context, message string) Response {
	return s.mutate(ctx, "commit", func(r *repo.Repository) Response {
		res, err := r.Commit(message)
		if err != nil {
			return fail(describe(err, ""))
		}
		resp := ok(fmt.Sprintf("[%s %s] %s", res.Branch, res.ID, res.Message))
		resp.CommitID = res.ID
		resp.Branch = res.Branch
		resp.FileCount = count(res.FileCount)
		return resp
	})
}

// Log lists the commits reachable from the active branch, newest first.
func (s *Service) Log(ctx context.Context) Response {
	return s.view(func(r *repo.Repository) Response {
		res, err := r.Log()
		if err != nil {
			return fail(describe(err, ""))
		}
		resp := ok(fmt.Sprintf("Commit History (%s)", res.Branch))
		if res.Total == 0 {
			resp.Message = "No commits yet."
		}
		resp.Branch = res.Branch
		resp.Commits = res.Commits
		resp.Total = count(res.Total)
		return resp
	})
}

// Status reports the staged and working files with the undo and redo
// depths.
func (s *Service) Status(ctx context.Context) Response {
	return s.view(func(r *repo.Repository) Response {
		res, err := r.Status()
		if err != nil {
			return fail(describe(err, ""))
		}
		resp := ok(fmt.Sprintf("On branch %s", res.Branch))
		resp.Branch = res.Branch
		resp.CommitID = res.HeadID
		resp.Hash = res.WorkingDigest
		resp.Staged = fileEntries(res.Staged)
		resp.Working = fileEntries(res.Working)
		resp.UndoCount = count(res.UndoCount)
		resp.RedoCount = count(res.RedoCount)
		return resp
	})
}

func fileEntries(in []repo.FileStatus) []FileEntry {
	out := make([]FileEntry, 0, len(in))
	for _, f := range in {
		out = append(out, FileEntry{Name: f.Name, Hash: f.Hash})
	}
	return out
}

// Diff compares the working copy of filename with the head commit.
// Contents are set, even when empty, for new and modified files only.
func (s *Service) Diff(ctx context.Context, filename string) Response {
	if resp, valid := required("filename", filename); !valid {
		return resp
	}
	return s.view(func(r *repo.Repository) Response {
		res, err := r.Diff(filename)
		if err != nil {
			return fail(describe(err, filename))
		}
		resp := ok("")
		resp.Filename = filename
		resp.Status = string(res.Status)
		switch res.Status {
		case repo.DiffNew:
			if res.HasHead {
				resp.Message = fmt.Sprintf("+ %s (new, not in last commit)", filename)
			} else {
				resp.Message = fmt.Sprintf("+ %s [%s] (new file)", filename, res.WorkingHash)
			}
			resp.WorkingHash = res.WorkingHash
			resp.WorkingContent = text(res.WorkingContent)
		case repo.DiffUnchanged:
			resp.Message = fmt.Sprintf("%s: no changes.", filename)
		case repo.DiffModified:
			resp.Message = fmt.Sprintf("%s: MODIFIED", filename)
			resp.WorkingHash = res.WorkingHash
			resp.WorkingContent = text(res.WorkingContent)
			resp.CommittedHash = res.CommittedHash
			resp.CommittedContent = text(res.CommittedContent)
		}
		return resp
	})
}

// CreateBranch points a new branch at the head of the active one.
func (s *Service) CreateBranch(ctx context.Context, name string) Response {
	if resp, valid := required("name", name); !valid {
		return resp
	}
	return s.view(func(r *repo.Repository) Response {
		if err := r.CreateBranch(name); err != nil {
			return fail(describe(err, name))
		}
		resp := ok(fmt.Sprintf("Created branch: %s", name))
		resp.Branch = name
		return resp
	})
}

// Checkout activates a branch and restores its head snapshot.
func (s *Service) Checkout(ctx context.Context, name string) Response {
	if resp, valid := required("name", name); !valid {
		return resp
	}
	return s.view(func(r *repo.Repository) Response {
		res, err := r.Checkout(name)
		if err != nil {
			return fail(describe(err, name))
		}
		msg := fmt.Sprintf("Switched to branch: %s. Restored %d file(s).", name, res.FileCount)
		if !res.HasHead {
			msg = fmt.Sprintf("Switched to branch: %s. Branch has no commits yet.", name)
		}
		resp := ok(msg)
		resp.Branch = name
		resp.FileCount = count(res.FileCount)
		return resp
	})
}

// Branches lists every branch with its head, sorted by name.
func (s *Service) Branches(ctx context.Context) Response {
	return s.view(func(r *repo.Repository) Response {
		infos, err := r.Branches()
		if err != nil {
			return fail(describe(err, ""))
		}
		list := make([]BranchEntry, 0, len(infos))
		for _, b := range infos {
			be := BranchEntry{Name: b.Name, Active: b.Active}
			if b.HeadID != "" {
				id := b.HeadID
				be.Head = &id
			}
			list = append(list, be)
		}
		resp := ok(fmt.Sprintf("%d branch(es)", len(list)))
		resp.Branch = r.ActiveBranch()
		resp.Branches = list
		resp.Total = count(len(list))
		return resp
	})
}

// DeleteBranch removes a branch other than the active one. Its commits
// stay in the graph.
func (s *Service) DeleteBranch(ctx context.Context, name string) Response {
	if resp, valid := required("name", name); !valid {
		return resp
	}
	return s.view(func(r *repo.Repository) Response {
		if err := r.DeleteBranch(name); err != nil {
			return fail(describe(err, name))
		}
		resp := ok(fmt.Sprintf("Deleted branch: %s", name))
		resp.Branch = name
		return resp
	})
}

// Merge commits the union of both heads onto the active branch. On a
// conflicting name the source wins.
func (s *Service) Merge(ctx context.Context, source string) Response {
	if resp, valid := required("branch", source); !valid {
		return resp
	}
	return s.mutate(ctx, "merge", func(r *repo.Repository) Response {
		res, err := r.Merge(source)
		if err != nil {
			return fail(describe(err, source))
		}
		resp := ok(res.Message)
		resp.CommitID = res.ID
		resp.Branch = res.Branch
		resp.FileCount = count(res.FileCount)
		return resp
	})
}

// Undo moves the active branch back to its parent commit.
func (s *Service) Undo(ctx context.Context) Response {
	return s.mutate(ctx, "undo", func(r *repo.Repository) Response {
		res, err := r.Undo()
		if err != nil {
			return fail(describe(err, ""))
		}
		if res.ID == "" {
			return ok("Undo: reverted to initial state (no commits).")
		}
		resp := ok(fmt.Sprintf("Undo: reverted to commit %s", res.ID))
		resp.CommitID = res.ID
		return resp
	})
}

// Redo reapplies the most recently undone commit.
func (s *Service) Redo(ctx context.Context) Response {
	return s.mutate(ctx, "redo", func(r *repo.Repository) Response {
		res, err := r.Redo()
		if err != nil {
			return fail(describe(err, ""))
		}
		resp := ok(fmt.Sprintf("Redo: restored commit %s (%s)", res.ID, res.Message))
		resp.CommitID = res.ID
		return resp
	})
}

// Revert creates a new commit whose files equal those of commitID.
func (s *Service) Revert(ctx context.Context, commitID string) Response {
	if resp, valid := required("commit_id", commitID); !valid {
		return resp
	}
	return s.mutate(ctx, "revert", func(r *repo.Repository) Response {
		res, err := r.Revert(commitID)
		if err != nil {
			return fail(describe(err, commitID))
		}
		resp := ok(fmt.Sprintf("Reverted to commit %s", res.TargetID))
		resp.CommitID = res.TargetID
		resp.NewCommitID = res.NewID
		resp.FileCount = count(res.FileCount)
		return resp
	})
}

// History returns what the store last persisted for the current
// repository.
func (s *Service) History(ctx context.Context) Response {
	name := s.Current()
	records, err := s.store.Load(ctx, name)
	if err != nil {
		s.log.Warn("failed to load history", "repo", name, "error", err)
		resp := fail(describe(err, name))
		resp.Repository = name
		return resp
	}
	resp := ok(fmt.Sprintf("Stored history (%s)", name))
	resp.Repository = name
	resp.Commits = records
	resp.Total = count(len(records))
	return resp
}

// ExportOption adjusts the git export of a single call.
type ExportOption func(*gitexport.Options)

// WithExportProgress reports each replayed commit to fn.
func WithExportProgress(fn func(done, total int)) ExportOption {
	return func(o *gitexport.Options) { o.Progress = fn }
}

// WithExportAuthor sets the git author of exported commits.
func WithExportAuthor(name, email string) ExportOption {
	return func(o *gitexport.Options) {
		o.AuthorName = name
		o.AuthorEmail = email
	}
}

// Export replays the active history of the current repository into a git
// repository at dir, or into memory when dir is empty.
func (s *Service) Export(ctx context.Context, dir string, opts ...ExportOption) Response {
	return s.view(func(r *repo.Repository) Response {
		if !r.Initialized() {
			return fail(describe(repo.ErrNotInitialized, ""))
		}
		gopts := gitexport.Options{Dir: dir}
		for _, opt := range opts {
			opt(&gopts)
		}
		res, err := gitexport.Export(ctx, r.History(), gopts)
		if err != nil {
			return fail(describe(err, dir))
		}
		where := dir
		if where == "" {
			where = "memory"
		}
		resp := ok(fmt.Sprintf("Exported %d commit(s) to %s", len(res.Hashes), where))
		resp.Branch = r.ActiveBranch()
		resp.CommitID = r.HeadID()
		resp.Path = dir
		resp.Hash = res.Head()
		resp.GitHashes = res.Hashes
		resp.Total = count(len(res.Hashes))
		return resp
	})
}
