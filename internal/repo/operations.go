package repo

import (
	"fmt"

	"github.com/keshon/minigit/internal/fingerprint"
	"github.com/keshon/minigit/internal/graph"
	"github.com/keshon/minigit/internal/snapshot"
)

// CommitResult describes a commit-creating operation.
type CommitResult struct {
	ID        string
	Message   string
	Branch    string
	FileCount int
}

// Init creates the default branch with no head.
func (r *Repository) Init() (string, error) {
	if r.initialized {
		return "", ErrAlreadyInitialized
	}
	if err := r.branches.Add(r.defaultBranch, graph.NoRef); err != nil {
		return "", fmt.Errorf("failed to create branch %q: %w", r.defaultBranch, err)
	}
	r.initialized = true
	return r.defaultBranch, nil
}

// Add stages a file and mirrors it into the working files.
// It returns the fingerprint of content.
func (r *Repository) Add(name, content string) (string, error) {
	if err := r.ensureInit(); err != nil {
		return "", err
	}
	r.staging.Add(name, content)
	r.working.Add(name, content)
	return fingerprint.Of(content), nil
}

// Commit snapshots the staging area onto the active branch.
func (r *Repository) Commit(message string) (CommitResult, error) {
	if err := r.ensureInit(); err != nil {
		return CommitResult{}, err
	}
	if r.staging.Count() == 0 {
		return CommitResult{}, ErrNothingToCommit
	}

	ts := r.graph.Stamp()
	id := fingerprint.Of(message + ts + r.staging.Concat())

	ref := r.graph.Create(id, message, ts, r.staging)
	r.graph.Attach(r.head(), ref)
	if !r.root.Valid() {
		r.root = ref
	}
	r.setHead(ref)
	r.record(ref)
	r.staging = snapshot.New()

	return CommitResult{
		ID:        id,
		Message:   message,
		Branch:    r.ActiveBranch(),
		FileCount: r.graph.Snapshot(ref).Count(),
	}, nil
}

// CheckoutResult describes a branch switch.
type CheckoutResult struct {
	Branch    string
	FileCount int
	HasHead   bool
}

// Checkout activates a branch, restores its head snapshot into the working
// files and empties the staging area. Undo/redo stacks are left alone.
func (r *Repository) Checkout(name string) (CheckoutResult, error) {
	if err := r.ensureInit(); err != nil {
		return CheckoutResult{}, err
	}
	if !r.branches.Switch(name) {
		return CheckoutResult{}, fmt.Errorf("branch %q: %w", name, ErrBranchNotFound)
	}
	head := r.head()
	r.working = r.graph.Snapshot(head)
	r.staging = snapshot.New()
	return CheckoutResult{
		Branch:    name,
		FileCount: r.working.Count(),
		HasHead:   head.Valid(),
	}, nil
}

// CreateBranch adds a branch whose head aliases the active head.
func (r *Repository) CreateBranch(name string) error {
	if err := r.ensureInit(); err != nil {
		return err
	}
	if _, ok := r.branches.Find(name); ok {
		return fmt.Errorf("branch %q: %w", name, ErrBranchExists)
	}
	if err := r.branches.Add(name, r.head()); err != nil {
		return fmt.Errorf("failed to create branch %q: %w", name, err)
	}
	return nil
}

// DeleteBranch removes a branch that is not active. Commits stay in the graph.
func (r *Repository) DeleteBranch(name string) error {
	if err := r.ensureInit(); err != nil {
		return err
	}
	if name == r.ActiveBranch() {
		return fmt.Errorf("branch %q: %w", name, ErrActiveBranch)
	}
	if _, ok := r.branches.Find(name); !ok {
		return fmt.Errorf("branch %q: %w", name, ErrBranchNotFound)
	}
	return r.branches.Delete(name)
}

// BranchInfo describes one branch with its head id ("" when empty).
type BranchInfo struct {
	Name   string
	Active bool
	HeadID string
}

// Branches lists branches in creation order.
func (r *Repository) Branches() ([]BranchInfo, error) {
	if err := r.ensureInit(); err != nil {
		return nil, err
	}
	infos := r.branches.Enumerate()
	out := make([]BranchInfo, 0, len(infos))
	for _, b := range infos {
		out = append(out, BranchInfo{Name: b.Name, Active: b.Active, HeadID: r.graph.ID(b.Head)})
	}
	return out, nil
}

// Merge unions the source head's files into a new commit on the active
// branch. Source files win on name collisions.
func (r *Repository) Merge(source string) (CommitResult, error) {
	if err := r.ensureInit(); err != nil {
		return CommitResult{}, err
	}
	src, ok := r.branches.Find(source)
	if !ok {
		return CommitResult{}, fmt.Errorf("branch %q: %w", source, ErrBranchNotFound)
	}
	active := r.ActiveBranch()
	if src.Name == active {
		return CommitResult{}, ErrSelfMerge
	}
	if !src.Head.Valid() {
		return CommitResult{}, fmt.Errorf("branch %q: %w", source, ErrEmptySource)
	}

	head := r.head()
	merged := r.graph.Snapshot(head)
	for _, f := range r.graph.Snapshot(src.Head).Files() {
		merged.Add(f.Name, f.Content)
	}

	ts := r.graph.Stamp()
	id := fingerprint.Of("merge:" + source + ts)
	msg := fmt.Sprintf("Merge branch '%s' into %s", source, active)

	ref := r.graph.Create(id, msg, ts, merged)
	r.graph.Attach(head, ref)
	r.setHead(ref)
	r.working = merged.Copy()
	r.staging = snapshot.New()
	r.record(ref)

	return CommitResult{ID: id, Message: msg, Branch: active, FileCount: merged.Count()}, nil
}

// MoveResult describes an undo or redo. ID is "" when undo reached the
// state before the first commit.
type MoveResult struct {
	ID      string
	Message string
}

// Undo pops the latest commit operation and moves the active head to its
// parent. The popped commit is not checked against the active head, so after
// a checkout this rewinds whichever branch is active.
func (r *Repository) Undo() (MoveResult, error) {
	if err := r.ensureInit(); err != nil {
		return MoveResult{}, err
	}
	ref, ok := r.undo.pop()
	if !ok {
		return MoveResult{}, ErrNothingToUndo
	}
	r.redo.push(ref)

	parent := r.graph.Parent(ref)
	r.setHead(parent)
	r.working = r.graph.Snapshot(parent)
	if !parent.Valid() {
		return MoveResult{}, nil
	}
	c, _ := r.graph.Get(parent)
	return MoveResult{ID: c.ID, Message: c.Message}, nil
}

// Redo re-applies the most recently undone commit to the active branch.
func (r *Repository) Redo() (MoveResult, error) {
	if err := r.ensureInit(); err != nil {
		return MoveResult{}, err
	}
	ref, ok := r.redo.pop()
	if !ok {
		return MoveResult{}, ErrNothingToRedo
	}
	r.undo.push(ref)
	r.setHead(ref)
	r.working = r.graph.Snapshot(ref)

	c, _ := r.graph.Get(ref)
	return MoveResult{ID: c.ID, Message: c.Message}, nil
}

// RevertResult describes a revert commit.
type RevertResult struct {
	TargetID  string
	NewID     string
	Message   string
	FileCount int
}

// Revert recreates the snapshot of commit id as a new commit on the active
// branch. The target is looked up in the active history first, then in the
// whole tree.
func (r *Repository) Revert(id string) (RevertResult, error) {
	if err := r.ensureInit(); err != nil {
		return RevertResult{}, err
	}
	head := r.head()
	if !head.Valid() {
		return RevertResult{}, ErrNoCommits
	}
	target := r.find(id)
	if !target.Valid() {
		return RevertResult{}, fmt.Errorf("commit %q: %w", id, ErrCommitNotFound)
	}

	snap := r.graph.Snapshot(target)
	r.working = snap.Copy()
	r.staging = snap.Copy()

	ts := r.graph.Stamp()
	newID := fingerprint.Of("revert:" + id + ts)
	msg := fmt.Sprintf("Revert to %s", id)

	ref := r.graph.Create(newID, msg, ts, snap)
	r.graph.Attach(head, ref)
	r.setHead(ref)
	r.record(ref)

	return RevertResult{TargetID: id, NewID: newID, Message: msg, FileCount: r.working.Count()}, nil
}

// Reset discards everything and returns the repository to its
// uninitialized state.
func (r *Repository) Reset() {
	r.clear()
}
