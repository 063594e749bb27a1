package repo_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/minigit/internal/fingerprint"
	"github.com/keshon/minigit/internal/repo"
	"github.com/keshon/minigit/internal/snapshot"
)

// tickingClock advances one second per call so commit ids never collide.
func tickingClock() func() time.Time {
	t := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newRepo(t *testing.T) *repo.Repository {
	t.Helper()
	r := repo.New(repo.WithClock(tickingClock()))
	_, err := r.Init()
	require.NoError(t, err)
	return r
}

func content(t *testing.T, r *repo.Repository, name string) string {
	t.Helper()
	f, ok := r.Working().Get(name)
	require.True(t, ok, "working file %q missing", name)
	return f.Content
}

func mustCommit(t *testing.T, r *repo.Repository, msg string, files ...string) repo.CommitResult {
	t.Helper()
	for i := 0; i+1 < len(files); i += 2 {
		_, err := r.Add(files[i], files[i+1])
		require.NoError(t, err)
	}
	res, err := r.Commit(msg)
	require.NoError(t, err)
	return res
}

func TestUninitialized(t *testing.T) {
	r := repo.New()
	assert.False(t, r.Initialized())

	_, err := r.Add("a", "1")
	assert.ErrorIs(t, err, repo.ErrNotInitialized)
	_, err = r.Commit("m")
	assert.ErrorIs(t, err, repo.ErrNotInitialized)
	_, err = r.Checkout("main")
	assert.ErrorIs(t, err, repo.ErrNotInitialized)
	assert.ErrorIs(t, r.CreateBranch("x"), repo.ErrNotInitialized)
	assert.ErrorIs(t, r.DeleteBranch("x"), repo.ErrNotInitialized)
	_, err = r.Branches()
	assert.ErrorIs(t, err, repo.ErrNotInitialized)
	_, err = r.Merge("x")
	assert.ErrorIs(t, err, repo.ErrNotInitialized)
	_, err = r.Undo()
	assert.ErrorIs(t, err, repo.ErrNotInitialized)
	_, err = r.Redo()
	assert.ErrorIs(t, err, repo.ErrNotInitialized)
	_, err = r.Revert("x")
	assert.ErrorIs(t, err, repo.ErrNotInitialized)
	_, err = r.Diff("a")
	assert.ErrorIs(t, err, repo.ErrNotInitialized)
	_, err = r.Status()
	assert.ErrorIs(t, err, repo.ErrNotInitialized)
	_, err = r.Log()
	assert.ErrorIs(t, err, repo.ErrNotInitialized)
}

func TestInit(t *testing.T) {
	r := newRepo(t)

	branches, err := r.Branches()
	require.NoError(t, err)
	assert.Equal(t, []repo.BranchInfo{{Name: "main", Active: true}}, branches)

	_, err = r.Init()
	assert.ErrorIs(t, err, repo.ErrAlreadyInitialized)
}

func TestInit_CustomDefaultBranch(t *testing.T) {
	r := repo.New(repo.WithDefaultBranch("trunk"))
	name, err := r.Init()
	require.NoError(t, err)
	assert.Equal(t, "trunk", name)
	assert.Equal(t, "trunk", r.ActiveBranch())
}

func TestAdd_StagesAndMirrorsWorking(t *testing.T) {
	r := newRepo(t)
	hash, err := r.Add("a.txt", "v1")
	require.NoError(t, err)
	assert.Equal(t, fingerprint.Of("v1"), hash)
	assert.Equal(t, "v1", content(t, r, "a.txt"))
	assert.Equal(t, 1, r.Staging().Count())
}

func TestCommit_EmptyStaging(t *testing.T) {
	r := newRepo(t)
	_, err := r.Commit("nothing")
	assert.ErrorIs(t, err, repo.ErrNothingToCommit)
}

func TestCommit_ClearsStagingAndRedo(t *testing.T) {
	r := newRepo(t)
	mustCommit(t, r, "one", "a", "1")
	mustCommit(t, r, "two", "a", "2")
	_, err := r.Undo()
	require.NoError(t, err)
	require.Equal(t, 1, r.RedoDepth())

	res := mustCommit(t, r, "three", "b", "x")
	assert.Equal(t, 0, r.Staging().Count())
	assert.Equal(t, 0, r.RedoDepth())
	assert.Equal(t, 2, r.UndoDepth())
	assert.Equal(t, "main", res.Branch)
	assert.Equal(t, 1, res.FileCount)
	// working keeps everything added so far
	assert.Equal(t, 2, r.Working().Count())
}

func TestCommit_IDFormula(t *testing.T) {
	clock := time.Date(2024, time.May, 1, 8, 30, 0, 0, time.UTC)
	r := repo.New(repo.WithClock(func() time.Time { return clock }))
	_, err := r.Init()
	require.NoError(t, err)

	_, _ = r.Add("a", "AAA")
	_, _ = r.Add("b", "BBB")
	res, err := r.Commit("msg")
	require.NoError(t, err)

	want := fingerprint.Of("msg" + "Wed May 01 08:30:00 2024" + "AAABBB")
	assert.Equal(t, want, res.ID)
	assert.Equal(t, res.ID, r.RootID())
}

func TestScenario_UndoRedo(t *testing.T) {
	r := newRepo(t)

	first := mustCommit(t, r, "first", "a.txt", "v1")
	assert.Equal(t, 1, first.FileCount)
	assert.Equal(t, first.ID, r.HeadID())
	assert.Equal(t, 1, r.UndoDepth())

	second := mustCommit(t, r, "second", "a.txt", "v2")
	rec, ok := r.Lookup(second.ID)
	require.True(t, ok)
	require.NotNil(t, rec.Parent)
	assert.Equal(t, first.ID, *rec.Parent)

	undo, err := r.Undo()
	require.NoError(t, err)
	assert.Equal(t, first.ID, undo.ID)
	assert.Equal(t, first.ID, r.HeadID())
	assert.Equal(t, "v1", content(t, r, "a.txt"))

	redo, err := r.Redo()
	require.NoError(t, err)
	assert.Equal(t, second.ID, redo.ID)
	assert.Equal(t, second.ID, r.HeadID())
	assert.Equal(t, "v2", content(t, r, "a.txt"))
}

func TestUndo_ToInitialState(t *testing.T) {
	r := newRepo(t)
	mustCommit(t, r, "only", "a", "1")

	res, err := r.Undo()
	require.NoError(t, err)
	assert.Equal(t, "", res.ID)
	assert.Equal(t, "", r.HeadID())
	assert.Equal(t, 0, r.Working().Count())

	_, err = r.Undo()
	assert.ErrorIs(t, err, repo.ErrNothingToUndo)
}

func TestRedo_Empty(t *testing.T) {
	r := newRepo(t)
	_, err := r.Redo()
	assert.ErrorIs(t, err, repo.ErrNothingToRedo)
}

func headDigest(t *testing.T, r *repo.Repository) string {
	t.Helper()
	rec, ok := r.Lookup(r.HeadID())
	require.True(t, ok, "head %q not found", r.HeadID())
	return snapshot.FromFiles(rec.Files).Digest()
}

func TestUndoRedo_RoundTrip(t *testing.T) {
	r := newRepo(t)
	mustCommit(t, r, "c1", "a", "1")
	mustCommit(t, r, "c2", "b", "2")
	mustCommit(t, r, "c3", "a", "3")

	// c3 holds only the staged "a"; working still carries "b"
	assert.NotEqual(t, headDigest(t, r), r.Working().Digest())

	_, err := r.Undo()
	require.NoError(t, err)
	_, err = r.Redo()
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		head := r.HeadID()
		digest := headDigest(t, r)
		require.Equal(t, digest, r.Working().Digest(), "working must match head %s", head)

		_, err := r.Undo()
		require.NoError(t, err)
		_, err = r.Redo()
		require.NoError(t, err)

		assert.Equal(t, head, r.HeadID())
		assert.Equal(t, digest, r.Working().Digest())

		_, err = r.Undo()
		require.NoError(t, err)
		if i < 2 {
			assert.Equal(t, headDigest(t, r), r.Working().Digest())
		}
	}
	assert.Empty(t, r.HeadID())
	assert.Zero(t, r.Working().Count())
}

func TestUndoRedo_RoundTripAfterCheckout(t *testing.T) {
	r := newRepo(t)
	mustCommit(t, r, "c1", "a", "1")
	c2 := mustCommit(t, r, "c2", "b", "2")

	_, err := r.Checkout("main")
	require.NoError(t, err)
	digest := headDigest(t, r)
	require.Equal(t, digest, r.Working().Digest())

	_, err = r.Undo()
	require.NoError(t, err)
	_, err = r.Redo()
	require.NoError(t, err)
	assert.Equal(t, c2.ID, r.HeadID())
	assert.Equal(t, digest, r.Working().Digest())
}

func TestUndo_AfterCheckoutMovesActiveBranch(t *testing.T) {
	r := newRepo(t)
	base := mustCommit(t, r, "base", "a", "1")
	require.NoError(t, r.CreateBranch("other"))
	mustCommit(t, r, "main-only", "a", "2")

	_, err := r.Checkout("other")
	require.NoError(t, err)

	// the global stack pops main's commit but rewinds the active branch
	_, err = r.Undo()
	require.NoError(t, err)
	assert.Equal(t, base.ID, r.HeadID())
	branches, _ := r.Branches()
	assert.Equal(t, base.ID, branches[1].HeadID)
}

func TestCheckout(t *testing.T) {
	r := newRepo(t)
	_, err := r.Checkout("ghost")
	assert.ErrorIs(t, err, repo.ErrBranchNotFound)

	mustCommit(t, r, "c1", "a", "1")
	require.NoError(t, r.CreateBranch("empty-later"))
	_, _ = r.Add("pending", "x")

	res, err := r.Checkout("empty-later")
	require.NoError(t, err)
	assert.True(t, res.HasHead)
	assert.Equal(t, 1, res.FileCount)
	assert.Equal(t, 0, r.Staging().Count())
	assert.Equal(t, []string{"a"}, r.Working().Names())
}

func TestCheckout_BranchWithoutCommits(t *testing.T) {
	r := newRepo(t)
	require.NoError(t, r.CreateBranch("dev"))
	_, _ = r.Add("a", "1")

	res, err := r.Checkout("dev")
	require.NoError(t, err)
	assert.False(t, res.HasHead)
	assert.Equal(t, 0, r.Working().Count())
	assert.Equal(t, 0, r.Staging().Count())
}

func TestCreateBranch_Duplicate(t *testing.T) {
	r := newRepo(t)
	require.NoError(t, r.CreateBranch("dev"))
	assert.ErrorIs(t, r.CreateBranch("dev"), repo.ErrBranchExists)
	assert.ErrorIs(t, r.CreateBranch("main"), repo.ErrBranchExists)
}

func TestDeleteBranch(t *testing.T) {
	r := newRepo(t)
	c := mustCommit(t, r, "c", "a", "1")
	require.NoError(t, r.CreateBranch("dev"))

	assert.ErrorIs(t, r.DeleteBranch("main"), repo.ErrActiveBranch)
	assert.ErrorIs(t, r.DeleteBranch("ghost"), repo.ErrBranchNotFound)
	require.NoError(t, r.DeleteBranch("dev"))

	branches, _ := r.Branches()
	assert.Len(t, branches, 1)
	_, ok := r.Lookup(c.ID)
	assert.True(t, ok, "commits survive branch deletion")
}

func TestScenario_BranchAndMerge(t *testing.T) {
	r := newRepo(t)
	mustCommit(t, r, "first", "a.txt", "v1")
	require.NoError(t, r.CreateBranch("feature"))

	_, err := r.Checkout("feature")
	require.NoError(t, err)
	mustCommit(t, r, "feat1", "b.txt", "x")

	_, err = r.Checkout("main")
	require.NoError(t, err)
	res, err := r.Merge("feature")
	require.NoError(t, err)

	assert.Equal(t, "Merge branch 'feature' into main", res.Message)
	assert.Equal(t, 2, res.FileCount)
	assert.Equal(t, res.ID, r.HeadID())
	assert.Equal(t, "v1", content(t, r, "a.txt"))
	assert.Equal(t, "x", content(t, r, "b.txt"))
	assert.Equal(t, 0, r.Staging().Count())
	assert.Equal(t, 0, r.RedoDepth())
}

func TestMerge_SourceWins(t *testing.T) {
	r := newRepo(t)
	mustCommit(t, r, "base", "shared", "base", "keep", "main")
	require.NoError(t, r.CreateBranch("src"))
	_, _ = r.Checkout("src")
	mustCommit(t, r, "src change", "shared", "from-src", "extra", "e")
	_, _ = r.Checkout("main")
	mustCommit(t, r, "main change", "shared", "from-main", "keep", "main")

	res, err := r.Merge("src")
	require.NoError(t, err)

	rec, ok := r.Lookup(res.ID)
	require.True(t, ok)
	files := map[string]string{}
	for _, f := range rec.Files {
		files[f.Name] = f.Content
	}
	assert.Equal(t, map[string]string{"shared": "from-src", "keep": "main", "extra": "e"}, files)
}

func TestMerge_Failures(t *testing.T) {
	r := newRepo(t)
	_, err := r.Merge("ghost")
	assert.ErrorIs(t, err, repo.ErrBranchNotFound)
	_, err = r.Merge("main")
	assert.ErrorIs(t, err, repo.ErrSelfMerge)

	require.NoError(t, r.CreateBranch("empty"))
	_, err = r.Merge("empty")
	assert.ErrorIs(t, err, repo.ErrEmptySource)
}

func TestRevert(t *testing.T) {
	r := newRepo(t)
	first := mustCommit(t, r, "first", "a", "1")
	second := mustCommit(t, r, "second", "a", "2", "b", "2")

	res, err := r.Revert(first.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, res.NewID)
	assert.Equal(t, res.NewID, r.HeadID())
	assert.Equal(t, 1, res.FileCount)
	assert.Equal(t, "1", content(t, r, "a"))
	assert.Equal(t, []string{"a"}, r.Staging().Names())

	// target and its descendants are untouched
	rec, ok := r.Lookup(first.ID)
	require.True(t, ok)
	assert.Equal(t, []string{second.ID}, rec.Children)
	sec, ok := r.Lookup(second.ID)
	require.True(t, ok)
	assert.Equal(t, 2, sec.FileCount)
	assert.Equal(t, []string{res.NewID}, sec.Children)
}

func TestRevert_FallsBackToWholeTree(t *testing.T) {
	r := newRepo(t)
	mustCommit(t, r, "base", "a", "1")
	require.NoError(t, r.CreateBranch("side"))
	_, _ = r.Checkout("side")
	side := mustCommit(t, r, "side", "s", "side")
	_, _ = r.Checkout("main")

	res, err := r.Revert(side.ID)
	require.NoError(t, err)
	assert.Equal(t, "side", content(t, r, "s"))
	assert.Equal(t, "Revert to "+side.ID, res.Message)
}

func TestRevert_Failures(t *testing.T) {
	r := newRepo(t)
	_, err := r.Revert("abc")
	assert.ErrorIs(t, err, repo.ErrNoCommits)

	mustCommit(t, r, "c", "a", "1")
	_, err = r.Revert("deadbeef")
	assert.ErrorIs(t, err, repo.ErrCommitNotFound)
}

func TestDiff(t *testing.T) {
	r := newRepo(t)
	_, err := r.Diff("a")
	assert.ErrorIs(t, err, repo.ErrFileNotFound)

	_, _ = r.Add("a", "1")
	d, err := r.Diff("a")
	require.NoError(t, err)
	assert.Equal(t, repo.DiffNew, d.Status)
	assert.False(t, d.HasHead)

	_, _ = r.Commit("c")
	d, _ = r.Diff("a")
	assert.Equal(t, repo.DiffUnchanged, d.Status)

	_, _ = r.Add("a", "2")
	_, _ = r.Add("b", "new")
	d, _ = r.Diff("a")
	assert.Equal(t, repo.DiffModified, d.Status)
	assert.Equal(t, fingerprint.Of("1"), d.CommittedHash)
	assert.Equal(t, "1", d.CommittedContent)
	assert.Equal(t, "2", d.WorkingContent)

	d, _ = r.Diff("b")
	assert.Equal(t, repo.DiffNew, d.Status)
	assert.True(t, d.HasHead)
}

func TestStatus(t *testing.T) {
	r := newRepo(t)
	mustCommit(t, r, "c", "a", "1")
	_, _ = r.Add("b", "2")

	st, err := r.Status()
	require.NoError(t, err)
	assert.Equal(t, "main", st.Branch)
	assert.Equal(t, []repo.FileStatus{{Name: "b", Hash: fingerprint.Of("2")}}, st.Staged)
	assert.Len(t, st.Working, 2)
	assert.Equal(t, 1, st.UndoCount)
	assert.Equal(t, 0, st.RedoCount)
	assert.Equal(t, r.Working().Digest(), st.WorkingDigest)
}

func TestLog(t *testing.T) {
	r := newRepo(t)
	lg, err := r.Log()
	require.NoError(t, err)
	assert.Empty(t, lg.Commits)
	assert.Equal(t, 0, lg.Total)

	c1 := mustCommit(t, r, "c1", "a", "1")
	c2 := mustCommit(t, r, "c2", "a", "2")
	lg, _ = r.Log()
	require.Len(t, lg.Commits, 2)
	assert.Equal(t, c2.ID, lg.Commits[0].ID)
	assert.Equal(t, c1.ID, lg.Commits[1].ID)
	assert.Equal(t, 2, lg.Total)
	assert.Equal(t, lg.Commits, r.History())
}

func TestReset(t *testing.T) {
	r := newRepo(t)
	mustCommit(t, r, "c", "a", "1")
	r.Reset()

	assert.False(t, r.Initialized())
	assert.Equal(t, 0, r.CommitCount())
	assert.Equal(t, 0, r.UndoDepth())
	assert.Equal(t, "", r.RootID())

	_, err := r.Init()
	require.NoError(t, err)
	assert.Equal(t, "main", r.ActiveBranch())
}
