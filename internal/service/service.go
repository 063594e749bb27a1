// Package service exposes the version-control verbs over a registry of
// named repositories and persists history after each mutation.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/keshon/minigit/internal/config"
	"github.com/keshon/minigit/internal/logging"
	"github.com/keshon/minigit/internal/repo"
	"github.com/keshon/minigit/internal/store"
	"github.com/keshon/minigit/internal/store/jsonstore"
	"github.com/keshon/minigit/internal/util"
)

// entry is one named repository. mu is held for the whole of one verb.
// dropped is set under mu once the entry leaves the registry; a verb that
// raced the removal must not touch the entry or its stored history.
type entry struct {
	mu      sync.Mutex
	id      uuid.UUID
	name    string
	created time.Time
	repo    *repo.Repository
	dropped bool
}

// Service is safe for concurrent use. Verbs on different repositories run
// in parallel; verbs on the same repository are serialized.
type Service struct {
	mu      sync.RWMutex
	repos   map[string]*entry
	current string

	store       store.HistoryStore
	log         logging.Logger
	repoOpts    []repo.Option
	defaultName string
	saveTimeout time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithStore sets the history sink. The default is an in-memory store.
func WithStore(st store.HistoryStore) Option {
	return func(s *Service) { s.store = st }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithRepoOptions passes options to every repository the service creates.
func WithRepoOptions(opts ...repo.Option) Option {
	return func(s *Service) { s.repoOpts = append(s.repoOpts, opts...) }
}

// WithDefaultName names the repository that exists from the start.
func WithDefaultName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.defaultName = name
		}
	}
}

// New returns a Service holding one empty repository named after the
// default name, which is also current.
func New(opts ...Option) *Service {
	s := &Service{
		repos:       make(map[string]*entry),
		log:         logging.Nop(),
		defaultName: config.DefaultRepository,
		saveTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = jsonstore.NewMemory()
	}
	s.repos[s.defaultName] = s.newEntry(s.defaultName)
	s.current = s.defaultName
	return s
}

// Close flushes every repository and closes the store.
func (s *Service) Close(ctx context.Context) error {
	err := s.Flush(ctx)
	if cerr := s.store.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func (s *Service) newEntry(name string) *entry {
	return &entry{
		id:      uuid.New(),
		name:    name,
		created: time.Now(),
		repo:    repo.New(s.repoOpts...),
	}
}

// Current returns the name of the current repository.
func (s *Service) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Initialized reports whether the current repository has run init.
func (s *Service) Initialized() bool {
	e := s.currentEntry()
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.dropped && e.repo.Initialized()
}

func (s *Service) currentEntry() *entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repos[s.current]
}

// view runs fn on the current repository under its lock.
func (s *Service) view(fn func(r *repo.Repository) Response) Response {
	e := s.currentEntry()
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dropped {
		return gone(e.name)
	}

	resp := fn(e.repo)
	resp.Repository = e.name
	return resp
}

// mutate is view plus a best-effort save of the resulting history.
func (s *Service) mutate(ctx context.Context, verb string, fn func(r *repo.Repository) Response) Response {
	e := s.currentEntry()
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dropped {
		return gone(e.name)
	}

	resp := fn(e.repo)
	resp.Repository = e.name
	if !resp.Success {
		s.log.Debug("verb failed", "verb", verb, "repo", e.name, "reason", resp.Message)
		return resp
	}
	s.log.Debug("verb applied", "verb", verb, "repo", e.name, "head", e.repo.HeadID())
	s.persist(ctx, e)
	return resp
}

func gone(name string) Response {
	resp := fail(describe(ErrRepoNotFound, name))
	resp.Repository = name
	return resp
}

// persist saves the active history of e. Failures are logged only.
// Callers hold e.mu.
func (s *Service) persist(ctx context.Context, e *entry) {
	if e.dropped {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.saveTimeout)
	defer cancel()
	if err := s.store.Save(ctx, e.name, e.repo.History()); err != nil {
		s.log.Warn("failed to save history", "repo", e.name, "error", err)
	}
}

// Flush saves the history of every repository concurrently.
func (s *Service) Flush(ctx context.Context) error {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.repos))
	for _, name := range util.SortedKeys(s.repos) {
		entries = append(entries, s.repos[name])
	}
	s.mu.RUnlock()

	return util.Parallel(entries, util.WorkerCount(), func(e *entry) error {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.dropped {
			return nil
		}
		if err := s.store.Save(ctx, e.name, e.repo.History()); err != nil {
			return fmt.Errorf("flush %s: %w", e.name, err)
		}
		return nil
	})
}

// CreateRepo adds an empty repository. It does not become current.
func (s *Service) CreateRepo(ctx context.Context, name string) Response {
	if err := store.ValidateName(name); err != nil {
		return fail(describe(err, name))
	}
	s.mu.Lock()
	if _, exists := s.repos[name]; exists {
		s.mu.Unlock()
		return fail(describe(ErrRepoExists, name))
	}
	e := s.newEntry(name)
	s.repos[name] = e
	s.mu.Unlock()

	s.log.Info("repository created", "repo", name, "id", e.id)
	resp := ok(fmt.Sprintf("Created repository: %s", name))
	resp.Repository = name
	return resp
}

// SwitchRepo makes name the current repository.
func (s *Service) SwitchRepo(name string) Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.repos[name]; !exists {
		return fail(describe(ErrRepoNotFound, name))
	}
	s.current = name
	resp := ok(fmt.Sprintf("Switched to repository: %s", name))
	resp.Repository = name
	return resp
}

// DeleteRepo drops a repository that is not current, with its stored
// history. A verb still running on it finishes before the history is
// removed and cannot save afterwards.
func (s *Service) DeleteRepo(ctx context.Context, name string) Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, found := s.repos[name]
	if !found {
		return fail(describe(ErrRepoNotFound, name))
	}
	if name == s.current {
		return fail(describe(ErrRepoCurrent, name))
	}
	delete(s.repos, name)
	s.drop(ctx, e)

	s.log.Info("repository deleted", "repo", name)
	return ok(fmt.Sprintf("Deleted repository: %s", name))
}

// drop marks e dead and removes its stored history. Callers hold s.mu.
func (s *Service) drop(ctx context.Context, e *entry) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dropped = true
	s.forget(ctx, e.name)
}

func (s *Service) forget(ctx context.Context, name string) {
	if err := s.store.Delete(ctx, name); err != nil {
		s.log.Warn("failed to delete stored history", "repo", name, "error", err)
	}
}

// ListRepos lists loaded repositories together with names that only have
// stored history, sorted by name.
func (s *Service) ListRepos(ctx context.Context) Response {
	s.mu.RLock()
	loaded := make(map[string]*entry, len(s.repos))
	for name, e := range s.repos {
		loaded[name] = e
	}
	current := s.current
	s.mu.RUnlock()

	stored := make(map[string]bool)
	names, err := s.store.Repositories(ctx)
	if err != nil {
		s.log.Warn("failed to list stored repositories", "error", err)
	}
	for _, name := range names {
		stored[name] = true
	}

	all := make(map[string]struct{}, len(loaded)+len(stored))
	for name := range loaded {
		all[name] = struct{}{}
	}
	for name := range stored {
		all[name] = struct{}{}
	}

	list := make([]RepoEntry, 0, len(all))
	for _, name := range util.SortedKeys(all) {
		re := RepoEntry{Name: name, Current: name == current, Stored: stored[name]}
		if e, isLoaded := loaded[name]; isLoaded {
			e.mu.Lock()
			re.ID = e.id.String()
			re.Loaded = true
			re.Branch = e.repo.ActiveBranch()
			re.Commits = e.repo.CommitCount()
			e.mu.Unlock()
		}
		list = append(list, re)
	}
	resp := ok(fmt.Sprintf("%d repositories", len(list)))
	resp.Repository = current
	resp.Repositories = list
	resp.Total = count(len(list))
	return resp
}

// Reset drops every repository and starts over with a single empty
// default repository whose stored history is empty.
func (s *Service) Reset(ctx context.Context) Response {
	s.mu.Lock()
	old := s.repos
	fresh, found := old[s.defaultName]
	if !found {
		fresh = s.newEntry(s.defaultName)
	}
	for name, e := range old {
		if name != s.defaultName {
			s.drop(ctx, e)
		}
	}
	names, err := s.store.Repositories(ctx)
	if err != nil {
		s.log.Warn("failed to list stored repositories", "error", err)
	}
	for _, name := range names {
		if _, loaded := old[name]; !loaded && name != s.defaultName {
			s.forget(ctx, name)
		}
	}
	s.repos = map[string]*entry{s.defaultName: fresh}
	s.current = s.defaultName

	fresh.mu.Lock()
	fresh.repo.Reset()
	s.persist(ctx, fresh)
	fresh.mu.Unlock()
	s.mu.Unlock()

	s.log.Info("service reset", "repos", len(old))
	resp := ok("Repository reset.")
	resp.Repository = s.defaultName
	return resp
}
