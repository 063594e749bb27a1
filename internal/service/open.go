package service

import (
	"fmt"

	"github.com/keshon/minigit/internal/config"
	"github.com/keshon/minigit/internal/repo"
	"github.com/keshon/minigit/internal/store"
	"github.com/keshon/minigit/internal/store/jsonstore"
	"github.com/keshon/minigit/internal/store/sqlitestore"
)

// OpenStore builds the history store selected by cfg.
func OpenStore(cfg config.StoreConfig) (store.HistoryStore, error) {
	switch cfg.Kind {
	case config.StoreJSON, "":
		st, err := jsonstore.New(cfg.Dir, &jsonstore.Options{Compress: cfg.Compress})
		if err != nil {
			return nil, fmt.Errorf("open json store: %w", err)
		}
		return st, nil
	case config.StoreSQLite:
		st, err := sqlitestore.Open(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return st, nil
	case config.StoreMemory:
		return jsonstore.NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: unknown store kind %q", config.ErrInvalidConfig, cfg.Kind)
	}
}

// FromConfig opens the configured store and builds a Service around it.
func FromConfig(cfg *config.Config, opts ...Option) (*Service, error) {
	st, err := OpenStore(cfg.Store)
	if err != nil {
		return nil, err
	}
	base := []Option{
		WithStore(st),
		WithDefaultName(cfg.Repo.DefaultName),
		WithRepoOptions(repoDefaults(cfg)...),
	}
	return New(append(base, opts...)...), nil
}

func repoDefaults(cfg *config.Config) []repo.Option {
	return []repo.Option{repo.WithDefaultBranch(cfg.Repo.DefaultBranch)}
}
