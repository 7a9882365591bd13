// Package sqlite provides SQLite implementations of the domain repositories.
//
// The lazy wrappers in this file satisfy the same interfaces as the eager
// repositories but only open the database on their first call. The proxy
// and the network hook use them so that classification never waits on
// migrations.
package sqlite

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/adshield/internal/application/port"
	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/domain/repository"
)

type lazyInit[T any] struct {
	provider port.DatabaseProvider
	build    func(ctx context.Context, p port.DatabaseProvider) (T, error)
	once     sync.Once
	repo     T
	err      error
}

func (l *lazyInit[T]) get(ctx context.Context) (T, error) {
	l.once.Do(func() {
		l.repo, l.err = l.build(ctx, l.provider)
	})
	return l.repo, l.err
}

// LazyBlockEventRepository defers opening the database to the first call.
type LazyBlockEventRepository struct {
	init lazyInit[repository.BlockEventRepository]
}

// NewLazyBlockEventRepository creates a lazy block event repository.
func NewLazyBlockEventRepository(provider port.DatabaseProvider) repository.BlockEventRepository {
	return &LazyBlockEventRepository{init: lazyInit[repository.BlockEventRepository]{
		provider: provider,
		build: func(ctx context.Context, p port.DatabaseProvider) (repository.BlockEventRepository, error) {
			db, err := p.DB(ctx)
			if err != nil {
				return nil, err
			}
			return NewBlockEventRepository(db), nil
		},
	}}
}

func (r *LazyBlockEventRepository) Record(ctx context.Context, event *entity.BlockEvent) error {
	repo, err := r.init.get(ctx)
	if err != nil {
		return err
	}
	return repo.Record(ctx, event)
}

func (r *LazyBlockEventRepository) Stats(ctx context.Context, since time.Time, limit int) (*entity.BlockStats, error) {
	repo, err := r.init.get(ctx)
	if err != nil {
		return nil, err
	}
	return repo.Stats(ctx, since, limit)
}

func (r *LazyBlockEventRepository) Recent(ctx context.Context, limit int) ([]*entity.BlockEvent, error) {
	repo, err := r.init.get(ctx)
	if err != nil {
		return nil, err
	}
	return repo.Recent(ctx, limit)
}

func (r *LazyBlockEventRepository) Prune(ctx context.Context, before time.Time) (int64, error) {
	repo, err := r.init.get(ctx)
	if err != nil {
		return 0, err
	}
	return repo.Prune(ctx, before)
}

// LazySiteBypassRepository defers opening the database to the first call.
type LazySiteBypassRepository struct {
	init lazyInit[repository.SiteBypassRepository]
}

// NewLazySiteBypassRepository creates a lazy site bypass repository.
func NewLazySiteBypassRepository(provider port.DatabaseProvider) repository.SiteBypassRepository {
	return &LazySiteBypassRepository{init: lazyInit[repository.SiteBypassRepository]{
		provider: provider,
		build: func(ctx context.Context, p port.DatabaseProvider) (repository.SiteBypassRepository, error) {
			db, err := p.DB(ctx)
			if err != nil {
				return nil, err
			}
			return NewSiteBypassRepository(db), nil
		},
	}}
}

func (r *LazySiteBypassRepository) Add(ctx context.Context, bypass *entity.SiteBypass) error {
	repo, err := r.init.get(ctx)
	if err != nil {
		return err
	}
	return repo.Add(ctx, bypass)
}

func (r *LazySiteBypassRepository) Remove(ctx context.Context, host string) error {
	repo, err := r.init.get(ctx)
	if err != nil {
		return err
	}
	return repo.Remove(ctx, host)
}

func (r *LazySiteBypassRepository) Contains(ctx context.Context, host string) (bool, error) {
	repo, err := r.init.get(ctx)
	if err != nil {
		return false, err
	}
	return repo.Contains(ctx, host)
}

func (r *LazySiteBypassRepository) GetAll(ctx context.Context) ([]*entity.SiteBypass, error) {
	repo, err := r.init.get(ctx)
	if err != nil {
		return nil, err
	}
	return repo.GetAll(ctx)
}
