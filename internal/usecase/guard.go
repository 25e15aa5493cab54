package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/totegamma/music-gateway/internal/domain"
)

// CheckAll confirms that every id resolves to a live entity. Lookups run in
// parallel; a missing id fails the whole group with the first missing id in
// input order. Lookup errors are returned unmodified.
func CheckAll[E any](ctx context.Context, entity string, ids []string, g Getter[E], limit int) error {
	ids = unique(ids)
	if len(ids) == 0 {
		return nil
	}
	for _, id := range ids {
		if id == "" {
			return domain.NotFoundError{Entity: entity, ID: id}
		}
	}

	found := make([]bool, len(ids))
	eg, egctx := errgroup.WithContext(ctx)
	if limit > 0 {
		eg.SetLimit(limit)
	}
	for i, id := range ids {
		i, id := i, id
		eg.Go(func() error {
			v, err := g.Get(egctx, id)
			if err != nil {
				return err
			}
			found[i] = v != nil
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for i, id := range ids {
		if !found[i] {
			return domain.NotFoundError{Entity: entity, ID: id}
		}
	}
	return nil
}

// CheckOne is CheckAll for a single id.
func CheckOne[E any](ctx context.Context, entity, id string, g Getter[E]) error {
	return CheckAll(ctx, entity, []string{id}, g, 1)
}

// mustGet fetches an entity that has to exist.
func mustGet[E any](ctx context.Context, entity, id string, g Getter[E]) (*E, error) {
	v, err := g.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.NotFoundError{Entity: entity, ID: id}
	}
	return v, nil
}
