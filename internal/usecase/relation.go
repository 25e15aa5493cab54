package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// unique drops repeated ids, keeping first occurrences in order.
func unique(ids []string) []string {
	if len(ids) == 0 {
		return ids
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// difference returns the ids of a that are not in b, in a's order.
func difference(a, b []string) []string {
	drop := make(map[string]struct{}, len(b))
	for _, id := range b {
		drop[id] = struct{}{}
	}
	out := []string{}
	for _, id := range unique(a) {
		if _, ok := drop[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// splice removes every occurrence of the given ids.
func splice(ids []string, remove ...string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !contains(remove, id) {
			out = append(out, id)
		}
	}
	return out
}

func appendUnique(ids []string, id string) []string {
	if contains(ids, id) {
		return ids
	}
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids...)
	return append(out, id)
}

// forEach runs fn for every key concurrently, at most limit at a time, and
// returns the first error.
func forEach(ctx context.Context, keys []string, limit int, fn func(ctx context.Context, key string) error) error {
	if len(keys) == 0 {
		return nil
	}
	eg, egctx := errgroup.WithContext(ctx)
	if limit > 0 {
		eg.SetLimit(limit)
	}
	for _, key := range keys {
		key := key
		eg.Go(func() error {
			return fn(egctx, key)
		})
	}
	return eg.Wait()
}

// fetchAll looks every id up concurrently. Missing entities map to nil.
func fetchAll[E any](ctx context.Context, ids []string, g Getter[E], limit int) (map[string]*E, error) {
	ids = unique(ids)
	values := make([]*E, len(ids))
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
			values[i] = v
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]*E, len(ids))
	for i, id := range ids {
		out[id] = values[i]
	}
	return out, nil
}

// groupBy buckets ids by key, skipping empty keys. Bucket order follows the
// first appearance of each key.
func groupBy(ids []string, key func(id string) string) ([]string, map[string][]string) {
	order := []string{}
	groups := map[string][]string{}
	for _, id := range ids {
		k := key(id)
		if k == "" {
			continue
		}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], id)
	}
	return order, groups
}
