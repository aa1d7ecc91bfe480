// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// forEach runs fn for every key concurrently and waits for all of
// them. The first error is returned and marks the whole batch as
// failed; writes that already succeeded are not rolled back, matching
// how the admin has always treated partial batch failures.
func forEach[K any](ctx context.Context, keys []K, fn func(context.Context, K) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, key := range keys {
		g.Go(func() error {
			return fn(ctx, key)
		})
	}
	return g.Wait()
}
