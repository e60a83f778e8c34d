// SPDX-License-Identifier: MIT

package simulate

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/pkpd/model"
)

// SimulateBatch simulates m once per entry of params, each entry
// overriding parameter values on top of any WithParameterValues option.
// Results are in input order. The first failure cancels the remaining
// runs and is returned.
//
// The model must not be mutated while SimulateBatch runs.
func SimulateBatch(ctx context.Context, m *model.Model, times []float64, params []map[string]float64, opts ...Option) ([]*Trajectory, error) {
	cfg := newConfig(opts)
	if m == nil {
		return nil, ErrNilModel
	}
	if err := ValidateTimeGrid(times); err != nil {
		return nil, err
	}
	if cfg.cache == nil {
		// one compilation shared by every run
		cache, err := NewCache(1)
		if err != nil {
			return nil, err
		}
		cfg.cache = cache
	}

	out := make([]*Trajectory, len(params))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for i, p := range params {
		merged := make(map[string]float64, len(cfg.params)+len(p))
		for k, v := range cfg.params {
			merged[k] = v
		}
		for k, v := range p {
			merged[k] = v
		}
		g.Go(func() error {
			tr, err := run(gctx, m, times, cfg, merged)
			if err != nil {
				return fmt.Errorf("simulate: batch entry %d: %w", i, err)
			}
			out[i] = tr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
