package controllers

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nlwcopa/bolao-web/models"
)

type CountSource interface {
	CountPools(ctx context.Context) (int64, error)
	CountUsers(ctx context.Context) (int64, error)
	CountGuesses(ctx context.Context) (int64, error)
}

type StatsController struct {
	source CountSource
}

func NewStatsController(source CountSource) *StatsController {
	return &StatsController{source: source}
}

// LoadCounts fetches the three counters concurrently. It is all-or-nothing:
// if any read fails the others are cancelled and no counts are returned.
func (c *StatsController) LoadCounts(ctx context.Context) (models.Counts, error) {
	var counts models.Counts
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		counts.Pools, err = c.source.CountPools(gctx)
		return err
	})
	g.Go(func() (err error) {
		counts.Users, err = c.source.CountUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		counts.Guesses, err = c.source.CountGuesses(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return models.Counts{}, err
	}
	return counts, nil
}
