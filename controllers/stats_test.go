package controllers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlwcopa/bolao-web/models"
)

func TestLoadCounts(t *testing.T) {
	api := &fakeAPI{pools: 3, users: 1024, guesses: 0}
	counts, err := NewStatsController(api).LoadCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Counts{Pools: 3, Users: 1024, Guesses: 0}, counts)
}

func TestLoadCountsIsAllOrNothing(t *testing.T) {
	boom := errors.New("boom")
	cases := []struct {
		name string
		api  *fakeAPI
	}{
		{name: "pools fails", api: &fakeAPI{pools: 1, users: 2, guesses: 3, poolsErr: boom}},
		{name: "users fails", api: &fakeAPI{pools: 1, users: 2, guesses: 3, usersErr: boom}},
		{name: "guesses fails", api: &fakeAPI{pools: 1, users: 2, guesses: 3, guessesErr: boom}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			counts, err := NewStatsController(tc.api).LoadCounts(context.Background())
			assert.ErrorIs(t, err, boom)
			assert.Equal(t, models.Counts{}, counts)
		})
	}
}

func TestLoadCountsRunsConcurrently(t *testing.T) {
	// each call only returns once all three are in flight
	var barrier sync.WaitGroup
	barrier.Add(3)
	api := &fakeAPI{pools: 1, users: 2, guesses: 3, barrier: &barrier}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	counts, err := NewStatsController(api).LoadCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Counts{Pools: 1, Users: 2, Guesses: 3}, counts)
}
