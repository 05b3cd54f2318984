package controllers

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/nlwcopa/bolao-web/models"
)

type fakeAPI struct {
	pools, users, guesses int64
	poolsErr, usersErr    error
	guessesErr, createErr error
	code                  string

	// when set, every count call blocks until all three have started
	barrier *sync.WaitGroup

	createCalls atomic.Int32
	lastTitle   string
}

func (f *fakeAPI) wait(ctx context.Context) error {
	if f.barrier == nil {
		return nil
	}
	f.barrier.Done()
	done := make(chan struct{})
	go func() {
		f.barrier.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeAPI) CountPools(ctx context.Context) (int64, error) {
	if err := f.wait(ctx); err != nil {
		return 0, err
	}
	return f.pools, f.poolsErr
}

func (f *fakeAPI) CountUsers(ctx context.Context) (int64, error) {
	if err := f.wait(ctx); err != nil {
		return 0, err
	}
	return f.users, f.usersErr
}

func (f *fakeAPI) CountGuesses(ctx context.Context) (int64, error) {
	if err := f.wait(ctx); err != nil {
		return 0, err
	}
	return f.guesses, f.guessesErr
}

func (f *fakeAPI) CreatePool(ctx context.Context, title string) (models.CreatedPool, error) {
	f.createCalls.Add(1)
	f.lastTitle = title
	if f.createErr != nil {
		return models.CreatedPool{}, f.createErr
	}
	return models.CreatedPool{Code: f.code}, nil
}
