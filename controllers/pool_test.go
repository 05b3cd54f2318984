package controllers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePool(t *testing.T) {
	api := &fakeAPI{code: "ABC123"}
	created, err := NewPoolController(api).CreatePool(context.Background(), "  Bolão da Copa ")
	require.NoError(t, err)
	assert.Equal(t, "ABC123", created.Code)
	assert.EqualValues(t, 1, api.createCalls.Load())
	assert.Equal(t, "  Bolão da Copa ", api.lastTitle)
}

func TestCreatePoolRejectsBlankTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		api := &fakeAPI{code: "ABC123"}
		_, err := NewPoolController(api).CreatePool(context.Background(), title)
		assert.ErrorIs(t, err, ErrEmptyTitle)
		assert.EqualValues(t, 0, api.createCalls.Load())
	}
}

func TestCreatePoolPropagatesFailure(t *testing.T) {
	boom := errors.New("api down")
	api := &fakeAPI{createErr: boom}
	created, err := NewPoolController(api).CreatePool(context.Background(), "x")
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, created)
	assert.EqualValues(t, 1, api.createCalls.Load())
}
