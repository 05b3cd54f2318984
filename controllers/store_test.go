package controllers

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlwcopa/bolao-web/database"
)

func newTestStore(t *testing.T) *StoreController {
	t.Helper()
	db, err := database.Open(context.Background(), filepath.Join(t.TempDir(), "stub.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStoreController(db)
}

func TestGenerateCode(t *testing.T) {
	re := regexp.MustCompile(`^[A-Z0-9]{6}$`)
	for range 50 {
		code, err := GenerateCode()
		require.NoError(t, err)
		assert.Regexp(t, re, code)
	}
}

func TestStoreCreatePoolAndCount(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	n, err := store.CountPools(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	pool, err := store.CreatePool(ctx, "  Bolão do escritório ")
	require.NoError(t, err)
	assert.Equal(t, "Bolão do escritório", pool.Title)
	assert.Len(t, pool.Code, 6)

	n, err = store.CountPools(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	found, err := store.FindPool(ctx, pool.Code)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, pool.ID, found.ID)

	missing, err := store.FindPool(ctx, "NOPE00")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStoreCreatePoolRejectsBlankTitle(t *testing.T) {
	_, err := newTestStore(t).CreatePool(context.Background(), " ")
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestStoreRegeneratesCodeOnCollision(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	codes := []string{"AAAAAA", "AAAAAA", "BBBBBB"}
	store.newCode = func() (string, error) {
		c := codes[0]
		codes = codes[1:]
		return c, nil
	}

	first, err := store.CreatePool(ctx, "first")
	require.NoError(t, err)
	assert.Equal(t, "AAAAAA", first.Code)

	second, err := store.CreatePool(ctx, "second")
	require.NoError(t, err)
	assert.Equal(t, "BBBBBB", second.Code)

	pools, err := store.ListPools(ctx)
	require.NoError(t, err)
	assert.Len(t, pools, 2)
}

func TestStoreGivesUpAfterRepeatedCollisions(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	store.newCode = func() (string, error) { return "SAME00", nil }

	_, err := store.CreatePool(ctx, "first")
	require.NoError(t, err)

	_, err = store.CreatePool(ctx, "second")
	assert.True(t, errors.Is(err, ErrCodeExhausted))
}

func TestStoreSeed(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Seed(ctx, 4, 10))

	users, err := store.CountUsers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, users)

	guesses, err := store.CountGuesses(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 10, guesses)

	pools, err := store.CountPools(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, pools)
}

func TestValidCode(t *testing.T) {
	cases := map[string]bool{
		"ABC123":   true,
		"ZZZZZZ":   true,
		"abc123":   false,
		"ABC12":    false,
		"ABC1234":  false,
		"ABC 12":   false,
		"ÇÓDIGO":   false,
		"":         false,
	}
	for code, want := range cases {
		assert.Equal(t, want, ValidCode(code), code)
	}

	for range 20 {
		code, err := GenerateCode()
		require.NoError(t, err)
		assert.True(t, ValidCode(code), code)
	}
}
