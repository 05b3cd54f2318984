package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL+"/api", time.Second)
	require.NoError(t, err)
	return c
}

func TestCounts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/pools/count", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count": 12}`))
	})
	mux.HandleFunc("GET /api/users/count", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count": 0}`))
	})
	mux.HandleFunc("GET /api/guesses/count", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count": 4821}`))
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	pools, err := c.CountPools(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 12, pools)

	users, err := c.CountUsers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, users)

	guesses, err := c.CountGuesses(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4821, guesses)
}

func TestCountErrors(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantSts bool
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `oops`, wantSts: true},
		{name: "not found", status: http.StatusNotFound, body: ``, wantSts: true},
		{name: "bad json", status: http.StatusOK, body: `{"count":`},
		{name: "negative", status: http.StatusOK, body: `{"count": -1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))

			_, err := c.CountPools(context.Background())
			require.Error(t, err)

			var sErr *StatusError
			assert.Equal(t, tc.wantSts, errors.As(err, &sErr))
			if tc.wantSts {
				assert.Equal(t, tc.status, sErr.StatusCode)
			}
		})
	}
}

func TestCreatePool(t *testing.T) {
	var got createPoolRequest
	calls := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/pools", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"code":"ABC123"}`))
	}))

	created, err := c.CreatePool(context.Background(), "Bolão da firma")
	require.NoError(t, err)
	assert.Equal(t, "ABC123", created.Code)
	assert.Equal(t, "Bolão da firma", got.Title)
	assert.Equal(t, 1, calls)
}

func TestCreatePoolFailures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{name: "bad request", status: http.StatusBadRequest, body: `{"message":"invalid"}`},
		{name: "empty code", status: http.StatusCreated, body: `{"code":""}`},
		{name: "not json", status: http.StatusCreated, body: `<html>`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			_, err := c.CreatePool(context.Background(), "x")
			assert.Error(t, err)
		})
	}
}

func TestUnreachableAPI(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(url, time.Second)
	require.NoError(t, err)
	_, err = c.CreatePool(context.Background(), "x")
	assert.Error(t, err)
}

func TestContextCancellation(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.CountUsers(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
