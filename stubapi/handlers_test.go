package stubapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlwcopa/bolao-web/api"
	"github.com/nlwcopa/bolao-web/controllers"
	"github.com/nlwcopa/bolao-web/database"
)

func newTestServer(t *testing.T) (*httptest.Server, *controllers.StoreController) {
	t.Helper()
	db, err := database.Open(context.Background(), filepath.Join(t.TempDir(), "stub.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := controllers.NewStoreController(db)
	srv := httptest.NewServer(SetupRoutes(store))
	t.Cleanup(srv.Close)
	return srv, store
}

func TestCountEndpoints(t *testing.T) {
	srv, store := newTestServer(t)
	require.NoError(t, store.Seed(context.Background(), 2, 5))

	cases := map[string]int64{
		"/pools/count":   1,
		"/users/count":   2,
		"/guesses/count": 5,
	}
	for path, want := range cases {
		t.Run(path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + path)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			var body struct {
				Count int64 `json:"count"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, want, body.Count)
		})
	}
}

func TestCreatePoolEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/pools", "application/json", strings.NewReader(`{"title":"Copa 2026"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Code, 6)

	get, err := http.Get(srv.URL + "/pools/" + body.Code)
	require.NoError(t, err)
	defer get.Body.Close()
	assert.Equal(t, http.StatusOK, get.StatusCode)
}

func TestCreatePoolEndpointRejectsBadInput(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, payload := range []string{`{"title":""}`, `{"title":"   "}`, `not json`} {
		resp, err := http.Post(srv.URL+"/pools", "application/json", strings.NewReader(payload))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, payload)
	}
}

func TestListPools(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()

	var titles []string
	for _, title := range []string{"Primeiro", "Segundo"} {
		_, err := store.CreatePool(ctx, title)
		require.NoError(t, err)
		titles = append(titles, title)
	}

	resp, err := http.Get(srv.URL + "/pools")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var pools []struct {
		Title string `json:"title"`
		Code  string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pools))
	require.Len(t, pools, 2)
	for i, p := range pools {
		assert.Equal(t, titles[i], p.Title)
		assert.True(t, controllers.ValidCode(p.Code), p.Code)
	}
}

func TestGetUnknownPool(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/pools/ZZZZZZ")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// The site's API client must work unchanged against the stub.
func TestClientAgainstStub(t *testing.T) {
	srv, _ := newTestServer(t)
	client, err := api.NewClient(srv.URL, time.Second)
	require.NoError(t, err)
	ctx := context.Background()

	created, err := client.CreatePool(ctx, "Amigos da bola")
	require.NoError(t, err)
	assert.NotEmpty(t, created.Code)

	counts, err := controllers.NewStatsController(client).LoadCounts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts.Pools)
	assert.EqualValues(t, 0, counts.Users)
	assert.EqualValues(t, 0, counts.Guesses)
}
