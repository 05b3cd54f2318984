// Package stubapi serves a local stand-in for the bolão backend API, backed
// by SQLite. It exists for development and tests only.
package stubapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/nlwcopa/bolao-web/controllers"
)

func SetupRoutes(store *controllers.StoreController) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.AllowAll().Handler)

	r.Get("/pools/count", Count(store.CountPools))
	r.Get("/users/count", Count(store.CountUsers))
	r.Get("/guesses/count", Count(store.CountGuesses))
	r.Get("/pools", ListPools(store))
	r.Post("/pools", CreatePool(store))
	r.Get("/pools/{code}", GetPool(store))
	r.Get("/healthz", Healthz)
	return r
}
