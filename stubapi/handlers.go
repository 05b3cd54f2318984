package stubapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/spf13/jwalterweatherman"

	"github.com/nlwcopa/bolao-web/controllers"
	"github.com/nlwcopa/bolao-web/database"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, struct {
		Message string `json:"message"`
	}{Message: msg})
}

func Count(count func(context.Context) (int64, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := count(r.Context())
		if err != nil {
			log.ERROR.Printf("stub: count %s: %v", r.URL.Path, err)
			writeMessage(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Count int64 `json:"count"`
		}{Count: n})
	}
}

func CreatePool(store *controllers.StoreController) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Title string `json:"title"`
		}
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&body); err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid body")
			return
		}

		pool, err := store.CreatePool(r.Context(), body.Title)
		if err != nil {
			if errors.Is(err, controllers.ErrEmptyTitle) {
				writeMessage(w, http.StatusBadRequest, err.Error())
				return
			}
			log.ERROR.Printf("stub: create pool: %v", err)
			writeMessage(w, http.StatusInternalServerError, "failed to create pool")
			return
		}

		log.INFO.Printf("stub: created pool %q with code %s", pool.Title, pool.Code)
		writeJSON(w, http.StatusCreated, struct {
			Code string `json:"code"`
		}{Code: pool.Code})
	}
}

type poolResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Code      string `json:"code"`
	CreatedAt int64  `json:"createdAt"`
}

func toPoolResponse(p database.Pool) poolResponse {
	return poolResponse{ID: p.ID, Title: p.Title, Code: p.Code, CreatedAt: p.CreatedAt}
}

func ListPools(store *controllers.StoreController) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pools, err := store.ListPools(r.Context())
		if err != nil {
			log.ERROR.Printf("stub: list pools: %v", err)
			writeMessage(w, http.StatusInternalServerError, "internal error")
			return
		}
		resp := make([]poolResponse, 0, len(pools))
		for _, p := range pools {
			resp = append(resp, toPoolResponse(p))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func GetPool(store *controllers.StoreController) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pool, err := store.FindPool(r.Context(), chi.URLParam(r, "code"))
		if err != nil {
			log.ERROR.Printf("stub: find pool: %v", err)
			writeMessage(w, http.StatusInternalServerError, "internal error")
			return
		}
		if pool == nil {
			writeMessage(w, http.StatusNotFound, "pool not found")
			return
		}
		writeJSON(w, http.StatusOK, toPoolResponse(*pool))
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
