package handlers

import (
	"io/fs"
	"net/http"
	"sync/atomic"

	log "github.com/spf13/jwalterweatherman"

	"github.com/nlwcopa/bolao-web/controllers"
	"github.com/nlwcopa/bolao-web/live"
	"github.com/nlwcopa/bolao-web/middleware"
)

type Deps struct {
	Stats        *controllers.StatsController
	Pools        *controllers.PoolController
	Feed         *live.Feed
	Limiter      *middleware.Limiter
	TrustProxy   bool
	Static       fs.FS
	ShuttingDown *atomic.Bool
}

func SetupRoutes(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	if d.Static != nil {
		mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(d.Static))))
	}
	mux.HandleFunc("/health", Health(d.ShuttingDown))
	mux.HandleFunc("/", HomePage(d.Stats, d.Feed))

	var createPool http.Handler = CreatePool(d.Pools)
	if d.Limiter != nil {
		createPool = middleware.RateLimit(middleware.RateLimitOptions{
			Limiter:  d.Limiter,
			KeyFn:    middleware.ClientKey(d.TrustProxy),
			OnReject: rejectPool,
		})(createPool)
	}
	mux.Handle("/pools", createPool)

	if d.Feed != nil {
		mux.HandleFunc("/counts/live", d.Feed.HandleWebsocket)
	}
	return mux
}

func rejectPool(w http.ResponseWriter, r *http.Request, status int) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		log.DEBUG.Printf("create pool: rejected request: parse form: %v", err)
	}
	if !IsHTMX(r) {
		PoolFailure(w, r)
		return
	}
	// keep the 429 for htmx; the form stays as typed since nothing is swapped
	_ = TriggerEvents(w, map[string]any{"show-toast": errorToast()})
	w.WriteHeader(status)
}
