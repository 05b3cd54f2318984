package handlers

import (
	"net/http"

	"github.com/a-h/templ"
	log "github.com/spf13/jwalterweatherman"

	"github.com/nlwcopa/bolao-web/controllers"
	"github.com/nlwcopa/bolao-web/live"
	"github.com/nlwcopa/bolao-web/templates/pages"
)

const countsUnavailable = "Não foi possível carregar a página. Tente novamente em instantes."

// HomePage renders the landing page once all three counters are loaded.
// If any counter fails the page is not rendered at all.
//
// After a form post without htmx the browser is redirected here with either
// ?code=<code> or ?error=1&title=<title>, and the toast is rendered inline.
func HomePage(stats *controllers.StatsController, feed *live.Feed) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		counts, err := stats.LoadCounts(r.Context())
		if err != nil {
			log.ERROR.Printf("home: loading counts failed: %v", err)
			renderError(w, r, http.StatusBadGateway, countsUnavailable)
			return
		}
		if feed != nil {
			feed.Publish(counts)
		}

		data := pages.HomeData{Counts: counts}
		q := r.URL.Query()
		if code := q.Get("code"); code != "" {
			// links are shareable, so only codes we could have issued get a toast
			if controllers.ValidCode(code) {
				toast := successToast(code)
				data.Toast = &toast
			} else {
				log.DEBUG.Printf("home: ignoring malformed code %q", code)
			}
		} else if q.Get("error") == "1" {
			toast := errorToast()
			data.Toast = &toast
			data.Title = q.Get("title")
		}

		templ.Handler(pages.Home(data)).ServeHTTP(w, r)
	}
}

func renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	templ.Handler(pages.Error(message), templ.WithStatus(status)).ServeHTTP(w, r)
}
