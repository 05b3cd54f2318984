package handlers

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

// Health reports readiness; it fails while the server drains on shutdown.
func Health(shuttingDown *atomic.Bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if shuttingDown.Load() {
			http.Error(w, "Shutting down", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintln(w, "Ok")
	}
}
