package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/a-h/templ"
	log "github.com/spf13/jwalterweatherman"

	"github.com/nlwcopa/bolao-web/controllers"
	"github.com/nlwcopa/bolao-web/models"
	"github.com/nlwcopa/bolao-web/templates/components"
)

const (
	maxFormBytes    = 16 << 10
	successTemplate = "Bolão criado com sucesso! Código: %s"
	failureMessage  = "Erro ao criar o bolão! Tente novamente."
)

func successToast(code string) models.Toast {
	return models.Toast{Message: fmt.Sprintf(successTemplate, code), Type: models.ToastSuccess}
}

func errorToast() models.Toast {
	return models.Toast{Message: failureMessage, Type: models.ToastError}
}

// CreatePool handles the landing page form. Each request results in at most
// one creation call to the API; every failure is reported with the same
// generic message and leaves the title as typed.
func CreatePool(pools *controllers.PoolController) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			fmt.Fprint(w, "Method not allowed")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		if err := r.ParseForm(); err != nil {
			log.ERROR.Printf("create pool: parse form: %v", err)
			PoolFailure(w, r)
			return
		}
		title := r.PostFormValue("title")

		created, err := pools.CreatePool(r.Context(), title)
		if err != nil {
			log.ERROR.Printf("create pool: title=%q err=%v", title, err)
			PoolFailure(w, r)
			return
		}

		log.INFO.Printf("create pool: created code=%s", created.Code)
		poolSuccess(w, r, created.Code)
	}
}

func poolSuccess(w http.ResponseWriter, r *http.Request, code string) {
	if !IsHTMX(r) {
		http.Redirect(w, r, "/?code="+url.QueryEscape(code), http.StatusSeeOther)
		return
	}

	// app.js copies pool-created's code to the clipboard
	if err := TriggerEvents(w, map[string]any{
		"show-toast":   successToast(code),
		"pool-created": models.CreatedPool{Code: code},
	}); err != nil {
		log.ERROR.Printf("create pool: encode trigger: %v", err)
	}
	templ.Handler(components.PoolForm("")).ServeHTTP(w, r)
}

// PoolFailure answers a failed submission. htmx clients only get the error
// toast and nothing is swapped, so the input keeps whatever the user has
// typed since submitting. Plain form posts are redirected to the landing
// page, which shows the toast and the submitted title inline.
func PoolFailure(w http.ResponseWriter, r *http.Request) {
	title := r.PostFormValue("title")

	if !IsHTMX(r) {
		q := url.Values{"error": {"1"}, "title": {title}}
		http.Redirect(w, r, "/?"+q.Encode(), http.StatusSeeOther)
		return
	}

	SetHeader(w, "HX-Reswap", "none")
	if err := TriggerEvents(w, map[string]any{"show-toast": errorToast()}); err != nil {
		log.ERROR.Printf("create pool: encode trigger: %v", err)
	}
	w.WriteHeader(http.StatusNoContent)
}
