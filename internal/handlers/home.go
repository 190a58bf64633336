package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"radient/internal/config"
	"radient/internal/showcase"
	"radient/views/pages"
)

type HomeHandler struct {
	store  *showcase.Store
	cookie config.SessionConfig
}

func NewHomeHandler(store *showcase.Store, cookie config.SessionConfig) *HomeHandler {
	return &HomeHandler{store: store, cookie: cookie}
}

func (h *HomeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.home)
}

// home renders the page for the visitor's session, starting one when the
// cookie is missing or points at an expired session.
func (h *HomeHandler) home(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.store.Touch(sessionIDFromCookie(r, h.cookie.CookieName))
	if !ok {
		created, err := h.store.Create()
		if err != nil {
			log.Printf("[http] create session: %v", err)
			http.Error(w, "failed to start session", http.StatusInternalServerError)
			return
		}
		sess = created
		setSessionCookie(w, h.cookie, sess.ID)
	}
	render(w, r, pages.HomePage(buildHomePage(h.store.Catalog(), sess.Snapshot())))
}

func sessionIDFromCookie(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func setSessionCookie(w http.ResponseWriter, cfg config.SessionConfig, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
