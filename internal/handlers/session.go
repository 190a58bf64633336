package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"radient/internal/accordion"
	"radient/internal/catalog"
	"radient/internal/config"
	"radient/internal/selection"
	"radient/internal/showcase"
	"radient/views/components"
)

type SessionHandler struct {
	store  *showcase.Store
	cookie config.SessionConfig
}

func NewSessionHandler(store *showcase.Store, cookie config.SessionConfig) *SessionHandler {
	return &SessionHandler{store: store, cookie: cookie}
}

// RegisterRoutes mounts the state changing endpoints. Streams are mounted
// separately by RegisterStreamRoutes so request timeouts do not cut them.
func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Route("/session", func(r chi.Router) {
		r.Post("/tab", h.selectTab)
		r.Post("/playback", h.playback)
		r.Post("/copy", h.copyCode)
		r.Post("/notifications", h.notifications)
		r.Post("/faq/category", h.faqCategory)
		r.Post("/faq/{item}/toggle", h.toggleFAQ)
		r.Post("/subscribe", h.subscribe)
	})
}

func (h *SessionHandler) selectTab(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok || !parseForm(w, r) {
		return
	}
	changed, err := sess.SelectTab(catalog.Category(r.FormValue("tab")))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if changed {
		h.store.Publish(sess.ID, showcase.EventTab)
	}
	h.respond(w, r, showcaseFragment(sess.Snapshot()))
}

// playback sets the toggle to the posted state, or flips it when none is
// given.
func (h *SessionHandler) playback(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok || !parseForm(w, r) {
		return
	}
	changed := true
	if state := r.FormValue("state"); state != "" {
		var err error
		changed, err = sess.SetPlayback(showcase.Playback(state))
		if err != nil {
			h.fail(w, r, err)
			return
		}
	} else {
		sess.TogglePlayback()
	}
	if changed {
		h.store.Publish(sess.ID, showcase.EventPlayback)
	}
	h.respond(w, r, showcaseFragment(sess.Snapshot()))
}

func (h *SessionHandler) copyCode(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	sess.CopyCode()
	h.respond(w, r, showcaseFragment(sess.Snapshot()))
}

func (h *SessionHandler) notifications(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	sess.ToggleNotifications()
	h.store.Publish(sess.ID, showcase.EventForms)
	h.respond(w, r, components.FormsFragment(buildFormsFragment(sess.Snapshot())))
}

func (h *SessionHandler) faqCategory(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok || !parseForm(w, r) {
		return
	}
	changed, err := sess.SetFAQCategory(catalog.Category(r.FormValue("category")))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if changed {
		h.store.Publish(sess.ID, showcase.EventFAQ)
	}
	h.respond(w, r, components.FAQFragment(buildFAQFragment(sess.Snapshot())))
}

func (h *SessionHandler) toggleFAQ(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	item, err := url.PathUnescape(chi.URLParam(r, "item"))
	if err != nil {
		http.Error(w, "invalid item", http.StatusBadRequest)
		return
	}
	if err := sess.ToggleFAQ(catalog.ItemID(item)); err != nil {
		h.fail(w, r, err)
		return
	}
	h.store.Publish(sess.ID, showcase.EventFAQ)
	h.respond(w, r, components.FAQFragment(buildFAQFragment(sess.Snapshot())))
}

func (h *SessionHandler) subscribe(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok || !parseForm(w, r) {
		return
	}
	if err := sess.Subscribe(r.FormValue("email")); err != nil {
		if isHTMX(r) && (errors.Is(err, showcase.ErrEmailRequired) || errors.Is(err, showcase.ErrInvalidEmail)) {
			frag := buildSubscribeFragment(sess.Snapshot(), subscribeMessage(err))
			renderStatus(w, r, http.StatusBadRequest, components.SubscribeFragment(frag))
			return
		}
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, components.SubscribeFragment(buildSubscribeFragment(sess.Snapshot(), "")))
}

func subscribeMessage(err error) string {
	if errors.Is(err, showcase.ErrEmailRequired) {
		return "Please enter your email."
	}
	return "That does not look like an email address."
}

// session resolves the visitor's session from the cookie. A missing or
// expired session sends the visitor back to the page, which starts a new one.
func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*showcase.Session, bool) {
	sess, ok := h.store.Touch(sessionIDFromCookie(r, h.cookie.CookieName))
	if !ok {
		redirectHome(w, r)
		return nil, false
	}
	return sess, true
}

func (h *SessionHandler) respond(w http.ResponseWriter, r *http.Request, fragment templ.Component) {
	if isHTMX(r) {
		render(w, r, fragment)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *SessionHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, showcase.ErrClosed):
		redirectHome(w, r)
	case errors.Is(err, selection.ErrUnknownOption),
		errors.Is(err, accordion.ErrUnknownItem),
		errors.Is(err, accordion.ErrHiddenItem),
		errors.Is(err, showcase.ErrEmailRequired),
		errors.Is(err, showcase.ErrInvalidEmail):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("[http] %s %s: %v", r.Method, r.URL.Path, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return false
	}
	return true
}

func showcaseFragment(snap showcase.Snapshot) templ.Component {
	return components.ShowcaseFragment(buildShowcaseFragment(snap))
}
