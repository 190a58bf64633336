package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"radient/internal/showcase"
	"radient/views/components"
)

const keepAliveInterval = 25 * time.Second

// Fragment names double as SSE event names and sse-swap targets.
const (
	fragmentShowcase  = "showcase"
	fragmentForms     = "forms"
	fragmentFAQ       = "faq"
	fragmentSubscribe = "subscribe"
)

var allFragments = []string{fragmentShowcase, fragmentForms, fragmentFAQ, fragmentSubscribe}

func fragmentFor(event string) string {
	switch event {
	case showcase.EventTab, showcase.EventPlayback, showcase.EventCopy:
		return fragmentShowcase
	case showcase.EventForms:
		return fragmentForms
	case showcase.EventFAQ:
		return fragmentFAQ
	case showcase.EventSubscribe:
		return fragmentSubscribe
	}
	return ""
}

func renderFragment(name string, snap showcase.Snapshot) templ.Component {
	switch name {
	case fragmentShowcase:
		return showcaseFragment(snap)
	case fragmentForms:
		return components.FormsFragment(buildFormsFragment(snap))
	case fragmentFAQ:
		return components.FAQFragment(buildFAQFragment(snap))
	case fragmentSubscribe:
		return components.SubscribeFragment(buildSubscribeFragment(snap, ""))
	}
	return nil
}

// RegisterStreamRoutes mounts the long-lived session streams.
func (h *SessionHandler) RegisterStreamRoutes(r chi.Router) {
	r.Get("/session/stream", h.stream)
	r.Get("/session/ws", h.socket)
}

func (h *SessionHandler) stream(w http.ResponseWriter, r *http.Request) {
	id := sessionIDFromCookie(r, h.cookie.CookieName)
	sess, ok := h.store.Touch(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	hub, ok := h.store.Broadcaster(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	send := func(names ...string) {
		snap := sess.Snapshot()
		for _, name := range names {
			writeSSE(w, name, renderToString(r, renderFragment(name, snap)))
		}
		flusher.Flush()
	}

	send(allFragments...)

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-sub:
			if !ok {
				return
			}
			if name := fragmentFor(event); name != "" {
				send(name)
			}
		case <-keepAlive.C:
			h.store.Touch(id)
			_, _ = w.Write([]byte(": keepalive\n\n"))
			flusher.Flush()
		}
	}
}

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
	wsReadLimit  = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// stateMessage is the JSON form of a snapshot sent to websocket clients.
type stateMessage struct {
	Type          string   `json:"type"`
	Event         string   `json:"event,omitempty"`
	Session       string   `json:"session"`
	Tab           string   `json:"tab"`
	Playback      string   `json:"playback"`
	Copied        bool     `json:"copied"`
	Notifications bool     `json:"notifications"`
	FAQCategory   string   `json:"faqCategory"`
	FAQ           []string `json:"faq"`
	OpenFAQ       string   `json:"openFaq,omitempty"`
	Subscribed    bool     `json:"subscribed"`
}

func newStateMessage(event string, snap showcase.Snapshot) stateMessage {
	faq := make([]string, 0, len(snap.FAQ))
	for _, item := range snap.FAQ {
		faq = append(faq, string(item.ID))
	}
	msg := stateMessage{
		Type:          "state",
		Event:         event,
		Session:       snap.ID,
		Tab:           string(snap.ActiveTab.ID),
		Playback:      string(snap.Playback),
		Copied:        snap.Copied,
		Notifications: snap.Notifications,
		FAQCategory:   string(snap.FAQCategory),
		FAQ:           faq,
		Subscribed:    snap.Subscribed,
	}
	if snap.FAQOpen {
		msg.OpenFAQ = string(snap.OpenFAQ)
	}
	return msg
}

// socket pushes a JSON snapshot on connect and after every state change.
// Incoming messages are ignored; reading only serves to notice the close.
func (h *SessionHandler) socket(w http.ResponseWriter, r *http.Request) {
	id := sessionIDFromCookie(r, h.cookie.CookieName)
	if id == "" {
		id = r.URL.Query().Get("session")
	}
	sess, ok := h.store.Touch(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	hub, ok := h.store.Broadcaster(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	closed := make(chan struct{})
	go readPump(conn, closed)

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	write := func(event string) error {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		return conn.WriteJSON(newStateMessage(event, sess.Snapshot()))
	}
	if err := write(""); err != nil {
		return
	}

	for {
		select {
		case <-closed:
			return
		case event, ok := <-sub:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "session ended"))
				return
			}
			if err := write(event); err != nil {
				return
			}
		case <-ticker.C:
			h.store.Touch(id)
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func readPump(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	conn.SetReadLimit(wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read: %v", err)
			}
			return
		}
	}
}
