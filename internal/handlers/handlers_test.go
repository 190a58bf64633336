package handlers

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"radient/internal/catalog"
	"radient/internal/config"
	"radient/internal/showcase"
)

var testCookie = config.SessionConfig{CookieName: "radient_session", IdleTTL: time.Hour}

func newTestServer(t *testing.T) (*chi.Mux, *showcase.Store) {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	store := showcase.NewStore(cat, showcase.Settings{
		CopyReset:      time.Hour,
		SubscribeReset: time.Hour,
		Particles:      30,
		Sparkles:       15,
	}, time.Hour)
	t.Cleanup(store.Close)

	r := chi.NewRouter()
	NewHomeHandler(store, testCookie).RegisterRoutes(r)
	sessions := NewSessionHandler(store, testCookie)
	sessions.RegisterRoutes(r)
	sessions.RegisterStreamRoutes(r)
	api := NewAPIHandler(store, 30)
	api.RegisterHealth(r)
	r.Route("/api", api.RegisterRoutes)
	return r, store
}

// startSession loads the page and returns the session cookie it set.
func startSession(t *testing.T, r http.Handler) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status %d", rec.Code)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookie.CookieName {
			return c
		}
	}
	t.Fatal("GET / did not set a session cookie")
	return nil
}

func post(r http.Handler, path string, cookie *http.Cookie, form url.Values, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	if htmx {
		req.Header.Set("Hx-Request", "true")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHome_RendersPageAndReusesSession(t *testing.T) {
	r, store := newTestServer(t)
	cookie := startSession(t, r)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	body := rec.Body.String()
	for _, want := range []string{`sse-connect="/session/stream"`, `class="particle"`, `class="sparkle"`, "Frequently asked questions"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if got := strings.Count(body, `class="particle"`); got != 30 {
		t.Errorf("rendered %d particles, want 30", got)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("existing session should not get a new cookie")
	}
	if store.Len() != 1 {
		t.Errorf("sessions %d, want 1", store.Len())
	}
}

func TestHome_LayersIdenticalAcrossRenders(t *testing.T) {
	r, _ := newTestServer(t)
	cookie := startSession(t, r)
	render := func() string {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		body := rec.Body.String()
		start := strings.Index(body, `<div class="hero-layers"`)
		end := strings.Index(body[start:], `</div>`)
		return body[start : start+end]
	}
	if render() != render() {
		t.Error("hero layers should be identical across renders")
	}
}

func TestSession_SelectTabHTMX(t *testing.T) {
	r, _ := newTestServer(t)
	cookie := startSession(t, r)

	rec := post(r, "/session/tab", cookie, url.Values{"tab": {"cards"}}, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "card-glass") {
		t.Error("fragment should list the cards examples")
	}
	if strings.Contains(rec.Body.String(), "button-primary") {
		t.Error("fragment should not list examples of other tabs")
	}
}

func TestSession_PlainPostRedirects(t *testing.T) {
	r, _ := newTestServer(t)
	cookie := startSession(t, r)
	rec := post(r, "/session/tab", cookie, url.Values{"tab": {"forms"}}, false)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Errorf("got %d %q, want 303 to /", rec.Code, rec.Header().Get("Location"))
	}
}

func TestSession_UnknownOptionIsBadRequest(t *testing.T) {
	r, _ := newTestServer(t)
	cookie := startSession(t, r)

	cases := []struct {
		name string
		path string
		form url.Values
	}{
		{"tab", "/session/tab", url.Values{"tab": {"widgets"}}},
		{"playback", "/session/playback", url.Values{"state": {"rewind"}}},
		{"faq category", "/session/faq/category", url.Values{"category": {"Billing"}}},
		{"faq item", "/session/faq/nope/toggle", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := post(r, tc.path, cookie, tc.form, true)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status %d, want 400", rec.Code)
			}
		})
	}
}

func TestSession_MissingSessionRedirects(t *testing.T) {
	r, _ := newTestServer(t)
	rec := post(r, "/session/copy", &http.Cookie{Name: testCookie.CookieName, Value: "gone"}, nil, true)
	if rec.Header().Get("HX-Redirect") != "/" {
		t.Errorf("htmx request should get HX-Redirect, got %q", rec.Header().Get("HX-Redirect"))
	}
	rec = post(r, "/session/copy", nil, nil, false)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status %d, want 303", rec.Code)
	}
}

func TestSession_FAQFilterClosesHiddenItem(t *testing.T) {
	r, _ := newTestServer(t)
	cookie := startSession(t, r)

	rec := post(r, "/session/faq/typescript/toggle", cookie, nil, true)
	if !strings.Contains(rec.Body.String(), `class="faq-answer"`) {
		t.Fatal("toggled entry should render its answer")
	}
	rec = post(r, "/session/faq/category", cookie, url.Values{"category": {"Pricing"}}, true)
	if strings.Contains(rec.Body.String(), `class="faq-answer"`) {
		t.Error("filtering away the open entry should close it")
	}
	rec = post(r, "/session/faq/typescript/toggle", cookie, nil, true)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("toggling a hidden entry: status %d, want 400", rec.Code)
	}
}

func TestSession_CopyAndSubscribe(t *testing.T) {
	r, _ := newTestServer(t)
	cookie := startSession(t, r)

	rec := post(r, "/session/copy", cookie, nil, true)
	if !strings.Contains(rec.Body.String(), "Copied!") {
		t.Error("copy should show the confirmation")
	}

	rec = post(r, "/session/subscribe", cookie, url.Values{"email": {""}}, true)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "Please enter your email") {
		t.Errorf("empty email: %d %q", rec.Code, rec.Body.String())
	}
	rec = post(r, "/session/subscribe", cookie, url.Values{"email": {"ada@example.com"}}, true)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Subscribed!") {
		t.Errorf("subscribe: %d %q", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "ada@example.com") {
		t.Error("the address should not be echoed back")
	}
}

func TestSession_Notifications(t *testing.T) {
	r, _ := newTestServer(t)
	cookie := startSession(t, r)
	rec := post(r, "/session/notifications", cookie, nil, true)
	if !strings.Contains(rec.Body.String(), `aria-checked="true"`) {
		t.Error("switch should be on after one toggle")
	}
}

func TestStream_SendsFragmentsAndEvents(t *testing.T) {
	r, _ := newTestServer(t)
	srv := httptest.NewServer(r)
	defer srv.Close()
	cookie := startSession(t, r)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/session/stream", nil)
	req.AddCookie(cookie)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Content-Type %q", ct)
	}

	events := make(chan string, 16)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			if name, ok := strings.CutPrefix(scanner.Text(), "event: "); ok {
				events <- name
			}
		}
		close(events)
	}()

	want := map[string]bool{"showcase": false, "forms": false, "faq": false, "subscribe": false}
	for range want {
		select {
		case name := <-events:
			want[name] = true
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for initial fragments")
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("initial fragment %q not sent", name)
		}
	}

	post(r, "/session/faq/category", cookie, url.Values{"category": {"Technical"}}, true)
	select {
	case name := <-events:
		if name != "faq" {
			t.Errorf("event %q, want faq", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event after changing the FAQ filter")
	}
}

func TestStream_UnknownSession(t *testing.T) {
	r, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/session/stream", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status %d, want 404", rec.Code)
	}
}

func TestSocket_PushesState(t *testing.T) {
	r, _ := newTestServer(t)
	srv := httptest.NewServer(r)
	defer srv.Close()
	cookie := startSession(t, r)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/session/ws?session=" + url.QueryEscape(cookie.Value)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var msg stateMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read initial state: %v", err)
	}
	if msg.Tab != "buttons" || msg.Playback != "paused" || msg.FAQCategory != "All" {
		t.Errorf("initial state %+v", msg)
	}

	post(r, "/session/tab", cookie, url.Values{"tab": {"media"}}, true)
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read update: %v", err)
	}
	if msg.Event != "tab" || msg.Tab != "media" {
		t.Errorf("update %+v, want tab media", msg)
	}
}

func TestAPI_Scatter(t *testing.T) {
	r, _ := newTestServer(t)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	rec := get("/api/scatter/particles?count=3")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var resp scatterResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 3 || len(resp.Points) != 3 || resp.Points[0].Top != 0 || resp.Points[1].Top != 37.5 {
		t.Errorf("response %+v", resp)
	}

	cases := []struct {
		path   string
		status int
		count  int
	}{
		{"/api/scatter/sparkles", http.StatusOK, 30},
		{"/api/scatter/sparkles?count=-5", http.StatusOK, 0},
		{"/api/scatter/sparkles?count=5000", http.StatusOK, 1000},
		{"/api/scatter/sparkles?count=many", http.StatusBadRequest, 0},
		{"/api/scatter/comets", http.StatusNotFound, 0},
	}
	for _, tc := range cases {
		rec := get(tc.path)
		if rec.Code != tc.status {
			t.Errorf("%s: status %d, want %d", tc.path, rec.Code, tc.status)
			continue
		}
		if tc.status != http.StatusOK {
			continue
		}
		var resp scatterResponse
		_ = json.NewDecoder(rec.Body).Decode(&resp)
		if resp.Count != tc.count {
			t.Errorf("%s: count %d, want %d", tc.path, resp.Count, tc.count)
		}
	}
}

func TestAPI_Healthz(t *testing.T) {
	r, _ := newTestServer(t)
	startSession(t, r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	var body struct {
		Status   string `json:"status"`
		Sessions int    `json:"sessions"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ok" || body.Sessions != 1 {
		t.Errorf("healthz %+v", body)
	}
}
