package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"backdrop/internal/core"
	"backdrop/internal/nav"
	"backdrop/internal/settings"

	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T, opts ...func(*Config)) *Server {
	t.Helper()
	store := settings.NewStore(settings.Defaults())
	cfg := Config{
		AllowedOrigins: []string{"*"},
		Viewport:       core.Viewport{Width: 64, Height: 48, DPR: 1},
		Seed:           3,
		Lookahead:      nav.DefaultLookahead,
		Threshold:      nav.DefaultScrolledThreshold,
		Debounce:       10 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	srv := New(cfg, store)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go srv.Loop().Run(ctx, time.Millisecond)
	return srv
}

func do(t *testing.T, srv *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)
	w := do(t, srv, "GET", "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest("OPTIONS", "/api/settings", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "PUT")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, "GET", "/api/settings", "")
	var got settings.Settings
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got != settings.Defaults() {
		t.Fatalf("settings = %+v, want defaults", got)
	}

	w = do(t, srv, "PUT", "/api/settings", `{"tier":"max","colorScheme":"cool"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("PUT status = %d: %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Tier != settings.TierMax || got.ColorScheme != settings.SchemeCool {
		t.Fatalf("settings after PUT = %+v", got)
	}
	if got.Intensity != settings.Defaults().Intensity {
		t.Fatalf("partial update changed intensity to %v", got.Intensity)
	}
}

func TestConcurrentPartialUpdatesAllApply(t *testing.T) {
	srv := newTestServer(t)
	bodies := []string{`{"tier":"max"}`, `{"colorScheme":"cool"}`, `{"intensity":0.25}`, `{"enableParticles":false}`}
	var wg sync.WaitGroup
	for _, body := range bodies {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest("PUT", "/api/settings", strings.NewReader(body))
			w := httptest.NewRecorder()
			srv.Router().ServeHTTP(w, req)
			if w.Code != http.StatusOK {
				t.Errorf("PUT %s: status = %d", body, w.Code)
			}
		}()
	}
	wg.Wait()

	got := srv.store.Snapshot()
	want := settings.Defaults()
	want.Tier = settings.TierMax
	want.ColorScheme = settings.SchemeCool
	want.Intensity = 0.25
	want.EnableParticles = false
	if got != want {
		t.Fatalf("settings = %+v, want %+v", got, want)
	}
}

func TestSettingsRejectsInvalid(t *testing.T) {
	srv := newTestServer(t)
	cases := []struct {
		body string
		code int
	}{
		{`{"tier":"ultra"}`, http.StatusUnprocessableEntity},
		{`{"intensity":1.5}`, http.StatusUnprocessableEntity},
		{`{"colorScheme":"sepia"}`, http.StatusUnprocessableEntity},
		{`{"speed":2}`, http.StatusBadRequest},
		{`not json`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		w := do(t, srv, "PUT", "/api/settings", tc.body)
		if w.Code != tc.code {
			t.Errorf("PUT %s: status = %d, want %d", tc.body, w.Code, tc.code)
		}
	}
	if srv.store.Snapshot() != settings.Defaults() {
		t.Fatalf("rejected updates modified the store: %+v", srv.store.Snapshot())
	}
}

func TestCapabilities(t *testing.T) {
	srv := newTestServer(t)
	cases := []struct {
		query     string
		tier      settings.Tier
		particles bool
		motion    bool
	}{
		{"?ua=Mozilla/5.0%20(iPhone%3B%20CPU%20iPhone%20OS%2017_0)", settings.TierMinimal, false, true},
		{"?ua=Mozilla/5.0%20(X11%3B%20Linux)&memory=2", settings.TierMinimal, false, true},
		{"?ua=Mozilla/5.0%20(X11%3B%20Linux)&memory=8&reduced=true", settings.TierStandard, true, false},
		{"?ua=Mozilla/5.0%20(X11%3B%20Linux)", settings.TierStandard, true, true},
	}
	for _, tc := range cases {
		w := do(t, srv, "GET", "/api/capabilities"+tc.query, "")
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", tc.query, w.Code)
		}
		var resp capabilitiesResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp.Tier != tc.tier || resp.Settings.Tier != tc.tier {
			t.Errorf("%s: tier = %s/%s, want %s", tc.query, resp.Tier, resp.Settings.Tier, tc.tier)
		}
		if resp.Settings.EnableParticles != tc.particles || resp.Settings.EnableMotion != tc.motion {
			t.Errorf("%s: settings = %+v", tc.query, resp.Settings)
		}
	}

	if w := do(t, srv, "GET", "/api/capabilities?memory=lots", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("bad memory status = %d, want 400", w.Code)
	}
}

func TestFramePNG(t *testing.T) {
	srv := newTestServer(t)
	w := do(t, srv, "GET", "/api/frame.png?advance=5", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type = %q", ct)
	}
	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Fatalf("frame size = %v, want 64x48", b)
	}
	var ticks uint64
	var animating bool
	srv.Loop().Call(context.Background(), func() {
		ticks = srv.Engine().Ticks()
		animating = srv.Engine().Animating()
	})
	if ticks != 5 {
		t.Fatalf("engine ticks = %d, want 5", ticks)
	}
	if animating {
		t.Fatal("preview engine kept animating after the request")
	}

	if w := do(t, srv, "GET", "/api/frame.png?advance=-1", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("negative advance status = %d, want 400", w.Code)
	}
}

func readState(t *testing.T, conn *websocket.Conn, want string) serverMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg serverMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != want {
		t.Fatalf("message type = %q, want %q (%+v)", msg.Type, want, msg)
	}
	return msg
}

func dialNav(t *testing.T, srv *Server) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWebSocketNavigation(t *testing.T) {
	srv := newTestServer(t)
	conn := dialNav(t, srv)

	hello := readState(t, conn, msgHello)
	if hello.Session == "" || hello.State == nil || hello.State.Active != "hero" || hello.State.Scrolled {
		t.Fatalf("hello = %+v", hello)
	}

	// 1000 + 200 lookahead falls in about [900, 1800).
	if err := conn.WriteJSON(clientMessage{Type: msgScroll, Y: 1000}); err != nil {
		t.Fatalf("write: %v", err)
	}
	msg := readState(t, conn, msgState)
	if *msg.State != (nav.State{Active: "about", Scrolled: true}) {
		t.Fatalf("state after scroll = %+v", *msg.State)
	}

	if err := conn.WriteJSON(clientMessage{Type: msgResize, Sections: []nav.Section{{ID: "hero", Height: 2000}}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	msg = readState(t, conn, msgState)
	if *msg.State != (nav.State{Active: "hero", Scrolled: true}) {
		t.Fatalf("state after resize = %+v", *msg.State)
	}

	if err := conn.WriteJSON(clientMessage{Type: "zoom"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if msg := readState(t, conn, msgError); msg.Error == "" {
		t.Fatal("expected an error message for an unknown type")
	}
	if n := srv.Sessions(); n != 1 {
		t.Fatalf("sessions = %d, want 1", n)
	}
}

func TestWebSocketHonoursZeroLookahead(t *testing.T) {
	srv := newTestServer(t, func(c *Config) {
		c.Lookahead = 0
		c.Threshold = 0
	})
	conn := dialNav(t, srv)
	readState(t, conn, msgHello)

	// With a 200 px lookahead 800 would already be in about.
	if err := conn.WriteJSON(clientMessage{Type: msgScroll, Y: 800}); err != nil {
		t.Fatalf("write: %v", err)
	}
	msg := readState(t, conn, msgState)
	if *msg.State != (nav.State{Active: "hero", Scrolled: true}) {
		t.Fatalf("state = %+v, want hero/scrolled", *msg.State)
	}
}

func TestPreviewHonoursReducedMotion(t *testing.T) {
	srv := newTestServer(t, func(c *Config) { c.ReducedMotion = true })
	if w := do(t, srv, "GET", "/api/frame.png?advance=5", ""); w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var ticks uint64
	srv.Loop().Call(context.Background(), func() { ticks = srv.Engine().Ticks() })
	if ticks != 0 {
		t.Fatalf("engine ticks = %d under reduced motion, want 0", ticks)
	}
}
