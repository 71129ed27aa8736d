package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"server/internal/admin"
	"server/internal/kv"
	"server/internal/session"
)

func newTestApp(t *testing.T) (*App, kv.Store) {
	t.Helper()
	store := kv.NewMemory()
	t.Cleanup(func() { _ = store.Close() })

	logger := zerolog.Nop()
	app := &App{
		Logger:  logger,
		Tracker: session.NewTracker(session.TrackerOptions{Store: store, Logger: logger}),
		Stats:   session.NewStats(session.StatsOptions{Store: store, Logger: logger}),
		Gate:    admin.NewGate("admin123"),
		Tokens:  admin.NewTokens(store),
	}
	return app, store
}

func TestTrackSessionReturnsID(t *testing.T) {
	app, store := newTestApp(t)

	req := httptest.NewRequest("POST", "/track-session", nil)
	req.Header.Set("User-Agent", "test-browser/1.0")
	req.RemoteAddr = "203.0.113.9:51234"
	rr := httptest.NewRecorder()

	app.TrackSession(rr, req)

	if rr.Code != 200 {
		t.Fatalf("unexpected status code: got %d, want 200", rr.Code)
	}
	var payload struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.SessionID == "" {
		t.Fatal("expected a session id")
	}

	raw, err := store.Get(context.Background(), session.SessionKeyPrefix+payload.SessionID)
	if err != nil {
		t.Fatalf("session not stored: %v", err)
	}
	var sess session.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		t.Fatalf("unmarshal session: %v", err)
	}
	if sess.UserAgent != "test-browser/1.0" {
		t.Fatalf("userAgent mismatch: %q", sess.UserAgent)
	}
	if sess.IP != "203.0.113.9" {
		t.Fatalf("ip mismatch: %q", sess.IP)
	}
}

func TestTrackSessionDefaultsUserAgent(t *testing.T) {
	app, store := newTestApp(t)

	req := httptest.NewRequest("POST", "/track-session", nil)
	req.Header.Del("User-Agent")
	rr := httptest.NewRecorder()

	app.TrackSession(rr, req)

	var payload struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	raw, err := store.Get(context.Background(), session.SessionKeyPrefix+payload.SessionID)
	if err != nil {
		t.Fatalf("session not stored: %v", err)
	}
	var sess session.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		t.Fatalf("unmarshal session: %v", err)
	}
	if sess.UserAgent != "Unknown" {
		t.Fatalf("expected Unknown user agent, got %q", sess.UserAgent)
	}
}

func TestUpdateActivityRequiresSessionID(t *testing.T) {
	app, _ := newTestApp(t)

	for _, body := range []string{"", "{}", `{"sessionId":""}`} {
		req := httptest.NewRequest("POST", "/update-activity", strings.NewReader(body))
		rr := httptest.NewRecorder()

		app.UpdateActivity(rr, req)

		if rr.Code != 400 {
			t.Fatalf("body %q: unexpected status code: got %d, want 400", body, rr.Code)
		}
	}
}

func TestUpdateActivityUnknownIDStillSucceeds(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("POST", "/update-activity", strings.NewReader(`{"sessionId":"session_1_unknownxx"}`))
	rr := httptest.NewRecorder()

	app.UpdateActivity(rr, req)

	if rr.Code != 200 {
		t.Fatalf("unexpected status code: got %d, want 200", rr.Code)
	}
}
