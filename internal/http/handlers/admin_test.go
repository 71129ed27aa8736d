package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"server/internal/session"
)

func TestAdminLoginSuccessIssuesToken(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("POST", "/admin/login", strings.NewReader(`{"password":"admin123"}`))
	rr := httptest.NewRecorder()

	app.AdminLogin(rr, req)

	if rr.Code != 200 {
		t.Fatalf("unexpected status code: got %d, want 200", rr.Code)
	}
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Token == "" {
		t.Fatal("expected a token")
	}
	ok, err := app.Tokens.Check(context.Background(), payload.Token)
	if err != nil {
		t.Fatalf("token check error: %v", err)
	}
	if !ok {
		t.Fatal("issued token should be valid")
	}
}

func TestAdminLoginRejectsWrongPassword(t *testing.T) {
	app, _ := newTestApp(t)

	for _, body := range []string{`{"password":"Admin123"}`, `{"password":"wrong"}`} {
		req := httptest.NewRequest("POST", "/admin/login", strings.NewReader(body))
		rr := httptest.NewRecorder()

		app.AdminLogin(rr, req)

		if rr.Code != 401 {
			t.Fatalf("body %q: unexpected status code: got %d, want 401", body, rr.Code)
		}
	}
}

func TestAdminLoginRequiresPassword(t *testing.T) {
	app, _ := newTestApp(t)

	for _, body := range []string{"", "{}", `{"password":""}`} {
		req := httptest.NewRequest("POST", "/admin/login", strings.NewReader(body))
		rr := httptest.NewRecorder()

		app.AdminLogin(rr, req)

		if rr.Code != 400 {
			t.Fatalf("body %q: unexpected status code: got %d, want 400", body, rr.Code)
		}
	}
}

func TestAdminStatsSnapshot(t *testing.T) {
	app, store := newTestApp(t)
	now := time.Now()

	for i := 0; i < 3; i++ {
		raw := fmt.Sprintf(
			`{"id":"s-%d","timestamp":%d,"userAgent":"agent","lastActivity":%d}`,
			i, now.Add(-time.Duration(i)*time.Minute).UnixMilli(), now.UnixMilli(),
		)
		if err := store.Set(context.Background(), session.SessionKeyPrefix+fmt.Sprintf("s-%d", i), raw, 0); err != nil {
			t.Fatalf("seed session: %v", err)
		}
	}
	if err := store.Set(context.Background(), session.DailyKeyPrefix+now.UTC().Format("2006-01-02"), "3", 0); err != nil {
		t.Fatalf("seed counter: %v", err)
	}

	req := httptest.NewRequest("GET", "/admin/stats", nil)
	rr := httptest.NewRecorder()

	app.AdminStats(rr, req)

	if rr.Code != 200 {
		t.Fatalf("unexpected status code: got %d, want 200", rr.Code)
	}
	var payload session.AdminStats
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.TotalUsers != 3 {
		t.Fatalf("totalUsers: got %d want 3", payload.TotalUsers)
	}
	if payload.ActiveUsers != 3 {
		t.Fatalf("activeUsers: got %d want 3", payload.ActiveUsers)
	}
	if payload.SessionsToday != 3 {
		t.Fatalf("sessionsToday: got %d want 3", payload.SessionsToday)
	}
	if len(payload.RecentSessions) != 3 {
		t.Fatalf("recentSessions: got %d want 3", len(payload.RecentSessions))
	}
}
