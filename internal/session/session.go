// Package session tracks visitor sessions in the key-value store and derives
// the admin statistics shown in the dashboard.
package session

import (
	"time"
)

const (
	// SessionKeyPrefix namespaces per-visit records in the store.
	SessionKeyPrefix = "user_session:"
	// DailyKeyPrefix namespaces the per-UTC-day session counters.
	DailyKeyPrefix = "daily_sessions:"

	// DefaultTTL is the retention window for a session record. Every
	// heartbeat renews it, so survival slides forward from the most recent
	// activity rather than from creation.
	DefaultTTL = 24 * time.Hour

	// activeWindow bounds how stale lastActivity may be for a session to
	// count as an active user.
	activeWindow = time.Hour

	// recentLimit caps the recent-sessions list in admin stats.
	recentLimit = 10
)

// Session is one tracked client visit. Field names match the wire format the
// dashboard consumes; timestamps are epoch milliseconds.
type Session struct {
	ID           string `json:"id"`
	Timestamp    int64  `json:"timestamp"`
	UserAgent    string `json:"userAgent"`
	IP           string `json:"ip,omitempty"`
	Country      string `json:"country,omitempty"`
	LastActivity int64  `json:"lastActivity"`
}

// AdminStats is the derived snapshot returned by the stats endpoint. It is
// recomputed on every request; all fields come from a single session listing.
type AdminStats struct {
	TotalUsers     int       `json:"totalUsers"`
	ActiveUsers    int       `json:"activeUsers"`
	SessionsToday  int64     `json:"sessionsToday"`
	RecentSessions []Session `json:"recentSessions"`
}

func sessionKey(id string) string {
	return SessionKeyPrefix + id
}

func dailyKey(now time.Time) string {
	return DailyKeyPrefix + now.UTC().Format("2006-01-02")
}
