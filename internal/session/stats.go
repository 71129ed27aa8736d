package session

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"server/internal/kv"
)

// StatsOptions configures a Stats aggregator.
type StatsOptions struct {
	Store  kv.Store
	Logger zerolog.Logger
	Clock  func() time.Time
}

// Stats derives dashboard numbers from the live session records. Every call
// reads the store fresh; there is nothing to invalidate.
type Stats struct {
	store  kv.Store
	logger zerolog.Logger
	clock  func() time.Time
}

func NewStats(opts StatsOptions) *Stats {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Stats{
		store:  opts.Store,
		logger: opts.Logger,
		clock:  opts.Clock,
	}
}

// ActiveSessions lists every non-expired session sorted by creation time,
// newest first. Corrupt records are skipped; store failures yield an empty
// list so the dashboard never hard-fails on a backend hiccup.
func (s *Stats) ActiveSessions(ctx context.Context) []Session {
	keys, err := s.store.Keys(ctx, SessionKeyPrefix)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list session keys")
		return []Session{}
	}

	sessions := make([]Session, 0, len(keys))
	for _, key := range keys {
		raw, err := s.store.Get(ctx, key)
		if err != nil {
			if !errors.Is(err, kv.ErrNotFound) {
				s.logger.Error().Err(err).Str("key", key).Msg("failed to load session")
			}
			continue
		}
		var sess Session
		if err := json.Unmarshal([]byte(raw), &sess); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("skipping corrupt session record")
			continue
		}
		sessions = append(sessions, sess)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Timestamp > sessions[j].Timestamp
	})
	return sessions
}

// Compute builds the admin snapshot from a single session listing plus
// today's counter.
func (s *Stats) Compute(ctx context.Context) AdminStats {
	now := s.clock()
	sessions := s.ActiveSessions(ctx)

	activeSince := now.Add(-activeWindow).UnixMilli()
	active := 0
	for _, sess := range sessions {
		if sess.LastActivity >= activeSince {
			active++
		}
	}

	recent := sessions
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	return AdminStats{
		TotalUsers:     len(sessions),
		ActiveUsers:    active,
		SessionsToday:  s.sessionsToday(ctx, now),
		RecentSessions: recent,
	}
}

func (s *Stats) sessionsToday(ctx context.Context, now time.Time) int64 {
	raw, err := s.store.Get(ctx, dailyKey(now))
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logger.Error().Err(err).Msg("failed to load daily counter")
		}
		return 0
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.logger.Warn().Err(err).Str("value", raw).Msg("ignoring malformed daily counter")
		return 0
	}
	return n
}
