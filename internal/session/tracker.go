package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"server/internal/infra/geoip"
	"server/internal/kv"
)

// TrackerOptions configures a Tracker. Store is required; everything else has
// a usable default.
type TrackerOptions struct {
	Store  kv.Store
	Geo    geoip.CountryResolver
	Logger zerolog.Logger
	TTL    time.Duration
	Clock  func() time.Time
}

// Tracker creates and refreshes session records. Tracking is best-effort
// telemetry: store failures are logged and swallowed so they can never break
// the chat flow that triggered them.
type Tracker struct {
	store  kv.Store
	geo    geoip.CountryResolver
	logger zerolog.Logger
	ttl    time.Duration
	clock  func() time.Time
}

func NewTracker(opts TrackerOptions) *Tracker {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Tracker{
		store:  opts.Store,
		geo:    opts.Geo,
		logger: opts.Logger,
		ttl:    opts.TTL,
		clock:  opts.Clock,
	}
}

// Start records a new visit and bumps today's counter. The identifier is
// returned even when persisting fails; an unrecorded session only degrades
// the admin stats, not the visitor's experience.
func (t *Tracker) Start(ctx context.Context, userAgent, ip string) string {
	now := t.clock()
	id := newSessionID(now)

	sess := Session{
		ID:           id,
		Timestamp:    now.UnixMilli(),
		UserAgent:    userAgent,
		IP:           ip,
		LastActivity: now.UnixMilli(),
	}
	if t.geo != nil && ip != "" {
		if code, err := t.geo.CountryCode(ip); err == nil {
			sess.Country = code
		}
	}

	if err := t.persist(ctx, sess); err != nil {
		t.logger.Error().Err(err).Str("session_id", id).Msg("failed to persist session")
		return id
	}
	if _, err := t.store.Incr(ctx, dailyKey(now)); err != nil {
		t.logger.Error().Err(err).Msg("failed to increment daily counter")
	}
	return id
}

// Touch refreshes lastActivity and renews the retention window. Unknown or
// expired identifiers are ignored.
func (t *Tracker) Touch(ctx context.Context, id string) {
	if id == "" {
		return
	}
	raw, err := t.store.Get(ctx, sessionKey(id))
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			t.logger.Error().Err(err).Str("session_id", id).Msg("failed to load session")
		}
		return
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		t.logger.Warn().Err(err).Str("session_id", id).Msg("discarding corrupt session record")
		return
	}
	sess.LastActivity = t.clock().UnixMilli()
	if err := t.persist(ctx, sess); err != nil {
		t.logger.Error().Err(err).Str("session_id", id).Msg("failed to update session activity")
	}
}

func (t *Tracker) persist(ctx context.Context, sess Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return t.store.Set(ctx, sessionKey(sess.ID), string(raw), t.ttl)
}
