package handlers

import (
	"encoding/json"
	"net"
	"net/http"
)

type trackSessionResponse struct {
	SessionID string `json:"sessionId"`
}

type updateActivityRequest struct {
	SessionID string `json:"sessionId"`
}

// TrackSession registers a new visit. Client metadata comes from request
// headers; the body is ignored. Tracking is best-effort, so this always
// answers 200 with an identifier.
func (a *App) TrackSession(w http.ResponseWriter, r *http.Request) {
	userAgent := r.UserAgent()
	if userAgent == "" {
		userAgent = "Unknown"
	}

	ctx, cancel := a.storeCtx(r)
	defer cancel()

	id := a.Tracker.Start(ctx, userAgent, clientIP(r))
	a.json(w, http.StatusOK, trackSessionResponse{SessionID: id})
}

// UpdateActivity refreshes the heartbeat for a known session. Unknown or
// expired identifiers are silently accepted.
func (a *App) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	var req updateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "Session ID required")
		return
	}
	if req.SessionID == "" {
		a.error(w, http.StatusBadRequest, "Session ID required")
		return
	}

	ctx, cancel := a.storeCtx(r)
	defer cancel()

	a.Tracker.Touch(ctx, req.SessionID)
	a.json(w, http.StatusOK, map[string]string{"message": "Activity updated"})
}

// clientIP relies on the RealIP middleware having already resolved forwarding
// headers into RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
