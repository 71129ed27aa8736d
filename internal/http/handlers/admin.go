package handlers

import (
	"encoding/json"
	"net/http"
)

type adminLoginRequest struct {
	Password string `json:"password"`
}

type adminLoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// AdminLogin checks the shared admin secret and, on success, issues the
// bearer token the stats endpoint requires.
func (a *App) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "Password required")
		return
	}
	if req.Password == "" {
		a.error(w, http.StatusBadRequest, "Password required")
		return
	}
	if !a.Gate.Verify(req.Password) {
		a.error(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	ctx, cancel := a.storeCtx(r)
	defer cancel()

	token, err := a.Tokens.Issue(ctx)
	if err != nil {
		a.Logger.Error().Err(err).Msg("failed to issue admin token")
		a.error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	a.json(w, http.StatusOK, adminLoginResponse{Message: "Login successful", Token: token})
}

// AdminStats returns the freshly computed dashboard snapshot. Store failures
// degrade to empty counts rather than an error response.
func (a *App) AdminStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := a.storeCtx(r)
	defer cancel()

	a.json(w, http.StatusOK, a.Stats.Compute(ctx))
}
