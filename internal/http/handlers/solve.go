package handlers

import (
	"encoding/json"
	"net/http"

	"server/internal/providers/solver"
)

type solveRequest struct {
	Prompt string `json:"prompt"`
	Image  *struct {
		MIMEType string `json:"mimeType"`
		Data     string `json:"data"`
	} `json:"image"`
}

type solveResponse struct {
	Answer string `json:"answer"`
}

// Solve forwards a math problem, optionally with an attached image, to the
// model and returns its answer text.
func (a *App) Solve(w http.ResponseWriter, r *http.Request) {
	if a.Solver == nil {
		a.error(w, http.StatusServiceUnavailable, "Solver not configured")
		return
	}
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "Prompt required")
		return
	}
	if req.Prompt == "" {
		a.error(w, http.StatusBadRequest, "Prompt required")
		return
	}

	var image *solver.InlineImage
	if req.Image != nil {
		if req.Image.Data == "" || req.Image.MIMEType == "" {
			a.error(w, http.StatusBadRequest, "Image requires mimeType and data")
			return
		}
		image = &solver.InlineImage{MIMEType: req.Image.MIMEType, Data: req.Image.Data}
	}

	answer, err := a.Solver.Solve(r.Context(), req.Prompt, image)
	if err != nil {
		a.Logger.Error().Err(err).Msg("solve request failed")
		a.error(w, http.StatusBadGateway, "Failed to solve problem")
		return
	}
	a.json(w, http.StatusOK, solveResponse{Answer: answer})
}
