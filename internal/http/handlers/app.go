package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"server/internal/admin"
	"server/internal/providers/solver"
	"server/internal/session"
)

// Solver is the slice of the Gemini client the handlers need.
type Solver interface {
	Solve(ctx context.Context, prompt string, image *solver.InlineImage) (string, error)
}

// App bundles the dependencies handlers work against.
type App struct {
	Logger       zerolog.Logger
	Tracker      *session.Tracker
	Stats        *session.Stats
	Gate         *admin.Gate
	Tokens       *admin.Tokens
	Solver       Solver
	StoreTimeout time.Duration
}

// storeCtx derives a bounded context for store calls so a stalled backend
// cannot hold a request open past its budget.
func (a *App) storeCtx(r *http.Request) (context.Context, context.CancelFunc) {
	timeout := a.StoreTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(r.Context(), timeout)
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, message string) {
	a.json(w, code, map[string]string{"message": message})
}
