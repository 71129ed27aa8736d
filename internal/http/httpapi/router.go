package httpapi

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"server/internal/http/handlers"
	"server/internal/middleware"
)

func NewRouter(app *handlers.App, allowedOrigins []string) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
	)
	if len(allowedOrigins) > 0 {
		r.Use(middleware.CORS(allowedOrigins))
	}

	// Health
	r.Get("/healthz", app.Health)

	r.Post("/track-session", app.TrackSession)
	r.Post("/update-activity", app.UpdateActivity)
	r.Post("/solve", app.Solve)

	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", app.AdminLogin)
		r.With(middleware.AdminAuth(app.Tokens, app.Logger)).Get("/stats", app.AdminStats)
	})

	return r
}
