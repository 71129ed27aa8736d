package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"server/internal/admin"
)

// AdminAuth requires a valid admin bearer token, as issued by the login
// endpoint. A store failure while checking answers 500, never a misleading
// 401.
func AdminAuth(tokens *admin.Tokens, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeMessage(w, http.StatusUnauthorized, "Admin token required")
				return
			}
			ok, err := tokens.Check(r.Context(), token)
			if err != nil {
				logger.Error().Err(err).Msg("admin token check failed")
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if !ok {
				writeMessage(w, http.StatusUnauthorized, "Invalid admin token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func writeMessage(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
