package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/barberbot-br/BookingCore/internal/api/handlers"
)

type contextKey string

// ClientIDKey carries the authenticated caller id through the request context
const ClientIDKey contextKey = "clientID"

// HeaderClientID identifies the calling channel (bot, admin panel) on
// protected routes.
const HeaderClientID = "X-Client-ID"

// Auth requires the caller identification header on protected routes and
// stores it in the request context.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := strings.TrimSpace(r.Header.Get(HeaderClientID))
		if clientID == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "missing "+HeaderClientID+" header")
			return
		}

		ctx := context.WithValue(r.Context(), ClientIDKey, clientID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientID extracts the authenticated caller id from the context
func ClientID(ctx context.Context) string {
	if v, ok := ctx.Value(ClientIDKey).(string); ok {
		return v
	}
	return ""
}
