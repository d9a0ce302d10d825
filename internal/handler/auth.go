package handler

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const customerIDKey contextKey = "customerID"

// RequireSession rejects requests without a valid Bearer session token and
// stores the authenticated customer ID in the request context.
func (h *Handler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "Token de acesso ausente")
			return
		}

		customerID, err := h.tokens.Verify(raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Token de acesso inválido")
			return
		}

		ctx := context.WithValue(r.Context(), customerIDKey, customerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// customerIDFrom returns the authenticated customer ID, empty when the
// request did not pass RequireSession.
func customerIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(customerIDKey).(string)
	return id
}
