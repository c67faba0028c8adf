package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook/internal/handlers"
)

// TokenVerifier verifies a bearer token and returns its subject user id.
type TokenVerifier interface {
	VerifyToken(tokenString string) (uuid.UUID, error)
}

// AuthMiddleware gates requests behind a valid bearer token. Verification
// is stateless: the token's subject id is trusted without a database
// lookup, and handlers that need the account re-check its existence.
type AuthMiddleware struct {
	tokens TokenVerifier
}

func NewAuthMiddleware(tokens TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth rejects requests without a token (401) or with an invalid
// or expired token (403). On success the verified user id is attached to
// the request context before the handler runs.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Authentication required"}`))
			return
		}

		userID, err := m.tokens.VerifyToken(token)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":"Invalid token"}`))
			return
		}

		ctx := handlers.SetUserIDInContext(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
