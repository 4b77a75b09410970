package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/GregMSThompson/cost-tracker/internal/crypto"
	"github.com/GregMSThompson/cost-tracker/internal/response"
	"github.com/GregMSThompson/cost-tracker/pkg/logger"
)

// AuthCookie is the cookie a browser client may carry the token in.
const AuthCookie = "auth_token"

type tokenVerifier interface {
	Verify(token string) (*crypto.Claims, error)
}

type Middleware struct {
	Tokens          tokenVerifier
	ResponseHandler response.ResponseHandler
}

func NewMiddleware(tokens tokenVerifier, rh response.ResponseHandler) *Middleware {
	return &Middleware{Tokens: tokens, ResponseHandler: rh}
}

// context key
type contextKey string

const (
	UIDKey   contextKey = "uid"
	EmailKey contextKey = "email"
)

// Auth verifies the session token and puts the user id in the context.
func (m *Middleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearerToken(r)
		if tokenStr == "" {
			m.ResponseHandler.WriteError(w, r, http.StatusUnauthorized, "unauthorized", "no token provided")
			return
		}

		claims, err := m.Tokens.Verify(tokenStr)
		if err != nil {
			logger.FromContext(r.Context()).Debug("token rejected", "error", err)
			m.ResponseHandler.WriteError(w, r, http.StatusUnauthorized, "unauthorized", "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), UIDKey, claims.UserID)
		ctx = context.WithValue(ctx, EmailKey, claims.Email)
		_, ctx = logger.With(ctx, "uid", claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken reads the Authorization header first and falls back to the cookie.
func bearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.Fields(header)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return ""
	}
	if c, err := r.Cookie(AuthCookie); err == nil {
		return c.Value
	}
	return ""
}

// Helper to extract UID
func UID(ctx context.Context) string {
	uid, _ := ctx.Value(UIDKey).(string)
	return uid
}
