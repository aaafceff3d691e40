package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/carelog/carelog-server-go/internal/model"
	"github.com/carelog/carelog-server-go/internal/repository"
	"github.com/carelog/carelog-server-go/internal/util"
)

type contextKey string

const UserContextKey contextKey = "user"

func GetUser(ctx context.Context) *model.SessionUser {
	if user, ok := ctx.Value(UserContextKey).(*model.SessionUser); ok {
		return user
	}
	return nil
}

type AuthMiddleware struct {
	sessionRepo repository.SessionRepository
}

func NewAuthMiddleware(sessionRepo repository.SessionRepository) *AuthMiddleware {
	return &AuthMiddleware{sessionRepo: sessionRepo}
}

// Handler resolves the bearer token to a session and attaches the session's
// user snapshot to the request context. The snapshot is frozen at login;
// later profile changes are not reflected here. Expired sessions fail auth
// even while the row is still present, and are deleted on this access.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ExtractToken(r)
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Missing authentication token",
			})
			return
		}

		session, err := m.sessionRepo.FindByTokenHash(r.Context(), util.HashToken(token))
		if err != nil {
			log.Error().Err(err).Msg("auth middleware: database error")
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "Authentication failed",
			})
			return
		}

		if session == nil {
			log.Warn().Msg("auth middleware: invalid token attempt")
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Invalid token",
			})
			return
		}

		if session.Expired(time.Now()) {
			if err := m.sessionRepo.Delete(r.Context(), session.ID); err != nil {
				log.Error().Err(err).Str("sessionId", session.ID).Msg("delete expired session failed")
			}
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Session expired",
			})
			return
		}

		user := session.User()
		ctx := context.WithValue(r.Context(), UserContextKey, &user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ExtractToken reads the bearer token from the authorization header or,
// failing that, the token query parameter.
func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}

	return ""
}
