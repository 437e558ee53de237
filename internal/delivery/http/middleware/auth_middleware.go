package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go-clinic-dashboard/internal/domain/entity"
	"go-clinic-dashboard/internal/service"
	"go-clinic-dashboard/internal/usecase"
	"go-clinic-dashboard/pkg/response"
)

// SessionResolver turns a dashboard access token into its stored session.
type SessionResolver interface {
	ResolveSession(ctx context.Context, accessToken string) (*entity.Session, error)
}

type AuthMiddleware struct {
	sessions SessionResolver
}

func NewAuthMiddleware(sessions SessionResolver) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		session, err := m.sessions.ResolveSession(r.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrInvalidToken):
				response.Unauthorized(w, "Invalid or expired token")
			case errors.Is(err, usecase.ErrSessionNotFound):
				response.SessionExpired(w, "")
			default:
				response.InternalServerError(w, "Failed to validate token")
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(service.WithSession(r.Context(), session)))
	})
}

// GetSessionFromContext extracts the authenticated session from context
func GetSessionFromContext(ctx context.Context) (*entity.Session, bool) {
	return service.SessionFromContext(ctx)
}
