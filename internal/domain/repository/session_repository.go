package repository

import (
	"context"
	"time"

	"go-clinic-dashboard/internal/domain/entity"
)

type SessionRepository interface {
	Save(ctx context.Context, session *entity.Session, ttl time.Duration) error
	// FindByID returns nil, nil when the session does not exist or expired.
	FindByID(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}

// LoginResult is what the upstream auth endpoint returns on success.
type LoginResult struct {
	Token       string   `json:"token"`
	User        Operator `json:"user"`
	Permissions []string `json:"permissions"`
}

type Operator struct {
	ID       entity.ID `json:"id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

type AuthGateway interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}
