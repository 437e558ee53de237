package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-clinic-dashboard/internal/domain/entity"
	domainRepo "go-clinic-dashboard/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

const SessionKeyPrefix = "dashboard:session:"

type sessionRepository struct {
	rdb *redis.Client
}

func NewSessionRepository(rdb *redis.Client) domainRepo.SessionRepository {
	return &sessionRepository{rdb: rdb}
}

func (r *sessionRepository) Save(ctx context.Context, session *entity.Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return r.rdb.Set(ctx, SessionKeyPrefix+session.ID, payload, ttl).Err()
}

func (r *sessionRepository) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	raw, err := r.rdb.Get(ctx, SessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var session entity.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, SessionKeyPrefix+id).Err()
}
