package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"lodge/config"
	"lodge/internal/domains/wizard/model"
	"lodge/shared"
	"lodge/shared/cache"
)

const sessionKeyPrefix = "wizard:session"

// SessionStore holds in-flight wizard sessions. Sessions are short-lived and
// expire on their own; Delete exists for explicit abandonment.
type SessionStore interface {
	Save(ctx context.Context, session model.Session) error
	Get(ctx context.Context, id string) (model.Session, bool, error)
	Delete(ctx context.Context, id string) error
}

type redisStore struct {
	cache cache.RedisCache
	cfg   *config.Config
}

// NewRedis stores sessions in redis under wizard:session:<id> with the
// configured session TTL.
func NewRedis(cache cache.RedisCache, cfg *config.Config) SessionStore {
	return &redisStore{
		cache: cache,
		cfg:   cfg,
	}
}

func (s *redisStore) Save(ctx context.Context, session model.Session) error {
	key := shared.BuildCacheKey(sessionKeyPrefix, session.ID)

	if err := s.cache.Save(ctx, key, session, s.cfg.Store.SessionTTL); err != nil {
		return fmt.Errorf("failed to save wizard session: %w", err)
	}

	return nil
}

func (s *redisStore) Get(ctx context.Context, id string) (model.Session, bool, error) {
	var session model.Session

	key := shared.BuildCacheKey(sessionKeyPrefix, id)

	err := s.cache.Get(ctx, key, &session)
	if errors.Is(err, cache.Nil) {
		return model.Session{}, false, nil
	}

	if err != nil {
		return model.Session{}, false, fmt.Errorf("failed to get wizard session: %w", err)
	}

	return session, true, nil
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	key := shared.BuildCacheKey(sessionKeyPrefix, id)

	if err := s.cache.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete wizard session: %w", err)
	}

	return nil
}
