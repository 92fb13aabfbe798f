package repo

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/AdventureDe/DuoChat/dto"

	"github.com/go-redis/redis/v8"
)

// ErrSessionNotFound is returned when no live session exists for a user.
var ErrSessionNotFound = errors.New("session not found")

const sessionTTL = 24 * time.Hour

type SessionStore interface {
	SetSession(ctx context.Context, session *dto.UserSession) error
	GetSession(ctx context.Context, userID int64) (*dto.UserSession, error)
	DelSession(ctx context.Context, userID int64) error
}

type sessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) SessionStore {
	return &sessionStore{rdb: rdb}
}

func sessionKey(userID int64) string {
	return "session:" + strconv.FormatInt(userID, 10)
}

func (r *sessionStore) SetSession(ctx context.Context, session *dto.UserSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, sessionKey(session.UserID), data, sessionTTL).Err()
}

func (r *sessionStore) GetSession(ctx context.Context, userID int64) (*dto.UserSession, error) {
	res, err := r.rdb.Get(ctx, sessionKey(userID)).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var session dto.UserSession
	if err := json.Unmarshal([]byte(res), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionStore) DelSession(ctx context.Context, userID int64) error {
	return r.rdb.Del(ctx, sessionKey(userID)).Err()
}
