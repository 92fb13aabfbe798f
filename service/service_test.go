package service

import (
	"context"
	"sync"
	"testing"

	"github.com/AdventureDe/DuoChat/auth"
	"github.com/AdventureDe/DuoChat/dto"
	"github.com/AdventureDe/DuoChat/repo"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// memSessionStore keeps sessions in a map so tests don't need Redis.
type memSessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*dto.UserSession
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[int64]*dto.UserSession)}
}

func (m *memSessionStore) SetSession(_ context.Context, session *dto.UserSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.UserID] = session
	return nil
}

func (m *memSessionStore) GetSession(_ context.Context, userID int64) (*dto.UserSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[userID]
	if !ok {
		return nil, repo.ErrSessionNotFound
	}
	return session, nil
}

func (m *memSessionStore) DelSession(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
	return nil
}

type testEnv struct {
	db       *gorm.DB
	sessions *memSessionStore
	users    *UserService
	threads  *ThreadService
	messages *MessageService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repo.AutoMigrate(db))

	userRepo := repo.NewUserRepo(db)
	threadRepo := repo.NewThreadRepo(db)
	messageRepo := repo.NewMessageRepo(db, threadRepo)
	sessions := newMemSessionStore()
	tokens := auth.NewTokenService("test-secret")
	log := zap.NewNop()

	return &testEnv{
		db:       db,
		sessions: sessions,
		users:    NewUserService(userRepo, sessions, tokens, log),
		threads:  NewThreadService(threadRepo, messageRepo, userRepo, log),
		messages: NewMessageService(messageRepo, threadRepo, log),
	}
}

func (e *testEnv) register(t *testing.T, username string) int64 {
	t.Helper()
	user, err := e.users.Register(context.Background(), username, username+"@example.com", "pass123", "pass123")
	require.NoError(t, err)
	return user.ID
}
