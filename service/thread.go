package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AdventureDe/DuoChat/dto"
	"github.com/AdventureDe/DuoChat/repo"
	"github.com/AdventureDe/DuoChat/repo/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ThreadService owns the two-participant invariant: every thread holds
// exactly two distinct existing users, and one pair maps to one thread.
type ThreadService struct {
	threads  repo.ThreadRepo
	messages repo.MessageRepo
	users    repo.UserRepo
	logger   *zap.Logger
}

func NewThreadService(t repo.ThreadRepo, m repo.MessageRepo, u repo.UserRepo, logger *zap.Logger) *ThreadService {
	return &ThreadService{
		threads:  t,
		messages: m,
		users:    u,
		logger:   logger,
	}
}

func (s *ThreadService) validatePair(ctx context.Context, participants []int64) (int64, int64, error) {
	if len(participants) != 2 {
		return 0, 0, fmt.Errorf("%w: the thread can only have 2 participants", ErrValidation)
	}
	a, b := participants[0], participants[1]
	if a == b {
		return 0, 0, fmt.Errorf("%w: participants must be distinct", ErrValidation)
	}
	cnt, err := s.users.CountByIDs(ctx, []int64{a, b})
	if err != nil {
		return 0, 0, fmt.Errorf("fail to check participants: %w", err)
	}
	if cnt != 2 {
		return 0, 0, fmt.Errorf("%w: participant does not exist", ErrValidation)
	}
	return a, b, nil
}

// Create is an idempotent find-or-create: (A,B) and (B,A) return the same
// thread and never a second row.
func (s *ThreadService) Create(ctx context.Context, participants []int64) (*dto.ThreadView, error) {
	a, b, err := s.validatePair(ctx, participants)
	if err != nil {
		return nil, err
	}
	thread, err := s.threads.FindOrCreate(ctx, a, b)
	if err != nil {
		return nil, fmt.Errorf("fail to create thread: %w", err)
	}
	return s.view(ctx, thread)
}

func (s *ThreadService) Get(ctx context.Context, threadID int64) (*dto.ThreadView, error) {
	thread, err := s.threads.GetByID(ctx, threadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: thread %d", ErrNotFound, threadID)
		}
		return nil, fmt.Errorf("fail to get thread: %w", err)
	}
	return s.view(ctx, thread)
}

// ListForUser returns the caller's threads, most recently updated first.
func (s *ThreadService) ListForUser(ctx context.Context, userID int64) ([]*dto.ThreadView, error) {
	threads, err := s.threads.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fail to list threads: %w", err)
	}
	views := make([]*dto.ThreadView, 0, len(threads))
	for _, t := range threads {
		v, err := s.view(ctx, t)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// ListByUser is the administrative variant of ListForUser: an unknown user
// yields an empty list, not an error.
func (s *ThreadService) ListByUser(ctx context.Context, userID int64) ([]*dto.ThreadView, error) {
	return s.ListForUser(ctx, userID)
}

func (s *ThreadService) UpdateParticipants(ctx context.Context, threadID int64, participants []int64) (*dto.ThreadView, error) {
	a, b, err := s.validatePair(ctx, participants)
	if err != nil {
		return nil, err
	}
	thread, err := s.threads.UpdateParticipants(ctx, threadID, a, b)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: thread %d", ErrNotFound, threadID)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: a thread for this pair already exists", ErrValidation)
		}
		return nil, fmt.Errorf("fail to update thread: %w", err)
	}
	return s.view(ctx, thread)
}

// Delete removes the thread and cascades to its messages.
func (s *ThreadService) Delete(ctx context.Context, threadID int64) error {
	if err := s.threads.Delete(ctx, threadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: thread %d", ErrNotFound, threadID)
		}
		return fmt.Errorf("fail to delete thread: %w", err)
	}
	s.logger.Info("thread deleted", zap.Int64("threadID", threadID))
	return nil
}

// IsParticipant reports whether the user belongs to the thread. Missing
// threads surface as ErrNotFound.
func (s *ThreadService) IsParticipant(ctx context.Context, threadID, userID int64) (bool, error) {
	thread, err := s.threads.GetByID(ctx, threadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("%w: thread %d", ErrNotFound, threadID)
		}
		return false, fmt.Errorf("fail to get thread: %w", err)
	}
	return thread.HasParticipant(userID), nil
}

func (s *ThreadService) view(ctx context.Context, thread *model.Thread) (*dto.ThreadView, error) {
	last, err := s.messages.LastByThread(ctx, thread.ID)
	if err != nil {
		return nil, fmt.Errorf("fail to load last message: %w", err)
	}
	return dto.NewThreadView(thread, last), nil
}
