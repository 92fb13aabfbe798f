package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AdventureDe/DuoChat/repo"
	"github.com/AdventureDe/DuoChat/repo/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MessageService owns the sender-membership rule on creation and the
// unread→read state transition.
type MessageService struct {
	messages repo.MessageRepo
	threads  repo.ThreadRepo
	logger   *zap.Logger
}

func NewMessageService(m repo.MessageRepo, t repo.ThreadRepo, logger *zap.Logger) *MessageService {
	return &MessageService{
		messages: m,
		threads:  t,
		logger:   logger,
	}
}

func (s *MessageService) getThread(ctx context.Context, threadID int64) (*model.Thread, error) {
	thread, err := s.threads.GetByID(ctx, threadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: thread %d", ErrNotFound, threadID)
		}
		return nil, fmt.Errorf("fail to get thread: %w", err)
	}
	return thread, nil
}

// List returns the thread's messages, newest first.
func (s *MessageService) List(ctx context.Context, threadID int64) ([]*model.Message, error) {
	if _, err := s.getThread(ctx, threadID); err != nil {
		return nil, err
	}
	messages, err := s.messages.ListByThread(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("fail to list messages: %w", err)
	}
	return messages, nil
}

// Create persists a message from a thread participant. Non-participants are
// rejected with a validation error and nothing is written.
func (s *MessageService) Create(ctx context.Context, threadID, senderID int64, text string) (*model.Message, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", ErrValidation)
	}
	thread, err := s.getThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if !thread.HasParticipant(senderID) {
		return nil, fmt.Errorf("%w: you're not the member of this thread", ErrValidation)
	}
	msg := &model.Message{
		ThreadID: threadID,
		SenderID: senderID,
		Text:     text,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("fail to create message: %w", err)
	}
	return msg, nil
}

// Read fetches a message and, when the reader is not the sender, marks it
// read. The transition is one-way and idempotent; a sender reading their own
// message never flips the flag. The returned message reflects the current
// is_read value.
func (s *MessageService) Read(ctx context.Context, threadID, messageID, readerID int64) (*model.Message, error) {
	msg, err := s.messages.GetByID(ctx, threadID, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: message %d", ErrNotFound, messageID)
		}
		return nil, fmt.Errorf("fail to get message: %w", err)
	}
	if readerID != msg.SenderID && !msg.IsRead {
		if err := s.messages.MarkRead(ctx, msg.ID); err != nil {
			return nil, fmt.Errorf("fail to mark message read: %w", err)
		}
		msg.IsRead = true
	}
	return msg, nil
}

func (s *MessageService) Delete(ctx context.Context, threadID, messageID int64) error {
	if err := s.messages.Delete(ctx, threadID, messageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: message %d", ErrNotFound, messageID)
		}
		return fmt.Errorf("fail to delete message: %w", err)
	}
	s.logger.Info("message deleted", zap.Int64("threadID", threadID), zap.Int64("messageID", messageID))
	return nil
}

// ListUnread returns the user's unread messages across all their threads.
// Unknown users get an empty list, not an error.
func (s *MessageService) ListUnread(ctx context.Context, userID int64) ([]*model.Message, error) {
	messages, err := s.messages.ListUnread(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fail to list unread messages: %w", err)
	}
	return messages, nil
}
