package repo

import (
	"context"
	"errors"

	"github.com/AdventureDe/DuoChat/repo/model"

	"gorm.io/gorm"
)

type MessageRepo interface {
	Create(ctx context.Context, msg *model.Message) error
	GetByID(ctx context.Context, threadID, messageID int64) (*model.Message, error)
	ListByThread(ctx context.Context, threadID int64) ([]*model.Message, error)
	LastByThread(ctx context.Context, threadID int64) (*model.Message, error)
	MarkRead(ctx context.Context, messageID int64) error
	Delete(ctx context.Context, threadID, messageID int64) error
	ListUnread(ctx context.Context, userID int64) ([]*model.Message, error)
}

type messageRepo struct {
	db      *gorm.DB
	threads ThreadRepo
}

func NewMessageRepo(db *gorm.DB, threads ThreadRepo) MessageRepo {
	return &messageRepo{db: db, threads: threads}
}

// Create inserts the message and bumps the owning thread's updated_at in the
// same transaction, so "most recently active" thread ordering stays true.
func (r *messageRepo) Create(ctx context.Context, msg *model.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		return r.threads.Touch(tx, msg.ThreadID)
	})
}

func (r *messageRepo) GetByID(ctx context.Context, threadID, messageID int64) (*model.Message, error) {
	var msg model.Message
	if err := r.db.WithContext(ctx).
		Where("id = ? AND thread_id = ?", messageID, threadID).
		First(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepo) ListByThread(ctx context.Context, threadID int64) ([]*model.Message, error) {
	var messages []*model.Message
	if err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("created_at DESC, id DESC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepo) LastByThread(ctx context.Context, threadID int64) (*model.Message, error) {
	var msg model.Message
	err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("created_at DESC, id DESC").
		First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepo) MarkRead(ctx context.Context, messageID int64) error {
	return r.db.WithContext(ctx).Model(&model.Message{}).
		Where("id = ?", messageID).
		Update("is_read", true).Error
}

func (r *messageRepo) Delete(ctx context.Context, threadID, messageID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND thread_id = ?", messageID, threadID).
		Delete(&model.Message{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListUnread returns unread messages across all threads the user belongs to,
// excluding the user's own messages, newest first.
func (r *messageRepo) ListUnread(ctx context.Context, userID int64) ([]*model.Message, error) {
	var messages []*model.Message
	if err := r.db.WithContext(ctx).
		Joins("JOIN threads ON threads.id = messages.thread_id").
		Where("(threads.peer_a = ? OR threads.peer_b = ?)", userID, userID).
		Where("messages.is_read = ?", false).
		Where("messages.sender_id <> ?", userID).
		Order("messages.created_at DESC, messages.id DESC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
