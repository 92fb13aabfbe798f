package repo

import (
	"context"
	"errors"
	"time"

	"github.com/AdventureDe/DuoChat/repo/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ThreadRepo interface {
	FindOrCreate(ctx context.Context, userA, userB int64) (*model.Thread, error)
	GetByID(ctx context.Context, threadID int64) (*model.Thread, error)
	ListByParticipant(ctx context.Context, userID int64) ([]*model.Thread, error)
	UpdateParticipants(ctx context.Context, threadID, userA, userB int64) (*model.Thread, error)
	Delete(ctx context.Context, threadID int64) error
	Touch(tx *gorm.DB, threadID int64) error
}

type threadRepo struct {
	db *gorm.DB
}

func NewThreadRepo(db *gorm.DB) ThreadRepo {
	return &threadRepo{db: db}
}

// normalizePair orders the two user ids so {A,B} and {B,A} hit the same row.
func normalizePair(userA, userB int64) (int64, int64) {
	if userA > userB {
		return userB, userA
	}
	return userA, userB
}

// FindOrCreate returns the existing thread for the pair or inserts a new one.
// The lookup and insert run in one transaction; two concurrent creators for
// the same pair are resolved by the unique index on (peer_a, peer_b): the
// loser's insert is a no-op and the winner's row is re-read.
func (r *threadRepo) FindOrCreate(ctx context.Context, userA, userB int64) (*model.Thread, error) {
	a, b := normalizePair(userA, userB)
	var thread model.Thread
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("peer_a = ? AND peer_b = ?", a, b).First(&thread).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		thread = model.Thread{PeerA: a, PeerB: b}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&thread).Error; err != nil {
			return err
		}
		if thread.ID == 0 {
			// lost the race, the winner's row exists now
			return tx.Where("peer_a = ? AND peer_b = ?", a, b).First(&thread).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

func (r *threadRepo) GetByID(ctx context.Context, threadID int64) (*model.Thread, error) {
	var thread model.Thread
	if err := r.db.WithContext(ctx).Where("id = ?", threadID).First(&thread).Error; err != nil {
		return nil, err
	}
	return &thread, nil
}

func (r *threadRepo) ListByParticipant(ctx context.Context, userID int64) ([]*model.Thread, error) {
	var threads []*model.Thread
	if err := r.db.WithContext(ctx).
		Where("peer_a = ? OR peer_b = ?", userID, userID).
		Order("updated_at DESC").
		Find(&threads).Error; err != nil {
		return nil, err
	}
	return threads, nil
}

func (r *threadRepo) UpdateParticipants(ctx context.Context, threadID, userA, userB int64) (*model.Thread, error) {
	a, b := normalizePair(userA, userB)
	var thread model.Thread
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", threadID).First(&thread).Error; err != nil {
			return err
		}
		if err := tx.Model(&thread).Updates(map[string]interface{}{
			"peer_a":     a,
			"peer_b":     b,
			"updated_at": time.Now(),
		}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", threadID).First(&thread).Error
	})
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

// Delete removes the thread and all of its messages in one transaction.
func (r *threadRepo) Delete(ctx context.Context, threadID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("thread_id = ?", threadID).Delete(&model.Message{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", threadID).Delete(&model.Thread{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Touch bumps updated_at so the thread sorts as most recently active.
// Runs on the caller's transaction handle.
func (r *threadRepo) Touch(tx *gorm.DB, threadID int64) error {
	return tx.Model(&model.Thread{}).Where("id = ?", threadID).
		Update("updated_at", time.Now()).Error
}
