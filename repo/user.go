package repo

import (
	"context"
	"time"

	"github.com/AdventureDe/DuoChat/repo/model"

	"gorm.io/gorm"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CountByUsername(ctx context.Context, username string) (int64, error)
	CountByIDs(ctx context.Context, userIDs []int64) (int64, error)
	UpdateLoginTime(ctx context.Context, userID int64) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) CountByUsername(ctx context.Context, username string) (int64, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("username = ?", username).Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}

// CountByIDs counts how many of the given ids exist. Used to validate
// thread participants in one query.
func (r *userRepo) CountByIDs(ctx context.Context, userIDs []int64) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id IN ?", userIDs).Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *userRepo) UpdateLoginTime(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).
		Update("last_login_at", time.Now()).Error
}
