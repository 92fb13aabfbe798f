package dto

import (
	"time"

	"github.com/AdventureDe/DuoChat/repo/model"
)

// UserSession is stored in Redis for each logged-in user.
type UserSession struct {
	UserID    int64     `json:"userID"`
	Token     string    `json:"token"`
	LoginTime time.Time `json:"loginTime"`
}

// ThreadView is the thread representation returned by the API: the
// participant pair plus the newest message, if any.
type ThreadView struct {
	ID           int64          `json:"id"`
	Participants []int64        `json:"participants"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	LastMessage  *model.Message `json:"last_message"`
}

func NewThreadView(t *model.Thread, last *model.Message) *ThreadView {
	return &ThreadView{
		ID:           t.ID,
		Participants: t.Participants(),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
		LastMessage:  last,
	}
}
