package model

import "time"

// User account. Password hashing happens in the service layer.
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"uniqueIndex:users_username_key;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex:users_email_key" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LastLoginAt  time.Time `json:"last_login_at"`
}

// Thread is a two-person conversation. The pair is stored normalized
// (peer_a < peer_b) so the same two users always map to one row; the
// composite unique index makes concurrent find-or-create safe.
type Thread struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PeerA     int64     `gorm:"not null;uniqueIndex:threads_peer_pair_key,priority:1" json:"-"`
	PeerB     int64     `gorm:"not null;uniqueIndex:threads_peer_pair_key,priority:2" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Participants returns the pair as a slice, smaller id first.
func (t *Thread) Participants() []int64 {
	return []int64{t.PeerA, t.PeerB}
}

// HasParticipant reports whether the user belongs to the thread.
func (t *Thread) HasParticipant(userID int64) bool {
	return userID == t.PeerA || userID == t.PeerB
}

type Message struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ThreadID  int64     `gorm:"not null;index" json:"thread_id"`
	Thread    Thread    `gorm:"foreignKey:ThreadID;constraint:OnDelete:CASCADE" json:"-"`
	SenderID  int64     `gorm:"not null;index" json:"sender"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	IsRead    bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
