package auth

import "time"

// Session ties a browser cookie to a remote access token. The token never
// leaves the server.
type Session struct {
	ID        string    `gorm:"primaryKey;type:char(36)"`
	Username  string    `gorm:"type:varchar(255);not null"`
	RemoteUID string    `gorm:"column:remote_uid;type:varchar(64);not null;default:''"`
	Token     string    `gorm:"type:text;not null"`
	ExpiresAt time.Time `gorm:"type:datetime(3);not null;index:ix_console_sessions_expires_at"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Session) TableName() string { return "console_sessions" }

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
