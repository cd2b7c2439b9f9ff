package models

import "time"

// Session is a server-side record of a successful login.
type Session struct {
	ID        string    `json:"id"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID    int
	Username  string
	Role      Role
	SessionID string
}
