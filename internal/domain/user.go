package domain

import (
	"fmt"
	"time"
)

// User represents a chat user of one robot
type User struct {
	ID            int64
	ChatID        string
	RobotID       int64
	Name          *string
	CurrentMenuID *int64
	CreatedAt     time.Time
}

// HasName reports whether a display name was captured
func (u *User) HasName() bool {
	return u.Name != nil && *u.Name != ""
}

// DisplayName returns the captured name or the chat id
func (u *User) DisplayName() string {
	if u.HasName() {
		return *u.Name
	}
	return u.ChatID
}

// UserFields holds the user columns that may be updated
type UserFields struct {
	Name *string
}

// SessionKey identifies one conversation: a chat talking to a robot
type SessionKey struct {
	ChatID  string
	RobotID int64
}

func (k SessionKey) String() string {
	return fmt.Sprintf("%d:%s", k.RobotID, k.ChatID)
}
