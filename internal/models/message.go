package models

import "time"

// Role identifies the author of a turn
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message represents one conversation turn
type Message struct {
	ID        string
	Role      Role
	Text      string
	Image     *Payload // only on user turns that attached one
	Audio     *Payload // only on user turns that attached one
	Timestamp time.Time

	// Failed marks a model turn whose text is the gateway's failure string
	Failed bool
}

// IsUser reports whether the message was authored by the user
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

// HasAttachment reports whether the message carries an image or audio payload
func (m Message) HasAttachment() bool {
	return m.Image != nil || m.Audio != nil
}
