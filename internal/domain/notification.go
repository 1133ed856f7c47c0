package entity

import "time"

// Notification is one immutable per-user message. There is no read flag and
// no deletion; the log only grows.
type Notification struct {
	TargetUser string    `json:"target_user"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}
