package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationChannel string

const (
	NotificationChannelEmail NotificationChannel = "email"
	NotificationChannelSMS   NotificationChannel = "sms"
	NotificationChannelInApp NotificationChannel = "in_app"
)

type NotificationStatus string

const (
	NotificationStatusPending  NotificationStatus = "PENDING"
	NotificationStatusRetrying NotificationStatus = "RETRYING"
	NotificationStatusSent     NotificationStatus = "SENT"
	NotificationStatusFailed   NotificationStatus = "FAILED"
)

// Notification is a queued outbound message. Rows are written in the same
// transaction scope as the triggering operation and drained by the
// background dispatcher; delivery failure never reaches API callers.
type Notification struct {
	ID         uuid.UUID           `db:"id" json:"id"`
	PatientID  int64               `db:"patient_id" json:"patient_id"`
	Channel    NotificationChannel `db:"channel" json:"channel"`
	Recipient  string              `db:"recipient" json:"recipient"`
	Subject    string              `db:"subject" json:"subject"`
	Body       string              `db:"body" json:"body"`
	Status     NotificationStatus  `db:"status" json:"status"`
	RetryCount int                 `db:"retry_count" json:"retry_count"`
	LastError  *string             `db:"last_error" json:"last_error,omitempty"`
	CreatedAt  time.Time           `db:"created_at" json:"created_at"`
	SentAt     *time.Time          `db:"sent_at" json:"sent_at,omitempty"`
	UpdatedAt  time.Time           `db:"updated_at" json:"updated_at"`
}
