package model

import (
	"fmt"
	"time"
)

type ScheduleStatus string

const (
	ScheduleStatusAvailable   ScheduleStatus = "AVAILABLE"
	ScheduleStatusHalfDay     ScheduleStatus = "HALF_DAY"
	ScheduleStatusUnavailable ScheduleStatus = "UNAVAILABLE"
	ScheduleStatusDayOff      ScheduleStatus = "DAY_OFF"
)

func (s ScheduleStatus) Valid() bool {
	switch s {
	case ScheduleStatusAvailable, ScheduleStatusHalfDay, ScheduleStatusUnavailable, ScheduleStatusDayOff:
		return true
	}
	return false
}

// RequiresWindow reports whether the status must carry a start/end time window.
func (s ScheduleStatus) RequiresWindow() bool {
	return s == ScheduleStatusAvailable || s == ScheduleStatusHalfDay
}

// Closed reports whether the doctor takes no appointments on this status.
func (s ScheduleStatus) Closed() bool {
	return s == ScheduleStatusUnavailable || s == ScheduleStatusDayOff
}

// Schedule is the availability record for one weekday, 0=Monday..6=Sunday.
// Start and end times are zero-padded "HH:MM" strings so window comparison
// stays lexical.
type Schedule struct {
	ID        int64          `db:"schedule_id" json:"schedule_id"`
	Weekday   int            `db:"weekday" json:"weekday"`
	Status    ScheduleStatus `db:"status" json:"status"`
	StartTime *string        `db:"start_time" json:"start_time,omitempty"`
	EndTime   *string        `db:"end_time" json:"end_time,omitempty"`
	Notes     *string        `db:"notes" json:"notes,omitempty"`
	Notify    bool           `db:"notify" json:"notify"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

// Validate enforces the per-status window rules and the weekday range.
func (s *Schedule) Validate() error {
	if s.Weekday < 0 || s.Weekday > 6 {
		return fmt.Errorf("weekday must be between 0 and 6")
	}
	if !s.Status.Valid() {
		return fmt.Errorf("invalid schedule status: %s", s.Status)
	}
	if s.Status.RequiresWindow() {
		if s.StartTime == nil || s.EndTime == nil {
			return fmt.Errorf("start_time and end_time required for status %s", s.Status)
		}
		if *s.StartTime >= *s.EndTime {
			return fmt.Errorf("start_time must be before end_time")
		}
	}
	if s.Status.Closed() {
		if s.StartTime != nil || s.EndTime != nil {
			return fmt.Errorf("times must be empty for status %s", s.Status)
		}
	}
	return nil
}

type UpsertScheduleRequest struct {
	Status    ScheduleStatus `json:"status" binding:"required,schedstatus"`
	StartTime *string        `json:"start_time"`
	EndTime   *string        `json:"end_time"`
	Notes     *string        `json:"notes"`
	Notify    *bool          `json:"notify"`
}

type MarkScheduleStatusRequest struct {
	Status    ScheduleStatus `json:"status" binding:"required,schedstatus"`
	StartTime *string        `json:"start_time"`
	EndTime   *string        `json:"end_time"`
}

type AppendScheduleNoteRequest struct {
	Note string `json:"note" binding:"required"`
}
