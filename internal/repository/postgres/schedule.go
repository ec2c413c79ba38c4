package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/KurtMante/clinic-BE/internal/model"
)

func (r *scheduleRepository) FindByWeekday(ctx context.Context, weekday int) (*model.Schedule, error) {
	query := `
		SELECT schedule_id, weekday, status, start_time, end_time, notes,
			   notify, created_at, updated_at
		FROM schedule
		WHERE weekday = $1
	`
	var schedule model.Schedule
	if err := r.db.GetContext(ctx, &schedule, query, weekday); err != nil {
		return nil, fmt.Errorf("failed to get schedule for weekday %d: %w", weekday, err)
	}
	return &schedule, nil
}

func (r *scheduleRepository) List(ctx context.Context) ([]*model.Schedule, error) {
	query := `
		SELECT schedule_id, weekday, status, start_time, end_time, notes,
			   notify, created_at, updated_at
		FROM schedule
		ORDER BY weekday ASC
	`
	var schedules []*model.Schedule
	if err := r.db.SelectContext(ctx, &schedules, query); err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

// Upsert inserts the weekday row if absent, otherwise updates it in place.
// The unique index on weekday backs the one-row-per-weekday invariant.
func (r *scheduleRepository) Upsert(ctx context.Context, schedule *model.Schedule) (*model.Schedule, error) {
	query := `
		INSERT INTO schedule (weekday, status, start_time, end_time, notes, notify, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (weekday) DO UPDATE
		SET status = EXCLUDED.status,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			notes = EXCLUDED.notes,
			notify = EXCLUDED.notify,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		schedule.Weekday,
		schedule.Status,
		schedule.StartTime,
		schedule.EndTime,
		schedule.Notes,
		schedule.Notify,
		time.Now(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert schedule: %w", err)
	}
	return r.FindByWeekday(ctx, schedule.Weekday)
}

func (r *scheduleRepository) UpdateStatus(ctx context.Context, weekday int, status model.ScheduleStatus, startTime, endTime *string) (*model.Schedule, error) {
	if _, err := r.FindByWeekday(ctx, weekday); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Seeding a fresh row still has to honor the per-status
			// window rules.
			fallback := &model.Schedule{
				Weekday:   weekday,
				Status:    status,
				StartTime: startTime,
				EndTime:   endTime,
				Notify:    true,
			}
			if verr := fallback.Validate(); verr != nil {
				return nil, fmt.Errorf("invalid schedule for weekday %d: %w", weekday, verr)
			}
			return r.Upsert(ctx, fallback)
		}
		return nil, err
	}

	query := `
		UPDATE schedule
		SET status = $1, start_time = $2, end_time = $3, updated_at = $4
		WHERE weekday = $5
	`
	if _, err := r.db.ExecContext(ctx, query, status, startTime, endTime, time.Now(), weekday); err != nil {
		return nil, fmt.Errorf("failed to update schedule status: %w", err)
	}
	return r.FindByWeekday(ctx, weekday)
}

// AppendNote concatenates the new note to any prior notes with a line break.
// A note never seeds a weekday: without an existing row there is no valid
// status/window to attach it to, so the miss propagates.
func (r *scheduleRepository) AppendNote(ctx context.Context, weekday int, note string) (*model.Schedule, error) {
	existing, err := r.FindByWeekday(ctx, weekday)
	if err != nil {
		return nil, err
	}

	newNotes := note
	if existing.Notes != nil && *existing.Notes != "" {
		newNotes = *existing.Notes + "\n" + note
	}

	query := `
		UPDATE schedule
		SET notes = $1, updated_at = $2
		WHERE weekday = $3
	`
	if _, err := r.db.ExecContext(ctx, query, newNotes, time.Now(), weekday); err != nil {
		return nil, fmt.Errorf("failed to append schedule note: %w", err)
	}
	return r.FindByWeekday(ctx, weekday)
}
