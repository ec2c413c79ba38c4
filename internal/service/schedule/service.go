package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/KurtMante/clinic-BE/internal/model"
	"github.com/KurtMante/clinic-BE/internal/repository"
	apperrors "github.com/KurtMante/clinic-BE/pkg/errors"
	"github.com/KurtMante/clinic-BE/pkg/logger"
	"github.com/KurtMante/clinic-BE/pkg/metrics"
)

// The weekly schedule changes rarely but is read on every booking, so rows
// are cached briefly and invalidated on write.
const (
	scheduleCacheTTL     = time.Minute
	scheduleCacheCleanup = 5 * time.Minute
)

type Service struct {
	repo    repository.ScheduleRepository
	cache   *cache.Cache
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewService(repo repository.ScheduleRepository, logger *logger.Logger, metrics *metrics.Metrics) *Service {
	return &Service{
		repo:    repo,
		cache:   cache.New(scheduleCacheTTL, scheduleCacheCleanup),
		logger:  logger,
		metrics: metrics,
	}
}

// WeekdayIndex remaps Go's Sunday-first weekday numbering to the schedule
// convention, 0=Monday..6=Sunday.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func (s *Service) ListSchedules(ctx context.Context) ([]*model.Schedule, error) {
	schedules, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

func (s *Service) UpsertSchedule(ctx context.Context, weekday int, req *model.UpsertScheduleRequest) (*model.Schedule, error) {
	notify := true
	if req.Notify != nil {
		notify = *req.Notify
	}

	sched := &model.Schedule{
		Weekday:   weekday,
		Status:    req.Status,
		StartTime: normalizeWindow(req.StartTime),
		EndTime:   normalizeWindow(req.EndTime),
		Notes:     req.Notes,
		Notify:    notify,
	}
	if err := sched.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	saved, err := s.repo.Upsert(ctx, sched)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert schedule: %w", err)
	}

	s.cache.Delete(strconv.Itoa(weekday))
	return saved, nil
}

func (s *Service) MarkStatus(ctx context.Context, weekday int, req *model.MarkScheduleStatusRequest) (*model.Schedule, error) {
	sched := &model.Schedule{
		Weekday:   weekday,
		Status:    req.Status,
		StartTime: normalizeWindow(req.StartTime),
		EndTime:   normalizeWindow(req.EndTime),
	}
	if err := sched.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	saved, err := s.repo.UpdateStatus(ctx, weekday, sched.Status, sched.StartTime, sched.EndTime)
	if err != nil {
		return nil, fmt.Errorf("failed to update schedule status: %w", err)
	}

	s.cache.Delete(strconv.Itoa(weekday))
	return saved, nil
}

func (s *Service) AppendNote(ctx context.Context, weekday int, note string) (*model.Schedule, error) {
	if weekday < 0 || weekday > 6 {
		return nil, apperrors.Validation("weekday must be between 0 and 6")
	}
	if note == "" {
		return nil, apperrors.Validation("note required")
	}

	saved, err := s.repo.AppendNote(ctx, weekday, note)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf(err, "No schedule configured for weekday %d", weekday)
		}
		return nil, fmt.Errorf("failed to append note: %w", err)
	}

	s.cache.Delete(strconv.Itoa(weekday))
	return saved, nil
}

// CheckAvailability decides whether the doctor takes a booking at the
// candidate time. Walk-ins are staff-entered and bypass the schedule
// entirely; a weekday with no configured row admits unconditionally.
func (s *Service) CheckAvailability(ctx context.Context, candidate time.Time, isWalkIn bool) error {
	if isWalkIn {
		return nil
	}

	weekday := WeekdayIndex(candidate)
	sched, err := s.scheduleForWeekday(ctx, weekday)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("failed to check availability: %w", err)
	}

	if sched.Status.Closed() {
		s.metrics.AvailabilityRejected.WithLabelValues("closed").Inc()
		return apperrors.SchedulingConflictf("Doctor is not available on the selected day (%s)", sched.Status)
	}

	if sched.StartTime != nil && sched.EndTime != nil {
		start := clockString(*sched.StartTime)
		end := clockString(*sched.EndTime)
		hhmm := candidate.Format("15:04")
		if hhmm < start || hhmm > end {
			s.metrics.AvailabilityRejected.WithLabelValues("outside_window").Inc()
			return apperrors.SchedulingConflictf("Time outside available window (%s - %s)", start, end)
		}
	}

	return nil
}

func (s *Service) scheduleForWeekday(ctx context.Context, weekday int) (*model.Schedule, error) {
	key := strconv.Itoa(weekday)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*model.Schedule), nil
	}

	sched, err := s.repo.FindByWeekday(ctx, weekday)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, sched, cache.DefaultExpiration)
	return sched, nil
}

// clockString trims a stored TIME value ("08:00:00") to zero-padded "HH:MM",
// on which lexical order equals clock order.
func clockString(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}

func normalizeWindow(t *string) *string {
	if t == nil {
		return nil
	}
	normalized := clockString(*t)
	return &normalized
}
