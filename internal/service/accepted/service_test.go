package accepted

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KurtMante/clinic-BE/internal/model"
	"github.com/KurtMante/clinic-BE/internal/service/reminder"
	apperrors "github.com/KurtMante/clinic-BE/pkg/errors"
	"github.com/KurtMante/clinic-BE/pkg/logger"
	"github.com/KurtMante/clinic-BE/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("accepted_test")

type fakeAcceptedRepo struct {
	nextID int64
	rows   map[int64]*model.AcceptedAppointment
}

func newFakeAcceptedRepo() *fakeAcceptedRepo {
	return &fakeAcceptedRepo{nextID: 1, rows: make(map[int64]*model.AcceptedAppointment)}
}

func (f *fakeAcceptedRepo) Create(_ context.Context, a *model.AcceptedAppointment) error {
	a.ID = f.nextID
	f.nextID++
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	copied := *a
	f.rows[a.ID] = &copied
	return nil
}

func (f *fakeAcceptedRepo) Get(_ context.Context, id int64) (*model.AcceptedAppointment, error) {
	a, ok := f.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAcceptedRepo) GetByAppointmentID(_ context.Context, appointmentID int64) (*model.AcceptedAppointment, error) {
	for _, a := range f.rows {
		if a.AppointmentID == appointmentID {
			copied := *a
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAcceptedRepo) List(_ context.Context) ([]*model.AcceptedAppointment, error) {
	var out []*model.AcceptedAppointment
	for _, a := range f.rows {
		copied := *a
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeAcceptedRepo) ListByPatient(_ context.Context, patientID int64) ([]*model.AcceptedAppointment, error) {
	var out []*model.AcceptedAppointment
	for _, a := range f.rows {
		if a.PatientID == patientID {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeAcceptedRepo) ListByAttendance(_ context.Context, attended bool) ([]*model.AcceptedAppointment, error) {
	var out []*model.AcceptedAppointment
	for _, a := range f.rows {
		if a.IsAttended == attended {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeAcceptedRepo) UpdateAttendance(_ context.Context, id int64, attended bool) error {
	a, ok := f.rows[id]
	if !ok {
		return sql.ErrNoRows
	}
	a.IsAttended = attended
	return nil
}

func (f *fakeAcceptedRepo) Delete(_ context.Context, id int64) error {
	delete(f.rows, id)
	return nil
}

type fakeAppointmentRepo struct {
	rows map[int64]*model.Appointment
}

func (f *fakeAppointmentRepo) Create(_ context.Context, a *model.Appointment) error { return nil }

func (f *fakeAppointmentRepo) Get(_ context.Context, id int64) (*model.Appointment, error) {
	a, ok := f.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAppointmentRepo) List(context.Context) ([]*model.Appointment, error) { return nil, nil }
func (f *fakeAppointmentRepo) ListByPatient(context.Context, int64) ([]*model.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) Update(_ context.Context, a *model.Appointment) error {
	if _, ok := f.rows[a.ID]; !ok {
		return sql.ErrNoRows
	}
	copied := *a
	f.rows[a.ID] = &copied
	return nil
}

func (f *fakeAppointmentRepo) Delete(context.Context, int64) error { return nil }
func (f *fakeAppointmentRepo) FindConflictsGlobal(context.Context, time.Time, time.Time, *int64) ([]*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) FindConflictsForPatient(context.Context, int64, time.Time, time.Time, *int64) ([]*model.Appointment, error) {
	return nil, nil
}

type fakePatientRepo struct {
	patients map[int64]*model.Patient
}

func (f *fakePatientRepo) Get(_ context.Context, id int64) (*model.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

type fakeServiceRepo struct {
	services map[int64]*model.MedicalService
}

func (f *fakeServiceRepo) Get(_ context.Context, id int64) (*model.MedicalService, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return s, nil
}

type fakeReminderRepo struct {
	nextID int64
	rows   map[int64]*model.Reminder
}

func (f *fakeReminderRepo) Create(_ context.Context, r *model.Reminder) error {
	r.ID = f.nextID
	f.nextID++
	copied := *r
	f.rows[r.ID] = &copied
	return nil
}

func (f *fakeReminderRepo) Get(_ context.Context, id int64) (*model.Reminder, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return r, nil
}

func (f *fakeReminderRepo) GetByAppointmentID(_ context.Context, appointmentID int64) (*model.Reminder, error) {
	for _, r := range f.rows {
		if r.AppointmentID != nil && *r.AppointmentID == appointmentID {
			return r, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeReminderRepo) List(context.Context) ([]*model.Reminder, error) { return nil, nil }
func (f *fakeReminderRepo) ListByPatient(context.Context, int64) ([]*model.Reminder, error) {
	return nil, nil
}
func (f *fakeReminderRepo) ListUnreadByPatient(context.Context, int64) ([]*model.Reminder, error) {
	return nil, nil
}
func (f *fakeReminderRepo) MarkRead(context.Context, int64) error { return nil }
func (f *fakeReminderRepo) Delete(context.Context, int64) error   { return nil }

type notifierSpy struct {
	subjects []string
}

func (n *notifierSpy) Notify(_ context.Context, _ *model.Patient, subject, _ string) {
	n.subjects = append(n.subjects, subject)
}

type fixture struct {
	svc          *Service
	repo         *fakeAcceptedRepo
	appointments *fakeAppointmentRepo
	reminders    *fakeReminderRepo
	notifier     *notifierSpy
}

func newFixture() *fixture {
	acceptedRepo := newFakeAcceptedRepo()
	appointments := &fakeAppointmentRepo{rows: map[int64]*model.Appointment{
		1: {
			ID:                1,
			PatientID:         1,
			ServiceID:         1,
			PreferredDateTime: time.Date(2026, 9, 14, 10, 0, 0, 0, time.Local),
			Symptom:           "cough",
			Status:            model.AppointmentStatusPending,
		},
		2: {
			ID:                2,
			PatientID:         9,
			ServiceID:         1,
			PreferredDateTime: time.Date(2026, 9, 14, 13, 0, 0, 0, time.Local),
			Symptom:           "sprain",
			Status:            model.AppointmentStatusPending,
		},
	}}
	patients := &fakePatientRepo{patients: map[int64]*model.Patient{
		1: {ID: 1, FirstName: "Ana", Email: "ana@example.com", Role: model.PatientRolePatient},
		9: {ID: 9, FirstName: "Cara", Email: "cara@example.com", Role: model.PatientRoleWalkin},
	}}
	services := &fakeServiceRepo{services: map[int64]*model.MedicalService{
		1: {ID: 1, ServiceName: "General Consultation"},
	}}
	reminderRepo := &fakeReminderRepo{nextID: 1, rows: make(map[int64]*model.Reminder)}
	reminderSvc := reminder.NewService(reminderRepo, appointments, services, patients, logger.NewLogger(nil))
	notifier := &notifierSpy{}

	svc := NewService(acceptedRepo, appointments, patients, reminderSvc, notifier, logger.NewLogger(nil), testMetrics)
	return &fixture{
		svc:          svc,
		repo:         acceptedRepo,
		appointments: appointments,
		reminders:    reminderRepo,
		notifier:     notifier,
	}
}

func TestAcceptAppointment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	acc, err := f.svc.AcceptAppointment(ctx, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), acc.AppointmentID)
	assert.False(t, acc.IsAttended, "regular patients start as not attended")

	// The source appointment row keeps its identity, only its status flips.
	apt, err := f.appointments.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusAccepted, apt.Status)

	// A reminder was created for the acceptance.
	assert.Len(t, f.reminders.rows, 1)

	require.Len(t, f.notifier.subjects, 1)
	assert.Contains(t, f.notifier.subjects[0], "Appointment Accepted")
}

func TestAcceptAppointmentTwiceFails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.AcceptAppointment(ctx, 1, nil)
	require.NoError(t, err)

	_, err = f.svc.AcceptAppointment(ctx, 1, nil)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidState))
	assert.Contains(t, err.Error(), "This appointment has already been accepted")
	assert.Len(t, f.repo.rows, 1, "second accept must not add a row")
}

func TestAcceptAppointmentNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.AcceptAppointment(context.Background(), 404, nil)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	assert.Contains(t, err.Error(), "Appointment with ID 404 not found")
}

func TestAcceptAppointmentWalkInDefaultsAttended(t *testing.T) {
	f := newFixture()

	acc, err := f.svc.AcceptAppointment(context.Background(), 2, nil)
	require.NoError(t, err)
	assert.True(t, acc.IsAttended, "walk-ins are already in the clinic")
}

func TestAcceptAppointmentExplicitAttendanceWins(t *testing.T) {
	f := newFixture()
	notAttended := false

	acc, err := f.svc.AcceptAppointment(context.Background(), 2, &model.AcceptAppointmentRequest{
		IsAttended: &notAttended,
	})
	require.NoError(t, err)
	assert.False(t, acc.IsAttended)
}

func TestSetAttendance(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	acc, err := f.svc.AcceptAppointment(ctx, 1, nil)
	require.NoError(t, err)

	updated, err := f.svc.SetAttendance(ctx, acc.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsAttended)

	// Same state again is rejected.
	_, err = f.svc.SetAttendance(ctx, acc.ID, true)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidState))
	assert.Contains(t, err.Error(), "This appointment has already been marked as attended")

	updated, err = f.svc.SetAttendance(ctx, acc.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsAttended)

	_, err = f.svc.SetAttendance(ctx, acc.ID, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "This appointment is already marked as not attended")
}

func TestSetAttendanceNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.SetAttendance(context.Background(), 404, true)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestListByAttendance(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.AcceptAppointment(ctx, 1, nil)
	require.NoError(t, err)
	_, err = f.svc.AcceptAppointment(ctx, 2, nil)
	require.NoError(t, err)

	attended, err := f.svc.ListByAttendance(ctx, true)
	require.NoError(t, err)
	assert.Len(t, attended, 1)

	notAttended, err := f.svc.ListByAttendance(ctx, false)
	require.NoError(t, err)
	assert.Len(t, notAttended, 1)
}
