package reminder

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KurtMante/clinic-BE/internal/model"
	apperrors "github.com/KurtMante/clinic-BE/pkg/errors"
	"github.com/KurtMante/clinic-BE/pkg/logger"
)

type fakeReminderRepo struct {
	nextID int64
	rows   map[int64]*model.Reminder
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{nextID: 1, rows: make(map[int64]*model.Reminder)}
}

func (f *fakeReminderRepo) Create(_ context.Context, r *model.Reminder) error {
	r.ID = f.nextID
	f.nextID++
	r.CreatedAt = time.Now()
	copied := *r
	f.rows[r.ID] = &copied
	return nil
}

func (f *fakeReminderRepo) Get(_ context.Context, id int64) (*model.Reminder, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *r
	return &copied, nil
}

func (f *fakeReminderRepo) GetByAppointmentID(_ context.Context, appointmentID int64) (*model.Reminder, error) {
	for _, r := range f.rows {
		if r.AppointmentID != nil && *r.AppointmentID == appointmentID {
			copied := *r
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeReminderRepo) List(_ context.Context) ([]*model.Reminder, error) {
	var out []*model.Reminder
	for _, r := range f.rows {
		copied := *r
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeReminderRepo) ListByPatient(_ context.Context, patientID int64) ([]*model.Reminder, error) {
	var out []*model.Reminder
	for _, r := range f.rows {
		if r.PatientID == patientID {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeReminderRepo) ListUnreadByPatient(_ context.Context, patientID int64) ([]*model.Reminder, error) {
	var out []*model.Reminder
	for _, r := range f.rows {
		if r.PatientID == patientID && !r.IsRead {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeReminderRepo) MarkRead(_ context.Context, id int64) error {
	r, ok := f.rows[id]
	if !ok {
		return sql.ErrNoRows
	}
	r.IsRead = true
	return nil
}

func (f *fakeReminderRepo) Delete(_ context.Context, id int64) error {
	delete(f.rows, id)
	return nil
}

type fakeAppointmentGetter struct {
	rows map[int64]*model.Appointment
}

func (f *fakeAppointmentGetter) Get(_ context.Context, id int64) (*model.Appointment, error) {
	apt, ok := f.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return apt, nil
}

func (f *fakeAppointmentGetter) Create(context.Context, *model.Appointment) error { return nil }
func (f *fakeAppointmentGetter) List(context.Context) ([]*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentGetter) ListByPatient(context.Context, int64) ([]*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentGetter) Update(context.Context, *model.Appointment) error { return nil }
func (f *fakeAppointmentGetter) Delete(context.Context, int64) error              { return nil }
func (f *fakeAppointmentGetter) FindConflictsGlobal(context.Context, time.Time, time.Time, *int64) ([]*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentGetter) FindConflictsForPatient(context.Context, int64, time.Time, time.Time, *int64) ([]*model.Appointment, error) {
	return nil, nil
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

func newTestService(repo *fakeReminderRepo) *Service {
	appointments := &fakeAppointmentGetter{rows: map[int64]*model.Appointment{
		1: {
			ID:                1,
			PatientID:         1,
			ServiceID:         1,
			PreferredDateTime: time.Date(2026, 9, 14, 14, 30, 0, 0, time.Local),
			Symptom:           "cough",
			Status:            model.AppointmentStatusAccepted,
		},
	}}
	services := &fakeServiceRepo{services: map[int64]*model.MedicalService{
		1: {ID: 1, ServiceName: "Dental Cleaning"},
	}}
	patients := &fakePatientRepo{patients: map[int64]*model.Patient{
		1: {ID: 1, FirstName: "Ana", Email: "ana@example.com"},
	}}
	return NewService(repo, appointments, services, patients, logger.NewLogger(nil))
}

func TestCreateForAcceptedAppointment(t *testing.T) {
	repo := newFakeReminderRepo()
	svc := newTestService(repo)

	rem, err := svc.CreateForAcceptedAppointment(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rem.PatientID)
	require.NotNil(t, rem.AppointmentID)
	assert.Equal(t, int64(1), *rem.AppointmentID)
	assert.Equal(t,
		"Reminder: You have a Dental Cleaning appointment on September 14, 2026 at 02:30 PM with Dr. Wahing. Please arrive 10 minutes early.",
		rem.Message)
	assert.False(t, rem.IsRead)
}

func TestCreateForAcceptedAppointmentIdempotent(t *testing.T) {
	repo := newFakeReminderRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	first, err := svc.CreateForAcceptedAppointment(ctx, 1)
	require.NoError(t, err)

	second, err := svc.CreateForAcceptedAppointment(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.rows, 1, "repeat call must not add a row")
}

func TestCreateForAcceptedAppointmentNotFound(t *testing.T) {
	svc := newTestService(newFakeReminderRepo())

	_, err := svc.CreateForAcceptedAppointment(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	assert.Contains(t, err.Error(), "Appointment with ID 404 not found")
}

func TestCreateReminderFreeForm(t *testing.T) {
	repo := newFakeReminderRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.CreateReminder(ctx, &model.CreateReminderRequest{PatientID: 1})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	_, err = svc.CreateReminder(ctx, &model.CreateReminderRequest{
		PatientID: 404, Message: "take medication",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	rem, err := svc.CreateReminder(ctx, &model.CreateReminderRequest{
		PatientID: 1, Message: "take medication",
	})
	require.NoError(t, err)
	assert.Nil(t, rem.AppointmentID)
	assert.Equal(t, "take medication", rem.Message)
}

func TestMarkAsRead(t *testing.T) {
	repo := newFakeReminderRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	rem, err := svc.CreateReminder(ctx, &model.CreateReminderRequest{
		PatientID: 1, Message: "take medication",
	})
	require.NoError(t, err)

	unread, err := svc.ListUnreadRemindersByPatient(ctx, 1)
	require.NoError(t, err)
	require.Len(t, unread, 1)

	marked, err := svc.MarkAsRead(ctx, rem.ID)
	require.NoError(t, err)
	assert.True(t, marked.IsRead)

	unread, err = svc.ListUnreadRemindersByPatient(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, unread)

	_, err = svc.MarkAsRead(ctx, 404)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
