package dispatch_notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
	notificationRepo "github.com/daiki-lova/Privateskytour-sub000/internal/infra/storage/notification"
	"github.com/daiki-lova/Privateskytour-sub000/internal/integrations/mailer"
)

type fakeReservationRepo struct {
	flown    []*domain.Reservation
	upcoming []*domain.Reservation

	completedIDs []int64
	completeErr  error
}

func (f *fakeReservationRepo) ListConfirmedBefore(_ context.Context, _ time.Time) ([]*domain.Reservation, error) {
	var confirmed []*domain.Reservation
	for _, r := range f.flown {
		if r.Status == domain.StatusConfirmed {
			confirmed = append(confirmed, r)
		}
	}
	return confirmed, nil
}

func (f *fakeReservationRepo) ListConfirmedOnDate(_ context.Context, _ time.Time) ([]*domain.Reservation, error) {
	return f.upcoming, nil
}

func (f *fakeReservationRepo) Complete(_ context.Context, id int64) error {
	if f.completeErr != nil {
		return f.completeErr
	}
	f.completedIDs = append(f.completedIDs, id)
	for _, r := range f.flown {
		if r.ID == id {
			r.Status = domain.StatusCompleted
		}
	}
	return nil
}

type fakeNotificationRepo struct {
	sent    map[int64]map[string]bool
	records []*domain.NotificationRecord
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{sent: make(map[int64]map[string]bool)}
}

func (f *fakeNotificationRepo) markSent(reservationID int64, jobType string) {
	if f.sent[reservationID] == nil {
		f.sent[reservationID] = make(map[string]bool)
	}
	f.sent[reservationID][jobType] = true
}

func (f *fakeNotificationRepo) Record(_ context.Context, rec *domain.NotificationRecord) error {
	// One sent marker per (reservation, job), like the partial unique index.
	if rec.Status == domain.NotificationSent && f.sent[rec.ReservationID][rec.JobType] {
		return notificationRepo.ErrAlreadySent
	}
	f.records = append(f.records, rec)
	if rec.Status == domain.NotificationSent {
		f.markSent(rec.ReservationID, rec.JobType)
	}
	return nil
}

func (f *fakeNotificationRepo) HasSent(_ context.Context, reservationID int64, jobType string) (bool, error) {
	return f.sent[reservationID][jobType], nil
}

type fakeAuditRepo struct {
	entries []*domain.AuditLogEntry
}

func (f *fakeAuditRepo) Append(_ context.Context, entry *domain.AuditLogEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

type fakeMailer struct {
	failFor  map[string]error
	messages []mailer.Message
}

func (f *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	if err, ok := f.failFor[msg.To]; ok {
		return err
	}
	f.messages = append(f.messages, msg)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func confirmedReservation(id int64, email string) *domain.Reservation {
	return &domain.Reservation{
		ID:            id,
		BookingNumber: "HT-00000000",
		CustomerName:  "Test Customer",
		CustomerEmail: email,
		CourseTitle:   "Bay Cruise",
		HeliportName:  "Central Heliport",
		FlightDate:    time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		FlightTime:    "10:00",
		Status:        domain.StatusConfirmed,
	}
}

func newTestUseCase(repo *fakeReservationRepo, mail *fakeMailer) (*UseCase, *fakeNotificationRepo, *fakeAuditRepo) {
	notifications := newFakeNotificationRepo()
	audit := &fakeAuditRepo{}
	uc := NewUseCase(repo, notifications, audit, mail, fakeTxManager{}, nopLogger{})
	return uc, notifications, audit
}

func TestExecute_ThankYou_SendsAndCompletes(t *testing.T) {
	repo := &fakeReservationRepo{flown: []*domain.Reservation{
		confirmedReservation(1, "a@example.com"),
		confirmedReservation(2, "b@example.com"),
	}}
	mail := &fakeMailer{}
	uc, notifications, audit := newTestUseCase(repo, mail)

	summary, err := uc.Execute(context.Background(), domain.JobThankYou)

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Sent)
	assert.Equal(t, 2, summary.StatusUpdated)
	assert.Equal(t, 0, summary.Failed)

	assert.ElementsMatch(t, []int64{1, 2}, repo.completedIDs)
	assert.Len(t, mail.messages, 2)
	assert.Equal(t, mailer.TemplateBookingThanks, mail.messages[0].Template)
	require.Len(t, notifications.records, 2)
	assert.Len(t, audit.entries, 2)
}

func TestExecute_ThankYou_RerunIsIdempotent(t *testing.T) {
	repo := &fakeReservationRepo{flown: []*domain.Reservation{
		confirmedReservation(1, "a@example.com"),
		confirmedReservation(2, "b@example.com"),
	}}
	mail := &fakeMailer{}
	uc, _, _ := newTestUseCase(repo, mail)

	first, err := uc.Execute(context.Background(), domain.JobThankYou)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Sent)

	// Completed reservations no longer match the sweep; a second run after
	// a fully successful one must send nothing.
	second, err := uc.Execute(context.Background(), domain.JobThankYou)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Total)
	assert.Equal(t, 0, second.Sent)
	assert.Len(t, mail.messages, 2, "each customer is thanked exactly once")
}

func TestExecute_ThankYou_SendFailureLeavesConfirmed(t *testing.T) {
	repo := &fakeReservationRepo{flown: []*domain.Reservation{
		confirmedReservation(1, "broken@example.com"),
		confirmedReservation(2, "fine@example.com"),
	}}
	mail := &fakeMailer{failFor: map[string]error{
		"broken@example.com": mailer.ErrSendFailed,
	}}
	uc, notifications, _ := newTestUseCase(repo, mail)

	summary, err := uc.Execute(context.Background(), domain.JobThankYou)

	require.NoError(t, err, "one failed send must not abort the batch")
	assert.Equal(t, 1, summary.Sent)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.StatusUpdated)

	// Only the delivered reservation completes; the failed one stays
	// confirmed and is retried on the next run.
	assert.Equal(t, []int64{2}, repo.completedIDs)

	var failedRecords int
	for _, rec := range notifications.records {
		if rec.Status == domain.NotificationFailed {
			failedRecords++
			assert.Equal(t, int64(1), rec.ReservationID)
		}
	}
	assert.Equal(t, 1, failedRecords)
}

func TestExecute_ThankYou_ToleratesExistingSentMarker(t *testing.T) {
	repo := &fakeReservationRepo{flown: []*domain.Reservation{
		confirmedReservation(1, "a@example.com"),
	}}
	mail := &fakeMailer{}
	uc, notifications, _ := newTestUseCase(repo, mail)

	// A concurrent run already recorded the send but lost its status flip.
	notifications.markSent(1, domain.JobThankYou)

	summary, err := uc.Execute(context.Background(), domain.JobThankYou)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.StatusUpdated, "the duplicate marker must not block completion")
	assert.Equal(t, []int64{1}, repo.completedIDs)
}

func TestExecute_Reminder_SkipsAlreadySent(t *testing.T) {
	repo := &fakeReservationRepo{upcoming: []*domain.Reservation{
		confirmedReservation(1, "a@example.com"),
		confirmedReservation(2, "b@example.com"),
	}}
	mail := &fakeMailer{}
	uc, notifications, _ := newTestUseCase(repo, mail)
	notifications.markSent(1, domain.JobReminder3Day)

	summary, err := uc.Execute(context.Background(), domain.JobReminder3Day)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Sent)
	assert.Equal(t, 1, summary.Skipped)
	require.Len(t, mail.messages, 1)
	assert.Equal(t, "b@example.com", mail.messages[0].To)
	assert.Equal(t, mailer.TemplateFlightReminder, mail.messages[0].Template)
}

func TestExecute_Reminder_RerunIsIdempotent(t *testing.T) {
	repo := &fakeReservationRepo{upcoming: []*domain.Reservation{
		confirmedReservation(1, "a@example.com"),
	}}
	mail := &fakeMailer{}
	uc, _, _ := newTestUseCase(repo, mail)

	first, err := uc.Execute(context.Background(), domain.JobReminder1Day)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Sent)

	second, err := uc.Execute(context.Background(), domain.JobReminder1Day)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Sent)
	assert.Equal(t, 1, second.Skipped)
	assert.Len(t, mail.messages, 1, "the customer is mailed exactly once")
}

func TestExecute_Reminder_FailedSendRetriesNextRun(t *testing.T) {
	repo := &fakeReservationRepo{upcoming: []*domain.Reservation{
		confirmedReservation(1, "flaky@example.com"),
	}}
	mail := &fakeMailer{failFor: map[string]error{
		"flaky@example.com": errors.New("smtp timeout"),
	}}
	uc, _, _ := newTestUseCase(repo, mail)

	summary, err := uc.Execute(context.Background(), domain.JobReminder3Day)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)

	// The mailer recovers; a failed record must not suppress the retry.
	mail.failFor = nil
	summary, err = uc.Execute(context.Background(), domain.JobReminder3Day)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Sent)
	assert.Equal(t, 0, summary.Skipped)
}

func TestExecute_UnknownJob(t *testing.T) {
	uc, _, _ := newTestUseCase(&fakeReservationRepo{}, &fakeMailer{})

	_, err := uc.Execute(context.Background(), "reminder_99day")
	require.ErrorIs(t, err, ErrUnknownJob)
}
