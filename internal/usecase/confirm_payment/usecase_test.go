package confirm_payment

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
	reservationRepo "github.com/daiki-lova/Privateskytour-sub000/internal/infra/storage/reservation"
)

type fakeReservationRepo struct {
	byNumber map[string]*domain.Reservation

	confirmedIDs []int64
	cancelled    []cancelCall
}

type cancelCall struct {
	id            int64
	cause         domain.CancellationCause
	paymentStatus *domain.PaymentStatus
}

func (f *fakeReservationRepo) GetByBookingNumber(_ context.Context, number string) (*domain.Reservation, error) {
	r, ok := f.byNumber[number]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeReservationRepo) Confirm(_ context.Context, id int64) error {
	f.confirmedIDs = append(f.confirmedIDs, id)
	return nil
}

func (f *fakeReservationRepo) Cancel(_ context.Context, id int64, cause domain.CancellationCause, _ string, _ *decimal.Decimal, paymentStatus *domain.PaymentStatus) error {
	f.cancelled = append(f.cancelled, cancelCall{id: id, cause: cause, paymentStatus: paymentStatus})
	return nil
}

type fakeAuditRepo struct {
	entries []*domain.AuditLogEntry
}

func (f *fakeAuditRepo) Append(_ context.Context, entry *domain.AuditLogEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

// fakeTxManager discards writes made inside a failed transaction, the way a
// real rollback would.
type fakeTxManager struct {
	repo  *fakeReservationRepo
	audit *fakeAuditRepo
}

func (m fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	confirmed := len(m.repo.confirmedIDs)
	cancelled := len(m.repo.cancelled)
	entries := len(m.audit.entries)

	if err := fn(ctx); err != nil {
		m.repo.confirmedIDs = m.repo.confirmedIDs[:confirmed]
		m.repo.cancelled = m.repo.cancelled[:cancelled]
		m.audit.entries = m.audit.entries[:entries]
		return err
	}
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(reservations ...*domain.Reservation) (*UseCase, *fakeReservationRepo, *fakeAuditRepo) {
	repo := &fakeReservationRepo{byNumber: make(map[string]*domain.Reservation)}
	for _, r := range reservations {
		repo.byNumber[r.BookingNumber] = r
	}
	audit := &fakeAuditRepo{}
	uc := NewUseCase(repo, audit, fakeTxManager{repo: repo, audit: audit}, nopLogger{})
	return uc, repo, audit
}

func TestExecute_SuccessConfirmsPending(t *testing.T) {
	uc, repo, audit := newTestUseCase(&domain.Reservation{
		ID: 1, BookingNumber: "HT-AAAA1111",
		Status: domain.StatusPending, PaymentStatus: domain.PaymentUnpaid,
	})

	resp, err := uc.Execute(context.Background(), &Request{
		BookingNumber: "HT-AAAA1111", Outcome: OutcomeSucceeded, TransactionID: "tx-1",
	})

	require.NoError(t, err)
	assert.True(t, resp.Applied)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, string(domain.PaymentPaid), resp.PaymentStatus)
	assert.Equal(t, []int64{1}, repo.confirmedIDs)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, domain.AuditSuccess, audit.entries[0].Status)
}

func TestExecute_DuplicateSuccessIsNoOp(t *testing.T) {
	uc, repo, audit := newTestUseCase(&domain.Reservation{
		ID: 1, BookingNumber: "HT-AAAA1111",
		Status: domain.StatusConfirmed, PaymentStatus: domain.PaymentPaid,
	})

	resp, err := uc.Execute(context.Background(), &Request{
		BookingNumber: "HT-AAAA1111", Outcome: OutcomeSucceeded, TransactionID: "tx-1-retry",
	})

	require.NoError(t, err)
	assert.False(t, resp.Applied)
	assert.Empty(t, repo.confirmedIDs, "nothing must be written on a duplicate")
	assert.Empty(t, audit.entries)
}

func TestExecute_SuccessAfterCancellationRejected(t *testing.T) {
	uc, repo, audit := newTestUseCase(&domain.Reservation{
		ID: 1, BookingNumber: "HT-AAAA1111",
		Status: domain.StatusCancelled, PaymentStatus: domain.PaymentUnpaid,
	})

	_, err := uc.Execute(context.Background(), &Request{
		BookingNumber: "HT-AAAA1111", Outcome: OutcomeSucceeded, TransactionID: "tx-late",
	})

	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, repo.confirmedIDs)
	// The warning is written outside the rolled-back transaction, so the
	// anomaly lands in the audit trail even though the webhook fails.
	require.Len(t, audit.entries, 1)
	assert.Equal(t, domain.AuditWarning, audit.entries[0].Status)
	assert.Equal(t, "payment.webhook", audit.entries[0].Action)
}

func TestExecute_FailureCancelsPendingAndReleasesHold(t *testing.T) {
	uc, repo, _ := newTestUseCase(&domain.Reservation{
		ID: 7, BookingNumber: "HT-BBBB2222",
		Status: domain.StatusPending, PaymentStatus: domain.PaymentUnpaid,
	})

	resp, err := uc.Execute(context.Background(), &Request{
		BookingNumber: "HT-BBBB2222", Outcome: OutcomeFailed, TransactionID: "tx-2",
	})

	require.NoError(t, err)
	assert.True(t, resp.Applied)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, string(domain.PaymentFailed), resp.PaymentStatus)

	require.Len(t, repo.cancelled, 1)
	assert.Equal(t, int64(7), repo.cancelled[0].id)
	require.NotNil(t, repo.cancelled[0].paymentStatus)
	assert.Equal(t, domain.PaymentFailed, *repo.cancelled[0].paymentStatus)
}

func TestExecute_FailureAfterConfirmIsNoOp(t *testing.T) {
	uc, repo, _ := newTestUseCase(&domain.Reservation{
		ID: 7, BookingNumber: "HT-BBBB2222",
		Status: domain.StatusConfirmed, PaymentStatus: domain.PaymentPaid,
	})

	resp, err := uc.Execute(context.Background(), &Request{
		BookingNumber: "HT-BBBB2222", Outcome: OutcomeFailed, TransactionID: "tx-dup",
	})

	require.NoError(t, err)
	assert.False(t, resp.Applied)
	assert.Empty(t, repo.cancelled)
}

func TestExecute_UnknownNumber(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.Execute(context.Background(), &Request{
		BookingNumber: "HT-MISSING0", Outcome: OutcomeSucceeded,
	})
	require.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_ValidatesPayload(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.Execute(context.Background(), &Request{Outcome: OutcomeSucceeded})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BookingNumber: "HT-AAAA1111", Outcome: "unknown"})
	require.ErrorIs(t, err, ErrInvalidInput)
}
