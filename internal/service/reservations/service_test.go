package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
	reservationRepo "github.com/daiki-lova/Privateskytour-sub000/internal/infra/storage/reservation"
	"github.com/daiki-lova/Privateskytour-sub000/internal/integrations/payment"
	"github.com/daiki-lova/Privateskytour-sub000/internal/service/policy"
	"github.com/daiki-lova/Privateskytour-sub000/internal/service/reservations/models"
)

type fakeReservationRepo struct {
	byID map[int64]*domain.Reservation

	cancelCalls []cancelCall
	suspendIDs  []int64
	refunds     []refundCall
}

type cancelCall struct {
	id    int64
	cause domain.CancellationCause
	fee   *decimal.Decimal
}

type refundCall struct {
	id     int64
	amount decimal.Decimal
	by     string
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeReservationRepo) GetByBookingNumber(_ context.Context, number string) (*domain.Reservation, error) {
	for _, r := range f.byID {
		if r.BookingNumber == number {
			copied := *r
			return &copied, nil
		}
	}
	return nil, reservationRepo.ErrReservationNotFound
}

func (f *fakeReservationRepo) Cancel(_ context.Context, id int64, cause domain.CancellationCause, _ string, fee *decimal.Decimal, _ *domain.PaymentStatus) error {
	f.cancelCalls = append(f.cancelCalls, cancelCall{id: id, cause: cause, fee: fee})
	f.byID[id].Status = domain.StatusCancelled
	return nil
}

func (f *fakeReservationRepo) Suspend(_ context.Context, id int64, _ domain.CancellationCause, _ string) error {
	f.suspendIDs = append(f.suspendIDs, id)
	f.byID[id].Status = domain.StatusSuspended
	return nil
}

func (f *fakeReservationRepo) RecordRefund(_ context.Context, id int64, amount decimal.Decimal, refundedBy string) error {
	f.refunds = append(f.refunds, refundCall{id: id, amount: amount, by: refundedBy})
	f.byID[id].PaymentStatus = domain.PaymentRefunded
	return nil
}

func (f *fakeReservationRepo) ListRefundCandidates(_ context.Context, _, _ int) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, r := range f.byID {
		if r.IsRefundCandidate() {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeAuditRepo struct {
	entries []*domain.AuditLogEntry
}

func (f *fakeAuditRepo) Append(_ context.Context, entry *domain.AuditLogEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAuditRepo) List(_ context.Context, _ domain.AuditLogFilter) ([]*domain.AuditLogEntry, error) {
	return f.entries, nil
}

type fakePaymentClient struct {
	err      error
	commands []payment.RefundCommand
}

func (f *fakePaymentClient) IssueRefund(_ context.Context, cmd payment.RefundCommand) error {
	if f.err != nil {
		return f.err
	}
	f.commands = append(f.commands, cmd)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func paidReservation(id int64, flightDate time.Time) *domain.Reservation {
	return &domain.Reservation{
		ID:            id,
		BookingNumber: "HT-TEST0001",
		CustomerName:  "Hana Sato",
		CustomerEmail: "hana@example.com",
		CustomerToken: "token-abc",
		CourseID:      10,
		FlightDate:    flightDate,
		FlightTime:    "23:59",
		Pax:           2,
		Price:         decimal.RequireFromString("30000.00"),
		Status:        domain.StatusConfirmed,
		PaymentStatus: domain.PaymentPaid,
	}
}

func newTestService(reservations ...*domain.Reservation) (*Service, *fakeReservationRepo, *fakeAuditRepo, *fakePaymentClient) {
	repo := &fakeReservationRepo{byID: make(map[int64]*domain.Reservation)}
	for _, r := range reservations {
		repo.byID[r.ID] = r
	}
	audit := &fakeAuditRepo{}
	gateway := &fakePaymentClient{}
	svc := NewService(repo, audit, gateway, policy.NewEngine(nil), fakeTxManager{}, nopLogger{})
	return svc, repo, audit, gateway
}

func TestCancel_LateCancellationKeepsFee(t *testing.T) {
	// Three days before the flight the table refunds half.
	svc, repo, audit, _ := newTestService(paidReservation(1, time.Now().AddDate(0, 0, 3)))

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
		Actor: "op-7", Cause: "customer", Reason: "change of plans",
	})

	require.NoError(t, err)
	assert.Equal(t, 50, resp.RefundPercent)
	assert.Equal(t, "15000.00", resp.FeeAmount)
	assert.Equal(t, "15000.00", resp.RefundAmount)
	assert.Equal(t, string(domain.StatusCancelled), resp.Reservation.Status)

	require.Len(t, repo.cancelCalls, 1)
	require.NotNil(t, repo.cancelCalls[0].fee)
	assert.Equal(t, "15000.00", repo.cancelCalls[0].fee.StringFixed(2))

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "reservation.cancel", audit.entries[0].Action)
	assert.Equal(t, "op-7", audit.entries[0].Actor)
	require.NotNil(t, audit.entries[0].Before)
	require.NotNil(t, audit.entries[0].After)
}

func TestCancel_EarlyCancellationRefundsInFull(t *testing.T) {
	svc, _, _, _ := newTestService(paidReservation(1, time.Now().AddDate(0, 0, 10)))

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
		Actor: "op-7", Cause: "customer",
	})

	require.NoError(t, err)
	assert.Equal(t, 100, resp.RefundPercent)
	assert.Equal(t, "0.00", resp.FeeAmount)
}

func TestCancel_WeatherRefundsInFullEvenSameDay(t *testing.T) {
	svc, _, _, _ := newTestService(paidReservation(1, time.Now()))

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
		Actor: "op-7", Cause: "weather", Reason: "typhoon warning",
	})

	require.NoError(t, err)
	assert.Equal(t, 100, resp.RefundPercent)
	assert.Equal(t, "30000.00", resp.RefundAmount)
}

func TestCancel_UnpaidReservationChargesNoFee(t *testing.T) {
	r := paidReservation(1, time.Now().AddDate(0, 0, 1))
	r.Status = domain.StatusPending
	r.PaymentStatus = domain.PaymentUnpaid
	svc, repo, _, _ := newTestService(r)

	_, err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
		Actor: "op-7", Cause: "customer",
	})

	require.NoError(t, err)
	require.Len(t, repo.cancelCalls, 1)
	assert.Nil(t, repo.cancelCalls[0].fee, "no money collected, nothing to retain")
}

func TestCancel_TerminalStateRejected(t *testing.T) {
	r := paidReservation(1, time.Now().AddDate(0, 0, 3))
	r.Status = domain.StatusCompleted
	svc, repo, _, _ := newTestService(r)

	_, err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
		Actor: "op-7", Cause: "customer",
	})

	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, repo.cancelCalls)
}

func TestCancel_UnknownCause(t *testing.T) {
	svc, _, _, _ := newTestService(paidReservation(1, time.Now().AddDate(0, 0, 3)))

	_, err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
		Actor: "op-7", Cause: "boredom",
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSuspend_RequiresReason(t *testing.T) {
	svc, repo, _, _ := newTestService(paidReservation(1, time.Now().AddDate(0, 0, 3)))

	_, err := svc.Suspend(context.Background(), 1, &models.SuspendReservationRequest{Actor: "op-7"})

	require.ErrorIs(t, err, ErrReasonRequired)
	assert.Empty(t, repo.suspendIDs)
}

func TestSuspend_RecordsReasonInAudit(t *testing.T) {
	svc, repo, audit, _ := newTestService(paidReservation(1, time.Now().AddDate(0, 0, 3)))

	resp, err := svc.Suspend(context.Background(), 1, &models.SuspendReservationRequest{
		Actor: "op-7", Reason: "rotor inspection",
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusSuspended), resp.Status)
	assert.Equal(t, []int64{1}, repo.suspendIDs)
	require.Len(t, audit.entries, 1)
	assert.Contains(t, audit.entries[0].Message, "rotor inspection")
}

func TestRecordRefund_DefaultsToPriceMinusFee(t *testing.T) {
	r := paidReservation(1, time.Now().AddDate(0, 0, 3))
	r.Status = domain.StatusCancelled
	fee := decimal.RequireFromString("15000.00")
	r.FeeAmount = &fee
	svc, repo, audit, gateway := newTestService(r)

	resp, err := svc.RecordRefund(context.Background(), 1, &models.RecordRefundRequest{Actor: "op-7"})

	require.NoError(t, err)
	assert.Equal(t, string(domain.PaymentRefunded), resp.PaymentStatus)

	require.Len(t, gateway.commands, 1)
	assert.Equal(t, "15000.00", gateway.commands[0].Amount.StringFixed(2))

	require.Len(t, repo.refunds, 1)
	assert.Equal(t, "op-7", repo.refunds[0].by)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, "reservation.refund", audit.entries[0].Action)
}

func TestRecordRefund_SuspendedRefundsFullPrice(t *testing.T) {
	r := paidReservation(1, time.Now().AddDate(0, 0, 3))
	r.Status = domain.StatusSuspended
	svc, repo, _, _ := newTestService(r)

	_, err := svc.RecordRefund(context.Background(), 1, &models.RecordRefundRequest{Actor: "op-7"})

	require.NoError(t, err)
	require.Len(t, repo.refunds, 1)
	assert.Equal(t, "30000.00", repo.refunds[0].amount.StringFixed(2))
}

func TestRecordRefund_GatewayFailureRecordsNothing(t *testing.T) {
	r := paidReservation(1, time.Now().AddDate(0, 0, 3))
	r.Status = domain.StatusCancelled
	svc, repo, audit, gateway := newTestService(r)
	gateway.err = payment.ErrUnavailable

	_, err := svc.RecordRefund(context.Background(), 1, &models.RecordRefundRequest{Actor: "op-7"})

	require.ErrorIs(t, err, ErrGatewayUnavailable)
	assert.Empty(t, repo.refunds, "the reservation must stay in the refund queue")
	assert.Empty(t, audit.entries)
}

func TestRecordRefund_NotACandidate(t *testing.T) {
	svc, _, _, _ := newTestService(paidReservation(1, time.Now().AddDate(0, 0, 3)))

	_, err := svc.RecordRefund(context.Background(), 1, &models.RecordRefundRequest{Actor: "op-7"})
	require.ErrorIs(t, err, ErrNotRefundable)
}

func TestRecordRefund_OverrideAbovePriceRejected(t *testing.T) {
	r := paidReservation(1, time.Now().AddDate(0, 0, 3))
	r.Status = domain.StatusCancelled
	svc, repo, _, _ := newTestService(r)

	amount := "30000.01"
	_, err := svc.RecordRefund(context.Background(), 1, &models.RecordRefundRequest{
		Actor: "op-7", Amount: &amount,
	})

	require.ErrorIs(t, err, ErrRefundExceedsPrice)
	assert.Empty(t, repo.refunds)
}

func TestRecordRefund_DuplicateIsNoOp(t *testing.T) {
	r := paidReservation(1, time.Now().AddDate(0, 0, 3))
	r.Status = domain.StatusCancelled
	r.PaymentStatus = domain.PaymentRefunded
	svc, repo, _, gateway := newTestService(r)

	resp, err := svc.RecordRefund(context.Background(), 1, &models.RecordRefundRequest{Actor: "op-7"})

	require.NoError(t, err)
	assert.Equal(t, string(domain.PaymentRefunded), resp.PaymentStatus)
	assert.Empty(t, gateway.commands, "no second refund command may reach the gateway")
	assert.Empty(t, repo.refunds)
}

func TestGetByBookingNumber_TokenMismatchReadsAsNotFound(t *testing.T) {
	svc, _, _, _ := newTestService(paidReservation(1, time.Now().AddDate(0, 0, 3)))

	_, err := svc.GetByBookingNumber(context.Background(), "HT-TEST0001", "wrong-token")
	require.ErrorIs(t, err, ErrReservationNotFound)

	resp, err := svc.GetByBookingNumber(context.Background(), "HT-TEST0001", "token-abc")
	require.NoError(t, err)
	assert.Equal(t, "HT-TEST0001", resp.BookingNumber)
}
