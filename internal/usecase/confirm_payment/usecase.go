// Package confirm_payment applies payment gateway webhooks to the
// reservation lifecycle. Deliveries are at-least-once, so every outcome is
// applied idempotently: a repeat of an already-applied webhook is a no-op.
package confirm_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
	reservationRepo "github.com/daiki-lova/Privateskytour-sub000/internal/infra/storage/reservation"
	"github.com/daiki-lova/Privateskytour-sub000/pkg/ptr"
)

// UseCase applies payment webhooks.
type UseCase struct {
	reservationRepo ReservationRepository
	auditRepo       AuditRepository
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase creates the use case.
func NewUseCase(
	reservationRepo ReservationRepository,
	auditRepo AuditRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		auditRepo:       auditRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute applies one webhook delivery.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: webhook number=%s outcome=%s tx=%s",
		req.BookingNumber, req.Outcome, req.TransactionID)

	if req.BookingNumber == "" {
		return nil, fmt.Errorf("%w: bookingNumber is required", ErrInvalidInput)
	}
	if req.Outcome != OutcomeSucceeded && req.Outcome != OutcomeFailed {
		return nil, fmt.Errorf("%w: unknown outcome %q", ErrInvalidInput, req.Outcome)
	}

	var response *Response
	var loaded *domain.Reservation

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		reservation, err := uc.reservationRepo.GetByBookingNumber(txCtx, req.BookingNumber)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}
		loaded = reservation

		switch req.Outcome {
		case OutcomeSucceeded:
			response, err = uc.applySuccess(txCtx, reservation, req)
		case OutcomeFailed:
			response, err = uc.applyFailure(txCtx, reservation, req)
		}
		return err
	})
	if err != nil {
		// The conflict rolls the transaction back, so the warning is
		// appended outside of it. It must survive the rejected webhook.
		if errors.Is(err, ErrInvalidTransition) && loaded != nil {
			uc.recordRejectedSuccess(ctx, loaded, req)
		}
		return nil, err
	}

	uc.logger.Info("ConfirmPayment: number=%s status=%s payment=%s applied=%t",
		response.BookingNumber, response.Status, response.PaymentStatus, response.Applied)
	return response, nil
}

func (uc *UseCase) applySuccess(ctx context.Context, reservation *domain.Reservation, req *Request) (*Response, error) {
	// Duplicate delivery of a success already applied.
	if reservation.Status == domain.StatusConfirmed {
		uc.logger.Warn("ConfirmPayment: duplicate success for number=%s, ignoring", req.BookingNumber)
		return ackResponse(reservation, false), nil
	}

	if !reservation.CanTransitionTo(domain.StatusConfirmed) {
		uc.logger.Warn("ConfirmPayment: success for number=%s in status=%s rejected",
			req.BookingNumber, reservation.Status)
		return nil, ErrInvalidTransition
	}

	if err := uc.reservationRepo.Confirm(ctx, reservation.ID); err != nil {
		return nil, fmt.Errorf("%w: failed to confirm reservation: %v", ErrInternal, err)
	}

	reservation.Status = domain.StatusConfirmed
	reservation.PaymentStatus = domain.PaymentPaid

	if err := uc.appendAudit(ctx, reservation, domain.AuditSuccess,
		fmt.Sprintf("payment confirmed (tx=%s)", req.TransactionID)); err != nil {
		return nil, err
	}
	return ackResponse(reservation, true), nil
}

func (uc *UseCase) applyFailure(ctx context.Context, reservation *domain.Reservation, req *Request) (*Response, error) {
	// A failure after the reservation already left pending carries no new
	// information; acknowledge without touching anything.
	if reservation.Status != domain.StatusPending {
		uc.logger.Warn("ConfirmPayment: failure for number=%s in status=%s, ignoring",
			req.BookingNumber, reservation.Status)
		return ackResponse(reservation, false), nil
	}

	// The failed hold is released by the cancellation itself; the seats
	// become available again the moment the status flips.
	err := uc.reservationRepo.Cancel(ctx, reservation.ID, domain.CauseOther,
		"payment failed", nil, ptr.Ptr(domain.PaymentFailed))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to cancel reservation: %v", ErrInternal, err)
	}

	reservation.Status = domain.StatusCancelled
	reservation.PaymentStatus = domain.PaymentFailed

	if err := uc.appendAudit(ctx, reservation, domain.AuditWarning,
		fmt.Sprintf("payment failed, hold released (tx=%s)", req.TransactionID)); err != nil {
		return nil, err
	}
	return ackResponse(reservation, true), nil
}

// recordRejectedSuccess leaves the audit warning for money arriving on a
// terminal reservation. Best effort: the gateway still gets its conflict
// even when the audit write fails.
func (uc *UseCase) recordRejectedSuccess(ctx context.Context, reservation *domain.Reservation, req *Request) {
	err := uc.appendAudit(ctx, reservation, domain.AuditWarning,
		fmt.Sprintf("payment success for %s reservation ignored (tx=%s)", reservation.Status, req.TransactionID))
	if err != nil {
		uc.logger.Error("ConfirmPayment: failed to audit rejected success for number=%s: %v",
			req.BookingNumber, err)
	}
}

func (uc *UseCase) appendAudit(ctx context.Context, reservation *domain.Reservation, status domain.AuditStatus, message string) error {
	entry := &domain.AuditLogEntry{
		Category:    "payment",
		Status:      status,
		Action:      "payment.webhook",
		Message:     message,
		TargetTable: "reservations",
		TargetID:    reservation.ID,
		Actor:       "payment-gateway",
	}
	if err := uc.auditRepo.Append(ctx, entry); err != nil {
		return fmt.Errorf("%w: failed to append audit entry: %v", ErrInternal, err)
	}
	return nil
}

func ackResponse(r *domain.Reservation, applied bool) *Response {
	return &Response{
		ReservationID: r.ID,
		BookingNumber: r.BookingNumber,
		Status:        string(r.Status),
		PaymentStatus: string(r.PaymentStatus),
		Applied:       applied,
	}
}
