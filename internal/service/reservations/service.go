package reservations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
	reservationRepo "github.com/daiki-lova/Privateskytour-sub000/internal/infra/storage/reservation"
	paymentClient "github.com/daiki-lova/Privateskytour-sub000/internal/integrations/payment"
	"github.com/daiki-lova/Privateskytour-sub000/internal/service/policy"
	"github.com/daiki-lova/Privateskytour-sub000/internal/service/reservations/models"
)

// Service owns the reservation lifecycle beyond creation: lookup,
// cancellation, suspension, refund bookkeeping and audit reads.
type Service struct {
	reservationRepo ReservationRepository
	auditRepo       AuditRepository
	paymentClient   PaymentClient
	policyEngine    PolicyEngine
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService creates the reservations service.
func NewService(
	reservationRepo ReservationRepository,
	auditRepo AuditRepository,
	paymentClient PaymentClient,
	policyEngine PolicyEngine,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		auditRepo:       auditRepo,
		paymentClient:   paymentClient,
		policyEngine:    policyEngine,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID fetches one reservation.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainReservation(reservation), nil
}

// GetByBookingNumber fetches one reservation by its external booking number.
// When a customer token is supplied it must match; a mismatch reads as not
// found so the endpoint does not leak whether the booking number exists.
func (s *Service) GetByBookingNumber(ctx context.Context, bookingNumber, customerToken string) (*models.ReservationResponse, error) {
	reservation, err := s.reservationRepo.GetByBookingNumber(ctx, bookingNumber)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByBookingNumber: repository error for number=%s: %v", bookingNumber, err)
		return nil, fmt.Errorf("%w: GetByBookingNumber - repository error: %v", ErrInternal, err)
	}

	if customerToken != "" && reservation.CustomerToken != customerToken {
		s.logger.Warn("GetByBookingNumber: token mismatch for number=%s", bookingNumber)
		return nil, ErrReservationNotFound
	}

	return models.FromDomainReservation(reservation), nil
}

// Cancel records a terminal cancellation. The policy engine computes the
// fee/refund split when money was collected; the refund itself is not
// issued here, only the obligation is recorded (see RecordRefund).
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelReservationRequest) (*models.CancellationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%d by actor=%s cause=%s", id, req.Actor, req.Cause)

	if !domain.ValidCancellationCause(req.Cause) {
		s.logger.Warn("Cancel: invalid cause=%s for reservation id=%d", req.Cause, id)
		return nil, fmt.Errorf("%w: unknown cancellation cause %q", ErrInvalidInput, req.Cause)
	}
	cause := domain.CancellationCause(req.Cause)
	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason too long", ErrInvalidInput)
	}

	now := s.timeProvider.Now()

	var response *models.CancellationResponse

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		reservation, err := s.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if !reservation.CanTransitionTo(domain.StatusCancelled) {
			s.logger.Warn("Cancel: invalid transition from status=%s for reservation id=%d",
				reservation.Status, id)
			return ErrInvalidTransition
		}

		before := snapshot(reservation)

		flightAt, err := reservation.FlightAt()
		if err != nil {
			return fmt.Errorf("%w: Cancel - invalid flight time: %v", ErrInternal, err)
		}

		assessment := s.policyEngine.Evaluate(policy.DaysBefore(flightAt, now), cause)
		feeAmount := assessment.FeeAmount(reservation.Price)
		refundAmount := assessment.RefundAmount(reservation.Price)

		// A fee only matters when money was collected; unpaid holds are
		// released without charge.
		var feePtr *decimal.Decimal
		if reservation.PaymentStatus == domain.PaymentPaid {
			feePtr = &feeAmount
		}

		if err := s.reservationRepo.Cancel(txCtx, id, cause, req.Reason, feePtr, nil); err != nil {
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		reservation.Status = domain.StatusCancelled
		reservation.CancellationCause = &cause
		if feePtr != nil {
			reservation.FeeAmount = feePtr
		}

		entry := &domain.AuditLogEntry{
			Category:    "reservation",
			Status:      domain.AuditSuccess,
			Action:      "reservation.cancel",
			Message: fmt.Sprintf("cancelled (cause=%s, fee=%d%%, refund=%d%%, fee_amount=%s)",
				cause, assessment.FeePercent, assessment.RefundPercent, feeAmount.StringFixed(2)),
			TargetTable: "reservations",
			TargetID:    id,
			Actor:       req.Actor,
			Before:      before,
			After:       snapshot(reservation),
		}
		if err := s.auditRepo.Append(txCtx, entry); err != nil {
			return fmt.Errorf("%w: Cancel - audit append: %v", ErrInternal, err)
		}

		response = &models.CancellationResponse{
			Reservation:   *models.FromDomainReservation(reservation),
			FeePercent:    assessment.FeePercent,
			RefundPercent: assessment.RefundPercent,
			FeeAmount:     feeAmount.StringFixed(2),
			RefundAmount:  refundAmount.StringFixed(2),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: reservation id=%d cancelled (cause=%s)", id, cause)
	return response, nil
}

// Suspend records an operator stoppage (weather, mechanical). Always implies
// a 100% refund obligation regardless of timing; the supplied reason is
// mandatory and lands in the audit log verbatim.
func (s *Service) Suspend(ctx context.Context, id int64, req *models.SuspendReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Suspend: suspending reservation id=%d by actor=%s", id, req.Actor)

	if req.Reason == "" {
		return nil, ErrReasonRequired
	}
	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason too long", ErrInvalidInput)
	}

	var response *models.ReservationResponse

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		reservation, err := s.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Suspend - repository error: %v", ErrInternal, err)
		}

		if !reservation.CanTransitionTo(domain.StatusSuspended) {
			s.logger.Warn("Suspend: invalid transition from status=%s for reservation id=%d",
				reservation.Status, id)
			return ErrInvalidTransition
		}

		before := snapshot(reservation)

		if err := s.reservationRepo.Suspend(txCtx, id, domain.CauseOperator, req.Reason); err != nil {
			return fmt.Errorf("%w: Suspend - repository error: %v", ErrInternal, err)
		}

		reservation.Status = domain.StatusSuspended

		entry := &domain.AuditLogEntry{
			Category:    "reservation",
			Status:      domain.AuditSuccess,
			Action:      "reservation.suspend",
			Message:     fmt.Sprintf("suspended by operator: %s", req.Reason),
			TargetTable: "reservations",
			TargetID:    id,
			Actor:       req.Actor,
			Before:      before,
			After:       snapshot(reservation),
		}
		if err := s.auditRepo.Append(txCtx, entry); err != nil {
			return fmt.Errorf("%w: Suspend - audit append: %v", ErrInternal, err)
		}

		response = models.FromDomainReservation(reservation)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Suspend: reservation id=%d suspended", id)
	return response, nil
}

// RecordRefund issues the refund command against the external gateway and,
// only after the gateway confirms, advances paymentStatus to refunded.
// A gateway failure records nothing, keeping the reservation in the refund
// candidate queue.
func (s *Service) RecordRefund(ctx context.Context, id int64, req *models.RecordRefundRequest) (*models.ReservationResponse, error) {
	s.logger.Info("RecordRefund: processing refund for reservation id=%d by actor=%s", id, req.Actor)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("%w: RecordRefund - repository error: %v", ErrInternal, err)
	}

	if reservation.PaymentStatus == domain.PaymentRefunded {
		// Already refunded: duplicate submission is a no-op.
		s.logger.Warn("RecordRefund: reservation id=%d already refunded", id)
		return models.FromDomainReservation(reservation), nil
	}
	if !reservation.IsRefundCandidate() {
		s.logger.Warn("RecordRefund: reservation id=%d is not a refund candidate (status=%s, payment=%s)",
			id, reservation.Status, reservation.PaymentStatus)
		return nil, ErrNotRefundable
	}

	amount, err := refundAmountFor(reservation, req.Amount)
	if err != nil {
		return nil, err
	}

	cmd := paymentClient.RefundCommand{
		ReservationID: id,
		Amount:        amount,
		Reason:        refundReason(reservation),
	}
	if err := s.paymentClient.IssueRefund(ctx, cmd); err != nil {
		s.logger.Error("RecordRefund: gateway refused refund for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	var response *models.ReservationResponse

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := s.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: RecordRefund - repository error: %v", ErrInternal, err)
		}
		if current.PaymentStatus == domain.PaymentRefunded {
			response = models.FromDomainReservation(current)
			return nil
		}

		before := snapshot(current)

		if err := s.reservationRepo.RecordRefund(txCtx, id, amount, req.Actor); err != nil {
			return fmt.Errorf("%w: RecordRefund - repository error: %v", ErrInternal, err)
		}

		current.PaymentStatus = domain.PaymentRefunded
		current.RefundedAmount = &amount
		current.RefundedBy = &req.Actor

		entry := &domain.AuditLogEntry{
			Category:    "reservation",
			Status:      domain.AuditSuccess,
			Action:      "reservation.refund",
			Message:     fmt.Sprintf("refund recorded, amount=%s", amount.StringFixed(2)),
			TargetTable: "reservations",
			TargetID:    id,
			Actor:       req.Actor,
			Before:      before,
			After:       snapshot(current),
		}
		if err := s.auditRepo.Append(txCtx, entry); err != nil {
			return fmt.Errorf("%w: RecordRefund - audit append: %v", ErrInternal, err)
		}

		response = models.FromDomainReservation(current)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("RecordRefund: refund recorded for reservation id=%d amount=%s", id, amount.StringFixed(2))
	return response, nil
}

// ListRefundCandidates returns the queue of reservations awaiting a refund,
// in stable order for pagination.
func (s *Service) ListRefundCandidates(ctx context.Context, limit, offset int) (*models.ReservationListResponse, error) {
	reservations, err := s.reservationRepo.ListRefundCandidates(ctx, limit, offset)
	if err != nil {
		s.logger.Error("ListRefundCandidates: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListRefundCandidates - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainReservationList(reservations), nil
}

// ListAuditLogs reads the append-only audit trail.
func (s *Service) ListAuditLogs(ctx context.Context, filter domain.AuditLogFilter) (*models.AuditLogListResponse, error) {
	entries, err := s.auditRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListAuditLogs: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAuditLogs - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainAuditLogList(entries), nil
}

// refundAmountFor resolves the amount to refund: an explicit override when
// supplied, otherwise price minus the recorded fee. Never exceeds the price
// snapshot.
func refundAmountFor(reservation *domain.Reservation, override *string) (decimal.Decimal, error) {
	if override != nil {
		amount, err := decimal.NewFromString(*override)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: invalid refund amount %q", ErrInvalidInput, *override)
		}
		if amount.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, fmt.Errorf("%w: refund amount must be positive", ErrInvalidInput)
		}
		if amount.GreaterThan(reservation.Price) {
			return decimal.Zero, ErrRefundExceedsPrice
		}
		return amount, nil
	}

	amount := reservation.Price
	if reservation.FeeAmount != nil {
		amount = reservation.Price.Sub(*reservation.FeeAmount)
	}
	return amount, nil
}

func refundReason(reservation *domain.Reservation) string {
	if reservation.CancellationCause != nil {
		return fmt.Sprintf("cancellation (%s)", *reservation.CancellationCause)
	}
	return "cancellation"
}

// snapshot serializes the audit-relevant fields of a reservation.
func snapshot(r *domain.Reservation) *string {
	raw, err := json.Marshal(map[string]string{
		"status":        string(r.Status),
		"paymentStatus": string(r.PaymentStatus),
	})
	if err != nil {
		return nil
	}
	s := string(raw)
	return &s
}
