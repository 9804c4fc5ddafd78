// Package create_reservation books one flight slot. The capacity check and
// the insert run inside a single serializable transaction so two concurrent
// requests can never oversell a slot.
package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
	courseRepo "github.com/daiki-lova/Privateskytour-sub000/internal/infra/storage/course"
)

// UseCase creates reservations.
type UseCase struct {
	reservationRepo ReservationRepository
	courseRepo      CourseRepository
	operatingRepo   OperatingConfigRepository
	auditRepo       AuditRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the use case.
func NewUseCase(
	reservationRepo ReservationRepository,
	courseRepo CourseRepository,
	operatingRepo OperatingConfigRepository,
	auditRepo AuditRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		courseRepo:      courseRepo,
		operatingRepo:   operatingRepo,
		auditRepo:       auditRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute books a slot. Runs the availability check and the insert in one
// serializable transaction.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: course=%d, date=%s, time=%s, pax=%d",
		req.CourseID, req.FlightDate.Format(domain.DateFormat), req.FlightTime, req.Pax)

	// 1. Validate input.
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Reject past dates.
	if err := validateDate(req.FlightDate, now); err != nil {
		uc.logger.Warn("CreateReservation: date %s rejected", req.FlightDate.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Operating configuration gates everything else.
	operating, err := uc.operatingRepo.Get(ctx)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to load operating config: %v", err)
		return nil, fmt.Errorf("%w: failed to load operating config: %v", ErrInternal, err)
	}
	if operating.HolidayMode {
		uc.logger.Warn("CreateReservation: rejected, holiday mode active")
		return nil, ErrHolidayMode
	}
	if !operating.AllowsTime(req.FlightTime) {
		uc.logger.Warn("CreateReservation: time %s not on the allow-list", req.FlightTime)
		return nil, ErrTimeNotOperated
	}

	// 4. The course must exist and be active.
	course, err := uc.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, courseRepo.ErrCourseNotFound) {
			uc.logger.Warn("CreateReservation: course id=%d not found", req.CourseID)
			return nil, ErrCourseNotFound
		}
		uc.logger.Error("CreateReservation: failed to get course id=%d: %v", req.CourseID, err)
		return nil, fmt.Errorf("%w: failed to get course: %v", ErrInternal, err)
	}
	if !course.Active {
		uc.logger.Warn("CreateReservation: course id=%d is inactive", req.CourseID)
		return nil, ErrCourseNotFound
	}
	// Not a capacity race: this request can never fit the course.
	if req.Pax > course.MaxPax {
		uc.logger.Warn("CreateReservation: pax=%d exceeds course capacity=%d", req.Pax, course.MaxPax)
		return nil, fmt.Errorf("%w: requested %d passengers, course seats %d", ErrInvalidPax, req.Pax, course.MaxPax)
	}

	// 5. Price snapshot: per-passenger price times pax, fixed at booking time.
	price := course.Price.Mul(decimal.NewFromInt(int64(req.Pax)))

	reservation := &domain.Reservation{
		BookingNumber: newBookingNumber(),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerToken: uuid.NewString(),
		CourseID:      course.ID,
		FlightDate:    req.FlightDate,
		FlightTime:    req.FlightTime,
		Pax:           req.Pax,
		Price:         price,
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentUnpaid,
		CourseTitle:   course.Title,
		HeliportName:  course.HeliportName,
		Notes:         req.Notes,
		BookedAt:      now,
	}

	var created *domain.Reservation

	// 6. Capacity check and insert, atomically. ListForSlot takes row locks
	// inside the transaction, so concurrent bookings of the same slot
	// serialize here.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		held, err := uc.reservationRepo.ListForSlot(txCtx, course.ID, req.FlightDate, req.FlightTime, true)
		if err != nil {
			return fmt.Errorf("%w: failed to list slot reservations: %v", ErrInternal, err)
		}

		if heldPax(held)+req.Pax > course.MaxPax {
			return fmt.Errorf("%w: %d of %d seats already held", ErrCapacityExceeded, heldPax(held), course.MaxPax)
		}

		created, err = uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		entry := &domain.AuditLogEntry{
			Category:    "reservation",
			Status:      domain.AuditSuccess,
			Action:      "reservation.create",
			Message: fmt.Sprintf("booked %s %s x%d (number=%s)",
				req.FlightDate.Format(domain.DateFormat), req.FlightTime, req.Pax, created.BookingNumber),
			TargetTable: "reservations",
			TargetID:    created.ID,
			Actor:       "customer",
		}
		if err := uc.auditRepo.Append(txCtx, entry); err != nil {
			return fmt.Errorf("%w: failed to append audit entry: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCapacityExceeded) {
			uc.logger.Warn("CreateReservation: capacity exceeded for course=%d date=%s time=%s",
				course.ID, req.FlightDate.Format(domain.DateFormat), req.FlightTime)
		} else {
			uc.logger.Error("CreateReservation: transaction failed: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: created reservation id=%d number=%s", created.ID, created.BookingNumber)
	return toResponse(created), nil
}

// newBookingNumber issues a customer-facing booking number of the form
// HT-XXXXXXXX.
func newBookingNumber() string {
	id := uuid.New()
	return "HT-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}

func toResponse(r *domain.Reservation) *Response {
	return &Response{
		ID:            r.ID,
		BookingNumber: r.BookingNumber,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerToken: r.CustomerToken,
		CourseID:      r.CourseID,
		FlightDate:    r.FlightDate,
		FlightTime:    r.FlightTime,
		Pax:           r.Pax,
		Price:         r.Price.StringFixed(2),
		Status:        string(r.Status),
		PaymentStatus: string(r.PaymentStatus),
		CourseTitle:   r.CourseTitle,
		HeliportName:  r.HeliportName,
		Notes:         r.Notes,
		BookedAt:      r.BookedAt,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
