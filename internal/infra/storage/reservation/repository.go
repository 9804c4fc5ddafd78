package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
	"github.com/daiki-lova/Privateskytour-sub000/pkg/dbmetrics"
	"github.com/daiki-lova/Privateskytour-sub000/pkg/psqlbuilder"
	"github.com/daiki-lova/Privateskytour-sub000/pkg/types"
)

var reservationColumns = []string{
	"id",
	"booking_number",
	"customer_name",
	"customer_email",
	"customer_token",
	"course_id",
	"flight_date",
	"flight_time",
	"pax",
	"price",
	"status",
	"payment_status",
	"course_title",
	"heliport_name",
	"notes",
	"cancellation_cause",
	"cancellation_reason",
	"cancelled_at",
	"fee_amount",
	"suspended_at",
	"refunded_at",
	"refunded_by",
	"refunded_amount",
	"booked_at",
	"created_at",
	"updated_at",
}

// Repository persists reservations.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a reservation repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new reservation. When the context carries an active
// transaction the insert joins it; the booking path always runs inside a
// serializable transaction together with the capacity check.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"booking_number",
			"customer_name",
			"customer_email",
			"customer_token",
			"course_id",
			"flight_date",
			"flight_time",
			"pax",
			"price",
			"status",
			"payment_status",
			"course_title",
			"heliport_name",
			"notes",
			"booked_at",
		).
		Values(
			res.BookingNumber,
			res.CustomerName,
			res.CustomerEmail,
			res.CustomerToken,
			res.CourseID,
			res.FlightDate,
			res.FlightTime,
			res.Pax,
			res.Price,
			res.Status,
			res.PaymentStatus,
			res.CourseTitle,
			res.HeliportName,
			res.Notes,
			res.BookedAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID fetches one reservation by primary key. Inside a transaction the
// row is locked FOR UPDATE so state transitions always read authoritative
// state before writing.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByBookingNumber fetches one reservation by its external booking number.
func (r *Repository) GetByBookingNumber(ctx context.Context, bookingNumber string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"booking_number": bookingNumber}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingNumber - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByBookingNumber")
}

// ListForSlot returns the reservations bound to one (course, date, time)
// slot. With onlyHolding, cancelled and suspended reservations are excluded
// so the pax sum equals live capacity usage. Inside a transaction the rows
// are locked FOR UPDATE: this is the atomic read half of the capacity
// read-modify-write, concurrent bookings on the same slot serialize here.
func (r *Repository) ListForSlot(ctx context.Context, courseID int64, date time.Time, flightTime types.TimeString, onlyHolding bool) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{
			"course_id":   courseID,
			"flight_date": date,
			"flight_time": flightTime,
		}).
		OrderBy("id ASC")

	if onlyHolding {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": holdingStatusStrings()})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForSlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForSlot - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// AggregateHeldPax sums held passengers per (course, time) for one date.
// Feeds the availability listing without any cached counter.
func (r *Repository) AggregateHeldPax(ctx context.Context, date time.Time) ([]domain.PaxAggregate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("course_id", "flight_time", "COALESCE(SUM(pax), 0)").
		From("reservations").
		Where(squirrel.Eq{
			"flight_date": date,
			"status":      holdingStatusStrings(),
		}).
		GroupBy("course_id", "flight_time").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AggregateHeldPax - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: AggregateHeldPax - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	aggregates := make([]domain.PaxAggregate, 0)
	for rows.Next() {
		var agg domain.PaxAggregate
		if err := rows.Scan(&agg.CourseID, &agg.Time, &agg.Pax); err != nil {
			return nil, fmt.Errorf("%w: AggregateHeldPax - scan row: %v", ErrScanRow, err)
		}
		aggregates = append(aggregates, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: AggregateHeldPax - rows error: %v", ErrScanRow, err)
	}

	return aggregates, nil
}

// Confirm flips a reservation to confirmed/paid.
func (r *Repository) Confirm(ctx context.Context, id int64) error {
	return r.exec(ctx, "Confirm", psqlbuilder.Update("reservations").
		Set("status", domain.StatusConfirmed).
		Set("payment_status", domain.PaymentPaid).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

// Cancel records a terminal cancellation with its cause, reason and fee.
// The payment status is left untouched unless paymentStatus is non-nil
// (the webhook path uses it to record a failed payment).
func (r *Repository) Cancel(ctx context.Context, id int64, cause domain.CancellationCause, reason string, fee *decimal.Decimal, paymentStatus *domain.PaymentStatus) error {
	updateBuilder := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCancelled).
		Set("cancellation_cause", cause).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if fee != nil {
		updateBuilder = updateBuilder.Set("fee_amount", *fee)
	}
	if paymentStatus != nil {
		updateBuilder = updateBuilder.Set("payment_status", *paymentStatus)
	}

	return r.exec(ctx, "Cancel", updateBuilder)
}

// Suspend records an operator stoppage. The slot capacity is freed because
// suspended reservations no longer hold capacity.
func (r *Repository) Suspend(ctx context.Context, id int64, cause domain.CancellationCause, reason string) error {
	return r.exec(ctx, "Suspend", psqlbuilder.Update("reservations").
		Set("status", domain.StatusSuspended).
		Set("cancellation_cause", cause).
		Set("cancellation_reason", reason).
		Set("suspended_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

// Complete marks a flown reservation as completed.
func (r *Repository) Complete(ctx context.Context, id int64) error {
	return r.exec(ctx, "Complete", psqlbuilder.Update("reservations").
		Set("status", domain.StatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

// RecordRefund advances payment_status to refunded once the external refund
// actually succeeded. Never touches the lifecycle status.
func (r *Repository) RecordRefund(ctx context.Context, id int64, amount decimal.Decimal, refundedBy string) error {
	return r.exec(ctx, "RecordRefund", psqlbuilder.Update("reservations").
		Set("payment_status", domain.PaymentRefunded).
		Set("refunded_amount", amount).
		Set("refunded_by", refundedBy).
		Set("refunded_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

// ListRefundCandidates returns reservations whose money was collected but
// never returned. Order is stable (cancelled first, then id) for pagination.
func (r *Repository) ListRefundCandidates(ctx context.Context, limit, offset int) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{
			"status":         []string{string(domain.StatusCancelled), string(domain.StatusSuspended)},
			"payment_status": domain.PaymentPaid,
		}).
		OrderBy("COALESCE(cancelled_at, suspended_at) ASC", "id ASC")

	if limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(limit)).Offset(uint64(offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRefundCandidates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRefundCandidates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// ListConfirmedBefore returns confirmed reservations whose flight date is
// strictly before the given date. Feeds the thank-you sweep.
func (r *Repository) ListConfirmedBefore(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Lt{"flight_date": date}).
		OrderBy("flight_date ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedBefore - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedBefore - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// ListConfirmedOnDate returns confirmed reservations flying exactly on the
// given date. Feeds the reminder jobs.
func (r *Repository) ListConfirmedOnDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{
			"status":      domain.StatusConfirmed,
			"flight_date": date,
		}).
		OrderBy("flight_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedOnDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedOnDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

func (r *Repository) exec(ctx context.Context, op string, builder squirrel.UpdateBuilder) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func (r *Repository) scanOne(row *sql.Row, op string) (*domain.Reservation, error) {
	res, err := scanReservation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan reservation: %v", ErrScanRow, op, err)
	}
	return res, nil
}

func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}
	return reservations, nil
}

func scanReservation(scan func(dest ...interface{}) error) (*domain.Reservation, error) {
	var res domain.Reservation
	var cause sql.NullString
	var refundedBy sql.NullString
	var fee, refunded decimal.NullDecimal
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&res.ID,
		&res.BookingNumber,
		&res.CustomerName,
		&res.CustomerEmail,
		&res.CustomerToken,
		&res.CourseID,
		&res.FlightDate,
		&res.FlightTime,
		&res.Pax,
		&res.Price,
		&res.Status,
		&res.PaymentStatus,
		&res.CourseTitle,
		&res.HeliportName,
		&res.Notes,
		&cause,
		&res.CancellationReason,
		&res.CancelledAt,
		&fee,
		&res.SuspendedAt,
		&res.RefundedAt,
		&refundedBy,
		&refunded,
		&res.BookedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if cause.Valid {
		c := domain.CancellationCause(cause.String)
		res.CancellationCause = &c
	}
	if refundedBy.Valid {
		res.RefundedBy = &refundedBy.String
	}
	if fee.Valid {
		res.FeeAmount = &fee.Decimal
	}
	if refunded.Valid {
		res.RefundedAmount = &refunded.Decimal
	}
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

func holdingStatusStrings() []string {
	statuses := make([]string, len(domain.HoldingStatuses))
	for i, s := range domain.HoldingStatuses {
		statuses[i] = string(s)
	}
	return statuses
}
