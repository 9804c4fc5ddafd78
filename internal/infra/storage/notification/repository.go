package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
	"github.com/daiki-lova/Privateskytour-sub000/pkg/dbmetrics"
	"github.com/daiki-lova/Privateskytour-sub000/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

// Repository persists notification send attempts. A sent record per
// (reservation, job type) is the durable idempotency marker the dispatcher
// checks before delivering — job re-runs after a crash or partial failure
// must not re-send.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a notification record repository.
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Record appends one send attempt outcome.
func (r *Repository) Record(ctx context.Context, rec *domain.NotificationRecord) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("notification_records").
		Columns(
			"reservation_id",
			"job_type",
			"status",
			"detail",
		).
		Values(
			rec.ReservationID,
			rec.JobType,
			rec.Status,
			rec.Detail,
		).
		Suffix("RETURNING id, sent_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Record - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&rec.ID, &rec.SentAt)
	if err != nil {
		// The partial unique index on sent records makes concurrent runs
		// collide here; the loser learns the marker already exists.
		if isUniqueViolation(err) {
			return ErrAlreadySent
		}
		return fmt.Errorf("%w: Record - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}

// HasSent reports whether a successful send is already recorded for the
// reservation and job type. Failed attempts do not count, so they are
// retried on the next run.
func (r *Repository) HasSent(ctx context.Context, reservationID int64, jobType string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("notification_records").
		Where(squirrel.Eq{
			"reservation_id": reservationID,
			"job_type":       jobType,
			"status":         domain.NotificationSent,
		}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasSent - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: HasSent - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}
