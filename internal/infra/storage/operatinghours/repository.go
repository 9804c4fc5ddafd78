package operatinghours

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
	"github.com/daiki-lova/Privateskytour-sub000/pkg/dbmetrics"
	"github.com/daiki-lova/Privateskytour-sub000/pkg/psqlbuilder"
	"github.com/daiki-lova/Privateskytour-sub000/pkg/types"
)

// Repository stores the single process-wide operating configuration row:
// holiday mode plus the departure-time allow-list. The availability and
// booking paths load it on every request, so an admin update takes effect
// immediately without invalidation bookkeeping.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates an operating config repository.
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get loads the current operating configuration.
func (r *Repository) Get(ctx context.Context) (*domain.OperatingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"holiday_mode",
		"flight_times",
		"updated_by",
		"updated_at",
	).
		From("operating_config").
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.OperatingConfig
	var rawTimes pq.StringArray

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.HolidayMode,
		&rawTimes,
		&cfg.UpdatedBy,
		&cfg.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan config: %v", ErrScanRow, err)
	}

	cfg.FlightTimes = make([]types.TimeString, len(rawTimes))
	for i, t := range rawTimes {
		cfg.FlightTimes[i] = types.TimeString(t)
	}

	return &cfg, nil
}

// Update replaces holiday mode and the allow-list.
func (r *Repository) Update(ctx context.Context, cfg *domain.OperatingConfig) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rawTimes := make(pq.StringArray, len(cfg.FlightTimes))
	for i, t := range cfg.FlightTimes {
		rawTimes[i] = string(t)
	}

	query, args, err := psqlbuilder.Update("operating_config").
		Set("holiday_mode", cfg.HolidayMode).
		Set("flight_times", rawTimes).
		Set("updated_by", cfg.UpdatedBy).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": cfg.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}
