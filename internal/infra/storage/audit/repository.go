package audit

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
	"github.com/daiki-lova/Privateskytour-sub000/pkg/dbmetrics"
	"github.com/daiki-lova/Privateskytour-sub000/pkg/psqlbuilder"
)

// Repository is the append-only audit log. Entries are never updated or
// deleted; the admin UI and support workflows only read them.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates an audit log repository.
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append writes one audit entry. Joins the caller's transaction when present
// so the entry commits (or rolls back) together with the mutation it records.
func (r *Repository) Append(ctx context.Context, entry *domain.AuditLogEntry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("audit_logs").
		Columns(
			"category",
			"status",
			"action",
			"message",
			"target_table",
			"target_id",
			"actor",
			"before_value",
			"after_value",
		).
		Values(
			entry.Category,
			entry.Status,
			entry.Action,
			entry.Message,
			entry.TargetTable,
			entry.TargetID,
			entry.Actor,
			entry.Before,
			entry.After,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// List returns audit entries, newest first, with optional target filtering.
func (r *Repository) List(ctx context.Context, filter domain.AuditLogFilter) ([]*domain.AuditLogEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"category",
		"status",
		"action",
		"message",
		"target_table",
		"target_id",
		"actor",
		"before_value",
		"after_value",
		"created_at",
	).
		From("audit_logs").
		OrderBy("created_at DESC", "id DESC")

	if filter.TargetTable != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"target_table": *filter.TargetTable})
	}
	if filter.TargetID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"target_id": *filter.TargetID})
	}
	if filter.Category != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category": *filter.Category})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.AuditLogEntry, 0)
	for rows.Next() {
		var entry domain.AuditLogEntry
		err := rows.Scan(
			&entry.ID,
			&entry.Category,
			&entry.Status,
			&entry.Action,
			&entry.Message,
			&entry.TargetTable,
			&entry.TargetID,
			&entry.Actor,
			&entry.Before,
			&entry.After,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
