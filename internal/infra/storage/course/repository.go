package course

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
	"github.com/daiki-lova/Privateskytour-sub000/pkg/dbmetrics"
	"github.com/daiki-lova/Privateskytour-sub000/pkg/psqlbuilder"
)

var courseColumns = []string{
	"c.id",
	"c.title",
	"c.description",
	"c.price",
	"c.duration_minutes",
	"c.max_pax",
	"c.heliport_id",
	"h.name",
	"c.active",
	"c.created_at",
	"c.updated_at",
}

// Repository reads courses. Courses are written by the CMS, never here.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a course repository.
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID fetches one course with its heliport name.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Course, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(courseColumns...).
		From("courses c").
		Join("heliports h ON h.id = c.heliport_id").
		Where(squirrel.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var course domain.Course
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.Price,
		&course.DurationMinutes,
		&course.MaxPax,
		&course.HeliportID,
		&course.HeliportName,
		&course.Active,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan course: %v", ErrScanRow, err)
	}

	return &course, nil
}

// ListActive returns every active course, ordered for a stable slot listing.
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Course, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(courseColumns...).
		From("courses c").
		Join("heliports h ON h.id = c.heliport_id").
		Where(squirrel.Eq{"c.active": true}).
		OrderBy("c.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	courses := make([]*domain.Course, 0)
	for rows.Next() {
		var course domain.Course
		err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.Description,
			&course.Price,
			&course.DurationMinutes,
			&course.MaxPax,
			&course.HeliportID,
			&course.HeliportName,
			&course.Active,
			&course.CreatedAt,
			&course.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		courses = append(courses, &course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return courses, nil
}
