package course

import "errors"

var (
	// ErrCourseNotFound is returned when no course matches.
	ErrCourseNotFound = errors.New("course.repository: course not found")

	// ErrBuildQuery is returned when building the SQL query fails.
	ErrBuildQuery = errors.New("course.repository: failed to build query")

	// ErrExecQuery is returned when executing the SQL query fails.
	ErrExecQuery = errors.New("course.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("course.repository: failed to scan row")
)
