package operatinghours

import "errors"

var (
	// ErrConfigNotFound is returned when no operating config row exists yet.
	ErrConfigNotFound = errors.New("operatinghours.repository: operating config not found")

	// ErrBuildQuery is returned when building the SQL query fails.
	ErrBuildQuery = errors.New("operatinghours.repository: failed to build query")

	// ErrExecQuery is returned when executing the SQL query fails.
	ErrExecQuery = errors.New("operatinghours.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("operatinghours.repository: failed to scan row")
)
