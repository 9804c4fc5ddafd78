package reservation

import (
	"context"
	"database/sql"

	"github.com/daiki-lova/Privateskytour-sub000/pkg/dbmetrics"
)

// Executor interfaces are shared with dbmetrics so repositories work both
// with and without the metrics wrapper.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TxBeginner starts transactions. Satisfied by *sql.DB and *dbmetrics.DB.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}
