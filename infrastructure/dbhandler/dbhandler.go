package dbhandler

import (
	"context"
	"errors"
	"log/slog"

	"database/sql"

	"github.com/behrang/sqlbatch"
	"github.com/lib/pq"
)

// retryableCodes are the postgres errors after which a transaction can be
// run again unchanged: serialization_failure and deadlock_detected.
var retryableCodes = map[pq.ErrorCode]bool{
	"40001": true,
	"40P01": true,
}

// DBHandler contains a connection to database.
type DBHandler struct {
	DB *sql.DB
}

// Batch creates a transaction and executes the batch of commands in that transaction.
// If a retryable error is received, the batch is retried.
func (handler DBHandler) Batch(opts *sql.TxOptions, commands []sqlbatch.Command) ([]interface{}, error) {

	for {
		results, err := handler.tryBatch(opts, commands)
		if IsRetryable(err) {
			slog.Warn("🟡 retryable postgres error, retrying", "error", err)
			continue
		}
		return results, err
	}
}

func (handler DBHandler) tryBatch(opts *sql.TxOptions, commands []sqlbatch.Command) (results []interface{}, err error) {

	results = make([]interface{}, len(commands))

	tx, err := handler.DB.BeginTx(context.Background(), opts)
	if err != nil {
		return
	}
	defer tx.Rollback()

	results, err = sqlbatch.Batch(tx, commands)

	if err == nil {
		err = tx.Commit()
	}

	return
}

// Transact runs fn in a transaction and commits when fn succeeds. When
// postgres aborts the transaction with a retryable error the whole of fn is
// run again, so fn must not have effects outside the transaction.
func (handler DBHandler) Transact(ctx context.Context, opts *sql.TxOptions, fn func(tx *sql.Tx) error) error {

	for {
		err := handler.tryTransact(ctx, opts, fn)
		if IsRetryable(err) && ctx.Err() == nil {
			slog.Warn("🟡 retryable postgres error, retrying", "error", err)
			continue
		}
		return err
	}
}

func (handler DBHandler) tryTransact(ctx context.Context, opts *sql.TxOptions, fn func(tx *sql.Tx) error) error {
	tx, err := handler.DB.BeginTx(ctx, opts)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return retryableCodes[pqErr.Code]
	}
	return false
}
