package repository

import (
	"context"
	"database/sql"

	"github.com/behrang/sqlbatch"
)

var (
	// TxOptionLedgerWrite is used for every state transition.
	TxOptionLedgerWrite = sql.TxOptions{Isolation: sql.LevelSerializable}

	// TxOptionLedgerRead is used for views.
	TxOptionLedgerRead = sql.TxOptions{Isolation: sql.LevelSerializable, ReadOnly: true}

	// TxOptionListing is used for keeper holder listings.
	TxOptionListing = sql.TxOptions{Isolation: sql.LevelReadCommitted, ReadOnly: true}
)

// BatchHandler is a database handler that executes a batch of SQL commands.
type BatchHandler interface {
	Batch(opts *sql.TxOptions, commands []sqlbatch.Command) ([]interface{}, error)
}

// TxHandler runs fn inside one database transaction, retrying it on
// serialization failures.
type TxHandler interface {
	Transact(ctx context.Context, opts *sql.TxOptions, fn func(tx *sql.Tx) error) error
}
