// Package repokit holds the seams SQL repositories are written against
package repokit

import (
	"context"

	"rapih/internal/platform/store"
)

// Queryer is the read and write surface a bound repo gets
type Queryer = store.RowQuerier

// TxRunner runs fn in a transaction
type TxRunner = store.TxRunner

type (
	// Rows is a result set
	Rows = store.Rows
	// Row is a single row result
	Row = store.Row
	// CommandTag reports what a write did
	CommandTag = store.CommandTag
)

// WithTx runs fn inside a transaction on tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}
