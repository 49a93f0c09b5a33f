package ports

import "context"

// TxManager runs fn inside one storage transaction. Repositories called with
// the ctx passed to fn join that transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
