package repository

import "context"

// TxManager runs a function inside a single database transaction.
// Repositories called with the context passed to fn participate in
// that transaction; any returned error rolls the whole unit back.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
