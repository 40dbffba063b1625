package domain

import "context"

// Transactor runs fn inside a single storage transaction. Repositories
// called with the context passed to fn participate in that transaction.
// The transaction commits when fn returns nil and rolls back otherwise,
// so no operation within one request partially applies.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
