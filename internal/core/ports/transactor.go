package ports

import "context"

// Transactor runs fn inside a single storage transaction. Repositories called
// with the ctx handed to fn take part in that transaction; if fn returns an
// error everything is rolled back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
