package service

import (
	"context"
	"sync"
	"time"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

type outboxKey struct{}

// outbox collects side effects that must only run once the surrounding
// transaction has committed.
type outbox struct {
	mu  sync.Mutex
	fns []func()
}

func (o *outbox) add(fn func()) {
	o.mu.Lock()
	o.fns = append(o.fns, fn)
	o.mu.Unlock()
}

func (o *outbox) flush() {
	o.mu.Lock()
	fns := o.fns
	o.fns = nil
	o.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// inTx runs fn through tx and then fires whatever fn scheduled with
// afterCommit. Nested calls share the outermost outbox.
func inTx(ctx context.Context, tx ports.Transactor, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(outboxKey{}).(*outbox); ok {
		return tx.WithinTx(ctx, fn)
	}
	box := &outbox{}
	if err := tx.WithinTx(context.WithValue(ctx, outboxKey{}, box), fn); err != nil {
		return err
	}
	box.flush()
	return nil
}

// afterCommit defers fn until the transaction bound to ctx commits. Outside
// a transaction fn runs immediately.
func afterCommit(ctx context.Context, fn func()) {
	if box, ok := ctx.Value(outboxKey{}).(*outbox); ok {
		box.add(fn)
		return
	}
	fn()
}

// record hands an activity entry to the recorder once ctx's transaction commits.
func record(ctx context.Context, rec ports.ActivityRecorder, userID uint, kind domain.ActivityType, desc string, meta map[string]any) {
	if rec == nil {
		return
	}
	a := domain.Activity{
		UserID:       userID,
		ActivityType: kind,
		Description:  desc,
		Metadata:     meta,
		CreatedAt:    time.Now().UTC(),
	}
	afterCommit(ctx, func() { rec.Record(a) })
}
