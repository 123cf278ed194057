package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/alumnet/alumni-network/internal/api/metrics"
	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

const (
	defaultWorkers = 4
	defaultBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// Dispatcher writes activity entries to the activity log in the background.
// Entries are routed to a fixed set of workers by hashing the user id, so one
// user's entries are written in the order they were recorded.
type Dispatcher struct {
	workers []chan domain.Activity
	repo    ports.ActivityRepository
	log     zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
	dropped atomic.Int64
}

var _ ports.ActivityRecorder = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers, each
// with a queue of buffer entries. Non-positive values select the defaults.
func NewDispatcher(numWorkers, buffer int, repo ports.ActivityRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	d := &Dispatcher{
		workers: make([]chan domain.Activity, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Activity, buffer)
	}
	return d
}

// Start launches the workers. They exit when ctx is cancelled or after Stop
// has drained their queues.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Record queues a for writing. It never blocks: when the worker queue is full,
// or the dispatcher is stopped, the entry is dropped and counted.
func (d *Dispatcher) Record(a domain.Activity) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		d.drop(a, "dispatcher stopped")
		return
	}

	idx := d.shardIndex(a.UserID)
	select {
	case d.workers[idx] <- a:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.drop(a, "queue full")
	}
}

// Stop refuses new entries, lets the workers drain what is queued and waits
// for them to exit.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// Dropped returns how many entries were discarded so far.
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

func (d *Dispatcher) drop(a domain.Activity, reason string) {
	d.dropped.Add(1)
	metrics.ActivityRecordsTotal.WithLabelValues("dropped").Inc()
	d.log.Warn().
		Uint("user_id", a.UserID).
		Str("activity_type", string(a.ActivityType)).
		Str("reason", reason).
		Msg("activity dropped")
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID uint) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatUint(uint64(userID), 10)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Activity) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case a, ok := <-ch:
			if !ok {
				return
			}
			metrics.ActivityQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.write(ctx, id, a)
		}
	}
}

func (d *Dispatcher) write(ctx context.Context, workerID int, a domain.Activity) {
	// Entries still queued at shutdown are written even though ctx is done.
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	start := time.Now()
	err := d.repo.Insert(wctx, &a)
	metrics.ActivityWriteDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ActivityRecordsTotal.WithLabelValues("failed").Inc()
		d.log.Error().Err(err).
			Uint("user_id", a.UserID).
			Str("activity_type", string(a.ActivityType)).
			Int("worker_id", workerID).
			Msg("activity write failed")
		return
	}
	metrics.ActivityRecordsTotal.WithLabelValues("written").Inc()
}
