package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/estateview/realty-api/internal/api/metrics"
	"github.com/estateview/realty-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
	jobTimeout     = 30 * time.Second
)

// Dispatcher runs account cleanup jobs on a fixed set of workers. Jobs are
// sharded by owner id so two deletions of the same owner never race.
type Dispatcher struct {
	workers []chan string
	service ports.CleanupService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.CleanupService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue schedules cleanup for ownerID. It never blocks: when the worker's
// buffer is full the job is dropped and logged.
func (d *Dispatcher) Enqueue(ownerID string) {
	idx := d.shardIndex(ownerID)
	select {
	case d.workers[idx] <- ownerID:
		metrics.CleanupQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.CleanupJobsTotal.WithLabelValues("dropped").Inc()
		d.log.Error().Str("owner_id", ownerID).Int("worker_id", idx).Msg("cleanup queue full, job dropped")
	}
}

// shardIndex maps an owner id deterministically to a worker index.
func (d *Dispatcher) shardIndex(ownerID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(ownerID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for {
		select {
		case <-ctx.Done():
			return
		case ownerID := <-ch:
			metrics.CleanupQueueDepth.WithLabelValues(label).Dec()
			d.process(ctx, id, ownerID)
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, workerID int, ownerID string) {
	jobCtx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	start := time.Now()
	err := d.service.Purge(jobCtx, ownerID)
	metrics.CleanupDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.CleanupJobsTotal.WithLabelValues("failed").Inc()
		d.log.Error().Err(err).
			Str("owner_id", ownerID).
			Int("worker_id", workerID).
			Msg("account cleanup failed")
		return
	}
	metrics.CleanupJobsTotal.WithLabelValues("done").Inc()
}
