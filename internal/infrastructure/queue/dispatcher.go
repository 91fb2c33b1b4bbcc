package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/devmanager/dev-manager/internal/api/metrics"
	"github.com/devmanager/dev-manager/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes audit records to a fixed set of workers using consistent
// hashing on the acting user ID, guaranteeing per-user record ordering while
// keeping recording off the request path.
type Dispatcher struct {
	workers []chan ports.ActivityInput
	service ports.ActivityService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ActivityService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ActivityInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ActivityInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record hands an audit record to the worker responsible for the acting user.
// It never blocks: when the shard buffer is full the record is dropped,
// counted, and logged. The caller's request is never delayed or failed by
// audit logging.
func (d *Dispatcher) Record(input ports.ActivityInput) {
	idx := d.shardIndex(input.UserID)
	select {
	case d.workers[idx] <- input:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ActivitiesDroppedTotal.Inc()
		d.log.Warn().
			Str("user_id", input.UserID).
			Str("action", input.Action).
			Msg("activity queue full, record dropped")
	}
}

// shardIndex maps a user ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ActivityInput) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case input, ok := <-ch:
			if !ok {
				return
			}
			metrics.ActivityQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
			if err := d.service.Log(ctx, input); err != nil {
				metrics.ActivitiesErrorsTotal.Inc()
				d.log.Error().Err(err).
					Str("user_id", input.UserID).
					Int("worker_id", id).
					Msg("activity write failed")
			} else {
				metrics.ActivitiesRecordedTotal.WithLabelValues(input.Action, input.EntityType).Inc()
			}
		}
	}
}
