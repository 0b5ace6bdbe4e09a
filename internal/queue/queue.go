// Package queue is the fire-and-forget boundary between the request path and
// the worker binary. The request path only guarantees that a task was pushed
// onto the Redis list; execution, retries and failures are the worker's
// problem and never surface to the caller.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	TaskJobView             = "job.view"
	TaskApplicationReceived = "application.received"
)

type Task struct {
	Type          string    `json:"type"`
	JobID         uuid.UUID `json:"job_id,omitempty"`
	ApplicationID uuid.UUID `json:"application_id,omitempty"`
	EnqueuedAt    time.Time `json:"enqueued_at"`
}

// Enqueuer is the request-path view of the queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, t Task) error
}

type Handler func(ctx context.Context, t Task) error

type Redis struct {
	client *redis.Client
	key    string
	logger *log.Logger
}

func NewRedis(client *redis.Client, key string, logger *log.Logger) *Redis {
	if logger == nil {
		logger = log.Default()
	}
	return &Redis{client: client, key: key, logger: logger}
}

func (q *Redis) Enqueue(ctx context.Context, t Task) error {
	if q == nil || q.client == nil {
		return errors.New("queue unavailable")
	}
	if t.EnqueuedAt.IsZero() {
		t.EnqueuedAt = time.Now().UTC()
	}
	b, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.key, b).Err()
}

// Consume runs 'workers' goroutines that pop and handle tasks until ctx is
// cancelled. A handler error is logged and the task dropped; per the delivery
// contract both task kinds tolerate loss and duplication.
func (q *Redis) Consume(ctx context.Context, workers int, h Handler) {
	if q == nil || q.client == nil || h == nil {
		return
	}
	if workers <= 0 {
		workers = 1
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				res, err := q.client.BRPop(ctx, 5*time.Second, q.key).Result()
				if err != nil {
					if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
						continue
					}
					q.logger.Printf("[Queue] pop error: %v", err)
					select {
					case <-ctx.Done():
						return
					case <-time.After(time.Second):
					}
					continue
				}
				if len(res) != 2 {
					continue
				}

				var t Task
				if err := json.Unmarshal([]byte(res[1]), &t); err != nil {
					q.logger.Printf("[Queue] malformed task dropped: %v", err)
					continue
				}

				if err := h(ctx, t); err != nil {
					q.logger.Printf("[Queue] task %s failed: %v", t.Type, err)
				}
			}
		}()
	}
	wg.Wait()
}
