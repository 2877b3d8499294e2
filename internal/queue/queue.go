package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Task is the envelope pushed onto the queue. Payload is task-specific
// JSON; delivery is at-least-once with no ordering guarantee.
type Task struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// Enqueuer is the producer side; the dispatcher only needs this.
type Enqueuer interface {
	Enqueue(ctx context.Context, name string, payload any) error
}

type RedisQueue struct {
	client *redis.Client
	key    string
}

func NewRedisQueue(addr, password, key string) *RedisQueue {
	return &RedisQueue{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		key: key,
	}
}

func (q *RedisQueue) Enqueue(ctx context.Context, name string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := Task{
		ID:      uuid.NewString(),
		Name:    name,
		Payload: raw,
	}

	data, err := json.Marshal(task)
	if err != nil {
		return err
	}

	return q.client.LPush(ctx, q.key, data).Err()
}

// Dequeue blocks until a task is available or ctx is cancelled.
func (q *RedisQueue) Dequeue(ctx context.Context) (*Task, error) {
	res, err := q.client.BRPop(ctx, 5*time.Second, q.key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	// BRPOP returns [key, value]
	var task Task
	if err := json.Unmarshal([]byte(res[1]), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (q *RedisQueue) Close() error {
	return q.client.Close()
}
