package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Notification kinds.
const (
	KindAppointmentCreated = "appointment_created"
	KindAppointmentStatus  = "appointment_status"
)

type Queue struct {
	client    *redis.Client
	queueName string
}

// NotificationMessage carries everything the worker needs to email a client
// without touching the database.
type NotificationMessage struct {
	Kind             string    `json:"kind"`
	CompanyID        int64     `json:"company_id"`
	CompanyName      string    `json:"company_name,omitempty"`
	AppointmentID    int64     `json:"appointment_id"`
	ClientName       string    `json:"client_name"`
	ClientEmail      string    `json:"client_email"`
	ProfessionalName string    `json:"professional_name,omitempty"`
	ServiceName      string    `json:"service_name,omitempty"`
	StartsAt         time.Time `json:"starts_at"`
	Timezone         string    `json:"timezone,omitempty"`
	Status           string    `json:"status"`
	Attempts         int       `json:"attempts,omitempty"`
}

func NewQueue(client *redis.Client, queueName string) *Queue {
	return &Queue{
		client:    client,
		queueName: queueName,
	}
}

func (q *Queue) Name() string {
	return q.queueName
}

// Push adds a message to the head of the list; Pop takes from the tail.
func (q *Queue) Push(ctx context.Context, msg *NotificationMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return q.client.LPush(ctx, q.queueName, data).Err()
}

// Pop blocks for up to timeout. A nil message with nil error means the wait timed out.
func (q *Queue) Pop(ctx context.Context, timeout time.Duration) (*NotificationMessage, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to pop from queue: %w", err)
	}

	if len(result) < 2 {
		return nil, nil
	}

	var msg NotificationMessage
	if err := json.Unmarshal([]byte(result[1]), &msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %w", err)
	}

	return &msg, nil
}

func (q *Queue) Length(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.queueName).Result()
}
