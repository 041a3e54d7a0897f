package service

import (
	"context"

	"github.com/bookwise/bookwise/pkg/rabbitmq"
)

// QueueAdapter adapts rabbitmq.Queue to the TaskPublisher interface.
type QueueAdapter struct {
	queue rabbitmq.Queue
}

func NewQueueAdapter(q rabbitmq.Queue) *QueueAdapter {
	return &QueueAdapter{queue: q}
}

func (a *QueueAdapter) Publish(ctx context.Context, task *DispatchTask) error {
	if a.queue == nil {
		return nil
	}
	return a.queue.Publish(ctx, task)
}
