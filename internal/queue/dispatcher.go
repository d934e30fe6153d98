package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/voterworks/backend/internal/queue/client"
	"github.com/voterworks/backend/internal/queue/task"

	"github.com/google/uuid"
)

// Dispatcher enqueues post-registration work. Enqueueing is the only coupling
// between record creation and the completion workflow: once the task is on the
// queue, creation is done.
type Dispatcher struct{}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) DispatchCompleteRegistration(ctx context.Context, registrantID uuid.UUID) error {
	t, err := task.NewCompleteRegistrationTask(registrantID)
	if err != nil {
		return fmt.Errorf("new complete registration task failed: %w", err)
	}

	c := client.GetClient(ctx)
	if c == nil {
		return errors.New("queue client is not configured")
	}

	if _, err := c.EnqueueContext(ctx, t); err != nil {
		return fmt.Errorf("enqueue complete registration task failed: %w", err)
	}
	return nil
}
