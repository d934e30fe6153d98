package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/voterworks/backend/internal/queue/task"
	"github.com/voterworks/backend/internal/worker"

	"github.com/hibiken/asynq"
)

type completeRegistrationProcessor struct {
	workers *worker.Workers
}

func NewCompleteRegistrationProcessor(workers *worker.Workers) *completeRegistrationProcessor {
	return &completeRegistrationProcessor{
		workers: workers,
	}
}

func (p *completeRegistrationProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.CompleteRegistration
	err := json.Unmarshal(t.Payload(), &data)
	if err != nil {
		return fmt.Errorf("process complete registration task json unmarshal failed: %w", err)
	}

	if err = p.workers.RegistrationCompleter.CompleteRegistration(ctx, data.RegistrantID); err != nil {
		return fmt.Errorf("complete registration failed: %w", err)
	}

	return nil
}
