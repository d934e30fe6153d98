package task

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	CompleteRegistrationTaskName  = "completeRegistrationTask"
	CompleteRegistrationQueueName = "registrationQueue"
)

type CompleteRegistration struct {
	RegistrantID uuid.UUID `json:"registrant_id"`
}

func NewCompleteRegistrationTask(registrantID uuid.UUID) (*asynq.Task, error) {
	var data CompleteRegistration
	data.RegistrantID = registrantID

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		CompleteRegistrationTaskName,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(CompleteRegistrationQueueName),
	), nil
}
