// Package queue provides the asynq-backed job queue: task definitions, the
// enqueue client used by request handlers and the worker that drains the
// backlog. Delivery is at-least-once; handlers must tolerate duplicate
// invocations for the same job.
package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// TaskCancellationMail notifies a provider by email that an appointment was
// canceled.
const TaskCancellationMail = "cancellation-mail"

// CancellationMailPayload is an immutable snapshot of the appointment and
// user fields captured at enqueue time. Workers never read the live records,
// so later mutations of the appointment cannot race with mail delivery.
type CancellationMailPayload struct {
	AppointmentID int64     `json:"appointmentId"`
	Date          time.Time `json:"date"`
	ProviderName  string    `json:"providerName"`
	ProviderEmail string    `json:"providerEmail"`
	UserName      string    `json:"userName"`
}

// NewCancellationMailTask builds an asynq task carrying the payload snapshot.
func NewCancellationMailTask(payload CancellationMailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCancellationMail, data), nil
}

// ParseCancellationMailPayload decodes the payload from an asynq task.
func ParseCancellationMailPayload(task *asynq.Task) (CancellationMailPayload, error) {
	var payload CancellationMailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return CancellationMailPayload{}, err
	}
	return payload, nil
}
