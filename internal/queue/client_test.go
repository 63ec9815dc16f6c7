package queue

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
)

type miniredisConfig struct {
	testQueueConfig
	addr string
}

func (c miniredisConfig) GetRedisURL() string { return "redis://" + c.addr }

func TestEnqueueCancellationMailRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := miniredisConfig{addr: mr.Addr()}

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	defer client.Close()

	payload := CancellationMailPayload{
		AppointmentID: 42,
		Date:          time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC),
		ProviderName:  "John Barber",
		ProviderEmail: "john@example.com",
		UserName:      "Jane Doe",
	}
	if err := client.EnqueueCancellationMail(context.Background(), payload); err != nil {
		t.Fatalf("EnqueueCancellationMail returned error: %v", err)
	}

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: mr.Addr()})
	defer inspector.Close()

	pending, err := inspector.ListPendingTasks("default")
	if err != nil {
		t.Fatalf("ListPendingTasks returned error: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending task, got %d", len(pending))
	}

	info := pending[0]
	if info.Type != TaskCancellationMail {
		t.Fatalf("task type = %q, want %q", info.Type, TaskCancellationMail)
	}
	if info.MaxRetry != 3 {
		t.Errorf("task max retry = %d, want 3", info.MaxRetry)
	}

	got, err := ParseCancellationMailPayload(asynq.NewTask(info.Type, info.Payload))
	if err != nil {
		t.Fatalf("ParseCancellationMailPayload returned error: %v", err)
	}
	if got.AppointmentID != payload.AppointmentID ||
		got.ProviderEmail != payload.ProviderEmail ||
		got.UserName != payload.UserName ||
		!got.Date.Equal(payload.Date) {
		t.Fatalf("payload round trip mismatch: got %+v, want %+v", got, payload)
	}
}
