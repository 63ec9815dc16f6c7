package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"gobarber_backend/internal/email"
	"gobarber_backend/platform/logger"

	"github.com/hibiken/asynq"
)

type testQueueConfig struct{}

func (testQueueConfig) GetRedisURL() string                   { return "redis://localhost:6379/0" }
func (testQueueConfig) GetQueueName() string                  { return "default" }
func (testQueueConfig) GetQueueConcurrency() int              { return 1 }
func (testQueueConfig) GetQueueMaxRetry() int                 { return 3 }
func (testQueueConfig) GetQueueRetryBaseDelay() time.Duration { return time.Second }
func (testQueueConfig) GetQueueRetryMaxDelay() time.Duration  { return time.Minute }

type fakeSender struct {
	toName  string
	toEmail string
	data    email.CancellationData
	calls   int
	err     error
}

func (f *fakeSender) SendCancellationEmail(ctx context.Context, toName, toEmail string, data email.CancellationData) error {
	f.calls++
	f.toName = toName
	f.toEmail = toEmail
	f.data = data
	return f.err
}

func newTestWorker(t *testing.T, sender email.Sender) *Worker {
	t.Helper()
	w, err := NewWorker(testQueueConfig{}, sender, logger.New("development"))
	if err != nil {
		t.Fatalf("NewWorker returned error: %v", err)
	}
	return w
}

func TestHandleCancellationMailSendsToProvider(t *testing.T) {
	sender := &fakeSender{}
	w := newTestWorker(t, sender)

	task, err := NewCancellationMailTask(CancellationMailPayload{
		AppointmentID: 7,
		Date:          time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC),
		ProviderName:  "John Barber",
		ProviderEmail: "john@example.com",
		UserName:      "Jane Doe",
	})
	if err != nil {
		t.Fatalf("NewCancellationMailTask returned error: %v", err)
	}

	if err := w.handleCancellationMail(context.Background(), task); err != nil {
		t.Fatalf("handleCancellationMail returned error: %v", err)
	}

	if sender.calls != 1 {
		t.Fatalf("expected one send, got %d", sender.calls)
	}
	if sender.toEmail != "john@example.com" || sender.toName != "John Barber" {
		t.Errorf("mail addressed to %q <%s>, want provider", sender.toName, sender.toEmail)
	}
	if sender.data.Date != "September 01 at 10h00" {
		t.Errorf("mail date = %q, want %q", sender.data.Date, "September 01 at 10h00")
	}
	if sender.data.UserName != "Jane Doe" {
		t.Errorf("mail user name = %q, want %q", sender.data.UserName, "Jane Doe")
	}
}

func TestHandleCancellationMailSkipsRetryOnMalformedPayload(t *testing.T) {
	sender := &fakeSender{}
	w := newTestWorker(t, sender)

	task := asynq.NewTask(TaskCancellationMail, []byte("{not json"))

	err := w.handleCancellationMail(context.Background(), task)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry for malformed payload, got %v", err)
	}
	if sender.calls != 0 {
		t.Fatalf("expected no send attempts, got %d", sender.calls)
	}
}

func TestHandleCancellationMailReturnsTransportError(t *testing.T) {
	transportErr := errors.New("smtp unreachable")
	sender := &fakeSender{err: transportErr}
	w := newTestWorker(t, sender)

	task, err := NewCancellationMailTask(CancellationMailPayload{
		AppointmentID: 1,
		Date:          time.Now().UTC(),
		ProviderName:  "John Barber",
		ProviderEmail: "john@example.com",
		UserName:      "Jane Doe",
	})
	if err != nil {
		t.Fatalf("NewCancellationMailTask returned error: %v", err)
	}

	got := w.handleCancellationMail(context.Background(), task)
	if !errors.Is(got, transportErr) {
		t.Fatalf("expected transport error to pass through, got %v", got)
	}
	if errors.Is(got, asynq.SkipRetry) {
		t.Fatal("transport errors must stay retryable")
	}
}
