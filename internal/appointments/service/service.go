// Package service implements the booking and cancellation business logic.
package service

import (
	"context"
	"fmt"
	"time"

	"gobarber_backend/internal/appointments/repository"
	"gobarber_backend/internal/appointments/transport"
	"gobarber_backend/internal/queue"
	"gobarber_backend/platform/apperr"
	"gobarber_backend/platform/logger"
)

const (
	// pageSize is the fixed page size for the requester listing.
	pageSize = 20

	// cancellationWindow is the hard cutoff: cancellations must happen
	// strictly more than two hours before the slot.
	cancellationWindow = 2 * time.Hour

	// slotDateLayout renders slots for humans, e.g. "September 01 at 10h00".
	slotDateLayout = "January 02 at 15h04"
)

// Store is the persistence surface the service needs. Satisfied by
// *repository.Repository; substituted by fakes in tests.
type Store interface {
	Create(ctx context.Context, userID, providerID int64, date time.Time) (*repository.Appointment, error)
	SlotTaken(ctx context.Context, providerID int64, date time.Time) (bool, error)
	GetByID(ctx context.Context, id int64) (*repository.Appointment, error)
	Cancel(ctx context.Context, id int64, canceledAt time.Time) (bool, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]repository.Appointment, error)
	ListProviderDay(ctx context.Context, providerID int64, dayStart, dayEnd time.Time) ([]repository.Appointment, error)
}

// UserInfo is the slice of a user the booking flow needs.
type UserInfo struct {
	ID       int64
	Name     string
	Email    string
	Provider bool
}

// UserDirectory resolves users for role checks and snapshots.
type UserDirectory interface {
	GetUser(ctx context.Context, id int64) (UserInfo, error)
}

// Notifier appends provider-facing notification records. Emission is
// best-effort relative to booking success.
type Notifier interface {
	Notify(ctx context.Context, providerID int64, content string) error
}

// Service provides business logic for appointments.
type Service struct {
	repo        Store
	users       UserDirectory
	notifier    Notifier
	mailQueue   queue.CancellationMailEnqueuer
	log         *logger.Logger
	fileBaseURL string
	now         func() time.Time
}

// New creates a new appointments service. The clock defaults to time.Now and
// is overridden in tests.
func New(repo Store, users UserDirectory, notifier Notifier, mailQueue queue.CancellationMailEnqueuer, log *logger.Logger, fileBaseURL string) *Service {
	return &Service{
		repo:        repo,
		users:       users,
		notifier:    notifier,
		mailQueue:   mailQueue,
		log:         log,
		fileBaseURL: fileBaseURL,
		now:         time.Now,
	}
}

// SetClock overrides the service clock. Used by tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Book validates and atomically creates an appointment for the requester on
// the provider's hour slot, then emits a provider notification.
func (s *Service) Book(ctx context.Context, userID int64, req transport.CreateAppointmentRequest) (*transport.AppointmentResponse, error) {
	provider, err := s.users.GetUser(ctx, req.ProviderID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.Forbidden("provider not valid")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load provider", err)
	}
	if !provider.Provider {
		return nil, apperr.Forbidden("provider not valid")
	}

	if userID == provider.ID {
		return nil, apperr.Forbidden("user and provider must be different")
	}

	// Normalize once at the boundary: every later comparison and the stored
	// value use the same UTC hour-truncated timestamp.
	slot := req.Date.UTC().Truncate(time.Hour)
	if !slot.After(s.now()) {
		return nil, apperr.Unprocessable("past dates are not allowed")
	}

	requester, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load requester", err)
	}

	// Fast path only. Two requests can both pass this check; the unique
	// index decides the winner on insert.
	if taken, err := s.repo.SlotTaken(ctx, provider.ID, slot); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to check availability", err)
	} else if taken {
		return nil, apperr.Conflict("provider unavailable at requested time")
	}

	appt, err := s.repo.Create(ctx, userID, provider.ID, slot)
	if err != nil {
		if repository.IsSlotTaken(err) {
			return nil, apperr.Conflict("provider unavailable at requested time")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create appointment", err)
	}

	// Advisory, not correctness-critical: a failed notification never undoes
	// the booking, but it must show up in the error log.
	content := fmt.Sprintf("Appointment with %s scheduled on %s", requester.Name, slot.Format(slotDateLayout))
	if err := s.notifier.Notify(ctx, provider.ID, content); err != nil {
		s.log.WithUserID(userID).Error("provider notification failed",
			"provider_id", provider.ID,
			"appointment_id", appt.ID,
			"error", err.Error(),
		)
	}

	appt.ProviderName = provider.Name
	appt.ProviderEmail = provider.Email
	appt.UserName = requester.Name

	resp := s.toResponse(appt)
	return &resp, nil
}

// Cancel transitions an appointment to canceled and enqueues the
// cancellation mail. Ownership is checked before any temporal policy.
func (s *Service) Cancel(ctx context.Context, userID, appointmentID int64) (*transport.AppointmentResponse, error) {
	appt, err := s.repo.GetByID(ctx, appointmentID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("appointment not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load appointment", err)
	}

	if appt.UserID != userID {
		return nil, apperr.Forbidden("you are not the owner of this appointment")
	}

	if appt.CanceledAt != nil {
		return nil, apperr.Conflict("appointment is already canceled")
	}

	cutoff := appt.Date.Add(-cancellationWindow)
	if !s.now().Before(cutoff) {
		return nil, apperr.Unprocessable("appointments can only be canceled 2 hours in advance")
	}

	canceledAt := s.now()
	ok, err := s.repo.Cancel(ctx, appt.ID, canceledAt)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to cancel appointment", err)
	}
	if !ok {
		// Lost a race with another cancellation of the same appointment.
		return nil, apperr.Conflict("appointment is already canceled")
	}
	appt.CanceledAt = &canceledAt

	// Snapshot taken now so the worker never touches the live records. The
	// cancellation already succeeded; an enqueue failure is logged, not
	// returned.
	payload := queue.CancellationMailPayload{
		AppointmentID: appt.ID,
		Date:          appt.Date,
		ProviderName:  appt.ProviderName,
		ProviderEmail: appt.ProviderEmail,
		UserName:      appt.UserName,
	}
	if err := s.mailQueue.EnqueueCancellationMail(ctx, payload); err != nil {
		s.log.WithUserID(userID).Error("cancellation mail enqueue failed",
			"appointment_id", appt.ID,
			"error", err.Error(),
		)
	}

	resp := s.toResponse(appt)
	return &resp, nil
}

// List returns a page of the requester's appointments ordered by slot
// ascending.
func (s *Service) List(ctx context.Context, userID int64, req transport.ListAppointmentsRequest) ([]transport.AppointmentResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}

	appts, err := s.repo.ListByUser(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list appointments", err)
	}

	out := make([]transport.AppointmentResponse, 0, len(appts))
	for i := range appts {
		out = append(out, s.toResponse(&appts[i]))
	}
	return out, nil
}

// Schedule returns the provider's own day view. Only providers may call it.
func (s *Service) Schedule(ctx context.Context, userID int64, req transport.ScheduleRequest) ([]transport.ScheduleItem, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.Forbidden("only providers can load schedules")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load user", err)
	}
	if !user.Provider {
		return nil, apperr.Forbidden("only providers can load schedules")
	}

	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, apperr.Validation("invalid date")
	}
	dayStart := day.UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	appts, err := s.repo.ListProviderDay(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load schedule", err)
	}

	out := make([]transport.ScheduleItem, 0, len(appts))
	for _, appt := range appts {
		out = append(out, transport.ScheduleItem{
			ID:       appt.ID,
			Date:     appt.Date,
			UserName: appt.UserName,
		})
	}
	return out, nil
}

func (s *Service) toResponse(appt *repository.Appointment) transport.AppointmentResponse {
	now := s.now()
	resp := transport.AppointmentResponse{
		ID:          appt.ID,
		Date:        appt.Date,
		Past:        appt.Date.Before(now),
		Cancellable: appt.CanceledAt == nil && now.Before(appt.Date.Add(-cancellationWindow)),
		CanceledAt:  appt.CanceledAt,
		Provider: transport.ProviderInfo{
			ID:   appt.ProviderID,
			Name: appt.ProviderName,
		},
	}
	if appt.ProviderAvatarID != nil && appt.ProviderAvatarPath != nil {
		resp.Provider.Avatar = &transport.AvatarInfo{
			ID:   *appt.ProviderAvatarID,
			Path: *appt.ProviderAvatarPath,
			URL:  s.fileBaseURL + "/" + *appt.ProviderAvatarPath,
		}
	}
	return resp
}
