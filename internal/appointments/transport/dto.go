// Package transport defines the request and response DTOs for the
// appointments module.
package transport

import "time"

// CreateAppointmentRequest is the body for POST /appointments. Date accepts
// any RFC 3339 timestamp; the service truncates it to the start of its hour.
type CreateAppointmentRequest struct {
	ProviderID int64     `json:"providerId" validate:"required,gt=0"`
	Date       time.Time `json:"date" validate:"required"`
}

// ListAppointmentsRequest is the query for GET /appointments.
type ListAppointmentsRequest struct {
	Page int `form:"page"`
}

// ScheduleRequest is the query for GET /schedule.
type ScheduleRequest struct {
	Date string `form:"date" validate:"required,datetime=2006-01-02"`
}

// AvatarInfo is the embedded avatar file reference.
type AvatarInfo struct {
	ID   int64  `json:"id"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

// ProviderInfo is the provider embedded in appointment responses.
type ProviderInfo struct {
	ID     int64       `json:"id"`
	Name   string      `json:"name"`
	Avatar *AvatarInfo `json:"avatar,omitempty"`
}

// AppointmentResponse is the public representation of an appointment. Past
// and Cancellable are derived from the slot and the current time.
type AppointmentResponse struct {
	ID          int64        `json:"id"`
	Date        time.Time    `json:"date"`
	Past        bool         `json:"past"`
	Cancellable bool         `json:"cancellable"`
	CanceledAt  *time.Time   `json:"canceledAt,omitempty"`
	Provider    ProviderInfo `json:"provider"`
}

// ScheduleItem is one entry of a provider's day view.
type ScheduleItem struct {
	ID       int64     `json:"id"`
	Date     time.Time `json:"date"`
	UserName string    `json:"userName"`
}
