package domain

import "time"

type AppointmentStatus string

const (
	AppointmentRequested AppointmentStatus = "requested"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	FacilityID  string            `json:"facility_id"`
	Service     string            `json:"service,omitempty"`
	ScheduledAt time.Time         `json:"scheduled_at"`
	Notes       string            `json:"notes,omitempty"`
	Status      AppointmentStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
}
