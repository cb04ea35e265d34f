package model

import (
	"github.com/google/uuid"
)

// Appointment is a booked slot. Client and Services are populated from
// their own tables when an appointment is read back; only ClientID and the
// join rows are persisted (references, not embedded graphs).
type Appointment struct {
	Base
	ClientID uuid.UUID  `db:"client_id" json:"-"`
	Client   *Client    `db:"-" json:"client"`
	Services []*Service `db:"-" json:"services"`
	Date     Date       `db:"date" json:"date"`
	Start    TimeOfDay  `db:"start_time" json:"start_time"`
	End      TimeOfDay  `db:"end_time" json:"end_time"`
}

type CreateAppointmentRequest struct {
	ClientID   uuid.UUID   `json:"client_id" binding:"required"`
	ServiceIDs []uuid.UUID `json:"service_ids" binding:"required,min=1"`
	Date       Date        `json:"date" binding:"required"`
	Start      TimeOfDay   `json:"start_time" binding:"required"`
	End        TimeOfDay   `json:"end_time" binding:"required"`
}

type UpdateAppointmentRequest struct {
	ClientID   uuid.UUID   `json:"client_id" binding:"required"`
	ServiceIDs []uuid.UUID `json:"service_ids" binding:"required,min=1"`
	Date       Date        `json:"date" binding:"required"`
	Start      TimeOfDay   `json:"start_time" binding:"required"`
	End        TimeOfDay   `json:"end_time" binding:"required"`
}
