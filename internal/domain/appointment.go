package domain

import (
	"time"

	"agenda/internal/scheduling"
)

type Appointment struct {
	ID          int64     `json:"id"`
	ClientName  string    `json:"client_name"`
	ClientPhone string    `json:"client_phone"`
	ServiceID   int64     `json:"service_id"`
	ServiceName string    `json:"service_name,omitempty"`
	StartTime   time.Time `json:"appointment_time"`
	EndTime     time.Time `json:"end_time"`
	CreatedAt   time.Time `json:"created_at"`
}

func (a Appointment) Interval() scheduling.Interval {
	return scheduling.Interval{Start: a.StartTime, End: a.EndTime}
}

type CreateAppointmentDTO struct {
	ServiceID       int64  `json:"service_id" binding:"required"`
	AppointmentTime string `json:"appointment_time" binding:"required"`
	ClientName      string `json:"client_name" binding:"required"`
	ClientPhone     string `json:"client_phone" binding:"required"`
}

type AppointmentFilter struct {
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
}

type AvailableSlots struct {
	ServiceID int64       `json:"service_id"`
	Date      string      `json:"date"`
	Slots     []time.Time `json:"available_slots"`
}

type AgendaExport struct {
	Date         string `json:"date"`
	Appointments int    `json:"appointments"`
	Object       string `json:"object"`
	URL          string `json:"url"`
}
