// Package queue defines message payloads exchanged over the message
// broker and the background consumer that turns them into outbound
// notifications.
package queue

import "fmt"

// Queue names.  Both are durable; publishers and the consumer declare
// them idempotently.
const (
	BookedQueueName    = "appointment.booked"
	CancelledQueueName = "appointment.cancelled"
)

// AppointmentBookedEvent is published after a reservation commits.  It
// carries enough of the appointment snapshot for downstream consumers
// to notify staff without querying the primary database.  Publishing is
// fire-and-forget: a broker failure never rolls back the booking.
type AppointmentBookedEvent struct {
	AppointmentID   uint64  `json:"appointment_id"`
	OrderNo         string  `json:"order_no"`
	DoctorID        uint64  `json:"doctor_id"`
	DoctorName      string  `json:"doctor_name"`
	HospitalName    string  `json:"hospital_name"`
	DepartmentName  string  `json:"department_name"`
	ScheduleDate    string  `json:"schedule_date"`
	Period          string  `json:"period"`
	PatientName     string  `json:"patient_name"`
	PatientPhone    string  `json:"patient_phone"`
	Symptoms        string  `json:"symptoms,omitempty"`
	RegistrationFee float64 `json:"registration_fee"`
	BookedAt        string  `json:"booked_at"`
}

// Message renders the staff notification text sent to the group-chat
// webhook for a new booking.
func (ev AppointmentBookedEvent) Message() string {
	symptoms := ev.Symptoms
	if symptoms == "" {
		symptoms = "-"
	}
	return fmt.Sprintf(
		"[New appointment %s]\nDoctor: %s (%s, %s)\nSlot: %s %s\nPatient: %s %s\nSymptoms: %s\nBooked at: %s",
		ev.OrderNo, ev.DoctorName, ev.HospitalName, ev.DepartmentName,
		ev.ScheduleDate, ev.Period, ev.PatientName, ev.PatientPhone,
		symptoms, ev.BookedAt,
	)
}

// AppointmentCancelledEvent is published after a cancellation commits.
type AppointmentCancelledEvent struct {
	AppointmentID uint64 `json:"appointment_id"`
	OrderNo       string `json:"order_no"`
	DoctorName    string `json:"doctor_name"`
	ScheduleDate  string `json:"schedule_date"`
	Period        string `json:"period"`
	PatientPhone  string `json:"patient_phone"`
	CancelledAt   string `json:"cancelled_at"`
}

// Message renders the staff notification text for a cancellation.
func (ev AppointmentCancelledEvent) Message() string {
	return fmt.Sprintf(
		"[Cancelled appointment %s]\nDoctor: %s\nSlot: %s %s\nPatient phone: %s\nCancelled at: %s",
		ev.OrderNo, ev.DoctorName, ev.ScheduleDate, ev.Period,
		ev.PatientPhone, ev.CancelledAt,
	)
}
