package model

import "time"

// Appointment status lifecycle.  Cancelled is terminal: the booking
// engine never transitions a cancelled appointment back to pending and
// rows are never physically deleted.
const (
	AppointmentPending   = "pending"   // appointments.status = 'pending'
	AppointmentCancelled = "cancelled" // appointments.status = 'cancelled'
)

// Appointment records a single successful reservation.  Doctor name,
// hospital, department and fee are denormalized snapshots taken inside
// the booking transaction, so later doctor-profile edits do not rewrite
// historical bookings.  The appointment references its schedule slot by
// the (DoctorID, ScheduleDate, Period) composite key rather than a row
// id; the release path looks the slot up by the same key.
//
// Fields:
//  ID              – primary key identifier.
//  OrderNo         – opaque order number handed to notification hooks.
//  DoctorID        – doctor the appointment is with.
//  DoctorName      – doctor name snapshot at booking time.
//  HospitalName    – hospital snapshot at booking time.
//  DepartmentName  – department snapshot at booking time.
//  ScheduleDate    – booked date in ISO form (YYYY-MM-DD).
//  Period          – booked morning/afternoon bucket.
//  PatientName     – patient display name.
//  PatientGender   – optional patient gender.
//  PatientAge      – optional patient age, zero when not supplied.
//  PatientPhone    – patient contact number, also the listing filter key.
//  Symptoms        – optional free-text symptom description.
//  RegistrationFee – fee snapshot at booking time.
//  Status          – pending or cancelled.
//  CreatedAt       – timestamp when the booking was made.
type Appointment struct {
	ID              uint64    `json:"id"`
	OrderNo         string    `json:"orderNo"`
	DoctorID        uint64    `json:"doctorId"`
	DoctorName      string    `json:"doctorName"`
	HospitalName    string    `json:"hospitalName"`
	DepartmentName  string    `json:"departmentName"`
	ScheduleDate    string    `json:"scheduleDate"`
	Period          Period    `json:"period"`
	PatientName     string    `json:"patientName"`
	PatientGender   string    `json:"patientGender,omitempty"`
	PatientAge      int       `json:"patientAge,omitempty"`
	PatientPhone    string    `json:"patientPhone"`
	Symptoms        string    `json:"symptoms,omitempty"`
	RegistrationFee float64   `json:"registrationFee"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}
