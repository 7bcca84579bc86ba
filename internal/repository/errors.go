// Package repository defines sentinel error values shared across the
// repositories.  Higher layers branch on these with errors.Is to pick
// HTTP statuses; the booking engine additionally translates the
// schedule/appointment variants into its own typed failures.
package repository

import "errors"

// ErrDoctorNotFound is returned when a doctor id does not resolve to a row.
var ErrDoctorNotFound = errors.New("doctor not found")

// ErrScheduleNotFound is returned when no schedule row exists for the
// requested id or (doctor, date, period) key.
var ErrScheduleNotFound = errors.New("schedule not found")

// ErrAppointmentNotFound is returned when an appointment id does not
// resolve to a row.
var ErrAppointmentNotFound = errors.New("appointment not found")
