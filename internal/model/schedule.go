package model

import "time"

// ScheduleSlot is the capacity record for one (doctor, date, period)
// key.  The key is unique in the table; RemainingSlots is only ever
// mutated under a row lock by the booking engine, or overwritten
// wholesale by an admin capacity reset.
//
// Fields:
//  ID             – primary key identifier.
//  DoctorID       – doctor this capacity belongs to.
//  ScheduleDate   – calendar date in ISO form (YYYY-MM-DD).
//  Period         – morning or afternoon bucket.
//  TotalSlots     – configured capacity for the key.
//  RemainingSlots – capacity still bookable; decremented on reserve,
//                   incremented on release.
//  CreatedAt      – timestamp when the record was created.
//  UpdatedAt      – timestamp when the record was last updated.
type ScheduleSlot struct {
	ID             uint64    `json:"id"`              // doctor_schedules.id
	DoctorID       uint64    `json:"doctorId"`        // doctor_schedules.doctor_id
	ScheduleDate   string    `json:"scheduleDate"`    // doctor_schedules.schedule_date
	Period         Period    `json:"period"`          // doctor_schedules.period
	TotalSlots     int       `json:"totalSlots"`      // doctor_schedules.total_slots
	RemainingSlots int       `json:"remainingSlots"`  // doctor_schedules.remaining_slots
	CreatedAt      time.Time `json:"-"`               // doctor_schedules.created_at
	UpdatedAt      time.Time `json:"-"`               // doctor_schedules.updated_at
}

// AdminScheduleRow is a schedule slot joined with the owning doctor's
// display fields, returned by the admin listing.
type AdminScheduleRow struct {
	ScheduleSlot
	DoctorName     string `json:"doctorName"`
	HospitalName   string `json:"hospitalName"`
	DepartmentName string `json:"departmentName"`
}

// ScheduleDay is one calendar day in the merged admin range view.  Days
// without configured slots appear with zero totals and nil ids so the
// admin UI can render a contiguous calendar.
type ScheduleDay struct {
	Date           string  `json:"date"`
	MorningSlots   int     `json:"morningSlots"`
	AfternoonSlots int     `json:"afternoonSlots"`
	MorningID      *uint64 `json:"morningId"`
	AfternoonID    *uint64 `json:"afternoonId"`
	DoctorID       uint64  `json:"doctorId"`
}
