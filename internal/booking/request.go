package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/wenqianzh/medpoint-backend/internal/model"
)

// ReserveRequest carries everything needed to claim one unit of slot
// capacity.  Doctor name, hospital, department and fee are NOT part of
// the request: the engine snapshots them from the doctor row inside the
// reservation transaction.
type ReserveRequest struct {
	DoctorID      uint64
	ScheduleDate  string // ISO date, YYYY-MM-DD
	Period        model.Period
	PatientName   string
	PatientPhone  string
	PatientGender string
	PatientAge    int
	Symptoms      string
}

// Validate checks the required fields and the date/period formats.  All
// failures wrap ErrInvalidInput so callers can branch on the class.
func (r *ReserveRequest) Validate() error {
	if r.DoctorID == 0 {
		return fmt.Errorf("%w: doctorId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(r.ScheduleDate) == "" {
		return fmt.Errorf("%w: scheduleDate is required", ErrInvalidInput)
	}
	if _, err := time.Parse("2006-01-02", r.ScheduleDate); err != nil {
		return fmt.Errorf("%w: scheduleDate must be YYYY-MM-DD", ErrInvalidInput)
	}
	if !r.Period.Valid() {
		return fmt.Errorf("%w: period must be morning or afternoon", ErrInvalidInput)
	}
	if strings.TrimSpace(r.PatientName) == "" {
		return fmt.Errorf("%w: patientName is required", ErrInvalidInput)
	}
	if strings.TrimSpace(r.PatientPhone) == "" {
		return fmt.Errorf("%w: patientPhone is required", ErrInvalidInput)
	}
	if r.PatientAge < 0 {
		return fmt.Errorf("%w: patientAge must not be negative", ErrInvalidInput)
	}
	return nil
}
