package model

import "fmt"

// Period is the coarse time-of-day bucket a schedule slot belongs to.
// Every schedule row and appointment carries exactly one period; together
// with the doctor ID and date it forms the slot's identity.
type Period string

const (
	PeriodMorning   Period = "morning"   // doctor_schedules.period = 'morning'
	PeriodAfternoon Period = "afternoon" // doctor_schedules.period = 'afternoon'
)

// ParsePeriod validates a raw period string from a request or a database
// row.  Only the two known bucket values are accepted.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodMorning:
		return PeriodMorning, nil
	case PeriodAfternoon:
		return PeriodAfternoon, nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// Valid reports whether p holds one of the known period values.
func (p Period) Valid() bool {
	return p == PeriodMorning || p == PeriodAfternoon
}
