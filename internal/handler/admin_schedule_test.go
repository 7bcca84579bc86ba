package handler

import (
	"testing"
	"time"

	"github.com/wenqianzh/medpoint-backend/internal/model"
)

func TestExpandDatesFromDays(t *testing.T) {
	dates, errMsg := expandDates(3, "", "")
	if errMsg != "" {
		t.Fatalf("expandDates() error = %q", errMsg)
	}
	if len(dates) != 3 {
		t.Fatalf("len(dates) = %d, want 3", len(dates))
	}
	today := time.Now().UTC().Format("2006-01-02")
	if dates[0] != today {
		t.Errorf("dates[0] = %q, want today %q", dates[0], today)
	}
	for i, d := range dates {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			t.Errorf("dates[%d] = %q not ISO", i, d)
		}
	}
}

func TestExpandDatesFromRange(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		wantLen   int
		wantError bool
	}{
		{"single day", "2030-05-01", "2030-05-01", 1, false},
		{"one week", "2030-05-01", "2030-05-07", 7, false},
		{"month boundary", "2030-05-30", "2030-06-02", 4, false},
		{"reversed", "2030-05-07", "2030-05-01", 0, true},
		{"missing end", "2030-05-01", "", 0, true},
		{"bad start", "05/01/2030", "2030-05-07", 0, true},
		{"too wide", "2030-01-01", "2030-12-31", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates, errMsg := expandDates(0, tt.start, tt.end)
			if tt.wantError {
				if errMsg == "" {
					t.Fatal("expandDates() = ok, want error")
				}
				return
			}
			if errMsg != "" {
				t.Fatalf("expandDates() error = %q", errMsg)
			}
			if len(dates) != tt.wantLen {
				t.Errorf("len(dates) = %d, want %d", len(dates), tt.wantLen)
			}
		})
	}
}

func TestExpandDatesDaysLimit(t *testing.T) {
	if _, errMsg := expandDates(91, "", ""); errMsg == "" {
		t.Error("expandDates(91 days) = ok, want error")
	}
	if _, errMsg := expandDates(90, "", ""); errMsg != "" {
		t.Errorf("expandDates(90 days) error = %q", errMsg)
	}
}

func TestMergeScheduleRange(t *testing.T) {
	row := func(id uint64, date string, period model.Period, total int) model.AdminScheduleRow {
		return model.AdminScheduleRow{
			ScheduleSlot: model.ScheduleSlot{
				ID: id, DoctorID: 7, ScheduleDate: date, Period: period, TotalSlots: total,
			},
		}
	}
	rows := []model.AdminScheduleRow{
		row(11, "2030-05-01", model.PeriodMorning, 10),
		row(12, "2030-05-01", model.PeriodAfternoon, 8),
		row(13, "2030-05-03", model.PeriodAfternoon, 5),
	}

	days, errMsg := mergeScheduleRange(7, "2030-05-01", "2030-05-03", rows)
	if errMsg != "" {
		t.Fatalf("mergeScheduleRange() error = %q", errMsg)
	}
	if len(days) != 3 {
		t.Fatalf("len(days) = %d, want 3", len(days))
	}

	first := days[0]
	if first.Date != "2030-05-01" || first.MorningSlots != 10 || first.AfternoonSlots != 8 {
		t.Errorf("day 1 = %+v", first)
	}
	if first.MorningID == nil || *first.MorningID != 11 {
		t.Errorf("day 1 morning id = %v, want 11", first.MorningID)
	}
	if first.AfternoonID == nil || *first.AfternoonID != 12 {
		t.Errorf("day 1 afternoon id = %v, want 12", first.AfternoonID)
	}

	// A day with no configured rows keeps zero slots and nil ids, so
	// the console can tell "no row" apart from "zero capacity".
	gap := days[1]
	if gap.Date != "2030-05-02" || gap.MorningSlots != 0 || gap.AfternoonSlots != 0 {
		t.Errorf("gap day = %+v", gap)
	}
	if gap.MorningID != nil || gap.AfternoonID != nil {
		t.Errorf("gap day ids = %v/%v, want nil/nil", gap.MorningID, gap.AfternoonID)
	}

	third := days[2]
	if third.AfternoonID == nil || *third.AfternoonID != 13 || third.MorningID != nil {
		t.Errorf("day 3 = %+v", third)
	}
	for i, d := range days {
		if d.DoctorID != 7 {
			t.Errorf("days[%d].DoctorID = %d, want 7", i, d.DoctorID)
		}
	}
}

func TestMergeScheduleRangeReversed(t *testing.T) {
	if _, errMsg := mergeScheduleRange(1, "2030-05-07", "2030-05-01", nil); errMsg == "" {
		t.Error("mergeScheduleRange(reversed) = ok, want error")
	}
}
