package model

import "testing"

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Period
		wantErr bool
	}{
		{"morning", "morning", PeriodMorning, false},
		{"afternoon", "afternoon", PeriodAfternoon, false},
		{"empty", "", "", true},
		{"uppercase", "MORNING", "", true},
		{"unknown", "evening", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePeriod(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePeriod(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePeriod(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPeriodValid(t *testing.T) {
	if !PeriodMorning.Valid() || !PeriodAfternoon.Valid() {
		t.Error("known periods should be valid")
	}
	if Period("evening").Valid() {
		t.Error("unknown period should not be valid")
	}
	if Period("").Valid() {
		t.Error("empty period should not be valid")
	}
}
