package queue

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestBookedEventMessage(t *testing.T) {
	ev := AppointmentBookedEvent{
		AppointmentID:   42,
		OrderNo:         "a1b2c3",
		DoctorName:      "Dr. Chen",
		HospitalName:    "City Hospital",
		DepartmentName:  "Cardiology",
		ScheduleDate:    "2030-05-01",
		Period:          "morning",
		PatientName:     "Jane Roe",
		PatientPhone:    "13800000000",
		Symptoms:        "chest pain",
		RegistrationFee: 25,
		BookedAt:        "2030-04-28T09:00:00Z",
	}
	msg := ev.Message()
	for _, want := range []string{
		"[New appointment a1b2c3]",
		"Dr. Chen (City Hospital, Cardiology)",
		"2030-05-01 morning",
		"Jane Roe 13800000000",
		"chest pain",
		"2030-04-28T09:00:00Z",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("Message() missing %q:\n%s", want, msg)
		}
	}
}

func TestBookedEventMessageEmptySymptoms(t *testing.T) {
	ev := AppointmentBookedEvent{OrderNo: "x"}
	if !strings.Contains(ev.Message(), "Symptoms: -") {
		t.Errorf("Message() should render empty symptoms as dash:\n%s", ev.Message())
	}
}

func TestCancelledEventMessage(t *testing.T) {
	ev := AppointmentCancelledEvent{
		OrderNo:      "a1b2c3",
		DoctorName:   "Dr. Chen",
		ScheduleDate: "2030-05-01",
		Period:       "afternoon",
		PatientPhone: "13800000000",
		CancelledAt:  "2030-04-29T10:00:00Z",
	}
	msg := ev.Message()
	for _, want := range []string{
		"[Cancelled appointment a1b2c3]",
		"Dr. Chen",
		"2030-05-01 afternoon",
		"13800000000",
		"2030-04-29T10:00:00Z",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("Message() missing %q:\n%s", want, msg)
		}
	}
}

func TestBookedEventRoundTrip(t *testing.T) {
	in := AppointmentBookedEvent{
		AppointmentID: 7,
		OrderNo:       "ord-7",
		DoctorID:      3,
		ScheduleDate:  "2030-05-01",
		Period:        "morning",
		PatientPhone:  "13800000000",
	}
	body, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// Wire payloads use snake_case field names.
	if !strings.Contains(string(body), `"order_no":"ord-7"`) {
		t.Errorf("unexpected wire shape: %s", body)
	}
	content, mentionAll, err := decodeBooked(body)
	if err != nil {
		t.Fatalf("decodeBooked() error = %v", err)
	}
	if !mentionAll {
		t.Error("booked notifications should mention everyone")
	}
	if !strings.Contains(content, "ord-7") {
		t.Errorf("decoded message missing order no: %s", content)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, _, err := decodeBooked([]byte("{")); err == nil {
		t.Error("decodeBooked(garbage) = ok, want error")
	}
	if _, _, err := decodeCancelled([]byte("not json")); err == nil {
		t.Error("decodeCancelled(garbage) = ok, want error")
	}
}
