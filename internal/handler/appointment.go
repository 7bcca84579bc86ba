package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wenqianzh/medpoint-backend/internal/booking"
	"github.com/wenqianzh/medpoint-backend/internal/model"
	"github.com/wenqianzh/medpoint-backend/internal/queue"
	"github.com/wenqianzh/medpoint-backend/internal/repository"
	queuepub "github.com/wenqianzh/medpoint-backend/internal/service"
)

// AppointmentHandler exposes booking, cancellation and listing.  All
// capacity mutations go through the booking engine; this layer only
// binds requests, maps engine errors to HTTP statuses and fires the
// notification events after a successful commit.
type AppointmentHandler struct {
	Engine       *booking.Engine
	Appointments *repository.AppointmentRepo
	Publisher    *queuepub.Publisher // nil disables notifications
	Logger       *zap.Logger
}

// NewAppointmentHandler constructs an AppointmentHandler.  Engine and
// repository must be non-nil; the publisher may be nil when no broker
// is configured.
func NewAppointmentHandler(engine *booking.Engine, appointments *repository.AppointmentRepo, publisher *queuepub.Publisher, logger *zap.Logger) *AppointmentHandler {
	if engine == nil || appointments == nil {
		panic("nil dependency passed to NewAppointmentHandler")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AppointmentHandler{Engine: engine, Appointments: appointments, Publisher: publisher, Logger: logger}
}

// createRequest is the JSON body of POST /api/appointments.
type createRequest struct {
	DoctorID      uint64 `json:"doctorId"`
	ScheduleDate  string `json:"scheduleDate"`
	Period        string `json:"period"`
	PatientName   string `json:"patientName"`
	PatientPhone  string `json:"patientPhone"`
	PatientGender string `json:"patientGender"`
	PatientAge    int    `json:"patientAge"`
	Symptoms      string `json:"symptoms"`
}

// Create handles POST /api/appointments.  It reserves one unit of slot
// capacity and records the appointment atomically.  A full slot and a
// nonexistent slot are distinct client errors; lock contention maps to
// 503 so clients know the request is retryable.
func (h *AppointmentHandler) Create(c echo.Context) error {
	var body createRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req := booking.ReserveRequest{
		DoctorID:      body.DoctorID,
		ScheduleDate:  body.ScheduleDate,
		Period:        model.Period(body.Period),
		PatientName:   body.PatientName,
		PatientPhone:  body.PatientPhone,
		PatientGender: body.PatientGender,
		PatientAge:    body.PatientAge,
		Symptoms:      body.Symptoms,
	}
	appt, err := h.Engine.Reserve(c.Request().Context(), req)
	if err != nil {
		return bookingError(c, err)
	}

	h.publishBooked(appt)

	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"message":     "appointment booked",
		"appointment": appt,
	})
}

// Cancel handles POST /api/appointments/cancel.  The body carries the
// appointment id; a second cancel of the same id fails with 400 and
// never returns the capacity unit twice.
func (h *AppointmentHandler) Cancel(c echo.Context) error {
	var body struct {
		AppointmentID uint64 `json:"appointmentId"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.AppointmentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "appointmentId is required"})
	}
	appt, err := h.Engine.Release(c.Request().Context(), body.AppointmentID)
	if err != nil {
		return bookingError(c, err)
	}

	h.publishCancelled(appt)

	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"message":     "appointment cancelled",
		"appointment": appt,
	})
}

// List handles GET /api/appointments.  Filters: "phone" (patient
// phone), "doctorId" and "status"; any combination, newest first.
func (h *AppointmentHandler) List(c echo.Context) error {
	phone := c.QueryParam("phone")
	status := c.QueryParam("status")
	if status != "" && status != model.AppointmentPending && status != model.AppointmentCancelled {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be pending or cancelled"})
	}
	var doctorID uint64
	if raw := c.QueryParam("doctorId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid doctorId"})
		}
		doctorID = id
	}
	items, err := h.Appointments.List(c.Request().Context(), phone, doctorID, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load appointments"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetByID handles GET /api/appointments/:id.
func (h *AppointmentHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid appointment id"})
	}
	appt, err := h.Appointments.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrAppointmentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "appointment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load appointment"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": appt})
}

// bookingError maps engine failures to HTTP responses.  All client
// errors carry success=false plus the engine's message so the booking
// UI can show it verbatim.
func bookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrInvalidInput),
		errors.Is(err, booking.ErrNoSuchSlot),
		errors.Is(err, booking.ErrSlotFull),
		errors.Is(err, booking.ErrAlreadyCancelled):
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
	case errors.Is(err, booking.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": err.Error()})
	case errors.Is(err, booking.ErrContended):
		c.Response().Header().Set("Retry-After", "1")
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"success": false, "message": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "internal error"})
	}
}

// publishBooked fires the booked event in the background.  The request
// has already committed; a broker failure is logged and dropped.
func (h *AppointmentHandler) publishBooked(appt *model.Appointment) {
	if h.Publisher == nil {
		return
	}
	ev := queue.AppointmentBookedEvent{
		AppointmentID:   appt.ID,
		OrderNo:         appt.OrderNo,
		DoctorID:        appt.DoctorID,
		DoctorName:      appt.DoctorName,
		HospitalName:    appt.HospitalName,
		DepartmentName:  appt.DepartmentName,
		ScheduleDate:    appt.ScheduleDate,
		Period:          string(appt.Period),
		PatientName:     appt.PatientName,
		PatientPhone:    appt.PatientPhone,
		Symptoms:        appt.Symptoms,
		RegistrationFee: appt.RegistrationFee,
		BookedAt:        appt.CreatedAt.UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := h.Publisher.PublishBooked(ctx, ev); err != nil {
			h.Logger.Warn("booked event not published", zap.String("order_no", ev.OrderNo), zap.Error(err))
		}
	}()
}

// publishCancelled fires the cancelled event in the background.
func (h *AppointmentHandler) publishCancelled(appt *model.Appointment) {
	if h.Publisher == nil {
		return
	}
	ev := queue.AppointmentCancelledEvent{
		AppointmentID: appt.ID,
		OrderNo:       appt.OrderNo,
		DoctorName:    appt.DoctorName,
		ScheduleDate:  appt.ScheduleDate,
		Period:        string(appt.Period),
		PatientPhone:  appt.PatientPhone,
		CancelledAt:   time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := h.Publisher.PublishCancelled(ctx, ev); err != nil {
			h.Logger.Warn("cancelled event not published", zap.String("order_no", ev.OrderNo), zap.Error(err))
		}
	}()
}
