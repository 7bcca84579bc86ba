package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wenqianzh/medpoint-backend/internal/repository"
)

// ScheduleHandler serves the public schedule browsing endpoint.  Reads
// here take no locks: the remaining count shown to a patient is only a
// hint, the authoritative check happens inside the booking transaction.
type ScheduleHandler struct {
	Schedules *repository.ScheduleRepo
}

// NewScheduleHandler constructs a ScheduleHandler.  The repository must
// be non-nil.
func NewScheduleHandler(schedules *repository.ScheduleRepo) *ScheduleHandler {
	if schedules == nil {
		panic("nil repository passed to NewScheduleHandler")
	}
	return &ScheduleHandler{Schedules: schedules}
}

// ListForDoctor handles GET /api/doctors/:id/schedules.  The optional
// "startDate" query (YYYY-MM-DD) bounds the listing; it defaults to
// today so past slots never show up in the booking UI.
func (h *ScheduleHandler) ListForDoctor(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid doctor id"})
	}
	from := c.QueryParam("startDate")
	if from == "" {
		from = time.Now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", from); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "startDate must be YYYY-MM-DD"})
	}
	slots, err := h.Schedules.ListByDoctorFrom(c.Request().Context(), id, from)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load schedules"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": slots})
}
