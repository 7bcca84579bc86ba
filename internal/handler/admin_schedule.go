package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wenqianzh/medpoint-backend/internal/model"
	"github.com/wenqianzh/medpoint-backend/internal/repository"
)

// AdminScheduleHandler manages slot capacity from the admin console.
// Every write here carries full-reset semantics: remaining_slots is
// overwritten to the new total, so resetting a key with active bookings
// discards the count of those bookings.
type AdminScheduleHandler struct {
	Schedules *repository.ScheduleRepo
}

// NewAdminScheduleHandler constructs an AdminScheduleHandler.  The
// repository must be non-nil.
func NewAdminScheduleHandler(schedules *repository.ScheduleRepo) *AdminScheduleHandler {
	if schedules == nil {
		panic("nil repository passed to NewAdminScheduleHandler")
	}
	return &AdminScheduleHandler{Schedules: schedules}
}

// Save handles POST /api/admin/schedules: a single-key capacity upsert.
func (h *AdminScheduleHandler) Save(c echo.Context) error {
	var body struct {
		DoctorID     uint64 `json:"doctorId"`
		ScheduleDate string `json:"scheduleDate"`
		Period       string `json:"period"`
		TotalSlots   int    `json:"totalSlots"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.DoctorID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "doctorId is required"})
	}
	if _, err := time.Parse("2006-01-02", body.ScheduleDate); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "scheduleDate must be YYYY-MM-DD"})
	}
	period, err := model.ParsePeriod(body.Period)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "period must be morning or afternoon"})
	}
	if body.TotalSlots < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "totalSlots must not be negative"})
	}
	id, err := h.Schedules.Upsert(c.Request().Context(), body.DoctorID, body.ScheduleDate, period, body.TotalSlots)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save schedule"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "scheduleId": id})
}

// Batch handles POST /api/admin/schedules/batch.  The date range comes
// either from "days" (N days starting today) or from an explicit
// startDate..endDate pair; morning and afternoon totals are independent
// and a nil value leaves that period untouched.  The whole range is
// written in one transaction.
func (h *AdminScheduleHandler) Batch(c echo.Context) error {
	var body struct {
		DoctorID       uint64 `json:"doctorId"`
		Days           int    `json:"days"`
		StartDate      string `json:"startDate"`
		EndDate        string `json:"endDate"`
		MorningSlots   *int   `json:"morningSlots"`
		AfternoonSlots *int   `json:"afternoonSlots"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.DoctorID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "doctorId is required"})
	}
	if body.MorningSlots == nil && body.AfternoonSlots == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "morningSlots or afternoonSlots is required"})
	}
	if (body.MorningSlots != nil && *body.MorningSlots < 0) ||
		(body.AfternoonSlots != nil && *body.AfternoonSlots < 0) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slot counts must not be negative"})
	}

	dates, errMsg := expandDates(body.Days, body.StartDate, body.EndDate)
	if errMsg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": errMsg})
	}

	if err := h.Schedules.UpsertRange(c.Request().Context(), body.DoctorID, dates, body.MorningSlots, body.AfternoonSlots); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save schedules"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "dates": len(dates)})
}

// List handles GET /api/admin/schedules.  With doctorId, startDate and
// endDate all present the response is the merged day-by-day calendar
// view; otherwise it is the flat row listing joined with doctor names.
func (h *AdminScheduleHandler) List(c echo.Context) error {
	var doctorID uint64
	if raw := c.QueryParam("doctorId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid doctorId"})
		}
		doctorID = id
	}
	startDate := c.QueryParam("startDate")
	endDate := c.QueryParam("endDate")
	for _, d := range []string{startDate, endDate} {
		if d != "" {
			if _, err := time.Parse("2006-01-02", d); err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "dates must be YYYY-MM-DD"})
			}
		}
	}

	rows, err := h.Schedules.AdminList(c.Request().Context(), doctorID, startDate, endDate)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load schedules"})
	}

	if doctorID != 0 && startDate != "" && endDate != "" {
		days, errMsg := mergeScheduleRange(doctorID, startDate, endDate, rows)
		if errMsg != "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": errMsg})
		}
		return c.JSON(http.StatusOK, echo.Map{"days": days})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rows})
}

// UpdateOne handles POST /api/admin/schedules/updateOne: a full reset of
// one schedule row identified by its id.
func (h *AdminScheduleHandler) UpdateOne(c echo.Context) error {
	var body struct {
		ScheduleID uint64 `json:"scheduleId"`
		TotalSlots int    `json:"totalSlots"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.ScheduleID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "scheduleId is required"})
	}
	if body.TotalSlots < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "totalSlots must not be negative"})
	}
	if err := h.Schedules.ResetByID(c.Request().Context(), body.ScheduleID, body.TotalSlots); err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update schedule"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// batchRangeLimit bounds how many days one batch request may configure.
const batchRangeLimit = 90

// expandDates resolves a batch request's date selection into a list of
// ISO dates.  Days takes precedence when both forms are supplied.
func expandDates(days int, startDate, endDate string) ([]string, string) {
	if days > 0 {
		if days > batchRangeLimit {
			return nil, "days must not exceed 90"
		}
		today := time.Now().UTC()
		dates := make([]string, 0, days)
		for i := 0; i < days; i++ {
			dates = append(dates, today.AddDate(0, 0, i).Format("2006-01-02"))
		}
		return dates, ""
	}

	if startDate == "" || endDate == "" {
		return nil, "days or startDate and endDate are required"
	}
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, "startDate must be YYYY-MM-DD"
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, "endDate must be YYYY-MM-DD"
	}
	if end.Before(start) {
		return nil, "endDate must not be before startDate"
	}
	if end.Sub(start) > batchRangeLimit*24*time.Hour {
		return nil, "date range must not exceed 90 days"
	}
	dates := make([]string, 0)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format("2006-01-02"))
	}
	return dates, ""
}

// mergeScheduleRange folds flat schedule rows into one entry per
// calendar day between startDate and endDate inclusive.  Days without a
// configured period keep zero slots and a nil id so the console can
// render a contiguous calendar and tell "no row" apart from "zero
// capacity".
func mergeScheduleRange(doctorID uint64, startDate, endDate string, rows []model.AdminScheduleRow) ([]model.ScheduleDay, string) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, "startDate must be YYYY-MM-DD"
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, "endDate must be YYYY-MM-DD"
	}
	if end.Before(start) {
		return nil, "endDate must not be before startDate"
	}

	byDate := make(map[string][]model.AdminScheduleRow, len(rows))
	for _, row := range rows {
		byDate[row.ScheduleDate] = append(byDate[row.ScheduleDate], row)
	}

	days := make([]model.ScheduleDay, 0)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		day := model.ScheduleDay{Date: date, DoctorID: doctorID}
		for _, row := range byDate[date] {
			id := row.ID
			switch row.Period {
			case model.PeriodMorning:
				day.MorningSlots = row.TotalSlots
				day.MorningID = &id
			case model.PeriodAfternoon:
				day.AfternoonSlots = row.TotalSlots
				day.AfternoonID = &id
			}
		}
		days = append(days, day)
	}
	return days, ""
}
