package handler

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/wenqianzh/medpoint-backend/internal/repository"
)

// defaultAvatarB64 is a 1x1 transparent PNG served when a doctor has no
// avatar of their own, so the directory UI always gets a decodable image.
const defaultAvatarB64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

// DoctorHandler serves the public doctor directory: listing with an
// optional keyword filter, the detail page and the avatar image.
type DoctorHandler struct {
	Doctors *repository.DoctorRepo
}

// NewDoctorHandler constructs a DoctorHandler.  The repository must be
// non-nil.
func NewDoctorHandler(doctors *repository.DoctorRepo) *DoctorHandler {
	if doctors == nil {
		panic("nil repository passed to NewDoctorHandler")
	}
	return &DoctorHandler{Doctors: doctors}
}

// List handles GET /api/doctors.  The optional "keyword" query filters
// by name or expertise; "summary=1" returns the lightweight projection
// without fee information.
func (h *DoctorHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	keyword := c.QueryParam("keyword")

	if c.QueryParam("summary") == "1" {
		items, err := h.Doctors.ListSummaries(ctx, keyword)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load doctors"})
		}
		return c.JSON(http.StatusOK, echo.Map{"items": items})
	}

	items, err := h.Doctors.List(ctx, keyword)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load doctors"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetByID handles GET /api/doctors/:id and returns the full doctor
// profile, or 404 when the id is unknown.
func (h *DoctorHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid doctor id"})
	}
	doctor, err := h.Doctors.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrDoctorNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "doctor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load doctor"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": doctor})
}

// Avatar handles GET /api/doctors/:id/avatar.  The stored base64 is
// decoded and served as binary with a long-lived Cache-Control so the
// browser does not refetch it per listing render.  Doctors without an
// avatar get the shared default image; only an unknown id is a 404.
func (h *DoctorHandler) Avatar(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid doctor id"})
	}
	b64, err := h.Doctors.GetAvatar(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrDoctorNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "doctor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load avatar"})
	}
	if b64 == "" {
		b64 = defaultAvatarB64
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		// A corrupt stored payload falls back to the default image
		// rather than breaking the directory page.
		data, _ = base64.StdEncoding.DecodeString(defaultAvatarB64)
	}
	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Blob(http.StatusOK, http.DetectContentType(data), data)
}
