package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/wenqianzh/medpoint-backend/internal/avatar"
	"github.com/wenqianzh/medpoint-backend/internal/model"
	"github.com/wenqianzh/medpoint-backend/internal/repository"
)

// AdminDoctorHandler manages doctor profiles from the admin console.
// All routes sit behind the admin JWT middleware.  Avatar payloads are
// run through the compression pipeline on write and wrapped in a
// data-URI on read, which is the form the console renders directly.
type AdminDoctorHandler struct {
	Doctors *repository.DoctorRepo
}

// NewAdminDoctorHandler constructs an AdminDoctorHandler.  The
// repository must be non-nil.
func NewAdminDoctorHandler(doctors *repository.DoctorRepo) *AdminDoctorHandler {
	if doctors == nil {
		panic("nil repository passed to NewAdminDoctorHandler")
	}
	return &AdminDoctorHandler{Doctors: doctors}
}

// doctorRequest is the JSON body shared by Create and Update.
type doctorRequest struct {
	Name            string  `json:"name"`
	Title           string  `json:"title"`
	Expertise       string  `json:"expertise"`
	Intro           string  `json:"intro"`
	HospitalID      string  `json:"hospitalId"`
	HospitalName    string  `json:"hospitalName"`
	DepartmentName  string  `json:"departmentName"`
	AvatarImage     string  `json:"avatarImage"`
	RegistrationFee float64 `json:"registrationFee"`
}

func (r *doctorRequest) validate() string {
	switch {
	case r.Name == "":
		return "name is required"
	case r.HospitalName == "":
		return "hospitalName is required"
	case r.DepartmentName == "":
		return "departmentName is required"
	case r.RegistrationFee < 0:
		return "registrationFee must not be negative"
	}
	return ""
}

// Create handles POST /api/admin/doctors.  An avatar supplied inline is
// compressed before storage; an undecodable avatar payload is a client
// error rather than being stored broken.
func (h *AdminDoctorHandler) Create(c echo.Context) error {
	var body doctorRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	var avatarB64 string
	if avatar.Normalize(body.AvatarImage) != "" {
		processed, err := avatar.Process(body.AvatarImage)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid avatar payload"})
		}
		avatarB64 = processed
	}

	doctor := &model.Doctor{
		Name:            body.Name,
		Title:           body.Title,
		Expertise:       body.Expertise,
		Intro:           body.Intro,
		HospitalID:      body.HospitalID,
		HospitalName:    body.HospitalName,
		DepartmentName:  body.DepartmentName,
		AvatarImage:     avatarB64,
		RegistrationFee: body.RegistrationFee,
	}
	if err := h.Doctors.Create(c.Request().Context(), doctor); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create doctor"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": doctor})
}

// GetInfo handles GET /api/admin/doctors/:id.
func (h *AdminDoctorHandler) GetInfo(c echo.Context) error {
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

// ModifyInfo handles PUT /api/admin/doctors/:id.  Only profile fields
// are updated here; the avatar has its own endpoint so profile edits
// never have to re-upload the image.
func (h *AdminDoctorHandler) ModifyInfo(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid doctor id"})
	}
	var body doctorRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	doctor := &model.Doctor{
		ID:              id,
		Name:            body.Name,
		Title:           body.Title,
		Expertise:       body.Expertise,
		Intro:           body.Intro,
		HospitalID:      body.HospitalID,
		HospitalName:    body.HospitalName,
		DepartmentName:  body.DepartmentName,
		RegistrationFee: body.RegistrationFee,
	}
	if err := h.Doctors.Update(c.Request().Context(), doctor); err != nil {
		if errors.Is(err, repository.ErrDoctorNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "doctor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update doctor"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// ModifyImage handles PUT /api/admin/doctors/:id/avatar.  The body
// carries the avatar as base64 or a data-URI string.
func (h *AdminDoctorHandler) ModifyImage(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid doctor id"})
	}
	var body struct {
		AvatarImage string `json:"avatarImage"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	processed, err := avatar.Process(body.AvatarImage)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid avatar payload"})
	}
	if err := h.Doctors.UpdateAvatar(c.Request().Context(), id, processed); err != nil {
		if errors.Is(err, repository.ErrDoctorNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "doctor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update avatar"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// GetImage handles GET /api/admin/doctors/:id/avatar.  Unlike the
// public binary endpoint this returns the data-URI form the console
// preview expects, and an empty string when no avatar is stored.
func (h *AdminDoctorHandler) GetImage(c echo.Context) error {
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
	return c.JSON(http.StatusOK, echo.Map{"avatarImage": avatar.DataURI(b64)})
}

// Delete handles DELETE /api/admin/doctors/:id.  Existing appointments
// keep their denormalized snapshot, so history survives the deletion.
func (h *AdminDoctorHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid doctor id"})
	}
	if err := h.Doctors.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrDoctorNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "doctor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete doctor"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
