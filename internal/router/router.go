package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/wenqianzh/medpoint-backend/internal/config"
	"github.com/wenqianzh/medpoint-backend/internal/handler"
	"github.com/wenqianzh/medpoint-backend/internal/middleware"
)

// Handlers bundles every constructed handler the router wires up.
type Handlers struct {
	Auth          *handler.AuthHandler
	Doctor        *handler.DoctorHandler
	Schedule      *handler.ScheduleHandler
	Appointment   *handler.AppointmentHandler
	AdminDoctor   *handler.AdminDoctorHandler
	AdminSchedule *handler.AdminScheduleHandler
}

// RegisterRoutes registers the full route tree on the provided Echo
// instance.  Public browse GETs sit behind the response cache, the
// booking and cancellation POSTs behind the rate limiter, and
// everything under /api/admin (login excepted) behind the admin JWT
// middleware.  Both Redis middlewares degrade to pass-through when no
// Redis client is supplied.
func RegisterRoutes(e *echo.Echo, cfg config.Config, rdb *redis.Client, h Handlers) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// Public browse endpoints.  The avatar endpoint manages its own
	// Cache-Control and stays outside the response cache so binary
	// bodies never share the JSON cache path.
	api := e.Group("/api")
	api.GET("/doctors", h.Doctor.List, cache)
	api.GET("/doctors/:id", h.Doctor.GetByID, cache)
	api.GET("/doctors/:id/avatar", h.Doctor.Avatar)
	api.GET("/doctors/:id/schedules", h.Schedule.ListForDoctor, cache)

	// Booking endpoints.  Listing is uncached: a patient checking
	// their appointment right after booking must see it.
	api.POST("/appointments", h.Appointment.Create, limit)
	api.POST("/appointments/cancel", h.Appointment.Cancel, limit)
	api.GET("/appointments", h.Appointment.List)
	api.GET("/appointments/:id", h.Appointment.GetByID)

	// Admin console.  Login lives outside the guarded group.
	e.POST("/api/admin/login", h.Auth.Login)

	admin := e.Group("/api/admin")
	admin.Use(middleware.AdminAuth(cfg.JWTSecret))
	admin.POST("/doctors", h.AdminDoctor.Create)
	admin.GET("/doctors/:id", h.AdminDoctor.GetInfo)
	admin.PUT("/doctors/:id", h.AdminDoctor.ModifyInfo)
	admin.PUT("/doctors/:id/avatar", h.AdminDoctor.ModifyImage)
	admin.GET("/doctors/:id/avatar", h.AdminDoctor.GetImage)
	admin.DELETE("/doctors/:id", h.AdminDoctor.Delete)

	admin.POST("/schedules", h.AdminSchedule.Save)
	admin.POST("/schedules/batch", h.AdminSchedule.Batch)
	admin.GET("/schedules", h.AdminSchedule.List)
	admin.POST("/schedules/updateOne", h.AdminSchedule.UpdateOne)
}
