// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"medcare/internal/delivery/http/middleware"
	"medcare/internal/delivery/http/router/handler"
	"medcare/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	HealthHandler      *handler.HealthHandler
	AuthHandler        *handler.AuthHandler
	ProfileHandler     *handler.ProfileHandler
	AppointmentHandler *handler.AppointmentHandler
	RecordHandler      *handler.RecordHandler
	DiagnosisHandler   *handler.DiagnosisHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	healthHandler      *handler.HealthHandler
	authHandler        *handler.AuthHandler
	profileHandler     *handler.ProfileHandler
	appointmentHandler *handler.AppointmentHandler
	recordHandler      *handler.RecordHandler
	diagnosisHandler   *handler.DiagnosisHandler
	authMiddleware     *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		healthHandler:      params.HealthHandler,
		authHandler:        params.AuthHandler,
		profileHandler:     params.ProfileHandler,
		appointmentHandler: params.AppointmentHandler,
		recordHandler:      params.RecordHandler,
		diagnosisHandler:   params.DiagnosisHandler,
		authMiddleware:     params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/api/health", r.healthHandler.Check)

	// Auth routes
	authGroup := e.Group("/api/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
	}

	// Patient routes that require authentication and the "patient" role
	patientGroup := e.Group("/api/patient")
	patientGroup.Use(r.authMiddleware.Authenticate)                    // First, check if logged in
	patientGroup.Use(r.authMiddleware.RequireRole(entity.RolePatient)) // Then, check for the role
	{
		patientGroup.GET("/profile", r.profileHandler.GetMyProfile)
		patientGroup.PUT("/profile", r.profileHandler.UpdatePatientProfile)

		patientGroup.GET("/doctors", r.profileHandler.ListDoctors)

		patientGroup.POST("/appointments", r.appointmentHandler.Book)
		patientGroup.GET("/appointments", r.appointmentHandler.ListMine)
		patientGroup.GET("/appointments/:id", r.appointmentHandler.GetDetails)
		patientGroup.POST("/appointments/:id/payment", r.appointmentHandler.Pay)

		patientGroup.POST("/medical-records", r.recordHandler.Upload)
		patientGroup.GET("/medical-records", r.recordHandler.ListMine)
		patientGroup.GET("/medical-records/:id/download", r.recordHandler.Download)
	}

	// Doctor routes that require authentication and the "doctor" role
	doctorGroup := e.Group("/api/doctor")
	doctorGroup.Use(r.authMiddleware.Authenticate)
	doctorGroup.Use(r.authMiddleware.RequireRole(entity.RoleDoctor))
	{
		doctorGroup.GET("/profile", r.profileHandler.GetMyProfile)
		doctorGroup.PUT("/profile", r.profileHandler.UpdateDoctorProfile)

		doctorGroup.GET("/patients", r.profileHandler.ListMyPatients)
		doctorGroup.GET("/patients/:id", r.profileHandler.GetPatientDetails)

		doctorGroup.GET("/appointments", r.appointmentHandler.ListSchedule)
		doctorGroup.GET("/appointments/:id", r.appointmentHandler.GetDetails)
		doctorGroup.PUT("/appointments/:id/status", r.appointmentHandler.UpdateStatus)

		doctorGroup.GET("/medical-records", r.recordHandler.ListForPatient)
		doctorGroup.GET("/medical-records/:id/download", r.recordHandler.Download)
		doctorGroup.PUT("/medical-records/:id/review", r.recordHandler.Review)

		doctorGroup.POST("/diagnoses", r.diagnosisHandler.Create)
		doctorGroup.GET("/diagnoses", r.diagnosisHandler.List)
		doctorGroup.PUT("/diagnoses/:id", r.diagnosisHandler.Update)
	}
}
