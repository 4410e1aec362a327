package handler

import (
	"log/slog"
	"net/http"

	"medcare/internal/delivery/http/response"
	"medcare/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AppointmentHandlerParams holds dependencies for AppointmentHandler, injected by Fx.
type AppointmentHandlerParams struct {
	fx.In

	AppointmentUC usecase.AppointmentUsecase
	Logger        *slog.Logger
}

// AppointmentHandler holds dependencies for appointment-related handlers.
type AppointmentHandler struct {
	appointmentUC usecase.AppointmentUsecase
	logger        *slog.Logger
}

// NewAppointmentHandler is the constructor for AppointmentHandler.
func NewAppointmentHandler(params AppointmentHandlerParams) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUC: params.AppointmentUC,
		logger:        params.Logger,
	}
}

// BookAppointmentRequest represents the request body for booking a slot.
type BookAppointmentRequest struct {
	DoctorID string `json:"doctor_id" validate:"required,uuid"`
	Date     string `json:"date" validate:"required"`
	Time     string `json:"time" validate:"required"`
	Reason   string `json:"reason"`
}

// UpdateStatusRequest represents the request body for a status transition.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// PayAppointmentRequest represents the request body for settling the fee.
type PayAppointmentRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// Book handles a patient booking a consultation slot.
func (h *AppointmentHandler) Book(c echo.Context) error {
	patientID, err := getUserID(c)
	if err != nil {
		return err
	}

	var req BookAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid booking input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid doctor ID")
	}

	appointment, err := h.appointmentUC.Book(c.Request().Context(), patientID, &usecase.BookAppointmentInput{
		DoctorID: doctorID,
		Date:     req.Date,
		Time:     req.Time,
		Reason:   req.Reason,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newAppointmentView(appointment))
}

// ListMine returns the calling patient's appointments, newest first.
func (h *AppointmentHandler) ListMine(c echo.Context) error {
	patientID, err := getUserID(c)
	if err != nil {
		return err
	}

	appointments, err := h.appointmentUC.ListForPatient(c.Request().Context(), patientID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAppointmentViews(appointments))
}

// ListSchedule returns the calling doctor's appointments, newest first.
func (h *AppointmentHandler) ListSchedule(c echo.Context) error {
	doctorID, err := getUserID(c)
	if err != nil {
		return err
	}

	appointments, err := h.appointmentUC.ListForDoctor(c.Request().Context(), doctorID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAppointmentViews(appointments))
}

// GetDetails returns one appointment with both parties and any diagnosis
// attached. Patients and doctors may only see their own appointments.
func (h *AppointmentHandler) GetDetails(c echo.Context) error {
	actorID, err := getUserID(c)
	if err != nil {
		return err
	}

	actorRole, err := getRole(c)
	if err != nil {
		return err
	}

	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid appointment ID")
	}

	details, err := h.appointmentUC.GetDetails(c.Request().Context(), actorID, actorRole, appointmentID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAppointmentDetailsView(details))
}

// UpdateStatus handles a doctor moving an appointment through its lifecycle.
func (h *AppointmentHandler) UpdateStatus(c echo.Context) error {
	doctorID, err := getUserID(c)
	if err != nil {
		return err
	}

	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid appointment ID")
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	appointment, err := h.appointmentUC.UpdateStatus(c.Request().Context(), doctorID, appointmentID, &usecase.UpdateAppointmentStatusInput{
		Status: req.Status,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAppointmentView(appointment))
}

// Pay handles a patient settling the consultation fee of their appointment.
func (h *AppointmentHandler) Pay(c echo.Context) error {
	patientID, err := getUserID(c)
	if err != nil {
		return err
	}

	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid appointment ID")
	}

	var req PayAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment input")
	}

	output, err := h.appointmentUC.Pay(c.Request().Context(), patientID, appointmentID, &usecase.PayAppointmentInput{
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, PaymentView{
		Appointment:     newAppointmentView(output.Appointment),
		PaymentIntentID: output.PaymentIntentID,
		PaymentStatus:   output.PaymentStatus,
	})
}
