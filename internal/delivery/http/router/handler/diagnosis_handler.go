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

// DiagnosisHandlerParams holds dependencies for DiagnosisHandler, injected by Fx.
type DiagnosisHandlerParams struct {
	fx.In

	DiagnosisUC usecase.DiagnosisUsecase
	Logger      *slog.Logger
}

// DiagnosisHandler holds dependencies for diagnosis-related handlers.
type DiagnosisHandler struct {
	diagnosisUC usecase.DiagnosisUsecase
	logger      *slog.Logger
}

// NewDiagnosisHandler is the constructor for DiagnosisHandler.
func NewDiagnosisHandler(params DiagnosisHandlerParams) *DiagnosisHandler {
	return &DiagnosisHandler{
		diagnosisUC: params.DiagnosisUC,
		logger:      params.Logger,
	}
}

// CreateDiagnosisRequest represents the request body for recording a diagnosis.
type CreateDiagnosisRequest struct {
	PatientID     string   `json:"patient_id" validate:"required,uuid"`
	AppointmentID string   `json:"appointment_id" validate:"omitempty,uuid"`
	Diagnosis     string   `json:"diagnosis" validate:"required"`
	Symptoms      string   `json:"symptoms"`
	TreatmentPlan string   `json:"treatment_plan"`
	Notes         string   `json:"notes"`
	Prescriptions []string `json:"prescriptions"`
	FollowUpDate  string   `json:"follow_up_date"`
}

// Create handles a doctor recording a diagnosis for a patient under their care.
func (h *DiagnosisHandler) Create(c echo.Context) error {
	doctorID, err := getUserID(c)
	if err != nil {
		return err
	}

	var req CreateDiagnosisRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid diagnosis input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid patient ID")
	}

	input := &usecase.CreateDiagnosisInput{
		PatientID:     patientID,
		Diagnosis:     req.Diagnosis,
		Symptoms:      req.Symptoms,
		TreatmentPlan: req.TreatmentPlan,
		Notes:         req.Notes,
		Prescriptions: req.Prescriptions,
		FollowUpDate:  req.FollowUpDate,
	}
	if req.AppointmentID != "" {
		appointmentID, err := uuid.Parse(req.AppointmentID)
		if err != nil {
			return response.BadRequest(c, "INVALID_ID", "Invalid appointment ID")
		}
		input.AppointmentID = &appointmentID
	}

	diagnosis, err := h.diagnosisUC.Create(c.Request().Context(), doctorID, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newDiagnosisView(diagnosis))
}

// Update handles the authoring doctor amending an existing diagnosis.
func (h *DiagnosisHandler) Update(c echo.Context) error {
	doctorID, err := getUserID(c)
	if err != nil {
		return err
	}

	diagnosisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid diagnosis ID")
	}

	var input usecase.UpdateDiagnosisInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid diagnosis input")
	}

	diagnosis, err := h.diagnosisUC.Update(c.Request().Context(), doctorID, diagnosisID, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newDiagnosisView(diagnosis))
}

// List returns the calling doctor's diagnoses, narrowed to one patient when
// the patient_id query parameter is present.
func (h *DiagnosisHandler) List(c echo.Context) error {
	doctorID, err := getUserID(c)
	if err != nil {
		return err
	}

	var patientID *uuid.UUID
	if raw := c.QueryParam("patient_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_ID", "Invalid patient_id query parameter")
		}
		patientID = &parsed
	}

	diagnoses, err := h.diagnosisUC.ListForDoctor(c.Request().Context(), doctorID, patientID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newDiagnosisViews(diagnoses))
}
