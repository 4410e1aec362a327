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

// ProfileHandlerParams holds dependencies for ProfileHandler, injected by Fx.
type ProfileHandlerParams struct {
	fx.In

	ProfileUC usecase.ProfileUsecase
	Logger    *slog.Logger
}

// ProfileHandler holds dependencies for profile and directory handlers.
type ProfileHandler struct {
	profileUC usecase.ProfileUsecase
	logger    *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler.
func NewProfileHandler(params ProfileHandlerParams) *ProfileHandler {
	return &ProfileHandler{
		profileUC: params.ProfileUC,
		logger:    params.Logger,
	}
}

// GetMyProfile returns the caller's account with its role profile loaded.
// It serves both the patient and the doctor profile routes.
func (h *ProfileHandler) GetMyProfile(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	user, err := h.profileUC.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newUserView(user))
}

// UpdatePatientProfile handles partial updates of the caller's patient profile.
func (h *ProfileHandler) UpdatePatientProfile(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var input *usecase.UpdatePatientProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	user, err := h.profileUC.UpdatePatientProfile(c.Request().Context(), userID, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newUserView(user))
}

// UpdateDoctorProfile handles partial updates of the caller's doctor profile.
func (h *ProfileHandler) UpdateDoctorProfile(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var input *usecase.UpdateDoctorProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	user, err := h.profileUC.UpdateDoctorProfile(c.Request().Context(), userID, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newUserView(user))
}

// ListDoctors returns the doctor directory for patients to browse.
func (h *ProfileHandler) ListDoctors(c echo.Context) error {
	doctors, err := h.profileUC.ListDoctors(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newUserViews(doctors))
}

// ListMyPatients returns every patient the calling doctor has ever had an
// appointment with.
func (h *ProfileHandler) ListMyPatients(c echo.Context) error {
	doctorID, err := getUserID(c)
	if err != nil {
		return err
	}

	patients, err := h.profileUC.ListDoctorPatients(c.Request().Context(), doctorID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newUserViews(patients))
}

// GetPatientDetails returns one patient's full profile to a treating doctor.
func (h *ProfileHandler) GetPatientDetails(c echo.Context) error {
	doctorID, err := getUserID(c)
	if err != nil {
		return err
	}

	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid patient ID")
	}

	patient, err := h.profileUC.GetPatientDetails(c.Request().Context(), doctorID, patientID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newUserView(patient))
}
