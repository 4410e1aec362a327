package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "medcare/internal/delivery/context"
	"medcare/internal/domain/entity"
	domainerrors "medcare/internal/domain/errors"
	"medcare/internal/domain/repository"
	"medcare/internal/domain/service"
	"medcare/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// diagnosisService implements the DiagnosisUsecase interface.
type diagnosisService struct {
	diagnosisRepo   repository.DiagnosisRepository
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
	notifier        service.Notifier
	logger          *slog.Logger
}

// DiagnosisServiceParams holds dependencies for DiagnosisService, injected by Fx.
type DiagnosisServiceParams struct {
	fx.In

	DiagnosisRepo   repository.DiagnosisRepository
	AppointmentRepo repository.AppointmentRepository
	UserRepo        repository.UserRepository
	Notifier        service.Notifier
	Logger          *slog.Logger
}

// NewDiagnosisService is the constructor for diagnosisService. It receives all dependencies as interfaces.
func NewDiagnosisService(params DiagnosisServiceParams) usecase.DiagnosisUsecase {
	return &diagnosisService{
		diagnosisRepo:   params.DiagnosisRepo,
		appointmentRepo: params.AppointmentRepo,
		userRepo:        params.UserRepo,
		notifier:        params.Notifier,
		logger:          params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *diagnosisService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create records a diagnosis for a patient under the doctor's care. An
// optional appointment reference must belong to the same doctor and patient.
// The patient is emailed about the new diagnosis; delivery failures are
// logged and swallowed.
func (srv *diagnosisService) Create(ctx context.Context, doctorID uuid.UUID, input *usecase.CreateDiagnosisInput) (*entity.Diagnosis, error) {
	if input.Diagnosis == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("diagnosis text is required")
	}

	if err := ensureRelationship(ctx, srv.appointmentRepo, doctorID, input.PatientID); err != nil {
		return nil, err
	}

	if input.AppointmentID != nil {
		appointment, err := srv.appointmentRepo.FindByID(ctx, *input.AppointmentID)
		if err != nil {
			if errors.Is(err, repository.ErrAppointmentNotFound) {
				return nil, domainerrors.ErrNotFound.WrapMessage("appointment not found")
			}

			return nil, errors.Wrap(err, "failed to find referenced appointment")
		}
		if appointment.DoctorID != doctorID || appointment.PatientID != input.PatientID {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("appointment does not belong to this doctor and patient")
		}
	}

	srv.log(ctx).Info("Recording diagnosis",
		slog.Any("doctorID", doctorID), slog.Any("patientID", input.PatientID))

	diagnosis := &entity.Diagnosis{
		PatientID:     input.PatientID,
		DoctorID:      doctorID,
		AppointmentID: input.AppointmentID,
		Diagnosis:     input.Diagnosis,
		Symptoms:      input.Symptoms,
		TreatmentPlan: input.TreatmentPlan,
		Notes:         input.Notes,
		Prescriptions: input.Prescriptions,
		FollowUpDate:  input.FollowUpDate,
	}
	if err := srv.diagnosisRepo.Create(ctx, diagnosis); err != nil {
		return nil, errors.Wrap(err, "failed to create diagnosis")
	}

	srv.notifyPatient(ctx, diagnosis)

	return diagnosis, nil
}

// Update amends a diagnosis. Only the doctor who wrote it may change it.
func (srv *diagnosisService) Update(ctx context.Context, doctorID uuid.UUID, diagnosisID uuid.UUID, input *usecase.UpdateDiagnosisInput) (*entity.Diagnosis, error) {
	diagnosis, err := srv.diagnosisRepo.FindByID(ctx, diagnosisID)
	if err != nil {
		if errors.Is(err, repository.ErrDiagnosisNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("diagnosis not found")
		}

		return nil, errors.Wrap(err, "failed to find diagnosis")
	}

	if diagnosis.DoctorID != doctorID {
		return nil, domainerrors.ErrAccessDenied.WrapMessage("diagnosis was written by another doctor")
	}

	applyDiagnosisUpdate(diagnosis, input)
	if err := srv.diagnosisRepo.Update(ctx, diagnosis); err != nil {
		return nil, errors.Wrap(err, "failed to update diagnosis")
	}

	srv.log(ctx).Debug("Diagnosis updated", slog.Any("diagnosisID", diagnosisID))

	return diagnosis, nil
}

// ListForDoctor returns the doctor's diagnoses, narrowed to one patient when
// patientID is set. The patient-scoped listing is relationship-gated.
func (srv *diagnosisService) ListForDoctor(ctx context.Context, doctorID uuid.UUID, patientID *uuid.UUID) ([]*entity.Diagnosis, error) {
	if patientID == nil {
		diagnoses, err := srv.diagnosisRepo.FindByDoctor(ctx, doctorID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list diagnoses")
		}

		return diagnoses, nil
	}

	if err := ensureRelationship(ctx, srv.appointmentRepo, doctorID, *patientID); err != nil {
		return nil, err
	}

	diagnoses, err := srv.diagnosisRepo.FindByDoctorAndPatient(ctx, doctorID, *patientID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list patient diagnoses")
	}

	return diagnoses, nil
}

// notifyPatient emails the patient about a new diagnosis. Never fails the
// calling operation.
func (srv *diagnosisService) notifyPatient(ctx context.Context, diagnosis *entity.Diagnosis) {
	patient, err := srv.userRepo.FindByID(ctx, diagnosis.PatientID)
	if err != nil {
		srv.log(ctx).Warn("Skipping diagnosis notification",
			slog.Any("patientID", diagnosis.PatientID), slog.Any("error", err))

		return
	}

	doctorName := "your doctor"
	if doctor, err := srv.userRepo.FindByID(ctx, diagnosis.DoctorID); err == nil {
		doctorName = doctor.Name
	}

	msg := service.Message{
		To:      patient.Email,
		Subject: "A new diagnosis has been added to your chart",
		Text: fmt.Sprintf("Hello %s,\r\n\r\n%s has recorded a new diagnosis for you: %s.\r\n"+
			"Log in to review the full details and treatment plan.\r\n", patient.Name, doctorName, diagnosis.Diagnosis),
	}
	if err := srv.notifier.Send(ctx, msg); err != nil {
		srv.log(ctx).Warn("Failed to send diagnosis notification",
			slog.String("to", patient.Email), slog.Any("error", err))
	}
}

// --- Helper Functions ---

func applyDiagnosisUpdate(diagnosis *entity.Diagnosis, input *usecase.UpdateDiagnosisInput) {
	if input.Diagnosis != nil {
		diagnosis.Diagnosis = *input.Diagnosis
	}
	if input.Symptoms != nil {
		diagnosis.Symptoms = *input.Symptoms
	}
	if input.TreatmentPlan != nil {
		diagnosis.TreatmentPlan = *input.TreatmentPlan
	}
	if input.Notes != nil {
		diagnosis.Notes = *input.Notes
	}
	if input.Prescriptions != nil {
		diagnosis.Prescriptions = input.Prescriptions
	}
	if input.FollowUpDate != nil {
		diagnosis.FollowUpDate = *input.FollowUpDate
	}
}
