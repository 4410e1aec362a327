package usecase

import (
	"context"

	"medcare/internal/domain/entity"

	"github.com/google/uuid"
)

// DiagnosisUsecase defines the interface for clinical diagnoses written by
// doctors for patients under their care.
type DiagnosisUsecase interface {
	Create(ctx context.Context, doctorID uuid.UUID, input *CreateDiagnosisInput) (*entity.Diagnosis, error)
	Update(ctx context.Context, doctorID uuid.UUID, diagnosisID uuid.UUID, input *UpdateDiagnosisInput) (*entity.Diagnosis, error)
	// ListForDoctor returns the doctor's diagnoses, narrowed to one patient
	// when patientID is set.
	ListForDoctor(ctx context.Context, doctorID uuid.UUID, patientID *uuid.UUID) ([]*entity.Diagnosis, error)
}

// --- Input DTOs ---

// CreateDiagnosisInput defines the data required to record a diagnosis.
type CreateDiagnosisInput struct {
	PatientID     uuid.UUID  `json:"patient_id"`
	AppointmentID *uuid.UUID `json:"appointment_id,omitempty"`
	Diagnosis     string     `json:"diagnosis"`
	Symptoms      string     `json:"symptoms,omitempty"`
	TreatmentPlan string     `json:"treatment_plan,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	Prescriptions []string   `json:"prescriptions,omitempty"`
	FollowUpDate  string     `json:"follow_up_date,omitempty"`
}

// UpdateDiagnosisInput defines the data required to amend a diagnosis.
// Nil fields are left unchanged.
type UpdateDiagnosisInput struct {
	Diagnosis     *string  `json:"diagnosis,omitempty"`
	Symptoms      *string  `json:"symptoms,omitempty"`
	TreatmentPlan *string  `json:"treatment_plan,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	Prescriptions []string `json:"prescriptions,omitempty"`
	FollowUpDate  *string  `json:"follow_up_date,omitempty"`
}
