// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"medcare/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileUsecase defines the interface for profile-related business operations.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdatePatientProfile(ctx context.Context, userID uuid.UUID, input *UpdatePatientProfileInput) (*entity.User, error)
	UpdateDoctorProfile(ctx context.Context, userID uuid.UUID, input *UpdateDoctorProfileInput) (*entity.User, error)
	ListDoctors(ctx context.Context) ([]*entity.User, error)
	ListDoctorPatients(ctx context.Context, doctorID uuid.UUID) ([]*entity.User, error)
	GetPatientDetails(ctx context.Context, doctorID uuid.UUID, patientID uuid.UUID) (*entity.User, error)
}

// --- Input DTOs ---

// UpdatePatientProfileInput defines the data required to update a patient
// profile. Nil fields are left unchanged.
type UpdatePatientProfileInput struct {
	Phone              *string `json:"phone,omitempty"`
	Address            *string `json:"address,omitempty"`
	DateOfBirth        *string `json:"date_of_birth,omitempty"`
	Gender             *string `json:"gender,omitempty"`
	EmergencyContact   *string `json:"emergency_contact,omitempty"`
	BloodType          *string `json:"blood_type,omitempty"`
	Allergies          *string `json:"allergies,omitempty"`
	MedicalHistory     *string `json:"medical_history,omitempty"`
	CurrentMedications *string `json:"current_medications,omitempty"`
	InsuranceInfo      *string `json:"insurance_info,omitempty"`
}

// UpdateDoctorProfileInput defines the data required to update a doctor
// profile. Nil fields are left unchanged.
type UpdateDoctorProfileInput struct {
	Phone           *string  `json:"phone,omitempty"`
	Address         *string  `json:"address,omitempty"`
	Specialization  *string  `json:"specialization,omitempty"`
	LicenseNumber   *string  `json:"license_number,omitempty"`
	Experience      *string  `json:"experience,omitempty"`
	Education       *string  `json:"education,omitempty"`
	Certifications  *string  `json:"certifications,omitempty"`
	ConsultationFee *float64 `json:"consultation_fee,omitempty"`
	WorkingHours    *string  `json:"working_hours,omitempty"`
	Bio             *string  `json:"bio,omitempty"`
}
