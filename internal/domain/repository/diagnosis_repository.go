// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"medcare/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrDiagnosisNotFound is a domain-specific error returned when a diagnosis is not found.
var ErrDiagnosisNotFound = errors.New("diagnosis not found")

// DiagnosisRepository defines the standard operations for diagnosis persistence.
type DiagnosisRepository interface {
	// FindByID retrieves a single diagnosis by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Diagnosis, error)

	// FindByDoctor retrieves all diagnoses written by the given doctor, newest first.
	FindByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*entity.Diagnosis, error)

	// FindByDoctorAndPatient retrieves the diagnoses the given doctor wrote for
	// the given patient, newest first.
	FindByDoctorAndPatient(ctx context.Context, doctorID, patientID uuid.UUID) ([]*entity.Diagnosis, error)

	// FindByAppointment retrieves the diagnosis referencing the given
	// appointment, or ErrDiagnosisNotFound when none does.
	FindByAppointment(ctx context.Context, appointmentID uuid.UUID) (*entity.Diagnosis, error)

	// Create persists a new diagnosis.
	Create(ctx context.Context, diagnosis *entity.Diagnosis) error

	// Update modifies an existing diagnosis.
	Update(ctx context.Context, diagnosis *entity.Diagnosis) error
}
