// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"medcare/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrMedicalRecordNotFound is a domain-specific error returned when a medical record is not found.
var ErrMedicalRecordNotFound = errors.New("medical record not found")

// MedicalRecordRepository defines the standard operations for medical record persistence.
type MedicalRecordRepository interface {
	// FindByID retrieves a single medical record by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.MedicalRecord, error)

	// FindByPatient retrieves all records owned by the given patient, newest first.
	FindByPatient(ctx context.Context, patientID uuid.UUID) ([]*entity.MedicalRecord, error)

	// Create persists a new medical record.
	Create(ctx context.Context, record *entity.MedicalRecord) error

	// Update modifies an existing medical record (review fields only in practice).
	Update(ctx context.Context, record *entity.MedicalRecord) error
}
