// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"medcare/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAppointmentNotFound is a domain-specific error returned when an appointment is not found.
var ErrAppointmentNotFound = errors.New("appointment not found")

// AppointmentRepository defines the standard operations for appointment persistence.
// Appointments are never deleted; status transitions are the only lifecycle mutation.
type AppointmentRepository interface {
	// FindByID retrieves a single appointment by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)

	// FindByPatient retrieves all appointments booked by the given patient, newest first.
	FindByPatient(ctx context.Context, patientID uuid.UUID) ([]*entity.Appointment, error)

	// FindByDoctor retrieves all appointments assigned to the given doctor, newest first.
	FindByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*entity.Appointment, error)

	// CountActiveAtSlot counts non-cancelled appointments occupying the exact
	// (doctor, date, time) slot. Zero means the slot is available.
	CountActiveAtSlot(ctx context.Context, doctorID uuid.UUID, date, timeOfDay string) (int64, error)

	// ExistsBetween reports whether any appointment links the doctor and the
	// patient. When includeCancelled is true, cancelled appointments count too.
	ExistsBetween(ctx context.Context, doctorID, patientID uuid.UUID, includeCancelled bool) (bool, error)

	// DistinctPatientIDs returns the de-duplicated patient IDs across all of
	// the doctor's appointments.
	DistinctPatientIDs(ctx context.Context, doctorID uuid.UUID) ([]uuid.UUID, error)

	// Create persists a new appointment. The storage layer enforces slot
	// exclusivity with a partial unique index over non-cancelled rows.
	Create(ctx context.Context, appointment *entity.Appointment) error

	// Update modifies an existing appointment.
	Update(ctx context.Context, appointment *entity.Appointment) error
}
