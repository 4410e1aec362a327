package impl

import (
	"context"

	domainerrors "medcare/internal/domain/errors"
	"medcare/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// relationshipIncludesCancelled widens the treatment relationship to any
// appointment ever booked between the two parties, cancelled ones included.
const relationshipIncludesCancelled = true

// ensureRelationship verifies the doctor shares at least one appointment with
// the patient. Access to patient data hangs off this single check.
func ensureRelationship(ctx context.Context, appointmentRepo repository.AppointmentRepository, doctorID, patientID uuid.UUID) error {
	exists, err := appointmentRepo.ExistsBetween(ctx, doctorID, patientID, relationshipIncludesCancelled)
	if err != nil {
		return errors.Wrap(err, "failed to check treatment relationship")
	}
	if !exists {
		return domainerrors.ErrRelationshipNotFound.WrapMessage("no appointment links this doctor and patient")
	}

	return nil
}
