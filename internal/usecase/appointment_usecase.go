package usecase

import (
	"context"

	"medcare/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentUsecase defines the interface for the appointment lifecycle:
// booking, listing, detail reads, status transitions and payment.
type AppointmentUsecase interface {
	Book(ctx context.Context, patientID uuid.UUID, input *BookAppointmentInput) (*entity.Appointment, error)
	ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*entity.Appointment, error)
	ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*entity.Appointment, error)
	GetDetails(ctx context.Context, actorID uuid.UUID, actorRole entity.Role, appointmentID uuid.UUID) (*AppointmentDetails, error)
	UpdateStatus(ctx context.Context, doctorID uuid.UUID, appointmentID uuid.UUID, input *UpdateAppointmentStatusInput) (*entity.Appointment, error)
	Pay(ctx context.Context, patientID uuid.UUID, appointmentID uuid.UUID, input *PayAppointmentInput) (*PayAppointmentOutput, error)
}

// --- Input DTOs ---

// BookAppointmentInput defines the data required to book an appointment slot.
type BookAppointmentInput struct {
	DoctorID uuid.UUID `json:"doctor_id"`
	Date     string    `json:"date"`
	Time     string    `json:"time"`
	Reason   string    `json:"reason,omitempty"`
}

// UpdateAppointmentStatusInput defines the data required to move an
// appointment to a new lifecycle status.
type UpdateAppointmentStatusInput struct {
	Status string `json:"status"`
}

// PayAppointmentInput defines the data required to settle the consultation fee.
type PayAppointmentInput struct {
	PaymentMethod string `json:"payment_method,omitempty"`
}

// --- Output DTOs ---

// AppointmentDetails bundles an appointment with the people involved and the
// diagnosis attached to it, if a doctor has written one.
type AppointmentDetails struct {
	Appointment *entity.Appointment
	Patient     *entity.User
	Doctor      *entity.User
	Diagnosis   *entity.Diagnosis
}

// PayAppointmentOutput returns the settled appointment together with the
// payment provider's intent reference.
type PayAppointmentOutput struct {
	Appointment     *entity.Appointment
	PaymentIntentID string
	PaymentStatus   string
}
