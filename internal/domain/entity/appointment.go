// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	// AppointmentScheduled is the initial state of every booked appointment.
	AppointmentScheduled AppointmentStatus = "scheduled"
	// AppointmentCompleted marks a visit that took place.
	AppointmentCompleted AppointmentStatus = "completed"
	// AppointmentCancelled frees the slot for rebooking.
	AppointmentCancelled AppointmentStatus = "cancelled"
	// AppointmentNoShow marks a visit the patient missed.
	AppointmentNoShow AppointmentStatus = "no-show"
)

// String returns the string representation of the status.
func (s AppointmentStatus) String() string {
	return string(s)
}

// IsValid checks if the status is one of the recognized states.
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled, AppointmentNoShow:
		return true
	default:
		return false
	}
}

// allowTerminalStatusChange permits transitions out of completed, cancelled
// and no-show. Kept unrestricted pending product confirmation; flipping it
// pins those states as terminal.
const allowTerminalStatusChange = true

// CanTransitionTo reports whether the status may move to next.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if !next.IsValid() {
		return false
	}
	if !allowTerminalStatusChange && s != AppointmentScheduled {
		return false
	}

	return true
}

// PaymentStatus represents whether the consultation fee has been captured.
type PaymentStatus string

const (
	// PaymentUnpaid is the initial payment state of every appointment.
	PaymentUnpaid PaymentStatus = "unpaid"
	// PaymentPaid is set once a payment intent succeeded.
	PaymentPaid PaymentStatus = "paid"
)

// String returns the string representation of the payment status.
func (s PaymentStatus) String() string {
	return string(s)
}

const (
	// DateLayout is the wire format of appointment dates.
	DateLayout = "2006-01-02"
	// TimeLayout is the wire format of appointment times.
	TimeLayout = "15:04"

	// DefaultConsultationFee applies when a doctor has not configured a fee.
	DefaultConsultationFee = 100
)

// Appointment represents a booked consultation slot between a patient and a doctor.
// The (DoctorID, Date, Time) triple is unique among non-cancelled appointments;
// appointments are never deleted, only transitioned.
type Appointment struct {
	ID              uuid.UUID
	PatientID       uuid.UUID
	DoctorID        uuid.UUID
	Date            string // Appointment date in DateLayout.
	Time            string // Appointment time in TimeLayout.
	Reason          string
	Status          AppointmentStatus
	ConsultationFee float64
	PaymentStatus   PaymentStatus
	PaymentIntentID string     // Provider reference of the captured payment, empty while unpaid.
	PaidAt          *time.Time // When the fee was captured, nil while unpaid.
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
