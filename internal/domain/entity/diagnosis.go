// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Diagnosis represents a clinical assessment written by a doctor for a
// patient, optionally tied to the appointment it resulted from. Only the
// creating doctor may mutate it afterwards.
type Diagnosis struct {
	ID            uuid.UUID
	PatientID     uuid.UUID
	DoctorID      uuid.UUID  // The creating doctor; also the only identity allowed to update.
	AppointmentID *uuid.UUID // The appointment this diagnosis resulted from, nil when written outside one.
	Diagnosis     string
	Symptoms      string
	TreatmentPlan string
	Notes         string
	Prescriptions []string
	FollowUpDate  string // ISO date (YYYY-MM-DD), empty when no follow-up is planned.
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
