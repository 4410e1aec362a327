// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a unique "person" or "account".
// It contains only the most fundamental identity information shared across all roles.
type User struct {
	ID             uuid.UUID       // The Global Unique Identifier (GUID) for the user.
	Email          string          // The user's primary contact email, used as the login identifier. Unique system-wide.
	Name           string          // The user's display name or real name.
	PasswordHash   string          // The bcrypt-hashed login password. Never serialized outward.
	Role           Role            // The account role, fixed at registration. Exactly one of patient or doctor.
	PatientProfile *PatientProfile // A pointer to the patient-specific profile. Nil unless Role is patient.
	DoctorProfile  *DoctorProfile  // A pointer to the doctor-specific profile. Nil unless Role is doctor.
	CreatedAt      time.Time       // Timestamp of when this user account was created.
	UpdatedAt      time.Time       // Timestamp of the last modification to this user's data.
}

// PatientProfile holds data specific to the "patient" role.
type PatientProfile struct {
	UserID             uuid.UUID // Foreign Key that links this profile to a core User entity.
	Phone              string
	Address            string
	DateOfBirth        string // ISO date (YYYY-MM-DD), empty when the patient has not provided it.
	Gender             string
	EmergencyContact   string
	BloodType          string
	Allergies          string
	MedicalHistory     string
	CurrentMedications string
	InsuranceInfo      string
	UpdatedAt          time.Time // Timestamp of the last modification to this profile.
}

// DoctorProfile holds data specific to the "doctor" role.
type DoctorProfile struct {
	UserID          uuid.UUID // Foreign Key that links this profile to a core User entity.
	Phone           string
	Address         string
	Specialization  string
	LicenseNumber   string
	Experience      string
	Education       string
	Certifications  string
	ConsultationFee float64 // Fee charged per appointment. Zero means "not configured"; booking falls back to DefaultConsultationFee.
	WorkingHours    string
	Bio             string
	UpdatedAt       time.Time // Timestamp of the last modification to this profile.
}
