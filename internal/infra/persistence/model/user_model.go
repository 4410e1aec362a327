package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	Name         string    `gorm:"type:varchar(100);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(10);not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	PatientProfile *PatientProfileModel `gorm:"foreignKey:UserID"`
	DoctorProfile  *DoctorProfileModel  `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// PatientProfileModel mirrors the 'patient_profiles' table. UserID references users.id (UUID).
type PatientProfileModel struct {
	UserID             uuid.UUID `gorm:"primaryKey"`
	Phone              string    `gorm:"type:varchar(30)"`
	Address            string    `gorm:"type:text"`
	DateOfBirth        string    `gorm:"type:varchar(10)"`
	Gender             string    `gorm:"type:varchar(20)"`
	EmergencyContact   string    `gorm:"type:varchar(100)"`
	BloodType          string    `gorm:"type:varchar(10)"`
	Allergies          string    `gorm:"type:text"`
	MedicalHistory     string    `gorm:"type:text"`
	CurrentMedications string    `gorm:"type:text"`
	InsuranceInfo      string    `gorm:"type:text"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (PatientProfileModel) TableName() string {
	return "patient_profiles"
}

// DoctorProfileModel mirrors the 'doctor_profiles' table. UserID references users.id (UUID).
type DoctorProfileModel struct {
	UserID          uuid.UUID `gorm:"primaryKey"`
	Phone           string    `gorm:"type:varchar(30)"`
	Address         string    `gorm:"type:text"`
	Specialization  string    `gorm:"type:varchar(100);index"`
	LicenseNumber   string    `gorm:"type:varchar(100)"`
	Experience      string    `gorm:"type:varchar(100)"`
	Education       string    `gorm:"type:text"`
	Certifications  string    `gorm:"type:text"`
	ConsultationFee float64   `gorm:"type:numeric(10,2)"`
	WorkingHours    string    `gorm:"type:varchar(100)"`
	Bio             string    `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (DoctorProfileModel) TableName() string {
	return "doctor_profiles"
}
