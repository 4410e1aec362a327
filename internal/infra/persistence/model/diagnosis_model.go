package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DiagnosisModel mirrors the 'diagnoses' table. Prescriptions are stored as
// a JSONB array since they are always read and written as a whole.
type DiagnosisModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	PatientID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	DoctorID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	AppointmentID *uuid.UUID `gorm:"type:uuid;index"`
	Diagnosis     string     `gorm:"type:text;not null"`
	Symptoms      string     `gorm:"type:text"`
	TreatmentPlan string     `gorm:"type:text"`
	Notes         string     `gorm:"type:text"`
	Prescriptions datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	FollowUpDate  string     `gorm:"type:varchar(10)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (DiagnosisModel) TableName() string {
	return "diagnoses"
}
