package model

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentModel mirrors the 'appointments' table.
//
// The partial unique index on (doctor_id, date, time) is the authoritative
// guard against double booking: it covers every row whose status is not
// 'cancelled', so concurrent bookings for the same slot cannot both commit.
type AppointmentModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	PatientID       uuid.UUID `gorm:"type:uuid;not null;index"`
	DoctorID        uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uniq_active_doctor_slot,where:status <> 'cancelled'"`
	Date            string    `gorm:"type:varchar(10);not null;uniqueIndex:uniq_active_doctor_slot"`
	Time            string    `gorm:"type:varchar(5);not null;uniqueIndex:uniq_active_doctor_slot"`
	Reason          string    `gorm:"type:text"`
	Status          string    `gorm:"type:varchar(20);not null;default:'scheduled'"`
	ConsultationFee float64   `gorm:"type:numeric(10,2);not null"`
	PaymentStatus   string    `gorm:"type:varchar(10);not null;default:'unpaid'"`
	PaymentIntentID string    `gorm:"type:varchar(255)"`
	PaidAt          *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (AppointmentModel) TableName() string {
	return "appointments"
}
