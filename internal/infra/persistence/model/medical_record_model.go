package model

import (
	"time"

	"github.com/google/uuid"
)

// MedicalRecordModel mirrors the 'medical_records' table. The file content
// itself lives in blob storage; the row only keeps the object key and
// metadata about the upload.
type MedicalRecordModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	PatientID   uuid.UUID `gorm:"type:uuid;not null;index"`
	UploadedBy  string    `gorm:"type:varchar(10);not null"`
	FileKey     string    `gorm:"type:varchar(512);not null"`
	Filename    string    `gorm:"type:varchar(255);not null"`
	ContentType string    `gorm:"type:varchar(100)"`
	SizeBytes   int64     `gorm:"not null;default:0"`
	Checksum    string    `gorm:"type:varchar(64)"`
	Description string    `gorm:"type:text"`
	Reviewed    bool      `gorm:"not null;default:false"`
	ReviewedBy  *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt  *time.Time
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (MedicalRecordModel) TableName() string {
	return "medical_records"
}
