// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// MedicalRecord represents a document uploaded by a patient, stored in the
// blob store and referenced here by key. Ownership is immutable; the only
// permitted mutation is the one-way review by a treating doctor.
type MedicalRecord struct {
	ID          uuid.UUID
	PatientID   uuid.UUID  // Owner of the record.
	UploadedBy  Role       // Role of the uploader at upload time.
	FileKey     string     // Key of the stored object in the blob store.
	Filename    string     // Original filename as supplied by the uploader.
	ContentType string
	SizeBytes   int64      // Object size in bytes.
	Checksum    string     // SHA-256 of the uploaded content.
	Description string
	Reviewed    bool       // One-way flag: false until a treating doctor reviews.
	ReviewedBy  *uuid.UUID // Doctor who performed the review, nil while unreviewed.
	ReviewedAt  *time.Time // When the review happened, nil while unreviewed.
	CreatedAt   time.Time
}
