package usecase

import (
	"context"
	"io"
	"time"

	"medcare/internal/domain/entity"

	"github.com/google/uuid"
)

// RecordUsecase defines the interface for medical record documents: upload,
// listing, signed download links and the doctor review mark.
type RecordUsecase interface {
	Upload(ctx context.Context, patientID uuid.UUID, input *UploadRecordInput) (*entity.MedicalRecord, error)
	ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*entity.MedicalRecord, error)
	ListForDoctor(ctx context.Context, doctorID uuid.UUID, patientID uuid.UUID) ([]*entity.MedicalRecord, error)
	Download(ctx context.Context, actorID uuid.UUID, actorRole entity.Role, recordID uuid.UUID) (*RecordDownloadOutput, error)
	Review(ctx context.Context, doctorID uuid.UUID, recordID uuid.UUID) (*entity.MedicalRecord, error)
}

// --- Input DTOs ---

// UploadRecordInput defines the data required to store a medical record file.
// Content is streamed to the blob store, never buffered whole.
type UploadRecordInput struct {
	Filename    string
	ContentType string
	SizeBytes   int64
	Description string
	Content     io.Reader
}

// --- Output DTOs ---

// RecordDownloadOutput returns a short-lived signed URL for the stored file.
type RecordDownloadOutput struct {
	Record    *entity.MedicalRecord
	URL       string
	ExpiresIn time.Duration
}
