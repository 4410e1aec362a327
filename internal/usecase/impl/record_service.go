package impl

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	"medcare/config"
	deliverycontext "medcare/internal/delivery/context"
	"medcare/internal/domain/entity"
	domainerrors "medcare/internal/domain/errors"
	"medcare/internal/domain/repository"
	"medcare/internal/domain/service"
	"medcare/internal/usecase"
	"medcare/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	// defaultSignedURLTTL bounds download links when no TTL is configured.
	defaultSignedURLTTL = 15 * time.Minute

	// defaultContentType is stamped on uploads that carry no content type.
	defaultContentType = "application/octet-stream"
)

// recordService implements the RecordUsecase interface.
type recordService struct {
	recordRepo      repository.MedicalRecordRepository
	appointmentRepo repository.AppointmentRepository
	blobStore       service.BlobStore
	signedURLTTL    time.Duration
	logger          *slog.Logger
}

// RecordServiceParams holds dependencies for RecordService, injected by Fx.
type RecordServiceParams struct {
	fx.In

	RecordRepo      repository.MedicalRecordRepository
	AppointmentRepo repository.AppointmentRepository
	BlobStore       service.BlobStore
	Config          *config.Config
	Logger          *slog.Logger
}

// NewRecordService is the constructor for recordService. It receives all dependencies as interfaces.
func NewRecordService(params RecordServiceParams) usecase.RecordUsecase {
	signedURLTTL := defaultSignedURLTTL
	if params.Config != nil && params.Config.Blob != nil && params.Config.Blob.SignedURLTTL > 0 {
		signedURLTTL = params.Config.Blob.SignedURLTTL
	}

	return &recordService{
		recordRepo:      params.RecordRepo,
		appointmentRepo: params.AppointmentRepo,
		blobStore:       params.BlobStore,
		signedURLTTL:    signedURLTTL,
		logger:          params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *recordService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Upload streams the file to the blob store and persists its metadata. The
// content is checksummed on the way through, never inspected or transformed.
func (srv *recordService) Upload(ctx context.Context, patientID uuid.UUID, input *usecase.UploadRecordInput) (*entity.MedicalRecord, error) {
	filename := path.Base(input.Filename)
	if filename == "" || filename == "." || filename == "/" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("filename is required")
	}

	contentType := input.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}

	fileKey := fmt.Sprintf("records/%s/%s_%s", patientID, uuid.NewString(), filename)

	srv.log(ctx).Info("Storing medical record",
		slog.Any("patientID", patientID), slog.String("fileKey", fileKey),
		slog.String("size", util.FormatBytes(input.SizeBytes)))

	content, checksum := util.NewChecksumTee(input.Content)
	if err := srv.blobStore.Put(ctx, fileKey, content, contentType); err != nil {
		return nil, errors.Wrap(err, "failed to store file content")
	}

	record := &entity.MedicalRecord{
		PatientID:   patientID,
		UploadedBy:  entity.RolePatient,
		FileKey:     fileKey,
		Filename:    filename,
		ContentType: contentType,
		SizeBytes:   input.SizeBytes,
		Checksum:    util.ChecksumHex(checksum),
		Description: input.Description,
	}
	if err := srv.recordRepo.Create(ctx, record); err != nil {
		return nil, errors.Wrap(err, "failed to create medical record")
	}

	srv.log(ctx).Debug("Medical record stored", slog.Any("recordID", record.ID))

	return record, nil
}

// ListForPatient returns the patient's own records, newest first.
func (srv *recordService) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*entity.MedicalRecord, error) {
	records, err := srv.recordRepo.FindByPatient(ctx, patientID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list medical records")
	}

	return records, nil
}

// ListForDoctor returns one patient's records to a doctor holding a
// treatment relationship with them.
func (srv *recordService) ListForDoctor(ctx context.Context, doctorID uuid.UUID, patientID uuid.UUID) ([]*entity.MedicalRecord, error) {
	if err := ensureRelationship(ctx, srv.appointmentRepo, doctorID, patientID); err != nil {
		return nil, err
	}

	records, err := srv.recordRepo.FindByPatient(ctx, patientID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list medical records")
	}

	return records, nil
}

// Download returns a short-lived signed URL for the record's file. Patients
// reach only their own records; doctors need a treatment relationship.
func (srv *recordService) Download(ctx context.Context, actorID uuid.UUID, actorRole entity.Role, recordID uuid.UUID) (*usecase.RecordDownloadOutput, error) {
	record, err := srv.findRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}

	switch actorRole {
	case entity.RolePatient:
		if record.PatientID != actorID {
			return nil, domainerrors.ErrAccessDenied.WrapMessage("record belongs to another patient")
		}
	case entity.RoleDoctor:
		if err := ensureRelationship(ctx, srv.appointmentRepo, actorID, record.PatientID); err != nil {
			return nil, err
		}
	default:
		return nil, errors.WithStack(domainerrors.ErrAccessDenied)
	}

	url, err := srv.blobStore.SignedURL(ctx, record.FileKey, srv.signedURLTTL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign download url")
	}

	srv.log(ctx).Debug("Download link issued",
		slog.Any("recordID", recordID), slog.String("validFor", util.FormatDuration(srv.signedURLTTL)))

	return &usecase.RecordDownloadOutput{
		Record:    record,
		URL:       url,
		ExpiresIn: srv.signedURLTTL,
	}, nil
}

// Review marks a record as reviewed by the doctor. The mark is one-way:
// reviewing an already-reviewed record changes nothing.
func (srv *recordService) Review(ctx context.Context, doctorID uuid.UUID, recordID uuid.UUID) (*entity.MedicalRecord, error) {
	record, err := srv.findRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}

	if err := ensureRelationship(ctx, srv.appointmentRepo, doctorID, record.PatientID); err != nil {
		return nil, err
	}

	if record.Reviewed {
		return record, nil
	}

	now := time.Now().UTC()
	record.Reviewed = true
	record.ReviewedBy = &doctorID
	record.ReviewedAt = &now
	if err := srv.recordRepo.Update(ctx, record); err != nil {
		return nil, errors.Wrap(err, "failed to mark record reviewed")
	}

	srv.log(ctx).Info("Medical record reviewed", slog.Any("recordID", recordID), slog.Any("doctorID", doctorID))

	return record, nil
}

func (srv *recordService) findRecord(ctx context.Context, recordID uuid.UUID) (*entity.MedicalRecord, error) {
	record, err := srv.recordRepo.FindByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, repository.ErrMedicalRecordNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("medical record not found")
		}

		return nil, errors.Wrap(err, "failed to find medical record")
	}

	return record, nil
}
