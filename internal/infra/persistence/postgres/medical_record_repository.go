package postgres

import (
	"context"

	"medcare/internal/domain/entity"
	domainerrors "medcare/internal/domain/errors"
	"medcare/internal/domain/repository"
	"medcare/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// medicalRecordRepository implements the domain.MedicalRecordRepository interface using GORM.
type medicalRecordRepository struct {
	db *gorm.DB
}

// NewMedicalRecordRepository is the constructor for medicalRecordRepository.
func NewMedicalRecordRepository(db *gorm.DB) repository.MedicalRecordRepository {
	return &medicalRecordRepository{db: db}
}

// FindByID retrieves a single medical record by its unique ID.
func (repo *medicalRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MedicalRecord, error) {
	var recordM model.MedicalRecordModel
	err := repo.db.WithContext(ctx).First(&recordM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMedicalRecordNotFound
		}

		return nil, errors.Wrap(err, "failed to find medical record by id")
	}

	return toMedicalRecordDomain(&recordM), nil
}

// FindByPatient retrieves all medical records for the given patient, newest first.
func (repo *medicalRecordRepository) FindByPatient(ctx context.Context, patientID uuid.UUID) ([]*entity.MedicalRecord, error) {
	var recordMs []model.MedicalRecordModel
	err := repo.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&recordMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find medical records by patient")
	}

	records := make([]*entity.MedicalRecord, 0, len(recordMs))
	for i := range recordMs {
		records = append(records, toMedicalRecordDomain(&recordMs[i]))
	}

	return records, nil
}

// Create persists a new medical record row. The file bytes themselves are
// already in blob storage by the time this runs.
func (repo *medicalRecordRepository) Create(ctx context.Context, record *entity.MedicalRecord) error {
	recordM := fromMedicalRecordDomain(record)

	if err := repo.db.WithContext(ctx).Create(recordM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrNotFound.WrapMessage("record owner does not exist")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required record information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create medical record")
	}

	record.ID = recordM.ID
	record.CreatedAt = recordM.CreatedAt

	return nil
}

// Update modifies an existing medical record row.
func (repo *medicalRecordRepository) Update(ctx context.Context, record *entity.MedicalRecord) error {
	recordM := fromMedicalRecordDomain(record)

	if err := repo.db.WithContext(ctx).Save(recordM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update medical record")
	}

	return nil
}

// --- Mapper Functions ---

// toMedicalRecordDomain converts a GORM MedicalRecordModel to a domain MedicalRecord entity.
func toMedicalRecordDomain(data *model.MedicalRecordModel) *entity.MedicalRecord {
	if data == nil {
		return nil
	}

	return &entity.MedicalRecord{
		ID:          data.ID,
		PatientID:   data.PatientID,
		UploadedBy:  entity.Role(data.UploadedBy),
		FileKey:     data.FileKey,
		Filename:    data.Filename,
		ContentType: data.ContentType,
		SizeBytes:   data.SizeBytes,
		Checksum:    data.Checksum,
		Description: data.Description,
		Reviewed:    data.Reviewed,
		ReviewedBy:  data.ReviewedBy,
		ReviewedAt:  data.ReviewedAt,
		CreatedAt:   data.CreatedAt,
	}
}

// fromMedicalRecordDomain converts a domain MedicalRecord entity to a GORM MedicalRecordModel.
func fromMedicalRecordDomain(data *entity.MedicalRecord) *model.MedicalRecordModel {
	if data == nil {
		return nil
	}

	return &model.MedicalRecordModel{
		ID:          data.ID,
		PatientID:   data.PatientID,
		UploadedBy:  data.UploadedBy.String(),
		FileKey:     data.FileKey,
		Filename:    data.Filename,
		ContentType: data.ContentType,
		SizeBytes:   data.SizeBytes,
		Checksum:    data.Checksum,
		Description: data.Description,
		Reviewed:    data.Reviewed,
		ReviewedBy:  data.ReviewedBy,
		ReviewedAt:  data.ReviewedAt,
		CreatedAt:   data.CreatedAt,
	}
}
