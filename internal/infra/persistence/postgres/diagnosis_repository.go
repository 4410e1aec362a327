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

// diagnosisRepository implements the domain.DiagnosisRepository interface using GORM.
type diagnosisRepository struct {
	db *gorm.DB
}

// NewDiagnosisRepository is the constructor for diagnosisRepository.
func NewDiagnosisRepository(db *gorm.DB) repository.DiagnosisRepository {
	return &diagnosisRepository{db: db}
}

// FindByID retrieves a single diagnosis by its unique ID.
func (repo *diagnosisRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Diagnosis, error) {
	var diagM model.DiagnosisModel
	err := repo.db.WithContext(ctx).First(&diagM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDiagnosisNotFound
		}

		return nil, errors.Wrap(err, "failed to find diagnosis by id")
	}

	return toDiagnosisDomain(&diagM), nil
}

// FindByDoctor retrieves all diagnoses written by the given doctor, newest first.
func (repo *diagnosisRepository) FindByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*entity.Diagnosis, error) {
	var diagMs []model.DiagnosisModel
	err := repo.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("created_at DESC").
		Find(&diagMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find diagnoses by doctor")
	}

	return toDiagnosisDomainSlice(diagMs), nil
}

// FindByDoctorAndPatient retrieves the diagnoses the given doctor wrote for
// the given patient, newest first.
func (repo *diagnosisRepository) FindByDoctorAndPatient(ctx context.Context, doctorID, patientID uuid.UUID) ([]*entity.Diagnosis, error) {
	var diagMs []model.DiagnosisModel
	err := repo.db.WithContext(ctx).
		Where("doctor_id = ? AND patient_id = ?", doctorID, patientID).
		Order("created_at DESC").
		Find(&diagMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find diagnoses by doctor and patient")
	}

	return toDiagnosisDomainSlice(diagMs), nil
}

// FindByAppointment retrieves the diagnosis attached to the given appointment,
// if any.
func (repo *diagnosisRepository) FindByAppointment(ctx context.Context, appointmentID uuid.UUID) (*entity.Diagnosis, error) {
	var diagM model.DiagnosisModel
	err := repo.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("created_at DESC").
		First(&diagM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDiagnosisNotFound
		}

		return nil, errors.Wrap(err, "failed to find diagnosis by appointment")
	}

	return toDiagnosisDomain(&diagM), nil
}

// Create persists a new diagnosis.
func (repo *diagnosisRepository) Create(ctx context.Context, diagnosis *entity.Diagnosis) error {
	diagM := fromDiagnosisDomain(diagnosis)

	if err := repo.db.WithContext(ctx).Create(diagM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrNotFound.WrapMessage("referenced patient or appointment does not exist")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required diagnosis information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create diagnosis")
	}

	diagnosis.ID = diagM.ID
	diagnosis.CreatedAt = diagM.CreatedAt
	diagnosis.UpdatedAt = diagM.UpdatedAt

	return nil
}

// Update modifies an existing diagnosis.
func (repo *diagnosisRepository) Update(ctx context.Context, diagnosis *entity.Diagnosis) error {
	diagM := fromDiagnosisDomain(diagnosis)

	if err := repo.db.WithContext(ctx).Save(diagM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update diagnosis")
	}

	diagnosis.UpdatedAt = diagM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

// toDiagnosisDomain converts a GORM DiagnosisModel to a domain Diagnosis entity.
func toDiagnosisDomain(data *model.DiagnosisModel) *entity.Diagnosis {
	if data == nil {
		return nil
	}

	return &entity.Diagnosis{
		ID:            data.ID,
		PatientID:     data.PatientID,
		DoctorID:      data.DoctorID,
		AppointmentID: data.AppointmentID,
		Diagnosis:     data.Diagnosis,
		Symptoms:      data.Symptoms,
		TreatmentPlan: data.TreatmentPlan,
		Notes:         data.Notes,
		Prescriptions: data.Prescriptions,
		FollowUpDate:  data.FollowUpDate,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func toDiagnosisDomainSlice(data []model.DiagnosisModel) []*entity.Diagnosis {
	diagnoses := make([]*entity.Diagnosis, 0, len(data))
	for i := range data {
		diagnoses = append(diagnoses, toDiagnosisDomain(&data[i]))
	}

	return diagnoses
}

// fromDiagnosisDomain converts a domain Diagnosis entity to a GORM DiagnosisModel.
func fromDiagnosisDomain(data *entity.Diagnosis) *model.DiagnosisModel {
	if data == nil {
		return nil
	}

	return &model.DiagnosisModel{
		ID:            data.ID,
		PatientID:     data.PatientID,
		DoctorID:      data.DoctorID,
		AppointmentID: data.AppointmentID,
		Diagnosis:     data.Diagnosis,
		Symptoms:      data.Symptoms,
		TreatmentPlan: data.TreatmentPlan,
		Notes:         data.Notes,
		Prescriptions: data.Prescriptions,
		FollowUpDate:  data.FollowUpDate,
		CreatedAt:     data.CreatedAt,
	}
}
