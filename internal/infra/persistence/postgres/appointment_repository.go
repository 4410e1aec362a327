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

// appointmentRepository implements the domain.AppointmentRepository interface using GORM.
type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository is the constructor for appointmentRepository.
func NewAppointmentRepository(db *gorm.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

// FindByID retrieves a single appointment by its unique ID.
func (repo *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var apptM model.AppointmentModel
	err := repo.db.WithContext(ctx).First(&apptM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAppointmentNotFound
		}

		return nil, errors.Wrap(err, "failed to find appointment by id")
	}

	return toAppointmentDomain(&apptM), nil
}

// FindByPatient retrieves all appointments booked by the given patient,
// newest slot first.
func (repo *appointmentRepository) FindByPatient(ctx context.Context, patientID uuid.UUID) ([]*entity.Appointment, error) {
	var apptMs []model.AppointmentModel
	err := repo.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("date DESC, time DESC").
		Find(&apptMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find appointments by patient")
	}

	return toAppointmentDomainSlice(apptMs), nil
}

// FindByDoctor retrieves all appointments held with the given doctor,
// newest slot first.
func (repo *appointmentRepository) FindByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*entity.Appointment, error) {
	var apptMs []model.AppointmentModel
	err := repo.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("date DESC, time DESC").
		Find(&apptMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find appointments by doctor")
	}

	return toAppointmentDomainSlice(apptMs), nil
}

// CountActiveAtSlot counts the non-cancelled appointments occupying the given
// (doctor, date, time) slot. The result is advisory: the partial unique index
// remains the authoritative double-booking guard at commit time.
func (repo *appointmentRepository) CountActiveAtSlot(ctx context.Context, doctorID uuid.UUID, date, timeOfDay string) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.AppointmentModel{}).
		Where("doctor_id = ? AND date = ? AND time = ? AND status <> ?",
			doctorID, date, timeOfDay, entity.AppointmentCancelled.String()).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count appointments at slot")
	}

	return count, nil
}

// ExistsBetween reports whether any appointment links the doctor and patient.
// With includeCancelled set, cancelled appointments count as well.
func (repo *appointmentRepository) ExistsBetween(ctx context.Context, doctorID, patientID uuid.UUID, includeCancelled bool) (bool, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.AppointmentModel{}).
		Where("doctor_id = ? AND patient_id = ?", doctorID, patientID)
	if !includeCancelled {
		query = query.Where("status <> ?", entity.AppointmentCancelled.String())
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check appointments between doctor and patient")
	}

	return count > 0, nil
}

// DistinctPatientIDs lists the distinct patients that have ever held an
// appointment with the given doctor.
func (repo *appointmentRepository) DistinctPatientIDs(ctx context.Context, doctorID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := repo.db.WithContext(ctx).
		Model(&model.AppointmentModel{}).
		Distinct("patient_id").
		Where("doctor_id = ?", doctorID).
		Pluck("patient_id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list patients for doctor")
	}

	return ids, nil
}

// Create persists a new appointment. A unique constraint violation means the
// slot was taken by a concurrent booking, so it surfaces as a slot conflict.
func (repo *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	apptM := fromAppointmentDomain(appointment)

	if err := repo.db.WithContext(ctx).Create(apptM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrSlotConflict.WrapMessage("slot already booked")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required appointment information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create appointment")
	}

	appointment.ID = apptM.ID
	appointment.CreatedAt = apptM.CreatedAt
	appointment.UpdatedAt = apptM.UpdatedAt

	return nil
}

// Update modifies an existing appointment. Reviving a cancelled appointment
// into an occupied slot trips the same unique constraint as Create.
func (repo *appointmentRepository) Update(ctx context.Context, appointment *entity.Appointment) error {
	apptM := fromAppointmentDomain(appointment)

	if err := repo.db.WithContext(ctx).Save(apptM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrSlotConflict.WrapMessage("slot already booked")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update appointment")
	}

	appointment.UpdatedAt = apptM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

// toAppointmentDomain converts a GORM AppointmentModel to a domain Appointment entity.
func toAppointmentDomain(data *model.AppointmentModel) *entity.Appointment {
	if data == nil {
		return nil
	}

	return &entity.Appointment{
		ID:              data.ID,
		PatientID:       data.PatientID,
		DoctorID:        data.DoctorID,
		Date:            data.Date,
		Time:            data.Time,
		Reason:          data.Reason,
		Status:          entity.AppointmentStatus(data.Status),
		ConsultationFee: data.ConsultationFee,
		PaymentStatus:   entity.PaymentStatus(data.PaymentStatus),
		PaymentIntentID: data.PaymentIntentID,
		PaidAt:          data.PaidAt,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func toAppointmentDomainSlice(data []model.AppointmentModel) []*entity.Appointment {
	appointments := make([]*entity.Appointment, 0, len(data))
	for i := range data {
		appointments = append(appointments, toAppointmentDomain(&data[i]))
	}

	return appointments
}

// fromAppointmentDomain converts a domain Appointment entity to a GORM AppointmentModel.
func fromAppointmentDomain(data *entity.Appointment) *model.AppointmentModel {
	if data == nil {
		return nil
	}

	return &model.AppointmentModel{
		ID:              data.ID,
		PatientID:       data.PatientID,
		DoctorID:        data.DoctorID,
		Date:            data.Date,
		Time:            data.Time,
		Reason:          data.Reason,
		Status:          data.Status.String(),
		ConsultationFee: data.ConsultationFee,
		PaymentStatus:   string(data.PaymentStatus),
		PaymentIntentID: data.PaymentIntentID,
		PaidAt:          data.PaidAt,
		CreatedAt:       data.CreatedAt,
	}
}
