// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
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

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID, preloading the role profile.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("PatientProfile").
		Preload("DoctorProfile").
		First(&userM, "id = ?", id).Error

	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		// Otherwise, return the original database error.
		return nil, errors.Wrap(err, "failed to find user by id")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address, preloading the role profile.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("PatientProfile").
		Preload("DoctorProfile").
		First(&userM, "email = ?", email).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// FindByIDs retrieves the users whose IDs appear in the given set.
// Missing IDs are silently skipped; callers decide whether that matters.
func (repo *userRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error) {
	if len(ids) == 0 {
		return []*entity.User{}, nil
	}

	var userMs []model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("PatientProfile").
		Preload("DoctorProfile").
		Where("id IN ?", ids).
		Find(&userMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find users by ids")
	}

	users := make([]*entity.User, 0, len(userMs))
	for i := range userMs {
		users = append(users, toUserDomain(&userMs[i]))
	}

	return users, nil
}

// FindByRole retrieves every user holding the given role, preloading the role profile.
func (repo *userRepository) FindByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	var userMs []model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("PatientProfile").
		Preload("DoctorProfile").
		Where("role = ?", role.String()).
		Order("name ASC").
		Find(&userMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find users by role")
	}

	users := make([]*entity.User, 0, len(userMs))
	for i := range userMs {
		users = append(users, toUserDomain(&userMs[i]))
	}

	return users, nil
}

// Create persists a new user entity, including its role profile, to the database.
// GORM's Create with associations inserts into users and patient_profiles
// or doctor_profiles together.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	// Map the pure domain entity to a GORM persistence model.
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateIdentity.WrapMessage("email already registered")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required user information")
		}
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the user entity with the generated ID and timestamps
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	// Update profile IDs if they exist
	if user.PatientProfile != nil && userM.PatientProfile != nil {
		user.PatientProfile.UserID = userM.PatientProfile.UserID
		user.PatientProfile.UpdatedAt = userM.PatientProfile.UpdatedAt
	}
	if user.DoctorProfile != nil && userM.DoctorProfile != nil {
		user.DoctorProfile.UserID = userM.DoctorProfile.UserID
		user.DoctorProfile.UpdatedAt = userM.DoctorProfile.UpdatedAt
	}

	return nil
}

// Update modifies an existing user entity, including its role profile, in the database.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	// Map the pure domain entity to a GORM persistence model.
	userM := fromUserDomain(user)

	// Use Session with FullSaveAssociations to update nested associations
	if err := repo.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(userM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateIdentity.WrapMessage("email already registered")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required user information")
		}
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}

	// Update the user entity with the updated timestamps
	user.UpdatedAt = userM.UpdatedAt
	if user.PatientProfile != nil && userM.PatientProfile != nil {
		user.PatientProfile.UpdatedAt = userM.PatientProfile.UpdatedAt
	}
	if user.DoctorProfile != nil && userM.DoctorProfile != nil {
		user.DoctorProfile.UpdatedAt = userM.DoctorProfile.UpdatedAt
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:             data.ID,
		Email:          data.Email,
		Name:           data.Name,
		PasswordHash:   data.PasswordHash,
		Role:           entity.Role(data.Role),
		PatientProfile: toPatientProfileDomain(data.PatientProfile),
		DoctorProfile:  toDoctorProfileDomain(data.DoctorProfile),
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:             data.ID,
		Email:          data.Email,
		Name:           data.Name,
		PasswordHash:   data.PasswordHash,
		Role:           data.Role.String(),
		PatientProfile: fromPatientProfileDomain(data.PatientProfile),
		DoctorProfile:  fromDoctorProfileDomain(data.DoctorProfile),
		CreatedAt:      data.CreatedAt,
	}
}

// toPatientProfileDomain converts a GORM PatientProfileModel to a domain PatientProfile entity.
func toPatientProfileDomain(data *model.PatientProfileModel) *entity.PatientProfile {
	if data == nil {
		return nil
	}

	return &entity.PatientProfile{
		UserID:             data.UserID,
		Phone:              data.Phone,
		Address:            data.Address,
		DateOfBirth:        data.DateOfBirth,
		Gender:             data.Gender,
		EmergencyContact:   data.EmergencyContact,
		BloodType:          data.BloodType,
		Allergies:          data.Allergies,
		MedicalHistory:     data.MedicalHistory,
		CurrentMedications: data.CurrentMedications,
		InsuranceInfo:      data.InsuranceInfo,
		UpdatedAt:          data.UpdatedAt,
	}
}

// fromPatientProfileDomain converts a domain PatientProfile entity to a GORM PatientProfileModel.
func fromPatientProfileDomain(data *entity.PatientProfile) *model.PatientProfileModel {
	if data == nil {
		return nil
	}

	return &model.PatientProfileModel{
		UserID:             data.UserID,
		Phone:              data.Phone,
		Address:            data.Address,
		DateOfBirth:        data.DateOfBirth,
		Gender:             data.Gender,
		EmergencyContact:   data.EmergencyContact,
		BloodType:          data.BloodType,
		Allergies:          data.Allergies,
		MedicalHistory:     data.MedicalHistory,
		CurrentMedications: data.CurrentMedications,
		InsuranceInfo:      data.InsuranceInfo,
	}
}

// toDoctorProfileDomain converts a GORM DoctorProfileModel to a domain DoctorProfile entity.
func toDoctorProfileDomain(data *model.DoctorProfileModel) *entity.DoctorProfile {
	if data == nil {
		return nil
	}

	return &entity.DoctorProfile{
		UserID:          data.UserID,
		Phone:           data.Phone,
		Address:         data.Address,
		Specialization:  data.Specialization,
		LicenseNumber:   data.LicenseNumber,
		Experience:      data.Experience,
		Education:       data.Education,
		Certifications:  data.Certifications,
		ConsultationFee: data.ConsultationFee,
		WorkingHours:    data.WorkingHours,
		Bio:             data.Bio,
		UpdatedAt:       data.UpdatedAt,
	}
}

// fromDoctorProfileDomain converts a domain DoctorProfile entity to a GORM DoctorProfileModel.
func fromDoctorProfileDomain(data *entity.DoctorProfile) *model.DoctorProfileModel {
	if data == nil {
		return nil
	}

	return &model.DoctorProfileModel{
		UserID:          data.UserID,
		Phone:           data.Phone,
		Address:         data.Address,
		Specialization:  data.Specialization,
		LicenseNumber:   data.LicenseNumber,
		Experience:      data.Experience,
		Education:       data.Education,
		Certifications:  data.Certifications,
		ConsultationFee: data.ConsultationFee,
		WorkingHours:    data.WorkingHours,
		Bio:             data.Bio,
	}
}
