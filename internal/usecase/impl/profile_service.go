// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	"medcare/internal/domain/entity"
	domainerrors "medcare/internal/domain/errors"
	"medcare/internal/domain/repository"
	"medcare/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager       repository.TransactionManager
	userRepo        repository.UserRepository
	appointmentRepo repository.AppointmentRepository
	logger          *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(
	txManager repository.TransactionManager,
	userRepo repository.UserRepository,
	appointmentRepo repository.AppointmentRepository,
	logger *slog.Logger,
) usecase.ProfileUsecase {
	return &profileService{
		txManager:       txManager,
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetProfile retrieves the complete user profile including role-specific data.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	srv.logger.Debug("Getting user profile", "userID", userID)

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "user not found")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// UpdatePatientProfile updates the patient profile data.
func (srv *profileService) UpdatePatientProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdatePatientProfileInput) (*entity.User, error) {
	srv.logger.Info("Updating patient profile", "userID", userID)

	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		// 1. Find the user
		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}

		// 2. Check the account actually holds the patient role
		if user.Role != entity.RolePatient {
			return errors.Wrap(domainerrors.ErrRoleMismatch, "account does not hold the patient role")
		}
		if user.PatientProfile == nil {
			user.PatientProfile = &entity.PatientProfile{UserID: user.ID}
		}

		// 3. Update the profile fields
		applyPatientProfileUpdate(user.PatientProfile, input)

		// 4. Save the updated user
		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update patient profile")
		}

		updated = user

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update patient profile")
	}

	return updated, nil
}

// UpdateDoctorProfile updates the doctor profile data.
func (srv *profileService) UpdateDoctorProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateDoctorProfileInput) (*entity.User, error) {
	srv.logger.Info("Updating doctor profile", "userID", userID)

	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		// 1. Find the user
		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}

		// 2. Check the account actually holds the doctor role
		if user.Role != entity.RoleDoctor {
			return errors.Wrap(domainerrors.ErrRoleMismatch, "account does not hold the doctor role")
		}
		if user.DoctorProfile == nil {
			user.DoctorProfile = &entity.DoctorProfile{UserID: user.ID}
		}

		// 3. Update the profile fields
		applyDoctorProfileUpdate(user.DoctorProfile, input)

		// 4. Save the updated user
		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update doctor profile")
		}

		updated = user

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update doctor profile")
	}

	return updated, nil
}

// ListDoctors returns every registered doctor with their public profile loaded.
func (srv *profileService) ListDoctors(ctx context.Context) ([]*entity.User, error) {
	doctors, err := srv.userRepo.FindByRole(ctx, entity.RoleDoctor)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list doctors")
	}

	return doctors, nil
}

// ListDoctorPatients returns the patients the doctor shares at least one
// appointment with, whatever its status.
func (srv *profileService) ListDoctorPatients(ctx context.Context, doctorID uuid.UUID) ([]*entity.User, error) {
	srv.logger.Debug("Listing doctor patients", "doctorID", doctorID)

	patientIDs, err := srv.appointmentRepo.DistinctPatientIDs(ctx, doctorID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to collect patient ids")
	}
	if len(patientIDs) == 0 {
		return []*entity.User{}, nil
	}

	patients, err := srv.userRepo.FindByIDs(ctx, patientIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load patients")
	}

	return patients, nil
}

// GetPatientDetails returns one patient's account and profile, provided the
// doctor has a treatment relationship with them.
func (srv *profileService) GetPatientDetails(ctx context.Context, doctorID uuid.UUID, patientID uuid.UUID) (*entity.User, error) {
	if err := ensureRelationship(ctx, srv.appointmentRepo, doctorID, patientID); err != nil {
		return nil, err
	}

	patient, err := srv.userRepo.FindByID(ctx, patientID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "patient not found")
		}

		return nil, errors.Wrap(err, "failed to find patient")
	}

	return patient, nil
}

// --- Helper Functions ---

func applyPatientProfileUpdate(profile *entity.PatientProfile, input *usecase.UpdatePatientProfileInput) {
	if input.Phone != nil {
		profile.Phone = *input.Phone
	}
	if input.Address != nil {
		profile.Address = *input.Address
	}
	if input.DateOfBirth != nil {
		profile.DateOfBirth = *input.DateOfBirth
	}
	if input.Gender != nil {
		profile.Gender = *input.Gender
	}
	if input.EmergencyContact != nil {
		profile.EmergencyContact = *input.EmergencyContact
	}
	if input.BloodType != nil {
		profile.BloodType = *input.BloodType
	}
	if input.Allergies != nil {
		profile.Allergies = *input.Allergies
	}
	if input.MedicalHistory != nil {
		profile.MedicalHistory = *input.MedicalHistory
	}
	if input.CurrentMedications != nil {
		profile.CurrentMedications = *input.CurrentMedications
	}
	if input.InsuranceInfo != nil {
		profile.InsuranceInfo = *input.InsuranceInfo
	}
}

func applyDoctorProfileUpdate(profile *entity.DoctorProfile, input *usecase.UpdateDoctorProfileInput) {
	if input.Phone != nil {
		profile.Phone = *input.Phone
	}
	if input.Address != nil {
		profile.Address = *input.Address
	}
	if input.Specialization != nil {
		profile.Specialization = *input.Specialization
	}
	if input.LicenseNumber != nil {
		profile.LicenseNumber = *input.LicenseNumber
	}
	if input.Experience != nil {
		profile.Experience = *input.Experience
	}
	if input.Education != nil {
		profile.Education = *input.Education
	}
	if input.Certifications != nil {
		profile.Certifications = *input.Certifications
	}
	if input.ConsultationFee != nil {
		profile.ConsultationFee = *input.ConsultationFee
	}
	if input.WorkingHours != nil {
		profile.WorkingHours = *input.WorkingHours
	}
	if input.Bio != nil {
		profile.Bio = *input.Bio
	}
}
