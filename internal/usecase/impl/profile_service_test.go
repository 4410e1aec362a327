package impl

import (
	"context"
	"testing"

	"medcare/internal/domain/entity"
	domainerrors "medcare/internal/domain/errors"
	"medcare/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProfileService(t *testing.T) (usecase.ProfileUsecase, *memStores) {
	t.Helper()

	stores := newMemStores()
	service := NewProfileService(stores, stores.users, stores.appointments, newDiscardLogger())

	return service, stores
}

func TestProfileService_GetProfile(t *testing.T) {
	service, stores := createTestProfileService(t)
	patient := seedPatient(t, stores, "Jane Roe")

	user, err := service.GetProfile(context.Background(), patient.ID)

	require.NoError(t, err)
	assert.Equal(t, patient.ID, user.ID)
	assert.Equal(t, "Jane Roe", user.Name)
	require.NotNil(t, user.PatientProfile)
	assert.Equal(t, patient.ID, user.PatientProfile.UserID)
}

func TestProfileService_GetProfile_UnknownUser(t *testing.T) {
	service, _ := createTestProfileService(t)

	_, err := service.GetProfile(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestProfileService_UpdatePatientProfile(t *testing.T) {
	service, stores := createTestProfileService(t)
	ctx := context.Background()
	patient := seedPatient(t, stores, "Jane Roe")

	phone := "+15550001111"
	bloodType := "O+"
	updated, err := service.UpdatePatientProfile(ctx, patient.ID, &usecase.UpdatePatientProfileInput{
		Phone:     &phone,
		BloodType: &bloodType,
	})

	require.NoError(t, err)
	assert.Equal(t, phone, updated.PatientProfile.Phone)
	assert.Equal(t, bloodType, updated.PatientProfile.BloodType)

	// A second partial update must leave earlier fields alone.
	allergies := "penicillin"
	updated, err = service.UpdatePatientProfile(ctx, patient.ID, &usecase.UpdatePatientProfileInput{
		Allergies: &allergies,
	})

	require.NoError(t, err)
	assert.Equal(t, phone, updated.PatientProfile.Phone)
	assert.Equal(t, bloodType, updated.PatientProfile.BloodType)
	assert.Equal(t, allergies, updated.PatientProfile.Allergies)

	stored, err := stores.users.FindByID(ctx, patient.ID)
	require.NoError(t, err)
	assert.Equal(t, phone, stored.PatientProfile.Phone)
	assert.Equal(t, allergies, stored.PatientProfile.Allergies)
}

func TestProfileService_UpdatePatientProfile_HealsMissingProfile(t *testing.T) {
	service, stores := createTestProfileService(t)
	ctx := context.Background()

	// Accounts created before profiles existed have no profile row.
	user := &entity.User{
		Email:        "legacy@example.com",
		Name:         "Legacy Patient",
		PasswordHash: "hashed:Password123",
		Role:         entity.RolePatient,
	}
	require.NoError(t, stores.users.Create(ctx, user))

	phone := "+15550001111"
	updated, err := service.UpdatePatientProfile(ctx, user.ID, &usecase.UpdatePatientProfileInput{
		Phone: &phone,
	})

	require.NoError(t, err)
	require.NotNil(t, updated.PatientProfile)
	assert.Equal(t, user.ID, updated.PatientProfile.UserID)
	assert.Equal(t, phone, updated.PatientProfile.Phone)
}

func TestProfileService_UpdatePatientProfile_RoleMismatch(t *testing.T) {
	service, stores := createTestProfileService(t)
	doctor := seedDoctor(t, stores, "Gregory House", 150)

	phone := "+15550001111"
	_, err := service.UpdatePatientProfile(context.Background(), doctor.ID, &usecase.UpdatePatientProfileInput{
		Phone: &phone,
	})

	assert.ErrorIs(t, err, domainerrors.ErrRoleMismatch)
}

func TestProfileService_UpdateDoctorProfile(t *testing.T) {
	service, stores := createTestProfileService(t)
	ctx := context.Background()
	doctor := seedDoctor(t, stores, "Gregory House", 0)

	specialization := "Cardiology"
	experience := "12 years"
	fee := 175.5
	updated, err := service.UpdateDoctorProfile(ctx, doctor.ID, &usecase.UpdateDoctorProfileInput{
		Specialization:  &specialization,
		Experience:      &experience,
		ConsultationFee: &fee,
	})

	require.NoError(t, err)
	assert.Equal(t, specialization, updated.DoctorProfile.Specialization)
	assert.Equal(t, experience, updated.DoctorProfile.Experience)
	assert.InDelta(t, fee, updated.DoctorProfile.ConsultationFee, 0.001)

	stored, err := stores.users.FindByID(ctx, doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, specialization, stored.DoctorProfile.Specialization)
	assert.InDelta(t, fee, stored.DoctorProfile.ConsultationFee, 0.001)
}

func TestProfileService_UpdateDoctorProfile_RoleMismatch(t *testing.T) {
	service, stores := createTestProfileService(t)
	patient := seedPatient(t, stores, "Jane Roe")

	bio := "Board-certified"
	_, err := service.UpdateDoctorProfile(context.Background(), patient.ID, &usecase.UpdateDoctorProfileInput{
		Bio: &bio,
	})

	assert.ErrorIs(t, err, domainerrors.ErrRoleMismatch)
}

func TestProfileService_ListDoctors(t *testing.T) {
	service, stores := createTestProfileService(t)
	seedPatient(t, stores, "Jane Roe")
	first := seedDoctor(t, stores, "Gregory House", 150)
	second := seedDoctor(t, stores, "James Wilson", 120)

	doctors, err := service.ListDoctors(context.Background())

	require.NoError(t, err)
	require.Len(t, doctors, 2)
	ids := []uuid.UUID{doctors[0].ID, doctors[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
	for _, doctor := range doctors {
		assert.Equal(t, entity.RoleDoctor, doctor.Role)
	}
}

func TestProfileService_ListDoctorPatients(t *testing.T) {
	service, stores := createTestProfileService(t)
	ctx := context.Background()
	doctor := seedDoctor(t, stores, "Gregory House", 150)
	first := seedPatient(t, stores, "Jane Roe")
	second := seedPatient(t, stores, "John Doe")

	// Repeat visits must not produce duplicate entries.
	seedAppointment(t, stores, doctor.ID, first.ID, "2025-01-10", "10:00", entity.AppointmentCompleted)
	seedAppointment(t, stores, doctor.ID, first.ID, "2025-01-17", "10:00", entity.AppointmentScheduled)
	seedAppointment(t, stores, doctor.ID, second.ID, "2025-01-11", "09:00", entity.AppointmentCancelled)

	patients, err := service.ListDoctorPatients(ctx, doctor.ID)

	require.NoError(t, err)
	require.Len(t, patients, 2)
	ids := []uuid.UUID{patients[0].ID, patients[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
}

func TestProfileService_ListDoctorPatients_NoAppointments(t *testing.T) {
	service, stores := createTestProfileService(t)
	doctor := seedDoctor(t, stores, "Gregory House", 150)

	patients, err := service.ListDoctorPatients(context.Background(), doctor.ID)

	require.NoError(t, err)
	assert.NotNil(t, patients)
	assert.Empty(t, patients)
}

func TestProfileService_GetPatientDetails(t *testing.T) {
	service, stores := createTestProfileService(t)
	ctx := context.Background()
	doctor := seedDoctor(t, stores, "Gregory House", 150)
	patient := seedPatient(t, stores, "Jane Roe")

	_, err := service.GetPatientDetails(ctx, doctor.ID, patient.ID)
	assert.ErrorIs(t, err, domainerrors.ErrRelationshipNotFound)

	seedAppointment(t, stores, doctor.ID, patient.ID, "2025-01-10", "10:00", entity.AppointmentScheduled)

	details, err := service.GetPatientDetails(ctx, doctor.ID, patient.ID)
	require.NoError(t, err)
	assert.Equal(t, patient.ID, details.ID)
	assert.Equal(t, "Jane Roe", details.Name)
	assert.NotNil(t, details.PatientProfile)
}
