package impl

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"medcare/internal/domain/entity"
	domainerrors "medcare/internal/domain/errors"
	"medcare/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clinicFixtures wires every service over one shared in-memory store, the way
// the production container does over one database.
type clinicFixtures struct {
	auth         usecase.AuthUsecase
	profiles     usecase.ProfileUsecase
	appointments usecase.AppointmentUsecase
	records      usecase.RecordUsecase
	diagnoses    usecase.DiagnosisUsecase
	stores       *memStores
	notifier     *fakeNotifier
	payments     *fakePaymentProcessor
}

func createClinic(t *testing.T) clinicFixtures {
	t.Helper()

	stores := newMemStores()
	cfg := newTestConfig()
	logger := newDiscardLogger()
	notifier := &fakeNotifier{}
	payments := &fakePaymentProcessor{}

	return clinicFixtures{
		auth: NewAuthService(AuthServiceParams{
			TxManager:    stores,
			UserRepo:     stores.users,
			Hasher:       &fakeHasher{},
			TokenService: &fakeTokenService{},
			Config:       cfg,
			Logger:       logger,
		}),
		profiles: NewProfileService(stores, stores.users, stores.appointments, logger),
		appointments: NewAppointmentService(AppointmentServiceParams{
			TxManager:       stores,
			UserRepo:        stores.users,
			AppointmentRepo: stores.appointments,
			DiagnosisRepo:   stores.diagnoses,
			Payments:        payments,
			Config:          cfg,
			Logger:          logger,
		}),
		records: NewRecordService(RecordServiceParams{
			RecordRepo:      stores.records,
			AppointmentRepo: stores.appointments,
			BlobStore:       newFakeBlobStore(),
			Config:          cfg,
			Logger:          logger,
		}),
		diagnoses: NewDiagnosisService(DiagnosisServiceParams{
			DiagnosisRepo:   stores.diagnoses,
			AppointmentRepo: stores.appointments,
			UserRepo:        stores.users,
			Notifier:        notifier,
			Logger:          logger,
		}),
		stores:   stores,
		notifier: notifier,
		payments: payments,
	}
}

// TestClinicVisitLifecycle walks one visit end to end: sign-up, booking,
// records, the consultation outcome and payment.
func TestClinicVisitLifecycle(t *testing.T) {
	clinic := createClinic(t)
	ctx := context.Background()

	// Sign-up.
	patientOut, err := clinic.auth.Register(ctx, &usecase.RegisterInput{
		Name: "Jane Roe", Email: "jane@example.com", Password: "Password123", Role: "patient",
	})
	require.NoError(t, err)
	patient := patientOut.User

	doctorOut, err := clinic.auth.Register(ctx, &usecase.RegisterInput{
		Name: "Gregory House", Email: "house@example.com", Password: "Password123", Role: "doctor",
	})
	require.NoError(t, err)
	doctor := doctorOut.User

	// The doctor completes their profile before taking bookings.
	fee := 100.0
	specialization := "Diagnostics"
	_, err = clinic.profiles.UpdateDoctorProfile(ctx, doctor.ID, &usecase.UpdateDoctorProfileInput{
		Specialization:  &specialization,
		ConsultationFee: &fee,
	})
	require.NoError(t, err)

	// The patient logs in and finds the doctor in the directory.
	login, err := clinic.auth.Login(ctx, &usecase.LoginInput{
		Email: "jane@example.com", Password: "Password123",
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("access|%s|patient", patient.ID), login.AccessToken)

	directory, err := clinic.profiles.ListDoctors(ctx)
	require.NoError(t, err)
	require.Len(t, directory, 1)
	assert.InDelta(t, 100, directory[0].DoctorProfile.ConsultationFee, 0.001)

	// Booking. The fee is captured at booking time.
	appointment, err := clinic.appointments.Book(ctx, patient.ID, &usecase.BookAppointmentInput{
		DoctorID: doctor.ID, Date: "2025-01-10", Time: "10:00", Reason: "persistent cough",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentScheduled, appointment.Status)
	assert.InDelta(t, 100, appointment.ConsultationFee, 0.001)

	// Someone else wants the same slot.
	rivalOut, err := clinic.auth.Register(ctx, &usecase.RegisterInput{
		Name: "John Doe", Email: "john@example.com", Password: "Password123", Role: "patient",
	})
	require.NoError(t, err)

	_, err = clinic.appointments.Book(ctx, rivalOut.User.ID, &usecase.BookAppointmentInput{
		DoctorID: doctor.ID, Date: "2025-01-10", Time: "10:00", Reason: "annual physical",
	})
	assert.ErrorIs(t, err, domainerrors.ErrSlotConflict)

	// The patient shares a lab report ahead of the visit and the doctor,
	// now linked through the booking, reviews it.
	record, err := clinic.records.Upload(ctx, patient.ID, &usecase.UploadRecordInput{
		Filename:    "blood-panel.pdf",
		ContentType: "application/pdf",
		SizeBytes:   19,
		Description: "blood panel from the lab",
		Content:     strings.NewReader("blood panel results"),
	})
	require.NoError(t, err)

	shared, err := clinic.records.ListForDoctor(ctx, doctor.ID, patient.ID)
	require.NoError(t, err)
	require.Len(t, shared, 1)

	reviewed, err := clinic.records.Review(ctx, doctor.ID, record.ID)
	require.NoError(t, err)
	assert.True(t, reviewed.Reviewed)
	assert.Equal(t, doctor.ID, *reviewed.ReviewedBy)

	// The visit happens and the doctor records the outcome.
	_, err = clinic.appointments.UpdateStatus(ctx, doctor.ID, appointment.ID, &usecase.UpdateAppointmentStatusInput{
		Status: "completed",
	})
	require.NoError(t, err)

	diagnosis, err := clinic.diagnoses.Create(ctx, doctor.ID, &usecase.CreateDiagnosisInput{
		PatientID:     patient.ID,
		AppointmentID: &appointment.ID,
		Diagnosis:     "Acute bronchitis",
		TreatmentPlan: "rest and fluids",
		Prescriptions: []string{"dextromethorphan"},
	})
	require.NoError(t, err)

	require.Len(t, clinic.notifier.sent, 1)
	assert.Equal(t, "jane@example.com", clinic.notifier.sent[0].To)

	// The patient sees the full picture on the appointment.
	details, err := clinic.appointments.GetDetails(ctx, patient.ID, entity.RolePatient, appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentCompleted, details.Appointment.Status)
	assert.Equal(t, "Gregory House", details.Doctor.Name)
	require.NotNil(t, details.Diagnosis)
	assert.Equal(t, diagnosis.ID, details.Diagnosis.ID)

	// Settle the bill.
	payment, err := clinic.appointments.Pay(ctx, patient.ID, appointment.ID, &usecase.PayAppointmentInput{
		PaymentMethod: "pm_card_visa",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPaid, payment.Appointment.PaymentStatus)
	require.Len(t, clinic.payments.requests, 1)
	assert.Equal(t, int64(10000), clinic.payments.requests[0].AmountCents)

	// The 10:00 slot stays taken, but the rival can book another time.
	rivalAppointment, err := clinic.appointments.Book(ctx, rivalOut.User.ID, &usecase.BookAppointmentInput{
		DoctorID: doctor.ID, Date: "2025-01-10", Time: "11:00", Reason: "annual physical",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentScheduled, rivalAppointment.Status)

	// And the doctor's patient list now has both of them.
	roster, err := clinic.profiles.ListDoctorPatients(ctx, doctor.ID)
	require.NoError(t, err)
	assert.Len(t, roster, 2)
}
