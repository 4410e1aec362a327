package impl

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"medcare/config"
	deliverycontext "medcare/internal/delivery/context"
	"medcare/internal/domain/entity"
	domainerrors "medcare/internal/domain/errors"
	"medcare/internal/domain/repository"
	"medcare/internal/domain/service"
	"medcare/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// defaultCurrency applies when no payment currency is configured.
const defaultCurrency = "usd"

// appointmentService implements the AppointmentUsecase interface.
type appointmentService struct {
	txManager       repository.TransactionManager
	userRepo        repository.UserRepository
	appointmentRepo repository.AppointmentRepository
	diagnosisRepo   repository.DiagnosisRepository
	payments        service.PaymentProcessor
	currency        string
	logger          *slog.Logger
}

// AppointmentServiceParams holds dependencies for AppointmentService, injected by Fx.
type AppointmentServiceParams struct {
	fx.In

	TxManager       repository.TransactionManager
	UserRepo        repository.UserRepository
	AppointmentRepo repository.AppointmentRepository
	DiagnosisRepo   repository.DiagnosisRepository
	Payments        service.PaymentProcessor
	Config          *config.Config
	Logger          *slog.Logger
}

// NewAppointmentService is the constructor for appointmentService. It receives all dependencies as interfaces.
func NewAppointmentService(params AppointmentServiceParams) usecase.AppointmentUsecase {
	currency := defaultCurrency
	if params.Config != nil && params.Config.Payment != nil && params.Config.Payment.Currency != "" {
		currency = params.Config.Payment.Currency
	}

	return &appointmentService{
		txManager:       params.TxManager,
		userRepo:        params.UserRepo,
		appointmentRepo: params.AppointmentRepo,
		diagnosisRepo:   params.DiagnosisRepo,
		payments:        params.Payments,
		currency:        currency,
		logger:          params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *appointmentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Book reserves a (doctor, date, time) slot for the patient. The appointment
// starts scheduled and unpaid, with the fee frozen from the doctor's profile
// at booking time. Nothing is persisted when any step fails.
func (srv *appointmentService) Book(ctx context.Context, patientID uuid.UUID, input *usecase.BookAppointmentInput) (*entity.Appointment, error) {
	if err := validateSlot(input.Date, input.Time); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Booking appointment",
		slog.Any("patientID", patientID), slog.Any("doctorID", input.DoctorID),
		slog.String("date", input.Date), slog.String("time", input.Time))

	doctor, err := srv.userRepo.FindByID(ctx, input.DoctorID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("doctor not found")
		}

		return nil, errors.Wrap(err, "failed to find doctor")
	}
	if doctor.Role != entity.RoleDoctor {
		return nil, domainerrors.ErrNotFound.WrapMessage("doctor not found")
	}

	fee := consultationFee(doctor)

	var booked *entity.Appointment
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		appointmentRepo := repoFactory.NewAppointmentRepository()

		// Advisory pre-check; the partial unique index is what actually
		// serializes concurrent bookings of the same slot.
		taken, err := appointmentRepo.CountActiveAtSlot(ctx, input.DoctorID, input.Date, input.Time)
		if err != nil {
			return errors.Wrap(err, "failed to check slot availability")
		}
		if taken > 0 {
			return domainerrors.ErrSlotConflict.WrapMessage("slot already booked")
		}

		appointment := &entity.Appointment{
			PatientID:       patientID,
			DoctorID:        input.DoctorID,
			Date:            input.Date,
			Time:            input.Time,
			Reason:          input.Reason,
			Status:          entity.AppointmentScheduled,
			ConsultationFee: fee,
			PaymentStatus:   entity.PaymentUnpaid,
		}
		if err := appointmentRepo.Create(ctx, appointment); err != nil {
			return errors.Wrap(err, "failed to create appointment")
		}

		booked = appointment

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute booking transaction",
			slog.Any("patientID", patientID), slog.Any("doctorID", input.DoctorID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute booking transaction")
	}

	srv.log(ctx).Debug("Appointment booked", slog.Any("appointmentID", booked.ID))

	return booked, nil
}

// ListForPatient returns the patient's appointments, newest first.
func (srv *appointmentService) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*entity.Appointment, error) {
	appointments, err := srv.appointmentRepo.FindByPatient(ctx, patientID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list patient appointments")
	}

	return appointments, nil
}

// ListForDoctor returns the doctor's appointments, newest first.
func (srv *appointmentService) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*entity.Appointment, error) {
	appointments, err := srv.appointmentRepo.FindByDoctor(ctx, doctorID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list doctor appointments")
	}

	return appointments, nil
}

// GetDetails returns one appointment with both parties and the diagnosis
// referencing it, if any. Only the two participants may read it.
func (srv *appointmentService) GetDetails(ctx context.Context, actorID uuid.UUID, actorRole entity.Role, appointmentID uuid.UUID) (*usecase.AppointmentDetails, error) {
	appointment, err := srv.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, repository.ErrAppointmentNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("appointment not found")
		}

		return nil, errors.Wrap(err, "failed to find appointment")
	}

	switch actorRole {
	case entity.RolePatient:
		if appointment.PatientID != actorID {
			return nil, domainerrors.ErrAccessDenied.WrapMessage("appointment belongs to another patient")
		}
	case entity.RoleDoctor:
		if appointment.DoctorID != actorID {
			return nil, domainerrors.ErrAccessDenied.WrapMessage("appointment belongs to another doctor")
		}
	default:
		return nil, errors.WithStack(domainerrors.ErrAccessDenied)
	}

	patient, err := srv.userRepo.FindByID(ctx, appointment.PatientID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load appointment patient")
	}

	doctor, err := srv.userRepo.FindByID(ctx, appointment.DoctorID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load appointment doctor")
	}

	diagnosis, err := srv.diagnosisRepo.FindByAppointment(ctx, appointmentID)
	if err != nil && !errors.Is(err, repository.ErrDiagnosisNotFound) {
		return nil, errors.Wrap(err, "failed to load appointment diagnosis")
	}

	return &usecase.AppointmentDetails{
		Appointment: appointment,
		Patient:     patient,
		Doctor:      doctor,
		Diagnosis:   diagnosis,
	}, nil
}

// UpdateStatus moves an appointment to another recognized status. Only the
// owning doctor manages the lifecycle.
func (srv *appointmentService) UpdateStatus(ctx context.Context, doctorID uuid.UUID, appointmentID uuid.UUID, input *usecase.UpdateAppointmentStatusInput) (*entity.Appointment, error) {
	appointment, err := srv.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, repository.ErrAppointmentNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("appointment not found")
		}

		return nil, errors.Wrap(err, "failed to find appointment")
	}

	if appointment.DoctorID != doctorID {
		return nil, domainerrors.ErrAccessDenied.WrapMessage("appointment belongs to another doctor")
	}

	status := entity.AppointmentStatus(input.Status)
	if !appointment.Status.CanTransitionTo(status) {
		return nil, domainerrors.ErrInvalidStatus.WrapMessage(fmt.Sprintf("status %q is not recognized", input.Status))
	}

	srv.log(ctx).Info("Updating appointment status",
		slog.Any("appointmentID", appointmentID),
		slog.Any("from", appointment.Status), slog.Any("to", status))

	appointment.Status = status
	// Re-activating a cancelled appointment re-enters the unique slot index;
	// Update surfaces ErrSlotConflict when the slot was taken meanwhile.
	if err := srv.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, errors.Wrap(err, "failed to update appointment status")
	}

	return appointment, nil
}

// Pay captures the consultation fee for the patient's own appointment and
// records the provider's intent reference. Paying twice is rejected.
func (srv *appointmentService) Pay(ctx context.Context, patientID uuid.UUID, appointmentID uuid.UUID, input *usecase.PayAppointmentInput) (*usecase.PayAppointmentOutput, error) {
	appointment, err := srv.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, repository.ErrAppointmentNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("appointment not found")
		}

		return nil, errors.Wrap(err, "failed to find appointment")
	}

	if appointment.PatientID != patientID {
		return nil, domainerrors.ErrAccessDenied.WrapMessage("appointment belongs to another patient")
	}
	if appointment.PaymentStatus == entity.PaymentPaid {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("appointment is already paid")
	}

	intent, err := srv.payments.CreateIntent(ctx, service.CreateIntentInput{
		AmountCents:   int64(math.Round(appointment.ConsultationFee * 100)),
		Currency:      srv.currency,
		PaymentMethod: input.PaymentMethod,
		Description:   fmt.Sprintf("consultation on %s at %s", appointment.Date, appointment.Time),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create payment intent")
	}

	now := time.Now().UTC()
	appointment.PaymentStatus = entity.PaymentPaid
	appointment.PaymentIntentID = intent.ID
	appointment.PaidAt = &now
	if err := srv.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, errors.Wrap(err, "failed to record payment")
	}

	srv.log(ctx).Info("Consultation fee captured",
		slog.Any("appointmentID", appointment.ID), slog.String("intentID", intent.ID))

	return &usecase.PayAppointmentOutput{
		Appointment:     appointment,
		PaymentIntentID: intent.ID,
		PaymentStatus:   intent.Status,
	}, nil
}

// --- Helper Functions ---

// validateSlot checks the wire formats of the requested slot.
func validateSlot(date, timeOfDay string) error {
	if _, err := time.Parse(entity.DateLayout, date); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("date must be formatted as YYYY-MM-DD")
	}
	if _, err := time.Parse(entity.TimeLayout, timeOfDay); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("time must be formatted as HH:MM")
	}

	return nil
}

// consultationFee resolves the fee frozen onto a new appointment.
func consultationFee(doctor *entity.User) float64 {
	if doctor.DoctorProfile != nil && doctor.DoctorProfile.ConsultationFee > 0 {
		return doctor.DoctorProfile.ConsultationFee
	}

	return entity.DefaultConsultationFee
}
