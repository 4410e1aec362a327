package handler

import (
	"time"

	"medcare/internal/domain/entity"
	"medcare/internal/usecase"

	"github.com/google/uuid"
)

// The view types are the outward shapes of domain entities. Entities are
// never serialized directly; password material and storage keys stay inside.

// UserView is the public shape of an account.
type UserView struct {
	ID             uuid.UUID           `json:"id"`
	Email          string              `json:"email"`
	Name           string              `json:"name"`
	Role           entity.Role         `json:"role"`
	PatientProfile *PatientProfileView `json:"patient_profile,omitempty"`
	DoctorProfile  *DoctorProfileView  `json:"doctor_profile,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

// PatientProfileView is the public shape of a patient profile.
type PatientProfileView struct {
	Phone              string    `json:"phone"`
	Address            string    `json:"address"`
	DateOfBirth        string    `json:"date_of_birth"`
	Gender             string    `json:"gender"`
	EmergencyContact   string    `json:"emergency_contact"`
	BloodType          string    `json:"blood_type"`
	Allergies          string    `json:"allergies"`
	MedicalHistory     string    `json:"medical_history"`
	CurrentMedications string    `json:"current_medications"`
	InsuranceInfo      string    `json:"insurance_info"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// DoctorProfileView is the public shape of a doctor profile.
type DoctorProfileView struct {
	Phone           string    `json:"phone"`
	Address         string    `json:"address"`
	Specialization  string    `json:"specialization"`
	LicenseNumber   string    `json:"license_number"`
	Experience      string    `json:"experience"`
	Education       string    `json:"education"`
	Certifications  string    `json:"certifications"`
	ConsultationFee float64   `json:"consultation_fee"`
	WorkingHours    string    `json:"working_hours"`
	Bio             string    `json:"bio"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TokenPairView carries a full credential set plus the account it belongs to.
type TokenPairView struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	User         *UserView `json:"user"`
}

// AccessTokenView carries a replacement access token.
type AccessTokenView struct {
	AccessToken string `json:"access_token"`
}

// AppointmentView is the public shape of an appointment.
type AppointmentView struct {
	ID              uuid.UUID  `json:"id"`
	PatientID       uuid.UUID  `json:"patient_id"`
	DoctorID        uuid.UUID  `json:"doctor_id"`
	Date            string     `json:"date"`
	Time            string     `json:"time"`
	Reason          string     `json:"reason"`
	Status          string     `json:"status"`
	ConsultationFee float64    `json:"consultation_fee"`
	PaymentStatus   string     `json:"payment_status"`
	PaymentIntentID string     `json:"payment_intent_id,omitempty"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// AppointmentDetailsView bundles an appointment with both parties and the
// diagnosis written for it, when one exists.
type AppointmentDetailsView struct {
	Appointment *AppointmentView `json:"appointment"`
	Patient     *UserView        `json:"patient"`
	Doctor      *UserView        `json:"doctor"`
	Diagnosis   *DiagnosisView   `json:"diagnosis,omitempty"`
}

// PaymentView reports the outcome of settling an appointment.
type PaymentView struct {
	Appointment     *AppointmentView `json:"appointment"`
	PaymentIntentID string           `json:"payment_intent_id"`
	PaymentStatus   string           `json:"payment_status"`
}

// MedicalRecordView is the public shape of a medical record. The blob key is
// internal; downloads go through the signed-URL endpoint.
type MedicalRecordView struct {
	ID          uuid.UUID   `json:"id"`
	PatientID   uuid.UUID   `json:"patient_id"`
	UploadedBy  entity.Role `json:"uploaded_by"`
	Filename    string      `json:"filename"`
	ContentType string      `json:"content_type"`
	SizeBytes   int64       `json:"size_bytes"`
	Checksum    string      `json:"checksum"`
	Description string      `json:"description"`
	Reviewed    bool        `json:"reviewed"`
	ReviewedBy  *uuid.UUID  `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time  `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// RecordDownloadView carries a short-lived download URL for a record.
type RecordDownloadView struct {
	Record           *MedicalRecordView `json:"record"`
	URL              string             `json:"url"`
	ExpiresInSeconds int64              `json:"expires_in_seconds"`
}

// DiagnosisView is the public shape of a diagnosis.
type DiagnosisView struct {
	ID            uuid.UUID  `json:"id"`
	PatientID     uuid.UUID  `json:"patient_id"`
	DoctorID      uuid.UUID  `json:"doctor_id"`
	AppointmentID *uuid.UUID `json:"appointment_id,omitempty"`
	Diagnosis     string     `json:"diagnosis"`
	Symptoms      string     `json:"symptoms"`
	TreatmentPlan string     `json:"treatment_plan"`
	Notes         string     `json:"notes"`
	Prescriptions []string   `json:"prescriptions"`
	FollowUpDate  string     `json:"follow_up_date"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// --- Mapping Functions ---

func newUserView(user *entity.User) *UserView {
	if user == nil {
		return nil
	}

	view := &UserView{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
	if user.PatientProfile != nil {
		view.PatientProfile = &PatientProfileView{
			Phone:              user.PatientProfile.Phone,
			Address:            user.PatientProfile.Address,
			DateOfBirth:        user.PatientProfile.DateOfBirth,
			Gender:             user.PatientProfile.Gender,
			EmergencyContact:   user.PatientProfile.EmergencyContact,
			BloodType:          user.PatientProfile.BloodType,
			Allergies:          user.PatientProfile.Allergies,
			MedicalHistory:     user.PatientProfile.MedicalHistory,
			CurrentMedications: user.PatientProfile.CurrentMedications,
			InsuranceInfo:      user.PatientProfile.InsuranceInfo,
			UpdatedAt:          user.PatientProfile.UpdatedAt,
		}
	}
	if user.DoctorProfile != nil {
		view.DoctorProfile = &DoctorProfileView{
			Phone:           user.DoctorProfile.Phone,
			Address:         user.DoctorProfile.Address,
			Specialization:  user.DoctorProfile.Specialization,
			LicenseNumber:   user.DoctorProfile.LicenseNumber,
			Experience:      user.DoctorProfile.Experience,
			Education:       user.DoctorProfile.Education,
			Certifications:  user.DoctorProfile.Certifications,
			ConsultationFee: user.DoctorProfile.ConsultationFee,
			WorkingHours:    user.DoctorProfile.WorkingHours,
			Bio:             user.DoctorProfile.Bio,
			UpdatedAt:       user.DoctorProfile.UpdatedAt,
		}
	}

	return view
}

func newUserViews(users []*entity.User) []*UserView {
	views := make([]*UserView, 0, len(users))
	for _, user := range users {
		views = append(views, newUserView(user))
	}

	return views
}

func newAppointmentView(appointment *entity.Appointment) *AppointmentView {
	if appointment == nil {
		return nil
	}

	return &AppointmentView{
		ID:              appointment.ID,
		PatientID:       appointment.PatientID,
		DoctorID:        appointment.DoctorID,
		Date:            appointment.Date,
		Time:            appointment.Time,
		Reason:          appointment.Reason,
		Status:          appointment.Status.String(),
		ConsultationFee: appointment.ConsultationFee,
		PaymentStatus:   appointment.PaymentStatus.String(),
		PaymentIntentID: appointment.PaymentIntentID,
		PaidAt:          appointment.PaidAt,
		CreatedAt:       appointment.CreatedAt,
	}
}

func newAppointmentViews(appointments []*entity.Appointment) []*AppointmentView {
	views := make([]*AppointmentView, 0, len(appointments))
	for _, appointment := range appointments {
		views = append(views, newAppointmentView(appointment))
	}

	return views
}

func newAppointmentDetailsView(details *usecase.AppointmentDetails) *AppointmentDetailsView {
	return &AppointmentDetailsView{
		Appointment: newAppointmentView(details.Appointment),
		Patient:     newUserView(details.Patient),
		Doctor:      newUserView(details.Doctor),
		Diagnosis:   newDiagnosisView(details.Diagnosis),
	}
}

func newMedicalRecordView(record *entity.MedicalRecord) *MedicalRecordView {
	if record == nil {
		return nil
	}

	return &MedicalRecordView{
		ID:          record.ID,
		PatientID:   record.PatientID,
		UploadedBy:  record.UploadedBy,
		Filename:    record.Filename,
		ContentType: record.ContentType,
		SizeBytes:   record.SizeBytes,
		Checksum:    record.Checksum,
		Description: record.Description,
		Reviewed:    record.Reviewed,
		ReviewedBy:  record.ReviewedBy,
		ReviewedAt:  record.ReviewedAt,
		CreatedAt:   record.CreatedAt,
	}
}

func newMedicalRecordViews(records []*entity.MedicalRecord) []*MedicalRecordView {
	views := make([]*MedicalRecordView, 0, len(records))
	for _, record := range records {
		views = append(views, newMedicalRecordView(record))
	}

	return views
}

func newDiagnosisView(diagnosis *entity.Diagnosis) *DiagnosisView {
	if diagnosis == nil {
		return nil
	}

	return &DiagnosisView{
		ID:            diagnosis.ID,
		PatientID:     diagnosis.PatientID,
		DoctorID:      diagnosis.DoctorID,
		AppointmentID: diagnosis.AppointmentID,
		Diagnosis:     diagnosis.Diagnosis,
		Symptoms:      diagnosis.Symptoms,
		TreatmentPlan: diagnosis.TreatmentPlan,
		Notes:         diagnosis.Notes,
		Prescriptions: diagnosis.Prescriptions,
		FollowUpDate:  diagnosis.FollowUpDate,
		CreatedAt:     diagnosis.CreatedAt,
		UpdatedAt:     diagnosis.UpdatedAt,
	}
}

func newDiagnosisViews(diagnoses []*entity.Diagnosis) []*DiagnosisView {
	views := make([]*DiagnosisView, 0, len(diagnoses))
	for _, diagnosis := range diagnoses {
		views = append(views, newDiagnosisView(diagnosis))
	}

	return views
}
