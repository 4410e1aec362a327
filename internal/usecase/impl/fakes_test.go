package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"medcare/config"
	"medcare/internal/domain/entity"
	domainerrors "medcare/internal/domain/errors"
	"medcare/internal/domain/repository"
	"medcare/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:        12,
			AccessTokenTTL:    30 * time.Minute,
			RefreshTokenTTL:   7 * 24 * time.Hour,
			PasswordMinLength: 6,
		},
		Blob: &config.BlobConfig{
			SignedURLTTL: 15 * time.Minute,
		},
		Payment: &config.PaymentConfig{
			Currency: "usd",
		},
	}

	return cfg
}

// --- In-Memory Repositories ---
//
// The fakes honor the same contracts as the postgres implementations: not
// found sentinels, backfilled IDs and timestamps, the slot uniqueness rule,
// and cloned returns so callers never share memory with "storage".

type memStores struct {
	users        *memUserRepo
	appointments *memAppointmentRepo
	records      *memRecordRepo
	diagnoses    *memDiagnosisRepo
}

func newMemStores() *memStores {
	return &memStores{
		users:        &memUserRepo{byID: make(map[uuid.UUID]*entity.User)},
		appointments: &memAppointmentRepo{byID: make(map[uuid.UUID]*entity.Appointment)},
		records:      &memRecordRepo{byID: make(map[uuid.UUID]*entity.MedicalRecord)},
		diagnoses:    &memDiagnosisRepo{byID: make(map[uuid.UUID]*entity.Diagnosis)},
	}
}

func (s *memStores) NewUserRepository() repository.UserRepository { return s.users }
func (s *memStores) NewAppointmentRepository() repository.AppointmentRepository {
	return s.appointments
}
func (s *memStores) NewMedicalRecordRepository() repository.MedicalRecordRepository {
	return s.records
}
func (s *memStores) NewDiagnosisRepository() repository.DiagnosisRepository { return s.diagnoses }

// Execute lets the stores double as a pass-through transaction manager.
func (s *memStores) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(s)
}

type memUserRepo struct {
	byID map[uuid.UUID]*entity.User
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return cloneUser(user), nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.byID {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.User, error) {
	users := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := r.byID[id]; ok {
			users = append(users, cloneUser(user))
		}
	}

	return users, nil
}

func (r *memUserRepo) FindByRole(_ context.Context, role entity.Role) ([]*entity.User, error) {
	var users []*entity.User
	for _, user := range r.byID {
		if user.Role == role {
			users = append(users, cloneUser(user))
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })

	return users, nil
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, existing := range r.byID {
		if existing.Email == user.Email {
			return domainerrors.ErrDuplicateIdentity.WrapMessage("email already registered")
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.PatientProfile != nil {
		user.PatientProfile.UserID = user.ID
	}
	if user.DoctorProfile != nil {
		user.DoctorProfile.UserID = user.ID
	}
	r.byID[user.ID] = cloneUser(user)

	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.byID[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	user.UpdatedAt = time.Now().UTC()
	r.byID[user.ID] = cloneUser(user)

	return nil
}

type memAppointmentRepo struct {
	byID map[uuid.UUID]*entity.Appointment
}

func (r *memAppointmentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Appointment, error) {
	appointment, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrAppointmentNotFound
	}

	return cloneAppointment(appointment), nil
}

func (r *memAppointmentRepo) FindByPatient(_ context.Context, patientID uuid.UUID) ([]*entity.Appointment, error) {
	var appointments []*entity.Appointment
	for _, appointment := range r.byID {
		if appointment.PatientID == patientID {
			appointments = append(appointments, cloneAppointment(appointment))
		}
	}
	sortAppointments(appointments)

	return appointments, nil
}

func (r *memAppointmentRepo) FindByDoctor(_ context.Context, doctorID uuid.UUID) ([]*entity.Appointment, error) {
	var appointments []*entity.Appointment
	for _, appointment := range r.byID {
		if appointment.DoctorID == doctorID {
			appointments = append(appointments, cloneAppointment(appointment))
		}
	}
	sortAppointments(appointments)

	return appointments, nil
}

func (r *memAppointmentRepo) CountActiveAtSlot(_ context.Context, doctorID uuid.UUID, date, timeOfDay string) (int64, error) {
	var count int64
	for _, appointment := range r.byID {
		if appointment.DoctorID == doctorID && appointment.Date == date && appointment.Time == timeOfDay &&
			appointment.Status != entity.AppointmentCancelled {
			count++
		}
	}

	return count, nil
}

func (r *memAppointmentRepo) ExistsBetween(_ context.Context, doctorID, patientID uuid.UUID, includeCancelled bool) (bool, error) {
	for _, appointment := range r.byID {
		if appointment.DoctorID != doctorID || appointment.PatientID != patientID {
			continue
		}
		if !includeCancelled && appointment.Status == entity.AppointmentCancelled {
			continue
		}

		return true, nil
	}

	return false, nil
}

func (r *memAppointmentRepo) DistinctPatientIDs(_ context.Context, doctorID uuid.UUID) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, appointment := range r.byID {
		if appointment.DoctorID == doctorID && !seen[appointment.PatientID] {
			seen[appointment.PatientID] = true
			ids = append(ids, appointment.PatientID)
		}
	}

	return ids, nil
}

func (r *memAppointmentRepo) Create(_ context.Context, appointment *entity.Appointment) error {
	if r.activeSlotTakenByOther(appointment) {
		return domainerrors.ErrSlotConflict.WrapMessage("slot already booked")
	}

	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	now := time.Now().UTC()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now
	r.byID[appointment.ID] = cloneAppointment(appointment)

	return nil
}

func (r *memAppointmentRepo) Update(_ context.Context, appointment *entity.Appointment) error {
	if _, ok := r.byID[appointment.ID]; !ok {
		return repository.ErrAppointmentNotFound
	}
	if r.activeSlotTakenByOther(appointment) {
		return domainerrors.ErrSlotConflict.WrapMessage("slot already booked")
	}
	appointment.UpdatedAt = time.Now().UTC()
	r.byID[appointment.ID] = cloneAppointment(appointment)

	return nil
}

// activeSlotTakenByOther mirrors the partial unique index over non-cancelled
// rows that guards (doctor, date, time) in the real schema.
func (r *memAppointmentRepo) activeSlotTakenByOther(candidate *entity.Appointment) bool {
	if candidate.Status == entity.AppointmentCancelled {
		return false
	}
	for _, existing := range r.byID {
		if existing.ID == candidate.ID || existing.Status == entity.AppointmentCancelled {
			continue
		}
		if existing.DoctorID == candidate.DoctorID && existing.Date == candidate.Date && existing.Time == candidate.Time {
			return true
		}
	}

	return false
}

type memRecordRepo struct {
	byID map[uuid.UUID]*entity.MedicalRecord
}

func (r *memRecordRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.MedicalRecord, error) {
	record, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrMedicalRecordNotFound
	}

	return cloneRecord(record), nil
}

func (r *memRecordRepo) FindByPatient(_ context.Context, patientID uuid.UUID) ([]*entity.MedicalRecord, error) {
	var records []*entity.MedicalRecord
	for _, record := range r.byID {
		if record.PatientID == patientID {
			records = append(records, cloneRecord(record))
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].CreatedAt.After(records[j].CreatedAt) })

	return records, nil
}

func (r *memRecordRepo) Create(_ context.Context, record *entity.MedicalRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	record.CreatedAt = time.Now().UTC()
	r.byID[record.ID] = cloneRecord(record)

	return nil
}

func (r *memRecordRepo) Update(_ context.Context, record *entity.MedicalRecord) error {
	if _, ok := r.byID[record.ID]; !ok {
		return repository.ErrMedicalRecordNotFound
	}
	r.byID[record.ID] = cloneRecord(record)

	return nil
}

type memDiagnosisRepo struct {
	byID map[uuid.UUID]*entity.Diagnosis
}

func (r *memDiagnosisRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Diagnosis, error) {
	diagnosis, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrDiagnosisNotFound
	}

	return cloneDiagnosis(diagnosis), nil
}

func (r *memDiagnosisRepo) FindByDoctor(_ context.Context, doctorID uuid.UUID) ([]*entity.Diagnosis, error) {
	var diagnoses []*entity.Diagnosis
	for _, diagnosis := range r.byID {
		if diagnosis.DoctorID == doctorID {
			diagnoses = append(diagnoses, cloneDiagnosis(diagnosis))
		}
	}
	sort.Slice(diagnoses, func(i, j int) bool { return diagnoses[i].CreatedAt.After(diagnoses[j].CreatedAt) })

	return diagnoses, nil
}

func (r *memDiagnosisRepo) FindByDoctorAndPatient(_ context.Context, doctorID, patientID uuid.UUID) ([]*entity.Diagnosis, error) {
	var diagnoses []*entity.Diagnosis
	for _, diagnosis := range r.byID {
		if diagnosis.DoctorID == doctorID && diagnosis.PatientID == patientID {
			diagnoses = append(diagnoses, cloneDiagnosis(diagnosis))
		}
	}
	sort.Slice(diagnoses, func(i, j int) bool { return diagnoses[i].CreatedAt.After(diagnoses[j].CreatedAt) })

	return diagnoses, nil
}

func (r *memDiagnosisRepo) FindByAppointment(_ context.Context, appointmentID uuid.UUID) (*entity.Diagnosis, error) {
	for _, diagnosis := range r.byID {
		if diagnosis.AppointmentID != nil && *diagnosis.AppointmentID == appointmentID {
			return cloneDiagnosis(diagnosis), nil
		}
	}

	return nil, repository.ErrDiagnosisNotFound
}

func (r *memDiagnosisRepo) Create(_ context.Context, diagnosis *entity.Diagnosis) error {
	if diagnosis.ID == uuid.Nil {
		diagnosis.ID = uuid.New()
	}
	now := time.Now().UTC()
	diagnosis.CreatedAt = now
	diagnosis.UpdatedAt = now
	r.byID[diagnosis.ID] = cloneDiagnosis(diagnosis)

	return nil
}

func (r *memDiagnosisRepo) Update(_ context.Context, diagnosis *entity.Diagnosis) error {
	if _, ok := r.byID[diagnosis.ID]; !ok {
		return repository.ErrDiagnosisNotFound
	}
	diagnosis.UpdatedAt = time.Now().UTC()
	r.byID[diagnosis.ID] = cloneDiagnosis(diagnosis)

	return nil
}

// --- Entity Clones ---

func cloneUser(user *entity.User) *entity.User {
	clone := *user
	if user.PatientProfile != nil {
		profile := *user.PatientProfile
		clone.PatientProfile = &profile
	}
	if user.DoctorProfile != nil {
		profile := *user.DoctorProfile
		clone.DoctorProfile = &profile
	}

	return &clone
}

func cloneAppointment(appointment *entity.Appointment) *entity.Appointment {
	clone := *appointment
	if appointment.PaidAt != nil {
		paidAt := *appointment.PaidAt
		clone.PaidAt = &paidAt
	}

	return &clone
}

func cloneRecord(record *entity.MedicalRecord) *entity.MedicalRecord {
	clone := *record
	if record.ReviewedBy != nil {
		reviewedBy := *record.ReviewedBy
		clone.ReviewedBy = &reviewedBy
	}
	if record.ReviewedAt != nil {
		reviewedAt := *record.ReviewedAt
		clone.ReviewedAt = &reviewedAt
	}

	return &clone
}

func cloneDiagnosis(diagnosis *entity.Diagnosis) *entity.Diagnosis {
	clone := *diagnosis
	if diagnosis.AppointmentID != nil {
		appointmentID := *diagnosis.AppointmentID
		clone.AppointmentID = &appointmentID
	}
	clone.Prescriptions = append([]string(nil), diagnosis.Prescriptions...)

	return &clone
}

func sortAppointments(appointments []*entity.Appointment) {
	sort.Slice(appointments, func(i, j int) bool {
		if appointments[i].Date != appointments[j].Date {
			return appointments[i].Date > appointments[j].Date
		}

		return appointments[i].Time > appointments[j].Time
	})
}

// --- Fake Domain Services ---

type fakeHasher struct {
	failHash bool
}

func (f *fakeHasher) Hash(password string) (string, error) {
	if f.failHash {
		return "", fmt.Errorf("hash unavailable")
	}

	return "hashed:" + password, nil
}

func (f *fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeTokenService issues transparent tokens so tests can assert on subject
// and role without real signing.
type fakeTokenService struct{}

func (f *fakeTokenService) IssueAccess(subjectID uuid.UUID, role entity.Role) (string, error) {
	return fmt.Sprintf("access|%s|%s", subjectID, role), nil
}

func (f *fakeTokenService) IssueRefresh(subjectID uuid.UUID, role entity.Role) (string, error) {
	return fmt.Sprintf("refresh|%s|%s", subjectID, role), nil
}

func (f *fakeTokenService) Verify(tokenString string) (*service.Claims, error) {
	parts := strings.Split(tokenString, "|")
	if len(parts) != 3 || parts[0] != "access" {
		return nil, domainerrors.ErrInvalidCredential
	}

	return &service.Claims{
		Role:             entity.Role(parts[2]),
		Type:             service.TokenTypeAccess,
		Version:          service.ClaimsVersion,
		RegisteredClaims: jwt.RegisteredClaims{Subject: parts[1]},
	}, nil
}

func (f *fakeTokenService) Refresh(refreshToken string) (string, error) {
	parts := strings.Split(refreshToken, "|")
	if len(parts) != 3 || parts[0] != "refresh" {
		return "", domainerrors.ErrInvalidCredential
	}

	return fmt.Sprintf("access|%s|%s", parts[1], parts[2]), nil
}

func (f *fakeTokenService) RequireRole(claims *service.Claims, expected entity.Role) error {
	if claims == nil || claims.Role != expected {
		return domainerrors.ErrRoleMismatch
	}

	return nil
}

func (f *fakeTokenService) GetAccessTokenDuration() time.Duration { return 30 * time.Minute }

func (f *fakeTokenService) GetRefreshTokenDuration() time.Duration { return 7 * 24 * time.Hour }

type fakeBlobStore struct {
	objects map[string][]byte
	types   map[string]string
	putErr  error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (f *fakeBlobStore) Put(_ context.Context, key string, content io.Reader, contentType string) error {
	if f.putErr != nil {
		return f.putErr
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	f.objects[key] = data
	f.types[key] = contentType

	return nil
}

func (f *fakeBlobStore) SignedURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	return fmt.Sprintf("https://blobs.example/%s?expiry=%s", key, ttl), nil
}

type fakeNotifier struct {
	sent    []service.Message
	failErr error
}

func (f *fakeNotifier) Send(_ context.Context, msg service.Message) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.sent = append(f.sent, msg)

	return nil
}

type fakePaymentProcessor struct {
	requests []service.CreateIntentInput
	failErr  error
	nextID   string
}

func (f *fakePaymentProcessor) CreateIntent(_ context.Context, input service.CreateIntentInput) (*service.PaymentIntent, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	f.requests = append(f.requests, input)

	id := f.nextID
	if id == "" {
		id = "pi_test_1"
	}

	return &service.PaymentIntent{ID: id, Status: "succeeded"}, nil
}

// --- Seed Helpers ---

func seedPatient(t *testing.T, stores *memStores, name string) *entity.User {
	t.Helper()

	user := &entity.User{
		Email:          fmt.Sprintf("%s@example.com", uuid.NewString()),
		Name:           name,
		PasswordHash:   "hashed:Password123",
		Role:           entity.RolePatient,
		PatientProfile: &entity.PatientProfile{},
	}
	require.NoError(t, stores.users.Create(context.Background(), user))

	return user
}

func seedDoctor(t *testing.T, stores *memStores, name string, fee float64) *entity.User {
	t.Helper()

	user := &entity.User{
		Email:         fmt.Sprintf("%s@example.com", uuid.NewString()),
		Name:          name,
		PasswordHash:  "hashed:Password123",
		Role:          entity.RoleDoctor,
		DoctorProfile: &entity.DoctorProfile{ConsultationFee: fee},
	}
	require.NoError(t, stores.users.Create(context.Background(), user))

	return user
}

func seedAppointment(t *testing.T, stores *memStores, doctorID, patientID uuid.UUID, date, timeOfDay string, status entity.AppointmentStatus) *entity.Appointment {
	t.Helper()

	appointment := &entity.Appointment{
		PatientID:       patientID,
		DoctorID:        doctorID,
		Date:            date,
		Time:            timeOfDay,
		Reason:          "checkup",
		Status:          status,
		ConsultationFee: 100,
		PaymentStatus:   entity.PaymentUnpaid,
	}
	require.NoError(t, stores.appointments.Create(context.Background(), appointment))

	return appointment
}
