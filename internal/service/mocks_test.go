package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/carelog/carelog-server-go/internal/model"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindByEmailAndRole(ctx context.Context, email string, role model.Role) (*model.User, error) {
	args := m.Called(ctx, email, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, params model.CreateUserParams) (*model.User, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) ListDoctors(ctx context.Context) ([]model.DoctorInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DoctorInfo), args.Error(1)
}

func (m *mockUserRepo) ListDoctorEmails(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) FindByTokenHash(ctx context.Context, tokenHash string) (*model.Session, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *mockSessionRepo) Create(ctx context.Context, params model.CreateSessionParams) (*model.Session, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *mockSessionRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockSessionRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

type mockPatientRepo struct {
	mock.Mock
}

func (m *mockPatientRepo) FindByID(ctx context.Context, id string) (*model.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Patient), args.Error(1)
}

func (m *mockPatientRepo) FindAll(ctx context.Context) ([]model.Patient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Patient), args.Error(1)
}

func (m *mockPatientRepo) FindVisibleToDoctor(ctx context.Context, doctorEmail string) ([]model.Patient, error) {
	args := m.Called(ctx, doctorEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Patient), args.Error(1)
}

func (m *mockPatientRepo) Create(ctx context.Context, params model.CreatePatientParams) (*model.Patient, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Patient), args.Error(1)
}

func (m *mockPatientRepo) ReplaceAssignedDoctors(ctx context.Context, id string, doctorEmails []string) (*model.Patient, error) {
	args := m.Called(ctx, id, doctorEmails)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Patient), args.Error(1)
}

func (m *mockPatientRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPatientRepo) CountUnassigned(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPatientRepo) BackfillAssignments(ctx context.Context, doctorEmails []string) (int64, error) {
	args := m.Called(ctx, doctorEmails)
	return args.Get(0).(int64), args.Error(1)
}

type mockCareLogRepo struct {
	mock.Mock
}

func (m *mockCareLogRepo) FindByPatient(ctx context.Context, patientID string) ([]model.CareLog, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CareLog), args.Error(1)
}

func (m *mockCareLogRepo) FindByPatientSince(ctx context.Context, patientID string, since time.Time) ([]model.CareLog, error) {
	args := m.Called(ctx, patientID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CareLog), args.Error(1)
}

func (m *mockCareLogRepo) Create(ctx context.Context, params model.CreateCareLogParams) (*model.CareLog, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CareLog), args.Error(1)
}

func (m *mockCareLogRepo) DeleteByPatient(ctx context.Context, patientID string) error {
	args := m.Called(ctx, patientID)
	return args.Error(0)
}

type mockNoteRepo struct {
	mock.Mock
}

func (m *mockNoteRepo) FindByPatient(ctx context.Context, patientID string) ([]model.ClinicianNote, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ClinicianNote), args.Error(1)
}

func (m *mockNoteRepo) Create(ctx context.Context, params model.CreateNoteParams) (*model.ClinicianNote, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClinicianNote), args.Error(1)
}

func (m *mockNoteRepo) DeleteByPatient(ctx context.Context, patientID string) error {
	args := m.Called(ctx, patientID)
	return args.Error(0)
}

type mockShareLinkRepo struct {
	mock.Mock
}

func (m *mockShareLinkRepo) FindByPatient(ctx context.Context, patientID string) (*model.ShareLink, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShareLink), args.Error(1)
}

func (m *mockShareLinkRepo) Save(ctx context.Context, link *model.ShareLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *mockShareLinkRepo) Delete(ctx context.Context, patientID string) error {
	args := m.Called(ctx, patientID)
	return args.Error(0)
}

type mockTextGenerator struct {
	mock.Mock
}

func (m *mockTextGenerator) GenerateText(ctx context.Context, system, prompt string) (string, error) {
	args := m.Called(ctx, system, prompt)
	return args.String(0), args.Error(1)
}
