package service

import (
	"context"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/carelog/carelog-server-go/internal/errors"
	"github.com/carelog/carelog-server-go/internal/model"
)

func newPatientService() (*PatientService, *mockPatientRepo, *mockCareLogRepo, *mockNoteRepo, *mockShareLinkRepo, *mockUserRepo) {
	patientRepo := new(mockPatientRepo)
	careLogRepo := new(mockCareLogRepo)
	noteRepo := new(mockNoteRepo)
	shareLinkRepo := new(mockShareLinkRepo)
	userRepo := new(mockUserRepo)
	svc := NewPatientService(patientRepo, careLogRepo, noteRepo, shareLinkRepo, userRepo)
	return svc, patientRepo, careLogRepo, noteRepo, shareLinkRepo, userRepo
}

func caregiver() model.SessionUser {
	return model.SessionUser{ID: "c-1", Name: "Pat", Email: "pat@example.com", Role: model.RoleCaregiver}
}

func doctor() model.SessionUser {
	return model.SessionUser{ID: "d-1", Name: "Dr. Kim", Email: "kim@example.com", Role: model.RoleDoctor}
}

func TestListPatients(t *testing.T) {
	t.Run("caregiver sees all patients", func(t *testing.T) {
		svc, patientRepo, _, _, _, _ := newPatientService()

		all := []model.Patient{{ID: "p-1"}, {ID: "p-2"}}
		patientRepo.On("FindAll", mock.Anything).Return(all, nil)

		patients, err := svc.List(context.Background(), caregiver())
		require.NoError(t, err)
		assert.Len(t, patients, 2)
		patientRepo.AssertNotCalled(t, "FindVisibleToDoctor")
	})

	t.Run("doctor sees the visibility-filtered set", func(t *testing.T) {
		svc, patientRepo, _, _, _, _ := newPatientService()

		visible := []model.Patient{{ID: "p-1"}}
		patientRepo.On("FindVisibleToDoctor", mock.Anything, "kim@example.com").Return(visible, nil)

		patients, err := svc.List(context.Background(), doctor())
		require.NoError(t, err)
		assert.Len(t, patients, 1)
		patientRepo.AssertNotCalled(t, "FindAll")
	})

	t.Run("unknown role sees nothing", func(t *testing.T) {
		svc, patientRepo, _, _, _, _ := newPatientService()

		patients, err := svc.List(context.Background(), model.SessionUser{Role: "admin"})
		require.NoError(t, err)
		assert.Empty(t, patients)
		patientRepo.AssertNotCalled(t, "FindAll")
		patientRepo.AssertNotCalled(t, "FindVisibleToDoctor")
	})
}

func TestCreatePatient(t *testing.T) {
	t.Run("missing id fails validation", func(t *testing.T) {
		svc, patientRepo, _, _, _, _ := newPatientService()

		patient, err := svc.Create(context.Background(), caregiver(), map[string]any{"name": "Timmy"})
		require.Error(t, err)
		assert.Nil(t, patient)
		assert.Equal(t, apperrors.ErrCodeMissingRequired, apperrors.GetCode(err))
		patientRepo.AssertNotCalled(t, "Create")
	})

	t.Run("existing id conflicts", func(t *testing.T) {
		svc, patientRepo, _, _, _, _ := newPatientService()

		patientRepo.On("FindByID", mock.Anything, "p-1").Return(&model.Patient{ID: "p-1"}, nil)

		patient, err := svc.Create(context.Background(), caregiver(), map[string]any{"id": "p-1"})
		require.Error(t, err)
		assert.Nil(t, patient)
		assert.Equal(t, apperrors.ErrCodeAlreadyExists, apperrors.GetCode(err))
		patientRepo.AssertNotCalled(t, "Create")
	})

	t.Run("doctor creator overrides the assignment list", func(t *testing.T) {
		svc, patientRepo, _, _, _, _ := newPatientService()

		patientRepo.On("FindByID", mock.Anything, "p-1").Return(nil, nil)
		patientRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.CreatePatientParams) bool {
			return p.ID == "p-1" &&
				len(p.AssignedDoctorIDs) == 1 &&
				p.AssignedDoctorIDs[0] == "kim@example.com"
		})).Return(&model.Patient{ID: "p-1", AssignedDoctorIDs: []string{"kim@example.com"}}, nil)

		doc := map[string]any{
			"id":                "p-1",
			"name":              "Timmy",
			"assignedDoctorIds": []any{"someone-else@example.com"},
		}
		patient, err := svc.Create(context.Background(), doctor(), doc)
		require.NoError(t, err)
		require.NotNil(t, patient)
		patientRepo.AssertExpectations(t)
	})

	t.Run("open fields survive into the stored document", func(t *testing.T) {
		svc, patientRepo, _, _, _, _ := newPatientService()

		patientRepo.On("FindByID", mock.Anything, "p-1").Return(nil, nil)
		patientRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.CreatePatientParams) bool {
			return p.ID == "p-1" &&
				string(p.Data) != "" &&
				// canonical fields are extracted, not duplicated in data
				!strings.Contains(string(p.Data), `"id"`)
		})).Return(&model.Patient{ID: "p-1", Data: types.JSONText(`{"name":"Timmy","favoriteColor":"green"}`)}, nil)

		doc := map[string]any{"id": "p-1", "name": "Timmy", "favoriteColor": "green"}
		_, err := svc.Create(context.Background(), caregiver(), doc)
		require.NoError(t, err)
	})
}

func TestAssignPatient(t *testing.T) {
	t.Run("doctor is forbidden", func(t *testing.T) {
		svc, patientRepo, _, _, _, _ := newPatientService()

		patient, err := svc.Assign(context.Background(), doctor(), "p-1", []string{"kim@example.com"})
		require.Error(t, err)
		assert.Nil(t, patient)
		assert.Equal(t, apperrors.ErrCodeForbidden, apperrors.GetCode(err))
		patientRepo.AssertNotCalled(t, "ReplaceAssignedDoctors")
	})

	t.Run("empty list fails validation", func(t *testing.T) {
		svc, _, _, _, _, _ := newPatientService()

		patient, err := svc.Assign(context.Background(), caregiver(), "p-1", nil)
		require.Error(t, err)
		assert.Nil(t, patient)
		assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))
	})

	t.Run("unknown patient is not found", func(t *testing.T) {
		svc, patientRepo, _, _, _, _ := newPatientService()

		patientRepo.On("ReplaceAssignedDoctors", mock.Anything, "nope", []string{"kim@example.com"}).
			Return(nil, nil)

		patient, err := svc.Assign(context.Background(), caregiver(), "nope", []string{"kim@example.com"})
		require.Error(t, err)
		assert.Nil(t, patient)
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
	})

	t.Run("replaces rather than merges", func(t *testing.T) {
		svc, patientRepo, _, _, _, _ := newPatientService()

		patientRepo.On("ReplaceAssignedDoctors", mock.Anything, "p-1", []string{"b@x.com"}).
			Return(&model.Patient{ID: "p-1", AssignedDoctorIDs: []string{"b@x.com"}}, nil)

		patient, err := svc.Assign(context.Background(), caregiver(), "p-1", []string{"b@x.com"})
		require.NoError(t, err)
		assert.Equal(t, []string{"b@x.com"}, []string(patient.AssignedDoctorIDs))
		patientRepo.AssertExpectations(t)
	})
}

func TestListDoctors(t *testing.T) {
	t.Run("doctor is forbidden", func(t *testing.T) {
		svc, _, _, _, _, userRepo := newPatientService()

		doctors, err := svc.Doctors(context.Background(), doctor())
		require.Error(t, err)
		assert.Nil(t, doctors)
		assert.Equal(t, apperrors.ErrCodeForbidden, apperrors.GetCode(err))
		userRepo.AssertNotCalled(t, "ListDoctors")
	})

	t.Run("caregiver gets email and name only", func(t *testing.T) {
		svc, _, _, _, _, userRepo := newPatientService()

		userRepo.On("ListDoctors", mock.Anything).Return([]model.DoctorInfo{
			{Email: "kim@example.com", Name: "Dr. Kim"},
		}, nil)

		doctors, err := svc.Doctors(context.Background(), caregiver())
		require.NoError(t, err)
		require.Len(t, doctors, 1)
		assert.Equal(t, "kim@example.com", doctors[0].Email)
	})
}

func TestDeletePatient(t *testing.T) {
	t.Run("unknown patient is not found", func(t *testing.T) {
		svc, patientRepo, careLogRepo, _, _, _ := newPatientService()

		patientRepo.On("FindByID", mock.Anything, "nope").Return(nil, nil)

		err := svc.Delete(context.Background(), "nope")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
		careLogRepo.AssertNotCalled(t, "DeleteByPatient")
	})

	t.Run("cascades over logs, notes and share link", func(t *testing.T) {
		svc, patientRepo, careLogRepo, noteRepo, shareLinkRepo, _ := newPatientService()

		patientRepo.On("FindByID", mock.Anything, "p-1").Return(&model.Patient{ID: "p-1"}, nil)
		careLogRepo.On("DeleteByPatient", mock.Anything, "p-1").Return(nil)
		noteRepo.On("DeleteByPatient", mock.Anything, "p-1").Return(nil)
		shareLinkRepo.On("Delete", mock.Anything, "p-1").Return(nil)
		patientRepo.On("Delete", mock.Anything, "p-1").Return(nil)

		require.NoError(t, svc.Delete(context.Background(), "p-1"))

		careLogRepo.AssertExpectations(t)
		noteRepo.AssertExpectations(t)
		shareLinkRepo.AssertExpectations(t)
		patientRepo.AssertExpectations(t)
	})
}
