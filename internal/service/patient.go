package service

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx/types"
	"github.com/rs/zerolog/log"

	apperrors "github.com/carelog/carelog-server-go/internal/errors"
	"github.com/carelog/carelog-server-go/internal/model"
	"github.com/carelog/carelog-server-go/internal/repository"
)

type PatientService struct {
	patientRepo   repository.PatientRepository
	careLogRepo   repository.CareLogRepository
	noteRepo      repository.NoteRepository
	shareLinkRepo repository.ShareLinkRepository
	userRepo      repository.UserRepository
}

func NewPatientService(
	patientRepo repository.PatientRepository,
	careLogRepo repository.CareLogRepository,
	noteRepo repository.NoteRepository,
	shareLinkRepo repository.ShareLinkRepository,
	userRepo repository.UserRepository,
) *PatientService {
	return &PatientService{
		patientRepo:   patientRepo,
		careLogRepo:   careLogRepo,
		noteRepo:      noteRepo,
		shareLinkRepo: shareLinkRepo,
		userRepo:      userRepo,
	}
}

// List applies role-based visibility: caregivers see everything, doctors see
// patients assigned to them plus unassigned ones, anything else sees nothing.
func (s *PatientService) List(ctx context.Context, user model.SessionUser) ([]model.Patient, error) {
	var (
		patients []model.Patient
		err      error
	)

	switch user.Role {
	case model.RoleCaregiver:
		patients, err = s.patientRepo.FindAll(ctx)
	case model.RoleDoctor:
		patients, err = s.patientRepo.FindVisibleToDoctor(ctx, user.Email)
	default:
		return []model.Patient{}, nil
	}

	if err != nil {
		return nil, apperrors.Database(err)
	}
	return patients, nil
}

// Create accepts the raw patient document. The id is required; every other
// field is stored verbatim. A doctor creating a patient is assigned to it,
// overriding any caller-supplied assignment.
func (s *PatientService) Create(ctx context.Context, user model.SessionUser, doc map[string]any) (*model.Patient, error) {
	id, _ := doc["id"].(string)
	if id == "" {
		return nil, apperrors.MissingRequired("id")
	}

	var assignedDoctorID *string
	if v, ok := doc["assignedDoctorId"].(string); ok && v != "" {
		assignedDoctorID = &v
	}

	assignedDoctorIDs := stringSlice(doc["assignedDoctorIds"])
	if user.Role == model.RoleDoctor {
		assignedDoctorIDs = []string{user.Email}
	}

	existing, err := s.patientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if existing != nil {
		return nil, apperrors.AlreadyExists("Patient")
	}

	delete(doc, "id")
	delete(doc, "assignedDoctorId")
	delete(doc, "assignedDoctorIds")
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, apperrors.InvalidInput("patient", "document is not valid JSON")
	}

	patient, err := s.patientRepo.Create(ctx, model.CreatePatientParams{
		ID:                id,
		AssignedDoctorID:  assignedDoctorID,
		AssignedDoctorIDs: assignedDoctorIDs,
		Data:              types.JSONText(data),
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.AlreadyExists("Patient")
		}
		return nil, apperrors.Database(err)
	}

	log.Info().
		Str("patientId", patient.ID).
		Str("createdBy", user.ID).
		Msg("patient created")

	return patient, nil
}

// Assign replaces the assignment list wholesale. Caregiver-only.
func (s *PatientService) Assign(ctx context.Context, user model.SessionUser, patientID string, doctorEmails []string) (*model.Patient, error) {
	if user.Role != model.RoleCaregiver {
		return nil, apperrors.Forbidden("Only caregivers can assign patients")
	}
	if len(doctorEmails) == 0 {
		return nil, apperrors.ValidationError("doctorEmails must be a non-empty list")
	}

	patient, err := s.patientRepo.ReplaceAssignedDoctors(ctx, patientID, doctorEmails)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if patient == nil {
		return nil, apperrors.NotFound("Patient")
	}

	log.Info().
		Str("patientId", patientID).
		Strs("doctors", doctorEmails).
		Msg("patient assignment replaced")

	return patient, nil
}

// Doctors lists every doctor's email and name. Caregiver-only; no password
// material crosses this boundary.
func (s *PatientService) Doctors(ctx context.Context, user model.SessionUser) ([]model.DoctorInfo, error) {
	if user.Role != model.RoleCaregiver {
		return nil, apperrors.Forbidden("Only caregivers can list doctors")
	}

	doctors, err := s.userRepo.ListDoctors(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return doctors, nil
}

// Delete removes the patient and cascades over logs, notes and the share
// link. The cascade is a sequence of independent deletes with no rollback:
// a failure partway leaves earlier deletions in place.
func (s *PatientService) Delete(ctx context.Context, patientID string) error {
	patient, err := s.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		return apperrors.Database(err)
	}
	if patient == nil {
		return apperrors.NotFound("Patient")
	}

	if err := s.careLogRepo.DeleteByPatient(ctx, patientID); err != nil {
		log.Error().Err(err).Str("patientId", patientID).Msg("cascade: delete logs failed")
		return apperrors.Database(err)
	}
	if err := s.noteRepo.DeleteByPatient(ctx, patientID); err != nil {
		log.Error().Err(err).Str("patientId", patientID).Msg("cascade: delete notes failed")
		return apperrors.Database(err)
	}
	if err := s.shareLinkRepo.Delete(ctx, patientID); err != nil {
		log.Error().Err(err).Str("patientId", patientID).Msg("cascade: delete share link failed")
		return apperrors.Database(err)
	}
	if err := s.patientRepo.Delete(ctx, patientID); err != nil {
		return apperrors.Database(err)
	}

	log.Info().Str("patientId", patientID).Msg("patient deleted")
	return nil
}

func stringSlice(v any) []string {
	switch vals := v.(type) {
	case []string:
		return vals
	case []any:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
