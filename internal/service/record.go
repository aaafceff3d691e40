package service

import (
	"context"

	apperrors "github.com/carelog/carelog-server-go/internal/errors"
	"github.com/carelog/carelog-server-go/internal/model"
	"github.com/carelog/carelog-server-go/internal/repository"
)

// RecordService covers the two append-only record streams: daily care logs
// and free-text clinician notes. createdAt is always stamped server-side;
// log content is stored verbatim without validation.
type RecordService struct {
	careLogRepo repository.CareLogRepository
	noteRepo    repository.NoteRepository
}

func NewRecordService(careLogRepo repository.CareLogRepository, noteRepo repository.NoteRepository) *RecordService {
	return &RecordService{
		careLogRepo: careLogRepo,
		noteRepo:    noteRepo,
	}
}

func (s *RecordService) CreateLog(ctx context.Context, params model.CreateCareLogParams) (*model.CareLog, error) {
	if params.PatientID == "" {
		return nil, apperrors.MissingRequired("patientId")
	}

	entry, err := s.careLogRepo.Create(ctx, params)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return entry, nil
}

func (s *RecordService) ListLogs(ctx context.Context, patientID string) ([]model.CareLog, error) {
	logs, err := s.careLogRepo.FindByPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return logs, nil
}

func (s *RecordService) CreateNote(ctx context.Context, patientID, note string) (*model.ClinicianNote, error) {
	if patientID == "" {
		return nil, apperrors.MissingRequired("patientId")
	}

	created, err := s.noteRepo.Create(ctx, model.CreateNoteParams{
		PatientID: patientID,
		Note:      note,
	})
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return created, nil
}

func (s *RecordService) ListNotes(ctx context.Context, patientID string) ([]model.ClinicianNote, error) {
	notes, err := s.noteRepo.FindByPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return notes, nil
}
