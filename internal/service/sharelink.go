package service

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/carelog/carelog-server-go/internal/config"
	apperrors "github.com/carelog/carelog-server-go/internal/errors"
	"github.com/carelog/carelog-server-go/internal/model"
	"github.com/carelog/carelog-server-go/internal/repository"
)

const (
	shareCodeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	shareCodeLength = 6
)

type ShareLinkService struct {
	shareLinkRepo repository.ShareLinkRepository
	patientRepo   repository.PatientRepository
	baseURL       string
}

func NewShareLinkService(
	shareLinkRepo repository.ShareLinkRepository,
	patientRepo repository.PatientRepository,
	baseURL string,
) *ShareLinkService {
	return &ShareLinkService{
		shareLinkRepo: shareLinkRepo,
		patientRepo:   patientRepo,
		baseURL:       baseURL,
	}
}

// Create supersedes any prior link for the patient. Codes come from a
// non-cryptographic source; collisions across patients are accepted.
func (s *ShareLinkService) Create(ctx context.Context, patientID string) (*model.ShareLink, error) {
	patient, err := s.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if patient == nil {
		return nil, apperrors.NotFound("Patient")
	}

	if err := s.shareLinkRepo.Delete(ctx, patientID); err != nil {
		return nil, apperrors.Database(err)
	}

	now := time.Now()
	code := generateShareCode()
	link := &model.ShareLink{
		PatientID: patientID,
		Code:      code,
		URL:       s.baseURL + "/share/" + code,
		ExpiresAt: now.Add(config.ShareLinkTTL),
		CreatedAt: now,
	}

	if err := s.shareLinkRepo.Save(ctx, link); err != nil {
		return nil, apperrors.Database(err)
	}

	log.Info().
		Str("patientId", patientID).
		Str("code", code).
		Time("expiresAt", link.ExpiresAt).
		Msg("share link created")

	return link, nil
}

// Get returns the active link. An expired link is deleted on this read and
// reported as not found.
func (s *ShareLinkService) Get(ctx context.Context, patientID string) (*model.ShareLink, error) {
	link, err := s.shareLinkRepo.FindByPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if link == nil {
		return nil, apperrors.NotFound("Share link")
	}

	if link.Expired(time.Now()) {
		if err := s.shareLinkRepo.Delete(ctx, patientID); err != nil {
			log.Error().Err(err).Str("patientId", patientID).Msg("delete expired share link failed")
		}
		return nil, apperrors.NotFound("Share link")
	}

	return link, nil
}

func generateShareCode() string {
	code := make([]byte, shareCodeLength)
	for i := range code {
		code[i] = shareCodeChars[rand.IntN(len(shareCodeChars))]
	}
	return string(code)
}
