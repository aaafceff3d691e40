package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/carelog/carelog-server-go/internal/errors"
	"github.com/carelog/carelog-server-go/internal/model"
)

func newShareLinkService() (*ShareLinkService, *mockShareLinkRepo, *mockPatientRepo) {
	shareLinkRepo := new(mockShareLinkRepo)
	patientRepo := new(mockPatientRepo)
	svc := NewShareLinkService(shareLinkRepo, patientRepo, "https://carelog.example.com")
	return svc, shareLinkRepo, patientRepo
}

func TestCreateShareLink(t *testing.T) {
	t.Run("unknown patient is not found", func(t *testing.T) {
		svc, shareLinkRepo, patientRepo := newShareLinkService()

		patientRepo.On("FindByID", mock.Anything, "nope").Return(nil, nil)

		link, err := svc.Create(context.Background(), "nope")
		require.Error(t, err)
		assert.Nil(t, link)
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
		shareLinkRepo.AssertNotCalled(t, "Save")
	})

	t.Run("supersedes the previous link", func(t *testing.T) {
		svc, shareLinkRepo, patientRepo := newShareLinkService()

		patientRepo.On("FindByID", mock.Anything, "p-1").Return(&model.Patient{ID: "p-1"}, nil)
		shareLinkRepo.On("Delete", mock.Anything, "p-1").Return(nil)
		shareLinkRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.ShareLink")).Return(nil)

		link, err := svc.Create(context.Background(), "p-1")
		require.NoError(t, err)
		require.NotNil(t, link)

		shareLinkRepo.AssertCalled(t, "Delete", mock.Anything, "p-1")
		shareLinkRepo.AssertCalled(t, "Save", mock.Anything, link)
	})

	t.Run("link shape", func(t *testing.T) {
		svc, shareLinkRepo, patientRepo := newShareLinkService()

		patientRepo.On("FindByID", mock.Anything, "p-1").Return(&model.Patient{ID: "p-1"}, nil)
		shareLinkRepo.On("Delete", mock.Anything, "p-1").Return(nil)
		shareLinkRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		link, err := svc.Create(context.Background(), "p-1")
		require.NoError(t, err)

		assert.Len(t, link.Code, 6)
		for _, c := range link.Code {
			assert.Contains(t, shareCodeChars, string(c))
		}
		assert.True(t, strings.HasPrefix(link.URL, "https://carelog.example.com/share/"))
		assert.True(t, strings.HasSuffix(link.URL, link.Code))

		remaining := time.Until(link.ExpiresAt)
		assert.Greater(t, remaining, 23*time.Hour)
		assert.LessOrEqual(t, remaining, 24*time.Hour)
	})
}

func TestGetShareLink(t *testing.T) {
	t.Run("no link is not found", func(t *testing.T) {
		svc, shareLinkRepo, _ := newShareLinkService()

		shareLinkRepo.On("FindByPatient", mock.Anything, "p-1").Return(nil, nil)

		link, err := svc.Get(context.Background(), "p-1")
		require.Error(t, err)
		assert.Nil(t, link)
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
	})

	t.Run("expired link is deleted on read", func(t *testing.T) {
		svc, shareLinkRepo, _ := newShareLinkService()

		stale := &model.ShareLink{
			PatientID: "p-1",
			Code:      "ABC123",
			ExpiresAt: time.Now().Add(-time.Minute),
		}
		shareLinkRepo.On("FindByPatient", mock.Anything, "p-1").Return(stale, nil)
		shareLinkRepo.On("Delete", mock.Anything, "p-1").Return(nil)

		link, err := svc.Get(context.Background(), "p-1")
		require.Error(t, err)
		assert.Nil(t, link)
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
		shareLinkRepo.AssertCalled(t, "Delete", mock.Anything, "p-1")
	})

	t.Run("active link is returned", func(t *testing.T) {
		svc, shareLinkRepo, _ := newShareLinkService()

		active := &model.ShareLink{
			PatientID: "p-1",
			Code:      "ABC123",
			URL:       "https://carelog.example.com/share/ABC123",
			ExpiresAt: time.Now().Add(time.Hour),
		}
		shareLinkRepo.On("FindByPatient", mock.Anything, "p-1").Return(active, nil)

		link, err := svc.Get(context.Background(), "p-1")
		require.NoError(t, err)
		assert.Equal(t, active, link)
		shareLinkRepo.AssertNotCalled(t, "Delete")
	})
}

func TestGenerateShareCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := generateShareCode()
		assert.Len(t, code, shareCodeLength)
		for _, c := range code {
			assert.Contains(t, shareCodeChars, string(c))
		}
		seen[code] = true
	}
	// 50 draws from a 36^6 space should not all collide.
	assert.Greater(t, len(seen), 1)
}
