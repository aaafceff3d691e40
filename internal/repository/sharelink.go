package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/carelog/carelog-server-go/internal/model"
	redisclient "github.com/carelog/carelog-server-go/internal/redis"
)

// ShareLinkRepository keeps at most one link per patient in Redis. Values
// carry their own expiry and are written without a TTL: stale links persist
// until the next read or create touches them.
type ShareLinkRepository interface {
	FindByPatient(ctx context.Context, patientID string) (*model.ShareLink, error)
	Save(ctx context.Context, link *model.ShareLink) error
	Delete(ctx context.Context, patientID string) error
}

type shareLinkRepo struct {
	client *redisclient.Client
}

func NewShareLinkRepository(client *redisclient.Client) ShareLinkRepository {
	return &shareLinkRepo{client: client}
}

func (r *shareLinkRepo) FindByPatient(ctx context.Context, patientID string) (*model.ShareLink, error) {
	data, err := r.client.Get(ctx, redisclient.ShareLinkKey(patientID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var link model.ShareLink
	if err := json.Unmarshal([]byte(data), &link); err != nil {
		return nil, fmt.Errorf("unmarshal share link: %w", err)
	}
	return &link, nil
}

// Save overwrites any existing link for the patient.
func (r *shareLinkRepo) Save(ctx context.Context, link *model.ShareLink) error {
	data, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("marshal share link: %w", err)
	}
	return r.client.Set(ctx, redisclient.ShareLinkKey(link.PatientID), data, 0).Err()
}

func (r *shareLinkRepo) Delete(ctx context.Context, patientID string) error {
	return r.client.Del(ctx, redisclient.ShareLinkKey(patientID)).Err()
}
