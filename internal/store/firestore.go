package store

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/models"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore keeps one document per campaign, keyed by campaign ID.
type FirestoreStore struct {
	client     *firestore.Client
	collection string
}

func NewFirestore(ctx context.Context, projectID, collection string) (*FirestoreStore, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID must be provided to create a firestore client")
	}
	if collection == "" {
		collection = "campaigns"
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}
	return &FirestoreStore{client: client, collection: collection}, nil
}

func (s *FirestoreStore) SaveCampaign(ctx context.Context, c *models.Campaign) error {
	if _, err := s.client.Collection(s.collection).Doc(c.ID).Set(ctx, c); err != nil {
		return fmt.Errorf("failed to write campaign %s: %w", c.ID, err)
	}
	return nil
}

func (s *FirestoreStore) GetCampaign(ctx context.Context, id string) (*models.Campaign, error) {
	snap, err := s.client.Collection(s.collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read campaign %s: %w", id, err)
	}

	var c models.Campaign
	if err := snap.DataTo(&c); err != nil {
		return nil, fmt.Errorf("failed to decode campaign %s: %w", id, err)
	}
	return &c, nil
}

func (s *FirestoreStore) RecentCampaigns(ctx context.Context, limit int) ([]models.Campaign, error) {
	iter := s.client.Collection(s.collection).
		OrderBy("created_at", firestore.Desc).
		Limit(normalizeLimit(limit)).
		Documents(ctx)
	defer iter.Stop()

	campaigns := []models.Campaign{}
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list campaigns: %w", err)
		}

		var c models.Campaign
		if err := snap.DataTo(&c); err != nil {
			return nil, fmt.Errorf("failed to decode campaign %s: %w", snap.Ref.ID, err)
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
