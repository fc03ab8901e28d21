package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/BerylCAtieno/campaign-generator-agent/internal/config"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/models"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("campaign not found")

// DefaultRecentLimit is used when a caller asks for a non-positive number of campaigns.
const DefaultRecentLimit = 10

// Store persists finished campaigns.
type Store interface {
	SaveCampaign(ctx context.Context, c *models.Campaign) error
	GetCampaign(ctx context.Context, id string) (*models.Campaign, error)
	RecentCampaigns(ctx context.Context, limit int) ([]models.Campaign, error)
	Close() error
}

// New opens the store selected by cfg.Type. SQL stores are migrated before
// they are returned.
func New(ctx context.Context, cfg config.DBConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Type {
	case config.DBPostgres:
		return OpenSQL(ctx, DialectPostgres, cfg.PostgresURL, logger)
	case config.DBSQLite:
		return OpenSQL(ctx, DialectSQLite, cfg.SQLitePath, logger)
	case config.DBFirestore:
		return NewFirestore(ctx, cfg.FirestoreProject, cfg.FirestoreCollection)
	case config.DBNone:
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown DB_TYPE %q", cfg.Type)
	}
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultRecentLimit
	}
	return limit
}

// Nop discards campaigns. It backs DB_TYPE=none.
type Nop struct{}

func (Nop) SaveCampaign(context.Context, *models.Campaign) error { return nil }

func (Nop) GetCampaign(context.Context, string) (*models.Campaign, error) {
	return nil, ErrNotFound
}

func (Nop) RecentCampaigns(context.Context, int) ([]models.Campaign, error) { return nil, nil }

func (Nop) Close() error { return nil }
