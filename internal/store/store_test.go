package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BerylCAtieno/campaign-generator-agent/internal/config"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCampaign(product string, createdAt time.Time) *models.Campaign {
	return &models.Campaign{
		ID:               uuid.NewString(),
		Product:          product,
		Audience:         "urban professionals",
		Document:         "Ad Copy:\nSip smarter.",
		AdCopy:           "Sip smarter.",
		Email:            "Subject: Hi",
		Social:           "#StayHydrated",
		RadioScript:      "ANNOUNCER: Thirsty?",
		AudioBrief:       "Stay hydrated.",
		ImageURL:         "/static/placeholder.svg",
		ImagePlaceholder: true,
		AudioURL:         "/media/x/audio.mp3",
		CreatedAt:        createdAt.UTC(),
		Notices:          []models.Notice{{Stage: models.StageImage, Message: "not stored"}},
	}
}

// runStoreContract checks the behaviour every backend must share.
func runStoreContract(t *testing.T, s Store) {
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	first := newCampaign("EcoSip", base)
	require.NoError(t, s.SaveCampaign(ctx, first))

	got, err := s.GetCampaign(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Product, got.Product)
	assert.Equal(t, first.Email, got.Email)
	assert.Equal(t, first.RadioScript, got.RadioScript)
	assert.True(t, got.ImagePlaceholder)
	assert.True(t, first.CreatedAt.Equal(got.CreatedAt), "created_at %v != %v", first.CreatedAt, got.CreatedAt)
	assert.Empty(t, got.Notices)

	_, err = s.GetCampaign(ctx, "does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)

	for i := 1; i <= 3; i++ {
		require.NoError(t, s.SaveCampaign(ctx, newCampaign(fmt.Sprintf("Product %d", i), base.Add(time.Duration(i)*time.Hour))))
	}

	recent, err := s.RecentCampaigns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Product 3", recent[0].Product)
	assert.Equal(t, "Product 2", recent[1].Product)

	all, err := s.RecentCampaigns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campaigns.db")
	s, err := OpenSQL(context.Background(), DialectSQLite, path, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	runStoreContract(t, s)
}

func TestSQLiteStore_MigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campaigns.db")
	s, err := OpenSQL(context.Background(), DialectSQLite, path, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	assert.NoError(t, s.Migrate())
}

func TestSQLiteStore_DuplicateID(t *testing.T) {
	s, err := OpenSQL(context.Background(), DialectSQLite, filepath.Join(t.TempDir(), "c.db"), zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	c := newCampaign("EcoSip", time.Now())
	require.NoError(t, s.SaveCampaign(context.Background(), c))
	assert.Error(t, s.SaveCampaign(context.Background(), c))
}

func TestPostgresStore(t *testing.T) {
	url := os.Getenv("TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("TEST_POSTGRES_URL not set")
	}

	s, err := OpenSQL(context.Background(), DialectPostgres, url, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	_, err = s.db.Exec("TRUNCATE campaigns")
	require.NoError(t, err)
	runStoreContract(t, s)
}

func TestFirestoreStore(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	s, err := NewFirestore(context.Background(), "test-project", "campaigns-"+uuid.NewString())
	require.NoError(t, err)
	defer s.Close()

	runStoreContract(t, s)
}

func TestNop(t *testing.T) {
	ctx := context.Background()
	var s Store = Nop{}

	assert.NoError(t, s.SaveCampaign(ctx, newCampaign("x", time.Now())))
	_, err := s.GetCampaign(ctx, "x")
	assert.ErrorIs(t, err, ErrNotFound)
	recent, err := s.RecentCampaigns(ctx, 5)
	assert.NoError(t, err)
	assert.Empty(t, recent)
	assert.NoError(t, s.Close())
}

func TestNew(t *testing.T) {
	s, err := New(context.Background(), config.DBConfig{Type: config.DBNone}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, Nop{}, s)

	s, err = New(context.Background(), config.DBConfig{
		Type:       config.DBSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "c.db"),
	}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &SQLStore{}, s)
	assert.NoError(t, s.Close())

	_, err = New(context.Background(), config.DBConfig{Type: "mongo"}, zap.NewNop())
	assert.Error(t, err)
}
