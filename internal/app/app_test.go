package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/BerylCAtieno/campaign-generator-agent/internal/config"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/extractor"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Text:   config.TextConfig{Provider: config.ProviderOpenAI, OpenAIAPIKey: "sk-test", OpenAIModel: "gpt-4o-mini"},
		Image:  config.ImageConfig{Provider: config.ProviderHuggingFace, HFToken: "hf-test", HFURL: "http://127.0.0.1:0"},
		Speech: config.SpeechConfig{Provider: config.ProviderGTTS, Lang: "en", GTTSURL: "http://127.0.0.1:0"},
		Media:  config.MediaConfig{Backend: config.MediaLocal, Dir: filepath.Join(dir, "media"), BaseURL: "/media"},
		DB:     config.DBConfig{Type: config.DBSQLite, SQLitePath: filepath.Join(dir, "campaigns.db")},

		ExtractorMode: "pattern",
		HTTPTimeout:   time.Second,
	}
}

func TestNew(t *testing.T) {
	cfg := testConfig(t)

	a, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	assert.NotNil(t, a.Service)
	assert.Equal(t, extractor.ModePattern, a.Extractor.Mode)
	assert.Equal(t, cfg.Media.Dir, a.MediaDir)

	recent, err := a.Store.RecentCampaigns(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestNew_NoDatabase(t *testing.T) {
	cfg := testConfig(t)
	cfg.DB = config.DBConfig{Type: config.DBNone}

	a, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, store.Nop{}, a.Store)
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"extractor mode", func(c *config.Config) { c.ExtractorMode = "fuzzy" }},
		{"speech language", func(c *config.Config) { c.Speech.Lang = "not a language" }},
		{"db type", func(c *config.Config) { c.DB.Type = "mongo" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(cfg)
			_, err := New(context.Background(), cfg, zap.NewNop())
			assert.Error(t, err)
		})
	}
}
