package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Provider and backend names accepted in the environment.
const (
	ProviderGemini      = "gemini"
	ProviderVertex      = "vertex"
	ProviderOpenAI      = "openai"
	ProviderHuggingFace = "huggingface"
	ProviderGTTS        = "gtts"

	MediaLocal = "local"
	MediaGCS   = "gcs"

	DBPostgres  = "postgres"
	DBSQLite    = "sqlite"
	DBFirestore = "firestore"
	DBNone      = "none"
)

// Config is built once at startup and handed to every collaborator.
type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	GinMode   string `env:"GIN_MODE" envDefault:"release"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Text   TextConfig
	Image  ImageConfig
	Speech SpeechConfig
	Media  MediaConfig
	DB     DBConfig

	ExtractorMode string        `env:"EXTRACTOR_MODE" envDefault:"lines"`
	HTTPTimeout   time.Duration `env:"HTTP_TIMEOUT" envDefault:"60s"`
}

type TextConfig struct {
	Provider      string `env:"TEXT_PROVIDER" envDefault:"gemini"`
	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	GeminiModel   string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
	VertexProject string `env:"VERTEX_PROJECT_ID"`
	VertexRegion  string `env:"VERTEX_REGION" envDefault:"us-central1"`
	VertexModel   string `env:"VERTEX_MODEL" envDefault:"gemini-1.5-flash"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
}

type ImageConfig struct {
	Provider      string `env:"IMAGE_PROVIDER" envDefault:"huggingface"`
	HFToken       string `env:"HF_API_TOKEN"`
	HFURL         string `env:"HF_API_URL" envDefault:"https://api-inference.huggingface.co/models/stabilityai/stable-diffusion-xl-base-1.0"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	OpenAIModel   string `env:"OPENAI_IMAGE_MODEL" envDefault:"dall-e-3"`
}

type SpeechConfig struct {
	Provider      string `env:"SPEECH_PROVIDER" envDefault:"gtts"`
	Lang          string `env:"TTS_LANG" envDefault:"en"`
	GTTSURL       string `env:"TTS_URL" envDefault:"https://translate.google.com/translate_tts"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	OpenAIVoice   string `env:"OPENAI_VOICE" envDefault:"alloy"`
}

type MediaConfig struct {
	Backend   string `env:"MEDIA_BACKEND" envDefault:"local"`
	Dir       string `env:"MEDIA_DIR" envDefault:"media"`
	BaseURL   string `env:"MEDIA_BASE_URL" envDefault:"/media"`
	GCSBucket string `env:"GCS_BUCKET"`
	GCSPublic bool   `env:"GCS_PUBLIC" envDefault:"true"`
}

type DBConfig struct {
	Type                string `env:"DB_TYPE" envDefault:"sqlite"`
	PostgresURL         string `env:"POSTGRES_URL"`
	SQLitePath          string `env:"SQLITE_PATH" envDefault:"campaigns.db"`
	FirestoreProject    string `env:"FIRESTORE_PROJECT_ID"`
	FirestoreCollection string `env:"FIRESTORE_COLLECTION" envDefault:"campaigns"`
}

// Load reads an optional .env file and then the process environment.
func Load(dotenvFiles ...string) (*Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, f := range dotenvFiles {
		// Missing files are fine; real environment variables take precedence.
		_ = godotenv.Load(f)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the selected providers have the settings they need.
func (c *Config) Validate() error {
	var errs []error

	switch c.Text.Provider {
	case ProviderGemini:
		if c.Text.GeminiAPIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY environment variable is required"))
		}
	case ProviderVertex:
		if c.Text.VertexProject == "" {
			errs = append(errs, errors.New("VERTEX_PROJECT_ID environment variable is required"))
		}
	case ProviderOpenAI:
		if c.Text.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY environment variable is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown TEXT_PROVIDER %q", c.Text.Provider))
	}

	switch c.Image.Provider {
	case ProviderHuggingFace:
		if c.Image.HFToken == "" {
			errs = append(errs, errors.New("HF_API_TOKEN environment variable is required"))
		}
	case ProviderOpenAI:
		if c.Image.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY environment variable is required for OpenAI images"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown IMAGE_PROVIDER %q", c.Image.Provider))
	}

	switch c.Speech.Provider {
	case ProviderGTTS:
	case ProviderOpenAI:
		if c.Speech.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY environment variable is required for OpenAI speech"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown SPEECH_PROVIDER %q", c.Speech.Provider))
	}

	switch c.Media.Backend {
	case MediaLocal:
	case MediaGCS:
		if c.Media.GCSBucket == "" {
			errs = append(errs, errors.New("GCS_BUCKET must be set when MEDIA_BACKEND=gcs"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown MEDIA_BACKEND %q", c.Media.Backend))
	}

	if err := c.DB.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Validate is split out so tools that only touch the database can check it alone.
func (d DBConfig) Validate() error {
	switch d.Type {
	case DBPostgres:
		if d.PostgresURL == "" {
			return errors.New("POSTGRES_URL must be set when DB_TYPE=postgres")
		}
	case DBSQLite:
		if d.SQLitePath == "" {
			return errors.New("SQLITE_PATH must be set when DB_TYPE=sqlite")
		}
	case DBFirestore:
		if d.FirestoreProject == "" {
			return errors.New("FIRESTORE_PROJECT_ID must be set when DB_TYPE=firestore")
		}
	case DBNone:
	default:
		return fmt.Errorf("unknown DB_TYPE %q", d.Type)
	}
	return nil
}

// LoadDB parses only the database settings.
func LoadDB(dotenvFiles ...string) (*DBConfig, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, f := range dotenvFiles {
		_ = godotenv.Load(f)
	}

	var cfg DBConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
