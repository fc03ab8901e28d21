package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/BerylCAtieno/campaign-generator-agent/internal/models"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

//go:embed migrations
var migrationsFS embed.FS

// Dialect names double as database/sql driver names.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

func init() {
	sqlx.BindDriver(string(DialectSQLite), sqlx.QUESTION)
}

const campaignColumns = `id, product, audience, document, ad_copy, email_campaign, social_posts,
	radio_script, audio_brief, image_url, image_placeholder, audio_url, created_at`

// SQLStore keeps campaigns in Postgres or SQLite.
type SQLStore struct {
	db      *sqlx.DB
	dialect Dialect
	logger  *zap.Logger
}

// OpenSQL connects, applies migrations and returns the store.
func OpenSQL(ctx context.Context, dialect Dialect, dsn string, logger *zap.Logger) (*SQLStore, error) {
	db, err := sqlx.ConnectContext(ctx, string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", dialect, err)
	}

	switch dialect {
	case DialectSQLite:
		// A single connection avoids SQLITE_BUSY between concurrent writers.
		db.SetMaxOpenConns(1)
		if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to configure sqlite: %w", err)
		}
	case DialectPostgres:
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
	}

	s := &SQLStore{db: db, dialect: dialect, logger: logger.Named("store")}
	if err := s.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	s.logger.Info("connected to database", zap.String("dialect", string(dialect)))
	return s, nil
}

// Migrate brings the schema up to date from the embedded migrations.
func (s *SQLStore) Migrate() error {
	src, err := iofs.New(migrationsFS, "migrations/"+string(s.dialect))
	if err != nil {
		return fmt.Errorf("error opening migrations: %w", err)
	}

	var driver database.Driver
	switch s.dialect {
	case DialectPostgres:
		driver, err = migratepg.WithInstance(s.db.DB, &migratepg.Config{})
	case DialectSQLite:
		driver, err = migratesqlite.WithInstance(s.db.DB, &migratesqlite.Config{})
	default:
		return fmt.Errorf("unsupported dialect %q", s.dialect)
	}
	if err != nil {
		return fmt.Errorf("error creating %s migration driver: %w", s.dialect, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(s.dialect), driver)
	if err != nil {
		return fmt.Errorf("error creating migration instance: %w", err)
	}

	// m.Close is not called: it would close the shared *sql.DB.
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			s.logger.Debug("migration state is up to date")
			return nil
		}
		return fmt.Errorf("error running migrations: %w", err)
	}

	s.logger.Info("ran migrations successfully")
	return nil
}

func (s *SQLStore) SaveCampaign(ctx context.Context, c *models.Campaign) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO campaigns (`+campaignColumns+`)
		VALUES (:id, :product, :audience, :document, :ad_copy, :email_campaign, :social_posts,
			:radio_script, :audio_brief, :image_url, :image_placeholder, :audio_url, :created_at)`, c)
	if err != nil {
		return fmt.Errorf("failed to insert campaign %s: %w", c.ID, err)
	}
	return nil
}

func (s *SQLStore) GetCampaign(ctx context.Context, id string) (*models.Campaign, error) {
	var c models.Campaign
	err := s.db.GetContext(ctx, &c, s.db.Rebind(`SELECT `+campaignColumns+` FROM campaigns WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign %s: %w", id, err)
	}
	return &c, nil
}

func (s *SQLStore) RecentCampaigns(ctx context.Context, limit int) ([]models.Campaign, error) {
	campaigns := []models.Campaign{}
	err := s.db.SelectContext(ctx, &campaigns,
		s.db.Rebind(`SELECT `+campaignColumns+` FROM campaigns ORDER BY created_at DESC LIMIT ?`),
		normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
