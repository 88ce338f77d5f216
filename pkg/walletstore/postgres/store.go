// Package postgres is a Postgres-backed walletstore.Store, grounded on the
// control-plane GORM store pattern: a single AutoMigrate-managed table, a
// Silent-by-default logger, and a connection pool sized from Config.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aries-go/vcprover/pkg/walletstore"
)

// Config configures the Postgres connection.
type Config struct {
	Host         string
	Port         int
	Database     string
	User         string
	Password     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// ApplyDefaults fills in zero-valued fields with defaults.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = 5432
	}
	if c.SSLMode == "" {
		c.SSLMode = "disable"
	}
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 25
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 5
	}
}

// DSN returns the connection string both GORM and pgxpool accept.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// Store is a GORM-backed walletstore.Store. It also keeps a pgxpool.Pool
// open purely for liveness checks (Ping), so the control plane can probe
// database health without going through GORM's connection wrapper.
type Store struct {
	db   *gorm.DB
	pool *pgxpool.Pool
}

var _ walletstore.Store = (*Store)(nil)

// New opens a Postgres connection, runs AutoMigrate for PresentationRecord,
// and returns a ready Store.
func New(ctx context.Context, cfg Config) (*Store, error) {
	cfg.ApplyDefaults()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying database: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)

	if err := db.AutoMigrate(&walletstore.PresentationRecord{}); err != nil {
		return nil, fmt.Errorf("migrate presentation_records: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open pgx pool: %w", err)
	}

	return &Store{db: db, pool: pool}, nil
}

// Close releases the GORM connection and the pgx pool.
func (s *Store) Close() error {
	s.pool.Close()
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks database liveness over the pgx pool, independent of GORM.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Put inserts rec if new, or updates its mutable fields if it already exists.
func (s *Store) Put(ctx context.Context, rec walletstore.PresentationRecord) error {
	now := rec.UpdatedAt
	if now.IsZero() {
		now = timeNow()
	}
	rec.UpdatedAt = now
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}

	return s.db.WithContext(ctx).
		Where(walletstore.PresentationRecord{Handle: rec.Handle}).
		Assign(walletstore.PresentationRecord{
			SourceID:  rec.SourceID,
			ThreadID:  rec.ThreadID,
			State:     rec.State,
			UpdatedAt: rec.UpdatedAt,
		}).
		FirstOrCreate(&rec).Error
}

// Get returns the record for handle, or walletstore.ErrNotFound.
func (s *Store) Get(ctx context.Context, handle string) (*walletstore.PresentationRecord, error) {
	var rec walletstore.PresentationRecord
	if err := s.db.WithContext(ctx).Where("handle = ?", handle).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, walletstore.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// ListBySourceID returns every record created for sourceID, newest first.
func (s *Store) ListBySourceID(ctx context.Context, sourceID string) ([]walletstore.PresentationRecord, error) {
	var recs []walletstore.PresentationRecord
	err := s.db.WithContext(ctx).
		Where("source_id = ?", sourceID).
		Order("created_at DESC").
		Find(&recs).Error
	return recs, err
}

// timeNow is a var so tests could override it; production uses time.Now.
var timeNow = func() time.Time { return time.Now().UTC() }
