// internal/infrastructure/storage/postgres.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/store"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// StoreSnapshot is one persisted session record
type StoreSnapshot struct {
	Key       string    `gorm:"primaryKey;size:255" json:"key"`
	Data      string    `gorm:"type:text;not null" json:"data"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (StoreSnapshot) TableName() string {
	return "store_snapshots"
}

// NewPostgresConnection opens a GORM connection configured from cfg
func NewPostgresConnection(cfg *config.Config, log logrus.FieldLogger) (*gorm.DB, error) {
	gormLogger := logger.Default.LogMode(logger.Warn)
	if cfg.App.Debug {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	log.WithField("database", cfg.Database.Name).Info("Database connection established")

	return db, nil
}

// PostgresPersister stores records in the store_snapshots table
type PostgresPersister struct {
	db *gorm.DB
}

// NewPostgresPersister wraps db and migrates the snapshot table
func NewPostgresPersister(db *gorm.DB) (*PostgresPersister, error) {
	if err := db.AutoMigrate(&StoreSnapshot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate model %T: %w", &StoreSnapshot{}, err)
	}
	return &PostgresPersister{db: db}, nil
}

// Load returns the record stored under key
func (p *PostgresPersister) Load(ctx context.Context, key string) ([]byte, error) {
	var snapshot StoreSnapshot
	err := p.db.WithContext(ctx).Where("key = ?", key).First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return []byte(snapshot.Data), nil
}

// Save upserts the record stored under key
func (p *PostgresPersister) Save(ctx context.Context, key string, data []byte) error {
	now := time.Now().UTC()
	snapshot := StoreSnapshot{
		Key:       key,
		Data:      string(data),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&snapshot).Error
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Health pings the database
func (p *PostgresPersister) Health(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool
func (p *PostgresPersister) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
