package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// StoreBlob is one named blob row.
type StoreBlob struct {
	Name      string `gorm:"primaryKey;size:128"`
	Data      []byte `gorm:"type:bytea;not null"`
	UpdatedAt time.Time
}

// DBConfig holds database connection configuration
type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func (c DBConfig) dsn() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, sslMode)
}

// PostgresStore keeps blobs in the store_blobs table.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore wraps an open connection and migrates the blob table.
func NewPostgresStore(db *gorm.DB) (*PostgresStore, error) {
	if err := db.AutoMigrate(&StoreBlob{}); err != nil {
		return nil, fmt.Errorf("failed to migrate store_blobs: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// ConnectPostgres opens a pooled connection with the warn-level gorm logger.
func ConnectPostgres(cfg DBConfig) (*PostgresStore, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(cfg.dsn()), &gorm.Config{Logger: newLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Println("✅ PostgreSQL connected")

	return NewPostgresStore(db)
}

func (p *PostgresStore) Load(ctx context.Context, name string) ([]byte, error) {
	var blob StoreBlob
	err := p.db.WithContext(ctx).Where("name = ?", name).First(&blob).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	return blob.Data, nil
}

func (p *PostgresStore) Save(ctx context.Context, name string, data []byte) error {
	blob := StoreBlob{Name: name, Data: data, UpdatedAt: time.Now()}
	err := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&blob).Error
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, name string) error {
	return p.db.WithContext(ctx).Where("name = ?", name).Delete(&StoreBlob{}).Error
}

// Stats exposes the connection pool counters.
func (p *PostgresStore) Stats() (map[string]int64, error) {
	sqlDB, err := p.db.DB()
	if err != nil {
		return nil, err
	}
	s := sqlDB.Stats()
	return map[string]int64{
		"open":       int64(s.OpenConnections),
		"idle":       int64(s.Idle),
		"in_use":     int64(s.InUse),
		"wait_count": s.WaitCount,
	}, nil
}

func (p *PostgresStore) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (p *PostgresStore) HealthCheck(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
