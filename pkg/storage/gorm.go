package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/RuvinSL/url-analysis-queue/pkg/interfaces"
	"github.com/RuvinSL/url-analysis-queue/pkg/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Slot is one key/value row. The entry list lives in the row keyed SlotKey.
type Slot struct {
	Key       string    `gorm:"primaryKey;size:64"`
	Value     string    `gorm:"type:longtext;not null"`
	UpdatedAt time.Time
}

func (Slot) TableName() string {
	return "storage_slots"
}

// GormPersister stores the entry list as a JSON document in MySQL.
type GormPersister struct {
	db *gorm.DB
}

// OpenMySQL connects with the given DSN, tunes the pool and migrates the slot table.
func OpenMySQL(ctx context.Context, dsn string) (*GormPersister, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewGormPersister(db)
}

// NewGormPersister wraps an open connection and runs migrations.
func NewGormPersister(db *gorm.DB) (*GormPersister, error) {
	if err := db.AutoMigrate(&Slot{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return &GormPersister{db: db}, nil
}

func (g *GormPersister) Load(ctx context.Context) ([]models.URLEntry, error) {
	var slot Slot
	err := loadSlot(g.db.WithContext(ctx), &slot).Error
	if err != nil {
		return nil, fmt.Errorf("load %s slot: %w", SlotKey, err)
	}
	if slot.Key == "" {
		return nil, nil
	}
	return decodeEntries([]byte(slot.Value))
}

func (g *GormPersister) Save(ctx context.Context, entries []models.URLEntry) error {
	data, err := encodeEntries(entries)
	if err != nil {
		return err
	}

	slot := Slot{Key: SlotKey, Value: string(data), UpdatedAt: time.Now()}
	err = saveSlot(g.db.WithContext(ctx), &slot).Error
	if err != nil {
		return fmt.Errorf("save %s slot: %w", SlotKey, err)
	}
	return nil
}

func loadSlot(tx *gorm.DB, slot *Slot) *gorm.DB {
	return tx.Where("`key` = ?", SlotKey).Limit(1).Find(slot)
}

// saveSlot inserts the row or overwrites its value on a key conflict.
func saveSlot(tx *gorm.DB, slot *Slot) *gorm.DB {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(slot)
}

// CheckHealth pings the database.
func (g *GormPersister) CheckHealth(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (g *GormPersister) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var (
	_ interfaces.EntryPersister = (*GormPersister)(nil)
	_ interfaces.HealthChecker  = (*GormPersister)(nil)
)
