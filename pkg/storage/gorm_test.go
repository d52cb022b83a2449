package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/RuvinSL/url-analysis-queue/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// dryRunDB builds statements without ever opening a connection.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "queue:secret@tcp(127.0.0.1:3306)/queue?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               gormlogger.Discard,
	})
	require.NoError(t, err)
	return db
}

func TestGormPersister_SaveUpsertsSlot(t *testing.T) {
	db := dryRunDB(t)
	slot := Slot{Key: SlotKey, Value: `[]`, UpdatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return saveSlot(tx, &slot)
	})

	assert.Contains(t, sql, "INSERT INTO `storage_slots`")
	assert.Contains(t, sql, "`key`")
	assert.Contains(t, sql, "'urls'")
	assert.Contains(t, sql, "ON DUPLICATE KEY UPDATE")
	assert.Contains(t, sql, "`value`=VALUES(`value`)")
	assert.Contains(t, sql, "`updated_at`=VALUES(`updated_at`)")
}

func TestGormPersister_LoadSelectsSlot(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var slot Slot
		return loadSlot(tx, &slot)
	})

	assert.Contains(t, sql, "FROM `storage_slots`")
	assert.Contains(t, sql, "WHERE `key` = 'urls'")
	assert.Contains(t, sql, "LIMIT 1")
}

func TestGormPersister_MySQL(t *testing.T) {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		t.Skip("MYSQL_DSN not set")
	}

	ctx := context.Background()
	p, err := OpenMySQL(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		p.db.Where("`key` = ?", SlotKey).Delete(&Slot{})
		p.Close()
	})

	require.NoError(t, p.db.Where("`key` = ?", SlotKey).Delete(&Slot{}).Error)

	entries, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, entries)

	first := []models.URLEntry{{ID: "1", URL: "https://a.test", Status: models.StatusQueued, HeadingCounts: map[string]int{}}}
	require.NoError(t, p.Save(ctx, first))

	second := []models.URLEntry{
		{ID: "2", URL: "https://b.test", Status: models.StatusDone, Title: "B", HeadingCounts: map[string]int{"H1": 1}},
		first[0],
	}
	require.NoError(t, p.Save(ctx, second))

	loaded, err := p.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "https://b.test", loaded[0].URL)
	assert.Equal(t, "B", loaded[0].Title)
	assert.Equal(t, 1, loaded[0].HeadingCounts["H1"])
	assert.Equal(t, "https://a.test", loaded[1].URL)

	var rows int64
	require.NoError(t, p.db.Model(&Slot{}).Where("`key` = ?", SlotKey).Count(&rows).Error)
	assert.Equal(t, int64(1), rows, "save overwrites the single slot row")

	assert.NoError(t, p.CheckHealth(ctx))
}
