package main

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jayelcee/internhq/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Holiday{}))
	return db
}

func TestSyncHolidays(t *testing.T) {
	db := openTestDB(t)

	seed := []model.Holiday{
		{Date: "2026-01-01", Name: "New Year", Kind: model.HolidayRegular, Source: MasterSource},
		{Date: "2026-02-25", Name: "Stale Holiday", Kind: model.HolidayRegular, Source: MasterSource},
		{Date: "2026-06-12", Name: "Company Outing", Kind: model.HolidaySpecial, Source: "manual"},
	}
	require.NoError(t, db.Create(&seed).Error)

	master := []model.Holiday{
		{Date: "2026-01-01", Name: "New Year's Day", Kind: model.HolidayRegular, Source: MasterSource},
		{Date: "2026-04-09", Name: "Day of Valor", Kind: model.HolidayRegular, Source: MasterSource},
	}

	t.Run("Dry run reports without writing", func(t *testing.T) {
		stats, err := SyncHolidays(db, master, true)
		require.NoError(t, err)
		assert.Equal(t, SyncStats{Created: 1, Updated: 1, Deleted: 1}, stats)

		var count int64
		db.Model(&model.Holiday{}).Count(&count)
		assert.EqualValues(t, 3, count)
	})

	t.Run("Apply", func(t *testing.T) {
		stats, err := SyncHolidays(db, master, false)
		require.NoError(t, err)
		assert.Equal(t, SyncStats{Created: 1, Updated: 1, Deleted: 1}, stats)

		var rows []model.Holiday
		require.NoError(t, db.Order("date ASC").Find(&rows).Error)
		require.Len(t, rows, 3)

		assert.Equal(t, "New Year's Day", rows[0].Name)
		assert.Equal(t, "2026-04-09", rows[1].Date)
		// The manual row survives the sync.
		assert.Equal(t, "Company Outing", rows[2].Name)
	})

	t.Run("Idempotent", func(t *testing.T) {
		stats, err := SyncHolidays(db, master, false)
		require.NoError(t, err)
		assert.Equal(t, SyncStats{}, stats)
	})
}
