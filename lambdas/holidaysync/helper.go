package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/jayelcee/internhq/infrastructure/filesystem"
	"github.com/jayelcee/internhq/model"
)

// MasterSource marks rows owned by the workbook; manually entered holidays
// are never touched by the sync.
const MasterSource = "MASTER"

type SyncStats struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
}

func parseWorkbookDate(dateStr string) (time.Time, error) {
	// Try parsing as ISO date first
	if t, err := time.Parse("2006-01-02", dateStr); err == nil {
		return t, nil
	}
	formats := []string{"01-02-06", "1/2/06", "02/01/2006", "2/1/2006", "2006/01/02", "02-Jan-2006", "2006-01-02T15:04:05Z"}
	for _, fmtStr := range formats {
		if t, err := time.Parse(fmtStr, dateStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unknown date format: %s", dateStr)
}

// GetMasterHolidays reads the holiday workbook from S3: one sheet per
// year, rows of date | name | kind. Malformed rows are logged and skipped.
func GetMasterHolidays(ctx context.Context, bucket, key string) ([]model.Holiday, error) {
	fmt.Printf("[INFO] Fetching workbook s3://%s/%s\n", bucket, key)

	var buf bytes.Buffer
	if err := filesystem.ReadFile(bucket, key, ctx, &buf); err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var holidays []model.Holiday
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			fmt.Printf("[ERROR] failed to read sheet %s: %v\n", sheet, err)
			continue
		}

		for i, row := range rows {
			if i == 0 || len(row) < 2 {
				continue
			}

			date, err := parseWorkbookDate(strings.TrimSpace(row[0]))
			if err != nil {
				fmt.Printf("[WARN] sheet %s row %d: %v\n", sheet, i+1, err)
				continue
			}

			kind := model.HolidayRegular
			if len(row) > 2 && strings.EqualFold(strings.TrimSpace(row[2]), model.HolidaySpecial) {
				kind = model.HolidaySpecial
			}

			holidays = append(holidays, model.Holiday{
				Date:   date.Format("2006-01-02"),
				Name:   strings.TrimSpace(row[1]),
				Kind:   kind,
				Source: MasterSource,
			})
		}
	}

	fmt.Printf("[INFO] Parsed %d holidays from workbook\n", len(holidays))
	return holidays, nil
}

// SyncHolidays diffs the workbook rows against the holidays table and
// applies the difference in one transaction. Dry run reports the diff
// without writing.
func SyncHolidays(db *gorm.DB, master []model.Holiday, dryRun bool) (SyncStats, error) {
	var existing []model.Holiday
	if err := db.Where("source = ?", MasterSource).Find(&existing).Error; err != nil {
		return SyncStats{}, fmt.Errorf("load holidays: %w", err)
	}

	existingByDate := make(map[string]model.Holiday, len(existing))
	for _, h := range existing {
		existingByDate[h.Date] = h
	}
	masterDates := make(map[string]struct{}, len(master))

	var toCreate []model.Holiday
	var toUpdate []model.Holiday
	var toDeleteIDs []uint

	for _, h := range master {
		masterDates[h.Date] = struct{}{}
		cur, found := existingByDate[h.Date]
		if !found {
			toCreate = append(toCreate, h)
			continue
		}
		if cur.Name != h.Name || cur.Kind != h.Kind {
			cur.Name = h.Name
			cur.Kind = h.Kind
			toUpdate = append(toUpdate, cur)
		}
	}

	for _, h := range existing {
		if _, kept := masterDates[h.Date]; !kept {
			toDeleteIDs = append(toDeleteIDs, h.ID)
		}
	}

	fmt.Printf("[INFO] Dry run (%v): %d to create, %d to update, %d to delete\n",
		dryRun, len(toCreate), len(toUpdate), len(toDeleteIDs))

	stats := SyncStats{
		Created: len(toCreate),
		Updated: len(toUpdate),
		Deleted: len(toDeleteIDs),
	}

	if dryRun {
		return stats, nil
	}

	return stats, db.Transaction(func(tx *gorm.DB) error {
		if len(toDeleteIDs) > 0 {
			if err := tx.Delete(&model.Holiday{}, toDeleteIDs).Error; err != nil {
				return fmt.Errorf("failed batch delete: %w", err)
			}
		}

		if len(toCreate) > 0 {
			if err := tx.CreateInBatches(toCreate, 100).Error; err != nil {
				return fmt.Errorf("failed batch create: %w", err)
			}
		}

		for _, h := range toUpdate {
			if err := tx.Model(&model.Holiday{}).Where("id = ?", h.ID).
				Updates(map[string]interface{}{"name": h.Name, "kind": h.Kind}).Error; err != nil {
				return fmt.Errorf("failed update %s: %w", h.Date, err)
			}
		}

		return nil
	})
}
