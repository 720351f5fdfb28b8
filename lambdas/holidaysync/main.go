package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"gorm.io/gorm"

	"github.com/jayelcee/internhq/core"
	"github.com/jayelcee/internhq/infrastructure/devops"
)

const workbookKey = "holidays.xlsx"

type SyncEvent struct {
	DryRun bool `json:"dryRun"`
}

func SyncCalendar(ctx context.Context, cfg *devops.Config, dryRun bool) (SyncStats, error) {
	holidays, err := GetMasterHolidays(ctx, cfg.Buckets.Holiday, workbookKey)
	if err != nil {
		return SyncStats{}, fmt.Errorf("failed to get holidays: %w", err)
	}

	dm, err := core.New(cfg.DSN, 5)
	if err != nil {
		return SyncStats{}, fmt.Errorf("failed to create database manager: %w", err)
	}
	dm.LogLevel = core.LogLevelError
	defer dm.Close()

	var stats SyncStats
	err = dm.Exec(ctx, func(db *gorm.DB) error {
		s, err := SyncHolidays(db, holidays, dryRun)
		if err != nil {
			return err
		}
		stats = s
		return nil
	})
	if err != nil {
		return SyncStats{}, err
	}

	fmt.Printf("[INFO] Finished syncing holidays\n")
	return stats, nil
}

func HandleRequest(ctx context.Context, event SyncEvent) (SyncStats, error) {
	eventJson, _ := json.Marshal(event)
	fmt.Printf("[INFO] Event: %s\n", string(eventJson))

	cfg, err := devops.Load(ctx)
	if err != nil {
		return SyncStats{}, fmt.Errorf("failed to load config: %w", err)
	}

	return SyncCalendar(ctx, cfg, event.DryRun)
}

func main() {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(HandleRequest)
		return
	}

	// Local dev: always a dry run against the dev config.
	ctx := context.Background()
	cfg, err := devops.Load(ctx)
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		os.Exit(1)
	}

	stats, err := SyncCalendar(ctx, cfg, true)
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		os.Exit(1)
	}
	resJson, _ := json.MarshalIndent(stats, "", "  ")
	fmt.Printf("[SUCCESS] Results:\n%s\n", string(resJson))
}
