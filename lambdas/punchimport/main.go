package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/jayelcee/internhq/core"
	"github.com/jayelcee/internhq/infrastructure/communication"
	"github.com/jayelcee/internhq/infrastructure/devops"
	"github.com/jayelcee/internhq/infrastructure/filesystem"
	"github.com/jayelcee/internhq/lambdas/punchimport/helper"
	"github.com/jayelcee/internhq/model"
	"github.com/jayelcee/internhq/store"
)

// tzOffsetSeconds shifts reader timestamps into the site zone. Badge
// readers report UTC; the site runs UTC+8.
func tzOffsetSeconds() int {
	if v := os.Getenv("PUNCH_TZ_OFFSET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 8 * 3600
}

// ImportPunchFile parses one CSV stream and upserts the derived logs.
// Badges that resolve to no intern are counted as skipped, per-group
// failures as errored; the loop always continues.
func ImportPunchFile(ctx context.Context, dm *core.DatabaseManager, objectKey string, stream io.Reader) (*model.ImportBatch, error) {
	punches, err := helper.ParsePunchCSV(stream, tzOffsetSeconds())
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", objectKey, err)
	}

	groups := helper.GroupPunches(punches)
	batch := &model.ImportBatch{ObjectKey: objectKey, Rows: len(punches)}

	st := store.New(dm.GetDB(ctx))
	var logs []model.TimeLog
	for _, group := range groups {
		user, err := st.FindUserByBadgeTag(group.BadgeTag)
		if errors.Is(err, store.ErrNotFound) {
			fmt.Printf("[WARN] no intern for badge %s, skipping %s\n", group.BadgeTag, group.Date)
			batch.Skipped++
			continue
		}
		if err != nil {
			fmt.Printf("[ERROR] resolve badge %s: %v\n", group.BadgeTag, err)
			batch.Errored++
			continue
		}
		logs = append(logs, helper.BuildTimeLog(group, user.ID))
	}

	if err := st.BulkUpsertTimeLogs(logs); err != nil {
		return nil, fmt.Errorf("upsert logs: %w", err)
	}
	batch.Created = len(logs)

	if err := st.CreateImportBatch(batch); err != nil {
		return nil, fmt.Errorf("record batch: %w", err)
	}

	return batch, nil
}

func HandleRequest(ctx context.Context, event events.S3Event) error {
	cfg, err := devops.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dm, err := core.New(cfg.DSN, 5)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer dm.Close()

	var slack *communication.Slack
	if os.Getenv("SLACK_BOT_TOKEN") != "" {
		slack = communication.ConnectSlack()
	}

	for _, record := range event.Records {
		bucket := record.S3.Bucket.Name
		key := record.S3.Object.Key
		fmt.Printf("[INFO] importing s3://%s/%s\n", bucket, key)

		var buf bytes.Buffer
		if err := filesystem.ReadFile(bucket, key, ctx, &buf); err != nil {
			fmt.Printf("[ERROR] read %s: %v\n", key, err)
			if slack != nil {
				slack.Error(fmt.Sprintf("Punch import could not read %s: %v", key, err))
			}
			continue
		}

		batch, err := ImportPunchFile(ctx, dm, key, &buf)
		if err != nil {
			fmt.Printf("[ERROR] import %s: %v\n", key, err)
			if slack != nil {
				slack.Error(fmt.Sprintf("Punch import failed for %s: %v", key, err))
			}
			continue
		}

		fmt.Printf("[INFO] imported %s: %d rows, %d created, %d skipped, %d errored\n",
			key, batch.Rows, batch.Created, batch.Skipped, batch.Errored)
		if slack != nil {
			slack.ImportSummary(key, batch.Rows, batch.Created, batch.Skipped, batch.Errored)
		}
	}

	return nil
}

func main() {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(HandleRequest)
		return
	}

	// Local dev: import a file from disk against the dev config.
	if len(os.Args) < 2 {
		fmt.Println("usage: punchimport <file.csv>")
		os.Exit(1)
	}

	ctx := context.Background()
	cfg, err := devops.Load(ctx)
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		os.Exit(1)
	}

	dm, err := core.New(cfg.DSN, 5)
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		os.Exit(1)
	}
	defer dm.Close()

	file, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	batch, err := ImportPunchFile(ctx, dm, os.Args[1], file)
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("[SUCCESS] %d rows, %d created, %d skipped, %d errored\n",
		batch.Rows, batch.Created, batch.Skipped, batch.Errored)
}
