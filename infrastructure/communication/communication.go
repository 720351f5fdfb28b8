// Package communication carries operational notifications out of the
// service: Slack for the admin channels, SES for intern-facing mail.
package communication

import (
	"fmt"
	"os"

	"github.com/slack-go/slack"
)

type Slack struct {
	client  *slack.Client
	options SlackOption
}

type SlackOption struct {
	InfoChannelID  string
	ErrorChannelID string
}

func ConnectSlack() *Slack {
	token := os.Getenv("SLACK_BOT_TOKEN")
	infoCh := os.Getenv("SLACK_INFO_CHANNEL")
	errorCh := os.Getenv("SLACK_ERROR_CHANNEL")

	return NewSlack(token, SlackOption{InfoChannelID: infoCh, ErrorChannelID: errorCh})
}

func NewSlack(token string, options SlackOption) *Slack {
	client := slack.New(token)
	return &Slack{client: client, options: options}
}

func (this *Slack) postMessage(channelID, message string) error {
	if channelID == "" {
		// Notifications are best-effort; an unconfigured channel is not
		// an error the caller should see.
		return nil
	}
	_, _, err := this.client.PostMessage(
		channelID,
		slack.MsgOptionText(message, false),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		return fmt.Errorf("failed to post message to Slack: %w", err)
	}
	return nil
}

func (this *Slack) Info(message string) error {
	return this.postMessage(this.options.InfoChannelID, message)
}

func (this *Slack) Error(message string) error {
	return this.postMessage(this.options.ErrorChannelID, message)
}

// OvertimeRequested alerts the admin channel that a new overtime log is
// waiting for a decision.
func (this *Slack) OvertimeRequested(internName, date string, hours float64) error {
	return this.Info(fmt.Sprintf("Overtime pending review: %s on %s (%.2f h)", internName, date, hours))
}

// ImportSummary posts the per-file outcome of a punch import run.
func (this *Slack) ImportSummary(objectKey string, rows, created, skipped, errored int) error {
	msg := fmt.Sprintf("Punch import %s: %d rows, %d created, %d skipped, %d errored",
		objectKey, rows, created, skipped, errored)
	if errored > 0 {
		return this.Error(msg)
	}
	return this.Info(msg)
}
