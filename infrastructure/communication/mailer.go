package communication

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type EmailInfo struct {
	From    string
	To      []string
	Subject string
	Text    string

	AttachmentName string
	Attachment     []byte
}

// SendEmail delivers one raw MIME message via SES. Attachments force the
// raw API; the templated send endpoint cannot carry them.
func SendEmail(ctx context.Context, info *EmailInfo) error {
	emailRaw, err := BuildEmailBuffer(info)
	if err != nil {
		return err
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return err
	}
	client := ses.NewFromConfig(cfg)

	_, err = client.SendRawEmail(
		ctx,
		&ses.SendRawEmailInput{
			RawMessage: &types.RawMessage{
				Data: emailRaw.Bytes(),
			},
		},
	)
	return err
}

// BuildEmailBuffer assembles the multipart/mixed body: a quoted-printable
// text part plus an optional base64 attachment.
func BuildEmailBuffer(info *EmailInfo) (*bytes.Buffer, error) {
	var emailRaw bytes.Buffer
	writer := multipart.NewWriter(&emailRaw)
	boundary := writer.Boundary()

	// Set headers manually
	headers := fmt.Sprintf("From: %s\r\n", info.From)
	if len(info.To) > 0 {
		headers += fmt.Sprintf("To: %s\r\n", strings.Join(info.To, ", "))
	}
	headers += fmt.Sprintf("Subject: %s\r\n", info.Subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += fmt.Sprintf("Content-Type: multipart/mixed; boundary=\"%s\"\r\n", boundary)
	headers += "\r\n"
	emailRaw.WriteString(headers)

	if info.Text != "" {
		part, err := writer.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {"text/plain; charset=UTF-8"},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return nil, err
		}
		qp := quotedprintable.NewWriter(part)
		qp.Write([]byte(info.Text))
		qp.Close()
	}

	if len(info.Attachment) > 0 {
		part, err := writer.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {fmt.Sprintf("attachment; filename=\"%s\"", info.AttachmentName)},
		})
		if err != nil {
			return nil, err
		}

		encoded := base64.StdEncoding.EncodeToString(info.Attachment)
		// SES rejects lines over 1000 bytes; wrap at the usual 76.
		for len(encoded) > 76 {
			part.Write([]byte(encoded[:76] + "\r\n"))
			encoded = encoded[76:]
		}
		part.Write([]byte(encoded + "\r\n"))
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	return &emailRaw, nil
}

// SendCertificateIssued mails the completion certificate workbook to the
// intern.
func SendCertificateIssued(ctx context.Context, sender, recipient, internName, serialNo string, workbook []byte) error {
	return SendEmail(ctx, &EmailInfo{
		From:    sender,
		To:      []string{recipient},
		Subject: fmt.Sprintf("Internship completion certificate %s", serialNo),
		Text: fmt.Sprintf("Hi %s,\n\nCongratulations on completing your internship. "+
			"Your certificate of completion (%s) is attached.\n", internName, serialNo),
		AttachmentName: fmt.Sprintf("certificate-%s.xlsx", serialNo),
		Attachment:     workbook,
	})
}
