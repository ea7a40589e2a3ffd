package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"payexsync/config"

	"github.com/google/uuid"
)

type EmailService struct {
	cfg EmailConfig
}

type EmailConfig struct {
	SMTPHost  string
	SMTPPort  string
	SMTPUser  string
	SMTPPass  string
	FromEmail string
	FromName  string
	ToEmails  []string
}

type emailMessage struct {
	Subject    string
	Body       string
	Attachment []byte
	FileName   string
}

// NewEmailService reads SMTP settings from the environment.
func NewEmailService() *EmailService {
	var to []string
	for _, addr := range strings.Split(config.Config("REPORT_EMAILS", ""), ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			to = append(to, addr)
		}
	}
	return &EmailService{cfg: EmailConfig{
		SMTPHost:  config.Config("SMTP_HOST", ""),
		SMTPPort:  config.Config("SMTP_PORT", "587"),
		SMTPUser:  config.Config("SMTP_USER", ""),
		SMTPPass:  config.Config("SMTP_PASS", ""),
		FromEmail: config.Config("FROM_EMAIL", ""),
		FromName:  config.Config("FROM_NAME", "PayEx Sync"),
		ToEmails:  to,
	}}
}

// Enabled reports whether enough settings are present to send mail.
func (es *EmailService) Enabled() bool {
	c := es.cfg
	return c.SMTPHost != "" && c.FromEmail != "" && len(c.ToEmails) > 0
}

// SendAuthorizationReport mails the XLSX report to REPORT_EMAILS.
func (es *EmailService) SendAuthorizationReport(report []byte, count int, now time.Time) error {
	if !es.Enabled() {
		return fmt.Errorf("email configuration incomplete: SMTP_HOST, FROM_EMAIL or REPORT_EMAILS not set")
	}

	msg := emailMessage{
		Subject:    fmt.Sprintf("PayEx authorizations pending capture (%d)", count),
		Body:       fmt.Sprintf("%d PayEx transaction(s) are still authorized and waiting for capture or cancel as of %s.\r\nSee the attached report.", count, now.Format("2006-01-02")),
		Attachment: report,
		FileName:   AuthorizationReportName(now),
	}
	if err := es.sendEmail(msg); err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	return nil
}

func (es *EmailService) buildMessage(msg emailMessage) []byte {
	boundary := "payex-" + uuid.NewString()

	var message bytes.Buffer
	message.WriteString(fmt.Sprintf("From: %s <%s>\r\n", es.cfg.FromName, es.cfg.FromEmail))
	message.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(es.cfg.ToEmails, ",")))
	message.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=%s\r\n\r\n", boundary))

	message.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	message.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	message.WriteString("Content-Transfer-Encoding: 7bit\r\n\r\n")
	message.WriteString(msg.Body)
	message.WriteString("\r\n")

	message.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	message.WriteString("Content-Type: application/vnd.openxmlformats-officedocument.spreadsheetml.sheet\r\n")
	message.WriteString("Content-Transfer-Encoding: base64\r\n")
	message.WriteString(fmt.Sprintf("Content-Disposition: attachment; filename=\"%s\"\r\n\r\n", msg.FileName))

	// RFC 2045 limits encoded lines to 76 characters.
	encoded := base64.StdEncoding.EncodeToString(msg.Attachment)
	for i := 0; i < len(encoded); i += 76 {
		end := i + 76
		if end > len(encoded) {
			end = len(encoded)
		}
		message.WriteString(encoded[i:end])
		message.WriteString("\r\n")
	}

	message.WriteString(fmt.Sprintf("--%s--\r\n", boundary))
	return message.Bytes()
}

func (es *EmailService) sendEmail(msg emailMessage) error {
	var auth smtp.Auth
	if es.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", es.cfg.SMTPUser, es.cfg.SMTPPass, es.cfg.SMTPHost)
	}
	addr := fmt.Sprintf("%s:%s", es.cfg.SMTPHost, es.cfg.SMTPPort)
	return smtp.SendMail(addr, auth, es.cfg.FromEmail, es.cfg.ToEmails, es.buildMessage(msg))
}
