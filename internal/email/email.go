// Package email delivers account emails over SMTP.
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Sender delivers account verification emails.
type Sender interface {
	SendVerificationEmail(ctx context.Context, to, name, link string) error
}

const verificationSubject = "Verify Your Email - Expense Tracker"

var verificationTemplate = template.Must(template.New("verify").Parse(`<h2>Welcome {{.Name}}!</h2>
<p>Please verify your email to complete your registration.</p>
<p>Click the link below to verify your email (valid for 15 minutes):</p>
<a href="{{.Link}}" style="background-color: #007bff; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Verify Email</a>
<p style="margin-top: 20px; color: #666;">Or copy and paste this link:</p>
<p style="color: #666;">{{.Link}}</p>
`))

// RenderVerification returns the HTML body of the verification email.
func RenderVerification(name, link string) (string, error) {
	var buf bytes.Buffer
	if err := verificationTemplate.Execute(&buf, struct{ Name, Link string }{name, link}); err != nil {
		return "", fmt.Errorf("render verification email: %w", err)
	}
	return buf.String(), nil
}

// SMTPConfig describes the outbound mail server.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SMTPSender sends mail through an authenticated SMTP relay.
type SMTPSender struct {
	cfg SMTPConfig
}

// NewSMTPSender creates a sender for cfg.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// SendVerificationEmail implements Sender.
func (s *SMTPSender) SendVerificationEmail(ctx context.Context, to, name, link string) error {
	body, err := RenderVerification(name, link)
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(verificationSubject)
	msg.SetBodyString(mail.TypeTextHTML, body)

	opts := []mail.Option{mail.WithPort(s.cfg.Port)}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	return nil
}

// LogSender records skipped verification emails in the log instead of sending mail.
// It is used when no SMTP host is configured. The link carries a verification
// token, so it is logged only when includeLink is set.
type LogSender struct {
	logger      *zap.Logger
	includeLink bool
}

// NewLogSender creates a LogSender.
func NewLogSender(logger *zap.Logger, includeLink bool) *LogSender {
	return &LogSender{logger: logger, includeLink: includeLink}
}

// SendVerificationEmail implements Sender.
func (s *LogSender) SendVerificationEmail(_ context.Context, to, name, link string) error {
	fields := []zap.Field{
		zap.String("to", to),
		zap.String("name", name),
	}
	if s.includeLink {
		fields = append(fields, zap.String("link", link))
	}
	s.logger.Info("verification email not sent: smtp disabled", fields...)
	return nil
}
