package main

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type contactMessage struct {
	Name    string `form:"fullName" binding:"required,max=200"`
	Email   string `form:"email" binding:"required,email"`
	Message string `form:"message" binding:"required,max=5000"`
}

type mailer interface {
	Send(ctx context.Context, msg contactMessage) error
}

type smtpMailer struct {
	cfg      SMTPConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func newSMTPMailer(cfg SMTPConfig) *smtpMailer {
	return &smtpMailer{cfg: cfg, sendMail: smtp.SendMail}
}

func (m *smtpMailer) Send(ctx context.Context, msg contactMessage) error {
	name := headerSafe(msg.Name)
	email := headerSafe(msg.Email)

	subject := fmt.Sprintf("Portfolio Contact: %s", name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, name, email, msg.Message)

	raw := []byte("To: " + m.cfg.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + m.cfg.User + "\r\n" +
		"Reply-To: " + email + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	if err := m.sendMail(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.User, []string{m.cfg.To}, raw); err != nil {
		return goerr.Wrap(err, "send contact email", goerr.V("host", m.cfg.Host))
	}

	ctxlog.From(ctx).Info("Contact email sent", "reply_to", email)
	return nil
}

// headerSafe keeps user input on a single header line.
func headerSafe(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
