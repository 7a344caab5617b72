package config

import (
	"crypto/tls"
	"fmt"
	"io"
	"os"
	"strconv"

	mail "github.com/go-mail/mail/v2"
)

type smtpConfig struct {
	Host          string
	Port          int
	User          string
	Pass          string
	SkipTLSVerify bool
}

// smtpSettings reads the SMTP environment on every call so values loaded
// from .env after program start are picked up.
func smtpSettings() smtpConfig {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	return smtpConfig{
		Host:          os.Getenv("SMTP_HOST"),
		Port:          port,
		User:          os.Getenv("SMTP_USER"),
		Pass:          os.Getenv("SMTP_PASS"),
		SkipTLSVerify: os.Getenv("SMTP_SKIP_TLS_VERIFY") == "1",
	}
}

// MailFrom returns the sender address, e.g. "State Bangladesh Society <noreply@statebd.org>".
func MailFrom() string {
	if from := os.Getenv("SMTP_FROM"); from != "" {
		return from
	}
	return "State Bangladesh Society <noreply@statebd.org>"
}

// MailMode selects the outgoing transport: "log" (default) writes a log
// line instead of transmitting, "smtp" dials the configured server.
func MailMode() string {
	if mode := os.Getenv("MAIL_MODE"); mode != "" {
		return mode
	}
	return "log"
}

// Attachment is a file appended to an outgoing message.
type Attachment struct {
	Filename string
	Content  []byte
}

// SendMail delivers an HTML message over SMTP with STARTTLS.
func SendMail(to []string, subject, html string, attachments ...Attachment) error {
	if len(to) == 0 {
		return nil
	}

	cfg := smtpSettings()
	if cfg.Host == "" {
		return fmt.Errorf("smtp not configured (SMTP_HOST)")
	}

	m := mail.NewMessage()
	m.SetHeader("From", MailFrom())
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	for _, att := range attachments {
		content := att.Content
		m.Attach(att.Filename, mail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}

	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.TLSConfig = &tls.Config{
		ServerName:         cfg.Host,
		InsecureSkipVerify: cfg.SkipTLSVerify, // dev only
	}

	return d.DialAndSend(m)
}
