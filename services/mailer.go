package services

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
)

// Mailer delivers the confirmation code out-of-band. Delivery failure
// propagates to the caller as a server error; nothing is retried.
type Mailer interface {
	Send(to, subject, body string) error
}

// NewMailerFromEnv returns an SMTP mailer when SMTP_HOST is configured,
// otherwise a mailer that logs the message. The log fallback keeps local
// development working without a mail relay.
func NewMailerFromEnv() Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Println("SMTP_HOST not set, mail will be logged instead")
		return &logMailer{}
	}

	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}

	return &smtpMailer{
		host:     host,
		port:     port,
		from:     os.Getenv("SMTP_FROM"),
		username: os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASSWORD"),
	}
}

type smtpMailer struct {
	host     string
	port     string
	from     string
	username string
	password string
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.from, to, subject, body)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, []byte(msg))
}

type logMailer struct{}

func (m *logMailer) Send(to, subject, body string) error {
	log.Printf("mail to %s: %s: %s", to, subject, body)
	return nil
}
