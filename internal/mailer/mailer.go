package mailer

import (
	"log"
	"os"
	"strconv"

	gomail "gopkg.in/gomail.v2"
)

// EmailSender is what the notification fan-out depends on; tests swap in
// a recording fake.
type EmailSender interface {
	Send(to, subject, text, html string) error
}

// Mailer delivers mail over SMTP. When no SMTP host is configured it logs
// the message instead, so development environments work without a mail
// account.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewFromEnv() *Mailer {
	port := 587
	if p := os.Getenv("SMTP_PORT"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil {
			port = parsed
		}
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@communitygarden.org"
	}

	return &Mailer{
		host:     os.Getenv("SMTP_HOST"),
		port:     port,
		username: os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     from,
	}
}

func (m *Mailer) Enabled() bool {
	return m.host != ""
}

func (m *Mailer) Send(to, subject, text, html string) error {
	if !m.Enabled() {
		log.Printf("==== EMAIL NOTIFICATION ====\nFrom: %s\nTo: %s\nSubject: %s\nContent: %s\n===========================", m.from, to, subject, text)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)

	if html != "" {
		msg.AddAlternative("text/html", html)
	}

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	return dialer.DialAndSend(msg)
}
