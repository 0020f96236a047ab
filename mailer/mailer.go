package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/kikelara/kikelara-backend-go/config"
	"github.com/kikelara/kikelara-backend-go/models"
	"github.com/rs/zerolog/log"
)

// Mailer sends the admin a notification for each contact message.
// Sending is strictly best-effort: failures are logged and never
// surfaced to the person who submitted the form.
type Mailer struct {
	host string
	port string
	user string
	pass string
}

// FromEnv builds a Mailer from SMTP_* environment variables. Returns
// nil when credentials are not configured, in which case notifications
// are skipped entirely.
func FromEnv() *Mailer {
	user := config.GetEnv("SMTP_USER", "")
	pass := config.GetEnv("SMTP_PASS", "")
	if user == "" || pass == "" {
		return nil
	}
	return &Mailer{
		host: config.GetEnv("SMTP_HOST", "smtp.gmail.com"),
		port: config.GetEnv("SMTP_PORT", "587"),
		user: user,
		pass: pass,
	}
}

// NotifyContact emails the stored message to the shop inbox.
func (m *Mailer) NotifyContact(msg models.Message) {
	if m == nil {
		return
	}

	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nReply-To: %s\r\nSubject: New Contact from %s\r\n\r\nName: %s\nEmail: %s\n\nMessage:\n%s\r\n",
		m.user, m.user, msg.Email, msg.Name, msg.Name, msg.Email, msg.Message,
	)

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, auth, m.user, []string{m.user}, []byte(body)); err != nil {
		log.Warn().Err(err).Msg("contact notification email failed")
	}
}
