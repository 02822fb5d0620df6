// Package mailer delivers password reset codes over SMTP.
package mailer

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

// Mailer sends reset-code mail through an SMTP relay.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// New creates a Mailer for the given SMTP relay.
func New(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// SendResetCode mails a password reset code to the given address.
func (m *Mailer) SendResetCode(to, code string, validFor time.Duration) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password reset code")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Your password reset code is %s.\n\nIt expires in %d minutes. If you did not request a reset, you can ignore this message.",
		code, int(validFor.Minutes()),
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send reset code: %w", err)
	}
	return nil
}
