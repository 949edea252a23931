package mailer

import (
	mail "gopkg.in/mail.v2"
)

// SMTPClient sends mail through a plain SMTP relay.
type SMTPClient struct {
	dialer *mail.Dialer
	from   string
}

func NewSMTPClient(host string, port int, username, password, from string) *SMTPClient {
	return &SMTPClient{
		dialer: mail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (c *SMTPClient) Send(recipient, subject, body string) error {
	m := mail.NewMessage()
	m.SetAddressHeader("From", c.from, FromName)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return c.dialer.DialAndSend(m)
}
