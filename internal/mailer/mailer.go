package mailer

import (
	"bytes"
	"text/template"
)

const FromName = "ReviewHub"

var confirmationTemplate = template.Must(template.New("confirmation").Parse(
	`Hello {{.Username}},

Your confirmation code for API access: {{.Code}}

Exchange it at POST /api/v1/auth/token to receive an access token.
`))

// Client delivers outbound mail. Implementations are interchangeable so the
// signup flow can run against SMTP in production and an in-memory sink in
// tests.
type Client interface {
	Send(recipient, subject, body string) error
}

// ConfirmationBody renders the signup confirmation message.
func ConfirmationBody(username, code string) (string, error) {
	var buf bytes.Buffer
	err := confirmationTemplate.Execute(&buf, struct {
		Username string
		Code     string
	}{Username: username, Code: code})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
