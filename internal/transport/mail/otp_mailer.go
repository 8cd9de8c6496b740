package mail

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"
)

//go:embed reset_email.html
var resetEmailHTML string

var resetEmailTmpl = template.Must(template.New("reset_email").Parse(resetEmailHTML))

// OTPMailer delivers password reset codes over SMTP using the embedded
// HTML template.
type OTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewOTPMailer(host, port, username, password, from string) *OTPMailer {
	return &OTPMailer{
		host:     strings.TrimSpace(host),
		port:     strings.TrimSpace(port),
		username: username,
		password: password,
		from:     strings.TrimSpace(from),
	}
}

func (m *OTPMailer) SendPasswordResetOTP(ctx context.Context, email, otp string) error {
	if m == nil {
		return errors.New("mailer not configured")
	}
	if m.host == "" || m.port == "" || m.from == "" {
		return errors.New("mailer missing configuration")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	var body bytes.Buffer
	if err := resetEmailTmpl.Execute(&body, struct{ OTP string }{OTP: otp}); err != nil {
		return err
	}

	message := strings.Builder{}
	message.WriteString(fmt.Sprintf("From: %s\r\n", m.from))
	message.WriteString(fmt.Sprintf("To: %s\r\n", email))
	message.WriteString("Subject: Password Reset OTP\r\n")
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	message.Write(body.Bytes())
	message.WriteString("\r\n")

	addr := net.JoinHostPort(m.host, m.port)
	var auth smtp.Auth
	if m.username != "" || m.password != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{email}, []byte(message.String()))
}
