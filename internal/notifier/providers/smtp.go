// Package providers implements the email transports the notifier can use.
package providers

import (
	"bytes"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"time"
)

// reportBoundary separates the MIME parts of a report email.
const reportBoundary = "twitchsmoke-report"

// SMTPSender delivers suite reports over SMTP.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPSender creates an SMTP sender from the email configuration.
func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Send mails the report with both the HTML body and the plain-text summary.
func (s *SMTPSender) Send(to, subject, htmlBody, plainBody string) error {
	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	msg := buildMessage(s.from, to, subject, htmlBody, plainBody)

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	if err := smtp.SendMail(addr, auth, s.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send report email: %w", err)
	}

	return nil
}

// buildMessage assembles a multipart/alternative message. The plain-text
// part comes first so clients that render the last alternative show HTML.
func buildMessage(from, to, subject, htmlBody, plainBody string) []byte {
	var msg bytes.Buffer

	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", reportBoundary)

	for _, part := range []struct {
		contentType string
		body        string
	}{
		{"text/plain", plainBody},
		{"text/html", htmlBody},
	} {
		fmt.Fprintf(&msg, "--%s\r\n", reportBoundary)
		fmt.Fprintf(&msg, "Content-Type: %s; charset=\"utf-8\"\r\n\r\n", part.contentType)
		msg.WriteString(part.body)
		msg.WriteString("\r\n")
	}
	fmt.Fprintf(&msg, "--%s--\r\n", reportBoundary)

	return msg.Bytes()
}
