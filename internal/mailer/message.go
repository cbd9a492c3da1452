// Package mailer builds and delivers the two notification emails sent
// for each accepted guest submission.
package mailer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
)

// Attachment is one binary part carried by a message.
type Attachment struct {
	Filename    string
	ContentType string // sniffed type; empty falls back to octet-stream
	Content     []byte
}

// Message is a fully composed outbound email. With an Attachment set it
// renders as two-part multipart/mixed, otherwise as single-part HTML.
type Message struct {
	From       string // envelope/header sender address
	FromName   string // display name for the From header
	To         string
	Cc         []string
	Bcc        []string
	ReplyTo    string
	Subject    string
	HTMLBody   string
	Attachment *Attachment
}

// Recipients returns the SMTP envelope recipient list: To plus any
// Cc/Bcc addresses. Bcc never appears in the rendered headers.
func (m *Message) Recipients() []string {
	rcpts := make([]string, 0, 1+len(m.Cc)+len(m.Bcc))
	rcpts = append(rcpts, m.To)
	rcpts = append(rcpts, m.Cc...)
	rcpts = append(rcpts, m.Bcc...)
	return rcpts
}

// NewBoundary returns a fresh multipart boundary token. Randomness keeps
// it from colliding with message content.
func NewBoundary() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Render produces the complete wire form of the message, headers
// included. boundary is used only when an attachment is present.
func (m *Message) Render(boundary string) []byte {
	var buf bytes.Buffer

	from := mail.Address{Name: m.FromName, Address: m.From}
	fmt.Fprintf(&buf, "From: %s\r\n", from.String())
	fmt.Fprintf(&buf, "To: %s\r\n", m.To)
	if len(m.Cc) > 0 {
		fmt.Fprintf(&buf, "Cc: %s\r\n", strings.Join(m.Cc, ", "))
	}
	if m.ReplyTo != "" {
		fmt.Fprintf(&buf, "Reply-To: %s\r\n", m.ReplyTo)
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", m.Subject)
	buf.WriteString("MIME-Version: 1.0\r\n")

	if m.Attachment == nil {
		buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
		buf.WriteString(m.HTMLBody)
		buf.WriteString("\r\n")
		return buf.Bytes()
	}

	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	buf.WriteString("Content-Transfer-Encoding: 7bit\r\n\r\n")
	buf.WriteString(m.HTMLBody)
	buf.WriteString("\r\n")

	ct := m.Attachment.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: %s; name=%q\r\n", ct, m.Attachment.Filename)
	buf.WriteString("Content-Transfer-Encoding: base64\r\n")
	fmt.Fprintf(&buf, "Content-Disposition: attachment; filename=%q\r\n\r\n", m.Attachment.Filename)
	buf.Write(chunkBase64(m.Attachment.Content))
	buf.WriteString("\r\n")
	fmt.Fprintf(&buf, "--%s--", boundary)

	return buf.Bytes()
}

// chunkBase64 encodes data and folds it into 76-column lines as RFC 2045
// requires for the base64 transfer encoding.
func chunkBase64(data []byte) []byte {
	encoded := base64.StdEncoding.EncodeToString(data)

	var buf bytes.Buffer
	for len(encoded) > 76 {
		buf.WriteString(encoded[:76])
		buf.WriteString("\r\n")
		encoded = encoded[76:]
	}
	buf.WriteString(encoded)
	buf.WriteString("\r\n")
	return buf.Bytes()
}
