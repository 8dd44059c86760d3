// internal/email/message.go
package email

import (
	"fmt"
	"io"
	"net/mail"

	gomail "gopkg.in/gomail.v2"
)

// Attachment is one binary part of an outgoing message. Content type and
// filename are always set explicitly by the producing stage; nothing is
// inferred from the bytes.
type Attachment struct {
	Filename    string
	ContentType string
	Bytes       []byte
}

// Message is the assembled outgoing email: one HTML body plus zero or
// more attachments in the order they were produced. It lives for a single
// request and is discarded after delivery.
type Message struct {
	From        string
	To          string
	Subject     string
	HTMLBody    string
	Attachments []Attachment
}

// Build validates the envelope addresses and assembles the multipart MIME
// message. Attachment order is preserved as-is.
func (m *Message) Build() (*gomail.Message, error) {
	if _, err := mail.ParseAddress(m.From); err != nil {
		return nil, fmt.Errorf("invalid sender address %q: %w", m.From, err)
	}
	if _, err := mail.ParseAddress(m.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address %q: %w", m.To, err)
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.From)
	gm.SetHeader("To", m.To)
	gm.SetHeader("Subject", m.Subject)
	gm.SetBody("text/html", m.HTMLBody)

	for _, att := range m.Attachments {
		data := att.Bytes
		gm.Attach(att.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
			gomail.SetHeader(map[string][]string{
				"Content-Type": {att.ContentType},
			}),
		)
	}

	return gm, nil
}
