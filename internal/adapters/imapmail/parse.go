package imapmail

import (
	"bytes"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-message/mail"

	// Register extended charsets for MIME decoding
	_ "github.com/emersion/go-message/charset"

	"github.com/ahmettahaakturk25/customer-analyze/internal/core"
)

// buildEmail converts a fetched envelope and raw body into a core.Email.
// Missing fields stay empty; the core normalization step backfills them.
func buildEmail(env *imap.Envelope, body []byte) *core.Email {
	email := &core.Email{}

	if env != nil {
		email.Subject = env.Subject
		email.Sender = formatSender(env.From)
		if !env.Date.IsZero() {
			email.Date = env.Date.Format(time.RFC1123Z)
		}
	}

	email.Content = extractText(body)
	return email
}

// formatSender renders the first From address as "Name <addr>" or a bare
// address when no display name is present.
func formatSender(from []imap.Address) string {
	if len(from) == 0 {
		return ""
	}
	addr := from[0]
	if addr.Name != "" {
		return addr.Name + " <" + addr.Addr() + ">"
	}
	return addr.Addr()
}

// extractText pulls the first text/plain part out of a MIME message,
// falling back to any inline text part and finally to the raw bytes when
// the body does not parse as a MIME message.
func extractText(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	mr, err := mail.CreateReader(bytes.NewReader(body))
	if err != nil {
		return strings.TrimSpace(string(body))
	}

	var fallback string
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		header, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}

		contentType, _, err := header.ContentType()
		if err != nil {
			continue
		}

		text, err := io.ReadAll(part.Body)
		if err != nil {
			continue
		}

		if contentType == "text/plain" {
			return strings.TrimSpace(string(text))
		}
		if fallback == "" && strings.HasPrefix(contentType, "text/") {
			fallback = strings.TrimSpace(string(text))
		}
	}

	return fallback
}
