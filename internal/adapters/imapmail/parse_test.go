package imapmail

import (
	"testing"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/stretchr/testify/assert"
)

const plainMessage = "From: alice@example.com\r\n" +
	"Subject: plain\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"hello from a plain message\r\n"

const multipartMessage = "From: alice@example.com\r\n" +
	"Subject: multipart\r\n" +
	"Content-Type: multipart/alternative; boundary=frontier\r\n" +
	"\r\n" +
	"--frontier\r\n" +
	"Content-Type: text/html; charset=utf-8\r\n" +
	"\r\n" +
	"<p>rendered body</p>\r\n" +
	"--frontier\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"plain body wins\r\n" +
	"--frontier--\r\n"

const htmlOnlyMessage = "From: alice@example.com\r\n" +
	"Subject: html only\r\n" +
	"Content-Type: multipart/alternative; boundary=frontier\r\n" +
	"\r\n" +
	"--frontier\r\n" +
	"Content-Type: text/html; charset=utf-8\r\n" +
	"\r\n" +
	"<p>only an html part</p>\r\n" +
	"--frontier--\r\n"

func TestExtractText_PlainMessage(t *testing.T) {
	assert.Equal(t, "hello from a plain message", extractText([]byte(plainMessage)))
}

func TestExtractText_PrefersPlainPart(t *testing.T) {
	assert.Equal(t, "plain body wins", extractText([]byte(multipartMessage)))
}

func TestExtractText_FallsBackToOtherTextPart(t *testing.T) {
	assert.Equal(t, "<p>only an html part</p>", extractText([]byte(htmlOnlyMessage)))
}

func TestExtractText_RawFallback(t *testing.T) {
	assert.Equal(t, "just some bytes", extractText([]byte("just some bytes\r\n")))
}

func TestExtractText_Empty(t *testing.T) {
	assert.Equal(t, "", extractText(nil))
}

func TestFormatSender(t *testing.T) {
	tests := []struct {
		name string
		from []imap.Address
		want string
	}{
		{
			name: "display name",
			from: []imap.Address{{Name: "Alice Smith", Mailbox: "alice", Host: "example.com"}},
			want: "Alice Smith <alice@example.com>",
		},
		{
			name: "bare address",
			from: []imap.Address{{Mailbox: "alice", Host: "example.com"}},
			want: "alice@example.com",
		},
		{
			name: "no sender",
			from: nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatSender(tt.from))
		})
	}
}

func TestBuildEmail(t *testing.T) {
	date := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	env := &imap.Envelope{
		Subject: "weekly digest",
		From:    []imap.Address{{Mailbox: "digest", Host: "example.com"}},
		Date:    date,
	}

	email := buildEmail(env, []byte(plainMessage))

	assert.Equal(t, "weekly digest", email.Subject)
	assert.Equal(t, "digest@example.com", email.Sender)
	assert.Equal(t, date.Format(time.RFC1123Z), email.Date)
	assert.Equal(t, "hello from a plain message", email.Content)
}

func TestBuildEmail_NilEnvelope(t *testing.T) {
	email := buildEmail(nil, nil)

	assert.Empty(t, email.Subject)
	assert.Empty(t, email.Sender)
	assert.Empty(t, email.Date)
	assert.Empty(t, email.Content)
}
