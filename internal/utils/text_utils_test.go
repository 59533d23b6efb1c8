package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestTruncateText(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	assert.Equal(t, "short", tp.TruncateText("short", 100))
	assert.Equal(t, "untouched", tp.TruncateText("untouched", 0))

	long := strings.Repeat("x", 300)
	truncated := tp.TruncateText(long, 100)
	assert.True(t, strings.HasPrefix(truncated, strings.Repeat("x", 100)))
	assert.Contains(t, truncated, "Content truncated")
}

func TestTruncateText_UTF8Boundary(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	// "ş" is two bytes; truncating at 5 would split it
	text := "abcd" + "ş" + "efgh"
	truncated := tp.TruncateText(text, 5)
	assert.True(t, utf8.ValidString(truncated))
}

func TestSanitizeUTF8(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	assert.Equal(t, "clean text", tp.SanitizeUTF8("clean text"))

	dirty := "bad\xff\xfebytes"
	assert.Equal(t, "badbytes", tp.SanitizeUTF8(dirty))
	assert.True(t, utf8.ValidString(tp.SanitizeUTF8(dirty)))
}

func TestProcessText(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	result := tp.ProcessText("hello\xffworld", 100)
	assert.Equal(t, "helloworld", result)
}
