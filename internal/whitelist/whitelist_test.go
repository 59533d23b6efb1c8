package whitelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestIsTrusted(t *testing.T) {
	checker := NewChecker([]string{"Partner.Example.com", " corp.example.org "}, zap.NewNop())

	tests := []struct {
		name    string
		sender  string
		trusted bool
	}{
		{"bare address", "alice@partner.example.com", true},
		{"case insensitive domain", "alice@PARTNER.EXAMPLE.COM", true},
		{"display name form", "Alice Smith <alice@corp.example.org>", true},
		{"untrusted domain", "mallory@evil.example.net", false},
		{"no at sign", "not-an-address", false},
		{"empty sender", "", false},
		{"multiple at signs", "a@b@partner.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.trusted, checker.IsTrusted(tt.sender))
		})
	}
}

func TestIsTrusted_EmptyList(t *testing.T) {
	checker := NewChecker(nil, zap.NewNop())
	assert.False(t, checker.IsTrusted("anyone@anywhere.example.com"))
}
