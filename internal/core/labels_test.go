package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "transformer normal", raw: "LABEL_0", expected: "Normal"},
		{name: "transformer market violation", raw: "LABEL_1", expected: "Pazar İhlali"},
		{name: "transformer bid violation", raw: "LABEL_2", expected: "İhale İhlali"},
		{name: "transformer price violation", raw: "LABEL_3", expected: "Fiyat İhlali"},
		{name: "transformer info violation", raw: "LABEL_4", expected: "Bilgi İhlali"},
		{name: "index normal", raw: "0", expected: "Normal"},
		{name: "index market violation", raw: "1", expected: "Pazar İhlali"},
		{name: "index bid violation", raw: "2", expected: "İhale İhlali"},
		{name: "index price violation", raw: "3", expected: "Fiyat İhlali"},
		{name: "index info violation", raw: "4", expected: "Bilgi İhlali"},
		{name: "human normal", raw: "normal", expected: "Normal"},
		{name: "human anomalous", raw: "anormal", expected: "Anormal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeLabel(tt.raw))
		})
	}
}

func TestNormalizeLabel_UnknownTokenPassesThrough(t *testing.T) {
	assert.Equal(t, "LABEL_9", NormalizeLabel("LABEL_9"))
	assert.Equal(t, "gibberish", NormalizeLabel("gibberish"))
	assert.Equal(t, "", NormalizeLabel(""))
}

func TestNormalizeLabel_Idempotent(t *testing.T) {
	tokens := []string{
		"LABEL_0", "LABEL_1", "LABEL_2", "LABEL_3", "LABEL_4",
		"0", "1", "2", "3", "4",
		"normal", "anormal", "something-else",
	}
	for _, token := range tokens {
		once := NormalizeLabel(token)
		assert.Equal(t, once, NormalizeLabel(once), "token %q", token)
	}
}

func TestKnownLabel(t *testing.T) {
	assert.True(t, KnownLabel("LABEL_0"))
	assert.True(t, KnownLabel("4"))
	assert.False(t, KnownLabel("LABEL_9"))
	assert.False(t, KnownLabel("Normal"))
}
