package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyConfidence(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected string
	}{
		{name: "just above high boundary", score: 0.81, expected: "Yüksek"},
		{name: "exactly high boundary", score: 0.8, expected: "Orta"},
		{name: "mid medium", score: 0.6, expected: "Orta"},
		{name: "exactly medium boundary", score: 0.5, expected: "Düşük"},
		{name: "low", score: 0.2, expected: "Düşük"},
		{name: "zero", score: 0, expected: "Düşük"},
		{name: "full confidence", score: 1.0, expected: "Yüksek"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyConfidence(tt.score))
		})
	}
}
