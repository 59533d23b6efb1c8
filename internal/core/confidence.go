package core

// Qualitative confidence tiers.
const (
	ConfidenceHigh   = "Yüksek"
	ConfidenceMedium = "Orta"
	ConfidenceLow    = "Düşük"
)

// ClassifyConfidence buckets a confidence score in [0,1] into a qualitative
// tier. Boundaries are strict: exactly 0.8 is Orta and exactly 0.5 is Düşük.
func ClassifyConfidence(score float64) string {
	switch {
	case score > 0.8:
		return ConfidenceHigh
	case score > 0.5:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
