package core

// LabelNormal is the canonical label for non-anomalous emails.
const LabelNormal = "Normal"

// labelTable maps raw model output tokens to the canonical anomaly
// vocabulary. Classifier backends emit bare indices, transformers library
// conventions emit LABEL_n, and some older models emit already-human
// tokens. One table covers all of them.
var labelTable = map[string]string{
	"LABEL_0": LabelNormal,
	"LABEL_1": "Pazar İhlali",
	"LABEL_2": "İhale İhlali",
	"LABEL_3": "Fiyat İhlali",
	"LABEL_4": "Bilgi İhlali",
	"0":       LabelNormal,
	"1":       "Pazar İhlali",
	"2":       "İhale İhlali",
	"3":       "Fiyat İhlali",
	"4":       "Bilgi İhlali",
	"normal":  LabelNormal,
	"anormal": "Anormal",
}

// NormalizeLabel maps a raw prediction token to the canonical anomaly
// vocabulary. Unknown tokens pass through unchanged so a newer model with
// extra labels degrades to showing the raw token instead of failing.
func NormalizeLabel(raw string) string {
	if label, ok := labelTable[raw]; ok {
		return label
	}
	return raw
}

// KnownLabel reports whether the token maps through the label table.
// The pipeline uses this to flag unmapped tokens in logs.
func KnownLabel(raw string) bool {
	_, ok := labelTable[raw]
	return ok
}
