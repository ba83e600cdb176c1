// Package result normalizes the scoring service's payload into the stable
// shape presentation code renders. Transform is pure: no side effects, no
// knowledge of session state, and it never fails on missing fields.
package result

// Dimensions lists the four pole pairs in presentation order. The label is
// also the key under View.Scores.
var Dimensions = [4]struct {
	Label string
	Left  string
	Right string
}{
	{"EI", "E", "I"},
	{"SN", "S", "N"},
	{"TF", "T", "F"},
	{"JP", "J", "P"},
}

// Payload is the scoring service's result shape, as delivered by the
// gateway after schema validation.
type Payload struct {
	Type             string             `json:"type"`
	TypeName         string             `json:"typeName"`
	Description      string             `json:"description"`
	RawScores        map[string]float64 `json:"rawScores"`
	NormalizedScores map[string]float64 `json:"normalizedScores"`
	Celebrities      []Celebrity        `json:"celebrities"`
	Recommendations  []string           `json:"recommendations"`
	Statistics       map[string]any     `json:"statistics"`
	Compatibility    map[string]any     `json:"compatibility"`
	Confidence       float64            `json:"confidence"`
	TypeStrength     string             `json:"typeStrength"`
	Demographics     map[string]string  `json:"demographics"`
}

// Celebrity is one well-known person sharing the computed type.
type Celebrity struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Initials    string `json:"initials,omitempty"` // derived, not sent by the service
}

// View is the presentation-ready result. Scores groups the two normalized
// values of each dimension under its pair label; each pair sums to 100 on
// the normalized scale.
type View struct {
	Type             string                        `json:"type"`
	TypeName         string                        `json:"typeName"`
	Description      string                        `json:"description"`
	Scores           map[string]map[string]float64 `json:"scores"`
	RawScores        map[string]float64            `json:"rawScores"`
	NormalizedScores map[string]float64            `json:"normalizedScores"`
	Celebrities      []Celebrity                   `json:"celebrities"`
	Recommendations  []string                      `json:"recommendations"`
	Statistics       map[string]any                `json:"statistics"`
	Compatibility    map[string]any                `json:"compatibility"`
	Confidence       float64                       `json:"confidence"`
	TypeStrength     string                        `json:"typeStrength"`
	Demographics     map[string]string             `json:"demographics"`
}
