package result

import (
	"strings"
	"unicode"
)

// Transform maps a scoring payload into the View shape. Missing optional
// fields become empty values rather than failures.
func Transform(p Payload) View {
	v := View{
		Type:             p.Type,
		TypeName:         p.TypeName,
		Description:      p.Description,
		Scores:           pairScores(p.NormalizedScores),
		RawScores:        p.RawScores,
		NormalizedScores: p.NormalizedScores,
		Celebrities:      withInitials(p.Celebrities),
		Recommendations:  p.Recommendations,
		Statistics:       p.Statistics,
		Compatibility:    p.Compatibility,
		Confidence:       p.Confidence,
		TypeStrength:     p.TypeStrength,
		Demographics:     p.Demographics,
	}

	if v.RawScores == nil {
		v.RawScores = map[string]float64{}
	}
	if v.NormalizedScores == nil {
		v.NormalizedScores = map[string]float64{}
	}
	if v.Celebrities == nil {
		v.Celebrities = []Celebrity{}
	}
	if v.Recommendations == nil {
		v.Recommendations = []string{}
	}
	if v.Statistics == nil {
		v.Statistics = map[string]any{}
	}
	if v.Compatibility == nil {
		v.Compatibility = map[string]any{}
	}
	if v.Demographics == nil {
		v.Demographics = map[string]string{}
	}
	return v
}

// pairScores groups normalized pole values under their dimension label.
// An absent pole reads as 0.
func pairScores(normalized map[string]float64) map[string]map[string]float64 {
	scores := make(map[string]map[string]float64, len(Dimensions))
	for _, d := range Dimensions {
		scores[d.Label] = map[string]float64{
			d.Left:  normalized[d.Left],
			d.Right: normalized[d.Right],
		}
	}
	return scores
}

// withInitials returns the celebrity list with Initials derived from each
// name's whitespace-separated tokens.
func withInitials(celebrities []Celebrity) []Celebrity {
	out := make([]Celebrity, len(celebrities))
	for i, c := range celebrities {
		c.Initials = Initials(c.Name)
		out[i] = c
	}
	return out
}

// Initials derives uppercase initials from name, one per whitespace token.
// "Steve Jobs" -> "SJ", "Madonna" -> "M", "" -> "".
func Initials(name string) string {
	var b strings.Builder
	for _, token := range strings.Fields(name) {
		r := []rune(token)[0]
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
