// Package quiz holds the questionnaire catalog and the section navigator
// that gates movement between sections on completeness.
package quiz

// Question is one item on the assessment. Text and scale labels arrive
// already localized from the scoring service.
type Question struct {
	ID         int    `json:"id"`
	Text       string `json:"text"`
	LeftLabel  string `json:"leftLabel"`
	RightLabel string `json:"rightLabel"`
	Category   string `json:"category"` // dimension pole pair, e.g. "EI"
	LeftType   string `json:"leftType"`
	RightType  string `json:"rightType"`
	SectionID  int    `json:"sectionId"`
}

// Section is an ordered group of questions presented together.
type Section struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}
