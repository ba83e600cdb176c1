package quiz

// Navigator enforces section ordering: a section may not be left forward
// while any of its questions lacks an answer. It holds no answer state of
// its own; callers pass the set of answered question IDs on each check.
type Navigator struct {
	sections []Section
	current  int
	total    int
}

// AdvanceResult reports the outcome of an Advance call.
type AdvanceResult struct {
	// Moved is true if the current section index changed.
	Moved bool

	// ReadyToFinalize is true when Advance was called on the last section
	// with every question answered. The index does not move past the end.
	ReadyToFinalize bool

	// Unanswered lists the questions blocking the advance, in original
	// order. Non-empty iff the advance was refused. This is a normal
	// negative result for presentation code, not an error.
	Unanswered []Question
}

// NewNavigator builds a Navigator over sections. The section order given
// is the presentation order.
func NewNavigator(sections []Section) *Navigator {
	total := 0
	for _, s := range sections {
		total += len(s.Questions)
	}
	return &Navigator{sections: sections, total: total}
}

// TotalSections returns the number of sections.
func (n *Navigator) TotalSections() int { return len(n.sections) }

// TotalQuestions returns the number of questions across all sections.
func (n *Navigator) TotalQuestions() int { return n.total }

// Current returns the active section index.
func (n *Navigator) Current() int { return n.current }

// SectionAt returns the section at index, or nil if out of range.
func (n *Navigator) SectionAt(index int) *Section {
	if index < 0 || index >= len(n.sections) {
		return nil
	}
	return &n.sections[index]
}

// Unanswered returns the questions in section index that have no entry in
// answered, preserving the section's question order.
func (n *Navigator) Unanswered(index int, answered map[int]bool) []Question {
	s := n.SectionAt(index)
	if s == nil {
		return nil
	}
	var missing []Question
	for _, q := range s.Questions {
		if !answered[q.ID] {
			missing = append(missing, q)
		}
	}
	return missing
}

// CanAdvance reports whether section index is complete.
func (n *Navigator) CanAdvance(index int, answered map[int]bool) bool {
	return len(n.Unanswered(index, answered)) == 0
}

// Advance moves forward one section if the current section is complete.
// On the last section it reports ReadyToFinalize instead of moving past
// the end. An incomplete section refuses the move and returns the
// blocking questions; the index is not mutated.
func (n *Navigator) Advance(answered map[int]bool) AdvanceResult {
	if len(n.sections) == 0 {
		return AdvanceResult{ReadyToFinalize: true}
	}
	missing := n.Unanswered(n.current, answered)
	if len(missing) > 0 {
		return AdvanceResult{Unanswered: missing}
	}
	if n.current == len(n.sections)-1 {
		return AdvanceResult{ReadyToFinalize: true}
	}
	n.current++
	return AdvanceResult{Moved: true}
}

// Retreat moves back one section. At index 0 it reports false and stays
// put; that is a no-op, not an error.
func (n *Navigator) Retreat() bool {
	if n.current == 0 {
		return false
	}
	n.current--
	return true
}
