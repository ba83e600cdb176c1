package quiz

import "testing"

// testSections builds 4 sections of 4 questions, IDs 1..16.
func testSections() []Section {
	var sections []Section
	id := 1
	for s := 1; s <= 4; s++ {
		sec := Section{ID: s, Title: "Part"}
		for q := 0; q < 4; q++ {
			sec.Questions = append(sec.Questions, Question{
				ID:        id,
				Category:  "EI",
				LeftType:  "E",
				RightType: "I",
				SectionID: s,
			})
			id++
		}
		sections = append(sections, sec)
	}
	return sections
}

func answeredSet(ids ...int) map[int]bool {
	m := make(map[int]bool)
	for _, id := range ids {
		m[id] = true
	}
	return m
}

func TestNavigator_Totals(t *testing.T) {
	n := NewNavigator(testSections())
	if n.TotalSections() != 4 {
		t.Errorf("TotalSections = %d, want 4", n.TotalSections())
	}
	if n.TotalQuestions() != 16 {
		t.Errorf("TotalQuestions = %d, want 16", n.TotalQuestions())
	}
}

func TestUnanswered_PreservesOrder(t *testing.T) {
	n := NewNavigator(testSections())

	// 3 of 4 answered in section 0; question 2 is the gap.
	answered := answeredSet(1, 3, 4)
	missing := n.Unanswered(0, answered)
	if len(missing) != 1 {
		t.Fatalf("len(missing) = %d, want 1", len(missing))
	}
	if missing[0].ID != 2 {
		t.Errorf("missing[0].ID = %d, want 2", missing[0].ID)
	}
	if n.CanAdvance(0, answered) {
		t.Error("CanAdvance should be false with 1 unanswered")
	}
}

func TestUnanswered_MultipleGapsInOrder(t *testing.T) {
	n := NewNavigator(testSections())
	missing := n.Unanswered(0, answeredSet(3))
	want := []int{1, 2, 4}
	if len(missing) != len(want) {
		t.Fatalf("len(missing) = %d, want %d", len(missing), len(want))
	}
	for i, q := range missing {
		if q.ID != want[i] {
			t.Errorf("missing[%d].ID = %d, want %d", i, q.ID, want[i])
		}
	}
}

func TestAdvance_RefusedWithoutMoving(t *testing.T) {
	n := NewNavigator(testSections())
	res := n.Advance(answeredSet(1, 2))
	if res.Moved || res.ReadyToFinalize {
		t.Error("incomplete section must not advance")
	}
	if len(res.Unanswered) != 2 {
		t.Errorf("len(Unanswered) = %d, want 2", len(res.Unanswered))
	}
	if n.Current() != 0 {
		t.Errorf("Current = %d, want 0 (index untouched)", n.Current())
	}
}

func TestAdvance_MovesWhenComplete(t *testing.T) {
	n := NewNavigator(testSections())
	res := n.Advance(answeredSet(1, 2, 3, 4))
	if !res.Moved {
		t.Fatal("expected advance to move")
	}
	if n.Current() != 1 {
		t.Errorf("Current = %d, want 1", n.Current())
	}
}

func TestAdvance_LastSectionSignalsFinalize(t *testing.T) {
	n := NewNavigator(testSections())
	all := answeredSet()
	for id := 1; id <= 16; id++ {
		all[id] = true
	}
	for i := 0; i < 3; i++ {
		if res := n.Advance(all); !res.Moved {
			t.Fatalf("advance %d did not move", i)
		}
	}

	res := n.Advance(all)
	if res.Moved {
		t.Error("last section should not move past the end")
	}
	if !res.ReadyToFinalize {
		t.Error("expected ReadyToFinalize on complete last section")
	}
	if n.Current() != 3 {
		t.Errorf("Current = %d, want 3", n.Current())
	}
}

func TestRetreat(t *testing.T) {
	n := NewNavigator(testSections())

	if n.Retreat() {
		t.Error("Retreat at index 0 should report false")
	}
	if n.Current() != 0 {
		t.Errorf("Current = %d, want 0", n.Current())
	}

	n.Advance(answeredSet(1, 2, 3, 4))
	if !n.Retreat() {
		t.Error("Retreat from index 1 should succeed")
	}
	if n.Current() != 0 {
		t.Errorf("Current = %d, want 0", n.Current())
	}
}

func TestSectionAt_OutOfRange(t *testing.T) {
	n := NewNavigator(testSections())
	if n.SectionAt(-1) != nil || n.SectionAt(4) != nil {
		t.Error("out-of-range SectionAt should be nil")
	}
}
