package catalog

import (
	"reflect"
	"testing"

	"github.com/tharindu/classtrack/internal/model"
)

func sample() []model.Class {
	return []model.Class{
		{ID: "a", Title: "Algebra", Subject: "Mathematics", Grade: "10", Teacher: "Silva",
			Schedule: "Mon 3 PM", Room: "A1", Fee: 30, Status: "Active", StartDate: "2025-03-01"},
		{ID: "b", Title: "Biology", Subject: "Biology", Grade: "12", Teacher: "Perera",
			Schedule: "Tue 4 PM", Room: "B2", Fee: 0, Status: "Inactive", StartDate: "2025-01-15"},
		{ID: "c", Title: "Chemistry", Subject: "Chemistry", Grade: "12", Teacher: "Fernando",
			Schedule: "Wed 5 PM", Room: "C3", Fee: 10, Status: "Active"}, // no start date
	}
}

func ids(classes []model.Class) []string {
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		out = append(out, c.ID)
	}
	return out
}

// =========================================================================
// FILTERS
// =========================================================================

func TestView_StatusFilter(t *testing.T) {
	q := DefaultQuery() // Status: "Active"
	got := ids(View(sample(), q))

	want := []string{"a", "c"} // startDate_desc: a (2025-03-01) then c (missing → epoch)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("View() = %v, want %v", got, want)
	}
}

func TestView_StatusAll(t *testing.T) {
	q := DefaultQuery()
	q.Status = "All"
	if got := len(View(sample(), q)); got != 3 {
		t.Errorf("status All returned %d records, want 3", got)
	}
}

func TestView_SubjectExactMatch(t *testing.T) {
	q := DefaultQuery()
	q.Status = "All"
	q.Subject = "Biology"

	got := ids(View(sample(), q))
	if !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("View() = %v, want [b]", got)
	}

	// Exact, case-sensitive — not a substring match.
	q.Subject = "biology"
	if got := View(sample(), q); len(got) != 0 {
		t.Errorf("lowercase subject filter matched %v, want nothing", ids(got))
	}
}

func TestView_GradeFilter(t *testing.T) {
	q := DefaultQuery()
	q.Status = "All"
	q.Grade = "12"

	got := ids(View(sample(), q))
	want := []string{"b", "c"} // b 2025-01-15 > c epoch
	if !reflect.DeepEqual(got, want) {
		t.Errorf("View() = %v, want %v", got, want)
	}
}

func TestView_TextSearchCaseInsensitive(t *testing.T) {
	q := DefaultQuery()
	q.Status = "All"

	for _, needle := range []string{"bio", "BIO", "  Bio  "} {
		q.Text = needle
		got := ids(View(sample(), q))
		if !reflect.DeepEqual(got, []string{"b"}) {
			t.Errorf("text %q: View() = %v, want [b]", needle, got)
		}
	}
}

func TestView_TextSearchesAllBagFields(t *testing.T) {
	q := DefaultQuery()
	q.Status = "All"

	// Room is part of the bag.
	q.Text = "c3"
	if got := ids(View(sample(), q)); !reflect.DeepEqual(got, []string{"c"}) {
		t.Errorf("room search = %v, want [c]", got)
	}

	// Teacher is part of the bag.
	q.Text = "perera"
	if got := ids(View(sample(), q)); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("teacher search = %v, want [b]", got)
	}
}

func TestView_FiltersAreANDCombined(t *testing.T) {
	q := DefaultQuery()
	q.Status = "Active"
	q.Grade = "12" // only c is Active AND grade 12

	got := ids(View(sample(), q))
	if !reflect.DeepEqual(got, []string{"c"}) {
		t.Errorf("View() = %v, want [c]", got)
	}
}

func TestView_DoesNotMutateInput(t *testing.T) {
	records := sample()
	before := ids(records)

	q := DefaultQuery()
	q.Sort = SortTitleDesc
	q.Status = "All"
	View(records, q)

	if !reflect.DeepEqual(ids(records), before) {
		t.Errorf("View() reordered its input: %v", ids(records))
	}
}

// =========================================================================
// SORTING
// =========================================================================

func TestView_SortFeeAsc_MissingFeeFirst(t *testing.T) {
	q := DefaultQuery()
	q.Status = "All"
	q.Sort = SortFeeAsc

	got := ids(View(sample(), q))
	want := []string{"b", "c", "a"} // 0, 10, 30
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fee_asc = %v, want %v", got, want)
	}
}

func TestView_SortStartDate_MissingSortsAsEpoch(t *testing.T) {
	q := DefaultQuery()
	q.Status = "All"

	q.Sort = SortStartDateAsc
	got := ids(View(sample(), q))
	want := []string{"c", "b", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("startDate_asc = %v, want %v", got, want)
	}

	q.Sort = SortStartDateDesc
	got = ids(View(sample(), q))
	want = []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("startDate_desc = %v, want %v", got, want)
	}
}

func TestView_SortTitle(t *testing.T) {
	q := DefaultQuery()
	q.Status = "All"

	q.Sort = SortTitleAsc
	if got := ids(View(sample(), q)); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("title_asc = %v", got)
	}

	q.Sort = SortTitleDesc
	if got := ids(View(sample(), q)); !reflect.DeepEqual(got, []string{"c", "b", "a"}) {
		t.Errorf("title_desc = %v", got)
	}
}

func TestView_StableSortPreservesTies(t *testing.T) {
	records := []model.Class{
		{ID: "x", Title: "X", Fee: 10, Status: "Active"},
		{ID: "y", Title: "Y", Fee: 10, Status: "Active"},
		{ID: "z", Title: "Z", Fee: 10, Status: "Active"},
	}
	q := DefaultQuery()
	q.Sort = SortFeeAsc

	for i := 0; i < 5; i++ {
		got := ids(View(records, q))
		if !reflect.DeepEqual(got, []string{"x", "y", "z"}) {
			t.Fatalf("run %d: equal fees reordered: %v", i, got)
		}
	}
}

// =========================================================================
// OPTION LISTS & RESET
// =========================================================================

func TestSubjects_SortedWithAllPrefix(t *testing.T) {
	got := Subjects(sample())
	want := []string{"All", "Biology", "Chemistry", "Mathematics"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Subjects() = %v, want %v", got, want)
	}
}

func TestSubjects_SkipsEmptyAndDuplicates(t *testing.T) {
	records := []model.Class{
		{Subject: "Physics"}, {Subject: ""}, {Subject: "Physics"},
	}
	got := Subjects(records)
	if !reflect.DeepEqual(got, []string{"All", "Physics"}) {
		t.Errorf("Subjects() = %v", got)
	}
}

func TestGrades_NumericAwareOrdering(t *testing.T) {
	records := []model.Class{
		{Grade: "10"}, {Grade: "2"}, {Grade: "A/L"}, {Grade: "13"},
	}
	got := Grades(records)
	want := []string{"All", "2", "10", "13", "A/L"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Grades() = %v, want %v", got, want)
	}
}

func TestDefaultQuery_ResetValues(t *testing.T) {
	q := DefaultQuery()

	if q.Status != "Active" {
		t.Errorf("default Status = %q, want Active (not All)", q.Status)
	}
	if q.Sort != SortStartDateDesc {
		t.Errorf("default Sort = %q, want %q", q.Sort, SortStartDateDesc)
	}
	if q.Text != "" || q.Subject != "All" || q.Grade != "All" {
		t.Errorf("default query = %+v", q)
	}
}
