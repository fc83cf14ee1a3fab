package tui

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tharindu/classtrack/internal/bookmark"
	"github.com/tharindu/classtrack/internal/catalog"
	"github.com/tharindu/classtrack/internal/kvstore"
	"github.com/tharindu/classtrack/internal/model"
)

func testClasses() []model.Class {
	return []model.Class{
		{ID: "a", Title: "Math 101", Subject: "Mathematics", Grade: "10", Status: "Active", Fee: 1500, StartDate: "2025-05-01"},
		{ID: "b", Title: "Physics", Subject: "Science", Grade: "11", Status: "Active", Fee: 1200, StartDate: "2025-06-01"},
		{ID: "c", Title: "Chemistry", Subject: "Science", Grade: "11", Status: "Inactive", Fee: 1800, StartDate: "2025-04-01"},
	}
}

// loaded returns a model with classes already in place, as if Init's fetch
// completed.
func loaded(t *testing.T) Model {
	t.Helper()

	m := New(nil, bookmark.Load(kvstore.NewMemory()))
	next, _ := m.Update(classesMsg(testClasses()))
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	panic("unknown key " + s)
}

func TestBrowse_DefaultHidesInactive(t *testing.T) {
	m := loaded(t)

	if len(m.visible) != 2 {
		t.Fatalf("visible = %d, want 2 (Active only)", len(m.visible))
	}
	for _, c := range m.visible {
		if c.Status != "Active" {
			t.Errorf("inactive class %s shown under the default filter", c.ID)
		}
	}
}

func TestBrowse_StatusCycling(t *testing.T) {
	m := loaded(t)

	// Active → Inactive → All → Active.
	next, _ := m.Update(key("a"))
	m = next.(Model)
	if m.query.Status != "Inactive" || len(m.visible) != 1 {
		t.Fatalf("after one cycle: status %q, visible %d", m.query.Status, len(m.visible))
	}

	next, _ = m.Update(key("a"))
	m = next.(Model)
	if m.query.Status != "All" || len(m.visible) != 3 {
		t.Fatalf("after two cycles: status %q, visible %d", m.query.Status, len(m.visible))
	}

	next, _ = m.Update(key("a"))
	m = next.(Model)
	if m.query.Status != "Active" {
		t.Fatalf("cycle did not wrap: %q", m.query.Status)
	}
}

func TestBrowse_BookmarkToggleAndFilter(t *testing.T) {
	m := loaded(t)

	// Bookmark the row under the cursor, then show bookmarked only.
	markedID := m.visible[m.cursor].ID
	next, _ := m.Update(key("b"))
	m = next.(Model)
	if !m.marks.Has(markedID) {
		t.Fatalf("class %s not bookmarked after toggle", markedID)
	}
	if m.notice != "Bookmarked" {
		t.Errorf("notice = %q", m.notice)
	}

	next, _ = m.Update(key("m"))
	m = next.(Model)
	if len(m.visible) != 1 || m.visible[0].ID != markedID {
		t.Errorf("bookmarked-only view = %+v", m.visible)
	}
}

func TestBrowse_ResetRestoresDefaults(t *testing.T) {
	m := loaded(t)

	next, _ := m.Update(key("a")) // status → Inactive
	m = next.(Model)
	next, _ = m.Update(key("s")) // sort off the default
	m = next.(Model)

	next, _ = m.Update(key("x"))
	m = next.(Model)
	if m.query != catalog.DefaultQuery() {
		t.Errorf("query after reset = %+v", m.query)
	}
	if m.notice != "Filters reset" {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestBrowse_StaleNoticeTimerIgnored(t *testing.T) {
	m := loaded(t)

	next, _ := m.Update(key("b")) // "Bookmarked"
	m = next.(Model)
	firstSeq := m.noticeSeq

	next, _ = m.Update(key("b")) // "Bookmark removed" replaces it
	m = next.(Model)

	// The first notice's timer fires late: the current notice must survive.
	next, _ = m.Update(noticeExpiredMsg{seq: firstSeq})
	m = next.(Model)
	if m.notice != "Bookmark removed" {
		t.Fatalf("stale timer dismissed the live notice: %q", m.notice)
	}

	// The live notice's own timer still dismisses it.
	next, _ = m.Update(noticeExpiredMsg{seq: m.noticeSeq})
	m = next.(Model)
	if m.notice != "" {
		t.Errorf("notice not dismissed: %q", m.notice)
	}
}

func TestBrowse_SearchFiltersRows(t *testing.T) {
	m := loaded(t)

	next, _ := m.Update(key("/"))
	m = next.(Model)
	if !m.search.Focused() {
		t.Fatal("search not focused after /")
	}

	for _, r := range "physics" {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	if len(m.visible) != 1 || m.visible[0].ID != "b" {
		t.Errorf("visible = %+v", m.visible)
	}

	next, _ = m.Update(key("esc"))
	m = next.(Model)
	if m.search.Focused() {
		t.Error("search still focused after esc")
	}
}

func TestBrowse_LoadErrorBecomesNotice(t *testing.T) {
	m := New(nil, bookmark.Load(kvstore.NewMemory()))

	next, _ := m.Update(errMsg{errors.New("connection refused")})
	m = next.(Model)
	if m.loading {
		t.Error("still loading after error")
	}
	if m.notice == "" {
		t.Error("expected an error notice")
	}
}

func TestTruncate_MultiByteTitles(t *testing.T) {
	short := "Math 101"
	if got := truncate(short, 28); got != short {
		t.Errorf("truncate(%q) = %q", short, got)
	}

	// 30 Sinhala characters, 3 bytes each: the cut must land on a rune
	// boundary and the budget is characters, not bytes.
	long := strings.Repeat("ග", 30)
	got := truncate(long, 10)
	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 10 {
		t.Errorf("rune count = %d, want 10", n)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("missing ellipsis: %q", got)
	}
}

func TestBrowse_CursorClampsAfterFilter(t *testing.T) {
	m := loaded(t)

	next, _ := m.Update(key("down"))
	m = next.(Model)
	if m.cursor != 1 {
		t.Fatalf("cursor = %d", m.cursor)
	}

	// Narrow to one row; the cursor must clamp back in range.
	next, _ = m.Update(key("a")) // Inactive: single row
	m = next.(Model)
	if m.cursor != 0 {
		t.Errorf("cursor = %d after narrowing", m.cursor)
	}
}
