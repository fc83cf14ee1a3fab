package catalog

import (
	"strconv"
	"strings"

	"github.com/tharindu/classtrack/internal/model"
)

// Normalize coerces a validated draft into the canonical model.Class shape
// sent to the API: text fields trimmed, capacity and fee converted to their
// numeric types, currency uppercased, empty dates left as the empty string
// (which the model's omitempty tag keeps off the wire). Status passes through
// untouched — Validate already constrained it to the enum.
//
// Normalize must only be called on a draft for which Validate returned an
// empty map; on invalid input the numeric fields silently collapse to zero.
//
// The function is idempotent: round-tripping the result back through Draft()
// and Normalize again yields the same canonical values.
func Normalize(d Draft) model.Class {
	capacity, _ := strconv.Atoi(strings.TrimSpace(d.Capacity))
	fee, _ := strconv.ParseFloat(strings.TrimSpace(d.Fee), 64)

	return model.Class{
		Title:     strings.TrimSpace(d.Title),
		Subject:   strings.TrimSpace(d.Subject),
		Grade:     strings.TrimSpace(d.Grade),
		Teacher:   strings.TrimSpace(d.Teacher),
		Schedule:  strings.TrimSpace(d.Schedule),
		Room:      strings.TrimSpace(d.Room),
		Capacity:  capacity,
		Fee:       fee,
		Currency:  strings.ToUpper(strings.TrimSpace(d.Currency)),
		Status:    d.Status,
		StartDate: strings.TrimSpace(d.StartDate),
		EndDate:   strings.TrimSpace(d.EndDate),
	}
}

// DraftOf renders an existing record back into the all-string draft shape,
// used when editing: the form starts from the saved record's values.
func DraftOf(c model.Class) Draft {
	return Draft{
		Title:     c.Title,
		Subject:   c.Subject,
		Grade:     c.Grade,
		Teacher:   c.Teacher,
		Schedule:  c.Schedule,
		Room:      c.Room,
		Capacity:  strconv.Itoa(c.Capacity),
		Fee:       formatFee(c.Fee),
		Currency:  c.Currency,
		Status:    c.Status,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
	}
}

// formatFee re-stringifies a fee without trailing zero noise: 1200 → "1200",
// 1200.5 → "1200.50" would be nicer for display but "1200.5" still validates,
// so the shortest faithful form wins.
func formatFee(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
