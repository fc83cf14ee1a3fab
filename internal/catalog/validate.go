// Package catalog holds the client-side core of the class console: draft
// validation, normalization into the wire shape, and the filter/sort engine
// that derives the browse view from a fetched class list.
//
// Everything in this package is a pure function over plain values — no HTTP,
// no storage, no clocks. That is deliberate: these rules run on every
// keystroke/flag change in the console, and they are the part of the system
// worth pinning down with exhaustive tests.
package catalog

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// DateLayout is the canonical date format for start/end dates.
const DateLayout = "2006-01-02"

// Draft is a class record as the user typed it: every field is a string,
// including the numeric-looking ones. Validation happens on this pre-coercion
// shape so that "3.5" in capacity can be flagged as "not a whole number"
// instead of being silently truncated by an early conversion.
type Draft struct {
	Title     string
	Subject   string
	Grade     string
	Teacher   string
	Schedule  string
	Room      string
	Capacity  string
	Fee       string
	Currency  string
	Status    string
	StartDate string
	EndDate   string
}

// EmptyDraft returns a fresh draft with the defaults the add-class form
// starts from.
func EmptyDraft() Draft {
	return Draft{Currency: "LKR", Status: "Active"}
}

// FieldOrder lists the draft fields in form order. Callers that can only
// surface one error at a time walk this to pick it deterministically.
var FieldOrder = []string{
	"title", "subject", "grade", "teacher", "schedule", "room",
	"capacity", "fee", "currency", "status", "startDate", "endDate",
}

var (
	teacherRe  = regexp.MustCompile(`^[A-Za-z .'-]{3,60}$`)
	feeRe      = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)
)

// rule is one check for one field. Rules for a field run in order and the
// first failing rule wins — later rules for that field are not evaluated.
type rule struct {
	field string
	check func(Draft) string // returns "" when the rule passes
}

func nonEmpty(s string) bool { return strings.TrimSpace(s) != "" }

// rules is the ordered per-field rule table. The cross-field date check is NOT
// here — it runs as a distinct final pass in Validate so that it can see which
// of the two date fields already carry an error.
var rules = []rule{
	{"title", func(d Draft) string {
		if !nonEmpty(d.Title) {
			return "Title is required"
		}
		return ""
	}},
	{"title", func(d Draft) string {
		// Characters, not bytes — a Sinhala or CJK title is much longer in
		// bytes than in what the user sees.
		if n := utf8.RuneCountInString(strings.TrimSpace(d.Title)); n < 3 || n > 80 {
			return "3-80 characters"
		}
		return ""
	}},
	{"subject", func(d Draft) string {
		if !nonEmpty(d.Subject) {
			return "Subject is required"
		}
		return ""
	}},
	{"grade", func(d Draft) string {
		if !nonEmpty(d.Grade) {
			return "Grade is required"
		}
		return ""
	}},
	{"teacher", func(d Draft) string {
		if !nonEmpty(d.Teacher) {
			return "Teacher is required"
		}
		return ""
	}},
	{"teacher", func(d Draft) string {
		if !teacherRe.MatchString(strings.TrimSpace(d.Teacher)) {
			return "Only letters/spaces, 3-60 chars"
		}
		return ""
	}},
	{"schedule", func(d Draft) string {
		if !nonEmpty(d.Schedule) {
			return "Schedule is required"
		}
		return ""
	}},
	{"room", func(d Draft) string {
		if !nonEmpty(d.Room) {
			return "Room is required"
		}
		return ""
	}},
	{"capacity", func(d Draft) string {
		if !nonEmpty(d.Capacity) {
			return "Capacity is required"
		}
		return ""
	}},
	{"capacity", func(d Draft) string {
		if _, err := strconv.Atoi(strings.TrimSpace(d.Capacity)); err != nil {
			return "Must be a whole number"
		}
		return ""
	}},
	{"capacity", func(d Draft) string {
		n, _ := strconv.Atoi(strings.TrimSpace(d.Capacity))
		if n < 1 || n > 500 {
			return "Must be between 1 and 500"
		}
		return ""
	}},
	{"fee", func(d Draft) string {
		if !nonEmpty(d.Fee) {
			return "Fee is required"
		}
		return ""
	}},
	{"fee", func(d Draft) string {
		if !feeRe.MatchString(strings.TrimSpace(d.Fee)) {
			return "Use up to 2 decimals (e.g., 1200 or 1200.50)"
		}
		return ""
	}},
	{"fee", func(d Draft) string {
		// The pattern already excludes a minus sign, but the numeric check
		// stays as a second gate so a future pattern tweak can't let a
		// negative fee through.
		if n, err := strconv.ParseFloat(strings.TrimSpace(d.Fee), 64); err == nil && n < 0 {
			return "Cannot be negative"
		}
		return ""
	}},
	{"currency", func(d Draft) string {
		if !nonEmpty(d.Currency) {
			return "Currency is required"
		}
		return ""
	}},
	{"currency", func(d Draft) string {
		if !currencyRe.MatchString(strings.TrimSpace(d.Currency)) {
			return "Use 3-letter code (e.g., LKR)"
		}
		return ""
	}},
	{"status", func(d Draft) string {
		if d.Status != "Active" && d.Status != "Inactive" {
			return "Invalid status"
		}
		return ""
	}},
	{"startDate", func(d Draft) string {
		if nonEmpty(d.StartDate) && !validDate(d.StartDate) {
			return "Invalid date"
		}
		return ""
	}},
	{"endDate", func(d Draft) string {
		if nonEmpty(d.EndDate) && !validDate(d.EndDate) {
			return "Invalid date"
		}
		return ""
	}},
}

func validDate(s string) bool {
	_, err := time.Parse(DateLayout, strings.TrimSpace(s))
	return err == nil
}

// Validate checks a draft and returns a map of field name → error message.
// An empty map means the draft is save-eligible.
//
// Evaluation order: the per-field rules run first (first failure wins per
// field), then the cross-field date check runs as a final pass. The
// cross-field message only fills empty slots — it never overwrites a
// per-field error, and it lands on at most one of the two date fields,
// preferring startDate.
func Validate(d Draft) map[string]string {
	errs := make(map[string]string)

	for _, r := range rules {
		if _, done := errs[r.field]; done {
			continue
		}
		if msg := r.check(d); msg != "" {
			errs[r.field] = msg
		}
	}

	// Cross-field pass: both dates present and individually valid, but out of
	// order. Attach the message to whichever field is still free.
	if nonEmpty(d.StartDate) && nonEmpty(d.EndDate) && validDate(d.StartDate) && validDate(d.EndDate) {
		start, _ := time.Parse(DateLayout, strings.TrimSpace(d.StartDate))
		end, _ := time.Parse(DateLayout, strings.TrimSpace(d.EndDate))
		if start.After(end) {
			if _, taken := errs["startDate"]; !taken {
				errs["startDate"] = "Start must be before end"
			} else if _, taken := errs["endDate"]; !taken {
				errs["endDate"] = "End must be after start"
			}
		}
	}

	return errs
}
