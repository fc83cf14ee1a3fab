package catalog

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tharindu/classtrack/internal/model"
)

// Sort keys accepted by Query.Sort.
const (
	SortStartDateAsc  = "startDate_asc"
	SortStartDateDesc = "startDate_desc"
	SortFeeAsc        = "fee_asc"
	SortFeeDesc       = "fee_desc"
	SortTitleAsc      = "title_asc"
	SortTitleDesc     = "title_desc"
)

// SortKeys lists the valid sort keys in the order the browse view cycles them.
var SortKeys = []string{
	SortStartDateDesc, SortStartDateAsc,
	SortFeeDesc, SortFeeAsc,
	SortTitleAsc, SortTitleDesc,
}

// Query describes one browse view: free-text search plus exact-match filters
// and a sort key. The zero value is NOT a useful query — use DefaultQuery.
type Query struct {
	Text    string
	Subject string // "All" or an exact subject
	Grade   string // "All" or an exact grade
	Status  string // "Active", "Inactive" or "All"
	Sort    string // one of the Sort* constants
}

// DefaultQuery is what Reset restores: everything open except status, which
// defaults to Active — browsing starts from classes you can actually join.
func DefaultQuery() Query {
	return Query{
		Text:    "",
		Subject: "All",
		Grade:   "All",
		Status:  "Active",
		Sort:    SortStartDateDesc,
	}
}

// View computes the filtered, sorted browse view of records for q.
// It returns a fresh slice and never reorders or mutates the input.
//
// Filters are AND-combined: status/subject/grade match exactly when not "All",
// and the search text (lowercased, trimmed) must be a substring of the
// record's searchable bag (title, teacher, subject, schedule, room).
// Sorting is stable, so records that compare equal keep their original
// relative order — identical input order always produces identical output.
func View(records []model.Class, q Query) []model.Class {
	needle := strings.ToLower(strings.TrimSpace(q.Text))

	out := make([]model.Class, 0, len(records))
	for _, c := range records {
		if q.Status != "All" && c.Status != q.Status {
			continue
		}
		if q.Subject != "All" && c.Subject != q.Subject {
			continue
		}
		if q.Grade != "All" && c.Grade != q.Grade {
			continue
		}
		if needle != "" && !strings.Contains(searchBag(c), needle) {
			continue
		}
		out = append(out, c)
	}

	less := lessFunc(q.Sort)
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}

	return out
}

// searchBag joins the searchable fields into one lowercase haystack,
// mirroring what the browse grid shows on a card.
func searchBag(c model.Class) string {
	return strings.ToLower(strings.Join([]string{
		c.Title, c.Teacher, c.Subject, c.Schedule, c.Room,
	}, " "))
}

// lessFunc maps a sort key to its comparison. Unknown keys sort nothing
// (original order preserved), matching the browse view's default branch.
func lessFunc(key string) func(a, b model.Class) bool {
	switch key {
	case SortStartDateAsc:
		return func(a, b model.Class) bool { return dateValue(a.StartDate) < dateValue(b.StartDate) }
	case SortStartDateDesc:
		return func(a, b model.Class) bool { return dateValue(a.StartDate) > dateValue(b.StartDate) }
	case SortFeeAsc:
		return func(a, b model.Class) bool { return a.Fee < b.Fee }
	case SortFeeDesc:
		return func(a, b model.Class) bool { return a.Fee > b.Fee }
	case SortTitleAsc:
		return func(a, b model.Class) bool { return a.Title < b.Title }
	case SortTitleDesc:
		return func(a, b model.Class) bool { return a.Title > b.Title }
	}
	return nil
}

// dateValue converts a stored date to a sortable integer. Missing or
// unparseable dates sort as epoch zero — earliest under ascending order,
// last under descending.
func dateValue(s string) int64 {
	if s == "" {
		return 0
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return 0
	}
	return t.Unix()
}

// Subjects returns the distinct non-empty subject values, sorted ascending,
// prefixed with "All" — the option list for the subject filter.
func Subjects(records []model.Class) []string {
	return options(records, func(c model.Class) string { return c.Subject }, sort.Strings)
}

// Grades is the grade counterpart of Subjects, but with numeric-aware
// ordering so "2" comes before "10" while "A/L" still sorts after numbers.
func Grades(records []model.Class) []string {
	return options(records, func(c model.Class) string { return c.Grade }, func(vals []string) {
		sort.Slice(vals, func(i, j int) bool { return naturalLess(vals[i], vals[j]) })
	})
}

func options(records []model.Class, field func(model.Class) string, order func([]string)) []string {
	seen := make(map[string]struct{})
	vals := make([]string, 0, len(records))
	for _, c := range records {
		v := field(c)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		vals = append(vals, v)
	}
	order(vals)
	return append([]string{"All"}, vals...)
}

// naturalLess compares two strings treating them as numbers when both parse
// as integers. Mixed comparisons put numbers first, everything else falls
// back to plain string order.
func naturalLess(a, b string) bool {
	an, aerr := strconv.Atoi(a)
	bn, berr := strconv.Atoi(b)
	switch {
	case aerr == nil && berr == nil:
		if an != bn {
			return an < bn
		}
		return a < b
	case aerr == nil:
		return true
	case berr == nil:
		return false
	}
	return a < b
}
