package web

import (
	"html/template"
	"time"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/domain"
)

const displayDateFormat = "2 Jan 2006"

// FuncMap returns the display helpers available to every template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"formatDate":        FormatDate,
		"formatDateTime":    FormatDateTime,
		"stateLabel":        StateLabel,
		"relationshipLabel": RelationshipLabel,
		"yesNo":             YesNo,
		"add":               func(a, b int) int { return a + b },
		"sub":               func(a, b int) int { return a - b },
		"seq":               Seq,
	}
}

// FormatDate renders a date as "2 Jan 2006", or empty for the zero value.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(displayDateFormat)
}

// FormatDateTime renders a timestamp as "2 Jan 2006 at 15:04".
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(displayDateFormat + " at 15:04")
}

// StateLabel maps a case state to its display label, falling back to the
// raw value for states this build does not know.
func StateLabel(state string) string {
	if label, ok := domain.StateLabels[state]; ok {
		return label
	}
	return state
}

// RelationshipLabel maps a third party relationship to its form label.
func RelationshipLabel(rel string) string {
	if label, ok := domain.RelationshipLabels[rel]; ok {
		return label
	}
	return rel
}

// YesNo renders a bool the way the screens word it.
func YesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// Seq returns [from..to] for pagination links.
func Seq(from, to int) []int {
	if to < from {
		return nil
	}
	s := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		s = append(s, i)
	}
	return s
}
