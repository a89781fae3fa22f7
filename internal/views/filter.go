package views

import (
	"strconv"
	"strings"
	"time"

	"github.com/vbonduro/marineit/internal/domain"
)

// AnyDay disables the day-of-month part of a Filter.
const AnyDay = "any"

// Filter is the shared date/text narrowing applied to every collection.
// Months are two-digit codes compared as strings, so a range with
// StartMonth > EndMonth matches nothing.
type Filter struct {
	SearchText string `json:"searchText"`
	Day        string `json:"day"`
	StartMonth string `json:"startMonth"`
	EndMonth   string `json:"endMonth"`
	Year       string `json:"year"`
}

// DefaultFilter covers the whole year of now.
func DefaultFilter(now time.Time) Filter {
	return Filter{
		Day:        AnyDay,
		StartMonth: "01",
		EndMonth:   "12",
		Year:       strconv.Itoa(now.Year()),
	}
}

// MatchDate reports whether a "YYYY-MM-DD" date falls inside the filter's
// year, month range and day. Dates that cannot be parsed never match.
func (f Filter) MatchDate(date string) bool {
	year, month, day, ok := splitDate(date)
	if !ok {
		return false
	}
	if year != f.Year {
		return false
	}
	if month < f.StartMonth || month > f.EndMonth {
		return false
	}
	if f.Day != "" && f.Day != AnyDay && day != f.Day {
		return false
	}
	return true
}

// MatchText reports whether any field contains the search text, ignoring case.
func (f Filter) MatchText(fields ...string) bool {
	if f.SearchText == "" {
		return true
	}
	needle := strings.ToLower(f.SearchText)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Apply keeps the records matching both predicates, in their original order.
func Apply[T any](records []T, f Filter, date func(T) string, fields func(T) []string) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if f.MatchDate(date(r)) && f.MatchText(fields(r)...) {
			out = append(out, r)
		}
	}
	return out
}

func FilterWorkLogs(logs []domain.WorkLog, f Filter) []domain.WorkLog {
	return Apply(logs, f, WorkLogDate, func(l domain.WorkLog) []string {
		return []string{l.Location, l.TaskDescription}
	})
}

func FilterTickets(tickets []domain.Ticket, f Filter) []domain.Ticket {
	return Apply(tickets, f, TicketDate, ticketFields)
}

// FilterTicketsByType narrows to one ticket type before applying the filter.
func FilterTicketsByType(tickets []domain.Ticket, typ domain.TicketType, f Filter) []domain.Ticket {
	ofType := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.Type() == typ {
			ofType = append(ofType, t)
		}
	}
	return FilterTickets(ofType, f)
}

func FilterAssets(assets []domain.Asset, f Filter) []domain.Asset {
	return Apply(assets, f, AssetDate, func(a domain.Asset) []string {
		return []string{a.Name, a.SerialNumber, a.Category, a.LocationName, a.StaffName, a.Position}
	})
}

func FilterInspections(inspections []domain.ShipInspection, f Filter) []domain.ShipInspection {
	return Apply(inspections, f, InspectionDate, func(i domain.ShipInspection) []string {
		return []string{i.ShipName, i.Inspector}
	})
}

func WorkLogDate(l domain.WorkLog) string { return l.Date }

// TicketDate buckets a ticket by the local calendar day it was created.
func TicketDate(t domain.Ticket) string {
	if t.CreatedAt.IsZero() {
		return ""
	}
	return t.CreatedAt.Local().Format(domain.DateLayout)
}

func AssetDate(a domain.Asset) string { return a.LastChecked }

func InspectionDate(i domain.ShipInspection) string { return i.Date }

func ticketFields(t domain.Ticket) []string {
	return []string{t.Subject, t.Details, t.Location}
}

func splitDate(date string) (year, month, day string, ok bool) {
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		ts, err := time.Parse(time.RFC3339, date)
		if err != nil {
			return "", "", "", false
		}
		t = ts.Local()
	}
	return strconv.Itoa(t.Year()), twoDigits(int(t.Month())), twoDigits(t.Day()), true
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
