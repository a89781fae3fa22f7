package views

import (
	"time"

	"github.com/vbonduro/marineit/internal/domain"
)

const OverdueAfter = 24 * time.Hour

// IsOverdue reports whether more than OverdueAfter has passed since the given
// local date and optional "HH:MM" time. Unparsable input is never overdue.
func IsOverdue(date, clock string, now time.Time) bool {
	var (
		at  time.Time
		err error
	)
	if clock != "" {
		at, err = time.ParseInLocation(domain.DateLayout+" "+domain.TimeLayout, date+" "+clock, time.Local)
	} else {
		at, err = time.ParseInLocation(domain.DateLayout, date, time.Local)
	}
	if err != nil {
		return false
	}
	return now.Sub(at) > OverdueAfter
}

func WorkLogOverdue(l domain.WorkLog, now time.Time) bool {
	return !l.Status.Terminal() && IsOverdue(l.Date, l.Time, now)
}

func TicketOverdue(t domain.Ticket, now time.Time) bool {
	if t.Status.Terminal() || t.CreatedAt.IsZero() {
		return false
	}
	return now.Sub(t.CreatedAt) > OverdueAfter
}
