package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vbonduro/marineit/internal/domain"
)

func TestIsOverdueBoundary(t *testing.T) {
	loggedAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.Local)

	assert.True(t, IsOverdue("2025-06-01", "09:00", loggedAt.Add(24*time.Hour+time.Minute)))
	assert.False(t, IsOverdue("2025-06-01", "09:00", loggedAt.Add(24*time.Hour-time.Minute)))
}

func TestIsOverdueDateOnly(t *testing.T) {
	midnight := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	assert.True(t, IsOverdue("2025-06-01", "", midnight.Add(25*time.Hour)))
	assert.False(t, IsOverdue("2025-06-01", "", midnight.Add(23*time.Hour)))
}

func TestIsOverdueInvalidInput(t *testing.T) {
	now := time.Now()
	assert.False(t, IsOverdue("not-a-date", "09:00", now))
	assert.False(t, IsOverdue("2025-06-01", "9 o'clock", now))
}

func TestWorkLogOverdueIgnoresTerminalStatus(t *testing.T) {
	now := time.Date(2025, 6, 5, 9, 0, 0, 0, time.Local)
	log := domain.WorkLog{Date: "2025-06-01", Time: "09:00", Status: domain.StatusPending}
	assert.True(t, WorkLogOverdue(log, now))

	log.Status = domain.StatusInProgress
	assert.True(t, WorkLogOverdue(log, now))

	log.Status = domain.StatusCompleted
	assert.False(t, WorkLogOverdue(log, now))

	log.Status = domain.StatusCancelled
	assert.False(t, WorkLogOverdue(log, now))
}

func TestTicketOverdue(t *testing.T) {
	created := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	ticket := domain.Ticket{CreatedAt: created, Status: domain.StatusPending}

	assert.True(t, TicketOverdue(ticket, created.Add(24*time.Hour+time.Minute)))
	assert.False(t, TicketOverdue(ticket, created.Add(23*time.Hour+59*time.Minute)))

	ticket.Status = domain.StatusCompleted
	assert.False(t, TicketOverdue(ticket, created.Add(48*time.Hour)))

	assert.False(t, TicketOverdue(domain.Ticket{Status: domain.StatusPending}, created))
}
