package views

import (
	"time"

	"github.com/vbonduro/marineit/internal/domain"
)

const (
	recentLogLimit     = 10
	topCategoryLimit   = 5
	summaryRecentLimit = 5
)

// RecentLog is a work log row on the dashboard, flagged when overdue.
type RecentLog struct {
	domain.WorkLog
	Overdue bool `json:"overdue"`
}

type DashboardStats struct {
	OpenRepairs       int             `json:"openRepairs"`
	PurchasesWaiting  int             `json:"purchasesWaiting"`
	TotalAssets       int             `json:"totalAssets"`
	CompletedWorkLogs int             `json:"completedWorkLogs"`
	RecentLogs        []RecentLog     `json:"recentLogs"`
	Assets            AssetSummary    `json:"assets"`
	TopCategories     []CategoryCount `json:"topCategories"`
}

// Dashboard computes the stat cards over the whole snapshot and the recent
// work log list over the filtered work logs.
func Dashboard(data domain.AppData, f Filter, now time.Time) DashboardStats {
	stats := DashboardStats{
		TotalAssets: len(data.Assets),
		Assets:      Summarize(data.Assets),
	}
	stats.TopCategories = stats.Assets.TopCategories(topCategoryLimit)

	for _, t := range data.Tickets {
		switch t.Type() {
		case domain.TicketRepair:
			if t.Status != domain.StatusCompleted {
				stats.OpenRepairs++
			}
		case domain.TicketPurchase:
			if t.Status == domain.StatusWaitingPurchase {
				stats.PurchasesWaiting++
			}
		}
	}
	for _, l := range data.WorkLogs {
		if l.Status == domain.StatusCompleted {
			stats.CompletedWorkLogs++
		}
	}

	filtered := FilterWorkLogs(data.WorkLogs, f)
	if len(filtered) > recentLogLimit {
		filtered = filtered[:recentLogLimit]
	}
	stats.RecentLogs = make([]RecentLog, 0, len(filtered))
	for _, l := range filtered {
		stats.RecentLogs = append(stats.RecentLogs, RecentLog{WorkLog: l, Overdue: WorkLogOverdue(l, now)})
	}
	return stats
}

// DayReport is the data handed to the printable daily report.
type DayReport struct {
	Date      string      `json:"date"`
	StaffName string      `json:"staffName"`
	Rows      []ReportRow `json:"rows"`
}

type ReportRow struct {
	Time        string `json:"time"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// BuildDayReport selects the work logs recorded on date, keeping their order.
func BuildDayReport(logs []domain.WorkLog, date, staffName string) DayReport {
	report := DayReport{Date: date, StaffName: staffName, Rows: make([]ReportRow, 0)}
	for _, l := range logs {
		if l.Date != date {
			continue
		}
		report.Rows = append(report.Rows, ReportRow{
			Time:        l.Time,
			Location:    l.Location,
			Description: l.TaskDescription,
			Status:      l.Status.Label(),
		})
	}
	return report
}

// SummaryInput is the read-only digest handed to the AI summarizer.
type SummaryInput struct {
	TicketCount     int      `json:"ticketCount"`
	OpenTicketCount int      `json:"openTicketCount"`
	RecentWorkLogs  []string `json:"recentWorkLogs"`
	AssetCount      int      `json:"assetCount"`
}

func BuildSummaryInput(data domain.AppData) SummaryInput {
	in := SummaryInput{
		TicketCount:    len(data.Tickets),
		AssetCount:     len(data.Assets),
		RecentWorkLogs: make([]string, 0, summaryRecentLimit),
	}
	for _, t := range data.Tickets {
		if t.Status != domain.StatusCompleted {
			in.OpenTicketCount++
		}
	}
	for i, l := range data.WorkLogs {
		if i == summaryRecentLimit {
			break
		}
		in.RecentWorkLogs = append(in.RecentWorkLogs, l.TaskDescription)
	}
	return in
}
