// Package summary produces a short natural-language status summary of the IT
// department from an AI backend.
package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vbonduro/marineit/internal/views"
)

// SystemPrompt is the shared instruction given to every backend.
const SystemPrompt = `คุณเป็นผู้จัดการไอทีผู้เชี่ยวชาญ โปรดวิเคราะห์ข้อมูลแผนกไอทีนี้และสรุปสั้นๆ (3-4 ประโยค) เกี่ยวกับสถานะปัจจุบัน พร้อมระบุลำดับความสำคัญเร่งด่วน โดยตอบเป็น "ภาษาไทย" เท่านั้น เน้นการสรุปที่ชัดเจนเรื่องความพร้อมในการปฏิบัติงานของเรือและสำนักงาน`

const (
	// ErrorText replaces the summary when the backend fails.
	ErrorText = "เกิดข้อผิดพลาดในการเชื่อมต่อ AI"
	// EmptyText replaces the summary when the backend returns no text.
	EmptyText = "ไม่สามารถสร้างสรุปได้ในขณะนี้"
)

type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// Prompt renders the user message for in.
func Prompt(in views.SummaryInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "รายการแจ้งซ่อม/จัดซื้อปัจจุบัน: %d รายการ (กำลังดำเนินการ %d รายการ)\n", in.TicketCount, in.OpenTicketCount)
	fmt.Fprintf(&b, "งานล่าสุด: %s\n", strings.Join(in.RecentWorkLogs, ", "))
	fmt.Fprintf(&b, "อุปกรณ์ทั้งหมด: %d รายการ", in.AssetCount)
	return b.String()
}

// Fallback turns every outcome of a Summarizer into displayable text.
type Fallback struct {
	backend Summarizer
	logger  *slog.Logger
}

// NewFallback wraps backend. A nil backend always yields ErrorText.
func NewFallback(backend Summarizer, logger *slog.Logger) *Fallback {
	return &Fallback{backend: backend, logger: logger}
}

// Summarize calls the backend once. Failures are logged and reported as
// ErrorText, blank responses as EmptyText.
func (f *Fallback) Summarize(ctx context.Context, in views.SummaryInput) string {
	if f.backend == nil {
		f.logger.Warn("no summary backend configured")
		return ErrorText
	}

	text, err := f.backend.Summarize(ctx, Prompt(in))
	if err != nil {
		f.logger.Error("summary failed", "error", err)
		return ErrorText
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return EmptyText
	}
	return text
}
