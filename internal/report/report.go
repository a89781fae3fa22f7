// Package report renders a day's work logs as a printable HTML page or an
// XLSX workbook.
package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"time"

	"github.com/vbonduro/marineit/internal/domain"
	"github.com/vbonduro/marineit/internal/views"
	"github.com/xuri/excelize/v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

const sheetName = "รายงาน"

var headings = []string{"เวลา", "สถานที่", "รายละเอียดงาน", "สถานะ"}

var thaiMonths = [...]string{
	"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
	"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
}

var dayReportTmpl = template.Must(
	template.New("day_report.html").
		Funcs(template.FuncMap{"thaiDate": ThaiDate}).
		ParseFS(templatesFS, "templates/day_report.html"),
)

// ThaiDate formats a "YYYY-MM-DD" date as a long Thai date in the Buddhist
// era, e.g. "1 มิถุนายน 2568". Unparsable input is returned as is.
func ThaiDate(date string) string {
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return date
	}
	return strconv.Itoa(t.Day()) + " " + thaiMonths[t.Month()-1] + " " + strconv.Itoa(t.Year()+543)
}

// RenderHTML writes the printable report. The page opens the print dialog
// when loaded.
func RenderHTML(w io.Writer, r views.DayReport) error {
	if err := dayReportTmpl.Execute(w, r); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// XLSXFilename names the workbook for a report date.
func XLSXFilename(date string) string {
	return "worklog_" + date + ".xlsx"
}

// RenderXLSX writes the report as a single-sheet workbook.
func RenderXLSX(w io.Writer, r views.DayReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	meta := [][]any{
		{"รายงานการปฏิบัติงาน"},
		{"วันที่:", ThaiDate(r.Date)},
		{"ผู้บันทึก:", r.StaffName},
	}
	for i, row := range meta {
		if err := setRow(f, i+1, row); err != nil {
			return err
		}
	}

	headerRow := len(meta) + 2
	header := make([]any, len(headings))
	for i, h := range headings {
		header[i] = h
	}
	if err := setRow(f, headerRow, header); err != nil {
		return err
	}

	for i, row := range r.Rows {
		values := []any{row.Time, row.Location, row.Description, row.Status}
		if err := setRow(f, headerRow+1+i, values); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheetName, "C", "C", 60); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, rowNo int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", rowNo, err)
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNo, err)
	}
	return nil
}
