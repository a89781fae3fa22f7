package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vbonduro/marineit/internal/domain"
	"github.com/vbonduro/marineit/internal/report"
	"github.com/vbonduro/marineit/internal/storage"
	"github.com/vbonduro/marineit/internal/views"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type summaryResponse struct {
	Summary string `json:"summary"`
}

type importResponse struct {
	Message string         `json:"message"`
	Data    domain.AppData `json:"data"`
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Snapshot(), s.logger)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	f := filterFromQuery(r, s.service.DefaultFilter())
	writeJSON(w, http.StatusOK, s.service.Dashboard(f), s.logger)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, summaryResponse{Summary: s.service.Summary(r.Context())}, s.logger)
}

// handleVAT previews the price breakdown of a purchase form.
func (s *Server) handleVAT(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	quantity, err := strconv.ParseFloat(q.Get("quantity"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid quantity", s.logger)
		return
	}
	price, err := strconv.ParseFloat(q.Get("price"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid price", s.logger)
		return
	}
	inclusive := false
	if v := q.Get("inclusive"); v != "" {
		if inclusive, err = strconv.ParseBool(v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid inclusive flag", s.logger)
			return
		}
	}
	writeJSON(w, http.StatusOK, views.CalculateVAT(quantity, price, inclusive), s.logger)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.service.Export(&buf); err != nil {
		s.logger.Error("export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to export data", s.logger)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.service.ExportFilename()))
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Error("write export failed", "error", err)
	}
}

// handleImport accepts a backup either as a multipart "file" field or as the
// raw request body.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body, err := backupBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), s.logger)
		return
	}
	defer closeWithLog(body, "backup upload", s.logger)

	snap, err := s.service.Import(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, storage.UserMessage(err), s.logger)
		return
	}
	writeJSON(w, http.StatusOK, importResponse{Message: storage.ImportedMessage, Data: snap}, s.logger)
}

func backupBody(w http.ResponseWriter, r *http.Request) (io.ReadCloser, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return http.MaxBytesReader(w, r.Body, maxJSONSize), nil
	}
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		return nil, fmt.Errorf("failed to parse form: %w", err)
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		return nil, errors.New("file required")
	}
	return f, nil
}

func (s *Server) handleReportHTML(w http.ResponseWriter, r *http.Request) {
	date, ok := s.reportDate(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := report.RenderHTML(&buf, s.service.DayReport(date)); err != nil {
		s.logger.Error("render report failed", "date", date, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render report", s.logger)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Error("write report failed", "error", err)
	}
}

func (s *Server) handleReportXLSX(w http.ResponseWriter, r *http.Request) {
	date, ok := s.reportDate(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := report.RenderXLSX(&buf, s.service.DayReport(date)); err != nil {
		s.logger.Error("render spreadsheet failed", "date", date, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render report", s.logger)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.XLSXFilename(date)))
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Error("write spreadsheet failed", "error", err)
	}
}

func (s *Server) reportDate(w http.ResponseWriter, r *http.Request) (string, bool) {
	date := r.PathValue("date")
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD", s.logger)
		return "", false
	}
	return date, true
}
