package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vbonduro/marineit/internal/domain"
	"github.com/vbonduro/marineit/internal/views"
)

const (
	maxPhotoSize = 20 * 1024 * 1024 // 20 MB
	maxJSONSize  = 64 * 1024 * 1024 // backups carry inline photos
	jpegURIStart = "data:image/jpeg;base64,"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "taskstatus", func(fl validator.FieldLevel) bool {
		return domain.TaskStatus(fl.Field().String()).Valid()
	})
	mustRegister(v, "tickettype", func(fl validator.FieldLevel) bool {
		return domain.TicketType(fl.Field().String()).Valid()
	})
	mustRegister(v, "locationcategory", func(fl validator.FieldLevel) bool {
		return domain.LocationCategory(fl.Field().String()).Valid()
	})
	mustRegister(v, "assetstatus", func(fl validator.FieldLevel) bool {
		return domain.AssetStatus(fl.Field().String()).Valid()
	})
	mustRegister(v, "inspectionstatus", func(fl validator.FieldLevel) bool {
		return domain.InspectionStatus(fl.Field().String()).Valid()
	})
	mustRegister(v, "jpegdatauri", func(fl validator.FieldLevel) bool {
		return strings.HasPrefix(fl.Field().String(), jpegURIStart)
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("write response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string, logger *slog.Logger) {
	writeJSON(w, status, errorResponse{Error: msg}, logger)
}

// decodeJSON reads a JSON body into dst and validates it. On failure it writes
// a 400 response and returns false.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONSize))
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", s.logger)
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error:  "validation failed",
				Fields: validationFields(verrs),
			}, s.logger)
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request", s.logger)
		return false
	}
	return true
}

// validationFields maps each failing field to the rule it broke.
func validationFields(verrs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe.Namespace())] = fe.Tag()
	}
	return fields
}

// fieldPath drops the leading struct name from a validator namespace.
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

// filterFromQuery overlays the query parameters q, day, startMonth, endMonth
// and year on def.
func filterFromQuery(r *http.Request, def views.Filter) views.Filter {
	q := r.URL.Query()
	f := def
	if v := q.Get("q"); v != "" {
		f.SearchText = v
	}
	if v := q.Get("day"); v != "" {
		f.Day = v
	}
	if v := q.Get("startMonth"); v != "" {
		f.StartMonth = v
	}
	if v := q.Get("endMonth"); v != "" {
		f.EndMonth = v
	}
	if v := q.Get("year"); v != "" {
		f.Year = v
	}
	return f
}

// readUploads returns the contents of every file sent under field in a
// multipart form.
func readUploads(r *http.Request, field string) ([][]byte, error) {
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		return nil, fmt.Errorf("failed to parse form: %w", err)
	}
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, fmt.Errorf("%s file required", field)
	}

	uploads := make([][]byte, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open upload: %w", err)
		}
		data, err := io.ReadAll(io.LimitReader(f, maxPhotoSize))
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read upload: %w", err)
		}
		uploads = append(uploads, data)
	}
	return uploads, nil
}

// closeWithLog closes c and logs any error, using label to identify the resource.
func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "label", label, "error", err)
	}
}
