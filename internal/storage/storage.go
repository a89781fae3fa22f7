// Package storage persists the whole application state as one JSON document
// and implements the backup file format.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/vbonduro/marineit/internal/blobstore"
	"github.com/vbonduro/marineit/internal/domain"
)

// StorageKey is the blob key the application state lives under.
const StorageKey = "it_marine_app_data"

// ImportedMessage is shown after a backup has been restored.
const ImportedMessage = "เรียกคืนข้อมูลสำเร็จ"

var (
	// ErrMalformedBackup means the backup is not valid JSON.
	ErrMalformedBackup = errors.New("malformed backup")
	// ErrInvalidBackup means the backup lacks workLogs, tickets or assets.
	ErrInvalidBackup = errors.New("invalid backup")
)

// requiredCollections must be present, as arrays, in every backup.
var requiredCollections = []string{"workLogs", "tickets", "assets"}

// UserMessage maps an import error to the text shown to the user.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidBackup):
		return "Invalid backup file format"
	case errors.Is(err, ErrMalformedBackup):
		return "Failed to parse backup file"
	default:
		return "Failed to read backup file"
	}
}

type Adapter struct {
	blobs    blobstore.BlobStore
	defaults func() domain.AppData
	logger   *slog.Logger
}

// NewAdapter returns an Adapter over blobs. defaults supplies the dataset used
// when nothing usable is stored.
func NewAdapter(blobs blobstore.BlobStore, defaults func() domain.AppData, logger *slog.Logger) *Adapter {
	return &Adapter{blobs: blobs, defaults: defaults, logger: logger}
}

// Load returns the stored state. A missing, unreadable or corrupt blob yields
// the default dataset; Load never fails.
func (a *Adapter) Load(ctx context.Context) domain.AppData {
	raw, err := a.blobs.Get(ctx, StorageKey)
	if err != nil {
		a.logger.Warn("failed to read stored state, using defaults", "error", err)
		return a.defaults()
	}
	if raw == nil {
		a.logger.Info("no stored state, using defaults")
		return a.defaults()
	}

	data, err := decode(raw)
	if err != nil {
		a.logger.Warn("stored state is corrupt, using defaults", "error", err)
		return a.defaults()
	}
	return data
}

// Save overwrites the stored state with data.
func (a *Adapter) Save(ctx context.Context, data domain.AppData) error {
	raw, err := json.Marshal(data.Normalize())
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := a.blobs.Put(ctx, StorageKey, raw); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Reset removes the stored state, so the next Load returns the default
// dataset. Resetting an empty store is not an error.
func (a *Adapter) Reset(ctx context.Context) error {
	if err := a.blobs.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("failed to reset state: %w", err)
	}
	a.logger.Info("stored state removed", "key", StorageKey)
	return nil
}

// ExportFilename names a backup taken at now.
func ExportFilename(now time.Time) string {
	return "it_backup_" + now.UTC().Format(domain.DateLayout) + ".json"
}

// Export writes data as an indented backup document.
func Export(w io.Writer, data domain.AppData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data.Normalize()); err != nil {
		return fmt.Errorf("failed to export backup: %w", err)
	}
	return nil
}

// Import parses and validates a backup. Backups from before inspections
// existed get an empty shipInspections list.
func Import(r io.Reader) (domain.AppData, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return domain.AppData{}, fmt.Errorf("failed to read backup: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.AppData{}, fmt.Errorf("%w: %v", ErrMalformedBackup, err)
	}
	for _, name := range requiredCollections {
		if !isArray(fields[name]) {
			return domain.AppData{}, fmt.Errorf("%w: %s is missing", ErrInvalidBackup, name)
		}
	}

	var data domain.AppData
	if err := json.Unmarshal(raw, &data); err != nil {
		return domain.AppData{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	return data.Normalize(), nil
}

// decode parses a stored blob. Any JSON object is accepted; absent
// collections become empty.
func decode(raw []byte) (domain.AppData, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.AppData{}, fmt.Errorf("failed to parse state: %w", err)
	}
	if fields == nil {
		return domain.AppData{}, fmt.Errorf("failed to parse state: not an object")
	}

	var data domain.AppData
	if err := json.Unmarshal(raw, &data); err != nil {
		return domain.AppData{}, fmt.Errorf("failed to parse state: %w", err)
	}
	return data.Normalize(), nil
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}
