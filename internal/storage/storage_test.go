package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/marineit/internal/blobstore"
	"github.com/vbonduro/marineit/internal/blobstore/local"
	"github.com/vbonduro/marineit/internal/db"
	"github.com/vbonduro/marineit/internal/domain"
	"github.com/vbonduro/marineit/internal/store"
)

// memBlobs is an in-memory blobstore.BlobStore for tests.
type memBlobs struct {
	data   map[string][]byte
	getErr error
	putErr error
}

func newMemBlobs() *memBlobs {
	return &memBlobs{data: make(map[string][]byte)}
}

func (m *memBlobs) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.data[key], nil
}

func (m *memBlobs) Put(_ context.Context, key string, data []byte) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.data[key] = data
	return nil
}

func (m *memBlobs) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

var fixedNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func defaults() domain.AppData {
	return domain.DefaultData(fixedNow, domain.DefaultOperator)
}

func newTestAdapter(blobs *memBlobs) *Adapter {
	return NewAdapter(blobs, defaults, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func sampleData() domain.AppData {
	url := "data:image/jpeg;base64,AAAA"
	created := time.Date(2025, 5, 30, 8, 15, 0, 0, time.UTC)
	return domain.AppData{
		WorkLogs: []domain.WorkLog{
			{ID: "wl-1", Date: "2025-06-01", Time: "09:00", StaffName: "Mon", Location: "Pier", TaskDescription: "Check POS", Status: domain.StatusPending},
		},
		Tickets: []domain.Ticket{
			{ID: "tk-1", Subject: "Router", Status: domain.StatusInProgress, CreatedAt: created, UpdatedAt: created.Add(time.Hour), Images: []string{url}},
			{ID: "tk-2", Subject: "Cable", Status: domain.StatusWaitingPurchase, CreatedAt: created, UpdatedAt: created,
				Purchase: &domain.PurchaseDetails{CompanyName: "ACME", Quantity: 2, Price: 500, TotalPrice: 1070}},
		},
		Assets: []domain.Asset{
			{ID: "as-1", Name: "CCTV", SerialNumber: "SN1", Category: "CCTV", LocationCategory: domain.LocationShip, LocationName: "Ferry 105", Status: domain.AssetActive, LastChecked: "2025-06-01", StaffName: "Mon"},
		},
		ShipInspections: []domain.ShipInspection{
			{ID: "ins-1", ShipName: "Ferry 105", Date: "2025-06-01", Inspector: "Mon", Images: []domain.InspectionImage{
				{ID: "img-1", Label: "Bridge", URL: &url, Status: domain.InspectionNormal},
				{ID: "img-2", Label: "Engine room"},
			}},
		},
	}
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	a := newTestAdapter(newMemBlobs())
	assert.Equal(t, defaults(), a.Load(context.Background()))
}

func TestLoadCorruptReturnsDefaults(t *testing.T) {
	for _, raw := range []string{"{not json", "null", `"text"`, `[1,2]`} {
		blobs := newMemBlobs()
		blobs.data[StorageKey] = []byte(raw)
		assert.Equal(t, defaults(), newTestAdapter(blobs).Load(context.Background()), raw)
	}
}

func TestLoadReadErrorReturnsDefaults(t *testing.T) {
	blobs := newMemBlobs()
	blobs.getErr = errors.New("disk on fire")
	assert.Equal(t, defaults(), newTestAdapter(blobs).Load(context.Background()))
}

func TestLoadBackfillsInspections(t *testing.T) {
	blobs := newMemBlobs()
	blobs.data[StorageKey] = []byte(`{"workLogs":[],"tickets":[],"assets":[{"id":"as-9","name":"POS"}]}`)

	data := newTestAdapter(blobs).Load(context.Background())
	assert.NotNil(t, data.ShipInspections)
	assert.Empty(t, data.ShipInspections)
	require.Len(t, data.Assets, 1)
	assert.Equal(t, "as-9", data.Assets[0].ID)
}

func TestSaveThenLoad(t *testing.T) {
	blobs := newMemBlobs()
	a := newTestAdapter(blobs)
	ctx := context.Background()

	require.NoError(t, a.Save(ctx, sampleData()))
	assert.Equal(t, sampleData(), a.Load(ctx))
}

func TestSaveError(t *testing.T) {
	blobs := newMemBlobs()
	blobs.putErr = errors.New("read-only")
	err := newTestAdapter(blobs).Save(context.Background(), sampleData())
	assert.ErrorContains(t, err, "read-only")
}

func TestSaveThroughBackends(t *testing.T) {
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, d.Close()) })

	files, err := local.NewLocalBlobStore(t.TempDir())
	require.NoError(t, err)

	backends := map[string]blobstore.BlobStore{
		"sqlite": store.NewSnapshotStore(d),
		"local":  files,
	}
	for name, blobs := range backends {
		t.Run(name, func(t *testing.T) {
			a := NewAdapter(blobs, defaults, slog.New(slog.NewTextHandler(io.Discard, nil)))
			ctx := context.Background()
			require.NoError(t, a.Save(ctx, sampleData()))
			assert.Equal(t, sampleData(), a.Load(ctx))

			require.NoError(t, a.Reset(ctx))
			assert.Equal(t, defaults(), a.Load(ctx))
			assert.NoError(t, a.Reset(ctx))
		})
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, sampleData()))
	assert.Contains(t, buf.String(), "\n  \"workLogs\"")

	got, err := Import(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleData(), got)
}

func TestImportEmptyImageListRoundTrips(t *testing.T) {
	backup := `{"workLogs":[],"assets":[],"tickets":[
		{"id":"tk-1","type":"Repair","subject":"Printer","status":"Pending",
		 "createdAt":"2025-06-01T09:00:00Z","updatedAt":"2025-06-01T09:00:00Z","images":[]}
	]}`
	data, err := Import(strings.NewReader(backup))
	require.NoError(t, err)
	require.Len(t, data.Tickets, 1)
	assert.Nil(t, data.Tickets[0].Images)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, data))
	again, err := Import(&buf)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestExportKeepsFlatTicketLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, sampleData()))

	var doc struct {
		Tickets []map[string]any `json:"tickets"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Tickets, 2)
	assert.Equal(t, "Repair", doc.Tickets[0]["type"])
	assert.NotContains(t, doc.Tickets[0], "companyName")
	assert.Equal(t, "Purchase", doc.Tickets[1]["type"])
	assert.Equal(t, 1070.0, doc.Tickets[1]["totalPrice"])
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "it_backup_2025-06-01.json", ExportFilename(fixedNow))
}

func TestImportErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		message string
	}{
		{"not json", "{oops", ErrMalformedBackup, "Failed to parse backup file"},
		{"empty", "", ErrMalformedBackup, "Failed to parse backup file"},
		{"missing tickets", `{"workLogs":[],"assets":[]}`, ErrInvalidBackup, "Invalid backup file format"},
		{"assets not array", `{"workLogs":[],"tickets":[],"assets":{}}`, ErrInvalidBackup, "Invalid backup file format"},
		{"null", `null`, ErrInvalidBackup, "Invalid backup file format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.message, UserMessage(err))
		})
	}
}

func TestImportBackfillsInspections(t *testing.T) {
	data, err := Import(strings.NewReader(`{"workLogs":[],"tickets":[],"assets":[]}`))
	require.NoError(t, err)
	assert.Equal(t, []domain.ShipInspection{}, data.ShipInspections)
}
