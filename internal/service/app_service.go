package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/vbonduro/marineit/internal/domain"
	"github.com/vbonduro/marineit/internal/imageenc"
	"github.com/vbonduro/marineit/internal/state"
	"github.com/vbonduro/marineit/internal/storage"
	"github.com/vbonduro/marineit/internal/views"
)

// persister is the subset of storage.Adapter that AppService requires.
type persister interface {
	Save(ctx context.Context, data domain.AppData) error
}

// imageEncoder is the subset of imageenc.Encoder that AppService requires.
type imageEncoder interface {
	Encode(data []byte) (string, error)
}

// summarizer is the subset of summary.Fallback that AppService requires.
type summarizer interface {
	Summarize(ctx context.Context, in views.SummaryInput) string
}

// saveRecorder is notified of every auto-save outcome.
type saveRecorder interface {
	SaveResult(err error)
}

// AppService groups the user-level actions that span the state store,
// persistence, image encoding, reporting and the AI summary.
type AppService struct {
	store   *state.Store
	persist persister
	images  imageEncoder
	summary summarizer
	saves   saveRecorder
	logger  *slog.Logger
	now     func() time.Time
}

// NewAppService wires the service and subscribes auto-save to store: every
// committed change is written through persist before the mutation returns.
// saves may be nil.
func NewAppService(
	store *state.Store,
	persist persister,
	images imageEncoder,
	summary summarizer,
	saves saveRecorder,
	logger *slog.Logger,
) *AppService {
	s := &AppService{
		store:   store,
		persist: persist,
		images:  images,
		summary: summary,
		saves:   saves,
		logger:  logger,
		now:     time.Now,
	}
	store.Subscribe(s.autoSave)
	return s
}

func (s *AppService) autoSave(c state.Change) {
	err := s.persist.Save(context.Background(), c.Snapshot)
	if s.saves != nil {
		s.saves.SaveResult(err)
	}
	if err != nil {
		s.logger.Error("auto-save failed", "collection", c.Collection, "kind", c.Kind, "id", c.ID, "error", err)
		return
	}
	s.logger.Debug("state saved", "collection", c.Collection, "kind", c.Kind, "id", c.ID)
}

// Store exposes the state store for plain create, update, delete and status
// changes.
func (s *AppService) Store() *state.Store {
	return s.store
}

func (s *AppService) Snapshot() domain.AppData {
	return s.store.Snapshot()
}

func (s *AppService) DefaultFilter() views.Filter {
	return views.DefaultFilter(s.now())
}

func (s *AppService) Dashboard(f views.Filter) views.DashboardStats {
	return views.Dashboard(s.store.Snapshot(), f, s.now())
}

func (s *AppService) WorkLogs(f views.Filter) []views.Group[domain.WorkLog] {
	return views.WorkLogsByDate(views.FilterWorkLogs(s.store.Snapshot().WorkLogs, f))
}

// Tickets returns the filtered tickets of one type, in stored order.
func (s *AppService) Tickets(typ domain.TicketType, f views.Filter) []domain.Ticket {
	return views.FilterTicketsByType(s.store.Snapshot().Tickets, typ, f)
}

func (s *AppService) Assets(f views.Filter) []views.AssetGroup {
	return views.AssetsByName(views.FilterAssets(s.store.Snapshot().Assets, f))
}

func (s *AppService) AssetSummary() views.AssetSummary {
	return views.Summarize(s.store.Snapshot().Assets)
}

func (s *AppService) DrillDown(category string) []views.LocationStat {
	return views.DrillDown(s.store.Snapshot().Assets, category)
}

func (s *AppService) Inspections(f views.Filter) []views.Group[domain.ShipInspection] {
	return views.InspectionsByDate(views.FilterInspections(s.store.Snapshot().ShipInspections, f))
}

// AttachTicketImages encodes every upload and appends them to the ticket. If
// any upload is rejected nothing is attached.
func (s *AppService) AttachTicketImages(id string, uploads [][]byte) (domain.AppData, error) {
	urls := make([]string, 0, len(uploads))
	for i, data := range uploads {
		url, err := s.images.Encode(data)
		if err != nil {
			return s.store.Snapshot(), fmt.Errorf("failed to encode image %d: %w", i, err)
		}
		urls = append(urls, url)
	}
	s.logger.Info("ticket images attached", "ticket_id", id, "count", len(urls))
	return s.store.AddTicketImages(id, urls...), nil
}

func (s *AppService) SetAssetPhoto(id string, upload []byte) (domain.AppData, error) {
	url, err := s.images.Encode(upload)
	if err != nil {
		return s.store.Snapshot(), fmt.Errorf("failed to encode image: %w", err)
	}
	return s.store.SetAssetImage(id, url), nil
}

// AssetPhoto returns the JPEG bytes of an asset's photo, or nil when the asset
// is unknown or its photo is not an embedded JPEG.
func (s *AppService) AssetPhoto(id string) ([]byte, error) {
	assets := s.store.Snapshot().Assets
	i := slices.IndexFunc(assets, func(a domain.Asset) bool { return a.ID == id })
	if i < 0 || assets[i].ImageURL == "" {
		return nil, nil
	}
	data, err := imageenc.Decode(assets[i].ImageURL)
	if errors.Is(err, imageenc.ErrUnsupportedImage) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode photo of asset %s: %w", id, err)
	}
	return data, nil
}

func (s *AppService) SetInspectionSlotPhoto(id, slotID string, upload []byte) (domain.AppData, error) {
	url, err := s.images.Encode(upload)
	if err != nil {
		return s.store.Snapshot(), fmt.Errorf("failed to encode image: %w", err)
	}
	return s.store.SetInspectionSlotPhoto(id, slotID, url), nil
}

// ExportFilename names a backup taken now.
func (s *AppService) ExportFilename() string {
	return storage.ExportFilename(s.now())
}

func (s *AppService) Export(w io.Writer) error {
	return storage.Export(w, s.store.Snapshot())
}

// Import validates a backup and, only if it is valid, replaces the whole
// state with it.
func (s *AppService) Import(r io.Reader) (domain.AppData, error) {
	data, err := storage.Import(r)
	if err != nil {
		s.logger.Warn("backup rejected", "error", err)
		return s.store.Snapshot(), err
	}
	snap := s.store.Replace(data)
	s.logger.Info("backup restored",
		"work_logs", len(snap.WorkLogs),
		"tickets", len(snap.Tickets),
		"assets", len(snap.Assets),
		"inspections", len(snap.ShipInspections),
	)
	return snap, nil
}

// Summary asks the AI backend for a status summary. It always returns text.
func (s *AppService) Summary(ctx context.Context) string {
	return s.summary.Summarize(ctx, views.BuildSummaryInput(s.store.Snapshot()))
}

// DayReport collects every work log of date for the printable report.
func (s *AppService) DayReport(date string) views.DayReport {
	return views.BuildDayReport(s.store.Snapshot().WorkLogs, date, s.store.Operator())
}
