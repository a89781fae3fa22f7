package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vbonduro/marineit/internal/blobstore"
	"github.com/vbonduro/marineit/internal/blobstore/local"
	"github.com/vbonduro/marineit/internal/config"
	"github.com/vbonduro/marineit/internal/db"
	"github.com/vbonduro/marineit/internal/domain"
	"github.com/vbonduro/marineit/internal/imageenc"
	"github.com/vbonduro/marineit/internal/logging"
	"github.com/vbonduro/marineit/internal/metrics"
	"github.com/vbonduro/marineit/internal/service"
	"github.com/vbonduro/marineit/internal/state"
	"github.com/vbonduro/marineit/internal/storage"
	"github.com/vbonduro/marineit/internal/store"
	"github.com/vbonduro/marineit/internal/summary"
	claudesummary "github.com/vbonduro/marineit/internal/summary/claude"
	ollamasummary "github.com/vbonduro/marineit/internal/summary/ollama"
	"github.com/vbonduro/marineit/internal/web"
)

// app holds what every subcommand needs: configuration, a logger and the
// storage adapter over the configured backend.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	adapter *storage.Adapter
	closers []func()
}

func newApp() (*app, error) {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	a := &app{cfg: cfg, logger: logger, closers: []func(){cleanup}}

	blobs, err := a.openBlobStore()
	if err != nil {
		a.close()
		return nil, err
	}
	a.adapter = storage.NewAdapter(blobs, func() domain.AppData {
		return domain.DefaultData(time.Now(), cfg.OperatorName)
	}, logger)
	return a, nil
}

func (a *app) openBlobStore() (blobstore.BlobStore, error) {
	switch a.cfg.StorageBackend {
	case "sqlite":
		database, err := db.Open(a.cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		a.closers = append(a.closers, func() {
			if err := database.Close(); err != nil {
				a.logger.Error("failed to close database", "error", err)
			}
		})
		a.logger.Info("using sqlite storage", "path", a.cfg.DBPath)
		return store.NewSnapshotStore(database), nil
	case "local":
		blobs, err := local.NewLocalBlobStore(a.cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize blob store: %w", err)
		}
		a.logger.Info("using local file storage", "dir", a.cfg.DataDir)
		return blobs, nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", a.cfg.StorageBackend)
	}
}

// close runs the cleanups in reverse order, so the log file closes last.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func serve(ctx context.Context) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := state.NewStore(a.adapter.Load(ctx), state.Options{Operator: a.cfg.OperatorName})
	m := metrics.New()
	st.Subscribe(m.Observe)

	svc := service.NewAppService(
		st,
		a.adapter,
		imageenc.NewEncoder(a.cfg.ImageMaxDimension),
		summary.NewFallback(newSummarizer(a.cfg, a.logger), a.logger),
		m,
		a.logger,
	)
	server := web.NewServer(svc, m.Handler(), a.logger)

	if err := server.ListenAndServe(ctx, a.cfg.ListenAddr); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func newSummarizer(cfg *config.Config, logger *slog.Logger) summary.Summarizer {
	switch cfg.SummaryBackend {
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			logger.Error("CLAUDE_API_KEY is required when SUMMARY_BACKEND=claude")
			return nil
		}
		logger.Info("using Claude summary backend", "model", cfg.ClaudeModel)
		return claudesummary.NewClaudeSummarizer(cfg.ClaudeAPIKey, cfg.ClaudeModel)
	case "ollama":
		logger.Info("using Ollama summary backend", "model", cfg.OllamaModel)
		return ollamasummary.NewOllamaSummarizer(cfg.OllamaHost, cfg.OllamaModel)
	default:
		logger.Info("AI summary disabled")
		return nil
	}
}

func exportBackup(ctx context.Context, out string, stdout io.Writer) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	data := a.adapter.Load(ctx)
	if out == "-" {
		return storage.Export(stdout, data)
	}
	if out == "" {
		out = storage.ExportFilename(time.Now())
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	if err := storage.Export(f, data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close backup file: %w", err)
	}
	_, _ = fmt.Fprintf(stdout, "wrote %s\n", out)
	return nil
}

func importBackup(ctx context.Context, file string, stdout io.Writer) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := storage.Import(f)
	if err != nil {
		return fmt.Errorf("%s: %w", storage.UserMessage(err), err)
	}
	if err := a.adapter.Save(ctx, data); err != nil {
		return err
	}
	a.logger.Info("backup restored", "file", file,
		"work_logs", len(data.WorkLogs),
		"tickets", len(data.Tickets),
		"assets", len(data.Assets),
		"inspections", len(data.ShipInspections),
	)
	_, _ = fmt.Fprintln(stdout, storage.ImportedMessage)
	return nil
}

func resetData(ctx context.Context, stdout io.Writer) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.adapter.Reset(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(stdout, "stored data removed")
	return nil
}
