package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/marineit/internal/domain"
	"github.com/vbonduro/marineit/internal/state"
)

func TestObserve(t *testing.T) {
	m := New()
	snap := domain.AppData{
		WorkLogs: []domain.WorkLog{{ID: "a"}, {ID: "b"}},
		Assets:   []domain.Asset{{ID: "c"}},
	}

	m.Observe(state.Change{Kind: state.ChangeCreate, Collection: state.CollectionWorkLogs, Snapshot: snap})
	m.Observe(state.Change{Kind: state.ChangeCreate, Collection: state.CollectionWorkLogs, Snapshot: snap})
	m.Observe(state.Change{Kind: state.ChangeDelete, Collection: state.CollectionAssets, Snapshot: snap})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.mutations.WithLabelValues("workLogs", "create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mutations.WithLabelValues("assets", "delete")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.records.WithLabelValues("workLogs")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.records.WithLabelValues("assets")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.records.WithLabelValues("tickets")))
}

func TestSaveResult(t *testing.T) {
	m := New()
	m.SaveResult(nil)
	m.SaveResult(nil)
	m.SaveResult(errors.New("disk full"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.saves.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.saves.WithLabelValues("error")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.SaveResult(nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `marineit_snapshot_saves_total{result="ok"} 1`)
}
