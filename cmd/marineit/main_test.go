package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/marineit/internal/storage"
)

func setLocalBackend(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("STORAGE_BACKEND", "local")
	t.Setenv("DATA_DIR", filepath.Join(dir, "blobs"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FILE", "")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestImportThenExport(t *testing.T) {
	dir := setLocalBackend(t)
	backup := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(backup, []byte(`{
		"workLogs": [{"id":"wl-1","date":"2025-06-01","time":"09:00","staffName":"Mon","location":"Pier","taskDescription":"Check POS","status":"Completed"}],
		"tickets": [],
		"assets": []
	}`), 0o600))

	out, err := run(t, "import", "--file", backup)
	require.NoError(t, err)
	assert.Contains(t, out, storage.ImportedMessage)

	exported := filepath.Join(dir, "out.json")
	_, err = run(t, "export", "--out", exported)
	require.NoError(t, err)

	raw, err := os.ReadFile(exported)
	require.NoError(t, err)
	var doc map[string][]map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Len(t, doc["workLogs"], 1)
	assert.Equal(t, "Check POS", doc["workLogs"][0]["taskDescription"])
	assert.Empty(t, doc["shipInspections"])
}

func TestExportToStdoutUsesDefaultsWhenEmpty(t *testing.T) {
	setLocalBackend(t)
	out, err := run(t, "export", "--out", "-")
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc, "workLogs")
	assert.Contains(t, doc, "shipInspections")
}

func TestImportRejectsInvalidBackup(t *testing.T) {
	dir := setLocalBackend(t)
	backup := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(backup, []byte(`{"workLogs":{}}`), 0o600))

	_, err := run(t, "import", "--file", backup)
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrInvalidBackup)
	assert.Contains(t, err.Error(), "Invalid backup file format")
}

func TestResetRestoresSeedData(t *testing.T) {
	dir := setLocalBackend(t)
	backup := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(backup, []byte(`{"workLogs":[],"tickets":[],"assets":[]}`), 0o600))
	_, err := run(t, "import", "--file", backup)
	require.NoError(t, err)

	out, err := run(t, "export", "--out", "-")
	require.NoError(t, err)
	var empty map[string][]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &empty))
	assert.Empty(t, empty["workLogs"])

	out, err = run(t, "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "stored data removed")

	out, err = run(t, "export", "--out", "-")
	require.NoError(t, err)
	var seeded map[string][]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &seeded))
	assert.NotEmpty(t, seeded["workLogs"])
}

func TestImportRequiresFileFlag(t *testing.T) {
	setLocalBackend(t)
	_, err := run(t, "import")
	assert.Error(t, err)
}

func TestUnknownStorageBackend(t *testing.T) {
	setLocalBackend(t)
	t.Setenv("STORAGE_BACKEND", "s3")
	_, err := run(t, "export", "--out", "-")
	assert.ErrorContains(t, err, "unknown STORAGE_BACKEND")
}
