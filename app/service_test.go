package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phm-tools/rulkit/config"
	"github.com/phm-tools/rulkit/core/factory"
	"github.com/phm-tools/rulkit/core/metrics"
	"github.com/phm-tools/rulkit/pkg/export"
)

func writeResults(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "results.json")
	data := `{"gru": [{"true": [5, 4, 3, 2, 1, 0], "predicted": [5, 4, 3, 2, 1, 0]}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestServiceRun(t *testing.T) {
	dir := t.TempDir()
	svc, err := New(config.Default())
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	out := filepath.Join(dir, "out")
	rep, err := svc.Run(context.Background(), RunOptions{
		ResultsPath: writeResults(t, dir),
		OutDir:      out,
		CSV:         true,
	})
	require.NoError(t, err)
	require.Len(t, rep.Models, 1)
	assert.Equal(t, "gru", rep.Models[0].Name)

	_, err = os.Stat(filepath.Join(out, export.ReportFile))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, export.SweepsFile))
	assert.NoError(t, err)

	rows, err := svc.Store.Query("", time.Time{})
	require.NoError(t, err)
	if assert.Len(t, rows, 1) {
		assert.Equal(t, rep.RunID, rows[0].RunID)
		assert.Equal(t, "gru", rows[0].Model)
	}
}

func TestServiceSqliteStore(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Store = config.StoreConfig{Backend: "sqlite", Path: filepath.Join(dir, "runs.db")}

	svc, err := New(cfg)
	require.NoError(t, err)
	_, err = svc.Run(context.Background(), RunOptions{ResultsPath: writeResults(t, dir)})
	require.NoError(t, err)

	rows, err := svc.Store.Query("gru", time.Time{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.NoError(t, svc.Close())
}

func TestServiceRejectsBadSink(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics = metrics.Config{Sinks: []factory.ModuleConfig{{Type: "missing"}}}
	if _, err := New(cfg); err == nil {
		t.Fatal("expected unknown sink error")
	}
}

func TestPromAddr(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "", promAddr(cfg))

	cfg.Metrics = metrics.Config{Sinks: []factory.ModuleConfig{{Type: "prometheus"}}}
	assert.Equal(t, defaultPromAddr, promAddr(cfg))

	cfg.Metrics.Sinks[0].Conf = map[string]any{"port": "9100"}
	assert.Equal(t, ":9100", promAddr(cfg))

	cfg.Metrics.Sinks[0].Conf = map[string]any{"port": "localhost:9100"}
	assert.Equal(t, "localhost:9100", promAddr(cfg))
}
