package server

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/config"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/relindex"
)

func TestReloadPreload(t *testing.T) {
	s := newTestServer(t)
	path := filepath.Join(t.TempDir(), "carriers.csv")
	require.NoError(t, os.WriteFile(path, relindex.SampleCSV(), 0o644))

	require.NoError(t, s.reloadPreload(context.Background(), path))
	rec := do(t, s, http.MethodGet, "/v1/datasets/"+PreloadDatasetID+"/carriers/Atlas%20Freight", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	// a broken file keeps the previous dataset
	require.NoError(t, os.WriteFile(path, []byte("Carrier\nAcme\n"), 0o644))
	err := s.reloadPreload(context.Background(), path)
	assert.True(t, relindex.IsSchemaError(err))
	rec = do(t, s, http.MethodGet, "/v1/datasets/"+PreloadDatasetID+"/carriers/Atlas%20Freight", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStartPreload_ReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carriers.csv")
	require.NoError(t, os.WriteFile(path, relindex.SampleCSV(), 0o644))

	s := newTestServer(t, func(c *config.Config) {
		c.Preload.Path = path
		c.Preload.Debounce = 20 * time.Millisecond
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stop, err := s.startPreload(ctx)
	require.NoError(t, err)
	defer stop()

	first, err := s.Cache().Get(PreloadDatasetID)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(relindex.ExpectedHeaderLine()+"\nZeta Lines,X,,,\n"), 0o644))
	require.Eventually(t, func() bool {
		ds, err := s.Cache().Get(PreloadDatasetID)
		return err == nil && ds.ID != first.ID
	}, 3*time.Second, 20*time.Millisecond)

	ds, err := s.Cache().Get(PreloadDatasetID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zeta Lines"}, ds.Index.Names())
}
