package observability

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/relindex"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/tableio"
)

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "schema", ErrorKind(fmt.Errorf("load: %w", &relindex.SchemaError{Missing: []string{"Carrier"}})))
	assert.Equal(t, "parse", ErrorKind(&relindex.ParseError{Format: "csv", Reason: "no header row"}))
	assert.Equal(t, "unsupported_type", ErrorKind(fmt.Errorf("x: %w", tableio.ErrUnsupportedType)))
	assert.Equal(t, "other", ErrorKind(errors.New("disk on fire")))
}

func TestMetrics_Observe(t *testing.T) {
	m := NewMetrics()

	m.ObserveLookup(true)
	m.ObserveLookup(false)
	m.ObserveLookup(false)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues("miss")))

	ix, err := relindex.BuildIndex(relindex.SampleTable())
	require.NoError(t, err)
	m.ObserveBuild(tableio.TypeCSV, time.Millisecond, ix, nil)
	m.ObserveBuild(tableio.TypeXLSX, time.Millisecond, nil, &relindex.ParseError{Format: "xlsx", Reason: "bad"})
	assert.Equal(t, 4.0, testutil.ToFloat64(m.CarriersIndexed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IndexErrorsTotal.WithLabelValues("parse")))

	m.ObserveUpload("", tableio.ErrUnsupportedType)
	m.ObserveUpload(tableio.TypeCSV, nil)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UploadsTotal.WithLabelValues("unknown", "unsupported_type")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UploadsTotal.WithLabelValues("csv", "ok")))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.ActiveSessions.Set(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "carrierview_active_sessions 3")

	// each Metrics has its own registry
	assert.NotSame(t, m.Registry(), NewMetrics().Registry())
}
