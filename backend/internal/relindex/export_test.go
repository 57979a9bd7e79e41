package relindex

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/types"
)

func reparse(t *testing.T, data []byte) *Index {
	t.Helper()
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	ix, err := BuildIndex(types.TableData{HasHeader: true, Header: rows[0], Rows: rows[1:]})
	require.NoError(t, err)
	return ix
}

func TestExportCSV_RoundTrip(t *testing.T) {
	ix, err := BuildIndex(SampleTable())
	require.NoError(t, err)

	for _, name := range ix.Names() {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, ExportCSV(&buf, ix, []string{name}))

			back := reparse(t, buf.Bytes())
			assert.Equal(t, []string{name}, back.Names())
			if diff := cmp.Diff(ix.Carriers[name], back.Carriers[name]); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExportTable_Layout(t *testing.T) {
	ix, err := BuildIndex(SampleTable())
	require.NoError(t, err)

	tbl, err := ExportTable(ix, []string{"Atlas Freight", "Beacon Transport", "Atlas Freight"})
	require.NoError(t, err)

	want := [][]string{
		{"Atlas Freight", "Blue Line Brokerage, Crescent Brokers, Summit Logistics", "Harbor Connect", "Atlas Holdings", "Dana Reyes"},
		{"Atlas Freight", "", "", "", "Priya Shah"},
		{"Beacon Transport", "Summit Logistics", "", "Beacon Group", "Marcus Lee"},
	}
	assert.Equal(t, ExpectedHeader(), tbl.Header)
	assert.Equal(t, want, tbl.Rows)
}

func TestExportTable_UnknownCarrier(t *testing.T) {
	ix, err := BuildIndex(SampleTable())
	require.NoError(t, err)

	_, err = ExportTable(ix, []string{"Nobody"})
	require.ErrorIs(t, err, ErrUnknownCarrier)
	assert.Contains(t, err.Error(), `"Nobody"`)
}

func TestSampleCSV_Header(t *testing.T) {
	rows, err := csv.NewReader(bytes.NewReader(SampleCSV())).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, ExpectedHeader(), rows[0])
	assert.Len(t, rows, 6)
}
