package relindex

import (
	"bytes"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/types"
)

var sampleRows = [][]string{
	{"Atlas Freight", "Blue Line Brokerage, Summit Logistics", "Harbor Connect", "Atlas Holdings", "Dana Reyes"},
	{"Beacon Transport", "Summit Logistics", "", "Beacon Group", "Marcus Lee"},
	{"Cedar Haulers", "", "Harbor Connect, Northway Partners", "", "Dana Reyes"},
	{"Atlas Freight", "Crescent Brokers", "", "", "Priya Shah"},
	{"Delta Carriers", "Blue Line Brokerage", "Northway Partners", "Delta Parent Co", ""},
}

// SampleTable returns the example dataset offered to new users.
func SampleTable() types.TableData {
	rows := make([][]string, len(sampleRows))
	for i, r := range sampleRows {
		rows[i] = append([]string(nil), r...)
	}
	return types.TableData{
		HasHeader: true,
		Header:    ExpectedHeader(),
		Rows:      rows,
	}
}

// SampleCSV returns SampleTable encoded as CSV.
func SampleCSV() []byte {
	var buf bytes.Buffer
	// writing to a bytes.Buffer cannot fail
	_ = WriteCSV(&buf, SampleTable())
	return buf.Bytes()
}
