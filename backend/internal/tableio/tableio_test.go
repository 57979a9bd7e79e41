package tableio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/relindex"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/types"
)

func TestParseFileType(t *testing.T) {
	tests := []struct {
		in      string
		want    FileType
		wantErr bool
	}{
		{in: "csv", want: TypeCSV},
		{in: ".CSV", want: TypeCSV},
		{in: " xlsx ", want: TypeXLSX},
		{in: "XLSX", want: TypeXLSX},
		{in: "xls", wantErr: true},
		{in: "json", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFileType(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileTypeFromName(t *testing.T) {
	ft, err := FileTypeFromName("/tmp/Carriers.Final.XLSX")
	require.NoError(t, err)
	assert.Equal(t, TypeXLSX, ft)

	_, err = FileTypeFromName("carriers")
	require.ErrorIs(t, err, ErrUnsupportedType)

	_, err = FileTypeFromName("carriers.txt")
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestDecodeCSV(t *testing.T) {
	raw := "\xEF\xBB\xBFCarrier,Brokers to,Brokers through,broker entity of,relationship owner\n" +
		"Acme,\"X, Y\",,EntA,Bob\n" +
		"Beta,Z\n"

	tbl, err := Decode([]byte(raw), TypeCSV)
	require.NoError(t, err)
	assert.True(t, tbl.HasHeader)
	assert.Equal(t, relindex.ExpectedHeader(), tbl.Header)
	assert.Equal(t, [][]string{
		{"Acme", "X, Y", "", "EntA", "Bob"},
		{"Beta", "Z", "", "", ""},
	}, tbl.Rows)
}

func TestDecodeCSV_Errors(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		reason string
	}{
		{name: "empty", raw: "", reason: "no header row"},
		{name: "bare quote", raw: "Carrier\n\"Acme\"x\n", reason: "malformed delimited text"},
		{name: "row longer than header", raw: "a,b\n1,2,3\n", reason: "expected 2 fields in line 2, saw 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.raw), TypeCSV)
			require.Error(t, err)
			assert.True(t, relindex.IsParseError(err))

			var pe *relindex.ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, "csv", pe.Format)
			assert.Equal(t, tt.reason, pe.Reason)
		})
	}
}

func TestDecodeXLSX_RoundTrip(t *testing.T) {
	data, err := Sample(TypeXLSX)
	require.NoError(t, err)

	tbl, err := Decode(data, TypeXLSX)
	require.NoError(t, err)
	assert.Equal(t, relindex.SampleTable(), tbl)

	fromXLSX, err := relindex.BuildIndex(tbl)
	require.NoError(t, err)
	fromCSV, err := relindex.BuildIndex(relindex.SampleTable())
	require.NoError(t, err)
	assert.Equal(t, fromCSV.Carriers, fromXLSX.Carriers)
}

func TestDecodeXLSX_RowLongerThanHeader(t *testing.T) {
	data, err := Encode(types.TableData{
		HasHeader: true,
		Header:    []string{"a", "b"},
		Rows:      [][]string{{"1", "2"}, {"1", "2", "3"}},
	}, TypeXLSX)
	require.NoError(t, err)

	_, err = Decode(data, TypeXLSX)
	var pe *relindex.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "xlsx", pe.Format)
	assert.Equal(t, "expected 2 fields in row 3, saw 3", pe.Reason)
}

func TestDecodeXLSX_NotAWorkbook(t *testing.T) {
	_, err := Decode([]byte("Carrier,Brokers to\n"), TypeXLSX)
	require.Error(t, err)

	var pe *relindex.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "xlsx", pe.Format)
	assert.Equal(t, "unreadable spreadsheet container", pe.Reason)
}

func TestDecode_UnsupportedType(t *testing.T) {
	_, err := Decode([]byte("x"), FileType("pdf"))
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestSampleCSV(t *testing.T) {
	data, err := Sample(TypeCSV)
	require.NoError(t, err)
	tbl, err := Decode(data, TypeCSV)
	require.NoError(t, err)
	assert.Equal(t, relindex.SampleTable(), tbl)
}

func TestEncode_UnsupportedType(t *testing.T) {
	_, err := Encode(relindex.SampleTable(), FileType("ods"))
	require.ErrorIs(t, err, ErrUnsupportedType)
}
