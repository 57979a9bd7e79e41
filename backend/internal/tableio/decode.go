package tableio

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/relindex"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/types"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode reads raw bytes of the declared type into a table whose first row is the header.
// Any decoding failure is a *relindex.ParseError.
func Decode(raw []byte, ft FileType) (types.TableData, error) {
	switch ft {
	case TypeCSV:
		return decodeCSV(raw)
	case TypeXLSX:
		return decodeXLSX(raw)
	}
	return types.TableData{}, fmt.Errorf("%q: %w", ft, ErrUnsupportedType)
}

func parseErr(ft FileType, reason string, err error) error {
	return &relindex.ParseError{Format: string(ft), Reason: reason, Err: err}
}

func decodeCSV(raw []byte) (types.TableData, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)

	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return types.TableData{}, parseErr(TypeCSV, "malformed delimited text", err)
	}
	if len(rows) == 0 {
		return types.TableData{}, parseErr(TypeCSV, "no header row", nil)
	}

	return fitRows(TypeCSV, "line", rows)
}

func decodeXLSX(raw []byte) (types.TableData, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return types.TableData{}, parseErr(TypeXLSX, "unreadable spreadsheet container", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return types.TableData{}, parseErr(TypeXLSX, "workbook has no sheets", nil)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return types.TableData{}, parseErr(TypeXLSX, "cannot read sheet "+sheets[0], err)
	}
	if len(rows) == 0 {
		return types.TableData{}, parseErr(TypeXLSX, "no header row", nil)
	}

	return fitRows(TypeXLSX, "row", rows)
}

// fitRows splits off the header and pads short rows to its width. A row wider
// than the header is rejected for both formats.
func fitRows(ft FileType, unit string, rows [][]string) (types.TableData, error) {
	header := rows[0]
	body := make([][]string, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) > len(header) {
			// 1-based, counting the header
			return types.TableData{}, parseErr(ft,
				fmt.Sprintf("expected %d fields in %s %d, saw %d", len(header), unit, i+2, len(row)), nil)
		}
		body = append(body, pad(row, len(header)))
	}
	return types.TableData{HasHeader: true, Header: header, Rows: body}, nil
}

// pad extends row with empty cells up to n.
func pad(row []string, n int) []string {
	for len(row) < n {
		row = append(row, "")
	}
	return row
}
