package tableio

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/relindex"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/types"
)

const sheetName = "Sheet1"

// Encode writes tbl in the given format.
func Encode(tbl types.TableData, ft FileType) ([]byte, error) {
	switch ft {
	case TypeCSV:
		var buf bytes.Buffer
		if err := relindex.WriteCSV(&buf, tbl); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case TypeXLSX:
		return encodeXLSX(tbl)
	}
	return nil, fmt.Errorf("%q: %w", ft, ErrUnsupportedType)
}

func encodeXLSX(tbl types.TableData) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	rows := tbl.Rows
	if tbl.HasHeader {
		rows = append([][]string{tbl.Header}, rows...)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		r := row
		if err := f.SetSheetRow(sheetName, cell, &r); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Sample returns the example dataset in the given format.
func Sample(ft FileType) ([]byte, error) {
	if ft == TypeCSV {
		return relindex.SampleCSV(), nil
	}
	return Encode(relindex.SampleTable(), ft)
}
