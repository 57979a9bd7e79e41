package relindex

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/types"
)

// ExportJoiner rejoins delimited sets on export.
const ExportJoiner = ", "

// ExportTable turns the selected carriers back into rows with the required header.
//
// Each carrier produces one row holding all of its brokers. Scalar columns cannot
// carry more than one value, so a carrier with several entities or owners gets
// continuation rows (same carrier, brokers left empty) for the extra values. Feeding
// the table back through BuildIndex reproduces the same entries.
func ExportTable(ix *Index, carriers []string) (types.TableData, error) {
	out := types.TableData{
		HasHeader: true,
		Header:    ExpectedHeader(),
		Rows:      make([][]string, 0, len(carriers)),
	}
	seen := map[string]bool{}
	for _, name := range carriers {
		if seen[name] {
			continue
		}
		seen[name] = true
		e, ok := ix.Lookup(name)
		if !ok {
			return types.TableData{}, fmt.Errorf("export %q: %w", name, ErrUnknownCarrier)
		}
		out.Rows = append(out.Rows, exportRows(name, e)...)
	}
	return out, nil
}

func exportRows(name string, e Entry) [][]string {
	n := max(1, len(e.BrokerEntityOf), len(e.RelationshipOwner))
	rows := make([][]string, n)
	for i := range rows {
		row := []string{name, "", "", nth(e.BrokerEntityOf, i), nth(e.RelationshipOwner, i)}
		if i == 0 {
			row[1] = strings.Join(e.BrokersTo, ExportJoiner)
			row[2] = strings.Join(e.BrokersThrough, ExportJoiner)
		}
		rows[i] = row
	}
	return rows
}

func nth(vals []string, i int) string {
	if i < len(vals) {
		return vals[i]
	}
	return ""
}

// ExportCSV writes the selected carriers as CSV.
func ExportCSV(w io.Writer, ix *Index, carriers []string) error {
	tbl, err := ExportTable(ix, carriers)
	if err != nil {
		return err
	}
	return WriteCSV(w, tbl)
}

// WriteCSV writes header (if any) and rows.
func WriteCSV(w io.Writer, tbl types.TableData) error {
	cw := csv.NewWriter(w)
	if tbl.HasHeader {
		if err := cw.Write(tbl.Header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := cw.WriteAll(tbl.Rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}
