package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/relindex"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/tableio"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/types"
)

// readTable decodes a CSV or XLSX file picked by extension.
func readTable(path string) (types.TableData, error) {
	ft, err := tableio.FileTypeFromName(path)
	if err != nil {
		return types.TableData{}, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return types.TableData{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return tableio.Decode(raw, ft)
}

func loadIndex(path string) (*relindex.Index, error) {
	tbl, err := readTable(path)
	if err != nil {
		return nil, err
	}
	ix, err := relindex.BuildIndex(tbl)
	if err != nil {
		return nil, err
	}
	logger.Debug("indexed file",
		zap.String("path", path),
		zap.Int("carriers", len(ix.Carriers)),
		zap.Int("rows_processed", ix.Rows.Processed),
		zap.Int("rows_skipped", ix.Rows.Skipped))
	return ix, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputFile opens path for writing, or returns stdout for "" and "-".
func outputFile(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// writeOutput runs fn against the output for path and reports the close error
// of a real file, where a short write can surface.
func writeOutput(path string, fn func(io.Writer) error) error {
	out, err := outputFile(path)
	if err != nil {
		return err
	}
	return writeAndClose(out, fn)
}

func writeAndClose(out io.WriteCloser, fn func(io.Writer) error) (err error) {
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output: %w", cerr)
		}
	}()
	return fn(out)
}
