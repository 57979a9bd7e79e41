package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/relindex"
)

var (
	exportCarriers []string
	exportOut      string
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export selected carriers back to the input CSV layout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := loadIndex(args[0])
		if err != nil {
			return err
		}
		carriers := exportCarriers
		if len(carriers) == 0 {
			carriers = ix.Names()
		}
		return writeOutput(exportOut, func(w io.Writer) error {
			return relindex.ExportCSV(w, ix, carriers)
		})
	},
}

func init() {
	exportCmd.Flags().StringSliceVarP(&exportCarriers, "carrier", "c", nil, "carrier to export (repeatable; all when omitted)")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "output file (stdout when empty)")
}
