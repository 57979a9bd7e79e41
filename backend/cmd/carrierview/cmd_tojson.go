package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var tojsonOut string

var tojsonCmd = &cobra.Command{
	Use:   "tojson <file>",
	Short: "Convert a CSV or XLSX file to table JSON",
	Long: `tojson writes {"hasHeader", "header", "rows"} next to the input file
(same name, .json extension) unless --output is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := args[0]
		tbl, err := readTable(in)
		if err != nil {
			return err
		}
		path := tojsonOut
		if path == "" {
			path = strings.TrimSuffix(in, filepath.Ext(in)) + ".json"
		}
		err = writeOutput(path, func(w io.Writer) error {
			return printJSON(w, tbl)
		})
		if err != nil {
			return err
		}
		if path != "-" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Converted %s to %s\n", in, path)
		}
		return nil
	},
}

func init() {
	tojsonCmd.Flags().StringVarP(&tojsonOut, "output", "o", "", `output file ("-" for stdout)`)
}
