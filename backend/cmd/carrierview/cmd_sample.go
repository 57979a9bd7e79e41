package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/tableio"
)

var (
	sampleFormat string
	sampleOut    string
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write the sample Carrier Relationships file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ft, err := tableio.ParseFileType(sampleFormat)
		if err != nil {
			return err
		}
		data, err := tableio.Sample(ft)
		if err != nil {
			return err
		}
		return writeOutput(sampleOut, func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		})
	},
}

func init() {
	sampleCmd.Flags().StringVarP(&sampleFormat, "format", "f", "csv", "csv or xlsx")
	sampleCmd.Flags().StringVarP(&sampleOut, "output", "o", "", "output file (stdout when empty)")
}
