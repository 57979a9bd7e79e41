package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/dashboard"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/relindex"
)

var fieldLabels = map[relindex.Field]string{
	relindex.FieldBrokersTo:         "Brokers to",
	relindex.FieldBrokersThrough:    "Brokers through",
	relindex.FieldBrokerEntityOf:    "Broker entity of",
	relindex.FieldRelationshipOwner: "Relationship owner",
}

var showCmd = &cobra.Command{
	Use:   "show <file> <carrier>...",
	Short: "Show the relationships of one or more carriers",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := loadIndex(args[0])
		if err != nil {
			return err
		}
		res, err := dashboard.CarrierDetails(ix, dashboard.DetailsRequest{Operation: "details", Carriers: args[1:]})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, d := range res.Details {
			fmt.Fprintln(out, renderDetail(d))
		}
		if res.Summary.Missing > 0 {
			return fmt.Errorf("%d carrier(s) not found", res.Summary.Missing)
		}
		return nil
	},
}

func renderDetail(d dashboard.CarrierDetail) string {
	if !d.Found {
		return styles.Box.Render(styles.Title.Render(d.Name) + "\n" + styles.Error.Render(*d.Error))
	}
	lines := []string{styles.Title.Render(d.Name)}
	for _, f := range relindex.RelationFields {
		vals := d.Entry.Values(f)
		value := styles.Muted.Render("none")
		if len(vals) > 0 {
			value = styles.Value.Render(strings.Join(vals, "\n"))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, styles.Label.Render(fieldLabels[f]), value))
	}
	return styles.Box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
