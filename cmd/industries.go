package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/abdallahossam66/GRC-PROJECT/internal/industry"
	"github.com/abdallahossam66/GRC-PROJECT/internal/model"
)

var industriesCmd = &cobra.Command{
	Use:   "industries",
	Short: "List industries with their dimension weights and thresholds",
	Long:  "Lists the built-in industries, overlaid with industry.tables_file when configured.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := initEnv("report", false)
		if err != nil {
			return err
		}
		return writeIndustries(cmd.OutOrStdout(), env.Tables)
	},
}

func init() {
	rootCmd.AddCommand(industriesCmd)
}

func writeIndustries(w io.Writer, t *industry.Tables) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	header := []string{"INDUSTRY"}
	for _, d := range model.Dimensions {
		header = append(header, strings.ToUpper(string(d)))
	}
	header = append(header, "PEER AVG")
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, id := range t.Industries() {
		_, c := t.Config(id)
		_, b := t.Benchmark(id)
		cols := []string{id}
		for _, d := range model.Dimensions {
			dw := c.Dimensions[d]
			col := fmt.Sprintf("%.0f%%", dw.Weight*100)
			if dw.Threshold > 0 {
				col += fmt.Sprintf(" (min %d)", dw.Threshold)
			}
			cols = append(cols, col)
		}
		cols = append(cols, fmt.Sprintf("%.0f", b.AverageScore))
		fmt.Fprintln(tw, strings.Join(cols, "\t"))
	}

	return eris.Wrap(tw.Flush(), "industries: write table")
}
