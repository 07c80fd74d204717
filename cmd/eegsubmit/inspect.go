// Inspect command: reads back a written report.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/eegsubmit/internal/report"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <report.csv>",
	Short: "Print the header and rows of a submission report",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	tmpl, table, err := report.Read(args[0])
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"name":    tmpl.Name,
			"version": tmpl.Version,
			"columns": tmpl.Columns,
			"rows":    table.Rows,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s version %s, %d columns, %d rows\n", tmpl.Name, tmpl.Version, len(tmpl.Columns), len(table.Rows))
	for i, row := range table.Rows {
		fmt.Fprintf(out, "-- row %d\n", i+1)
		for _, c := range tmpl.Columns {
			if v := row[c]; strings.TrimSpace(v) != "" {
				fmt.Fprintf(out, "  %s: %s\n", c, v)
			}
		}
	}
	return nil
}
