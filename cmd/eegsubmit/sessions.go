// Sessions command: lists the enriched sessions of the configured range.
package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/eegsubmit/internal/pipeline"
	"github.com/mesh-intelligence/eegsubmit/pkg/types"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List the sessions a report run would include",
	Args:  cobra.NoArgs,
	RunE:  runSessions,
}

func runSessions(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}
	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return err
	}
	sessions, _, err := p.Sessions()
	if err != nil {
		return err
	}
	if flagJSON {
		if sessions == nil {
			sessions = []*types.Session{}
		}
		return printJSON(cmd.OutOrStdout(), sessions)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "EXPERIMENT\tSUBJECT\tSESSION\tDATE\tAGE\tFILES")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			s.Experiment, s.Subject, s.Number, s.Get(types.ColDate), s.Get(types.AttrAgeInMonths), len(s.Files.Paths()))
	}
	return w.Flush()
}
