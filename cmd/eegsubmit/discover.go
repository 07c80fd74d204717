// Discover command: shows the file association of a single session.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/eegsubmit/internal/discovery"
	"github.com/mesh-intelligence/eegsubmit/pkg/types"
)

var discoverCmd = &cobra.Command{
	Use:   "discover <experiment> <subject> <session>",
	Short: "Show the data files found for one session",
	Args:  cobra.ExactArgs(3),
	RunE:  runDiscover,
}

// slotView is one occupied file slot.
type slotView struct {
	Slot  int    `json:"slot"`
	Path  string `json:"path"`
	Label string `json:"label"`
}

func runDiscover(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}
	layout := discovery.Layout{LTPRoot: cfg.LTPRoot, ProtocolsRoot: cfg.ProtocolsRoot}
	engine := discovery.New(layout, cfg.Families, logger)

	exp, subj, sess := args[0], args[1], args[2]
	files := engine.Discover(exp, subj, sess)

	slots := []slotView{}
	for i := 0; i < types.FileSlots; i++ {
		if files.Path(i) == "" {
			continue
		}
		slots = append(slots, slotView{Slot: i + 1, Path: files.Path(i), Label: files.Label(i)})
	}
	if flagJSON {
		return printJSON(cmd.OutOrStdout(), slots)
	}

	family, ok := engine.Family(exp)
	if !ok {
		fmt.Fprintf(cmd.OutOrStdout(), "%s has no file family; nothing to discover\n", exp)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s session %s (family %s)\n", exp, subj, sess, family)
	if len(slots) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no files found")
		return nil
	}
	for _, s := range slots {
		fmt.Fprintf(cmd.OutOrStdout(), "  data_file%d  %-16s %s\n", s.Slot, s.Label, s.Path)
	}
	return nil
}
