package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the eegsubmit release. Release builds set it with
// -ldflags "-X main.Version=...".
var Version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/eegsubmit"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the eegsubmit version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "eegsubmit v%s\nmodule: %s\n", Version, modulePath)
		return nil
	},
}
