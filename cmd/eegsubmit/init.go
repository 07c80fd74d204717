// Init command: writes a starter config.yaml.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/eegsubmit/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	LTPRoot       string              `yaml:"ltp_root"`
	ProtocolsRoot string              `yaml:"protocols_root"`
	Questionnaire string              `yaml:"questionnaire,omitempty"`
	Supplemental  string              `yaml:"supplemental"`
	StartDate     string              `yaml:"start_date"`
	EndDate       string              `yaml:"end_date"`
	Reports       reportsFile         `yaml:"reports"`
	Families      map[string][]string `yaml:"families"`
}

type reportsFile struct {
	Details  reportFile `yaml:"details"`
	SubFiles reportFile `yaml:"sub_files"`
}

type reportFile struct {
	Path     string `yaml:"path"`
	Template string `yaml:"template,omitempty"`
}

var flagInitForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config.yaml",
	Long: `Create the configuration directory and write a config.yaml with the
default roots and family table. An existing config.yaml is left alone
unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&flagInitForce, "force", false, "overwrite an existing config.yaml")
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir, err := resolveConfigDir()
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	path := filepath.Join(configDir, configFileExt)
	written, err := writeConfig(path, flagInitForce)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if !written {
		fmt.Fprintf(cmd.OutOrStdout(), "%s already exists (use --force to overwrite)\n", path)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

// defaultConfigFile returns the starter configuration. Its relative paths
// resolve against the config directory, so the reports and supplemental
// file live next to config.yaml. The date range is left for the user.
func defaultConfigFile() configFile {
	families := make(map[string][]string)
	for exp, f := range types.DefaultFamilies() {
		families[string(f)] = append(families[string(f)], exp)
	}
	for f := range families {
		slices.Sort(families[f])
	}
	return configFile{
		LTPRoot:       defaultLTPRoot,
		ProtocolsRoot: defaultProtocolsRoot,
		Supplemental:  "supplemental.txt",
		Reports: reportsFile{
			Details:  reportFile{Path: "eeg_details.csv"},
			SubFiles: reportFile{Path: "eeg_sub_files.csv"},
		},
		Families: families,
	}
}

// writeConfig writes the starter config to path. It reports false without
// touching the file when path exists and force is not set.
func writeConfig(path string, force bool) (bool, error) {
	if _, err := os.Stat(path); err == nil && !force {
		return false, nil
	}
	cfg := defaultConfigFile()
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
