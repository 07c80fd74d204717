package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/eegsubmit/pkg/types"
)

func writeConfigYAML(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileExt), []byte(content), 0o644))
	return dir
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	v, err := loadConfig(t.TempDir())
	require.NoError(t, err)

	cfg, err := buildConfig(v, "")
	require.NoError(t, err)
	assert.Equal(t, defaultLTPRoot, cfg.LTPRoot)
	assert.Equal(t, defaultProtocolsRoot, cfg.ProtocolsRoot)
	assert.True(t, cfg.StartDate.IsZero())
	assert.Equal(t, types.DefaultFamilies(), cfg.Families)
	assert.ErrorIs(t, cfg.Validate(), types.ErrSupplementalEmpty)
}

func TestBuildConfigFromYAML(t *testing.T) {
	dir := writeConfigYAML(t, `
ltp_root: /lab/ltp
supplemental: /lab/nda/extra_info.txt
start_date: 2018-06-02
end_date: "2019-01-15"
reports:
  details:
    path: /lab/nda/eeg_details01.csv
  sub_files:
    path: /lab/nda/eeg_sub_files01.csv
    template: /lab/nda/blank_sub_files.csv
families:
  a: [pyFR, catFR]
  C: [SFR]
`)
	v, err := loadConfig(dir)
	require.NoError(t, err)
	cfg, err := buildConfig(v, dir)
	require.NoError(t, err)

	assert.Equal(t, "/lab/ltp", cfg.LTPRoot)
	assert.Equal(t, time.Date(2018, time.June, 2, 0, 0, 0, 0, time.UTC), cfg.StartDate)
	assert.Equal(t, time.Date(2019, time.January, 15, 0, 0, 0, 0, time.UTC), cfg.EndDate)
	assert.Equal(t, "/lab/nda/eeg_details01.csv", cfg.Details.TemplatePath())
	assert.Equal(t, "/lab/nda/blank_sub_files.csv", cfg.SubFiles.TemplatePath())
	assert.Equal(t, map[string]types.Family{
		"pyFR":  types.FamilyRawEEG,
		"catFR": types.FamilyRawEEG,
		"SFR":   types.FamilyBehavioral,
	}, cfg.Families)
	assert.NoError(t, cfg.Validate())
}

func TestBuildConfigRelativePaths(t *testing.T) {
	dir := writeConfigYAML(t, `
supplemental: nda/extra_info.txt
questionnaire: ""
reports:
  details:
    path: eeg_details01.csv
    template: /templates/eeg_details.csv
  sub_files:
    path: ./out/eeg_sub_files01.csv
`)
	v, err := loadConfig(dir)
	require.NoError(t, err)
	cfg, err := buildConfig(v, dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "nda", "extra_info.txt"), cfg.Supplemental)
	assert.Equal(t, filepath.Join(dir, "eeg_details01.csv"), cfg.Details.Path)
	assert.Equal(t, "/templates/eeg_details.csv", cfg.Details.Template)
	assert.Equal(t, filepath.Join(dir, "out", "eeg_sub_files01.csv"), cfg.SubFiles.Path)
	assert.Empty(t, cfg.SubFiles.Template)
	assert.Empty(t, cfg.Questionnaire, "empty stays empty so the default applies")
}

func TestBuildConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"bad date", "start_date: 06/02/2018\n", errConfig},
		{"unknown family", "families:\n  Z: [pyFR]\n", types.ErrFamilyUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := loadConfig(writeConfigYAML(t, tt.yaml))
			require.NoError(t, err)
			_, err = buildConfig(v, "")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := writeConfigYAML(t, "supplemental: /from/file\n")
	t.Setenv("EEGSUBMIT_SUPPLEMENTAL", "/from/env")
	t.Setenv("EEGSUBMIT_REPORTS_DETAILS_PATH", "/env/details.csv")

	v, err := loadConfig(dir)
	require.NoError(t, err)
	cfg, err := buildConfig(v, dir)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.Supplemental)
	assert.Equal(t, "/env/details.csv", cfg.Details.Path)
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := writeConfigYAML(t, "supplemental: /from/file\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, envFileName),
		[]byte("EEGSUBMIT_SUPPLEMENTAL=/from/dotenv\nEEGSUBMIT_LTP_ROOT=/dotenv/ltp\n"), 0o644))
	t.Setenv("EEGSUBMIT_LTP_ROOT", "/real/ltp")
	t.Cleanup(func() { os.Unsetenv("EEGSUBMIT_SUPPLEMENTAL") })

	v, err := loadConfig(dir)
	require.NoError(t, err)
	cfg, err := buildConfig(v, dir)
	require.NoError(t, err)
	assert.Equal(t, "/from/dotenv", cfg.Supplemental)
	assert.Equal(t, "/real/ltp", cfg.LTPRoot, "the real environment wins over .env")
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	_, err := loadConfig(writeConfigYAML(t, "ltp_root: [unterminated\n"))
	assert.ErrorIs(t, err, errConfig)
}

func TestWriteConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, configFileExt)

	written, err := writeConfig(path, false)
	require.NoError(t, err)
	assert.True(t, written)

	var got configFile
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, defaultConfigFile(), got)

	v, err := loadConfig(dir)
	require.NoError(t, err)
	cfg, err := buildConfig(v, dir)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultFamilies(), cfg.Families)
	assert.Equal(t, filepath.Join(dir, "supplemental.txt"), cfg.Supplemental)
	assert.Equal(t, filepath.Join(dir, "eeg_details.csv"), cfg.Details.Path)
	assert.Equal(t, filepath.Join(dir, "eeg_sub_files.csv"), cfg.SubFiles.Path)
	assert.Equal(t, defaultLTPRoot, cfg.LTPRoot)

	written, err = writeConfig(path, false)
	require.NoError(t, err)
	assert.False(t, written, "existing config is kept without --force")

	written, err = writeConfig(path, true)
	require.NoError(t, err)
	assert.True(t, written)
}
