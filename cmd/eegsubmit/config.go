// Config loading for the eegsubmit CLI.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/eegsubmit/internal/paths"
	"github.com/mesh-intelligence/eegsubmit/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envFileName    = ".env"
	envPrefix      = "EEGSUBMIT"

	cfgKeyLTPRoot        = "ltp_root"
	cfgKeyProtocolsRoot  = "protocols_root"
	cfgKeyQuestionnaire  = "questionnaire"
	cfgKeySupplemental   = "supplemental"
	cfgKeyStartDate      = "start_date"
	cfgKeyEndDate        = "end_date"
	cfgKeyDetailsPath    = "reports.details.path"
	cfgKeyDetailsTmpl    = "reports.details.template"
	cfgKeySubFilesPath   = "reports.sub_files.path"
	cfgKeySubFilesTmpl   = "reports.sub_files.template"
	cfgKeyFamilies       = "families"
	defaultLTPRoot       = "/data/eeg/scalp/ltp"
	defaultProtocolsRoot = "/protocols/ltp"
)

// errConfig marks errors caused by the configuration rather than the data.
var errConfig = errors.New("configuration")

// loadConfig reads config.yaml from configDir using Viper. Every key can be
// overridden by an EEGSUBMIT_ environment variable, e.g.
// EEGSUBMIT_REPORTS_DETAILS_PATH; a .env file in configDir may set them
// too, without overriding the real environment. A missing config.yaml is
// not an error; validation reports whatever is left unset.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := godotenv.Load(filepath.Join(configDir, envFileName)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: read %s: %w", errConfig, envFileName, err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyLTPRoot, defaultLTPRoot)
	v.SetDefault(cfgKeyProtocolsRoot, defaultProtocolsRoot)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range []string{cfgKeyQuestionnaire, cfgKeySupplemental, cfgKeyStartDate, cfgKeyEndDate,
		cfgKeyDetailsPath, cfgKeyDetailsTmpl, cfgKeySubFilesPath, cfgKeySubFilesTmpl} {
		// AutomaticEnv only sees keys Viper already knows about.
		_ = v.BindEnv(k)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("%w: read config: %w", errConfig, err)
	}
	return v, nil
}

// buildConfig converts the Viper settings into a types.Config. Paths are
// home-expanded and relative ones are taken from configDir; dates must be
// YYYY-MM-DD.
func buildConfig(v *viper.Viper, configDir string) (types.Config, error) {
	start, err := dateValue(v, cfgKeyStartDate)
	if err != nil {
		return types.Config{}, err
	}
	end, err := dateValue(v, cfgKeyEndDate)
	if err != nil {
		return types.Config{}, err
	}
	families, err := familiesValue(v)
	if err != nil {
		return types.Config{}, err
	}

	path := func(key string) string { return resolvePath(configDir, v.GetString(key)) }
	return types.Config{
		LTPRoot:       path(cfgKeyLTPRoot),
		ProtocolsRoot: path(cfgKeyProtocolsRoot),
		Questionnaire: path(cfgKeyQuestionnaire),
		Supplemental:  path(cfgKeySupplemental),
		StartDate:     start,
		EndDate:       end,
		Details:       types.ReportConfig{Path: path(cfgKeyDetailsPath), Template: path(cfgKeyDetailsTmpl)},
		SubFiles:      types.ReportConfig{Path: path(cfgKeySubFilesPath), Template: path(cfgKeySubFilesTmpl)},
		Families:      families,
	}, nil
}

// resolvePath expands ~ and anchors a relative path at configDir. Empty
// values stay empty.
func resolvePath(configDir, p string) string {
	p = paths.ExpandHome(strings.TrimSpace(p))
	if p == "" || filepath.IsAbs(p) || configDir == "" {
		return p
	}
	return filepath.Join(configDir, p)
}

// dateValue reads a date key. YAML may hand the value over as a string or,
// when unquoted, already decoded as a timestamp.
func dateValue(v *viper.Viper, key string) (time.Time, error) {
	switch raw := v.Get(key).(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return time.Date(raw.Year(), raw.Month(), raw.Day(), 0, 0, 0, 0, time.UTC), nil
	default:
		s := strings.TrimSpace(fmt.Sprint(raw))
		if s == "" {
			return time.Time{}, nil
		}
		t, err := time.Parse(types.DateLayout, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %s %q is not YYYY-MM-DD", errConfig, key, s)
		}
		return t, nil
	}
}

// familiesValue reads the families table, written family -> experiments:
//
//	families:
//	  A: [pyFR]
//	  C: [SFR, FR1_scalp]
//
// Viper lowercases map keys, so families are keyed by letter and the
// case-sensitive experiment names stay in the values. An absent table
// means the defaults.
func familiesValue(v *viper.Viper) (map[string]types.Family, error) {
	if !v.IsSet(cfgKeyFamilies) {
		return types.DefaultFamilies(), nil
	}
	raw := v.GetStringMapStringSlice(cfgKeyFamilies)
	letters := make([]string, 0, len(raw))
	for k := range raw {
		letters = append(letters, k)
	}
	sort.Strings(letters)

	out := make(map[string]types.Family)
	for _, k := range letters {
		f := types.Family(strings.ToUpper(k))
		if !f.Valid() {
			return nil, fmt.Errorf("%w: %w %q", errConfig, types.ErrFamilyUnknown, k)
		}
		for _, exp := range raw[k] {
			out[strings.TrimSpace(exp)] = f
		}
	}
	return out, nil
}

// loadRunConfig resolves the config directory and returns the run
// configuration.
func loadRunConfig() (types.Config, error) {
	dir, err := resolveConfigDir()
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve config dir: %w", err)
	}
	v, err := loadConfig(dir)
	if err != nil {
		return types.Config{}, err
	}
	return buildConfig(v, dir)
}
