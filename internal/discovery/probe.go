package discovery

import (
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/eegsubmit/pkg/types"
)

// prober answers existence questions against the filesystem. Errors are
// treated as absence.
type prober struct{}

// glob matches file-name patterns against the entries of dir and returns
// the matches of each pattern in turn, each pattern's in lexical order. dir
// is opened by exact path, so pattern characters in experiment or subject
// names are taken literally.
func (prober) glob(dir string, patterns ...string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, p := range patterns {
		for _, e := range entries {
			if ok, err := filepath.Match(p, e.Name()); err == nil && ok {
				out = append(out, filepath.Join(dir, e.Name()))
			}
		}
	}
	return out
}

// existing returns path if it exists and "" otherwise.
func (prober) existing(path string) string {
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// eventsOrLog prefers the processed events file and falls back to the raw
// session log. Neither existing yields an empty pair.
func (p prober) eventsOrLog(events, log string) (string, string) {
	if e := p.existing(events); e != "" {
		return e, types.LabelBehavioral
	}
	if l := p.existing(log); l != "" {
		return l, types.LabelSessionLog
	}
	return "", ""
}

// size returns the bytes under path: the file size, or the sum of regular
// files for a directory such as an .mff bundle.
func size(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	if !info.IsDir() {
		return info.Size()
	}
	var total int64
	_ = filepath.WalkDir(path, func(_ string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if fi, err := d.Info(); err == nil {
			total += fi.Size()
		}
		return nil
	})
	return total
}
