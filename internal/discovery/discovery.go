// Package discovery finds the data files of a recording session and
// assigns them to the four (path, type) pairs of a file association.
//
// Each experiment belongs to a family describing where its recording
// hardware and software generation left files on disk. The family decides
// which rules run; an experiment without a family gets an empty
// association. Missing files never fail discovery, they leave their pair
// empty.
package discovery

import (
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/eegsubmit/pkg/types"
)

// Engine discovers session files and keeps a running total of the bytes it
// found, for an estimate of the upload size.
type Engine struct {
	layout   Layout
	families map[string]types.Family
	log      *zap.Logger
	probe    prober

	files      int
	totalBytes int64
}

// New returns an Engine searching layout with the given experiment to
// family assignment. A nil families map uses types.DefaultFamilies.
func New(layout Layout, families map[string]types.Family, log *zap.Logger) *Engine {
	if families == nil {
		families = types.DefaultFamilies()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{layout: layout, families: families, log: log}
}

// Family returns the family of an experiment and whether it has one.
func (e *Engine) Family(experiment string) (types.Family, bool) {
	f, ok := e.families[experiment]
	return f, ok
}

// Discover returns the file association of one session.
func (e *Engine) Discover(experiment, subject, session string) types.FileAssociation {
	family, ok := e.Family(experiment)
	if !ok {
		e.log.Debug("no discovery rules for experiment", zap.String("experiment", experiment))
	}
	t := e.layout.Target(experiment, subject, session)
	a := strategyFor(family)(e.probe, t)

	for _, p := range a.Paths() {
		e.files++
		e.totalBytes += size(p)
	}
	e.log.Debug("discovered session files",
		zap.String("experiment", experiment),
		zap.String("subject", subject),
		zap.String("session", session),
		zap.String("family", string(family)),
		zap.Strings("files", a.Paths()))
	return a
}

// DiscoverAll fills the Files of every session.
func (e *Engine) DiscoverAll(sessions []*types.Session) {
	for _, s := range sessions {
		s.Files = e.Discover(s.Experiment, s.Subject, s.Number)
		if s.Files.IsEmpty() {
			e.log.Warn("no data files found", zap.String("session", s.Key()))
		}
	}
	e.log.Info("file discovery finished",
		zap.Int("sessions", len(sessions)),
		zap.Int("files", e.files),
		zap.String("total_size", humanize.Bytes(uint64(e.totalBytes))))
}

// FileCount returns the number of files discovered so far.
func (e *Engine) FileCount() int {
	return e.files
}

// TotalBytes returns the combined size of every file discovered so far.
func (e *Engine) TotalBytes() int64 {
	return e.totalBytes
}
