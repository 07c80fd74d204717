// Package pipeline runs a report generation end to end: load records,
// merge supplemental data, discover session files, project the two
// reports and write them.
package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/eegsubmit/internal/discovery"
	"github.com/mesh-intelligence/eegsubmit/internal/mapper"
	"github.com/mesh-intelligence/eegsubmit/internal/records"
	"github.com/mesh-intelligence/eegsubmit/internal/report"
	"github.com/mesh-intelligence/eegsubmit/internal/supplement"
	"github.com/mesh-intelligence/eegsubmit/pkg/types"
)

// Summary describes a finished run.
type Summary struct {
	RunID      string        `json:"run_id"`
	Sessions   int           `json:"sessions"`
	Files      int           `json:"files"`
	TotalBytes int64         `json:"total_bytes"`
	Details    string        `json:"details,omitempty"`
	SubFiles   string        `json:"sub_files,omitempty"`
	DryRun     bool          `json:"dry_run"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Pipeline holds the configuration and logger of one run.
type Pipeline struct {
	cfg   types.Config
	log   *zap.Logger
	runID string
}

// New validates cfg and returns a Pipeline whose log lines carry a fresh
// run id.
func New(cfg types.Config, log *zap.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	id := newRunID()
	return &Pipeline{cfg: cfg, log: log.With(zap.String("run_id", id)), runID: id}, nil
}

// newRunID generates a UUID v7 run id.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// RunID returns the id stamped on this run's log lines.
func (p *Pipeline) RunID() string {
	return p.runID
}

// Sessions loads and enriches every in-range session, including its file
// association. The returned engine holds the discovery totals.
func (p *Pipeline) Sessions() ([]*types.Session, *discovery.Engine, error) {
	sessions, err := records.NewLoader(p.cfg, p.log).Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load records: %w", err)
	}

	extra, err := supplement.Load(p.cfg.Supplemental)
	if err != nil {
		return nil, nil, fmt.Errorf("load supplemental data: %w", err)
	}
	if err := supplement.Merge(sessions, extra, p.log); err != nil {
		return nil, nil, fmt.Errorf("merge supplemental data: %w", err)
	}

	engine := discovery.New(p.Layout(), p.cfg.Families, p.log)
	engine.DiscoverAll(sessions)
	return sessions, engine, nil
}

// Layout returns the discovery roots of the configuration.
func (p *Pipeline) Layout() discovery.Layout {
	return discovery.Layout{LTPRoot: p.cfg.LTPRoot, ProtocolsRoot: p.cfg.ProtocolsRoot}
}

// Run generates both reports. Both templates are read before any records,
// and both reports are rendered before either file is replaced, so a
// failure anywhere before the write leaves the existing files untouched.
// With dryRun nothing is written.
func (p *Pipeline) Run(dryRun bool) (Summary, error) {
	start := time.Now()
	sum := Summary{RunID: p.runID, DryRun: dryRun}

	detailsTmpl, err := report.LoadTemplate(p.cfg.Details.TemplatePath())
	if err != nil {
		return sum, fmt.Errorf("load %s template: %w", mapper.Details.Name, err)
	}
	subFilesTmpl, err := report.LoadTemplate(p.cfg.SubFiles.TemplatePath())
	if err != nil {
		return sum, fmt.Errorf("load %s template: %w", mapper.SubFiles.Name, err)
	}

	sessions, engine, err := p.Sessions()
	if err != nil {
		return sum, err
	}
	sum.Sessions = len(sessions)
	sum.Files = engine.FileCount()
	sum.TotalBytes = engine.TotalBytes()

	details := mapper.Details.Table(sessions)
	subFiles := mapper.SubFiles.Table(sessions)
	p.warnUnmapped(detailsTmpl, mapper.Details)
	p.warnUnmapped(subFilesTmpl, mapper.SubFiles)

	detailsOut, err := report.Render(detailsTmpl, details)
	if err != nil {
		return sum, err
	}
	subFilesOut, err := report.Render(subFilesTmpl, subFiles)
	if err != nil {
		return sum, err
	}

	if !dryRun {
		if err := report.WriteFile(p.cfg.Details.Path, detailsOut); err != nil {
			return sum, err
		}
		sum.Details = p.cfg.Details.Path
		if err := report.WriteFile(p.cfg.SubFiles.Path, subFilesOut); err != nil {
			return sum, err
		}
		sum.SubFiles = p.cfg.SubFiles.Path
	}

	sum.Elapsed = time.Since(start)
	p.log.Info("run finished",
		zap.Int("sessions", sum.Sessions),
		zap.Int("files", sum.Files),
		zap.Int64("total_bytes", sum.TotalBytes),
		zap.Bool("dry_run", dryRun),
		zap.Duration("elapsed", sum.Elapsed))
	return sum, nil
}

// warnUnmapped logs template columns no mapping fills; they are written
// empty.
func (p *Pipeline) warnUnmapped(tmpl report.Template, m mapper.Mapping) {
	mapped := make(map[string]bool, len(m.Fields))
	for _, f := range m.Fields {
		mapped[f.Dest] = true
	}
	var missing []string
	for _, c := range tmpl.Columns {
		if !mapped[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		p.log.Debug("template columns left empty", zap.String("report", m.Name), zap.Strings("columns", missing))
	}
}
