package discovery

import (
	"path/filepath"

	"github.com/mesh-intelligence/eegsubmit/pkg/types"
)

// strategy fills a file association for one session of a family.
type strategy func(p prober, t Target) types.FileAssociation

// strategyFor returns the discovery rules of a family. Unknown families get
// the empty strategy.
func strategyFor(f types.Family) strategy {
	switch f {
	case types.FamilyRawEEG:
		return discoverRawEEG
	case types.FamilyProcessedEEG:
		return discoverProcessedEEG
	case types.FamilyBehavioral:
		return discoverBehavioral
	case types.FamilyMultiEEG:
		return discoverMultiEEG
	default:
		return discoverNothing
	}
}

// discoverRawEEG handles sessions whose raw EEG sits in the session's eeg
// directory. The second recording, if any, takes the last pair.
func discoverRawEEG(p prober, t Target) types.FileAssociation {
	var a types.FileAssociation
	eeg := p.glob(filepath.Join(t.SessionDir, eegSubdir), bdfPattern, bdfBZ2Pattern)
	a.Set(0, nth(eeg, 0), types.LabelEEG)
	path, label := p.eventsOrLog(filepath.Join(t.SessionDir, eventsMAT), filepath.Join(t.SessionDir, sessionLog))
	a.Set(1, path, label)
	a.Set(2, p.existing(filepath.Join(t.SessionDir, syncPulseLog)), types.LabelSyncPulse)
	a.Set(3, nth(eeg, 1), types.LabelEEG)
	return a
}

// discoverProcessedEEG handles sessions whose raw EEG was moved into the
// processed store while logs stayed in the session directory.
func discoverProcessedEEG(p prober, t Target) types.FileAssociation {
	var a types.FileAssociation
	eeg := p.glob(t.processedEEG(), bdfPattern)
	a.Set(0, nth(eeg, 0), types.LabelEEG)
	path, label := p.eventsOrLog(t.processedEvents(), filepath.Join(t.SessionDir, sessionLog))
	a.Set(1, path, label)
	a.Set(2, p.existing(filepath.Join(t.SessionDir, syncPulseLog)), types.LabelSyncPulse)
	a.Set(3, nth(eeg, 1), types.LabelEEG)
	return a
}

// discoverBehavioral handles experiments without EEG: a JSON session log
// and the experiment-wide behavioral data file of the subject.
func discoverBehavioral(p prober, t Target) types.FileAssociation {
	var a types.FileAssociation
	logs := p.glob(t.SessionDir, jsonPattern)
	a.Set(0, nth(logs, 0), types.LabelSessionLog)
	a.Set(1, p.existing(t.behavioralData()), types.LabelBehavioral)
	return a
}

// discoverMultiEEG handles sessions with up to three EEG recordings in the
// processed store. Recordings after the first fill pairs 2 and 3.
func discoverMultiEEG(p prober, t Target) types.FileAssociation {
	var a types.FileAssociation
	eeg := p.glob(t.processedEEG(), bdfPattern, mffPattern)
	a.Set(0, nth(eeg, 0), types.LabelEEG)
	path, label := p.eventsOrLog(t.processedEvents(), filepath.Join(t.SessionDir, sessionJSONL))
	a.Set(1, path, label)
	a.Set(2, nth(eeg, 1), types.LabelEEG)
	a.Set(3, nth(eeg, 2), types.LabelEEG)
	return a
}

func discoverNothing(prober, Target) types.FileAssociation {
	return types.FileAssociation{}
}

func nth(paths []string, i int) string {
	if i < len(paths) {
		return paths[i]
	}
	return ""
}
