package types

// Family identifies one recording hardware/software generation. Each family
// has its own on-disk layout and therefore its own discovery rules.
type Family string

// Known discovery families.
const (
	FamilyRawEEG       Family = "A" // raw EEG in the session directory
	FamilyProcessedEEG Family = "B" // raw EEG in the processed-data store
	FamilyBehavioral   Family = "C" // behavioral data only
	FamilyMultiEEG     Family = "D" // up to three EEG recordings in the processed store
)

var validFamilies = map[Family]bool{
	FamilyRawEEG:       true,
	FamilyProcessedEEG: true,
	FamilyBehavioral:   true,
	FamilyMultiEEG:     true,
}

// Valid reports whether f is one of the known families.
func (f Family) Valid() bool {
	return validFamilies[f]
}

// DefaultFamilies assigns the lab's experiments to discovery families.
// Experiments not listed here (ltpFR, ltpDelayRepFRReadOnly) have no
// discovery rules and receive an empty association.
func DefaultFamilies() map[string]Family {
	return map[string]Family{
		"pyFR":      FamilyRawEEG,
		"ltpFR2":    FamilyProcessedEEG,
		"SFR":       FamilyBehavioral,
		"FR1_scalp": FamilyBehavioral,
		"VFFR":      FamilyMultiEEG,
	}
}

// experimentIDs holds the archive's numeric experiment identifiers.
var experimentIDs = map[string]int{
	"pyFR":                  596,
	"ltpFR":                 597,
	"ltpFR2":                599,
	"SFR":                   748,
	"FR1_scalp":             748,
	"VFFR":                  1183,
	"ltpDelayRepFRReadOnly": 2321,
}

// ExperimentID returns the archive identifier for an experiment name.
func ExperimentID(experiment string) (int, bool) {
	id, ok := experimentIDs[experiment]
	return id, ok
}
