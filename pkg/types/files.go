package types

// FileSlots is the number of data files a session can reference.
const FileSlots = 4

// Data file type labels written next to each discovered path.
const (
	LabelEEG        = "EEG"
	LabelBehavioral = "Behavioral"
	LabelSessionLog = "Session Log"
	LabelSyncPulse  = "Sync Pulse Log"
)

// FileAssociation holds up to four (path, label) pairs in eight positional
// slots. Slot 2k is a path and slot 2k+1 its type label; an empty path
// means the slot does not apply and its label is empty too.
type FileAssociation [2 * FileSlots]string

// Set stores path and label in pair i (0-3). An empty path clears the
// pair, so a label can never outlive its path.
func (a *FileAssociation) Set(i int, path, label string) {
	if path == "" {
		label = ""
	}
	a[2*i] = path
	a[2*i+1] = label
}

// Path returns the path in pair i.
func (a FileAssociation) Path(i int) string {
	return a[2*i]
}

// Label returns the type label in pair i.
func (a FileAssociation) Label(i int) string {
	return a[2*i+1]
}

// Paths returns the non-empty paths in slot order.
func (a FileAssociation) Paths() []string {
	var out []string
	for i := 0; i < FileSlots; i++ {
		if p := a.Path(i); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsEmpty reports whether no file was associated.
func (a FileAssociation) IsEmpty() bool {
	return a == FileAssociation{}
}
