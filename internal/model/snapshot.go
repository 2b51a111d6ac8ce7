package model

// Snapshot is the plain value state of a List.
type Snapshot struct {
	ListID     ListID          `json:"list_id" yaml:"list_id"`
	Comment    string          `json:"comment,omitempty" yaml:"comment,omitempty"`
	Parameters []ParameterData `json:"parameters" yaml:"parameters"`
}

// Recorder receives the state of a list before each structural mutation,
// so a host can offer undo. Lists work without one.
type Recorder interface {
	Record(action string, before Snapshot)
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(action string, before Snapshot)

func (f RecorderFunc) Record(action string, before Snapshot) { f(action, before) }

// SetRecorder attaches r to the list. A nil r detaches the current one.
func (l *List) SetRecorder(r Recorder) {
	l.recorder = r
}

func (l *List) record(action string) {
	if l.recorder != nil {
		l.recorder.Record(action, l.Snapshot())
	}
}

// Snapshot returns the current state of the list.
func (l *List) Snapshot() Snapshot {
	s := Snapshot{
		ListID:     l.id,
		Comment:    l.comment,
		Parameters: make([]ParameterData, len(l.params)),
	}
	for i, p := range l.params {
		s.Parameters[i] = p.data
	}
	return s
}

// RestoreList builds a list from a snapshot. Every parameter is owned by the
// new list. Object references are dropped from types that do not accept the
// object's kind. An empty ListID gets a fresh id.
func RestoreList(s Snapshot) *List {
	id := s.ListID
	if id == "" {
		id = NewListID()
	}
	l := &List{id: id, comment: s.Comment}
	for _, d := range s.Parameters {
		p := &Parameter{data: d}
		p.setup(l.id)
		p.cleanReferences()
		l.params = append(l.params, p)
	}
	return l
}
