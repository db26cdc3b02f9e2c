// Package pipeline defines the progress events emitted while processing
// declaration files, consumed by the terminal UI.
package pipeline

// Stage is the position of one file in the processing pipeline.
type Stage uint8

const (
	StageQueued Stage = iota
	StageParse
	StageRender
	StageWrite
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageQueued:
		return "queued"
	case StageParse:
		return "parse"
	case StageRender:
		return "render"
	case StageWrite:
		return "write"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	}
	return "unknown"
}

// Event reports one file reaching a stage.
type Event struct {
	Path  string
	Index int
	Total int
	Stage Stage
	Err   error
}

// Listener receives events. A nil Listener is allowed everywhere.
type Listener func(Event)

// Emit calls the listener when one is set.
func (l Listener) Emit(ev Event) {
	if l != nil {
		l(ev)
	}
}
