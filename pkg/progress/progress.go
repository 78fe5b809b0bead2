// Package progress reports render stages to a caller-supplied callback.
//
// A render moves through a fixed sequence of [Stage] values. The [Reporter]
// wraps a [Func] and guarantees that the fraction it forwards never goes
// down, so callers can drive a progress bar directly from it.
package progress

import (
	"fmt"
	"sync"
)

// Stage is one step of a render.
type Stage int

const (
	Initializing Stage = iota
	AnalyzingImages
	OptimizingImages
	CreatingDocument
	DrawingFrontCovers
	DrawingDisc
	DrawingBackCovers
	Finalizing
	Complete
	Error
)

var stageNames = [...]string{
	Initializing:       "INITIALIZING",
	AnalyzingImages:    "ANALYZING_IMAGES",
	OptimizingImages:   "OPTIMIZING_IMAGES",
	CreatingDocument:   "CREATING_DOCUMENT",
	DrawingFrontCovers: "DRAWING_FRONT_COVERS",
	DrawingDisc:        "DRAWING_DISC",
	DrawingBackCovers:  "DRAWING_BACK_COVERS",
	Finalizing:         "FINALIZING",
	Complete:           "COMPLETE",
	Error:              "ERROR",
}

func (s Stage) String() string {
	if s >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("STAGE(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether no stage follows s.
func (s Stage) Terminal() bool {
	return s == Complete || s == Error
}

// Nominal fractions at which each stage starts.
var stageStart = map[Stage]float64{
	Initializing:       0,
	AnalyzingImages:    0.1,
	OptimizingImages:   0.25,
	CreatingDocument:   0.5,
	DrawingFrontCovers: 0.5,
	DrawingDisc:        0.5,
	DrawingBackCovers:  0.5,
	Finalizing:         0.9,
	Complete:           1,
}

// Start returns the fraction at which s begins. Error has no fixed position.
func (s Stage) Start() float64 {
	return stageStart[s]
}

// Func receives progress updates. fraction is in [0, 1].
type Func func(fraction float64, stage Stage, detail string)

// Event is one recorded update.
type Event struct {
	Fraction float64
	Stage    Stage
	Detail   string
}

// Reporter forwards updates to a Func, clamping fractions to [0, 1] and
// never reporting a fraction lower than the previous one. A nil Reporter
// and a Reporter with a nil Func are valid and drop updates.
type Reporter struct {
	mu   sync.Mutex
	fn   Func
	last float64
	done bool
}

// NewReporter wraps fn, which may be nil.
func NewReporter(fn Func) *Reporter {
	return &Reporter{fn: fn}
}

// Report sends one update. Updates after a terminal stage are dropped.
func (r *Reporter) Report(fraction float64, stage Stage, detail string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return
	}

	fraction = min(max(fraction, r.last, 0), 1)
	if stage == Complete {
		fraction = 1
	}
	r.last = fraction
	r.done = stage.Terminal()

	if r.fn != nil {
		r.fn(fraction, stage, detail)
	}
}

// Stage reports the start of s.
func (r *Reporter) Stage(s Stage, detail string) {
	r.Report(s.Start(), s, detail)
}

// Fail reports the Error stage with the given detail.
func (r *Reporter) Fail(detail string) {
	r.Report(0, Error, detail)
}

// Last returns the most recent fraction.
func (r *Reporter) Last() float64 {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Recorder collects events, for tests and batch callers.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Func returns a progress callback that appends to the recorder.
func (r *Recorder) Func() Func {
	return func(fraction float64, stage Stage, detail string) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events = append(r.events, Event{Fraction: fraction, Stage: stage, Detail: detail})
	}
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Stages returns the distinct stages in the order they were first seen.
func (r *Recorder) Stages() []Stage {
	var out []Stage
	seen := make(map[Stage]bool)
	for _, e := range r.Events() {
		if !seen[e.Stage] {
			seen[e.Stage] = true
			out = append(out, e.Stage)
		}
	}
	return out
}
