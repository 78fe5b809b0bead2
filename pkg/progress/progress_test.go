package progress

import (
	"reflect"
	"testing"
)

func TestStageString(t *testing.T) {
	tests := []struct {
		s    Stage
		want string
	}{
		{Initializing, "INITIALIZING"},
		{DrawingDisc, "DRAWING_DISC"},
		{Complete, "COMPLETE"},
		{Error, "ERROR"},
		{Stage(42), "STAGE(42)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Stage(%d).String() = %q, want %q", int(tt.s), got, tt.want)
		}
	}
}

func TestReporterMonotone(t *testing.T) {
	var rec Recorder
	r := NewReporter(rec.Func())

	r.Report(0.3, AnalyzingImages, "")
	r.Report(0.1, OptimizingImages, "")
	r.Report(1.7, Finalizing, "")
	r.Report(-2, Finalizing, "")

	got := rec.Events()
	want := []float64{0.3, 0.3, 1, 1}
	for i, e := range got {
		if e.Fraction != want[i] {
			t.Errorf("event %d fraction = %v, want %v", i, e.Fraction, want[i])
		}
	}
}

func TestReporterStopsAfterTerminal(t *testing.T) {
	var rec Recorder
	r := NewReporter(rec.Func())

	r.Stage(Initializing, "")
	r.Fail("INVALID_COPIES")
	r.Stage(Complete, "")

	stages := rec.Stages()
	if !reflect.DeepEqual(stages, []Stage{Initializing, Error}) {
		t.Errorf("stages = %v, want [INITIALIZING ERROR]", stages)
	}
	if d := rec.Events()[1].Detail; d != "INVALID_COPIES" {
		t.Errorf("error detail = %q", d)
	}
}

func TestReporterCompleteIsOne(t *testing.T) {
	var rec Recorder
	r := NewReporter(rec.Func())
	r.Report(0.2, Complete, "")
	if f := rec.Events()[0].Fraction; f != 1 {
		t.Errorf("complete fraction = %v, want 1", f)
	}
}

func TestNilReporter(t *testing.T) {
	var r *Reporter
	r.Stage(Initializing, "")
	if r.Last() != 0 {
		t.Error("nil reporter has progress")
	}
	NewReporter(nil).Stage(Finalizing, "")
}

func TestStageStartsAreOrdered(t *testing.T) {
	prev := -1.0
	for s := Initializing; s <= Complete; s++ {
		if s.Start() < prev {
			t.Errorf("%s starts at %v, before previous %v", s, s.Start(), prev)
		}
		prev = s.Start()
	}
}
