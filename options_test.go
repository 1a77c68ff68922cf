package gpures

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/gpures/caps"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.label != "gpures" {
		t.Errorf("label = %q, want %q", o.label, "gpures")
	}
	if o.factory != nil {
		t.Error("factory should be nil by default")
	}
	if o.logger == nil {
		t.Error("logger should default to the package logger")
	}
}

func TestOptionsApply(t *testing.T) {
	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	f := &countingFactory{}

	o := defaultOptions()
	for _, opt := range []Option{
		WithPipelineFactory(f),
		WithLogger(l),
		WithLabel("ui"),
		WithCapsOptions(caps.WithMaxSampleCount(8)),
		WithCapsOptions(caps.WithMaxSampleCount(2)),
	} {
		opt(&o)
	}

	if o.factory != f {
		t.Error("WithPipelineFactory not applied")
	}
	if o.logger != l {
		t.Error("WithLogger not applied")
	}
	if o.label != "ui" {
		t.Errorf("label = %q, want %q", o.label, "ui")
	}
	if len(o.capsOptions) != 2 {
		t.Errorf("len(capsOptions) = %d, want 2", len(o.capsOptions))
	}
}

func TestWithLoggerNilKeepsDefault(t *testing.T) {
	o := defaultOptions()
	before := o.logger
	WithLogger(nil)(&o)
	if o.logger != before {
		t.Error("WithLogger(nil) replaced the logger")
	}
}

func TestProviderLogsThroughOption(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p, _ := newTestProvider(t, WithLogger(l), WithLabel("atlas"))
	p.Release()

	out := buf.String()
	for _, want := range []string{"resource provider created", "resource provider released", "label=atlas"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
