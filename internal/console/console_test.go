package console

import (
	"bytes"
	"strings"
	"testing"
)

func newTestLogger() (*Logger, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &Logger{Out: &out, Err: &errOut, NoColor: true}, &out, &errOut
}

func TestLoggerStreams(t *testing.T) {
	l, out, errOut := newTestLogger()

	l.Infof("Width: %d, Height: %d", 600, 450)
	l.Warnf("frame %d skipped", 3)
	l.Errorf("save %s failed", "a.pfm")

	if got := out.String(); got != "Width: 600, Height: 450\n" {
		t.Errorf("stdout = %q", got)
	}
	want := "Warning: frame 3 skipped\nError: save a.pfm failed\n"
	if got := errOut.String(); got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
}

func TestLoggerDebug(t *testing.T) {
	l, out, _ := newTestLogger()

	l.Debugf("hidden")
	if out.Len() != 0 {
		t.Errorf("debug output without Verbose: %q", out.String())
	}

	l.Verbose = true
	l.Debugf("rows: %d", 45)
	if !strings.Contains(out.String(), "rows: 45") {
		t.Errorf("stdout = %q", out.String())
	}
}

func TestLoggerNoColor(t *testing.T) {
	l, out, _ := newTestLogger()
	l.Infof("plain")
	if strings.Contains(out.String(), "\x1b[") {
		t.Errorf("NoColor output contains escapes: %q", out.String())
	}
}
