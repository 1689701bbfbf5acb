package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":  slog.LevelDebug,
		"INFO":   slog.LevelInfo,
		" warn ": slog.LevelWarn,
		"error":  slog.LevelError,
		"info+2": slog.LevelInfo + 2,
	} {
		got, err := ParseLevel(in)
		qt.Assert(t, qt.IsNil(err), qt.Commentf("%q", in))
		qt.Check(t, qt.Equals(got, want))
	}
	_, err := ParseLevel("loud")
	qt.Check(t, qt.ErrorMatches(err, `log level: .*`))
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "info", "text")
	qt.Assert(t, qt.IsNil(err))
	log.Debug("hidden")
	log.Info("resolved", "package", "org.kie")
	out := buf.String()
	qt.Check(t, qt.IsFalse(strings.Contains(out, "hidden")))
	qt.Check(t, qt.StringContains(out, "msg=resolved package=org.kie"))
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "debug", "JSON")
	qt.Assert(t, qt.IsNil(err))
	log.Debug("scan", "dir", "src")
	var rec map[string]any
	qt.Assert(t, qt.IsNil(json.Unmarshal(buf.Bytes(), &rec)))
	qt.Check(t, qt.Equals(rec["msg"], any("scan")))
	qt.Check(t, qt.Equals(rec["dir"], any("src")))
	qt.Check(t, qt.Equals(rec["level"], any("DEBUG")))
}

func TestNewBadFormat(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "info", "xml")
	qt.Check(t, qt.ErrorMatches(err, `log format "xml": want text or json`))
}
