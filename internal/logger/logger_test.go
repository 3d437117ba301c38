package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetup(t *testing.T) {
	prevOut, prevLevel := Log.Out, Log.GetLevel()
	defer func() {
		Log.SetOutput(prevOut)
		Log.SetLevel(prevLevel)
	}()

	var buf bytes.Buffer
	if err := Setup("debug", &buf); err != nil {
		t.Fatalf("Setup() error: %v", err)
	}
	if Log.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", Log.GetLevel())
	}

	For("minimap").Debug("drawn")
	if out := buf.String(); !strings.Contains(out, "component=minimap") || !strings.Contains(out, "drawn") {
		t.Errorf("log output = %q, want component field and message", out)
	}

	if err := Setup("loud", nil); err == nil {
		t.Error("Setup(\"loud\") should fail")
	}
	if Log.GetLevel() != logrus.DebugLevel {
		t.Errorf("failed Setup changed level to %v", Log.GetLevel())
	}
}
