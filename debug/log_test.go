package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "debug.log")
	if err := EnableAt(path); err != nil {
		t.Fatalf("EnableAt: %v", err)
	}
	defer Disable()

	if !Enabled() {
		t.Fatal("Enabled() = false after EnableAt")
	}
	Log("seq", "play %s", "leftDI")
	for i := 0; i < 5; i++ {
		LogEvery(2, "frame", "tick")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "play leftDI") {
		t.Errorf("log missing message:\n%s", out)
	}
	if got := strings.Count(out, "tick (every 2"); got != 2 {
		t.Errorf("LogEvery wrote %d lines, want 2:\n%s", got, out)
	}
}

func TestLogDisabledIsSilent(t *testing.T) {
	Disable()
	Log("seq", "dropped")
	LogEvery(1, "seq", "dropped")
	if Enabled() {
		t.Error("Enabled() = true after Disable")
	}
}
