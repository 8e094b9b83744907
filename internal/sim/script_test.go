package sim

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/vovakirdan/tilesim/internal/core"
)

func TestParseScript(t *testing.T) {
	script, err := ParseScript([]byte(`
- {tick: 30, up: right}
- {tick: 0, down: right}
- {tick: 10, axis: x, value: -0.5}
- {tick: 10, down: jump}
`))
	if err != nil {
		t.Fatalf("ParseScript() failed: %v", err)
	}

	ticks := make([]int, len(script))
	for i, ev := range script {
		ticks[i] = ev.Tick
	}
	if want := []int{0, 10, 10, 30}; !slices.Equal(ticks, want) {
		t.Errorf("ticks = %v, expected %v", ticks, want)
	}

	frame := script.Frame(10)
	want := []core.InputEvent{
		{Kind: core.InputAxis, Name: "x", Value: -0.5},
		{Kind: core.InputButtonDown, Name: "jump"},
	}
	if len(frame.Events) != len(want) {
		t.Fatalf("Frame(10) = %+v, expected %+v", frame.Events, want)
	}
	for i := range want {
		if frame.Events[i] != want[i] {
			t.Errorf("Frame(10)[%d] = %+v, expected %+v", i, frame.Events[i], want[i])
		}
	}

	if !script.Frame(5).Empty() {
		t.Error("Frame(5) is not empty")
	}
	if !Script(nil).Frame(0).Empty() {
		t.Error("nil script produced events")
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"syntax", "- {tick: [", "parse script"},
		{"no action", "- {tick: 1}", "exactly one"},
		{"two actions", "- {tick: 1, down: jump, up: jump}", "exactly one"},
		{"negative tick", "- {tick: -1, down: jump}", "negative tick"},
		{"axis range", "- {tick: 1, axis: x, value: 2}", "out of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ParseScript() error = %v, expected it to mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walk.yaml")
	if err := os.WriteFile(path, []byte("- {tick: 0, down: right}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	script, err := LoadScript(path)
	if err != nil {
		t.Fatalf("LoadScript() failed: %v", err)
	}
	if len(script) != 1 || script[0].Down != "right" {
		t.Errorf("LoadScript() = %+v", script)
	}

	if _, err := LoadScript(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadScript(missing) error = nil")
	}
}
