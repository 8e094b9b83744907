package sim

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tilesim/internal/core"
)

// ScriptEvent is one scripted input change, delivered right before the
// world runs tick Tick. Exactly one of Down, Up and Axis is set.
type ScriptEvent struct {
	Tick  int     `yaml:"tick"`
	Down  string  `yaml:"down,omitempty"`
	Up    string  `yaml:"up,omitempty"`
	Axis  string  `yaml:"axis,omitempty"`
	Value float64 `yaml:"value,omitempty"`
}

// Script is a list of input events ordered by tick.
type Script []ScriptEvent

// ParseScript decodes a YAML event list.
func ParseScript(data []byte) (Script, error) {
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("sim: parse script: %w", err)
	}
	for i, ev := range script {
		set := 0
		for _, name := range []string{ev.Down, ev.Up, ev.Axis} {
			if name != "" {
				set++
			}
		}
		if set != 1 {
			return nil, fmt.Errorf("sim: script event %d: need exactly one of down, up, axis", i)
		}
		if ev.Tick < 0 {
			return nil, fmt.Errorf("sim: script event %d: negative tick %d", i, ev.Tick)
		}
		if ev.Value < -1 || ev.Value > 1 {
			return nil, fmt.Errorf("sim: script event %d: axis value %v out of [-1, 1]", i, ev.Value)
		}
	}
	sort.SliceStable(script, func(i, j int) bool { return script[i].Tick < script[j].Tick })
	return script, nil
}

// LoadScript reads and parses a script file.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sim: read script: %w", err)
	}
	return ParseScript(data)
}

// Frame returns the input events scheduled for tick, in script order.
func (s Script) Frame(tick int) core.InputFrame {
	frame := core.NewInputFrame()
	i := sort.Search(len(s), func(i int) bool { return s[i].Tick >= tick })
	for ; i < len(s) && s[i].Tick == tick; i++ {
		ev := s[i]
		switch {
		case ev.Down != "":
			frame.ButtonDown(ev.Down)
		case ev.Up != "":
			frame.ButtonUp(ev.Up)
		default:
			frame.Axis(ev.Axis, ev.Value)
		}
	}
	return frame
}
