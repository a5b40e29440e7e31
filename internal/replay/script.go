package replay

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dshills/inputbus/internal/input"
)

// Kinds of raw notification a step can carry.
const (
	KindKey    = "key"
	KindButton = "button"
	KindScroll = "scroll"
	KindCursor = "cursor"
)

// Step is one raw notification at an offset from the start of the script.
type Step struct {
	At     int64   `yaml:"at"`
	Kind   string  `yaml:"kind"`
	Code   int     `yaml:"code,omitempty"`
	Action string  `yaml:"action,omitempty"`
	Mods   string  `yaml:"mods,omitempty"`
	DX     float64 `yaml:"dx,omitempty"`
	DY     float64 `yaml:"dy,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
}

// Script is a replayable sequence of steps.
type Script struct {
	// ThresholdMS overrides the tap threshold when positive.
	ThresholdMS int64  `yaml:"threshold_ms,omitempty"`
	Events      []Step `yaml:"events"`
}

// ErrInvalidScript is returned for scripts that cannot be replayed.
var ErrInvalidScript = errors.New("invalid replay script")

// StepError identifies the step that made a script invalid or failed to replay.
type StepError struct {
	Index int
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Index, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Parse decodes and validates a YAML script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a script from path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read replay script: %w", err)
	}
	return Parse(data)
}

// Save writes s to path atomically using a temporary file and rename.
func Save(s *Script, path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal replay script: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Validate checks step kinds, actions and ordering. Code ranges are checked
// during replay by the synthesizer itself.
func (s *Script) Validate() error {
	if s.ThresholdMS < 0 {
		return fmt.Errorf("%w: negative threshold_ms", ErrInvalidScript)
	}
	var last int64
	for i, st := range s.Events {
		if st.At < last {
			return &StepError{Index: i, Err: fmt.Errorf("%w: at %d precedes %d", ErrInvalidScript, st.At, last)}
		}
		last = st.At

		switch st.Kind {
		case KindKey, KindButton:
			if _, ok := input.ParseAction(st.Action); !ok {
				return &StepError{Index: i, Err: fmt.Errorf("%w: unknown action %q", ErrInvalidScript, st.Action)}
			}
		case KindScroll, KindCursor:
		default:
			return &StepError{Index: i, Err: fmt.Errorf("%w: unknown kind %q", ErrInvalidScript, st.Kind)}
		}
	}
	return nil
}
