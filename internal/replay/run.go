package replay

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/inputbus/internal/input"
)

// Record is one semantic event emitted during replay.
type Record struct {
	At   time.Duration
	Name string
	Args []any
}

// String formats the record as "100ms key_pressed space".
func (r Record) String() string {
	parts := make([]string, 0, len(r.Args)+2)
	parts = append(parts, r.At.String(), r.Name)
	for _, a := range r.Args {
		if m, ok := a.(input.Modifier); ok {
			if m != input.ModNone {
				parts = append(parts, "["+m.String()+"]")
			}
			continue
		}
		parts = append(parts, fmt.Sprint(a))
	}
	return strings.Join(parts, " ")
}

// Run replays s through a fresh Synthesizer on a manual clock starting at the
// Unix epoch and returns every emitted event in order. Replay stops at the
// first step the synthesizer rejects.
func Run(s *Script, logger zerolog.Logger) ([]Record, error) {
	start := time.Unix(0, 0)
	clock := input.NewManualClock(start)

	opts := []input.Option{input.WithClock(clock), input.WithLogger(logger)}
	if s.ThresholdMS > 0 {
		opts = append(opts, input.WithTapThreshold(time.Duration(s.ThresholdMS)*time.Millisecond))
	}
	synth, err := input.New(opts...)
	if err != nil {
		return nil, err
	}

	var records []Record
	err = Observe(synth, func() time.Duration { return clock.Now().Sub(start) }, func(r Record) {
		records = append(records, r)
	})
	if err != nil {
		return nil, err
	}

	for i, st := range s.Events {
		clock.Set(start.Add(time.Duration(st.At) * time.Millisecond))
		if err := apply(synth, st); err != nil {
			return records, &StepError{Index: i, Err: err}
		}
	}
	return records, nil
}

// Observe registers a listener for every synthesized event that passes each
// emitted event to fn as a Record stamped with elapsed().
func Observe(synth *input.Synthesizer, elapsed func() time.Duration, fn func(Record)) error {
	sigs := input.Signatures()
	names := make([]string, 0, len(sigs))
	for name := range sigs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		name := name
		ft := reflect.FuncOf(sigs[name], nil, false)
		listener := reflect.MakeFunc(ft, func(args []reflect.Value) []reflect.Value {
			rec := Record{At: elapsed(), Name: name, Args: make([]any, len(args))}
			for i, a := range args {
				rec.Args[i] = a.Interface()
			}
			fn(rec)
			return nil
		})
		if _, err := synth.On(name, listener.Interface()); err != nil {
			return err
		}
	}
	return nil
}

// apply delivers one step to sink.
func apply(sink input.Sink, st Step) error {
	mods := input.ParseModifiers(st.Mods)
	switch st.Kind {
	case KindKey:
		action, _ := input.ParseAction(st.Action)
		return sink.KeyEvent(input.Key(st.Code), 0, action, mods)
	case KindButton:
		action, _ := input.ParseAction(st.Action)
		return sink.MouseButtonEvent(input.Button(st.Code), action, mods)
	case KindScroll:
		sink.ScrollEvent(st.DX, st.DY)
	case KindCursor:
		sink.CursorPosEvent(st.X, st.Y)
	}
	return nil
}
