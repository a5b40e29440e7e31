package event

import (
	"errors"
	"reflect"
	"testing"
)

type point struct{ X, Y float64 }

func TestNew(t *testing.T) {
	d := New()

	if d == nil {
		t.Fatal("expected non-nil dispatcher")
	}
	if d.Count() != 0 {
		t.Errorf("expected count 0, got %d", d.Count())
	}
}

func TestDispatcher_Register_IDs(t *testing.T) {
	d := New()

	id1, err := d.Register("key_down", func(int, int) {})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	id2, err := d.Register("key_down", func(int, int) {})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	id3, err := d.Register("wheel_up", func(int) {})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if id1 != "key_down_1" || id2 != "key_down_2" || id3 != "wheel_up_3" {
		t.Errorf("unexpected ids: %s, %s, %s", id1, id2, id3)
	}
	if d.Count() != 3 {
		t.Errorf("expected count 3, got %d", d.Count())
	}
	if d.CountByName("key_down") != 2 {
		t.Errorf("expected 2 key_down listeners, got %d", d.CountByName("key_down"))
	}
}

func TestDispatcher_Register_CountersArePerInstance(t *testing.T) {
	a := New()
	b := New()

	idA, _ := a.Register("x", func() {})
	idB, _ := b.Register("x", func() {})

	if idA != idB {
		t.Errorf("expected independent counters, got %s and %s", idA, idB)
	}
}

func TestDispatcher_Register_NotCallable(t *testing.T) {
	d := New()

	var nilFunc func(int)
	tests := []struct {
		name     string
		callback any
	}{
		{"nil", nil},
		{"nil func", nilFunc},
		{"string", "not a func"},
		{"variadic", func(...int) {}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Register("evt", tt.callback)
			if !errors.Is(err, ErrNotCallable) {
				t.Errorf("expected ErrNotCallable, got %v", err)
			}
		})
	}

	if d.Count() != 0 {
		t.Errorf("expected no listeners after failed registrations, got %d", d.Count())
	}
}

func TestDispatcher_Register_EmptyName(t *testing.T) {
	d := New()

	if _, err := d.Register("", func() {}); !errors.Is(err, ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
}

func TestDispatcher_Emit_NoListeners(t *testing.T) {
	d := New()

	if err := d.Emit("nothing", 1, "two", 3.0); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestDispatcher_Emit_Order(t *testing.T) {
	d := New()

	var order []int
	for i := 1; i <= 5; i++ {
		n := i
		if _, err := d.Register("evt", func(v int) { order = append(order, n*v) }); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
	}

	if err := d.Emit("evt", 10); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	want := []int{10, 20, 30, 40, 50}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("got order %v, want %v", order, want)
	}
}

func TestDispatcher_Emit_Arguments(t *testing.T) {
	d := New()

	var gotPos, gotDelta point
	_, _ = d.Register("pointer_moved", func(pos, delta point) {
		gotPos, gotDelta = pos, delta
	})

	if err := d.Emit("pointer_moved", point{4, 7}, point{6, 3}); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	if gotPos != (point{4, 7}) || gotDelta != (point{6, 3}) {
		t.Errorf("got %v %v", gotPos, gotDelta)
	}
}

func TestDispatcher_Emit_SignatureMismatch(t *testing.T) {
	d := New()

	called := 0
	_, _ = d.Register("evt", func(int, int) { called++ })
	id2, _ := d.Register("evt", func(int, string) { called++ })

	err := d.Emit("evt", 1, 2)
	if !errors.Is(err, ErrSignatureMismatch) {
		t.Fatalf("expected ErrSignatureMismatch, got %v", err)
	}

	var sigErr *SignatureError
	if !errors.As(err, &sigErr) {
		t.Fatalf("expected *SignatureError, got %T", err)
	}
	if sigErr.Listener != id2 {
		t.Errorf("expected listener %s, got %s", id2, sigErr.Listener)
	}
	if called != 0 {
		t.Errorf("expected no listener invoked on mismatch, got %d", called)
	}
}

func TestDispatcher_Emit_Mismatch_Cases(t *testing.T) {
	tests := []struct {
		name     string
		callback any
		args     []any
		wantErr  bool
	}{
		{"exact", func(int) {}, []any{1}, false},
		{"no args", func() {}, nil, false},
		{"too many", func(int) {}, []any{1, 2}, true},
		{"too few", func(int, int) {}, []any{1}, true},
		{"int vs int64", func(int) {}, []any{int64(1)}, true},
		{"float vs int", func(float64) {}, []any{1}, true},
		{"nil to pointer", func(*point) {}, []any{nil}, false},
		{"nil to int", func(int) {}, []any{nil}, true},
		{"nil to interface", func(error) {}, []any{nil}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New()
			if _, err := d.Register("evt", tt.callback); err != nil {
				t.Fatalf("Register() error = %v", err)
			}
			err := d.Emit("evt", tt.args...)
			if (err != nil) != tt.wantErr {
				t.Errorf("Emit() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDispatcher_Emit_ListenerErrors(t *testing.T) {
	d := New()

	boom := errors.New("boom")
	ran := 0
	id1, _ := d.Register("evt", func() error { ran++; return boom })
	_, _ = d.Register("evt", func() error { ran++; return nil })
	_, _ = d.Register("evt", func() (int, error) { ran++; return 1, nil })

	err := d.Emit("evt")
	if ran != 3 {
		t.Errorf("expected all 3 listeners to run, got %d", ran)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom error, got %v", err)
	}

	var lerr *ListenerError
	if !errors.As(err, &lerr) {
		t.Fatalf("expected *ListenerError, got %T", err)
	}
	if lerr.Listener != id1 || lerr.Event != "evt" {
		t.Errorf("unexpected listener error: %+v", lerr)
	}
}

func TestDispatcher_Unregister(t *testing.T) {
	d := New()

	calls := 0
	id, _ := d.Register("evt", func() { calls++ })

	if err := d.Unregister(id); err != nil {
		t.Fatalf("Unregister() error = %v", err)
	}
	if err := d.Unregister(id); !errors.Is(err, ErrListenerNotFound) {
		t.Errorf("expected ErrListenerNotFound on second removal, got %v", err)
	}
	if err := d.Unregister("missing_99"); !errors.Is(err, ErrListenerNotFound) {
		t.Errorf("expected ErrListenerNotFound, got %v", err)
	}

	_ = d.Emit("evt")
	if calls != 0 {
		t.Errorf("expected removed listener not to run, got %d calls", calls)
	}
	if len(d.Names()) != 0 {
		t.Errorf("expected no names, got %v", d.Names())
	}
}

func TestDispatcher_Unregister_DuringEmit(t *testing.T) {
	d := New()

	var order []string
	var id2 ListenerID
	var unregisterErrs []error
	_, _ = d.Register("evt", func() {
		order = append(order, "first")
		unregisterErrs = append(unregisterErrs, d.Unregister(id2))
	})
	id2, _ = d.Register("evt", func() { order = append(order, "second") })

	if err := d.Emit("evt"); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	if !reflect.DeepEqual(order, []string{"first", "second"}) {
		t.Errorf("snapshot should still include removed listener, got %v", order)
	}

	order = nil
	if err := d.Emit("evt"); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	if !reflect.DeepEqual(order, []string{"first"}) {
		t.Errorf("removal should apply to later emits, got %v", order)
	}

	if len(unregisterErrs) != 2 {
		t.Fatalf("first listener ran %d times, want 2", len(unregisterErrs))
	}
	if unregisterErrs[0] != nil {
		t.Errorf("first Unregister() inside callback error = %v", unregisterErrs[0])
	}
	if !errors.Is(unregisterErrs[1], ErrListenerNotFound) {
		t.Errorf("second Unregister() inside callback error = %v, want ErrListenerNotFound", unregisterErrs[1])
	}
}

func TestDispatcher_Register_DuringEmit(t *testing.T) {
	d := New()

	added := 0
	_, _ = d.Register("evt", func() {
		_, _ = d.Register("evt", func() { added++ })
	})

	_ = d.Emit("evt")
	if added != 0 {
		t.Errorf("listener registered during emit must not run in that emit, got %d", added)
	}

	_ = d.Emit("evt")
	if added != 1 {
		t.Errorf("expected 1 call on second emit, got %d", added)
	}
}

func TestDispatcher_Emit_Reentrant(t *testing.T) {
	d := New()

	var got []int
	_, _ = d.Register("outer", func(n int) {
		got = append(got, n)
		_ = d.Emit("inner", n+1)
	})
	_, _ = d.Register("inner", func(n int) { got = append(got, n) })

	if err := d.Emit("outer", 1); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	if !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("got %v", got)
	}
}

func TestDispatcher_Declare(t *testing.T) {
	d := New()

	sig := TypesOf(0, "")
	if err := d.Declare("evt", sig); err != nil {
		t.Fatalf("Declare() error = %v", err)
	}
	if err := d.Declare("evt", sig); err != nil {
		t.Errorf("re-declaring same signature should be a no-op, got %v", err)
	}
	if err := d.Declare("evt", TypesOf(0)); !errors.Is(err, ErrSignatureMismatch) {
		t.Errorf("expected ErrSignatureMismatch on conflicting declare, got %v", err)
	}

	if _, err := d.Register("evt", func(int, string) {}); err != nil {
		t.Errorf("matching Register() error = %v", err)
	}
	if _, err := d.Register("evt", func(int) {}); !errors.Is(err, ErrSignatureMismatch) {
		t.Errorf("expected registration-time mismatch, got %v", err)
	}

	got, ok := d.SignatureOf("evt")
	if !ok || !got.Equal(sig) {
		t.Errorf("SignatureOf() = %v, %v", got, ok)
	}
	if _, ok := d.SignatureOf("undeclared"); ok {
		t.Error("expected undeclared name to have no signature")
	}
}

func TestDispatcher_Declare_ConflictsWithExisting(t *testing.T) {
	d := New()

	_, _ = d.Register("evt", func(float64) {})
	if err := d.Declare("evt", TypesOf(0)); !errors.Is(err, ErrSignatureMismatch) {
		t.Errorf("expected ErrSignatureMismatch, got %v", err)
	}
}

func TestDispatcher_Clear(t *testing.T) {
	d := New()

	_ = d.Declare("a", TypesOf(0))
	_, _ = d.Register("a", func(int) {})
	_, _ = d.Register("b", func() {})

	d.Clear()

	if d.Count() != 0 {
		t.Errorf("expected count 0 after Clear, got %d", d.Count())
	}
	if _, ok := d.SignatureOf("a"); !ok {
		t.Error("expected declared signature to survive Clear")
	}
}

type recordingObserver struct {
	emitted    map[string]int
	mismatched map[string]int
}

func (o *recordingObserver) Emitted(name string, n int) { o.emitted[name] += n }
func (o *recordingObserver) Mismatched(name string)     { o.mismatched[name]++ }

func TestDispatcher_Observer(t *testing.T) {
	obs := &recordingObserver{emitted: map[string]int{}, mismatched: map[string]int{}}
	d := New(WithObserver(obs))

	_, _ = d.Register("evt", func(int) {})
	_, _ = d.Register("evt", func(int) {})

	_ = d.Emit("evt", 1)
	_ = d.Emit("evt", "wrong")
	_ = d.Emit("none")

	if obs.emitted["evt"] != 2 {
		t.Errorf("expected 2 invocations observed, got %d", obs.emitted["evt"])
	}
	if obs.mismatched["evt"] != 1 {
		t.Errorf("expected 1 mismatch observed, got %d", obs.mismatched["evt"])
	}
	if _, ok := obs.emitted["none"]; ok {
		t.Error("emit without listeners should not be observed")
	}
}
