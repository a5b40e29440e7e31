package event

import (
	"errors"
	"testing"
)

func TestSignatureError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *SignatureError
		want string
	}{
		{
			name: "emit",
			err:  &SignatureError{Event: "evt", Listener: "evt_1", Want: TypesOf(0), Got: TypesOf("")},
			want: "signature mismatch for event evt (listener evt_1): want (int), got (string)",
		},
		{
			name: "declaration",
			err:  &SignatureError{Event: "evt", Want: TypesOf(0, 0), Got: TypesOf(0)},
			want: "signature mismatch for event evt: want (int, int), got (int)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSignatureError_Is(t *testing.T) {
	var err error = &SignatureError{Event: "evt"}

	if !errors.Is(err, ErrSignatureMismatch) {
		t.Error("SignatureError should match ErrSignatureMismatch")
	}
	if errors.Is(err, ErrListenerNotFound) {
		t.Error("SignatureError should not match ErrListenerNotFound")
	}
}

func TestListenerError(t *testing.T) {
	underlying := errors.New("boom")
	err := &ListenerError{Listener: "click_3", Event: "click", Err: underlying}

	if got, want := err.Error(), "listener click_3 on event click: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, underlying) {
		t.Error("errors.Is should find the underlying error")
	}

	joined := errors.Join(err, &ListenerError{Listener: "click_4", Event: "click", Err: errors.New("other")})
	var le *ListenerError
	if !errors.As(joined, &le) || le.Listener != "click_3" {
		t.Errorf("errors.As on joined errors = %v", le)
	}
}
