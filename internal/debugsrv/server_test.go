package debugsrv

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/inputbus/internal/input"
	"github.com/dshills/inputbus/internal/metrics"
)

func newTestServer(t *testing.T, opts Options) (*Server, *input.Synthesizer) {
	t.Helper()
	synth, err := input.New(input.WithClock(input.NewManualClock(time.Unix(100, 0))))
	if err != nil {
		t.Fatalf("input.New() error = %v", err)
	}
	opts.Logger = zerolog.Nop()
	return New(synth, synth.Dispatcher(), opts), synth
}

func TestServer_Healthz(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestServer_State(t *testing.T) {
	s, synth := newTestServer(t, Options{})

	_ = synth.KeyEvent(input.KeySpace, 0, input.ActionPress, input.ModNone)
	synth.CursorPosEvent(10, 10)
	synth.CursorPosEvent(4, 7)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/state", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var snap input.Snapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if len(snap.KeysDown) != 1 || snap.KeysDown[0] != input.KeySpace {
		t.Errorf("KeysDown = %v", snap.KeysDown)
	}
	if snap.Pointer != (input.Vec2{X: 4, Y: 7}) || snap.PointerDelta != (input.Vec2{X: 6, Y: 3}) {
		t.Errorf("pointer = %v delta = %v", snap.Pointer, snap.PointerDelta)
	}
}

func TestServer_Listeners(t *testing.T) {
	s, synth := newTestServer(t, Options{})

	_, _ = synth.On(input.EventKeyDown, func(input.Key, input.Modifier) {})
	_, _ = synth.On(input.EventKeyDown, func(input.Key, input.Modifier) {})
	_, _ = synth.On(input.EventWheelUp, func(int) {})

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listeners", nil))

	var counts map[string]int
	if err := json.NewDecoder(rec.Body).Decode(&counts); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if counts[input.EventKeyDown] != 2 || counts[input.EventWheelUp] != 1 || len(counts) != 2 {
		t.Errorf("counts = %v", counts)
	}
}

func TestServer_Metrics(t *testing.T) {
	collector := metrics.NewCollector()
	collector.Emitted("key_down", 1)
	s, _ := newTestServer(t, Options{Metrics: collector.Handler()})

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if !strings.Contains(rec.Body.String(), "inputbus_events_emitted_total") {
		t.Errorf("missing metrics in body:\n%s", rec.Body.String())
	}
}

func TestServer_MetricsDisabled(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestServer_CORS(t *testing.T) {
	s, _ := newTestServer(t, Options{CORSOrigins: []string{"http://localhost:5173"}})

	req := httptest.NewRequest(http.MethodGet, "/state", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestServer_Serve_Shutdown(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
