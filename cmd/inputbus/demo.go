package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/inputbus/internal/config"
	"github.com/dshills/inputbus/internal/debugsrv"
	"github.com/dshills/inputbus/internal/event"
	"github.com/dshills/inputbus/internal/input"
	"github.com/dshills/inputbus/internal/metrics"
	"github.com/dshills/inputbus/internal/provider/terminal"
	"github.com/dshills/inputbus/internal/replay"
	"github.com/dshills/inputbus/internal/script"
)

type demoOptions struct {
	scriptPath string
	debugAddr  string
	logFile    string
	recordPath string
}

func newDemoCmd(global *globalOptions) *cobra.Command {
	opts := &demoOptions{}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Show synthesized events for terminal input",
		Long: `Puts the terminal in raw mode and prints every semantic event produced by
key presses, mouse buttons, the wheel and pointer motion. Ctrl+C quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(global, opts)
		},
	}
	cmd.Flags().StringVar(&opts.scriptPath, "script", "", "Lua file registering script listeners")
	cmd.Flags().StringVar(&opts.debugAddr, "debug-addr", "", "Serve /state, /listeners and /metrics on this address")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Write logs to this file (logs are discarded otherwise)")
	cmd.Flags().StringVar(&opts.recordPath, "record", "", "Save the raw notification stream to this replay file on exit")
	return cmd
}

func runDemo(global *globalOptions, opts *demoOptions) error {
	cfg, err := global.loadConfig()
	if err != nil {
		return err
	}
	if opts.debugAddr != "" {
		cfg.Debug.Addr = opts.debugAddr
	}
	if opts.scriptPath != "" {
		cfg.Script.Path = opts.scriptPath
	}

	var logOut io.Writer = io.Discard
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := newLogger(cfg, logOut)

	collector := metrics.NewCollector()
	dispatcher := event.New(event.WithLogger(logger), event.WithObserver(collector))
	synth, err := input.New(
		input.WithDispatcher(dispatcher),
		input.WithTapThreshold(cfg.Input.TapThreshold()),
		input.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	view := newEventView(screen)
	if err := view.listen(synth); err != nil {
		return err
	}
	view.draw()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider := terminal.New(screen, terminal.WithLogger(logger))
	var recorder *replay.Recorder
	if opts.recordPath != "" {
		recorder = replay.NewRecorder(synth, nil)
		provider.Attach(recorder)
	} else {
		synth.Bind(provider)
	}

	if cfg.Script.Path != "" {
		rt := script.New(synth, script.WithLogger(logger))
		defer rt.Close()
		if err := rt.DoFile(cfg.Script.Path); err != nil {
			return fmt.Errorf("load script %s: %w", cfg.Script.Path, err)
		}
	}

	var wg sync.WaitGroup
	defer wg.Wait()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.Debug.Addr != "" {
		srv := debugsrv.New(synth, dispatcher, debugsrv.Options{
			Addr:        cfg.Debug.Addr,
			CORSOrigins: cfg.Debug.CORSOrigins,
			Metrics:     collector.Handler(),
			Logger:      logger,
		})
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Run(ctx); err != nil {
				logger.Error().Err(err).Msg("debug server stopped")
			}
		}()
	}

	if global.configPath != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := config.Watch(ctx, global.configPath,
				func(c config.Config) { synth.SetTapThreshold(c.Input.TapThreshold()) },
				func(err error) { logger.Warn().Err(err).Msg("config reload failed") },
			)
			if err != nil {
				logger.Warn().Err(err).Msg("config watch unavailable")
			}
		}()
	}

	runErr := provider.Run(ctx)
	cancel()

	if recorder != nil {
		if err := replay.Save(recorder.Script(synth.TapThreshold()), opts.recordPath); err != nil {
			return err
		}
	}
	return runErr
}

// eventView renders the most recent events on the terminal.
type eventView struct {
	screen tcell.Screen
	start  time.Time

	mu    sync.Mutex
	lines []string
}

func newEventView(screen tcell.Screen) *eventView {
	return &eventView{screen: screen, start: time.Now()}
}

// listen shows every synthesized event.
func (v *eventView) listen(synth *input.Synthesizer) error {
	elapsed := func() time.Duration { return time.Since(v.start).Truncate(time.Millisecond) }
	return replay.Observe(synth, elapsed, func(r replay.Record) { v.add(r.String()) })
}

func (v *eventView) add(line string) {
	v.mu.Lock()
	v.lines = append(v.lines, line)
	_, h := v.screen.Size()
	if keep := h - 2; keep > 0 && len(v.lines) > keep {
		v.lines = v.lines[len(v.lines)-keep:]
	}
	v.mu.Unlock()
	v.draw()
}

func (v *eventView) draw() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.screen.Clear()
	putLine(v.screen, 0, "inputbus demo: type, click, scroll or move the mouse. Ctrl+C quits.", tcell.StyleDefault.Bold(true))
	for i, line := range v.lines {
		putLine(v.screen, i+2, line, tcell.StyleDefault)
	}
	v.screen.Show()
}

func putLine(s tcell.Screen, y int, text string, style tcell.Style) {
	x := 0
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

