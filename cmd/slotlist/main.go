// Package main implements the slotlist CLI, which shows scheduling candidates
// inside a time-of-day window and copies them to the clipboard.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/codeGROOVE-dev/slotlist/pkg/candidate"
	"github.com/codeGROOVE-dev/slotlist/pkg/candidatelist"
	"github.com/codeGROOVE-dev/slotlist/pkg/clipboard"
	"github.com/codeGROOVE-dev/slotlist/pkg/notify"
)

const (
	defaultMinTime = "00:00"
	defaultMaxTime = "23:59"
	loadingGrace   = 150 * time.Millisecond
	formatCache    = 4096
	clearScreen    = "\033[H\033[2J"
)

var (
	minTime      = flag.String("min-time", defaultMinTime, "Earliest start time of day, HH:mm (or set SLOTLIST_MIN_TIME)")
	maxTime      = flag.String("max-time", defaultMaxTime, "Latest end time of day, HH:mm (or set SLOTLIST_MAX_TIME)")
	doCopy       = flag.Bool("copy", false, "Copy the filtered candidates to the clipboard")
	clipboardCmd = flag.String("clipboard-cmd", "", "Clipboard command to pipe text into (or set SLOTLIST_CLIPBOARD_CMD)")
	watch        = flag.Bool("watch", false, "Re-render whenever the candidates file changes")
	interval     = flag.Duration("interval", 2*time.Second, "Poll interval for -watch")
	noColor      = flag.Bool("no-color", false, "Disable colored output")
	verbose      = flag.Bool("verbose", false, "Enable verbose logging")
	version      = flag.Bool("version", false, "Show version")
)

func main() {
	// A missing .env is fine.
	_ = godotenv.Load() //nolint:errcheck // optional file

	flag.Parse()

	if *version {
		fmt.Println("slotlist v1.0.0")
		return
	}

	args := flag.Args()
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [candidates.json]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	path := os.Getenv("SLOTLIST_FILE")
	if len(args) == 1 {
		path = args[0]
	}

	level := slog.LevelError
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	// Environment only fills in flags left at their defaults.
	if *minTime == defaultMinTime && os.Getenv("SLOTLIST_MIN_TIME") != "" {
		*minTime = os.Getenv("SLOTLIST_MIN_TIME")
	}
	if *maxTime == defaultMaxTime && os.Getenv("SLOTLIST_MAX_TIME") != "" {
		*maxTime = os.Getenv("SLOTLIST_MAX_TIME")
	}
	if *clipboardCmd == "" {
		*clipboardCmd = os.Getenv("SLOTLIST_CLIPBOARD_CMD")
	}
	if *noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	if *watch && (path == "" || path == "-") {
		fmt.Fprintln(os.Stderr, "-watch requires a candidates file")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := newApp(logger, path)
	if *watch {
		if err := app.watch(ctx, *interval); err != nil && ctx.Err() == nil {
			stop()
			logger.Error("watch failed", "error", err)
			os.Exit(1)
		}
		return
	}
	if err := app.once(ctx); err != nil {
		stop()
		logger.Error("failed to show candidates", "error", err)
		os.Exit(1)
	}
}

// app is the caller that owns the list's props.
type app struct {
	logger   *slog.Logger
	list     *candidatelist.List
	renderer *candidatelist.Renderer
	out      io.Writer
	stdin    io.Reader
	window   candidate.TimeWindow
	path     string
	tty      bool
}

func newApp(logger *slog.Logger, path string) *app {
	stdinTTY := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	stdoutTTY := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	// Only wait for Enter when stdin is a keyboard not carrying candidates.
	var ack io.Reader
	if stdinTTY && path != "" && path != "-" && !*watch {
		ack = os.Stdin
	}

	cbOpts := []clipboard.Option{clipboard.WithLogger(logger)}
	if *clipboardCmd != "" {
		cbOpts = append(cbOpts, clipboard.WithCommand(*clipboardCmd))
	}

	plain := color.NoColor
	formatter := candidate.NewFormatter(candidate.WithLogger(logger), candidate.WithCache(formatCache))
	list := candidatelist.New(
		clipboard.New(cbOpts...),
		notify.NewTerminal(os.Stderr, ack, plain),
		candidatelist.WithLogger(logger),
		candidatelist.WithFormatter(formatter),
	)

	return &app{
		logger:   logger,
		list:     list,
		renderer: candidatelist.NewRenderer(plain),
		out:      os.Stdout,
		stdin:    os.Stdin,
		window:   candidate.TimeWindow{MinTime: *minTime, MaxTime: *maxTime},
		path:     path,
		tty:      stdoutTTY,
	}
}

func (a *app) props(pairs []candidate.Pair, loading bool) candidatelist.Props {
	return candidatelist.Props{Candidates: pairs, Window: a.window, IsLoading: loading}
}

func (a *app) render(p candidatelist.Props, clear bool) {
	if clear && a.tty {
		fmt.Fprint(a.out, clearScreen)
	}
	if err := a.renderer.Render(a.out, a.list.View(p)); err != nil {
		a.logger.Error("render failed", "error", err)
	}
}

func (a *app) read() ([]byte, error) {
	return readSource(a.path, a.stdin)
}

// once loads, renders and optionally copies a single time.
func (a *app) once(ctx context.Context) error {
	shownLoading := false
	r := load(ctx, a.read, loadingGrace, func() {
		shownLoading = true
		a.render(a.props(nil, true), false)
	})
	if r.err != nil {
		return r.err
	}

	a.render(a.props(r.pairs, false), shownLoading)

	if *doCopy {
		result := <-a.list.CopyAsync(ctx, a.props(r.pairs, false))
		a.logger.Debug("copy finished", "result", result)
	}
	return nil
}

// watch polls the file and re-renders whenever its contents change.
func (a *app) watch(ctx context.Context, every time.Duration) error {
	a.render(a.props(nil, true), true)

	var last []byte
	refresh := func() {
		data, err := a.read()
		if err != nil {
			a.logger.Warn("failed to read candidates", "path", a.path, "error", err)
			return
		}
		if last != nil && bytes.Equal(data, last) {
			return
		}
		last = data

		pairs, err := decodeCandidates(data)
		if err != nil {
			a.logger.Warn("failed to decode candidates", "path", a.path, "error", err)
			return
		}
		p := a.props(pairs, false)
		a.render(p, true)
		if *doCopy {
			go func() {
				result := <-a.list.CopyAsync(ctx, p)
				a.logger.Debug("copy finished", "result", result)
			}()
		}
	}

	refresh()
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			refresh()
		}
	}
}
