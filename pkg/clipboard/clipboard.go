// Package clipboard writes text to the system clipboard by piping it into the
// platform's copy command (pbcopy, wl-copy, xclip, xsel, clip.exe).
package clipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
)

// ErrUnavailable is returned when no clipboard command can be found.
var ErrUnavailable = errors.New("no clipboard command available")

// command is a copy program and its arguments. Text is written to its stdin.
type command struct {
	name string
	args []string
}

func (c command) String() string {
	return strings.TrimSpace(c.name + " " + strings.Join(c.args, " "))
}

// Option configures a System clipboard.
type Option func(*System)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *System) {
		s.logger = logger
	}
}

// WithCommand forces a specific copy command instead of probing the platform.
// The command line is split on whitespace.
func WithCommand(cmdline string) Option {
	return func(s *System) {
		fields := strings.Fields(cmdline)
		if len(fields) == 0 {
			return
		}
		s.override = &command{name: fields[0], args: fields[1:]}
	}
}

// WithAttempts sets how many times a failing copy command is tried.
func WithAttempts(n uint) Option {
	return func(s *System) {
		if n > 0 {
			s.attempts = n
		}
	}
}

// WithDelay sets the initial delay between attempts.
func WithDelay(d time.Duration) Option {
	return func(s *System) {
		s.delay = d
	}
}

// System writes to the clipboard of the machine it runs on.
type System struct {
	logger   *slog.Logger
	override *command
	lookPath func(string) (string, error)
	getenv   func(string) string
	goos     string
	attempts uint
	delay    time.Duration
}

// New returns a System clipboard.
func New(opts ...Option) *System {
	s := &System{
		logger:   slog.Default(),
		lookPath: exec.LookPath,
		getenv:   os.Getenv,
		goos:     runtime.GOOS,
		attempts: 3,
		delay:    100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// candidates lists copy commands to probe for the platform, in preference order.
func (s *System) candidates() []command {
	switch s.goos {
	case "darwin":
		return []command{{name: "pbcopy"}}
	case "windows":
		return []command{{name: "clip.exe"}, {name: "clip"}}
	default:
		var cmds []command
		if s.getenv("WAYLAND_DISPLAY") != "" {
			cmds = append(cmds, command{name: "wl-copy"})
		}
		cmds = append(cmds,
			command{name: "xclip", args: []string{"-selection", "clipboard"}},
			command{name: "xsel", args: []string{"--clipboard", "--input"}},
			command{name: "termux-clipboard-set"},
		)
		// WSL exposes the Windows clipboard.
		cmds = append(cmds, command{name: "clip.exe"})
		return cmds
	}
}

// resolve picks the command to run.
func (s *System) resolve() (command, error) {
	if s.override != nil {
		if _, err := s.lookPath(s.override.name); err != nil {
			return command{}, fmt.Errorf("finding %s: %w", s.override.name, errors.Join(ErrUnavailable, err))
		}
		return *s.override, nil
	}
	for _, c := range s.candidates() {
		if _, err := s.lookPath(c.name); err == nil {
			return c, nil
		}
	}
	return command{}, fmt.Errorf("%w on %s", ErrUnavailable, s.goos)
}

// WriteText places text on the clipboard. Transient command failures are
// retried with backoff; a missing command is not.
func (s *System) WriteText(ctx context.Context, text string) error {
	c, err := s.resolve()
	if err != nil {
		return err
	}
	s.logger.Debug("writing clipboard", "command", c.String(), "bytes", len(text))

	err = retry.Do(
		func() error {
			cmd := exec.CommandContext(ctx, c.name, c.args...)
			cmd.Stdin = strings.NewReader(text)
			var stderr bytes.Buffer
			cmd.Stderr = &stderr
			if runErr := cmd.Run(); runErr != nil {
				if msg := strings.TrimSpace(stderr.String()); msg != "" {
					return fmt.Errorf("%s: %w: %s", c.name, runErr, msg)
				}
				return fmt.Errorf("%s: %w", c.name, runErr)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(s.delay),
		retry.MaxDelay(2*time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			s.logger.Debug("retrying clipboard write", "attempt", n+1, "command", c.name, "error", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}
