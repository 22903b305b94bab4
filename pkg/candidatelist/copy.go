package candidatelist

import (
	"context"
	"log/slog"

	"github.com/codeGROOVE-dev/slotlist/pkg/candidate"
)

// ClipboardWriter places text on a clipboard.
type ClipboardWriter interface {
	WriteText(ctx context.Context, text string) error
}

// Notifier presents a confirmation to the user and returns once it has been
// acknowledged.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// CopyResult is the outcome of a copy action.
type CopyResult int

const (
	// CopySkipped means nothing was written: the list was empty or still loading.
	CopySkipped CopyResult = iota
	// CopyCopied means the clipboard write succeeded.
	CopyCopied
	// CopyFailed means the clipboard write failed. The failure is only logged.
	CopyFailed
)

func (r CopyResult) String() string {
	switch r {
	case CopySkipped:
		return "skipped"
	case CopyCopied:
		return "copied"
	case CopyFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Option configures a List.
type Option func(*List)

// WithLogger sets the logger for copy failures and formatting problems.
func WithLogger(logger *slog.Logger) Option {
	return func(l *List) {
		l.logger = logger
	}
}

// WithFormatter replaces the default candidate formatter.
func WithFormatter(f *candidate.Formatter) Option {
	return func(l *List) {
		l.formatter = f
	}
}

// List binds the view derivation to the clipboard and notifier capabilities.
// It holds no per-render state.
type List struct {
	clipboard ClipboardWriter
	notifier  Notifier
	formatter *candidate.Formatter
	logger    *slog.Logger
}

// New returns a List that copies through cb and confirms through n.
func New(cb ClipboardWriter, n Notifier, opts ...Option) *List {
	l := &List{
		clipboard: cb,
		notifier:  n,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.formatter == nil {
		l.formatter = candidate.NewFormatter(candidate.WithLogger(l.logger))
	}
	return l
}

// View derives the view for props.
func (l *List) View(props Props) View {
	return BuildWith(l.formatter, props)
}

// Copy writes the filtered, formatted candidates to the clipboard, one per
// line. An empty list is a no-op. Success is confirmed through the notifier;
// failure is logged and not shown to the user.
func (l *List) Copy(ctx context.Context, props Props) CopyResult {
	v := l.View(props)
	if !v.CopyEnabled {
		l.logger.Debug("copy skipped", "state", v.State, "candidates", len(v.Lines))
		return CopySkipped
	}

	text := candidate.Join(v.Lines)
	if err := l.clipboard.WriteText(ctx, text); err != nil {
		l.logger.Error("copy failed", "error", err)
		return CopyFailed
	}
	l.logger.Debug("copied candidates", "count", len(v.Lines), "bytes", len(text))

	if err := l.notifier.Notify(ctx, CopiedNotice); err != nil {
		l.logger.Warn("failed to show copy confirmation", "error", err)
	}
	return CopyCopied
}

// CopyAsync runs Copy on its own goroutine. The returned channel receives the
// result and is then closed.
func (l *List) CopyAsync(ctx context.Context, props Props) <-chan CopyResult {
	done := make(chan CopyResult, 1)
	go func() {
		defer close(done)
		done <- l.Copy(ctx, props)
	}()
	return done
}
