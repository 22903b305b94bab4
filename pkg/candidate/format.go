package candidate

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/maypok86/otter/v2"
)

// DisplayLayout is how candidate date-times are shown: yyyy/MM/dd HH:mm.
const DisplayLayout = "2006/01/02 15:04"

// inputLayouts are tried in order. Zone offsets are kept as-is: the wall
// clock in the string is what gets displayed.
var inputLayouts = []string{
	"2006-01-02T15:04:05", // fractional seconds are accepted after the seconds field
	time.RFC3339Nano,
	"2006-01-02T15:04",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var errEmptyInput = errors.New("empty date-time string")

// Option configures a Formatter.
type Option func(*Formatter)

// WithLogger sets the logger used to report unparseable date-times.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Formatter) {
		f.logger = logger
	}
}

// WithCache memoizes successfully formatted date-times, bounded to size
// entries. Useful when the same candidates are re-rendered repeatedly.
func WithCache(size int) Option {
	return func(f *Formatter) {
		if size <= 0 {
			return
		}
		f.cache = otter.Must(&otter.Options[string, string]{
			MaximumSize: size,
		})
	}
}

// Formatter renders candidates for display. The zero value is not usable;
// construct with NewFormatter.
type Formatter struct {
	logger *slog.Logger
	cache  *otter.Cache[string, string]
}

// NewFormatter returns a Formatter. Without options it logs to slog.Default
// and does no caching.
func NewFormatter(opts ...Option) *Formatter {
	f := &Formatter{logger: slog.Default()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Date renders an ISO-like date-time as "yyyy/MM/dd HH:mm". When the input
// cannot be parsed the error is logged and the raw string is returned, so a
// bad value never blanks out the list.
func (f *Formatter) Date(s string) string {
	if f.cache != nil {
		if out, ok := f.cache.GetIfPresent(s); ok {
			return out
		}
	}

	t, err := ParseDateTime(s)
	if err != nil {
		f.logger.Warn("date parsing failed", "input", s, "error", err)
		return s
	}

	out := t.Format(DisplayLayout)
	if f.cache != nil {
		f.cache.Set(s, out)
	}
	return out
}

// Candidate renders a pair as "<start> ~ <end>". Pairs that do not hold
// exactly two elements fall back to their elements joined by a space.
func (f *Formatter) Candidate(p Pair) string {
	if !p.Valid() {
		return strings.Join(p, " ")
	}
	return f.Date(p[0]) + " ~ " + f.Date(p[1])
}

// Candidates formats every pair, preserving order.
func (f *Formatter) Candidates(pairs []Pair) []string {
	lines := make([]string, len(pairs))
	for i, p := range pairs {
		lines[i] = f.Candidate(p)
	}
	return lines
}

// CachedEntries reports how many formatted values are memoized.
func (f *Formatter) CachedEntries() int {
	if f.cache == nil {
		return 0
	}
	return f.cache.EstimatedSize()
}

// ParseDateTime parses the date-time forms candidates arrive in.
func ParseDateTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errEmptyInput
	}
	var lastErr error
	for _, layout := range inputLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("parsing %q: %w", s, lastErr)
}

// FormatDate formats s with a default Formatter.
func FormatDate(s string) string {
	return NewFormatter().Date(s)
}

// FormatCandidate formats p with a default Formatter.
func FormatCandidate(p Pair) string {
	return NewFormatter().Candidate(p)
}
