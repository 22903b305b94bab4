package candidatelist

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/codeGROOVE-dev/slotlist/pkg/candidate"
)

type fakeClipboard struct {
	mu     sync.Mutex
	writes []string
	err    error
}

func (f *fakeClipboard) WriteText(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.writes = append(f.writes, text)
	return nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (f *fakeNotifier) Notify(_ context.Context, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
	return f.err
}

var officeHours = candidate.TimeWindow{MinTime: "09:00", MaxTime: "18:00"}

func TestBuild(t *testing.T) {
	tests := []struct {
		name  string
		props Props
		want  View
	}{
		{
			name: "ready with one candidate",
			props: Props{
				Candidates: []candidate.Pair{{"2025-02-03T10:30:00", "2025-02-03T11:00:00"}},
				Window:     officeHours,
			},
			want: View{
				State:       StateReady,
				Lines:       []string{"2025/02/03 10:30 ~ 2025/02/03 11:00"},
				ShowCopy:    true,
				CopyEnabled: true,
			},
		},
		{
			name: "ready with nothing matching",
			props: Props{
				Candidates: []candidate.Pair{{"2025-02-03T23:30:00", "2025-02-04T00:30:00"}},
				Window:     officeHours,
			},
			want: View{
				State:     StateReady,
				Lines:     []string{},
				ShowCopy:  true,
				ShowEmpty: true,
			},
		},
		{
			name: "loading hides everything regardless of candidates",
			props: Props{
				Candidates: []candidate.Pair{{"2025-02-03T10:30:00", "2025-02-03T11:00:00"}},
				Window:     officeHours,
				IsLoading:  true,
			},
			want: View{State: StateLoading},
		},
		{
			name:  "loading with no candidates",
			props: Props{IsLoading: true},
			want:  View{State: StateLoading},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(tt.props)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Build() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRender(t *testing.T) {
	t.Run("loading", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Render(&buf, Build(Props{IsLoading: true})); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, LoadingLabel) {
			t.Errorf("expected loading label in %q", out)
		}
		if strings.Contains(out, CopyLabel) || strings.Contains(out, EmptyMessage) {
			t.Errorf("loading view must not show copy control or empty state: %q", out)
		}
	})

	t.Run("ready with candidates", func(t *testing.T) {
		var buf bytes.Buffer
		v := Build(Props{
			Candidates: []candidate.Pair{
				{"2025-02-03T10:30:00", "2025-02-03T11:00:00"},
				{"2025-02-04T13:00:00", "2025-02-04T14:00:00"},
			},
			Window: officeHours,
		})
		if err := Render(&buf, v); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		out := buf.String()
		for _, want := range []string{
			Heading,
			"[" + CopyLabel + "]",
			"• 2025/02/03 10:30 ~ 2025/02/03 11:00",
			"• 2025/02/04 13:00 ~ 2025/02/04 14:00",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in output:\n%s", want, out)
			}
		}
		if strings.Contains(out, EmptyMessage) {
			t.Errorf("unexpected empty-state message:\n%s", out)
		}
		if strings.Index(out, "2025/02/03") > strings.Index(out, "2025/02/04") {
			t.Errorf("candidates rendered out of order:\n%s", out)
		}
	})

	t.Run("ready and empty", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Render(&buf, Build(Props{Window: officeHours})); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, EmptyMessage) {
			t.Errorf("expected empty-state message in %q", out)
		}
		if !strings.Contains(out, "["+CopyLabel+"]") {
			t.Errorf("expected copy control in %q", out)
		}
		if strings.Contains(out, bullet) {
			t.Errorf("unexpected list items in %q", out)
		}
	})
}

func TestCopy(t *testing.T) {
	ctx := context.Background()
	props := Props{
		Candidates: []candidate.Pair{
			{"2025-02-03T10:30:00", "2025-02-03T11:00:00"},
			{"2025-02-03T07:00:00", "2025-02-03T08:00:00"},
			{"2025-02-04T13:00:00", "2025-02-04T14:00:00"},
		},
		Window: officeHours,
	}

	t.Run("writes filtered candidates and confirms", func(t *testing.T) {
		cb := &fakeClipboard{}
		n := &fakeNotifier{}
		l := New(cb, n)

		if got := l.Copy(ctx, props); got != CopyCopied {
			t.Fatalf("Copy() = %v, want %v", got, CopyCopied)
		}
		want := []string{"2025/02/03 10:30 ~ 2025/02/03 11:00\n2025/02/04 13:00 ~ 2025/02/04 14:00"}
		if diff := cmp.Diff(want, cb.writes); diff != "" {
			t.Errorf("clipboard writes mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{CopiedNotice}, n.messages); diff != "" {
			t.Errorf("notifications mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty list does not touch the clipboard", func(t *testing.T) {
		cb := &fakeClipboard{}
		n := &fakeNotifier{}
		l := New(cb, n)

		empty := Props{
			Candidates: []candidate.Pair{{"2025-02-03T23:30:00", "2025-02-04T00:30:00"}},
			Window:     officeHours,
		}
		if got := l.Copy(ctx, empty); got != CopySkipped {
			t.Errorf("Copy() = %v, want %v", got, CopySkipped)
		}
		if len(cb.writes) != 0 || len(n.messages) != 0 {
			t.Errorf("expected no side effects, got writes=%v messages=%v", cb.writes, n.messages)
		}
	})

	t.Run("loading does not touch the clipboard", func(t *testing.T) {
		cb := &fakeClipboard{}
		n := &fakeNotifier{}
		l := New(cb, n)

		loading := props
		loading.IsLoading = true
		if got := l.Copy(ctx, loading); got != CopySkipped {
			t.Errorf("Copy() = %v, want %v", got, CopySkipped)
		}
		if len(cb.writes) != 0 {
			t.Errorf("expected no clipboard writes, got %v", cb.writes)
		}
	})

	t.Run("failure is logged and not shown", func(t *testing.T) {
		var logs bytes.Buffer
		cb := &fakeClipboard{err: errors.New("no display")}
		n := &fakeNotifier{}
		l := New(cb, n, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

		if got := l.Copy(ctx, props); got != CopyFailed {
			t.Errorf("Copy() = %v, want %v", got, CopyFailed)
		}
		if len(n.messages) != 0 {
			t.Errorf("expected no notification on failure, got %v", n.messages)
		}
		if !strings.Contains(logs.String(), "copy failed") || !strings.Contains(logs.String(), "no display") {
			t.Errorf("expected failure in logs, got %q", logs.String())
		}
	})

	t.Run("notifier error still counts as copied", func(t *testing.T) {
		cb := &fakeClipboard{}
		n := &fakeNotifier{err: errors.New("closed")}
		l := New(cb, n, WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))

		if got := l.Copy(ctx, props); got != CopyCopied {
			t.Errorf("Copy() = %v, want %v", got, CopyCopied)
		}
	})
}

func TestCopyAsync(t *testing.T) {
	cb := &fakeClipboard{}
	n := &fakeNotifier{}
	l := New(cb, n)

	done := l.CopyAsync(context.Background(), Props{
		Candidates: []candidate.Pair{{"2025-02-03T10:30:00", "2025-02-03T11:00:00"}},
		Window:     officeHours,
	})
	if got := <-done; got != CopyCopied {
		t.Errorf("CopyAsync() result = %v, want %v", got, CopyCopied)
	}
	if _, open := <-done; open {
		t.Error("expected result channel to be closed")
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if len(cb.writes) != 1 {
		t.Errorf("expected one clipboard write, got %d", len(cb.writes))
	}
}

func TestStateStrings(t *testing.T) {
	if StateLoading.String() != "loading" || StateReady.String() != "ready" {
		t.Errorf("unexpected state names: %s, %s", StateLoading, StateReady)
	}
	if CopyFailed.String() != "failed" {
		t.Errorf("CopyFailed.String() = %q", CopyFailed.String())
	}
}
