// Package notify shows confirmation notices in a terminal.
package notify

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Terminal prints a notice and, when given an input, blocks until the user
// presses Enter. Without an input it returns right after printing.
type Terminal struct {
	out   io.Writer
	in    io.Reader
	style *color.Color
}

// NewTerminal returns a Terminal notifier writing to out. Pass a nil in for a
// non-blocking notice.
func NewTerminal(out io.Writer, in io.Reader, noColor bool) *Terminal {
	style := color.New(color.FgGreen, color.Bold)
	if noColor {
		style.DisableColor()
	}
	return &Terminal{out: out, in: in, style: style}
}

// Notify prints message and waits for acknowledgement.
func (t *Terminal) Notify(ctx context.Context, message string) error {
	if _, err := fmt.Fprintf(t.out, "\n✅ %s\n", t.style.Sprint(message)); err != nil {
		return fmt.Errorf("writing notice: %w", err)
	}
	if t.in == nil {
		return nil
	}
	if _, err := fmt.Fprint(t.out, "   Press Enter to continue..."); err != nil {
		return fmt.Errorf("writing prompt: %w", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(t.in).ReadString('\n')
		if err == io.EOF {
			err = nil
		}
		done <- err
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("reading acknowledgement: %w", err)
		}
		return nil
	}
}
