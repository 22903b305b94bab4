package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/codeGROOVE-dev/slotlist/pkg/candidate"
)

// maxInputSize bounds how much candidate JSON is read.
const maxInputSize = 16 << 20

var errInputTooLarge = errors.New("candidate input exceeds 16 MiB")

// decodeCandidates parses a JSON array of string arrays, e.g.
// [["2025-02-03T10:30:00","2025-02-03T11:00:00"]]. Blank input is an empty list.
func decodeCandidates(data []byte) ([]candidate.Pair, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var raw [][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding candidates: %w", err)
	}
	return candidate.FromStrings(raw), nil
}

// readSource reads all candidate bytes from path, or from stdin when path is
// empty or "-".
func readSource(path string, stdin io.Reader) ([]byte, error) {
	var r io.Reader = stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening candidates: %w", err)
		}
		defer func() {
			_ = f.Close() //nolint:errcheck // read-only file
		}()
		r = f
	}
	data, err := io.ReadAll(io.LimitReader(r, maxInputSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading candidates: %w", err)
	}
	if len(data) > maxInputSize {
		return nil, errInputTooLarge
	}
	return data, nil
}

type loadResult struct {
	pairs []candidate.Pair
	data  []byte
	err   error
}

// load reads and decodes candidates in the background. If that takes longer
// than grace, onSlow is called once so the caller can show its loading state.
func load(ctx context.Context, read func() ([]byte, error), grace time.Duration, onSlow func()) loadResult {
	done := make(chan loadResult, 1)
	go func() {
		data, err := read()
		if err != nil {
			done <- loadResult{err: err}
			return
		}
		pairs, err := decodeCandidates(data)
		done <- loadResult{pairs: pairs, data: data, err: err}
	}()

	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case r := <-done:
		return r
	case <-ctx.Done():
		return loadResult{err: ctx.Err()}
	case <-timer.C:
		onSlow()
	}

	select {
	case r := <-done:
		return r
	case <-ctx.Done():
		return loadResult{err: ctx.Err()}
	}
}
