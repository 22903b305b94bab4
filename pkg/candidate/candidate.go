// Package candidate models scheduling candidates and the time-of-day window
// used to narrow them down for display.
package candidate

import "strings"

const (
	dateLen       = 10 // "2006-01-02"
	timeOfDayFrom = 11 // "15:04" starts after the 'T' separator
	timeOfDayTo   = 16
)

// Pair is a proposed meeting slot: [start, end], each formatted as
// "YYYY-MM-DDTHH:mm:ss". It is a slice rather than a fixed array so that
// malformed input keeps its arity and can be rejected or degraded later.
type Pair []string

// TimeWindow is an inclusive time-of-day bound applied to every candidate
// regardless of its date. Both bounds are "HH:mm" strings and are compared
// lexicographically.
type TimeWindow struct {
	MinTime string `json:"min_time"`
	MaxTime string `json:"max_time"`
}

// Valid reports whether the pair has exactly a start and an end.
func (p Pair) Valid() bool {
	return len(p) == 2
}

// SameDay reports whether start and end share the same date prefix.
// Pairs of the wrong arity are never same-day.
func (p Pair) SameDay() bool {
	if !p.Valid() {
		return false
	}
	return substring(p[0], 0, dateLen) == substring(p[1], 0, dateLen)
}

// TimesOfDay returns the "HH:mm" portions of start and end.
func (p Pair) TimesOfDay() (start, end string) {
	if !p.Valid() {
		return "", ""
	}
	return substring(p[0], timeOfDayFrom, timeOfDayTo), substring(p[1], timeOfDayFrom, timeOfDayTo)
}

// Contains reports whether a same-day range [start, end] lies inside the window.
func (w TimeWindow) Contains(start, end string) bool {
	return start >= w.MinTime && end <= w.MaxTime
}

// Matches reports whether the pair survives the window filter.
func (w TimeWindow) Matches(p Pair) bool {
	if !p.Valid() {
		return false
	}
	// Different dates means the slot spans more than one calendar day.
	if !p.SameDay() {
		return false
	}
	start, end := p.TimesOfDay()
	// End before start wraps past midnight.
	if end < start {
		return false
	}
	return w.Contains(start, end)
}

// Filter returns the candidates that fall inside the window, in their
// original order. The input is never modified.
func Filter(pairs []Pair, w TimeWindow) []Pair {
	filtered := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		if w.Matches(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// FromStrings converts raw string slices, as decoded from JSON, into pairs.
func FromStrings(raw [][]string) []Pair {
	pairs := make([]Pair, len(raw))
	for i, r := range raw {
		pairs[i] = Pair(r)
	}
	return pairs
}

// Join concatenates formatted candidates one per line.
func Join(lines []string) string {
	return strings.Join(lines, "\n")
}

// substring clamps both indexes to the string length, so short or empty
// inputs yield shorter or empty results instead of panicking.
func substring(s string, from, to int) string {
	if from > len(s) {
		from = len(s)
	}
	if to > len(s) {
		to = len(s)
	}
	if from > to {
		from, to = to, from
	}
	return s[from:to]
}
