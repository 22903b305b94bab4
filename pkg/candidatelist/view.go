// Package candidatelist derives and renders the candidate list view and
// implements its copy-to-clipboard action.
package candidatelist

import (
	"github.com/codeGROOVE-dev/slotlist/pkg/candidate"
)

// State is the visual state of the list. It is derived from Props on every
// render and never stored.
type State int

const (
	// StateLoading means candidates are still being computed upstream.
	StateLoading State = iota
	// StateReady means the filtered list (or the empty-state message) is shown.
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Display strings.
const (
	Heading      = "Candidate Dates"
	LoadingLabel = "Loading..."
	CopyLabel    = "copy"
	EmptyMessage = "No candidates."
	CopiedNotice = "Copied candidate schedule!"
)

// Props is everything the caller owns. The list keeps nothing between renders.
type Props struct {
	Candidates []candidate.Pair
	Window     candidate.TimeWindow
	IsLoading  bool
}

// View is the fully derived output for one render.
type View struct {
	State State
	// Lines holds the formatted, filtered candidates. Always empty while loading.
	Lines []string
	// ShowCopy is false while loading.
	ShowCopy bool
	// CopyEnabled is false when there is nothing to copy.
	CopyEnabled bool
	// ShowEmpty is true when ready with no matching candidates.
	ShowEmpty bool
}

// Build derives the view for props using a default formatter.
func Build(props Props) View {
	return BuildWith(candidate.NewFormatter(), props)
}

// BuildWith derives the view for props. Filtering and formatting run on every
// call; nothing is carried over from previous renders.
func BuildWith(f *candidate.Formatter, props Props) View {
	if props.IsLoading {
		return View{State: StateLoading}
	}
	lines := f.Candidates(candidate.Filter(props.Candidates, props.Window))
	return View{
		State:       StateReady,
		Lines:       lines,
		ShowCopy:    true,
		CopyEnabled: len(lines) > 0,
		ShowEmpty:   len(lines) == 0,
	}
}
