package candidatelist

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const (
	ruleWidth = 50
	spinner   = "◌"
	bullet    = "•"
)

// Renderer writes views to a terminal.
type Renderer struct {
	heading  *color.Color
	copyOn   *color.Color
	copyOff  *color.Color
	muted    *color.Color
	item     *color.Color
	spinnerC *color.Color
}

// NewRenderer returns a Renderer. With noColor set, output is plain text
// regardless of the terminal.
func NewRenderer(noColor bool) *Renderer {
	r := &Renderer{
		heading:  color.New(color.Bold),
		copyOn:   color.New(color.FgHiWhite, color.BgRed),
		copyOff:  color.New(color.FgHiBlack),
		muted:    color.New(color.FgHiBlack),
		item:     color.New(color.Reset),
		spinnerC: color.New(color.FgHiBlack),
	}
	if noColor {
		for _, c := range []*color.Color{r.heading, r.copyOn, r.copyOff, r.muted, r.item, r.spinnerC} {
			c.DisableColor()
		}
	}
	return r
}

// Render writes v to w.
func (r *Renderer) Render(w io.Writer, v View) error {
	if _, err := io.WriteString(w, r.String(v)); err != nil {
		return fmt.Errorf("writing candidate list: %w", err)
	}
	return nil
}

// String returns the rendered view.
func (r *Renderer) String(v View) string {
	var out strings.Builder

	out.WriteString(r.heading.Sprint(Heading) + "\n")
	out.WriteString(strings.Repeat("─", ruleWidth) + "\n")

	if v.State == StateLoading {
		out.WriteString(fmt.Sprintf("  %s %s\n", r.spinnerC.Sprint(spinner), r.muted.Sprint(LoadingLabel)))
		return out.String()
	}

	if v.ShowCopy {
		label := "[" + CopyLabel + "]"
		pad := strings.Repeat(" ", ruleWidth-len(label))
		if v.CopyEnabled {
			out.WriteString(pad + r.copyOn.Sprint(label) + "\n")
		} else {
			out.WriteString(pad + r.copyOff.Sprint(label) + "\n")
		}
	}

	if v.ShowEmpty {
		out.WriteString("  " + r.muted.Sprint(EmptyMessage) + "\n")
		return out.String()
	}

	for _, line := range v.Lines {
		out.WriteString(fmt.Sprintf("  %s %s\n", bullet, r.item.Sprint(line)))
	}
	return out.String()
}

// Render writes v to w without colors.
func Render(w io.Writer, v View) error {
	return NewRenderer(true).Render(w, v)
}
