// Package report renders deploy results as the text report printed by
// `devops deployment artifacts`.
//
// Rendering is a pure function of the document, the Mode, and the Style:
// every call builds its own ArtifactIndex and error list and nothing is
// kept between calls, so one Renderer per writer is safe to use from
// several goroutines as long as the writers differ.
package report

import (
	"github.com/muesli/termenv"

	"github.com/rrajen/sfdx-utility-plugins/internal/constants"
	"github.com/rrajen/sfdx-utility-plugins/internal/deploystatus"
)

// Style holds the escape strings and glyphs put around each component label.
// Disabled parts are empty strings.
type Style struct {
	SuccessColor string
	ErrorColor   string
	Reset        string
	SuccessGlyph string
	ErrorGlyph   string
}

// NewStyle resolves a Style from the colors and glyphs switches.
func NewStyle(colors, glyphs bool) Style {
	var s Style
	if colors {
		s.SuccessColor = sgr(termenv.ANSIColor(constants.SGRGreen).Sequence(false))
		s.ErrorColor = sgr(termenv.ANSIColor(constants.SGRRed).Sequence(false))
		s.Reset = sgr(termenv.ResetSeq)
	}
	if glyphs {
		s.SuccessGlyph = constants.SuccessGlyph
		s.ErrorGlyph = constants.ErrorGlyph
	}
	return s
}

// PlainStyle is the Style with colors and glyphs both off.
func PlainStyle() Style {
	return Style{}
}

// Label decorates name for a record of the given kind.
func (s Style) Label(kind deploystatus.Kind, name string) string {
	if kind == deploystatus.Failure {
		return s.ErrorColor + s.ErrorGlyph + name + s.Reset
	}
	return s.SuccessColor + s.SuccessGlyph + name + s.Reset
}

func sgr(seq string) string {
	return termenv.CSI + seq + "m"
}
