package report

import (
	"github.com/rrajen/sfdx-utility-plugins/internal/deploystatus"
)

// ErrorEntry is a failed component as shown in the errors block.
type ErrorEntry struct {
	ComponentName Value
	ComponentType Value
	Problem       Value
	ProblemType   Value
	LineNumber    Position
	ColumnNumber  Position
}

// Value and Position are re-exported so callers building entries by hand
// need one import.
type (
	Value    = deploystatus.Value
	Position = deploystatus.Position
)

// String renders the entry as "<type>/<name>(<line>:<col>) : <problem>", or
// without the position when no line number was reported. Positions print as
// read; a missing column prints as undefined.
func (e ErrorEntry) String() string {
	head := e.ComponentType.String() + "/" + e.ComponentName.String()
	if e.LineNumber.IsSet() {
		head += "(" + e.LineNumber.String() + ":" + e.ColumnNumber.String() + ")"
	}
	return head + " : " + e.Problem.String()
}

// BuildErrorList returns one entry per failure in input order, typed or not.
func BuildErrorList(failures []deploystatus.ComponentRecord) []ErrorEntry {
	entries := make([]ErrorEntry, 0, len(failures))
	for _, f := range failures {
		entries = append(entries, ErrorEntry{
			ComponentName: f.FullName,
			ComponentType: f.ComponentType,
			Problem:       f.Problem,
			ProblemType:   f.ProblemType,
			LineNumber:    f.LineNumber,
			ColumnNumber:  f.ColumnNumber,
		})
	}
	return entries
}

// RenderErrors renders the errors block in entry order, or nothing when
// there are no entries.
func RenderErrors(entries []ErrorEntry) []string {
	if len(entries) == 0 {
		return nil
	}
	lines := make([]string, 0, len(entries)+2)
	lines = append(lines, "", bannerErrors)
	for _, e := range entries {
		lines = append(lines, e.String())
	}
	return lines
}
