package report

import (
	"io"
	"strings"

	"github.com/rrajen/sfdx-utility-plugins/internal/deploystatus"
)

// Options configures a Renderer.
type Options struct {
	Mode  Mode
	Style Style
}

// Renderer writes text reports to a single writer.
type Renderer struct {
	w    io.Writer
	opts Options
}

// NewRenderer creates a Renderer writing to w.
func NewRenderer(w io.Writer, opts Options) *Renderer {
	return &Renderer{w: w, opts: opts}
}

// Lines builds the complete report for one deployment: the id header, the
// summary block, the components block, and the errors block. An empty
// document yields the header and an all-absent summary.
func (r *Renderer) Lines(id string, doc *deploystatus.Document) []string {
	successes := deploystatus.ExtractRecords(doc, deploystatus.Success)
	failures := deploystatus.ExtractRecords(doc, deploystatus.Failure)

	lines := []string{"", "Deployment Result for Id " + id, ""}
	lines = append(lines, RenderSummary(deploystatus.Extract(doc))...)
	lines = append(lines, RenderArtifacts(BuildArtifactIndex(successes, failures, r.opts.Style), r.opts.Mode)...)
	lines = append(lines, RenderErrors(BuildErrorList(failures))...)
	return lines
}

// Render writes the report for one deployment, one line per report line.
func (r *Renderer) Render(id string, doc *deploystatus.Document) error {
	var b strings.Builder
	for _, line := range r.Lines(id, doc) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}
