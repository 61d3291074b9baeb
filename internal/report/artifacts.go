package report

import (
	"fmt"
	"sort"

	"github.com/rrajen/sfdx-utility-plugins/internal/deploystatus"
)

// Mode selects how the components block is rendered.
type Mode int

const (
	// ModeFull lists every component under its type.
	ModeFull Mode = iota
	// ModeSummary prints one count line per type.
	ModeSummary
)

func (m Mode) String() string {
	if m == ModeSummary {
		return "summary"
	}
	return "full"
}

// ArtifactIndex maps a component type to the decorated labels of its components.
type ArtifactIndex map[string][]string

// Types returns the component types in ascending byte order.
func (a ArtifactIndex) Types() []string {
	types := make([]string, 0, len(a))
	for t := range a {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Len returns the number of labels across all types.
func (a ArtifactIndex) Len() int {
	n := 0
	for _, labels := range a {
		n += len(labels)
	}
	return n
}

// BuildArtifactIndex groups successes then failures by component type, each
// in input order. Records without a component type are left out.
func BuildArtifactIndex(successes, failures []deploystatus.ComponentRecord, style Style) ArtifactIndex {
	index := make(ArtifactIndex)
	add := func(records []deploystatus.ComponentRecord, kind deploystatus.Kind) {
		for _, r := range records {
			if !r.HasType() {
				continue
			}
			t := r.ComponentType.Text
			index[t] = append(index[t], style.Label(kind, r.FullName.String()))
		}
	}
	add(successes, deploystatus.Success)
	add(failures, deploystatus.Failure)
	return index
}

// RenderArtifacts renders the components block. Nothing is printed for an
// empty index in either mode.
//
// Labels are sorted as decorated strings, so with colors on every success
// (ESC[32m) sorts after every failure (ESC[31m) of the same type.
func RenderArtifacts(index ArtifactIndex, mode Mode) []string {
	if len(index) == 0 {
		return nil
	}

	types := index.Types()
	if mode == ModeSummary {
		lines := make([]string, 0, len(types)+2)
		lines = append(lines, "", bannerComponentsSummary)
		for _, t := range types {
			lines = append(lines, fmt.Sprintf("%s%s (%d)", indent, t, len(index[t])))
		}
		return lines
	}

	lines := make([]string, 0, len(types)+index.Len()+2)
	lines = append(lines, "", bannerComponents)
	for _, t := range types {
		labels := append([]string(nil), index[t]...)
		sort.Strings(labels)
		lines = append(lines, t)
		for _, label := range labels {
			lines = append(lines, indent+label)
		}
	}
	return lines
}
