package report

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrajen/sfdx-utility-plugins/internal/deploystatus"
)

func record(name, componentType string) deploystatus.ComponentRecord {
	r := deploystatus.ComponentRecord{FullName: deploystatus.Present(name)}
	if componentType != "" {
		r.ComponentType = deploystatus.Present(componentType)
	}
	return r
}

func TestBuildArtifactIndex_GroupsByType(t *testing.T) {
	t.Parallel()

	successes := []deploystatus.ComponentRecord{
		record("Foo", "ApexClass"),
		record("accountCard", "LightningComponentBundle"),
		record("package.xml", ""),
		record("Bar", "ApexClass"),
	}
	failures := []deploystatus.ComponentRecord{
		record("Baz", "ApexClass"),
		record("Missing", ""),
	}

	index := BuildArtifactIndex(successes, failures, NewStyle(false, true))

	assert.Equal(t, ArtifactIndex{
		"ApexClass":                {"✔ Foo", "✔ Bar", "✖ Baz"},
		"LightningComponentBundle": {"✔ accountCard"},
	}, index)
	assert.Equal(t, 4, index.Len())
	assert.Equal(t, []string{"ApexClass", "LightningComponentBundle"}, index.Types())
}

func TestBuildArtifactIndex_EveryTypedRecordOnce(t *testing.T) {
	t.Parallel()

	successes := []deploystatus.ComponentRecord{
		record("A", "T1"), record("B", "T2"), record("A", "T1"), record("C", ""),
	}
	failures := []deploystatus.ComponentRecord{
		record("D", "T2"), record("E", "t2"), record("F", ""),
	}

	index := BuildArtifactIndex(successes, failures, PlainStyle())

	var got []string
	for _, labels := range index {
		got = append(got, labels...)
	}
	sort.Strings(got)
	assert.Equal(t, []string{"A", "A", "B", "D", "E"}, got)
	assert.Len(t, index, 3, "type names are case-sensitive")
}

func TestBuildArtifactIndex_AbsentFullName(t *testing.T) {
	t.Parallel()

	r := deploystatus.ComponentRecord{ComponentType: deploystatus.Present("ApexClass")}
	index := BuildArtifactIndex([]deploystatus.ComponentRecord{r}, nil, PlainStyle())
	assert.Equal(t, []string{"undefined"}, index["ApexClass"])
}

func TestRenderArtifacts_Full(t *testing.T) {
	t.Parallel()

	index := ArtifactIndex{
		"LightningComponentBundle": {"accountCard"},
		"ApexClass":                {"Foo", "Bar", "Baz"},
	}

	assert.Equal(t, []string{
		"",
		"****** Components ******",
		"ApexClass",
		"    Bar",
		"    Baz",
		"    Foo",
		"LightningComponentBundle",
		"    accountCard",
	}, RenderArtifacts(index, ModeFull))
	assert.Equal(t, []string{"Foo", "Bar", "Baz"}, index["ApexClass"], "index is not reordered")
}

func TestRenderArtifacts_FullSortsDecoratedLabels(t *testing.T) {
	t.Parallel()

	style := NewStyle(true, true)
	successes := []deploystatus.ComponentRecord{record("Alpha", "ApexClass")}
	failures := []deploystatus.ComponentRecord{record("Zulu", "ApexClass")}

	lines := RenderArtifacts(BuildArtifactIndex(successes, failures, style), ModeFull)

	require.Len(t, lines, 5)
	assert.Equal(t, "    \x1b[31m✖ Zulu\x1b[0m", lines[3], "red escape sorts before green")
	assert.Equal(t, "    \x1b[32m✔ Alpha\x1b[0m", lines[4])
}

func TestRenderArtifacts_Summary(t *testing.T) {
	t.Parallel()

	successes := []deploystatus.ComponentRecord{record("Foo", "ApexClass"), record("Bar", "ApexClass")}
	failures := []deploystatus.ComponentRecord{record("cmp", "LightningComponent")}

	lines := RenderArtifacts(BuildArtifactIndex(successes, failures, NewStyle(true, true)), ModeSummary)

	assert.Equal(t, []string{
		"",
		"****** Components Summary ******",
		"    ApexClass (2)",
		"    LightningComponent (1)",
	}, lines)
}

func TestRenderArtifacts_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, RenderArtifacts(ArtifactIndex{}, ModeFull))
	assert.Empty(t, RenderArtifacts(nil, ModeSummary))
}

func TestMode_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "full", ModeFull.String())
	assert.Equal(t, "summary", ModeSummary.String())
}
