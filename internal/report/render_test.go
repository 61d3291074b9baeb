package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrajen/sfdx-utility-plugins/internal/deploystatus"
)

const testID = "0Afq000001HzQ1qCAF"

func parse(t *testing.T, input string) *deploystatus.Document {
	t.Helper()
	doc, err := deploystatus.Parse([]byte(input))
	require.NoError(t, err)
	return doc
}

func render(t *testing.T, doc *deploystatus.Document, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, opts).Render(testID, doc))
	return buf.String()
}

func TestRender_ScenarioA_FullPlain(t *testing.T) {
	t.Parallel()

	doc := parse(t, `{
		"status": "Succeeded",
		"numberComponentsTotal": 2,
		"numberComponentsDeployed": 2,
		"numberComponentErrors": 0,
		"componentSuccesses": [
			{"fullName": "Foo", "componentType": "ApexClass"},
			{"fullName": "Bar", "componentType": "ApexClass"}
		]
	}`)

	want := strings.Join([]string{
		"",
		"Deployment Result for Id " + testID,
		"",
		"****** Deployment Summary ******",
		"    Created By                 : undefined",
		"    Created Date               : undefined",
		"    Completed Date             : undefined",
		"    Check Only                 : undefined",
		"    Run Tests Enabled          : undefined",
		"    Status                     : Succeeded",
		"    Total Number of Components : 2",
		"    Success Count              : 2",
		"    Failure Count              : 0",
		"",
		"****** Components ******",
		"ApexClass",
		"    Bar",
		"    Foo",
		"",
	}, "\n")

	assert.Equal(t, want, render(t, doc, Options{Mode: ModeFull, Style: PlainStyle()}))
}

func TestRender_ScenarioB_ErrorLocation(t *testing.T) {
	t.Parallel()

	doc := parse(t, `{"componentFailures": [
		{"fullName": "Baz", "componentType": "ApexClass", "problem": "Compile error", "lineNumber": 5, "columnNumber": 12}
	]}`)

	out := render(t, doc, Options{Mode: ModeFull, Style: NewStyle(false, true)})

	assert.Contains(t, out, "\n****** Errors ******\nApexClass/Baz(5:12) : Compile error\n")
	assert.Contains(t, out, "ApexClass\n    ✖ Baz\n")
}

func TestRender_ScenarioC_UntypedFailure(t *testing.T) {
	t.Parallel()

	doc := parse(t, `{"componentFailures": [
		{"fullName": "package.xml", "problem": "Unknown type"}
	]}`)

	out := render(t, doc, Options{Mode: ModeFull, Style: PlainStyle()})

	assert.NotContains(t, out, "****** Components ******")
	assert.True(t, strings.HasSuffix(out, "\n****** Errors ******\nundefined/package.xml : Unknown type\n"))
}

func TestRender_ScenarioD_SummaryMode(t *testing.T) {
	t.Parallel()

	doc := parse(t, `{
		"componentSuccesses": [
			{"fullName": "Foo", "componentType": "ApexClass"},
			{"fullName": "Bar", "componentType": "ApexClass"}
		],
		"componentFailures": [
			{"fullName": "cmp", "componentType": "LightningComponent", "problem": "nope"}
		]
	}`)

	out := render(t, doc, Options{Mode: ModeSummary, Style: NewStyle(true, true)})

	assert.Contains(t, out, "\n****** Components Summary ******\n    ApexClass (2)\n    LightningComponent (1)\n")
	assert.NotContains(t, out, "Foo")
	assert.NotContains(t, out, "Bar")
	assert.Contains(t, out, "LightningComponent/cmp : nope")
}

func TestRender_ScenarioE_Raw(t *testing.T) {
	t.Parallel()

	input := `{"status":"Succeeded","componentSuccesses":[{"fullName":"Foo","componentType":"ApexClass"}]}`
	doc := parse(t, input)

	assert.Same(t, doc, RenderRaw(doc))

	var buf bytes.Buffer
	require.NoError(t, WriteRaw(&buf, RenderRaw(doc), RawJSON))
	assert.JSONEq(t, input, buf.String())
	assert.NotContains(t, buf.String(), "Deployment Result")
}

func TestRender_EmptyDocument(t *testing.T) {
	t.Parallel()

	doc := parse(t, "")
	out := render(t, doc, Options{Mode: ModeFull, Style: NewStyle(true, true)})

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 13)
	for _, line := range lines[4:] {
		assert.True(t, strings.HasSuffix(line, ": undefined"), line)
	}
}

func TestRender_Fixture(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile(filepath.Join("..", "deploystatus", "testdata", "sf_report.json"))
	require.NoError(t, err)
	doc, ok := parse(t, string(data)).Child("result")
	require.True(t, ok)

	out := render(t, doc, Options{Mode: ModeFull, Style: NewStyle(false, true)})

	assert.Contains(t, out, "    Created By                 : Raj Rajen\n")
	assert.Contains(t, out, "    Status                     : Failed\n")
	assert.Contains(t, out, "ApexClass\n    ✔ Bar\n    ✔ Foo\n    ✖ Baz\n")
	assert.Contains(t, out, "ApexClass/Baz(5:12) : Compile error\n")
	assert.Contains(t, out, "/package.xml : An object 'Foo__c'")
}

func TestRender_Idempotent(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile(filepath.Join("..", "deploystatus", "testdata", "sf_report.json"))
	require.NoError(t, err)
	doc := parse(t, string(data))

	for _, mode := range []Mode{ModeFull, ModeSummary} {
		opts := Options{Mode: mode, Style: NewStyle(true, true)}
		assert.Equal(t, render(t, doc, opts), render(t, doc, opts))
	}
}

func TestRender_ConcurrentIndependentWriters(t *testing.T) {
	t.Parallel()

	doc := parse(t, `{"componentSuccesses": [{"fullName": "Foo", "componentType": "ApexClass"}]}`)
	want := render(t, doc, Options{Style: PlainStyle()})

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var buf bytes.Buffer
			if err := NewRenderer(&buf, Options{Style: PlainStyle()}).Render(testID, doc); err == nil {
				results[i] = buf.String()
			}
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, os.ErrClosed }

func TestRender_WriteError(t *testing.T) {
	t.Parallel()

	err := NewRenderer(failingWriter{}, Options{}).Render(testID, parse(t, "{}"))
	require.ErrorIs(t, err, os.ErrClosed)
}
