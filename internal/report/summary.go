package report

import (
	"github.com/mattn/go-runewidth"

	"github.com/rrajen/sfdx-utility-plugins/internal/deploystatus"
)

// Section banners.
const (
	bannerSummary           = "****** Deployment Summary ******"
	bannerComponents        = "****** Components ******"
	bannerComponentsSummary = "****** Components Summary ******"
	bannerErrors            = "****** Errors ******"
)

// labelWidth fits the longest summary label, "Total Number of Components".
const labelWidth = 26

const indent = "    "

type summaryField struct {
	label string
	value func(deploystatus.Summary) deploystatus.Value
}

//nolint:gochecknoglobals // fixed line order of the summary block
var summaryFields = []summaryField{
	{"Created By", func(s deploystatus.Summary) deploystatus.Value { return s.CreatedByName }},
	{"Created Date", func(s deploystatus.Summary) deploystatus.Value { return s.CreatedDate }},
	{"Completed Date", func(s deploystatus.Summary) deploystatus.Value { return s.CompletedDate }},
	{"Check Only", func(s deploystatus.Summary) deploystatus.Value { return s.CheckOnly }},
	{"Run Tests Enabled", func(s deploystatus.Summary) deploystatus.Value { return s.RunTestsEnabled }},
	{"Status", func(s deploystatus.Summary) deploystatus.Value { return s.Status }},
	{"Total Number of Components", func(s deploystatus.Summary) deploystatus.Value { return s.NumberComponentsTotal }},
	{"Success Count", func(s deploystatus.Summary) deploystatus.Value { return s.NumberComponentsDeployed }},
	{"Failure Count", func(s deploystatus.Summary) deploystatus.Value { return s.NumberComponentErrors }},
}

// RenderSummary returns the summary banner followed by the nine summary
// lines. Absent values print as deploystatus.AbsentValue.
func RenderSummary(summary deploystatus.Summary) []string {
	lines := make([]string, 0, len(summaryFields)+1)
	lines = append(lines, bannerSummary)
	for _, f := range summaryFields {
		lines = append(lines, indent+runewidth.FillRight(f.label, labelWidth)+" : "+f.value(summary).String())
	}
	return lines
}
