package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReport(t *testing.T) {
	results := []BatchResult{
		{
			FileName: "a.csv",
			Created:  3,
			Skipped:  1,
			Errors: []ImportError{
				{Row: 2, Field: "phone_number", Message: "missing required field"},
			},
		},
		{
			FileName: "b.csv",
			Created:  1,
			Skipped:  2,
			Errors: []ImportError{
				{Row: 1, Message: "rejected"},
				{Message: "b.csv: no header row found"},
			},
		},
	}

	report := BuildReport(EntityParents, results)

	assert.Equal(t, EntityParents, report.EntityType)
	assert.Equal(t, 4, report.TotalSuccess)
	assert.Equal(t, 3, report.TotalFailed)
	assert.Len(t, report.PerFile, 2)

	require.Len(t, report.AllErrors, 3)
	assert.Equal(t, "Row 2, phone_number: missing required field", report.AllErrors[0])
	assert.Equal(t, "Row 1: rejected", report.AllErrors[1])
	assert.Equal(t, "b.csv: no header row found", report.AllErrors[2])
}

func TestBuildReport_Empty(t *testing.T) {
	report := BuildReport(EntityStaff, nil)
	assert.Equal(t, 0, report.TotalSuccess)
	assert.Equal(t, 0, report.TotalFailed)
	assert.Empty(t, report.AllErrors)
}

func TestReportSummary(t *testing.T) {
	clean := &Report{TotalSuccess: 5}
	assert.Equal(t, "created 5", clean.Summary())

	mixed := &Report{TotalSuccess: 5, TotalFailed: 2}
	assert.Equal(t, "created 5, skipped 2", mixed.Summary())
}
