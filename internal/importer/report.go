package importer

import "fmt"

// BuildReport aggregates per-file results into the report handed back to
// the caller. Counts are summed and every structured error is additionally
// rendered as a display string; the structured data is always retained
// first, the strings are a derived view.
func BuildReport(entityType EntityType, results []BatchResult) *Report {
	report := &Report{
		EntityType: entityType,
		PerFile:    results,
	}

	for _, res := range results {
		report.TotalSuccess += res.Created
		report.TotalFailed += res.Skipped
		for _, e := range res.Errors {
			report.AllErrors = append(report.AllErrors, e.String())
		}
	}

	return report
}

// Summary renders the aggregate toast line: "created N, skipped M".
func (r *Report) Summary() string {
	if r.TotalFailed == 0 {
		return fmt.Sprintf("created %d", r.TotalSuccess)
	}
	return fmt.Sprintf("created %d, skipped %d", r.TotalSuccess, r.TotalFailed)
}
