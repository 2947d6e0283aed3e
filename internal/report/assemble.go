package report

import "premalloc/internal/model"

// Assemble packages the report tables in their declared order: Job
// Summary, Allocation Detail, Allocation Summary, Source Data, then
// Match Exceptions only when at least one record did not match cleanly.
func (a *Aggregator) Assemble(records []model.ClassifiedRecord) *model.ReportSet {
	set := model.NewReportSet()
	set.Add(model.ReportJobSummary, a.JobSummary(records))
	set.Add(model.ReportAllocationDetail, a.AllocationDetail(records))
	set.Add(model.ReportAllocationSummary, a.AllocationSummary(records))
	set.Add(model.ReportSourceData, a.SourceData(records))
	if exceptions, present := a.MatchExceptions(records); present {
		set.Add(model.ReportMatchExceptions, exceptions)
	}
	return set
}
