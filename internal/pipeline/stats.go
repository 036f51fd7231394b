package pipeline

// RunStats tracks aggregate counters across a run.
type RunStats struct {
	Total      int // paths selected
	Planned    int // paths whose name changes
	Unchanged  int // paths the program left alone
	Unresolved int // date sort only: paths with no date
	Renamed    int
	Failed     int
}

func logSummary(log Logger, s *RunStats, dryRun bool) {
	if dryRun {
		log.Info("Summary: %d selected, %d would be renamed, %d unchanged", s.Total, s.Planned, s.Unchanged)
		return
	}
	log.Info("Summary: %d selected, %d renamed, %d unchanged, %d failed", s.Total, s.Renamed, s.Unchanged, s.Failed)
}
