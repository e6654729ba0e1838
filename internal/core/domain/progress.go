package domain

// Stage names reported through the progress sink.
const (
	StageParsing    = "parsing"
	StageDeriving   = "deriving"
	StageDownloaded = "downloaded"
	StageProcessing = "processing"
	StageCompleted  = "completed"
)

// Progress is a snapshot of a synchronization pass.
// Counters never decrease within a pass.
type Progress struct {
	Label string
	Stage string
	// Downloaded counts successful fetches, fallback candidates included.
	Downloaded int
	// Processed counts every task that reached a decision, failures included:
	// Processed == Uploaded + Duplicates + Failed.
	Processed int
	Uploaded  int
	// Duplicates counts renamed and already correct files.
	Duplicates int
	// Failed counts skips, failed downloads and resolver errors. A redirect
	// error after a file was produced is listed in Report.Failures only.
	Failed  int
	Total   int
	Current string
}

// TaskFailure records a task that failed or whose redirects could not be
// repaired.
type TaskFailure struct {
	CanonicalName string
	URL           string
	Reason        string
}

// Report is the final result of a synchronization pass. Progress follows
// the counting rules documented on Progress; Failures may hold more entries
// than Progress.Failed.
type Report struct {
	RunID    string
	Label    string
	Progress Progress
	// Produced lists the file names actually produced or confirmed, in order.
	Produced []string
	Failures []TaskFailure
}

// Merge folds other into r, summing counters and appending names.
func (r *Report) Merge(other *Report) {
	r.Progress.Downloaded += other.Progress.Downloaded
	r.Progress.Processed += other.Progress.Processed
	r.Progress.Uploaded += other.Progress.Uploaded
	r.Progress.Duplicates += other.Progress.Duplicates
	r.Progress.Failed += other.Progress.Failed
	r.Progress.Total += other.Progress.Total
	r.Produced = append(r.Produced, other.Produced...)
	r.Failures = append(r.Failures, other.Failures...)
}
