package domain

import "time"

// LedgerEntry is the persisted result of one asset task.
type LedgerEntry struct {
	Fingerprint   string
	URL           string
	CanonicalName string
	Outcome       string
	FinalName     string
	Digest        string
	Size          int64
	Error         string
	RecordedAt    time.Time
}

// RunSummary describes a finished or running synchronization.
type RunSummary struct {
	ID         string
	Label      string
	StartedAt  time.Time
	FinishedAt time.Time
	Processed  int
	Uploaded   int
	Duplicates int
	Failed     int
	Total      int
}
