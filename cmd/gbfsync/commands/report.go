package commands

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"go.trai.ch/gbfsync/internal/core/domain"
)

func printReport(w io.Writer, report *domain.Report) {
	p := report.Progress
	_, _ = fmt.Fprintf(w, "%s: %d uploaded, %d duplicates, %d failed of %d\n",
		report.Label, p.Uploaded, p.Duplicates, p.Failed, p.Total)
	for _, name := range report.Produced {
		_, _ = fmt.Fprintf(w, "  + %s\n", name)
	}
	for _, f := range report.Failures {
		_, _ = fmt.Fprintf(w, "  - %s: %s\n", f.CanonicalName, f.Reason)
	}
}

func printRuns(w io.Writer, runs []domain.RunSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "STARTED\tLABEL\tUPLOADED\tDUPLICATES\tFAILED\tTOTAL\tSTATUS")
	for _, run := range runs {
		state := "running"
		if !run.FinishedAt.IsZero() {
			state = run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String()
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			run.StartedAt.Format(time.DateTime), run.Label,
			run.Uploaded, run.Duplicates, run.Failed, run.Total, state)
	}
	return tw.Flush()
}
