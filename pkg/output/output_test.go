package output

import (
	"time"

	"traindump/pkg/report"
)

func createTestReport() *report.Report {
	start := time.Date(2020, 12, 4, 20, 54, 0, 0, time.UTC)
	reset := report.DecomposeSeconds(1000)
	return &report.Report{
		StartDate:  "2020-12-04 20:54:00",
		Source:     "2020-12-04_20:54:00_v2.dump",
		HeaderMode: report.HeaderModeAware,
		LastReset:  &reset,
		Events: []report.Event{
			{
				Number:     1,
				Value:      128,
				Date:       start.Add(128 * time.Second),
				DateString: "2020-12-04 20:56:08",
				Elapsed:    report.DecomposeSeconds(128),
				LineNum:    3,
			},
			{
				Number:     2,
				Value:      196,
				Date:       start.Add(196 * time.Second),
				DateString: "2020-12-04 20:57:16",
				Elapsed:    report.DecomposeSeconds(196),
				LineNum:    4,
			},
		},
		FinalState:   report.StateDone,
		SentinelLine: 5,
	}
}
