package suite

import (
	"fmt"
	"io"
	"time"

	"playground-e2e/internal/domain/entity"

	"github.com/fatih/color"
)

type mark struct {
	label string
	style *color.Color
}

// Colors are dropped automatically when stdout is not a terminal.
var statusMarks = map[entity.ScenarioStatus]mark{
	entity.ScenarioStatusPassed: {"ok", color.New(color.FgGreen)},
	entity.ScenarioStatusFlaky:  {"flaky", color.New(color.FgYellow)},
	entity.ScenarioStatusFailed: {"FAIL", color.New(color.FgRed, color.Bold)},
}

func statusMark(s entity.ScenarioStatus) string {
	m, ok := statusMarks[s]
	if !ok {
		return fmt.Sprintf("%-5s", s)
	}
	return m.style.Sprintf("%-5s", m.label)
}

// WriteList prints one line per scenario followed by failure details and a
// totals line.
func WriteList(w io.Writer, report *entity.SuiteReport) error {
	for i, res := range report.Results {
		if _, err := fmt.Fprintf(w, "  %s %d) %s (%s)\n", statusMark(res.Status), i+1, res.Name, round(res.Duration)); err != nil {
			return err
		}
		if res.Status == entity.ScenarioStatusPassed {
			continue
		}
		for _, a := range res.Attempts {
			if a.Err == nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "        attempt %d: %v\n", a.Number, a.Err); err != nil {
				return err
			}
			for _, p := range a.Artifacts {
				if _, err := fmt.Fprintf(w, "          artifact: %s\n", p); err != nil {
					return err
				}
			}
		}
	}
	_, err := fmt.Fprintf(w, "\n  %d passed, %d flaky, %d failed (%s)\n",
		report.Count(entity.ScenarioStatusPassed),
		report.Count(entity.ScenarioStatusFlaky),
		report.Count(entity.ScenarioStatusFailed),
		round(report.Duration),
	)
	return err
}

func round(d time.Duration) time.Duration {
	return d.Round(10 * time.Millisecond)
}
