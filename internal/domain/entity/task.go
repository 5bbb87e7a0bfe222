package entity

import "time"

type ScenarioStatus string

const (
	ScenarioStatusPending ScenarioStatus = "pending"
	ScenarioStatusRunning ScenarioStatus = "running"
	ScenarioStatusPassed  ScenarioStatus = "passed"
	ScenarioStatusFlaky   ScenarioStatus = "flaky"
	ScenarioStatusFailed  ScenarioStatus = "failed"
)

// AttemptResult describes one execution of a scenario in a fresh browser session.
type AttemptResult struct {
	Number    int
	Err       error
	Duration  time.Duration
	Artifacts []string
}

type ScenarioResult struct {
	Name     string
	Status   ScenarioStatus
	Attempts []AttemptResult
	Duration time.Duration
}

// Err returns the error of the last attempt, nil when the scenario passed.
func (r ScenarioResult) Err() error {
	if len(r.Attempts) == 0 || r.Status == ScenarioStatusPassed || r.Status == ScenarioStatusFlaky {
		return nil
	}
	return r.Attempts[len(r.Attempts)-1].Err
}

// SuiteReport collects the scenario results of one run.
type SuiteReport struct {
	RunID    string
	Results  []ScenarioResult
	Duration time.Duration
}

func (r *SuiteReport) Count(status ScenarioStatus) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// OK reports whether no scenario failed. Flaky scenarios count as passing.
func (r *SuiteReport) OK() bool {
	return r.Count(ScenarioStatusFailed) == 0
}
