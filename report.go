package main

import (
	"os"
	"time"

	"github.com/aegis-harvest/api-smoke-tests/framework"

	"gopkg.in/yaml.v3"
)

const (
	stepPassed       = "passed"
	stepFailed       = "failed"
	stepNotAttempted = "not attempted"
)

type runReport struct {
	RunID     string       `yaml:"run_id"`
	BaseURL   string       `yaml:"base_url"`
	StartedAt time.Time    `yaml:"started_at"`
	Passed    bool         `yaml:"passed"`
	Steps     []stepReport `yaml:"steps"`
}

type stepReport struct {
	Name       string      `yaml:"name"`
	Result     string      `yaml:"result"`
	StatusCode int         `yaml:"status_code,omitempty"`
	Payload    interface{} `yaml:"payload,omitempty"`
	Errors     []string    `yaml:"errors,omitempty"`
}

func buildReport(runID, baseURL string, startedAt time.Time, results framework.Results) runReport {
	r := runReport{
		RunID:     runID,
		BaseURL:   baseURL,
		StartedAt: startedAt.UTC(),
		Passed:    results.OK(),
	}
	for _, t := range results.Tests {
		step := stepReport{
			Name:       t.TestID.String(),
			Result:     stepPassed,
			StatusCode: t.StatusCode,
			Payload:    t.Payload.AsArbitraryValue(),
		}
		if t.Failed() {
			step.Result = stepFailed
		}
		for _, err := range t.Errors {
			step.Errors = append(step.Errors, err.Error())
		}
		r.Steps = append(r.Steps, step)
	}
	for _, id := range results.NotAttempted {
		r.Steps = append(r.Steps, stepReport{Name: id.String(), Result: stepNotAttempted})
	}
	return r
}

func writeReport(path string, r runReport) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
