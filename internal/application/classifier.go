package application

import (
	"strings"

	"github.com/ericfisherdev/devops-agent/internal/domain/model"
)

// Classification is the result of classifying a failed job.
type Classification struct {
	Category model.FailureCategory
	NextStep string
}

type classificationRule struct {
	keywords []string
	result   Classification
}

// classificationRules are evaluated in order; the first match wins. A job named
// "test build" is therefore classified as tests, not build.
var classificationRules = []classificationRule{
	{
		keywords: []string{"lint", "eslint", "flake8", "ruff"},
		result: Classification{
			Category: model.CategoryLint,
			NextStep: "Run the linter locally and fix the first reported violation.",
		},
	},
	{
		keywords: []string{"test", "pytest", "jest", "go test"},
		result: Classification{
			Category: model.CategoryTests,
			NextStep: "Re-run the failing test locally; check recent changes and fixtures.",
		},
	},
	{
		keywords: []string{"build", "compile", "tsc"},
		result: Classification{
			Category: model.CategoryBuild,
			NextStep: "Check the first compilation error; verify toolchain and dependencies.",
		},
	},
	{
		keywords: []string{"install", "dependency", "npm ci", "pip install"},
		result: Classification{
			Category: model.CategoryDependencies,
			NextStep: "Check dependency resolution/network errors; verify lockfiles and registry access.",
		},
	},
}

var unknownClassification = Classification{
	Category: model.CategoryUnknown,
	NextStep: "Open the failed job logs and start from the first error line.",
}

// Classify maps a failed step and its job to a failure category and a
// remediation hint using case-insensitive substring matching over the job
// name followed by the step name. Empty names are valid input.
func Classify(stepName, jobName string) Classification {
	haystack := strings.ToLower(jobName + "\n" + stepName)

	for _, rule := range classificationRules {
		for _, kw := range rule.keywords {
			if strings.Contains(haystack, kw) {
				return rule.result
			}
		}
	}

	return unknownClassification
}

// DeriveFindings classifies every failed job by its first failed step.
// The result preserves job order and contains exactly one entry per failed job.
func DeriveFindings(jobs []model.Job) []model.Finding {
	findings := make([]model.Finding, 0, len(jobs))

	for _, j := range jobs {
		if !j.Failed() {
			continue
		}

		step, _ := j.FirstFailedStep()
		c := Classify(step.Name, j.Name)

		findings = append(findings, model.Finding{
			JobName:  j.Name,
			JobURL:   j.URL,
			StepName: step.Name,
			Category: c.Category,
			NextStep: c.NextStep,
		})
	}

	return findings
}
