package application

import (
	"fmt"
	"strings"

	"github.com/ericfisherdev/devops-agent/internal/domain/model"
)

// StickyMarker identifies the agent's status comment on a pull request.
// It must never change: it is the only key used to find the comment again.
const StickyMarker = "<!-- devops-agent:sticky -->"

const (
	commentHeading     = "## devops-agent — CI observation (read-only)"
	successLine        = "✅ No failed or cancelled jobs detected for this run."
	readOnlyDisclaimer = "_This agent is read-only: it does not deploy, restart, scale, or store credentials._"
)

// ComposeComment renders the status comment for a run. findings must be the
// failed subset of jobs, in job order (see DeriveFindings). The output is a
// pure function of its inputs and always starts with StickyMarker.
func ComposeComment(run model.WorkflowRun, jobs []model.Job, findings []model.Finding) string {
	var failed, cancelled []model.Job
	for _, j := range jobs {
		switch {
		case j.Failed():
			failed = append(failed, j)
		case j.Cancelled():
			cancelled = append(cancelled, j)
		}
	}

	workflowName := run.Name
	if workflowName == "" {
		workflowName = "workflow"
	}

	lines := []string{
		StickyMarker,
		commentHeading,
		"",
		"- **Workflow**: " + workflowName,
	}
	if run.URL != "" {
		lines = append(lines, "- **Run**: "+run.URL)
	}
	lines = append(lines,
		"- **State**: "+FormatRunState(run),
		"- **Conclusion**: `"+displayConclusion(run)+"`",
		"",
	)

	if len(failed) == 0 && len(cancelled) == 0 {
		lines = append(lines, successLine)
		return strings.Join(lines, "\n")
	}

	if len(failed) > 0 {
		lines = append(lines, "### Failures")
		for _, f := range findings {
			lines = append(lines, "- **Job**: "+markdownLink(f.JobName, f.JobURL))
			if f.StepName != "" {
				lines = append(lines, "  - **First failed step**: "+f.StepName)
			}
			if f.Category != "" {
				lines = append(lines, fmt.Sprintf("  - **Category**: `%s`", f.Category))
			}
			if f.NextStep != "" {
				lines = append(lines, "  - **Next step**: "+f.NextStep)
			}
		}
		lines = append(lines, "")
	}

	if len(cancelled) > 0 {
		lines = append(lines, "### Cancelled")
		for _, j := range cancelled {
			lines = append(lines, "- "+markdownLink(j.Name, j.URL))
		}
		lines = append(lines, "")
	}

	lines = append(lines, readOnlyDisclaimer)
	return strings.Join(lines, "\n")
}

// FormatRunState describes where the run is in its lifecycle in plain words.
func FormatRunState(run model.WorkflowRun) string {
	switch run.Status {
	case model.RunStatusInProgress:
		return "In progress (final result pending)"
	case model.RunStatusQueued, model.RunStatusWaiting, model.RunStatusPending, model.RunStatusRequested:
		return "Queued (final result pending)"
	case model.RunStatusCompleted:
		return "Completed — " + describeConclusion(run.Conclusion)
	default:
		return "Unknown"
	}
}

func describeConclusion(c model.Conclusion) string {
	switch c {
	case model.ConclusionSuccess:
		return "Successful"
	case model.ConclusionFailure:
		return "Failed"
	case model.ConclusionCancelled:
		return "Cancelled"
	case model.ConclusionSkipped:
		return "Skipped"
	case model.ConclusionTimedOut:
		return "Timed out"
	case "":
		return "No conclusion"
	default:
		return string(c)
	}
}

// displayConclusion reports "pending" while GitHub has not set a conclusion
// on a run that is still going.
func displayConclusion(run model.WorkflowRun) string {
	if run.Conclusion != "" {
		return string(run.Conclusion)
	}
	if run.Status != "" && run.Status != model.RunStatusCompleted {
		return "pending"
	}
	return "unknown"
}

func markdownLink(text, url string) string {
	if url == "" {
		return text
	}
	return fmt.Sprintf("[%s](%s)", text, url)
}
