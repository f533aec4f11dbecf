package model

// WorkflowRun is a read-only snapshot of a single GitHub Actions run.
type WorkflowRun struct {
	ID         int64
	Name       string // Workflow name (e.g., "CI").
	URL        string // html_url of the run; empty if GitHub did not return one.
	Status     RunStatus
	Conclusion Conclusion
}

// Job represents a single job of a workflow run.
type Job struct {
	ID         int64
	Name       string
	URL        string // html_url of the job; may be empty.
	Status     RunStatus
	Conclusion Conclusion
	Steps      []Step // In GitHub's native step order.
}

// Step represents a single step within a job.
type Step struct {
	Number     int64
	Name       string
	Conclusion Conclusion
}

// Failed reports whether the job concluded with a failure.
func (j Job) Failed() bool {
	return j.Conclusion == ConclusionFailure
}

// Cancelled reports whether the job was cancelled.
func (j Job) Cancelled() bool {
	return j.Conclusion == ConclusionCancelled
}

// FirstFailedStep returns the first step, in step order, whose conclusion is failure.
func (j Job) FirstFailedStep() (Step, bool) {
	for _, s := range j.Steps {
		if s.Conclusion == ConclusionFailure {
			return s, true
		}
	}
	return Step{}, false
}
