package model

// Finding describes one failed job and what to look at next.
// Derived on every invocation; never persisted.
type Finding struct {
	JobName  string
	JobURL   string // Empty when the job has no html_url.
	StepName string // Empty when no step concluded with failure.
	Category FailureCategory
	NextStep string
}
