package model

// RunStatus represents the lifecycle state of a workflow run or job.
type RunStatus string

const (
	RunStatusQueued     RunStatus = "queued"
	RunStatusInProgress RunStatus = "in_progress"
	RunStatusCompleted  RunStatus = "completed"
	RunStatusWaiting    RunStatus = "waiting"
	RunStatusRequested  RunStatus = "requested"
	RunStatusPending    RunStatus = "pending"
)

// Conclusion represents the terminal result of a run, job, or step.
// Empty while the run is still in progress.
type Conclusion string

const (
	ConclusionSuccess        Conclusion = "success"
	ConclusionFailure        Conclusion = "failure"
	ConclusionCancelled      Conclusion = "cancelled" //nolint:misspell // GitHub API uses British "cancelled"
	ConclusionSkipped        Conclusion = "skipped"
	ConclusionTimedOut       Conclusion = "timed_out"
	ConclusionNeutral        Conclusion = "neutral"
	ConclusionActionRequired Conclusion = "action_required"
)

// FailureCategory is the coarse label assigned to a failed job.
type FailureCategory string

const (
	CategoryLint         FailureCategory = "lint"
	CategoryTests        FailureCategory = "tests"
	CategoryBuild        FailureCategory = "build"
	CategoryDependencies FailureCategory = "dependencies"
	CategoryUnknown      FailureCategory = "unknown"
)

// CommentMode controls how the status comment is maintained on a pull request.
type CommentMode string

const (
	CommentModeSticky CommentMode = "sticky" // One comment, edited in place.
)

// PostOn controls when a status comment is published.
type PostOn string

const (
	PostOnFailure PostOn = "failure"
	PostOnAlways  PostOn = "always"
)
