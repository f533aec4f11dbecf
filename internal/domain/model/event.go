package model

// Event is the subset of the triggering GitHub Actions event the agent needs.
type Event struct {
	PullRequestNumber int // Zero when the event carries no pull request.
}

// HasPullRequest reports whether the event is associated with a pull request.
func (e Event) HasPullRequest() bool {
	return e.PullRequestNumber > 0
}
