package driven

import (
	"context"

	"github.com/ericfisherdev/devops-agent/internal/domain/model"
)

// GitHubClient defines the driven port for reading GitHub Actions and PR data.
type GitHubClient interface {
	// FetchWorkflowRun returns the run with the given ID.
	FetchWorkflowRun(ctx context.Context, repoFullName string, runID int64) (*model.WorkflowRun, error)
	// FetchJobs returns every job of the run, in the order GitHub lists them.
	FetchJobs(ctx context.Context, repoFullName string, runID int64) ([]model.Job, error)
	// FetchIssueComments returns all PR-level comments in listing order.
	FetchIssueComments(ctx context.Context, repoFullName string, prNumber int) ([]model.IssueComment, error)
}
