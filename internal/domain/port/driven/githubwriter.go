package driven

import "context"

// GitHubWriter defines the driven port for GitHub write operations.
// It is intentionally separate from GitHubClient (read operations) following
// the Interface Segregation Principle. The agent only ever writes PR comments.
type GitHubWriter interface {
	// CreateIssueComment creates a top-level (non-diff) comment on a pull request
	// and returns the new comment's ID.
	CreateIssueComment(ctx context.Context, repoFullName string, prNumber int, body string) (int64, error)

	// UpdateIssueComment replaces the body of an existing PR-level comment.
	UpdateIssueComment(ctx context.Context, repoFullName string, commentID int64, body string) error
}
