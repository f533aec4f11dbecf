package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v82/github"

	"github.com/ericfisherdev/devops-agent/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.GitHubWriter = (*Client)(nil)

// CreateIssueComment creates a top-level (non-diff) comment on a pull request.
func (c *Client) CreateIssueComment(ctx context.Context, repoFullName string, prNumber int, body string) (int64, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return 0, err
	}

	comment, _, err := c.gh.Issues.CreateComment(ctx, owner, repo, prNumber, &gh.IssueComment{
		Body: gh.Ptr(body),
	})
	if err != nil {
		return 0, fmt.Errorf("creating issue comment on %s#%d: %w", repoFullName, prNumber, err)
	}

	return comment.GetID(), nil
}

// UpdateIssueComment replaces the body of an existing PR-level comment.
func (c *Client) UpdateIssueComment(ctx context.Context, repoFullName string, commentID int64, body string) error {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return err
	}

	_, _, err = c.gh.Issues.EditComment(ctx, owner, repo, commentID, &gh.IssueComment{
		Body: gh.Ptr(body),
	})
	if err != nil {
		return fmt.Errorf("updating issue comment %d on %s: %w", commentID, repoFullName, err)
	}

	return nil
}
