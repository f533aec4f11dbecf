// Package github implements the GitHubClient port using the go-github library.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/ericfisherdev/devops-agent/internal/domain/model"
	"github.com/ericfisherdev/devops-agent/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.GitHubClient = (*Client)(nil)

const userAgent = "devops-agent"

// Client implements the driven.GitHubClient port using the go-github library.
type Client struct {
	gh *gh.Client
}

// NewClient creates a new GitHub API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github (GitHub REST API client with token auth)
//
// A single invocation never repeats a GET, so the in-memory cache saves no
// requests here; it keeps the transport stack shared with the other GitHub
// tooling and only matters if a Client is reused across observations.
//
// apiURL selects the REST endpoint; GitHub Enterprise Server runners export it
// as GITHUB_API_URL.
func NewClient(token, apiURL string) (*Client, error) {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	return newClient(cacheTransport.Client(), apiURL, token)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, token string) (*Client, error) {
	return newClient(httpClient, baseURL, token)
}

func newClient(httpClient *http.Client, baseURL, token string) (*Client, error) {
	client := gh.NewClient(httpClient).WithAuthToken(token)
	client.UserAgent = userAgent

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{gh: client}, nil
}

// FetchWorkflowRun retrieves a single workflow run by ID.
func (c *Client) FetchWorkflowRun(ctx context.Context, repoFullName string, runID int64) (*model.WorkflowRun, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	run, resp, err := c.gh.Actions.GetWorkflowRunByID(ctx, owner, repo, runID)
	if err != nil {
		return nil, fmt.Errorf("fetching workflow run %s/%d: %w", repoFullName, runID, err)
	}

	logRateLimit(resp, repoFullName+"/actions/runs", 0, 1)

	mapped := mapWorkflowRun(run)
	return &mapped, nil
}

// FetchJobs retrieves all jobs of the latest attempt of a workflow run.
// It handles pagination automatically and maps go-github types to domain model types.
func (c *Client) FetchJobs(ctx context.Context, repoFullName string, runID int64) ([]model.Job, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	opts := &gh.ListWorkflowJobsOptions{
		Filter:      "latest",
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	allJobs := []model.Job{}

	for {
		jobs, resp, err := c.gh.Actions.ListWorkflowJobs(ctx, owner, repo, runID, opts)
		if err != nil {
			return nil, fmt.Errorf("listing jobs for %s run %d (page %d): %w", repoFullName, runID, opts.Page, err)
		}

		logRateLimit(resp, repoFullName+"/actions/jobs", opts.Page, len(jobs.Jobs))

		for _, j := range jobs.Jobs {
			allJobs = append(allJobs, mapJob(j))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allJobs, nil
}

// FetchIssueComments retrieves all general PR-level comments (from the Issues API) for a pull request.
// It handles pagination automatically and maps go-github types to domain model types.
// Comments are returned in GitHub's listing order (oldest first).
func (c *Client) FetchIssueComments(ctx context.Context, repoFullName string, prNumber int) ([]model.IssueComment, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	opts := &gh.IssueListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	allComments := []model.IssueComment{}

	for {
		comments, resp, err := c.gh.Issues.ListComments(ctx, owner, repo, prNumber, opts)
		if err != nil {
			return nil, fmt.Errorf("listing issue comments for %s#%d (page %d): %w", repoFullName, prNumber, opts.Page, err)
		}

		logRateLimit(resp, repoFullName+"/issue-comments", opts.Page, len(comments))

		for _, comment := range comments {
			allComments = append(allComments, mapIssueComment(comment))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allComments, nil
}

// mapWorkflowRun converts a go-github WorkflowRun to a domain model WorkflowRun.
// It uses GetXxx() helper methods exclusively to avoid nil pointer panics.
func mapWorkflowRun(r *gh.WorkflowRun) model.WorkflowRun {
	return model.WorkflowRun{
		ID:         r.GetID(),
		Name:       r.GetName(),
		URL:        r.GetHTMLURL(),
		Status:     model.RunStatus(r.GetStatus()),
		Conclusion: model.Conclusion(r.GetConclusion()),
	}
}

// mapJob converts a go-github WorkflowJob to a domain model Job, keeping step order.
func mapJob(j *gh.WorkflowJob) model.Job {
	steps := make([]model.Step, 0, len(j.Steps))
	for _, s := range j.Steps {
		steps = append(steps, model.Step{
			Number:     s.GetNumber(),
			Name:       s.GetName(),
			Conclusion: model.Conclusion(s.GetConclusion()),
		})
	}

	return model.Job{
		ID:         j.GetID(),
		Name:       j.GetName(),
		URL:        j.GetHTMLURL(),
		Status:     model.RunStatus(j.GetStatus()),
		Conclusion: model.Conclusion(j.GetConclusion()),
		Steps:      steps,
	}
}

// mapIssueComment converts a go-github IssueComment to a domain model IssueComment.
func mapIssueComment(c *gh.IssueComment) model.IssueComment {
	return model.IssueComment{
		ID:        c.GetID(),
		Author:    c.GetUser().GetLogin(),
		Body:      c.GetBody(),
		CreatedAt: c.GetCreatedAt().Time,
		UpdatedAt: c.GetUpdatedAt().Time,
	}
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, page, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Limit > 0 && resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}

// splitRepo splits a "owner/repo" string into its two components.
func splitRepo(fullName string) (string, string, error) {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repo name %q: expected owner/repo", fullName)
	}
	return parts[0], parts[1], nil
}
