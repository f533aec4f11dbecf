package application

import (
	"context"
	"log/slog"

	"github.com/ericfisherdev/devops-agent/internal/domain/model"
	"github.com/ericfisherdev/devops-agent/internal/domain/port/driven"
)

// Outcome summarizes what an observation did.
type Outcome string

const (
	OutcomeDisabled      Outcome = "disabled"        // pr_comment.enabled is false.
	OutcomeNoPullRequest Outcome = "no_pull_request" // Event has no pull_request.
	OutcomeSkipped       Outcome = "skipped"         // post_on gate evaluated false.
	OutcomeDryRun        Outcome = "dry_run"         // Body composed, comments untouched.
	OutcomeCreated       Outcome = "created"
	OutcomeUpdated       Outcome = "updated"
)

// ObserveRequest identifies the run to observe and the policy to apply.
type ObserveRequest struct {
	RepoFullName string
	RunID        int64
	Event        model.Event
	Config       model.AgentConfig
	DryRun       bool
}

// ObserveResult reports what was observed and written.
type ObserveResult struct {
	Outcome   Outcome
	Findings  []model.Finding
	Body      string // Empty unless the gate passed.
	CommentID int64  // Set for OutcomeCreated and OutcomeUpdated.
}

// ObserveService inspects a finished workflow run and reconciles the
// pull request's status comment. It never changes build state.
type ObserveService struct {
	client    driven.GitHubClient
	publisher *StickyPublisher
	logger    *slog.Logger
}

// NewObserveService creates a new ObserveService with the required dependencies.
func NewObserveService(client driven.GitHubClient, writer driven.GitHubWriter, logger *slog.Logger) *ObserveService {
	return &ObserveService{
		client:    client,
		publisher: NewStickyPublisher(client, writer, logger),
		logger:    logger,
	}
}

// Run performs one observation in strict order: fetch run, fetch jobs,
// classify and compose locally, gate, then list comments and write once.
// Any API failure aborts immediately; nothing is retried.
func (s *ObserveService) Run(ctx context.Context, req ObserveRequest) (*ObserveResult, error) {
	pc := req.Config.PRComment

	if !pc.Enabled {
		s.logger.Info("PR comment disabled by config")
		return &ObserveResult{Outcome: OutcomeDisabled}, nil
	}

	if !req.Event.HasPullRequest() {
		s.logger.Info("no pull_request found in event payload, skipping")
		return &ObserveResult{Outcome: OutcomeNoPullRequest}, nil
	}

	if pc.Mode != model.CommentModeSticky {
		s.logger.Warn("unsupported comment mode, using sticky", "mode", pc.Mode)
	}

	run, err := s.client.FetchWorkflowRun(ctx, req.RepoFullName, req.RunID)
	if err != nil {
		return nil, err
	}

	jobs, err := s.client.FetchJobs(ctx, req.RepoFullName, req.RunID)
	if err != nil {
		return nil, err
	}

	findings := DeriveFindings(jobs)
	result := &ObserveResult{Findings: findings}

	s.logger.Debug("run observed",
		"run_id", req.RunID,
		"status", run.Status,
		"conclusion", run.Conclusion,
		"jobs", len(jobs),
		"failed_jobs", len(findings),
	)

	if !ShouldPost(pc.PostOn, *run, jobs) {
		if pc.PostOn != model.PostOnFailure && pc.PostOn != model.PostOnAlways {
			s.logger.Warn("unrecognized post_on value, not posting", "post_on", pc.PostOn)
		} else {
			s.logger.Info("configured to post on failure only and no failures detected, skipping")
		}
		result.Outcome = OutcomeSkipped
		return result, nil
	}

	result.Body = ComposeComment(*run, jobs, findings)

	if req.DryRun {
		s.logger.Info("dry run, not touching PR comments", "pr", req.Event.PullRequestNumber)
		result.Outcome = OutcomeDryRun
		return result, nil
	}

	action, err := s.publisher.Publish(ctx, req.RepoFullName, req.Event.PullRequestNumber, result.Body)
	if err != nil {
		return nil, err
	}

	result.CommentID = action.CommentID
	result.Outcome = OutcomeCreated
	if action.Kind == StickyUpdate {
		result.Outcome = OutcomeUpdated
	}

	return result, nil
}

// ShouldPost applies the post_on policy. "always" posts unconditionally;
// "failure" posts when any job failed or the run itself concluded with
// failure. Any other value never posts.
func ShouldPost(postOn model.PostOn, run model.WorkflowRun, jobs []model.Job) bool {
	switch postOn {
	case model.PostOnAlways:
		return true
	case model.PostOnFailure:
		if run.Conclusion == model.ConclusionFailure {
			return true
		}
		for _, j := range jobs {
			if j.Failed() {
				return true
			}
		}
		return false
	default:
		return false
	}
}
