package application

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ericfisherdev/devops-agent/internal/domain/model"
	"github.com/ericfisherdev/devops-agent/internal/domain/port/driven"
)

// StickyActionKind is the single write the publisher performs.
type StickyActionKind string

const (
	StickyCreate StickyActionKind = "create"
	StickyUpdate StickyActionKind = "update"
)

// StickyAction describes how the status comment will be reconciled.
// CommentID is set only for StickyUpdate.
type StickyAction struct {
	Kind      StickyActionKind
	CommentID int64
	Body      string
}

// PlanSticky picks the first comment, in listing order, whose body contains
// marker and replaces its body; if none exists a new comment is created.
// Further comments carrying the marker are left untouched.
func PlanSticky(existing []model.IssueComment, marker, body string) StickyAction {
	for _, c := range existing {
		if strings.Contains(c.Body, marker) {
			return StickyAction{Kind: StickyUpdate, CommentID: c.ID, Body: body}
		}
	}
	return StickyAction{Kind: StickyCreate, Body: body}
}

// StickyPublisher keeps at most one agent status comment per pull request.
type StickyPublisher struct {
	reader driven.GitHubClient
	writer driven.GitHubWriter
	logger *slog.Logger
}

// NewStickyPublisher creates a StickyPublisher with the required dependencies.
func NewStickyPublisher(reader driven.GitHubClient, writer driven.GitHubWriter, logger *slog.Logger) *StickyPublisher {
	return &StickyPublisher{
		reader: reader,
		writer: writer,
		logger: logger,
	}
}

// Publish lists the pull request's comments and performs exactly one write:
// an in-place update of the existing sticky comment or a new comment.
// The returned action carries the ID of the comment that now holds body.
func (p *StickyPublisher) Publish(ctx context.Context, repoFullName string, prNumber int, body string) (StickyAction, error) {
	comments, err := p.reader.FetchIssueComments(ctx, repoFullName, prNumber)
	if err != nil {
		return StickyAction{}, err
	}

	action := PlanSticky(comments, StickyMarker, body)

	switch action.Kind {
	case StickyUpdate:
		if err := p.writer.UpdateIssueComment(ctx, repoFullName, action.CommentID, body); err != nil {
			return StickyAction{}, err
		}
		p.logger.Info("updated sticky PR comment", "repo", repoFullName, "pr", prNumber, "comment_id", action.CommentID)
	default:
		id, err := p.writer.CreateIssueComment(ctx, repoFullName, prNumber, body)
		if err != nil {
			return StickyAction{}, err
		}
		action.CommentID = id
		p.logger.Info("created sticky PR comment", "repo", repoFullName, "pr", prNumber, "comment_id", id)
	}

	return action, nil
}
