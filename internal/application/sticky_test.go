package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ericfisherdev/devops-agent/internal/domain/model"
)

func TestPlanSticky(t *testing.T) {
	const body = StickyMarker + "\nnew body"

	tests := []struct {
		name     string
		existing []model.IssueComment
		want     StickyAction
	}{
		{
			name:     "no comments creates",
			existing: nil,
			want:     StickyAction{Kind: StickyCreate, Body: body},
		},
		{
			name: "no marker creates",
			existing: []model.IssueComment{
				{ID: 1, Body: "LGTM"},
				{ID: 2, Body: "<!-- some-other-bot:sticky -->\nreport"},
			},
			want: StickyAction{Kind: StickyCreate, Body: body},
		},
		{
			name: "marker updates that comment",
			existing: []model.IssueComment{
				{ID: 1, Body: "LGTM"},
				{ID: 7, Body: StickyMarker + "\nold body"},
			},
			want: StickyAction{Kind: StickyUpdate, CommentID: 7, Body: body},
		},
		{
			name: "marker anywhere in body matches",
			existing: []model.IssueComment{
				{ID: 3, Body: "quoted:\n> " + StickyMarker},
			},
			want: StickyAction{Kind: StickyUpdate, CommentID: 3, Body: body},
		},
		{
			name: "duplicates update the first in listing order",
			existing: []model.IssueComment{
				{ID: 20, Body: StickyMarker + "\nfirst"},
				{ID: 10, Body: StickyMarker + "\nsecond"},
			},
			want: StickyAction{Kind: StickyUpdate, CommentID: 20, Body: body},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlanSticky(tt.existing, StickyMarker, body))
		})
	}
}
