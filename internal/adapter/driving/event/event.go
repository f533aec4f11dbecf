// Package event reads the GitHub Actions event payload that triggered the run.
package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ericfisherdev/devops-agent/internal/domain/model"
)

// ErrInvalidPayload is returned when the event file is not a JSON object.
var ErrInvalidPayload = errors.New("invalid event payload")

// payload decodes only pull_request.number; other fields of the event are
// never inspected, so their shape cannot fail the decode. pull_request is
// present for pull_request and pull_request_target events.
type payload struct {
	PullRequest *struct {
		Number *int `json:"number"`
	} `json:"pull_request"`
}

// Load reads the event JSON at path. A payload without a pull_request yields
// an Event with no pull request; that is not an error.
func Load(path string) (model.Event, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.Event{}, fmt.Errorf("reading event payload: %w", err)
	}
	return Parse(raw)
}

// Parse decodes an event payload.
func Parse(raw []byte) (model.Event, error) {
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return model.Event{}, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	if p.PullRequest == nil || p.PullRequest.Number == nil {
		return model.Event{}, nil
	}
	return model.Event{PullRequestNumber: *p.PullRequest.Number}, nil
}
