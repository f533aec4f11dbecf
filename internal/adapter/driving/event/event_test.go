package event

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    int
		wantPR  bool
	}{
		{name: "pull_request event", payload: `{"action":"synchronize","pull_request":{"number":42,"title":"x"}}`, want: 42, wantPR: true},
		{name: "push event", payload: `{"ref":"refs/heads/main"}`, want: 0, wantPR: false},
		{name: "null pull_request", payload: `{"pull_request":null}`, want: 0, wantPR: false},
		{name: "pull_request without number", payload: `{"pull_request":{}}`, want: 0, wantPR: false},
		{name: "empty object", payload: `{}`, want: 0, wantPR: false},
		{name: "unrelated field with unexpected type", payload: `{"pull_request":{"number":42,"user":"octocat","labels":"x"}}`, want: 42, wantPR: true},
		{name: "unrelated top-level fields", payload: `{"sender":"bot","repository":7,"pull_request":{"number":3}}`, want: 3, wantPR: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := Parse([]byte(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ev.PullRequestNumber)
			assert.Equal(t, tt.wantPR, ev.HasPullRequest())
		})
	}
}

func TestParse_NonIntegerNumberIsInvalid(t *testing.T) {
	_, err := Parse([]byte(`{"pull_request":{"number":"42"}}`))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte(`{not json`))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"pull_request":{"number":7}}`), 0o600))

	ev, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 7, ev.PullRequestNumber)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading event payload")
}
