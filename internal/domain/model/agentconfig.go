package model

// AgentConfig is the per-repository policy read from .devops-agent.yml.
// Every field always holds a value: either user-supplied or the default.
type AgentConfig struct {
	Version   int
	PRComment PRCommentConfig
}

// PRCommentConfig holds the github_actions.pr_comment settings.
type PRCommentConfig struct {
	Enabled bool
	Mode    CommentMode
	PostOn  PostOn
}

// DefaultAgentConfig returns the configuration used when no file is present.
func DefaultAgentConfig() AgentConfig {
	return AgentConfig{
		Version: 1,
		PRComment: PRCommentConfig{
			Enabled: true,
			Mode:    CommentModeSticky,
			PostOn:  PostOnFailure,
		},
	}
}
