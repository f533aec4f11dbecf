package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ericfisherdev/devops-agent/internal/domain/model"
)

// AgentFileName is the per-repository policy file, relative to the workspace root.
const AgentFileName = ".devops-agent.yml"

// keyLine matches "key: value" or "key:" on an already-trimmed line.
var keyLine = regexp.MustCompile(`^([A-Za-z0-9_]+):(?:\s+(.*))?$`)

var digits = regexp.MustCompile(`^\d+$`)

// Resolve returns the agent policy for the repository checked out at root.
// It never fails: a missing or unreadable file yields the defaults, and any
// recognized key with an unexpected type keeps its default.
//
// Only these keys are consulted:
//
//	version: 1
//	github_actions:
//	  pr_comment:
//	    enabled: true|false
//	    mode: sticky
//	    post_on: failure|always
func Resolve(root string) model.AgentConfig {
	cfg := model.DefaultAgentConfig()

	raw, err := os.ReadFile(filepath.Join(root, AgentFileName))
	if err != nil {
		return cfg
	}

	doc := parseAgentFile(raw)

	if v, ok := doc["version"].(int); ok {
		cfg.Version = v
	}

	gha, _ := doc["github_actions"].(map[string]any)
	pc, _ := gha["pr_comment"].(map[string]any)

	if v, ok := pc["enabled"].(bool); ok {
		cfg.PRComment.Enabled = v
	}
	if v, ok := pc["mode"].(string); ok {
		cfg.PRComment.Mode = model.CommentMode(v)
	}
	if v, ok := pc["post_on"].(string); ok {
		cfg.PRComment.PostOn = model.PostOn(v)
	}

	return cfg
}

type openMapping struct {
	indent int
	values map[string]any
}

// parseAgentFile reads the restricted indentation-based key/value notation
// used by .devops-agent.yml. It is not a YAML parser: only nested mappings and
// scalar values are understood, and unmatched lines are dropped.
func parseAgentFile(raw []byte) map[string]any {
	root := map[string]any{}
	stack := []openMapping{{indent: -1, values: root}}

	for _, line := range splitLines(string(raw)) {
		line = strings.ReplaceAll(line, "\t", "  ")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		m := keyLine.FindStringSubmatchIndex(trimmed)
		if m == nil {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " "))

		for len(stack) > 1 && indent <= stack[len(stack)-1].indent {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1].values

		key := trimmed[m[2]:m[3]]
		if m[4] < 0 {
			// "key:" with no value opens a nested mapping.
			child := map[string]any{}
			parent[key] = child
			stack = append(stack, openMapping{indent: indent, values: child})
			continue
		}

		parent[key] = coerceScalar(trimmed[m[4]:m[5]])
	}

	return root
}

// splitLines splits on \n, \r\n and \r with no limit on line length, so an
// oversized line only affects itself.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

func coerceScalar(raw string) any {
	v := strings.TrimSpace(raw)
	switch {
	case v == "true":
		return true
	case v == "false":
		return false
	case digits.MatchString(v):
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return v
}
