// Package preview renders a composed status comment to sanitized HTML so it
// can be inspected locally without posting to a pull request.
package preview

import (
	"bytes"
	"fmt"
	"html"
	"os"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// commentRenderer mirrors how GitHub shows a comment: GFM tables and task
// lists render, raw HTML passes through goldmark and is then filtered by the
// UGC policy, which also drops HTML comments.
var commentRenderer = struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}{
	md: goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	),
	policy: bluemonday.UGCPolicy(),
}

// RenderMarkdown converts a comment body to sanitized HTML. A body that fails
// to convert is shown escaped inside <pre> so the preview never goes blank.
func RenderMarkdown(body string) string {
	if body == "" {
		return ""
	}

	var out bytes.Buffer
	if err := commentRenderer.md.Convert([]byte(body), &out); err != nil {
		return "<pre>" + html.EscapeString(body) + "</pre>"
	}
	return commentRenderer.policy.Sanitize(out.String())
}

// RenderDocument wraps the rendered body in a standalone HTML page.
func RenderDocument(title, body string) string {
	return fmt.Sprintf("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n%s\n</body>\n</html>\n",
		html.EscapeString(title), RenderMarkdown(body))
}

// WriteFile renders body as a standalone HTML page at path.
func WriteFile(path, title, body string) error {
	if err := os.WriteFile(path, []byte(RenderDocument(title, body)), 0o644); err != nil { //nolint:gosec // Preview is meant to be opened by the user.
		return fmt.Errorf("writing preview %s: %w", path, err)
	}
	return nil
}
