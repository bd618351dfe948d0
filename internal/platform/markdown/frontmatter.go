package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---\n"

// Render writes meta as a YAML frontmatter block followed by body.
func Render(meta any, body string) ([]byte, error) {
	raw, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshal frontmatter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(fence)
	buf.Write(raw)
	buf.WriteString(fence)
	if !strings.HasPrefix(body, "\n") {
		buf.WriteByte('\n')
	}
	buf.WriteString(body)
	return buf.Bytes(), nil
}

// Split decodes the frontmatter of content into meta and returns the body.
// Content without frontmatter is returned whole and meta is left untouched.
func Split(content []byte, meta any) (string, error) {
	text := string(content)
	if !strings.HasPrefix(text, fence) {
		return text, nil
	}
	rest := strings.TrimPrefix(text, fence)
	idx := strings.Index(rest, "\n"+fence)
	if idx < 0 {
		return "", fmt.Errorf("invalid frontmatter: missing closing fence")
	}
	if err := yaml.Unmarshal([]byte(rest[:idx]), meta); err != nil {
		return "", fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return rest[idx+len("\n"+fence):], nil
}
