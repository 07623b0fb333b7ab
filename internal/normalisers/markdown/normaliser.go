// Package markdown normalises Markdown notes: it separates YAML front matter
// from the body and derives a display title.
package markdown

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/notegraph/internal/core/domain"
)

// Document is a normalised note.
type Document struct {
	// Title comes from front matter, the first H1, or the file name.
	Title   string
	Aliases []string
	Tags    []string

	// Body is the note text without front matter.
	Body string
}

// frontMatter is the subset of note properties the vault understands.
type frontMatter struct {
	Title   string     `yaml:"title"`
	Aliases stringList `yaml:"aliases"`
	Alias   stringList `yaml:"alias"`
	Tags    stringList `yaml:"tags"`
}

// stringList accepts either a YAML sequence or a single scalar.
type stringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*l = nil
			return nil
		}
		*l = splitScalar(value.Value)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = trimAll(items)
		return nil
	default:
		return fmt.Errorf("line %d: expected a string or list", value.Line)
	}
}

// Normalise splits content into front matter and body.
// When the front matter is malformed the error is returned together with a
// document that treats the whole content as body.
func Normalise(notePath string, content []byte) (*Document, error) {
	raw, body, ok := splitFrontMatter(content)

	doc := &Document{Body: string(content)}
	var parseErr error
	if ok {
		var fm frontMatter
		if err := yaml.Unmarshal(raw, &fm); err != nil {
			parseErr = fmt.Errorf("%w: front matter of %s: %w", domain.ErrInvalidInput, notePath, err)
		} else {
			doc.Body = string(body)
			doc.Title = strings.TrimSpace(fm.Title)
			doc.Aliases = append(trimAll(fm.Aliases), trimAll(fm.Alias)...)
			doc.Tags = normaliseTags(fm.Tags)
		}
	}

	if doc.Title == "" {
		doc.Title = extractMarkdownTitle(doc.Body, notePath)
	}
	return doc, parseErr
}

// splitFrontMatter returns the YAML between a leading "---" line and the
// next "---" or "..." line.
func splitFrontMatter(content []byte) (raw, body []byte, ok bool) {
	content = bytes.TrimPrefix(content, []byte("\ufeff"))
	first, rest, found := cutLine(content)
	if !found || strings.TrimRight(string(first), " \t\r") != "---" {
		return nil, content, false
	}

	start := len(content) - len(rest)
	offset := start
	for len(rest) > 0 {
		line, next, _ := cutLine(rest)
		trimmed := strings.TrimRight(string(line), " \t\r")
		if trimmed == "---" || trimmed == "..." {
			return content[start:offset], next, true
		}
		offset += len(rest) - len(next)
		rest = next
	}
	return nil, content, false
}

func cutLine(b []byte) (line, rest []byte, found bool) {
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		return b[:i], b[i+1:], true
	}
	return b, nil, len(b) > 0
}

// extractMarkdownTitle returns the first H1 heading or falls back to the
// file name.
func extractMarkdownTitle(content, notePath string) string {
	inFence := false
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "```") {
			inFence = !inFence
			continue
		}
		if !inFence && strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}

	filename := path.Base(notePath)
	if ext := path.Ext(filename); ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}

func splitScalar(s string) []string {
	return trimAll(strings.Split(s, ","))
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func normaliseTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range trimAll(tags) {
		if t = strings.TrimPrefix(t, "#"); t != "" {
			out = append(out, t)
		}
	}
	return out
}
