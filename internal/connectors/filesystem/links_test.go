package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func targets(links []RawLink) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		out = append(out, l.Target)
	}
	return out
}

func TestExtractLinks_WikiLinks(t *testing.T) {
	body := "See [[Alpha]], [[Beta|the beta note]] and [[Gamma#Section]] or [[Delta^block]]."

	links := ExtractLinks([]byte(body))

	assert.Equal(t, []string{"Alpha", "Beta", "Gamma", "Delta"}, targets(links))
	for _, l := range links {
		assert.Equal(t, WikiLink, l.Kind)
	}
}

func TestExtractLinks_MarkdownLinks(t *testing.T) {
	body := "Read [one](one.md), [two](sub/Two%20Words.md#part) and [three](<three note.md>)."

	links := ExtractLinks([]byte(body))

	assert.Equal(t, []string{"one.md", "sub/Two Words.md", "three note.md"}, targets(links))
	for _, l := range links {
		assert.Equal(t, MarkdownLink, l.Kind)
	}
}

func TestExtractLinks_DocumentOrderAcrossKinds(t *testing.T) {
	body := "[[first]] then [second](second.md) then [[third]]"

	assert.Equal(t, []string{"first", "second.md", "third"}, targets(ExtractLinks([]byte(body))))
}

func TestExtractLinks_DuplicatesPreserved(t *testing.T) {
	body := "[[a]] and [[a]] again"

	assert.Equal(t, []string{"a", "a"}, targets(ExtractLinks([]byte(body))))
}

func TestExtractLinks_Ignored(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"embed", "![[picture.png]]"},
		{"image", "![alt](picture.png)"},
		{"external url", "[site](https://example.com)"},
		{"mailto", "[mail](mailto:me@example.com)"},
		{"anchor", "[jump](#heading)"},
		{"fenced code", "```\n[[hidden]]\n[x](hidden.md)\n```"},
		{"indented code", "para\n\n    [[hidden]]\n"},
		{"inline code", "use `[[hidden]]` syntax"},
		{"empty wiki link", "[[ ]]"},
		{"autolink", "<https://example.com>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, ExtractLinks([]byte(tt.body)))
		})
	}
}

func TestExtractLinks_Empty(t *testing.T) {
	assert.Empty(t, ExtractLinks(nil))
}

func TestWikiTarget(t *testing.T) {
	tests := []struct {
		inner string
		want  string
	}{
		{"Note", "Note"},
		{" Note ", "Note"},
		{"Note|Alias", "Note"},
		{"folder/Note#Heading|Alias", "folder/Note"},
		{"#Heading", ""},
	}

	for _, tt := range tests {
		t.Run(tt.inner, func(t *testing.T) {
			assert.Equal(t, tt.want, wikiTarget(tt.inner))
		})
	}
}
