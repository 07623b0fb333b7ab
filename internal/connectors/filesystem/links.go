package filesystem

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// LinkKind distinguishes wiki links from Markdown links.
type LinkKind int

const (
	// WikiLink is a [[target]] reference, resolved vault-wide.
	WikiLink LinkKind = iota
	// MarkdownLink is a [text](target) reference, resolved relative to the
	// linking note.
	MarkdownLink
)

// RawLink is a link as written in a note.
type RawLink struct {
	Target string
	Kind   LinkKind
	Offset int
}

var (
	wikiLinkPattern = regexp.MustCompile(`(!?)\[\[([^\[\]\n]+)\]\]`)
	schemePattern   = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)
	markdownParser  = goldmark.New().Parser()
)

// ExtractLinks returns the links of a Markdown body in document order.
// Links inside code are ignored, as are embeds, external URLs and
// same-note anchors.
func ExtractLinks(body []byte) []RawLink {
	doc := markdownParser.Parse(text.NewReader(body))

	var code [][2]int
	var links []RawLink
	lastOffset := 0

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := n.Lines()
			if lines.Len() > 0 {
				code = append(code, [2]int{lines.At(0).Start, lines.At(lines.Len() - 1).Stop})
			}
			if fenced, ok := n.(*ast.FencedCodeBlock); ok && fenced.Info != nil {
				code = append(code, [2]int{fenced.Info.Segment.Start, fenced.Info.Segment.Stop})
			}
			return ast.WalkSkipChildren, nil
		case *ast.CodeSpan:
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					code = append(code, [2]int{t.Segment.Start, t.Segment.Stop})
				}
			}
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			lastOffset = node.Segment.Start
		case *ast.Link:
			offset := lastOffset
			if t, ok := node.FirstChild().(*ast.Text); ok {
				offset = t.Segment.Start
			}
			if target, ok := markdownTarget(string(node.Destination)); ok {
				links = append(links, RawLink{Target: target, Kind: MarkdownLink, Offset: offset})
			}
		}
		return ast.WalkContinue, nil
	})

	for _, m := range wikiLinkPattern.FindAllSubmatchIndex(body, -1) {
		if m[3] > m[2] || inRanges(m[0], code) {
			continue
		}
		if target := wikiTarget(string(body[m[4]:m[5]])); target != "" {
			links = append(links, RawLink{Target: target, Kind: WikiLink, Offset: m[0]})
		}
	}

	sort.SliceStable(links, func(i, j int) bool { return links[i].Offset < links[j].Offset })
	return links
}

// wikiTarget strips the display alias, heading and block reference from the
// inside of a [[...]] link.
func wikiTarget(inner string) string {
	if i := strings.IndexByte(inner, '|'); i >= 0 {
		inner = inner[:i]
	}
	if i := strings.IndexAny(inner, "#^"); i >= 0 {
		inner = inner[:i]
	}
	return strings.TrimSpace(inner)
}

// markdownTarget normalises a link destination, rejecting external and
// in-note destinations.
func markdownTarget(dest string) (string, bool) {
	dest = strings.TrimSpace(dest)
	if dest == "" || strings.HasPrefix(dest, "#") || schemePattern.MatchString(dest) {
		return "", false
	}
	if i := strings.IndexAny(dest, "#?"); i >= 0 {
		dest = dest[:i]
	}
	if unescaped, err := url.PathUnescape(dest); err == nil {
		dest = unescaped
	}
	dest = strings.TrimSpace(dest)
	return dest, dest != ""
}

func inRanges(offset int, ranges [][2]int) bool {
	for _, r := range ranges {
		if offset >= r[0] && offset < r[1] {
			return true
		}
	}
	return false
}
