package filesystem

import (
	"path"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/custodia-labs/notegraph/internal/core/domain"
)

// Resolver maps link targets to note identifiers.
// Matching is case-insensitive. A wiki link resolves by vault path, then by
// path relative to the linking note, then by file name or alias. When a name
// is shared the shortest path wins, then the lexically smallest.
type Resolver struct {
	byPath map[string]string
	byName map[string][]string
}

// NewResolver indexes the given notes.
func NewResolver(notes []domain.Note) *Resolver {
	r := &Resolver{
		byPath: make(map[string]string, len(notes)),
		byName: make(map[string][]string, len(notes)),
	}
	for _, n := range notes {
		r.byPath[foldKey(n.Path)] = n.Path
		r.addName(strings.TrimSuffix(path.Base(n.Path), path.Ext(n.Path)), n.Path)
		for _, alias := range n.Aliases {
			r.addName(alias, n.Path)
		}
	}
	for name, paths := range r.byName {
		sort.Slice(paths, func(i, j int) bool {
			if len(paths[i]) != len(paths[j]) {
				return len(paths[i]) < len(paths[j])
			}
			return paths[i] < paths[j]
		})
		r.byName[name] = dedupe(paths)
	}
	return r
}

// Resolve returns the identifier a link from source points at.
// ok is false for dangling links, in which case id is the cleaned target.
func (r *Resolver) Resolve(source string, link RawLink) (id string, ok bool) {
	target := strings.TrimPrefix(strings.ReplaceAll(link.Target, "\\", "/"), "/")
	relative := path.Join(path.Dir(source), target)

	var candidates []string
	switch link.Kind {
	case WikiLink:
		candidates = []string{path.Clean(target), relative}
	default:
		candidates = []string{relative}
		if strings.HasPrefix(link.Target, "/") {
			candidates = []string{path.Clean(target)}
		}
	}

	for _, c := range candidates {
		if id, ok := r.lookupPath(c); ok {
			return id, true
		}
	}

	if link.Kind == WikiLink {
		name := strings.TrimSuffix(path.Base(target), ".md")
		if paths := r.byName[foldKey(name)]; len(paths) > 0 {
			return paths[0], true
		}
		return path.Clean(target), false
	}
	return candidates[0], false
}

func (r *Resolver) lookupPath(p string) (string, bool) {
	if id, ok := r.byPath[foldKey(p)]; ok {
		return id, true
	}
	if path.Ext(p) != ".md" {
		if id, ok := r.byPath[foldKey(p+".md")]; ok {
			return id, true
		}
	}
	return "", false
}

func (r *Resolver) addName(name, id string) {
	if name = strings.TrimSpace(name); name == "" {
		return
	}
	key := foldKey(name)
	r.byName[key] = append(r.byName[key], id)
}

func foldKey(s string) string {
	return cases.Fold().String(s)
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
