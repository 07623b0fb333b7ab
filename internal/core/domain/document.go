package domain

import (
	"fmt"
	"time"
)

// Note represents a single document in the vault.
// Path is the identity of the note and is unique within a vault.
type Note struct {
	// Path is the vault-relative slash-separated path, including extension.
	Path string

	// Title is the human-readable title (first H1, front matter, or filename).
	Title string

	// Aliases are alternative names the note can be linked by.
	Aliases []string

	// Tags are the front matter tags of the note.
	Tags []string

	// Size is the content length in bytes.
	Size int64

	// LastModified is when the note content last changed.
	LastModified time.Time
}

// NoteConnection captures a note's position in the link structure.
// It is built once per analysis run and must not be modified afterwards.
type NoteConnection struct {
	// Note is the document the connection describes.
	Note Note

	// Links are the outgoing link targets in declaration order.
	// Duplicates are preserved.
	Links []string

	// Backlinks are the notes whose resolved links point at this note.
	Backlinks []string

	// LastModified is copied from the note for recency scoring.
	LastModified time.Time
}

// ID returns the identifier of the connected note.
func (c NoteConnection) ID() string {
	return c.Note.Path
}

// Degree returns the number of direct links plus backlinks.
func (c NoteConnection) Degree() int {
	return len(c.Links) + len(c.Backlinks)
}

// IsIsolated reports whether the note has neither links nor backlinks.
func (c NoteConnection) IsIsolated() bool {
	return len(c.Links) == 0 && len(c.Backlinks) == 0
}

// IsWeak reports whether the note's degree is below threshold.
func (c NoteConnection) IsWeak(threshold int) bool {
	return c.Degree() < threshold
}

// ResolvedLinkTable maps a source identifier to the targets its links resolve
// to, with the number of links pointing at each target.
// Only targets that exist in the vault appear in the table.
type ResolvedLinkTable map[string]map[string]int

// Targets returns the resolved targets of source, or nil.
func (t ResolvedLinkTable) Targets(source string) map[string]int {
	if t == nil {
		return nil
	}
	return t[source]
}

// Links reports whether source has at least one resolved link to target.
func (t ResolvedLinkTable) Links(source, target string) bool {
	return t.Targets(source)[target] > 0
}

// ConnectionSummary describes the direct connections of a single note.
type ConnectionSummary struct {
	// Path identifies the note.
	Path string `json:"path"`

	// Outgoing is the number of outgoing links.
	Outgoing int `json:"outgoing"`

	// Incoming is the number of backlinks.
	Incoming int `json:"incoming"`

	// Links are the outgoing link targets.
	Links []string `json:"links"`

	// Backlinks are the notes linking here.
	Backlinks []string `json:"backlinks"`
}

// Total returns outgoing plus incoming links.
func (s ConnectionSummary) Total() int {
	return s.Outgoing + s.Incoming
}

// Message returns the one-line result of a single-note analysis.
func (s ConnectionSummary) Message() string {
	return fmt.Sprintf("Note analysis complete. Total connections: %d, Outgoing: %d, Incoming: %d",
		s.Total(), s.Outgoing, s.Incoming)
}
