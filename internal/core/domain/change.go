package domain

// ChangeKind classifies a vault change.
type ChangeKind string

const (
	ChangeCreated  ChangeKind = "created"
	ChangeModified ChangeKind = "modified"
	ChangeRemoved  ChangeKind = "removed"
	ChangeRenamed  ChangeKind = "renamed"
)

// VaultChange is a filesystem event affecting a note.
type VaultChange struct {
	// Path is the vault-relative slash path of the affected note.
	Path string
	Kind ChangeKind
}
