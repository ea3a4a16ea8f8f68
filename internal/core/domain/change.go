package domain

// ChangeType represents the kind of change a document watcher saw.
type ChangeType int

const (
	// ChangeCreated indicates a new document file.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified document file.
	ChangeUpdated

	// ChangeDeleted indicates a removed document file.
	ChangeDeleted
)

// String returns a human-readable change type name.
func (t ChangeType) String() string {
	switch t {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// FileChange is a change event emitted by the document watcher.
// Consumers re-ingest the watched directory; the path identifies which
// file triggered the refresh.
type FileChange struct {
	// Type is the kind of change.
	Type ChangeType

	// Path is the affected file path.
	Path string
}
