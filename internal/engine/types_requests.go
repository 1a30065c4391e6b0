package engine

// NewRequest represents a request to create files and directories.
type NewRequest struct {
	// Paths are positional arguments; a trailing separator marks a directory
	Paths []string

	// Files are paths given with --file
	Files []string

	// Directories are paths given with --directory
	Directories []string

	// Content is written to every file when HasContent is set
	Content []byte

	// HasContent is true when content words were given after "--"
	HasContent bool
}

// TransferMode selects what PlanTransfer and ExecuteTransfer do with a source.
type TransferMode int

const (
	// TransferMove renames sources, creating missing destination parents (mov).
	TransferMove TransferMode = iota

	// TransferCopy copies sources recursively (cop).
	TransferCopy

	// TransferRename renames a single source without creating parents (nam).
	TransferRename
)

func (m TransferMode) String() string {
	switch m {
	case TransferCopy:
		return "copy"
	case TransferRename:
		return "rename"
	default:
		return "move"
	}
}

// TransferRequest represents a request to move, copy or rename paths.
type TransferRequest struct {
	Mode TransferMode

	// Sources are the paths to transfer, in argument order
	Sources []string

	// Destination is the target path or directory
	Destination string

	// Into forces move-into mode
	Into bool

	// To forces rename mode even when Destination ends with a separator
	To bool
}

// DeleteRequest represents a request to delete paths.
type DeleteRequest struct {
	// Paths are deleted in argument order
	Paths []string

	// Force skips missing paths instead of failing
	Force bool

	// TrackCwdFile, when set, receives the directory the process moved to
	// after its working directory was removed
	TrackCwdFile string
}
