package homodel

// FileStatus is the closed set of states a single file transfer record
// moves through while its session's batch runs.
type FileStatus string

const (
	FilePending      FileStatus = "pending"
	FileTransferring FileStatus = "transferring"
	FileCompleted    FileStatus = "completed"
	FileFailed       FileStatus = "failed"
	FileSkipped      FileStatus = "skipped"
)

func (s FileStatus) IsTerminal() bool {
	switch s {
	case FileCompleted, FileFailed, FileSkipped:
		return true
	case FilePending, FileTransferring:
		return false
	}

	return false
}

func (s FileStatus) IsKnown() bool {
	switch s {
	case FilePending, FileTransferring, FileCompleted, FileFailed, FileSkipped:
		return true
	}

	return false
}
