package transfer

import "github.com/handoff-labs/handoff/pkg/hodb/homodel"

// Stats are the per-status counts over a session's file transfer rows.
// Pending+Transferring+Completed+Failed+Skipped always sums to Total.
type Stats struct {
	Total        int `json:"total"`
	Pending      int `json:"pending"`
	Transferring int `json:"transferring"`
	Completed    int `json:"completed"`
	Failed       int `json:"failed"`
	Skipped      int `json:"skipped"`
}

// ComputeStats is a pure function over a single read of the file rows, so
// the counts are always consistent with the file list they were computed
// from. Unknown statuses count toward Total only; they can't occur through
// the store interfaces but a hand-edited row shouldn't skew the sums.
func ComputeStats(files []homodel.FileTransfer) Stats {
	stats := Stats{Total: len(files)}

	for i := range files {
		switch files[i].Status {
		case homodel.FilePending:
			stats.Pending++
		case homodel.FileTransferring:
			stats.Transferring++
		case homodel.FileCompleted:
			stats.Completed++
		case homodel.FileFailed:
			stats.Failed++
		case homodel.FileSkipped:
			stats.Skipped++
		}
	}

	return stats
}

// FileProgress is the per-file view returned alongside the counts.
type FileProgress struct {
	Name   string             `json:"name"`
	Status homodel.FileStatus `json:"status"`
	Error  string             `json:"error,omitempty"`
}

// Progress is the polling view of a session. SessionStatus says whether the
// batch ran to completion; the per-file outcomes are the authoritative
// record of what actually transferred. A session can be completed while
// individual files are failed.
type Progress struct {
	SessionStatus homodel.SessionStatus `json:"session_status"`
	BatchFinished bool                  `json:"batch_finished"`
	Stats
	Files []FileProgress `json:"files"`
}

func buildProgress(session *homodel.TransferSession, batchFinished bool) *Progress {
	progress := &Progress{
		SessionStatus: session.Status,
		BatchFinished: batchFinished,
		Stats:         ComputeStats(session.FileTransfers),
	}

	for i := range session.FileTransfers {
		ft := &session.FileTransfers[i]
		progress.Files = append(progress.Files, FileProgress{
			Name:   ft.FileName,
			Status: ft.Status,
			Error:  ft.ErrorMessage,
		})
	}

	return progress
}
