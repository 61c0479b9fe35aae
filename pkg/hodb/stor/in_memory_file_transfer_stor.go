package stor

import (
	"time"

	"github.com/handoff-labs/handoff/pkg/hodb/homodel"
	"gorm.io/gorm"
)

// InMemoryFileTransferStor shares state with an InMemoryTransferSessionStor
// the same way the Gorm stores share a database.
type InMemoryFileTransferStor struct {
	ErrToReturn  error
	sessionStore *InMemoryTransferSessionStor
}

func NewInMemoryFileTransferStor(sessionStore *InMemoryTransferSessionStor) *InMemoryFileTransferStor {
	return &InMemoryFileTransferStor{sessionStore: sessionStore}
}

func (s *InMemoryFileTransferStor) GetFileTransfersForSession(sessionID int) ([]homodel.FileTransfer, error) {
	if s.ErrToReturn != nil {
		return nil, s.ErrToReturn
	}

	s.sessionStore.mu.Lock()
	defer s.sessionStore.mu.Unlock()

	return s.sessionStore.filesForSessionLocked(sessionID), nil
}

func (s *InMemoryFileTransferStor) MarkFileTransferring(fileTransferID int, startedAt time.Time) error {
	return s.update(fileTransferID, func(ft *homodel.FileTransfer) {
		ft.Status = homodel.FileTransferring
		ft.TransferStartedAt = &startedAt
	})
}

func (s *InMemoryFileTransferStor) MarkFileCompleted(fileTransferID int, completedAt time.Time) error {
	return s.update(fileTransferID, func(ft *homodel.FileTransfer) {
		ft.Status = homodel.FileCompleted
		ft.TransferCompletedAt = &completedAt
		ft.ErrorMessage = ""
	})
}

func (s *InMemoryFileTransferStor) MarkFileFailed(fileTransferID int, errorMessage string) error {
	return s.update(fileTransferID, func(ft *homodel.FileTransfer) {
		ft.Status = homodel.FileFailed
		ft.ErrorMessage = errorMessage
		ft.RetryCount = ft.RetryCount + 1
	})
}

func (s *InMemoryFileTransferStor) update(fileTransferID int, apply func(*homodel.FileTransfer)) error {
	if s.ErrToReturn != nil {
		return s.ErrToReturn
	}

	s.sessionStore.mu.Lock()
	defer s.sessionStore.mu.Unlock()

	for i := range s.sessionStore.fileTransfers {
		if s.sessionStore.fileTransfers[i].ID == fileTransferID {
			apply(&s.sessionStore.fileTransfers[i])
			s.sessionStore.fileTransfers[i].UpdatedAt = time.Now()
			return nil
		}
	}

	return gorm.ErrRecordNotFound
}
