package stor

import (
	"sort"
	"sync"
	"time"

	"github.com/handoff-labs/handoff/pkg/hodb/homodel"
	"github.com/hashicorp/go-uuid"
	"gorm.io/gorm"
)

// InMemoryTransferSessionStor backs both the session and file transfer
// store interfaces for tests. It is safe for concurrent use because the
// batch engine mutates file rows from its own goroutine while tests poll.
type InMemoryTransferSessionStor struct {
	ErrToReturn error

	mu            sync.Mutex
	sessions      []homodel.TransferSession
	fileTransfers []homodel.FileTransfer
	lastID        int
}

func NewInMemoryTransferSessionStor() *InMemoryTransferSessionStor {
	return &InMemoryTransferSessionStor{lastID: 10000}
}

func (s *InMemoryTransferSessionStor) nextID() int {
	s.lastID = s.lastID + 1
	return s.lastID
}

func (s *InMemoryTransferSessionStor) CreateTransferSession(session *homodel.TransferSession, files []homodel.FileTransfer) (*homodel.TransferSession, error) {
	if s.ErrToReturn != nil {
		return nil, s.ErrToReturn
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if session.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	if session.SessionToken, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	session.ID = s.nextID()
	session.CreatedAt = time.Now()

	for i := range files {
		fileUUID, err := uuid.GenerateUUID()
		if err != nil {
			return nil, err
		}

		files[i].ID = s.nextID()
		files[i].UUID = fileUUID
		files[i].TransferSessionID = session.ID
		files[i].Position = i
		files[i].Status = homodel.FilePending
		s.fileTransfers = append(s.fileTransfers, files[i])
	}

	s.sessions = append(s.sessions, *session)
	session.FileTransfers = files

	return session, nil
}

func (s *InMemoryTransferSessionStor) GetSessionByToken(sessionToken string) (*homodel.TransferSession, error) {
	if s.ErrToReturn != nil {
		return nil, s.ErrToReturn
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.sessions {
		if s.sessions[i].SessionToken != sessionToken {
			continue
		}

		if s.sessions[i].IsExpiredAt(time.Now()) {
			return nil, gorm.ErrRecordNotFound
		}

		session := s.sessions[i]
		session.FileTransfers = s.filesForSessionLocked(session.ID)
		return &session, nil
	}

	return nil, gorm.ErrRecordNotFound
}

func (s *InMemoryTransferSessionStor) UpdateSessionStatus(sessionID int, from, to homodel.SessionStatus) error {
	if s.ErrToReturn != nil {
		return s.ErrToReturn
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.sessions {
		if s.sessions[i].ID != sessionID {
			continue
		}

		if s.sessions[i].Status != from {
			return ErrStaleStatus
		}

		s.sessions[i].Status = to
		s.sessions[i].UpdatedAt = time.Now()
		return nil
	}

	return ErrStaleStatus
}

func (s *InMemoryTransferSessionStor) ListSessionsForUser(userID, page, pageSize int) ([]homodel.TransferSession, error) {
	if s.ErrToReturn != nil {
		return nil, s.ErrToReturn
	}

	if page < 1 {
		page = 1
	}

	if pageSize < 1 || pageSize > 100 {
		pageSize = 25
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []homodel.TransferSession
	for i := range s.sessions {
		if s.sessions[i].SenderID == userID || s.sessions[i].ReceiverID == userID {
			matched = append(matched, s.sessions[i])
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	start := (page - 1) * pageSize
	if start >= len(matched) {
		return nil, nil
	}

	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], nil
}

func (s *InMemoryTransferSessionStor) ExpireSessions(now time.Time) (int64, error) {
	if s.ErrToReturn != nil {
		return 0, s.ErrToReturn
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var expired int64
	for i := range s.sessions {
		if s.sessions[i].IsExpiredAt(now) && !s.sessions[i].Status.IsTerminal() {
			s.sessions[i].Status = homodel.SessionExpired
			expired++
		}
	}

	return expired, nil
}

func (s *InMemoryTransferSessionStor) filesForSessionLocked(sessionID int) []homodel.FileTransfer {
	var files []homodel.FileTransfer
	for i := range s.fileTransfers {
		if s.fileTransfers[i].TransferSessionID == sessionID {
			files = append(files, s.fileTransfers[i])
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Position < files[j].Position
	})

	return files
}
