package stor

import (
	"time"

	"github.com/handoff-labs/handoff/pkg/hodb/homodel"
	"github.com/hashicorp/go-uuid"
	"gorm.io/gorm"
)

type GormTransferSessionStor struct {
	db *gorm.DB
}

func NewGormTransferSessionStor(db *gorm.DB) *GormTransferSessionStor {
	return &GormTransferSessionStor{db: db}
}

// CreateTransferSession creates the session and its file transfer rows in
// one transaction so a half-created manifest is never visible.
func (s *GormTransferSessionStor) CreateTransferSession(session *homodel.TransferSession, files []homodel.FileTransfer) (*homodel.TransferSession, error) {
	var err error

	if session.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	if session.SessionToken, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		if err := tx.Omit("FileTransfers").Create(session).Error; err != nil {
			return err
		}

		for i := range files {
			fileUUID, err := uuid.GenerateUUID()
			if err != nil {
				return err
			}

			files[i].UUID = fileUUID
			files[i].TransferSessionID = session.ID
			files[i].Position = i
			files[i].Status = homodel.FilePending

			if err := tx.Create(&files[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	session.FileTransfers = files
	return session, nil
}

// GetSessionByToken looks up a session by its opaque token. Sessions past
// their expiration are treated as not found even if the sweeper hasn't
// gotten to them yet.
func (s *GormTransferSessionStor) GetSessionByToken(sessionToken string) (*homodel.TransferSession, error) {
	var session homodel.TransferSession
	err := s.db.
		Preload("FileTransfers", func(db *gorm.DB) *gorm.DB {
			return db.Order("file_transfers.position ASC")
		}).
		Preload("Sender").
		Preload("Receiver").
		Where("session_token = ?", sessionToken).
		Where("expires_at > ?", time.Now()).
		First(&session).Error
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// UpdateSessionStatus moves a session from one status to another with an
// optimistic check on the current value. Returns ErrStaleStatus when the
// row no longer holds the expected status, which is how a second concurrent
// StartTransfer loses the race instead of double-launching the batch.
func (s *GormTransferSessionStor) UpdateSessionStatus(sessionID int, from, to homodel.SessionStatus) error {
	var rowsAffected int64

	err := WithTxRetry(s.db, func(tx *gorm.DB) error {
		res := tx.Model(&homodel.TransferSession{}).
			Where("id = ?", sessionID).
			Where("status = ?", from).
			Update("status", to)
		rowsAffected = res.RowsAffected
		return res.Error
	})

	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrStaleStatus
	}

	return nil
}

func (s *GormTransferSessionStor) ListSessionsForUser(userID, page, pageSize int) ([]homodel.TransferSession, error) {
	if page < 1 {
		page = 1
	}

	if pageSize < 1 || pageSize > 100 {
		pageSize = 25
	}

	var sessions []homodel.TransferSession
	err := s.db.
		Where("sender_id = ? or receiver_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&sessions).Error
	return sessions, err
}

// ExpireSessions marks every non-terminal session past its expiration as
// expired. Terminal sessions are left alone; they keep their outcome for
// history even after their token stops resolving.
func (s *GormTransferSessionStor) ExpireSessions(now time.Time) (int64, error) {
	var rowsAffected int64

	err := WithTxRetry(s.db, func(tx *gorm.DB) error {
		res := tx.Model(&homodel.TransferSession{}).
			Where("expires_at <= ?", now).
			Where("status in ?", []homodel.SessionStatus{
				homodel.SessionPending,
				homodel.SessionAuthenticated,
				homodel.SessionFileSelected,
				homodel.SessionTransferring,
			}).
			Update("status", homodel.SessionExpired)
		rowsAffected = res.RowsAffected
		return res.Error
	})

	return rowsAffected, err
}
