package stor

import (
	"time"

	"github.com/handoff-labs/handoff/pkg/hodb/homodel"
	"gorm.io/gorm"
)

type GormFileTransferStor struct {
	db *gorm.DB
}

func NewGormFileTransferStor(db *gorm.DB) *GormFileTransferStor {
	return &GormFileTransferStor{db: db}
}

func (s *GormFileTransferStor) GetFileTransfersForSession(sessionID int) ([]homodel.FileTransfer, error) {
	var files []homodel.FileTransfer
	err := s.db.
		Where("transfer_session_id = ?", sessionID).
		Order("position ASC").
		Find(&files).Error
	return files, err
}

func (s *GormFileTransferStor) MarkFileTransferring(fileTransferID int, startedAt time.Time) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Model(&homodel.FileTransfer{}).
			Where("id = ?", fileTransferID).
			Updates(map[string]interface{}{
				"status":              homodel.FileTransferring,
				"transfer_started_at": startedAt,
			}).Error
	})
}

func (s *GormFileTransferStor) MarkFileCompleted(fileTransferID int, completedAt time.Time) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Model(&homodel.FileTransfer{}).
			Where("id = ?", fileTransferID).
			Updates(map[string]interface{}{
				"status":                homodel.FileCompleted,
				"transfer_completed_at": completedAt,
				"error_message":         "",
			}).Error
	})
}

// MarkFileFailed records the failure reason and bumps retry_count. The
// counter is never reset, even if a later run were to succeed.
func (s *GormFileTransferStor) MarkFileFailed(fileTransferID int, errorMessage string) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Model(&homodel.FileTransfer{}).
			Where("id = ?", fileTransferID).
			Updates(map[string]interface{}{
				"status":        homodel.FileFailed,
				"error_message": errorMessage,
				"retry_count":   gorm.Expr("retry_count + 1"),
			}).Error
	})
}
