package homodel

import "time"

// FileTransfer is one manifest entry of a session. Name, type and size are
// a snapshot taken at session creation; they are never re-fetched from the
// provider. RetryCount is bookkeeping: it is incremented on every failure
// and never consulted to drive a retry.
type FileTransfer struct {
	ID                  int              `json:"id"`
	UUID                string           `json:"uuid"`
	TransferSessionID   int              `json:"transfer_session_id"`
	TransferSession     *TransferSession `json:"-" gorm:"foreignKey:TransferSessionID;references:ID"`
	Position            int              `json:"position"`
	SourceFileID        string           `json:"source_file_id"`
	FileName            string           `json:"file_name"`
	FileType            string           `json:"file_type"`
	FileSize            int64            `json:"file_size"`
	OriginalOwnerID     int              `json:"original_owner_id"`
	OriginalOwner       *User            `json:"-" gorm:"foreignKey:OriginalOwnerID;references:ID"`
	NewOwnerID          int              `json:"new_owner_id"`
	NewOwner            *User            `json:"-" gorm:"foreignKey:NewOwnerID;references:ID"`
	Status              FileStatus       `json:"status"`
	TransferStartedAt   *time.Time       `json:"transfer_started_at"`
	TransferCompletedAt *time.Time       `json:"transfer_completed_at"`
	ErrorMessage        string           `json:"error_message,omitempty"`
	RetryCount          int              `json:"retry_count"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

func (FileTransfer) TableName() string {
	return "file_transfers"
}
