package homodel

import "time"

// TransferSession pairs a sender with a receiver for the handoff of a fixed
// set of files. The file list is captured as FileTransfer rows when the
// session is created and never changes afterward; only the per-file rows
// mutate as the batch runs.
type TransferSession struct {
	ID            int            `json:"id"`
	UUID          string         `json:"uuid"`
	SessionToken  string         `json:"session_token" gorm:"uniqueIndex"`
	Status        SessionStatus  `json:"status"`
	SenderID      int            `json:"sender_id"`
	Sender        *User          `json:"sender,omitempty" gorm:"foreignKey:SenderID;references:ID"`
	ReceiverID    int            `json:"receiver_id"`
	Receiver      *User          `json:"receiver,omitempty" gorm:"foreignKey:ReceiverID;references:ID"`
	FileTransfers []FileTransfer `json:"file_transfers,omitempty" gorm:"foreignKey:TransferSessionID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	ExpiresAt     time.Time      `json:"expires_at"`
}

func (TransferSession) TableName() string {
	return "transfer_sessions"
}

func (s *TransferSession) IsExpiredAt(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
