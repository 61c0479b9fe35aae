package stor

import (
	"time"

	"github.com/handoff-labs/handoff/pkg/hodb/homodel"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

type UserStor interface {
	CreateUser(user *homodel.User) (*homodel.User, error)
	GetUserByID(userID int) (*homodel.User, error)
	GetUserByEmail(email string) (*homodel.User, error)
	GetUserBySlug(slug string) (*homodel.User, error)
	GetUserByAPIToken(apitoken string) (*homodel.User, error)
}

// TokenStor hands out the stored provider credentials for a user. The
// OAuth dance that populates them happens elsewhere; the batch engine only
// ever reads through this interface.
type TokenStor interface {
	GetDriveTokenForUser(userID int) (*oauth2.Token, error)
	SaveDriveTokenForUser(userID int, token *oauth2.Token) error
}

type TransferSessionStor interface {
	CreateTransferSession(session *homodel.TransferSession, files []homodel.FileTransfer) (*homodel.TransferSession, error)
	GetSessionByToken(sessionToken string) (*homodel.TransferSession, error)
	UpdateSessionStatus(sessionID int, from, to homodel.SessionStatus) error
	ListSessionsForUser(userID, page, pageSize int) ([]homodel.TransferSession, error)
	ExpireSessions(now time.Time) (int64, error)
}

type FileTransferStor interface {
	GetFileTransfersForSession(sessionID int) ([]homodel.FileTransfer, error)
	MarkFileTransferring(fileTransferID int, startedAt time.Time) error
	MarkFileCompleted(fileTransferID int, completedAt time.Time) error
	MarkFileFailed(fileTransferID int, errorMessage string) error
}

type Stors struct {
	UserStor            UserStor
	TokenStor           TokenStor
	TransferSessionStor TransferSessionStor
	FileTransferStor    FileTransferStor
}

func NewGormStors(db *gorm.DB) *Stors {
	return &Stors{
		UserStor:            NewGormUserStor(db),
		TokenStor:           NewGormTokenStor(db),
		TransferSessionStor: NewGormTransferSessionStor(db),
		FileTransferStor:    NewGormFileTransferStor(db),
	}
}
