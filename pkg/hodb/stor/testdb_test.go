package stor

import (
	"fmt"
	"testing"
	"time"

	"github.com/handoff-labs/handoff/pkg/hodb"
	"github.com/handoff-labs/handoff/pkg/hodb/homodel"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type nullLogWriter struct{}

func (nullLogWriter) Printf(string, ...interface{}) {}

// newTestDB opens a per-test in-memory sqlite database with the handoff
// schema migrated. The database is named after the test so parallel test
// runs don't share state.
func newTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	gormLogger := logger.New(nullLogWriter{},
		logger.Config{
			SlowThreshold:             time.Second * 5,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		})

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormLogger})
	require.NoErrorf(t, err, "gorm.Open failed: %s", err)

	sqlitedb, err := db.DB()
	require.NoError(t, err)

	// Set the sqlite db to 1 connection. This gets around table lock issues
	// from concurrent access over multiple connections.
	sqlitedb.SetMaxOpenConns(1)

	err = hodb.RunMigrations(db)
	require.NoErrorf(t, err, "Migration failed with: %s", err)

	return db
}

func createTestUsers(t *testing.T, db *gorm.DB) (sender, receiver *homodel.User) {
	userStor := NewGormUserStor(db)

	sender, err := userStor.CreateUser(&homodel.User{
		Name:         "Test Sender",
		Email:        "sender@example.com",
		ApiToken:     "sender-apikey",
		RefreshToken: "sender-refresh",
	})
	require.NoError(t, err)

	receiver, err = userStor.CreateUser(&homodel.User{
		Name:         "Test Receiver",
		Email:        "receiver@example.com",
		ApiToken:     "receiver-apikey",
		RefreshToken: "receiver-refresh",
	})
	require.NoError(t, err)

	return sender, receiver
}

func createTestSession(t *testing.T, db *gorm.DB, sender, receiver *homodel.User, ttl time.Duration) *homodel.TransferSession {
	sessionStor := NewGormTransferSessionStor(db)

	session, err := sessionStor.CreateTransferSession(
		&homodel.TransferSession{
			Status:     homodel.SessionPending,
			SenderID:   sender.ID,
			ReceiverID: receiver.ID,
			ExpiresAt:  time.Now().Add(ttl),
		},
		[]homodel.FileTransfer{
			{SourceFileID: "file-1", FileName: "one.txt", OriginalOwnerID: sender.ID, NewOwnerID: receiver.ID},
			{SourceFileID: "file-2", FileName: "two.txt", OriginalOwnerID: sender.ID, NewOwnerID: receiver.ID},
		})
	require.NoError(t, err)

	return session
}
