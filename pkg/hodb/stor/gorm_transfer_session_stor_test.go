package stor

import (
	"testing"
	"time"

	"github.com/handoff-labs/handoff/pkg/hodb/homodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTransferSessionAndGetByToken(t *testing.T) {
	db := newTestDB(t)
	sender, receiver := createTestUsers(t, db)
	session := createTestSession(t, db, sender, receiver, time.Hour)

	assert.NotEmpty(t, session.UUID)
	assert.NotEmpty(t, session.SessionToken)
	assert.NotEqual(t, session.UUID, session.SessionToken)

	sessionStor := NewGormTransferSessionStor(db)
	loaded, err := sessionStor.GetSessionByToken(session.SessionToken)
	require.NoError(t, err)

	assert.Equal(t, homodel.SessionPending, loaded.Status)
	require.NotNil(t, loaded.Sender)
	require.NotNil(t, loaded.Receiver)
	assert.Equal(t, sender.ID, loaded.Sender.ID)
	assert.Equal(t, receiver.ID, loaded.Receiver.ID)

	require.Len(t, loaded.FileTransfers, 2)
	assert.Equal(t, "file-1", loaded.FileTransfers[0].SourceFileID)
	assert.Equal(t, "file-2", loaded.FileTransfers[1].SourceFileID)
	assert.Equal(t, 0, loaded.FileTransfers[0].Position)
	assert.Equal(t, 1, loaded.FileTransfers[1].Position)
	assert.Equal(t, homodel.FilePending, loaded.FileTransfers[0].Status)
}

func TestGetSessionByTokenUnknown(t *testing.T) {
	db := newTestDB(t)

	sessionStor := NewGormTransferSessionStor(db)
	_, err := sessionStor.GetSessionByToken("no-such-token")
	assert.True(t, IsRecordNotFound(err))
}

func TestGetSessionByTokenExpired(t *testing.T) {
	db := newTestDB(t)
	sender, receiver := createTestUsers(t, db)
	session := createTestSession(t, db, sender, receiver, -time.Hour)

	// Past its deadline but not yet swept; the lookup must fail closed.
	sessionStor := NewGormTransferSessionStor(db)
	_, err := sessionStor.GetSessionByToken(session.SessionToken)
	assert.True(t, IsRecordNotFound(err))
}

func TestUpdateSessionStatusOptimistic(t *testing.T) {
	db := newTestDB(t)
	sender, receiver := createTestUsers(t, db)
	session := createTestSession(t, db, sender, receiver, time.Hour)

	sessionStor := NewGormTransferSessionStor(db)

	err := sessionStor.UpdateSessionStatus(session.ID, homodel.SessionPending, homodel.SessionAuthenticated)
	require.NoError(t, err)

	// The row is no longer pending, so the same conditioned update loses.
	err = sessionStor.UpdateSessionStatus(session.ID, homodel.SessionPending, homodel.SessionAuthenticated)
	assert.ErrorIs(t, err, ErrStaleStatus)

	loaded, err := sessionStor.GetSessionByToken(session.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, homodel.SessionAuthenticated, loaded.Status)
}

func TestExpireSessions(t *testing.T) {
	db := newTestDB(t)
	sender, receiver := createTestUsers(t, db)

	expiredSession := createTestSession(t, db, sender, receiver, -time.Hour)
	liveSession := createTestSession(t, db, sender, receiver, time.Hour)

	sessionStor := NewGormTransferSessionStor(db)

	// A terminal session past its deadline keeps its outcome.
	doneSession := createTestSession(t, db, sender, receiver, -time.Hour)
	err := sessionStor.UpdateSessionStatus(doneSession.ID, homodel.SessionPending, homodel.SessionCancelled)
	require.NoError(t, err)

	expired, err := sessionStor.ExpireSessions(time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	var statuses []homodel.SessionStatus
	for _, id := range []int{expiredSession.ID, liveSession.ID, doneSession.ID} {
		var s homodel.TransferSession
		require.NoError(t, db.First(&s, id).Error)
		statuses = append(statuses, s.Status)
	}

	assert.Equal(t, homodel.SessionExpired, statuses[0])
	assert.Equal(t, homodel.SessionPending, statuses[1])
	assert.Equal(t, homodel.SessionCancelled, statuses[2])
}

func TestListSessionsForUser(t *testing.T) {
	db := newTestDB(t)
	sender, receiver := createTestUsers(t, db)

	first := createTestSession(t, db, sender, receiver, time.Hour)
	second := createTestSession(t, db, sender, receiver, time.Hour)

	sessionStor := NewGormTransferSessionStor(db)

	sessions, err := sessionStor.ListSessionsForUser(sender.ID, 1, 25)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	sessions, err = sessionStor.ListSessionsForUser(receiver.ID, 1, 25)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	// Paging: one per page.
	page1, err := sessionStor.ListSessionsForUser(sender.ID, 1, 1)
	require.NoError(t, err)
	page2, err := sessionStor.ListSessionsForUser(sender.ID, 2, 1)
	require.NoError(t, err)
	require.Len(t, page1, 1)
	require.Len(t, page2, 1)
	assert.NotEqual(t, page1[0].ID, page2[0].ID)

	tokens := []string{page1[0].SessionToken, page2[0].SessionToken}
	assert.Contains(t, tokens, first.SessionToken)
	assert.Contains(t, tokens, second.SessionToken)
}

func TestMarkFileTransitions(t *testing.T) {
	db := newTestDB(t)
	sender, receiver := createTestUsers(t, db)
	session := createTestSession(t, db, sender, receiver, time.Hour)

	fileStor := NewGormFileTransferStor(db)

	files, err := fileStor.GetFileTransfersForSession(session.ID)
	require.NoError(t, err)
	require.Len(t, files, 2)

	started := time.Now()
	require.NoError(t, fileStor.MarkFileTransferring(files[0].ID, started))
	require.NoError(t, fileStor.MarkFileFailed(files[0].ID, "provider said no"))
	require.NoError(t, fileStor.MarkFileFailed(files[0].ID, "provider said no again"))

	files, err = fileStor.GetFileTransfersForSession(session.ID)
	require.NoError(t, err)

	assert.Equal(t, homodel.FileFailed, files[0].Status)
	assert.Equal(t, "provider said no again", files[0].ErrorMessage)
	assert.Equal(t, 2, files[0].RetryCount)
	assert.NotNil(t, files[0].TransferStartedAt)
	assert.Nil(t, files[0].TransferCompletedAt)

	require.NoError(t, fileStor.MarkFileCompleted(files[1].ID, time.Now()))
	files, err = fileStor.GetFileTransfersForSession(session.ID)
	require.NoError(t, err)
	assert.Equal(t, homodel.FileCompleted, files[1].Status)
	assert.NotNil(t, files[1].TransferCompletedAt)
	assert.Empty(t, files[1].ErrorMessage)
}
