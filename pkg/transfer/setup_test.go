package transfer

import (
	"testing"
	"time"

	"github.com/handoff-labs/handoff/pkg/drive"
	"github.com/handoff-labs/handoff/pkg/hodb/homodel"
	"github.com/handoff-labs/handoff/pkg/hodb/stor"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const senderID = 1
const receiverID = 2
const strangerID = 3

const receiverEmail = "receiver@example.com"

type testSetup struct {
	stors        *stor.Stors
	client       *drive.MockClient
	engine       *BatchEngine
	orchestrator *Orchestrator
}

func newTestSetup(t *testing.T, optFNs ...OrchestratorOptionFN) *testSetup {
	users := []homodel.User{
		{ID: senderID, Name: "Sender", Email: "sender@example.com", RefreshToken: "sender-refresh"},
		{ID: receiverID, Name: "Receiver", Email: receiverEmail, RefreshToken: "receiver-refresh"},
		{ID: strangerID, Name: "Stranger", Email: "stranger@example.com", RefreshToken: "stranger-refresh"},
	}

	sessionStore := stor.NewInMemoryTransferSessionStor()
	tokenStore := stor.NewInMemoryTokenStor()
	err := tokenStore.SaveDriveTokenForUser(senderID, &oauth2.Token{AccessToken: "sender-access"})
	require.NoError(t, err)

	stors := &stor.Stors{
		UserStor:            stor.NewInMemoryUserStor(users),
		TokenStor:           tokenStore,
		TransferSessionStor: sessionStore,
		FileTransferStor:    stor.NewInMemoryFileTransferStor(sessionStore),
	}

	client := drive.NewMockClient()
	engine := NewBatchEngine(stors, client)

	return &testSetup{
		stors:        stors,
		client:       client,
		engine:       engine,
		orchestrator: NewOrchestrator(stors, engine, optFNs...),
	}
}

func twoFileManifest() []ManifestEntry {
	return []ManifestEntry{
		{SourceFileID: "file-1", FileName: "report.pdf", FileType: "application/pdf", FileSize: 1024},
		{SourceFileID: "file-2", FileName: "notes.txt", FileType: "text/plain", FileSize: 64},
	}
}

// waitForBatch blocks until the session's batch run signals completion.
func (ts *testSetup) waitForBatch(t *testing.T, sessionToken string) {
	run, ok := ts.engine.RunForSession(sessionToken)
	require.Truef(t, ok, "no batch run registered for session %s", sessionToken)

	select {
	case <-run.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("batch run for session %s did not finish", sessionToken)
	}
}
