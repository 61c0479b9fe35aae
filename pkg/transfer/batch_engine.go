package transfer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/handoff-labs/handoff/pkg/clog"
	"github.com/handoff-labs/handoff/pkg/drive"
	"github.com/handoff-labs/handoff/pkg/hodb/homodel"
	"github.com/handoff-labs/handoff/pkg/hodb/stor"
	"golang.org/x/oauth2"
)

// BatchEngine executes the ownership transfer for every file in a session,
// one file at a time in manifest order. A single file's failure is recorded
// on its row and the batch moves on; the batch attempts every file exactly
// once per run. Different sessions' runs are independent goroutines.
type BatchEngine struct {
	sessionStor stor.TransferSessionStor
	fileStor    stor.FileTransferStor
	userStor    stor.UserStor
	tokenStor   stor.TokenStor
	client      drive.Client

	mu   sync.Mutex
	runs map[string]*Run
}

func NewBatchEngine(stors *stor.Stors, client drive.Client) *BatchEngine {
	return &BatchEngine{
		sessionStor: stors.TransferSessionStor,
		fileStor:    stors.FileTransferStor,
		userStor:    stors.UserStor,
		tokenStor:   stors.TokenStor,
		client:      client,
		runs:        make(map[string]*Run),
	}
}

// Run is the completion signal for one batch. Done closes when the run has
// attempted every file and recorded the session's terminal status.
type Run struct {
	sessionToken string
	done         chan struct{}

	mu  sync.Mutex
	err error
}

func (r *Run) Done() <-chan struct{} {
	return r.done
}

func (r *Run) Finished() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// Err returns the unrecoverable error that failed the whole run, if any.
// Per-file failures are not run errors; they live on the file rows.
func (r *Run) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Run) setErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Launch starts the batch for a session already transitioned to
// transferring. It returns immediately; the run proceeds on its own
// goroutine with a background context because it must outlive the request
// that started the transfer.
func (e *BatchEngine) Launch(session *homodel.TransferSession) *Run {
	run := &Run{
		sessionToken: session.SessionToken,
		done:         make(chan struct{}),
	}

	e.mu.Lock()
	e.runs[session.SessionToken] = run
	e.mu.Unlock()

	go e.run(context.Background(), session, run)

	return run
}

// RunForSession returns the in-flight run for a session, if one exists in
// this process.
func (e *BatchEngine) RunForSession(sessionToken string) (*Run, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	run, ok := e.runs[sessionToken]
	return run, ok
}

func (e *BatchEngine) run(ctx context.Context, session *homodel.TransferSession, run *Run) {
	logger := clog.UsingSession(session.SessionToken)
	defer close(run.done)

	logger.Infof("Starting batch transfer for session %s", session.SessionToken)

	files, err := e.fileStor.GetFileTransfersForSession(session.ID)
	if err != nil {
		run.setErr(persistenceError(err))
		e.failRun(session, nil, fmt.Sprintf("loading file transfers: %s", err))
		return
	}

	// Credentials and identities resolve once for the whole batch. If that
	// fails no file can be attempted, which is the one case that fails the
	// session rather than individual files.
	senderToken, err := e.tokenStor.GetDriveTokenForUser(session.SenderID)
	if err != nil {
		run.setErr(fmt.Errorf("%w: resolving sender credentials: %s", ErrExternalProvider, err))
		e.failRun(session, files, fmt.Sprintf("resolving sender credentials: %s", err))
		return
	}

	receiver, err := e.userStor.GetUserByID(session.ReceiverID)
	if err != nil {
		run.setErr(fmt.Errorf("%w: resolving receiver identity: %s", ErrExternalProvider, err))
		e.failRun(session, files, fmt.Sprintf("resolving receiver identity: %s", err))
		return
	}

	for i := range files {
		ft := &files[i]

		if err := e.fileStor.MarkFileTransferring(ft.ID, time.Now()); err != nil {
			// Best-effort bookkeeping; the transfer itself still runs.
			logger.Errorf("Failed marking file %d as transferring: %s", ft.ID, err)
		}

		if err := e.transferFile(ctx, senderToken, receiver, ft); err != nil {
			logger.Errorf("Transfer of file %s (%s) failed: %s", ft.FileName, ft.SourceFileID, err)
			if perr := e.fileStor.MarkFileFailed(ft.ID, err.Error()); perr != nil {
				logger.Errorf("Failed recording failure for file %d: %s", ft.ID, perr)
			}
			continue
		}

		if perr := e.fileStor.MarkFileCompleted(ft.ID, time.Now()); perr != nil {
			// The remote side effect already happened and can't be undone;
			// all we can do is log the bookkeeping failure and move on.
			logger.Errorf("Failed recording completion for file %d: %s", ft.ID, perr)
		}
	}

	// Every file was attempted, so the session ran to completion even if
	// some files failed. Per-file outcomes stay on the file rows.
	if err := e.sessionStor.UpdateSessionStatus(session.ID, homodel.SessionTransferring, homodel.SessionCompleted); err != nil {
		logger.Errorf("Failed marking session %s completed: %s", session.SessionToken, err)
	}

	logger.Infof("Finished batch transfer for session %s", session.SessionToken)
}

// transferFile performs the two-step grant for one file: make sure the
// receiver holds at least a writer permission, then promote that grant to
// owner.
func (e *BatchEngine) transferFile(ctx context.Context, token *oauth2.Token, receiver *homodel.User, ft *homodel.FileTransfer) error {
	receiverEmail := receiver.DriveIdentity
	if receiverEmail == "" {
		receiverEmail = receiver.Email
	}

	permissions, err := e.client.ListPermissions(ctx, token, ft.SourceFileID)
	if err != nil {
		return fmt.Errorf("%w: listing permissions: %s", ErrExternalProvider, err)
	}

	var grant *drive.Permission
	for i := range permissions {
		if permissions[i].EmailAddress == receiverEmail {
			grant = &permissions[i]
			break
		}
	}

	if grant == nil {
		if grant, err = e.client.CreateWriterPermission(ctx, token, ft.SourceFileID, receiverEmail); err != nil {
			return fmt.Errorf("%w: creating writer permission: %s", ErrExternalProvider, err)
		}
	}

	if grant.Role == drive.RoleOwner {
		return nil
	}

	if _, err = e.client.TransferOwnership(ctx, token, ft.SourceFileID, grant.ID); err != nil {
		return fmt.Errorf("%w: transferring ownership: %s", ErrExternalProvider, err)
	}

	return nil
}

// failRun fails every not-yet-terminal file with the run-level reason and
// moves the session to failed. Called when the batch as a whole can't
// proceed, so no file remains pending after the run finishes.
func (e *BatchEngine) failRun(session *homodel.TransferSession, files []homodel.FileTransfer, reason string) {
	logger := clog.UsingSession(session.SessionToken)

	for i := range files {
		if files[i].Status.IsTerminal() {
			continue
		}

		if err := e.fileStor.MarkFileFailed(files[i].ID, reason); err != nil {
			logger.Errorf("Failed recording failure for file %d: %s", files[i].ID, err)
		}
	}

	if err := e.sessionStor.UpdateSessionStatus(session.ID, homodel.SessionTransferring, homodel.SessionFailed); err != nil {
		logger.Errorf("Failed marking session %s failed: %s", session.SessionToken, err)
	}

	logger.Errorf("Batch transfer for session %s failed: %s", session.SessionToken, reason)
}
