package transfer

import (
	"time"

	"github.com/handoff-labs/handoff/pkg/hodb/homodel"
	"github.com/handoff-labs/handoff/pkg/hodb/stor"
)

// DefaultSessionTTL is how long a session stays usable after creation.
const DefaultSessionTTL = 24 * time.Hour

// Orchestrator owns the session lifecycle. Every status transition goes
// through it; the batch engine only ever moves a session out of
// transferring. All validation failures are rejected synchronously with a
// typed error and no partial mutation.
type Orchestrator struct {
	stors      *stor.Stors
	engine     *BatchEngine
	sessionTTL time.Duration
}

type OrchestratorOptionFN func(*Orchestrator)

func WithSessionTTL(ttl time.Duration) OrchestratorOptionFN {
	return func(o *Orchestrator) {
		o.sessionTTL = ttl
	}
}

func NewOrchestrator(stors *stor.Stors, engine *BatchEngine, optFNs ...OrchestratorOptionFN) *Orchestrator {
	o := &Orchestrator{
		stors:      stors,
		engine:     engine,
		sessionTTL: DefaultSessionTTL,
	}

	for _, optfn := range optFNs {
		optfn(o)
	}

	return o
}

// ManifestEntry is one requested file, snapshotted at session creation.
type ManifestEntry struct {
	SourceFileID string `json:"source_file_id"`
	FileName     string `json:"file_name"`
	FileType     string `json:"file_type"`
	FileSize     int64  `json:"file_size"`
}

// CreateSession creates a pending session for the sender/receiver pair and
// one file transfer row per manifest entry. The receiver must already be
// known and hold provider credentials; nothing is persisted when any
// validation fails.
func (o *Orchestrator) CreateSession(senderID int, receiverEmail string, manifest []ManifestEntry) (*homodel.TransferSession, error) {
	if len(manifest) == 0 {
		return nil, invalidManifestError("file list is empty")
	}

	for i := range manifest {
		if manifest[i].SourceFileID == "" {
			return nil, invalidManifestError("manifest entry %d has no source file id", i)
		}
	}

	sender, err := o.stors.UserStor.GetUserByID(senderID)
	if err != nil {
		if stor.IsRecordNotFound(err) {
			return nil, notFoundError("no user %d", senderID)
		}
		return nil, persistenceError(err)
	}

	receiver, err := o.stors.UserStor.GetUserByEmail(receiverEmail)
	if err != nil {
		if stor.IsRecordNotFound(err) {
			return nil, ErrReceiverNotFound
		}
		return nil, persistenceError(err)
	}

	if !receiver.HasDriveTokens() {
		return nil, ErrReceiverNotFound
	}

	if sender.ID == receiver.ID {
		return nil, invalidRequestError("sender and receiver must be different users")
	}

	now := time.Now()
	session := &homodel.TransferSession{
		Status:     homodel.SessionPending,
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		ExpiresAt:  now.Add(o.sessionTTL),
	}

	files := make([]homodel.FileTransfer, len(manifest))
	for i := range manifest {
		files[i] = homodel.FileTransfer{
			SourceFileID:    manifest[i].SourceFileID,
			FileName:        manifest[i].FileName,
			FileType:        manifest[i].FileType,
			FileSize:        manifest[i].FileSize,
			OriginalOwnerID: sender.ID,
			NewOwnerID:      receiver.ID,
		}
	}

	session, err = o.stors.TransferSessionStor.CreateTransferSession(session, files)
	if err != nil {
		return nil, persistenceError(err)
	}

	return session, nil
}

// GetSession returns the session with its file rows. Expired sessions are
// not found, even before the sweeper has marked them.
func (o *Orchestrator) GetSession(sessionToken string) (*homodel.TransferSession, error) {
	return o.loadSession(sessionToken)
}

// AcceptSession is the receiver agreeing to take ownership. Only the
// session's receiver may accept, and only while the session is pending.
func (o *Orchestrator) AcceptSession(sessionToken string, callerID int) error {
	session, err := o.loadSession(sessionToken)
	if err != nil {
		return err
	}

	if callerID != session.ReceiverID {
		return unauthorizedError("user %d is not the session receiver", callerID)
	}

	if session.Status != homodel.SessionPending {
		return invalidTransitionError("cannot accept a session in status %s", session.Status)
	}

	return o.updateStatus(session.ID, homodel.SessionPending, homodel.SessionAuthenticated)
}

// RejectSession is the receiver (or sender) declining the handoff. It is
// identical to cancelling; both exist because callers distinguish them.
func (o *Orchestrator) RejectSession(sessionToken string, callerID int) error {
	return o.CancelSession(sessionToken, callerID)
}

// CancelSession moves a session to cancelled. Either party can cancel up
// until the transfer starts; once the batch is running there is no
// cancellation hook. Cancelling an already-cancelled session is a no-op.
func (o *Orchestrator) CancelSession(sessionToken string, callerID int) error {
	session, err := o.loadSession(sessionToken)
	if err != nil {
		return err
	}

	if callerID != session.SenderID && callerID != session.ReceiverID {
		return unauthorizedError("user %d is not part of the session", callerID)
	}

	switch session.Status {
	case homodel.SessionCancelled:
		// Idempotent: cancelling twice succeeds both times.
		return nil
	case homodel.SessionTransferring:
		return invalidTransitionError("cannot cancel a session whose transfer has started")
	case homodel.SessionCompleted, homodel.SessionFailed, homodel.SessionExpired:
		return invalidTransitionError("cannot cancel a session in status %s", session.Status)
	}

	return o.updateStatus(session.ID, session.Status, homodel.SessionCancelled)
}

// StartTransfer transitions an accepted session to transferring and kicks
// off the batch on its own goroutine. It returns the file count
// immediately, before any individual transfer completes. The optimistic
// status update means two concurrent calls launch exactly one batch.
func (o *Orchestrator) StartTransfer(sessionToken string) (int, error) {
	session, err := o.loadSession(sessionToken)
	if err != nil {
		return 0, err
	}

	if !session.Status.CanTransitionTo(homodel.SessionTransferring) {
		return 0, invalidTransitionError("cannot start a transfer from status %s", session.Status)
	}

	if err := o.updateStatus(session.ID, session.Status, homodel.SessionTransferring); err != nil {
		return 0, err
	}

	session.Status = homodel.SessionTransferring
	o.engine.Launch(session)

	return len(session.FileTransfers), nil
}

// GetProgress is the polling view: session status plus per-file counts,
// readable in any state.
func (o *Orchestrator) GetProgress(sessionToken string) (*Progress, error) {
	session, err := o.loadSession(sessionToken)
	if err != nil {
		return nil, err
	}

	finished := session.Status.IsTerminal()
	if run, ok := o.engine.RunForSession(sessionToken); ok && run.Finished() {
		finished = true
	}

	return buildProgress(session, finished), nil
}

// SessionSummary is one history entry for a user.
type SessionSummary struct {
	SessionToken string                `json:"session_token"`
	Status       homodel.SessionStatus `json:"status"`
	SenderID     int                   `json:"sender_id"`
	ReceiverID   int                   `json:"receiver_id"`
	FileCount    int                   `json:"file_count"`
	CreatedAt    time.Time             `json:"created_at"`
	ExpiresAt    time.Time             `json:"expires_at"`
}

// ListHistory returns the sessions a user was part of, newest first.
func (o *Orchestrator) ListHistory(userID, page, pageSize int) ([]SessionSummary, error) {
	sessions, err := o.stors.TransferSessionStor.ListSessionsForUser(userID, page, pageSize)
	if err != nil {
		return nil, persistenceError(err)
	}

	var summaries []SessionSummary
	for i := range sessions {
		files, err := o.stors.FileTransferStor.GetFileTransfersForSession(sessions[i].ID)
		if err != nil {
			return nil, persistenceError(err)
		}

		summaries = append(summaries, SessionSummary{
			SessionToken: sessions[i].SessionToken,
			Status:       sessions[i].Status,
			SenderID:     sessions[i].SenderID,
			ReceiverID:   sessions[i].ReceiverID,
			FileCount:    len(files),
			CreatedAt:    sessions[i].CreatedAt,
			ExpiresAt:    sessions[i].ExpiresAt,
		})
	}

	return summaries, nil
}

// ExpireSessions marks every session past its deadline as expired and
// returns how many were swept.
func (o *Orchestrator) ExpireSessions(now time.Time) (int64, error) {
	expired, err := o.stors.TransferSessionStor.ExpireSessions(now)
	if err != nil {
		return 0, persistenceError(err)
	}

	return expired, nil
}

func (o *Orchestrator) loadSession(sessionToken string) (*homodel.TransferSession, error) {
	session, err := o.stors.TransferSessionStor.GetSessionByToken(sessionToken)
	if err != nil {
		if stor.IsRecordNotFound(err) {
			return nil, notFoundError("no session for token")
		}
		return nil, persistenceError(err)
	}

	return session, nil
}

func (o *Orchestrator) updateStatus(sessionID int, from, to homodel.SessionStatus) error {
	err := o.stors.TransferSessionStor.UpdateSessionStatus(sessionID, from, to)
	switch {
	case err == nil:
		return nil
	case err == stor.ErrStaleStatus:
		return invalidTransitionError("session status changed concurrently")
	default:
		return persistenceError(err)
	}
}
