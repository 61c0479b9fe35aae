package homodel

// SessionStatus is the closed set of states a transfer session moves
// through. The value is persisted as a string but all transition checks go
// through CanTransitionTo so an unknown or out-of-order state never makes
// it into the database.
type SessionStatus string

const (
	SessionPending       SessionStatus = "pending"
	SessionAuthenticated SessionStatus = "authenticated"

	// SessionFileSelected is reserved for a future flow where the receiver
	// picks a subset of the manifest. Nothing transitions into it today.
	SessionFileSelected SessionStatus = "file_selected"

	SessionTransferring SessionStatus = "transferring"
	SessionCompleted    SessionStatus = "completed"
	SessionFailed       SessionStatus = "failed"
	SessionCancelled    SessionStatus = "cancelled"
	SessionExpired      SessionStatus = "expired"
)

// IsTerminal reports whether no further transitions are allowed out of s.
func (s SessionStatus) IsTerminal() bool {
	switch s {
	case SessionCompleted, SessionFailed, SessionCancelled, SessionExpired:
		return true
	case SessionPending, SessionAuthenticated, SessionFileSelected, SessionTransferring:
		return false
	}

	return false
}

// CanTransitionTo reports whether next is a legal edge out of s. Cancelling
// is allowed from pending and authenticated (either party backing out) and
// from transferring only as the terminal outcome of a failed run; users
// cannot cancel once the batch has started, which CancelSession enforces
// separately. Expiry applies to any non-terminal state.
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	if next == SessionExpired {
		return !s.IsTerminal()
	}

	switch s {
	case SessionPending:
		return next == SessionAuthenticated || next == SessionCancelled
	case SessionAuthenticated:
		return next == SessionTransferring || next == SessionCancelled
	case SessionFileSelected:
		return next == SessionTransferring || next == SessionCancelled
	case SessionTransferring:
		return next == SessionCompleted || next == SessionFailed || next == SessionCancelled
	case SessionCompleted, SessionFailed, SessionCancelled, SessionExpired:
		return false
	}

	return false
}

func (s SessionStatus) IsKnown() bool {
	switch s {
	case SessionPending, SessionAuthenticated, SessionFileSelected,
		SessionTransferring, SessionCompleted, SessionFailed,
		SessionCancelled, SessionExpired:
		return true
	}

	return false
}
