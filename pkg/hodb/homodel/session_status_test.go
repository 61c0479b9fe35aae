package homodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionStatusTransitions(t *testing.T) {
	tests := []struct {
		from    SessionStatus
		to      SessionStatus
		allowed bool
	}{
		{SessionPending, SessionAuthenticated, true},
		{SessionPending, SessionCancelled, true},
		{SessionPending, SessionTransferring, false},
		{SessionPending, SessionCompleted, false},
		{SessionAuthenticated, SessionTransferring, true},
		{SessionAuthenticated, SessionCancelled, true},
		{SessionAuthenticated, SessionCompleted, false},
		{SessionTransferring, SessionCompleted, true},
		{SessionTransferring, SessionFailed, true},
		{SessionTransferring, SessionCancelled, true},
		{SessionTransferring, SessionAuthenticated, false},
		{SessionCompleted, SessionTransferring, false},
		{SessionCancelled, SessionPending, false},
		{SessionFailed, SessionTransferring, false},
		{SessionExpired, SessionPending, false},
		{SessionPending, SessionExpired, true},
		{SessionTransferring, SessionExpired, true},
		{SessionCompleted, SessionExpired, false},
	}

	for _, test := range tests {
		got := test.from.CanTransitionTo(test.to)
		assert.Equalf(t, test.allowed, got, "%s -> %s", test.from, test.to)
	}
}

func TestSessionStatusTerminal(t *testing.T) {
	assert.False(t, SessionPending.IsTerminal())
	assert.False(t, SessionAuthenticated.IsTerminal())
	assert.False(t, SessionTransferring.IsTerminal())
	assert.True(t, SessionCompleted.IsTerminal())
	assert.True(t, SessionFailed.IsTerminal())
	assert.True(t, SessionCancelled.IsTerminal())
	assert.True(t, SessionExpired.IsTerminal())
}

func TestFileStatusTerminal(t *testing.T) {
	assert.False(t, FilePending.IsTerminal())
	assert.False(t, FileTransferring.IsTerminal())
	assert.True(t, FileCompleted.IsTerminal())
	assert.True(t, FileFailed.IsTerminal())
	assert.True(t, FileSkipped.IsTerminal())
}
