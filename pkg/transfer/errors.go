package transfer

import (
	"errors"
	"fmt"
)

// The error kinds every orchestrator operation can fail with. Callers match
// with errors.Is; the web layer maps kinds onto HTTP statuses and only ever
// exposes the kind name plus, outside production, the diagnostic detail.
var (
	ErrNotFound               = errors.New("not found")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrInvalidManifest        = errors.New("invalid manifest")
	ErrInvalidRequest         = errors.New("invalid request")
	ErrExternalProvider       = errors.New("external provider error")
	ErrPersistence            = errors.New("persistence error")
)

// ErrReceiverNotFound is a NotFound specialization: the named receiver
// either doesn't exist or has never authenticated with the provider.
var ErrReceiverNotFound = fmt.Errorf("%w: receiver", ErrNotFound)

func notFoundError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func unauthorizedError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, fmt.Sprintf(format, args...))
}

func invalidTransitionError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidStateTransition, fmt.Sprintf(format, args...))
}

func invalidManifestError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidManifest, fmt.Sprintf(format, args...))
}

func invalidRequestError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

func persistenceError(err error) error {
	return fmt.Errorf("%w: %s", ErrPersistence, err)
}

// Kind returns the stable name for an error's kind, suitable for returning
// to callers without leaking internals. Unrecognized errors report as
// "internal".
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrInvalidStateTransition):
		return "invalid_state_transition"
	case errors.Is(err, ErrInvalidManifest):
		return "invalid_manifest"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, ErrExternalProvider):
		return "external_provider_error"
	case errors.Is(err, ErrPersistence):
		return "persistence_error"
	default:
		return "internal"
	}
}
