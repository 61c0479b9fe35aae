package transfer

import (
	"context"
	"time"

	"github.com/handoff-labs/handoff/pkg/clog"
	"github.com/handoff-labs/handoff/pkg/hodb/stor"
)

const DefaultSweepInterval = 5 * time.Minute

// ExpirySweeper periodically marks sessions past their deadline as
// expired. Expired-but-not-yet-swept sessions are already invisible to
// token lookups, so the sweep is bookkeeping, not enforcement.
type ExpirySweeper struct {
	sessionStor stor.TransferSessionStor
	interval    time.Duration
}

type ExpirySweeperOptionFN func(*ExpirySweeper)

func NewExpirySweeper(optFNs ...ExpirySweeperOptionFN) *ExpirySweeper {
	s := &ExpirySweeper{interval: DefaultSweepInterval}

	for _, optfn := range optFNs {
		optfn(s)
	}

	return s
}

func WithSessionStor(sessionStor stor.TransferSessionStor) ExpirySweeperOptionFN {
	return func(s *ExpirySweeper) {
		s.sessionStor = sessionStor
	}
}

func WithSweepInterval(interval time.Duration) ExpirySweeperOptionFN {
	return func(s *ExpirySweeper) {
		s.interval = interval
	}
}

func (s *ExpirySweeper) Run(c context.Context) {
	for {
		s.sweep()
		select {
		case <-c.Done():
			return
		case <-time.After(s.interval):
		}
	}
}

func (s *ExpirySweeper) sweep() {
	expired, err := s.sessionStor.ExpireSessions(time.Now())
	if err != nil {
		clog.Global().Errorf("Failed expiring sessions: %s", err)
		return
	}

	if expired != 0 {
		clog.Global().Infof("Expired %d session(s)", expired)
	}
}
