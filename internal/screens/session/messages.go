package session

import (
	tea "charm.land/bubbletea/v2"

	sess "github.com/abhisek/histquiz/internal/session"
)

// sessionChangedMsg is sent when the session reports a state change.
type sessionChangedMsg struct{}

// Bridge forwards session observer callbacks into the Bubble Tea event
// loop. Notifications are coalesced: the screen always re-reads the
// latest snapshot, so one pending wake-up is enough.
type Bridge struct {
	wake chan struct{}
}

var _ sess.Observer = (*Bridge)(nil)

// NewBridge creates a Bridge. Pass it to the session with
// sess.WithObserver and to the screen with New.
func NewBridge() *Bridge {
	return &Bridge{wake: make(chan struct{}, 1)}
}

func (b *Bridge) notify() {
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

func (b *Bridge) OnStateChange(sess.Snapshot)   { b.notify() }
func (b *Bridge) OnLoadError(error)             { b.notify() }
func (b *Bridge) OnSessionFinished(sess.Result) { b.notify() }

// wait blocks until the session changes.
func (b *Bridge) wait() tea.Msg {
	<-b.wake
	return sessionChangedMsg{}
}
