package login

import (
	"fmt"
	"sync"

	"github.com/jrsteele09/go-login-manager/account"
)

// LoginListener is notified whenever the set of logged-in accounts changes.
// Notifications carry a detached snapshot and are dispatched only after the
// corresponding state is already persisted.
type LoginListener interface {
	StatusChanged(accounts account.Snapshot)
}

// LoginListenerFunc adapts a function to the LoginListener interface.
type LoginListenerFunc func(account.Snapshot)

func (f LoginListenerFunc) StatusChanged(accounts account.Snapshot) {
	f(accounts)
}

// listenerList is the one synchronized structure in the manager: listeners
// may be registered concurrently with notification dispatch.
type listenerList struct {
	mu        sync.Mutex
	listeners []LoginListener
}

func (l *listenerList) add(listener LoginListener) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.listeners = append(l.listeners, listener)
}

// notify dispatches the snapshot to every listener. A panicking listener is
// isolated, logged, and must not block the remaining listeners.
func (l *listenerList) notify(snapshot account.Snapshot, logger LoggerFacade) {
	l.mu.Lock()
	listeners := append([]LoginListener(nil), l.listeners...)
	l.mu.Unlock()

	for _, listener := range listeners {
		dispatch(listener, snapshot, logger)
	}
}

func dispatch(listener LoginListener, snapshot account.Snapshot, logger LoggerFacade) {
	defer func() {
		if r := recover(); r != nil {
			logger.LogError("login listener panicked", fmt.Errorf("%v", r))
		}
	}()
	listener.StatusChanged(snapshot)
}
