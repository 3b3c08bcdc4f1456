// Package app wires the session, the route guard and the auth calls into the
// client's navigation flow.
package app

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/smartshelf/inventory-system/internal/client/guard"
	"github.com/smartshelf/inventory-system/internal/client/session"
)

const maxRedirects = 3

var (
	ErrUnknownRoute     = errors.New("unknown route")
	ErrTooManyRedirects = errors.New("too many redirects")
)

// Session is the part of the session manager the navigator reads and
// listens to.
type Session interface {
	guard.SessionReader
	Subscribe(fn func(session.Event)) (unsubscribe func())
}

// Navigator tracks the current route. Every move goes through the guard.
type Navigator struct {
	session Session
	log     zerolog.Logger

	mu          sync.Mutex
	current     string
	unsubscribe func()
}

// NewNavigator starts at the login page and follows session invalidation
// back to it.
func NewNavigator(s Session, log zerolog.Logger) *Navigator {
	n := &Navigator{session: s, log: log, current: guard.PathLogin}
	n.unsubscribe = s.Subscribe(func(evt session.Event) {
		n.log.Info().Str("reason", evt.Reason).Msg("session ended, returning to login")
		n.setCurrent(guard.PathLogin)
	})
	return n
}

// Navigate asks the guard for path and follows redirects. It returns the
// route that was finally rendered.
func (n *Navigator) Navigate(path string) (string, error) {
	route, ok := guard.Lookup(path)
	if !ok {
		return n.Current(), fmt.Errorf("%w: %s", ErrUnknownRoute, path)
	}

	for hop := 0; hop <= maxRedirects; hop++ {
		d := guard.Decide(n.session, route)
		if d.Outcome == guard.Allow {
			n.setCurrent(d.Target)
			return d.Target, nil
		}

		n.log.Debug().
			Str("from", route.Path).
			Str("to", d.Target).
			Stringer("outcome", d.Outcome).
			Msg("redirect")

		route, ok = guard.Lookup(d.Target)
		if !ok {
			return n.Current(), fmt.Errorf("%w: %s", ErrUnknownRoute, d.Target)
		}
	}
	return n.Current(), fmt.Errorf("%w: %s", ErrTooManyRedirects, path)
}

func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *Navigator) setCurrent(path string) {
	n.mu.Lock()
	n.current = path
	n.mu.Unlock()
}

// Close stops listening for session events.
func (n *Navigator) Close() {
	if n.unsubscribe != nil {
		n.unsubscribe()
	}
}
