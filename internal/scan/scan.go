// Package scan bridges decoded QR payloads to the item registry. The camera
// decode loop may emit the same payload many times per second while a code
// is in view, so acting on a scan goes through a per-station session that
// debounces repeats and refuses a second in-flight action for the same
// serial until the first resolves.
package scan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/store"
)

// ErrDebounced means the scan event was suppressed: either it repeats the
// immediately-preceding decoded value or an action for the same serial is
// still in flight. Not a failure; the caller simply ignores the event.
var ErrDebounced = errors.New("duplicate scan event suppressed")

// Dispatcher resolves decoded serials against the item registry. It is
// stateless between calls; all per-station state lives in a Session.
type Dispatcher struct {
	DB *sql.DB
}

// Verify looks up the item for a decoded serial without mutating anything.
// A nil item with a nil error is the distinct "unknown item" result shown to
// the operator on a fresh scan of an unregistered code.
func (d *Dispatcher) Verify(ctx context.Context, serial string) (*model.Item, error) {
	return store.GetItemBySerial(ctx, d.DB, serial)
}

// Act applies an explicit action for a decoded serial through the session's
// debounce. On success after a terminal action (accept or damage) the
// session resets, so the next decode of any code goes through.
func (d *Dispatcher) Act(ctx context.Context, session *Session, serial, action, shipmentID string) (*model.Item, error) {
	// Malformed requests are rejected before they touch the debounce state.
	act, ok := model.ParseAction(action)
	if !ok {
		return nil, fmt.Errorf("%w: %q", store.ErrUnknownAction, action)
	}

	if !session.begin(serial) {
		return nil, ErrDebounced
	}

	item, err := store.ApplyScan(ctx, d.DB, serial, string(act), shipmentID)
	session.finish(serial, err == nil && model.Terminal(act))
	return item, err
}

// Session is the mutable scan state of a single operator station: the last
// decoded value (debounce key) and the serials with an action in flight. It
// is owned by the calling context, not shared across stations.
type Session struct {
	mu       sync.Mutex
	last     string
	inFlight map[string]bool
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{inFlight: make(map[string]bool)}
}

// Reset clears the debounce key, as when the operator requests "scan next".
// In-flight actions are unaffected.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = ""
}

// begin records the intent to act on serial. It reports false if the event
// should be suppressed.
func (s *Session) begin(serial string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if serial == s.last || s.inFlight[serial] {
		return false
	}
	s.inFlight[serial] = true
	return true
}

// finish resolves an in-flight action. The serial becomes the new debounce
// key unless the action was terminal, which resets the session instead.
func (s *Session) finish(serial string, terminal bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, serial)
	if terminal {
		s.last = ""
	} else {
		s.last = serial
	}
}
