// Package hangar keeps one design session per owner.
package hangar

import (
	"errors"
	"fmt"

	"enginelab/engine/library"
	"enginelab/state/design"
	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var ErrNoSession = errors.New("no open session")

type bay struct {
	session *design.Session
	mutex   *deadlock.Mutex
}

type Hangar struct {
	bays  map[library.Owner]*bay
	mutex *deadlock.Mutex
}

func New() *Hangar {
	return &Hangar{
		bays:  make(map[library.Owner]*bay),
		mutex: &deadlock.Mutex{},
	}
}

// Open returns the owner's session, starting one on the given level if the owner has none yet.
func (h *Hangar) Open(owner library.Owner, level int) (*design.Session, error) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if b, ok := h.bays[owner]; ok {
		return b.session, nil
	}
	s, err := design.NewForLevel(uuid.NewString(), level)
	if err != nil {
		return nil, err
	}
	h.bays[owner] = &bay{session: s, mutex: &deadlock.Mutex{}}
	library.LogCLI(fmt.Sprintf("hangar: opened session %s for %s on level %d", s.ID(), owner, level), 4)
	return s, nil
}

func (h *Hangar) Get(owner library.Owner) (*design.Session, bool) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	b, ok := h.bays[owner]
	if !ok {
		return nil, false
	}
	return b.session, true
}

// Do runs fn with the owner's session while holding that session's lock. Callers that share a
// session between goroutines should only touch it from inside Do.
func (h *Hangar) Do(owner library.Owner, fn func(s *design.Session) error) error {
	h.mutex.Lock()
	b, ok := h.bays[owner]
	h.mutex.Unlock()
	if !ok {
		return fmt.Errorf("%w for %s", ErrNoSession, owner)
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return fn(b.session)
}

// Close drops the owner's session. It reports false if there was none.
func (h *Hangar) Close(owner library.Owner) bool {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	b, ok := h.bays[owner]
	if !ok {
		return false
	}
	delete(h.bays, owner)
	library.LogCLI(fmt.Sprintf("hangar: closed session %s for %s", b.session.ID(), owner), 4)
	return true
}

// Owners lists everyone with an open session, sorted.
func (h *Hangar) Owners() []library.Owner {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	owners := maps.Keys(h.bays)
	slices.Sort(owners)
	return owners
}
