// Package testfire turns a finished design into a signed, verifiable test-fire report and queues
// reports for publishing.
package testfire

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"enginelab/engine/actors"
	"enginelab/engine/library"
	"enginelab/libraries/catalog"
	"enginelab/libraries/propulsion"
	"enginelab/state/design"
	"github.com/nbd-wtf/go-nostr"
)

var (
	ErrNotReady  = errors.New("design is not ready for test")
	ErrWrongKind = errors.New("not a test-fire event")
	ErrTampered  = errors.New("event does not match its contents")
)

type Report struct {
	SessionID   string                       `json:"session_id"`
	Level       int                          `json:"level"`
	LevelName   string                       `json:"level_name"`
	Propellant  catalog.PropellantKey        `json:"propellant"`
	Components  []propulsion.ComponentConfig `json:"components"`
	Performance propulsion.EnginePerformance `json:"performance"`
	Objectives  []design.ObjectiveResult     `json:"objectives"`
	Passed      bool                         `json:"passed"`
}

// Build snapshots the session. It fails with ErrNotReady when the design is invalid or over budget.
func Build(s *design.Session) (Report, error) {
	if !s.IsReadyForTest() {
		return Report{}, fmt.Errorf("session %s: %w", s.ID(), ErrNotReady)
	}
	results := s.CheckLevelObjectives()
	return Report{
		SessionID:   s.ID(),
		Level:       s.Level().ID,
		LevelName:   s.Level().Name,
		Propellant:  s.Propellant().Key,
		Components:  s.Components(),
		Performance: s.Performance(),
		Objectives:  results,
		Passed:      design.Passed(results),
	}, nil
}

// Fingerprint identifies a component list independent of who built it or when.
func (r Report) Fingerprint() library.Sha256 {
	return library.Sha256Sum(r.Components)
}

// Event wraps the report in a signed event.
func Event(r Report, privateKey string) (nostr.Event, error) {
	content, err := json.Marshal(r)
	if err != nil {
		return nostr.Event{}, err
	}
	fingerprint := r.Fingerprint()
	if fingerprint == "" {
		return nostr.Event{}, fmt.Errorf("session %s: design cannot be fingerprinted", r.SessionID)
	}
	pubkey, err := actors.PubKey(privateKey)
	if err != nil {
		return nostr.Event{}, err
	}
	e := nostr.Event{
		PubKey:    pubkey,
		CreatedAt: nostr.Timestamp(time.Now().Unix()),
		Kind:      actors.TestFireKind,
		Tags: nostr.Tags{
			nostr.Tag{"d", fingerprint},
			nostr.Tag{"thrust", fmt.Sprintf("%.2f", r.Performance.Thrust)},
			nostr.Tag{"isp", fmt.Sprintf("%.1f", r.Performance.SpecificImpulse)},
			nostr.Tag{"level", fmt.Sprintf("%d", r.Level)},
		},
		Content: string(content),
	}
	e.ID = e.GetID()
	if err := e.Sign(privateKey); err != nil {
		return nostr.Event{}, err
	}
	return e, nil
}

// Verify checks that e is a correctly signed test-fire event and returns the report it carries.
func Verify(e nostr.Event) (Report, error) {
	if e.Kind != actors.TestFireKind {
		return Report{}, fmt.Errorf("%w: kind %d", ErrWrongKind, e.Kind)
	}
	if e.GetID() != e.ID {
		return Report{}, fmt.Errorf("%w: id", ErrTampered)
	}
	if ok, err := e.CheckSignature(); !ok {
		if err != nil {
			return Report{}, fmt.Errorf("%w: %s", ErrTampered, err)
		}
		return Report{}, fmt.Errorf("%w: signature", ErrTampered)
	}
	var r Report
	if err := json.Unmarshal([]byte(e.Content), &r); err != nil {
		return Report{}, err
	}
	if d, _ := library.GetFirstTag(e, "d"); d == "" || d != r.Fingerprint() {
		return Report{}, fmt.Errorf("%w: fingerprint", ErrTampered)
	}
	return r, nil
}
