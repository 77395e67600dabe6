package testfire

import (
	"fmt"
	"time"

	"enginelab/engine/actors"
	"github.com/nbd-wtf/go-nostr"
)

// Retract builds a signed deletion request (kind 5) for a test-fire event. Only the key that
// signed the report can retract it.
func Retract(report nostr.Event, reason, privateKey string) (r nostr.Event, err error) {
	if report.Kind != actors.TestFireKind {
		return r, fmt.Errorf("%w: kind %d", ErrWrongKind, report.Kind)
	}
	pubkey, err := actors.PubKey(privateKey)
	if err != nil {
		return r, err
	}
	if pubkey != report.PubKey {
		return r, fmt.Errorf("report %s was signed by %s, not %s", report.ID, report.PubKey, pubkey)
	}
	r = nostr.Event{
		PubKey:    pubkey,
		CreatedAt: nostr.Timestamp(time.Now().Unix()),
		Kind:      5,
		Tags: nostr.Tags{nostr.Tag{
			"e", report.ID},
		},
		Content: reason,
	}
	r.ID = r.GetID()
	err = r.Sign(privateKey)
	return
}
