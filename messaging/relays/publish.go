// Package relays pushes signed events out to nostr relays.
package relays

import (
	"context"
	"fmt"
	"time"

	"enginelab/engine/library"
	"github.com/nbd-wtf/go-nostr"
	"github.com/sasha-s/go-deadlock"
)

// Timeout bounds the connection and each publish on a single relay.
var Timeout = 10 * time.Second

// PublishToRelays sends every event to every relay concurrently and returns the number of relays
// that accepted all of them. Failures are logged and do not stop the other relays.
func PublishToRelays(events []nostr.Event, relays []string) int {
	if len(events) == 0 || len(relays) == 0 {
		return 0
	}
	var wg = &deadlock.WaitGroup{}
	var mutex = &deadlock.Mutex{}
	var ok int
	for _, relay := range relays {
		wg.Add(1)
		go func(relay string) {
			defer wg.Done()
			if publish(relay, events) {
				mutex.Lock()
				ok++
				mutex.Unlock()
			}
		}(relay)
	}
	wg.Wait()
	library.LogCLI(fmt.Sprintf("published %d events to %d of %d relays", len(events), ok, len(relays)), 4)
	return ok
}

func publish(url string, events []nostr.Event) bool {
	ctx, cancel := context.WithTimeout(context.Background(), Timeout)
	defer cancel()
	relay, err := nostr.RelayConnect(ctx, url)
	if err != nil {
		library.LogCLI(fmt.Sprintf("could not connect to relay %s: %s", url, err), 2)
		return false
	}
	defer relay.Close()
	for _, event := range events {
		pctx, pcancel := context.WithTimeout(context.Background(), Timeout)
		_, err := relay.Publish(pctx, event)
		pcancel()
		if err != nil {
			library.LogCLI(fmt.Sprintf("could not publish %s to relay %s: %s", event.ID, url, err), 2)
			return false
		}
	}
	return true
}
