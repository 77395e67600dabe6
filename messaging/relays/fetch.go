package relays

import (
	"context"
	"fmt"

	"enginelab/engine/library"
	"github.com/nbd-wtf/go-nostr"
	"github.com/sasha-s/go-deadlock"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// FetchEvents queries every relay concurrently and returns the matching events, deduplicated by ID
// and oldest first. A relay that cannot be reached is logged and skipped.
func FetchEvents(urls []string, filters nostr.Filters) []nostr.Event {
	events := make(map[string]nostr.Event)
	eventsMu := &deadlock.Mutex{}
	wait := &deadlock.WaitGroup{}
	for _, url := range urls {
		wait.Add(1)
		go func(url string) {
			defer wait.Done()
			ctx, cancel := context.WithTimeout(context.Background(), Timeout)
			defer cancel()
			relay, err := nostr.RelayConnect(ctx, url)
			if err != nil {
				library.LogCLI(fmt.Sprintf("could not connect to relay %s: %s", url, err), 2)
				return
			}
			defer relay.Close()
			sub, err := relay.Subscribe(ctx, filters)
			if err != nil {
				library.LogCLI(err.Error(), 1)
				return
			}
			defer sub.Close()
		L:
			for {
				select {
				case ev, ok := <-sub.Events:
					if !ok {
						break L
					}
					eventsMu.Lock()
					events[ev.ID] = *ev
					eventsMu.Unlock()
				case <-sub.EndOfStoredEvents:
					break L
				case <-ctx.Done():
					break L
				}
			}
		}(url)
	}
	wait.Wait()
	out := maps.Values(events)
	slices.SortFunc(out, func(a, b nostr.Event) bool {
		if a.CreatedAt == b.CreatedAt {
			return a.ID < b.ID
		}
		return a.CreatedAt < b.CreatedAt
	})
	return out
}
