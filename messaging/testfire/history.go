package testfire

import (
	"fmt"

	"enginelab/engine/actors"
	"enginelab/engine/library"
	"enginelab/messaging/relays"
	"github.com/nbd-wtf/go-nostr"
)

// Filter selects test-fire events signed by author.
func Filter(author library.Account) nostr.Filters {
	return nostr.Filters{nostr.Filter{
		Kinds:   []int{actors.TestFireKind},
		Authors: []string{author},
	}}
}

// Reports verifies each event and keeps the ones that carry a genuine report, oldest first.
// Anything that fails verification is logged and dropped.
func Reports(events []nostr.Event) []Report {
	var out []Report
	for _, e := range events {
		r, err := Verify(e)
		if err != nil {
			library.LogCLI(fmt.Sprintf("dropping event %s: %s", e.ID, err), 2)
			continue
		}
		out = append(out, r)
	}
	return out
}

// History fetches and verifies every test-fire report author has published to the given relays.
func History(urls []string, author library.Account) []Report {
	return Reports(relays.FetchEvents(urls, Filter(author)))
}
