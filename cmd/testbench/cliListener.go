package main

import (
	"fmt"
	"math"

	"enginelab/engine/actors"
	"enginelab/engine/library"
	"enginelab/libraries/catalog"
	"enginelab/messaging/relays"
	"enginelab/messaging/testfire"
	"enginelab/state/design"
	"enginelab/state/hangar"
	"github.com/davecgh/go-spew/spew"
	"github.com/eiannone/keyboard"
	"github.com/nbd-wtf/go-nostr"
)

// cliListener listens for keypresses and drives the bench. It returns once q has been pressed.
func cliListener(bench *hangar.Hangar, owner library.Owner, outbox *testfire.Outbox) {
	fmt.Println("TEST BENCH:\np: performance\no: objectives\nc: bench config\n+/-: chamber pressure\nt: sign a test-fire report\nx: retract the last report\nf: flush outbox to relays\nh: published history\nd: dump design\nq: to quit")
	var last *nostr.Event
	for {
		r, k, err := keyboard.GetSingleKey()
		if err != nil {
			library.LogCLI(err.Error(), 1)
			actors.Terminate()
			return
		}
		str := string(r)
		var cmdErr error
		switch str {
		default:
			if k == keyboard.KeyEnter {
				fmt.Println("\n-----------------------------------")
				break
			}
			if r == 0 {
				break
			}
			fmt.Println("Key " + str + " is not bound to anything. See cliListener.go for more details.")
		case "q":
			actors.Terminate()
			return
		case "p":
			cmdErr = bench.Do(owner, func(s *design.Session) error {
				printPerformance(s)
				return nil
			})
		case "o":
			cmdErr = bench.Do(owner, func(s *design.Session) error {
				results := s.CheckLevelObjectives()
				for _, res := range results {
					mark := " "
					if res.Met {
						mark = "x"
					}
					kind := "bonus"
					if res.Objective.Primary {
						kind = "primary"
					}
					fmt.Printf("[%s] %s (%s)\n", mark, res.Objective.Description, kind)
				}
				fmt.Printf("Level passed: %v\n", design.Passed(results))
				return nil
			})
		case "c":
			fmt.Println("CURRENT CONFIG")
			for k, v := range actors.MakeOrGetConfig().AllSettings() {
				fmt.Printf("\nKey: %s; Value: %v\n", k, v)
			}
		case "+", "-":
			cmdErr = bench.Do(owner, func(s *design.Session) error {
				return stepChamberPressure(s, str == "+")
			})
		case "t":
			cmdErr = bench.Do(owner, func(s *design.Session) error {
				report, err := testfire.Build(s)
				if err != nil {
					return err
				}
				e, err := testfire.Event(report, actors.MyStand().PrivateKey)
				if err != nil {
					return err
				}
				outbox.Push(e)
				last = &e
				fmt.Printf("Signed test-fire %s for design %s, %d waiting in outbox\n", e.ID, report.Fingerprint(), outbox.Len())
				return nil
			})
		case "x":
			if last == nil {
				fmt.Println("Nothing to retract")
				break
			}
			e, err := testfire.Retract(*last, "superseded on the test bench", actors.MyStand().PrivateKey)
			if err != nil {
				cmdErr = err
				break
			}
			outbox.Push(e)
			fmt.Printf("Queued retraction of %s\n", last.ID)
			last = nil
		case "f":
			urls := actors.MakeOrGetConfig().GetStringSlice("relays")
			if len(urls) == 0 {
				fmt.Println("No relays configured")
				break
			}
			n := relays.PublishToRelays(outbox.Drain(), urls)
			fmt.Printf("%d of %d relays accepted the outbox\n", n, len(urls))
		case "h":
			urls := actors.MakeOrGetConfig().GetStringSlice("relays")
			for _, report := range testfire.History(urls, actors.MyStand().Account) {
				fmt.Printf("Level %d, %s kN, passed %v, design %s\n", report.Level,
					library.Quantity(report.Performance.Thrust, 1), report.Passed, report.Fingerprint())
			}
		case "d":
			cmdErr = bench.Do(owner, func(s *design.Session) error {
				spew.Dump(s.Components())
				return nil
			})
		}
		if cmdErr != nil {
			library.LogCLI(cmdErr.Error(), 2)
		}
	}
}

// stepChamberPressure moves the chamber pressure one slider step, clamped to the catalog range.
func stepChamberPressure(s *design.Session, up bool) error {
	for _, c := range s.Components() {
		if c.Type != catalog.CombustionChamber {
			continue
		}
		r, _ := catalog.MustComponent(c.Type).Range(catalog.ChamberPressure)
		step := r.Step
		if !up {
			step = -step
		}
		current, _ := c.Property(catalog.ChamberPressure)
		v := math.Min(r.Max, math.Max(r.Min, current+step))
		_, err := s.SetProperty(c.ID, catalog.ChamberPressure, v)
		return err
	}
	return fmt.Errorf("no %s in the design", catalog.MustComponent(catalog.CombustionChamber).Label)
}
