package main

import (
	"fmt"

	"enginelab/engine/actors"
	"enginelab/engine/library"
	"enginelab/libraries/catalog"
	"enginelab/libraries/propulsion"
	"enginelab/messaging/relays"
	"enginelab/messaging/testfire"
	"enginelab/state/design"
	"enginelab/state/hangar"
	"github.com/spf13/viper"
)

func main() {
	conf := viper.New()
	actors.InitConfig(conf)
	actors.SetConfig(conf)

	bench := hangar.New()
	owner := conf.GetString("owner")
	session, err := bench.Open(owner, conf.GetInt("level"))
	if err != nil {
		library.LogCLI(err.Error(), 0)
		return
	}
	if p := conf.GetString("propellant"); p != "" {
		if err := session.SetPropellant(catalog.PropellantKey(p)); err != nil {
			library.LogCLI(err.Error(), 1)
		}
	}
	material := catalog.MaterialKey(conf.GetString("material"))
	for _, t := range catalog.ComponentTypes() {
		if _, err := session.AddComponent(t, material); err != nil {
			library.LogCLI(err.Error(), 1)
		}
	}
	printPerformance(session)
	session.Subscribe(func(p propulsion.EnginePerformance, s *design.Session) {
		library.LogCLI(summary(p, s), 4)
	})

	outbox := testfire.NewOutbox(conf.GetInt("outboxSize"))
	go cliListener(bench, owner, outbox)
	<-actors.GetTerminateChan()

	if conf.GetBool("publish") && outbox.Len() > 0 {
		relays.PublishToRelays(outbox.Drain(), conf.GetStringSlice("relays"))
	}
	if err := bench.Do(owner, func(s *design.Session) error {
		fmt.Printf("Final design: %s\n", summary(s.Performance(), s))
		return nil
	}); err != nil {
		library.LogCLI(err.Error(), 1)
	}
	bench.Close(owner)
}

func summary(p propulsion.EnginePerformance, s *design.Session) string {
	if !p.IsValid {
		return fmt.Sprintf("invalid: %v", p.ValidationErrors)
	}
	return fmt.Sprintf("%s kN, Isp %s s, T/W %s, %s of %s",
		library.Quantity(p.Thrust, 1), library.Quantity(p.SpecificImpulse, 1), library.Quantity(p.ThrustToWeight, 2),
		library.Money(s.SpentBudget()), library.Money(s.TotalBudget()))
}

func printPerformance(s *design.Session) {
	p := s.Performance()
	fmt.Printf("\n--------- %s: level %d, %s -----------\n", s.ID(), s.Level().ID, s.Propellant().Name)
	if !p.IsValid {
		for _, e := range p.ValidationErrors {
			fmt.Printf("ERROR: %s\n", e)
		}
		return
	}
	fmt.Printf("Thrust: %s kN\nIsp: %s s\nMass flow: %s kg/s\nExit velocity: %s m/s\n",
		library.Quantity(p.Thrust, 2), library.Quantity(p.SpecificImpulse, 1),
		library.Quantity(p.MassFlowRate, 2), library.Quantity(p.ExitVelocity, 0))
	fmt.Printf("Dry mass: %s kg\nTotal mass: %s kg\nT/W: %s\nBurn time: %s s\n",
		library.Quantity(p.DryMass, 0), library.Quantity(p.TotalMass, 0),
		library.Quantity(p.ThrustToWeight, 2), library.Quantity(p.BurnTime, 1))
	fmt.Printf("Efficiency: combustion %.3f, mixture %.3f, nozzle %.3f, overall %.3f\n",
		p.Efficiency.Combustion, p.Efficiency.Mixture, p.Efficiency.Nozzle, p.Efficiency.Overall)
	fmt.Printf("Cost: %s (remaining %s)\n", library.Money(p.TotalCost), library.Money(s.RemainingBudget()))
	for _, w := range p.Warnings {
		fmt.Printf("WARNING: %s\n", w)
	}
}
