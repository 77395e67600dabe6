package design

import (
	"fmt"

	"enginelab/libraries/catalog"
	"enginelab/libraries/propulsion"
	"golang.org/x/exp/slices"
)

// Objective is a predicate over the current performance and session. Primary objectives decide
// whether a level is passed; the rest are bonuses.
type Objective struct {
	ID          string                                                `json:"id"`
	Description string                                                `json:"description"`
	Primary     bool                                                  `json:"primary"`
	Check       func(p propulsion.EnginePerformance, s *Session) bool `json:"-"`
}

type ObjectiveResult struct {
	Objective Objective `json:"objective"`
	Met       bool      `json:"met"`
}

type LevelConfig struct {
	ID                  int                     `json:"id"`
	Name                string                  `json:"name"`
	Description         string                  `json:"description"`
	Budget              float64                 `json:"budget"`
	Propellant          catalog.PropellantKey   `json:"propellant"`
	Objectives          []Objective             `json:"objectives"`
	AvailableComponents []catalog.ComponentType `json:"available_components"`
	AvailableMaterials  []catalog.MaterialKey   `json:"available_materials"`
}

// Allows reports whether the level lets the player build a component of type t.
func (l LevelConfig) Allows(t catalog.ComponentType) bool {
	return slices.Contains(l.AvailableComponents, t)
}

// AllowsMaterial reports whether the level offers material m.
func (l LevelConfig) AllowsMaterial(m catalog.MaterialKey) bool {
	return slices.Contains(l.AvailableMaterials, m)
}

// Passed is true when every primary objective is met.
func Passed(results []ObjectiveResult) bool {
	for _, r := range results {
		if r.Objective.Primary && !r.Met {
			return false
		}
	}
	return true
}

func MinThrust(kN float64, primary bool) Objective {
	return Objective{
		ID:          "thrust",
		Description: fmt.Sprintf("Achieve %g kN thrust at sea level", kN),
		Primary:     primary,
		Check: func(p propulsion.EnginePerformance, _ *Session) bool {
			return p.Thrust >= kN
		},
	}
}

func MinThrustToWeight(ratio float64, primary bool) Objective {
	return Objective{
		ID:          "thrust_to_weight",
		Description: fmt.Sprintf("Reach a thrust-to-weight ratio of %g", ratio),
		Primary:     primary,
		Check: func(p propulsion.EnginePerformance, _ *Session) bool {
			return p.ThrustToWeight >= ratio
		},
	}
}

func MinBurnTime(seconds float64, primary bool) Objective {
	return Objective{
		ID:          "burn_time",
		Description: fmt.Sprintf("Burn for at least %g s", seconds),
		Primary:     primary,
		Check: func(p propulsion.EnginePerformance, _ *Session) bool {
			return p.BurnTime >= seconds
		},
	}
}

func SuccessfulFire(primary bool) Objective {
	return Objective{
		ID:          "success",
		Description: "Complete a successful test fire",
		Primary:     primary,
		Check: func(p propulsion.EnginePerformance, _ *Session) bool {
			return p.IsValid && p.Thrust > 0
		},
	}
}

func WithinBudget(primary bool) Objective {
	return Objective{
		ID:          "budget",
		Description: "Stay within budget",
		Primary:     primary,
		Check: func(_ propulsion.EnginePerformance, s *Session) bool {
			return s.SpentBudget() <= s.TotalBudget()
		},
	}
}

var levels = []LevelConfig{
	{
		ID:                  1,
		Name:                "First Engine Test",
		Description:         "Build your first rocket engine and achieve 100 kN of thrust",
		Budget:              100000,
		Propellant:          catalog.RP1LOX,
		Objectives:          []Objective{MinThrust(100, true), SuccessfulFire(true), WithinBudget(false)},
		AvailableComponents: catalog.ComponentTypes(),
		AvailableMaterials:  []catalog.MaterialKey{catalog.Steel, catalog.Aluminum},
	},
	{
		ID:                  2,
		Name:                "Methalox Upgrade",
		Description:         "Switch to methane and build an engine that can lift itself with margin",
		Budget:              150000,
		Propellant:          catalog.CH4LOX,
		Objectives:          []Objective{MinThrust(150, true), MinThrustToWeight(1.3, true), MinBurnTime(15, false), WithinBudget(false)},
		AvailableComponents: catalog.ComponentTypes(),
		AvailableMaterials:  []catalog.MaterialKey{catalog.Steel, catalog.Aluminum, catalog.Inconel},
	},
}

func copyLevel(l LevelConfig) LevelConfig {
	l.Objectives = slices.Clone(l.Objectives)
	l.AvailableComponents = slices.Clone(l.AvailableComponents)
	l.AvailableMaterials = slices.Clone(l.AvailableMaterials)
	return l
}

// Level returns the level with the given ID.
func Level(id int) (LevelConfig, bool) {
	i := slices.IndexFunc(levels, func(l LevelConfig) bool { return l.ID == id })
	if i < 0 {
		return LevelConfig{}, false
	}
	return copyLevel(levels[i]), true
}

// Levels lists every level in play order.
func Levels() []LevelConfig {
	out := make([]LevelConfig, len(levels))
	for i, l := range levels {
		out[i] = copyLevel(l)
	}
	return out
}
