// Package propulsion turns a set of engine components into performance figures using closed-form
// liquid rocket relations: choked flow through the throat, characteristic velocity, expansion
// efficiency and thrust-to-weight.
package propulsion

import (
	"fmt"
	"math"

	"enginelab/libraries/catalog"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	// G0 is standard gravity, m/s².
	G0 = 9.80665

	// Discharge pressure has to beat chamber pressure by this factor to cover the injector drop.
	PumpPressureMargin = 1.25

	MixtureErrorDeviation   = 0.30
	MixtureWarningDeviation = 0.15
	mixturePenalty          = 0.5

	// OptimalExpansionRatio is the sea-level optimum, where NozzleEfficiency peaks.
	OptimalExpansionRatio = 16.0
	PeakNozzleEfficiency  = 0.98
	underExpansionPenalty = 0.15
	overExpansionPenalty  = 0.25

	MinThrustToWeight      = 1.0
	MarginalThrustToWeight = 1.3
	MinBurnTime            = 10.0 // s

	// Each tunable property set to its maximum adds this fraction to a component's cost.
	propertyCostPremium = 0.5

	aluminumTankMassRatio = 0.08
	tankMassRatio         = 0.12

	referenceChamberPressure   = 7.0  // MPa
	referenceThroatDiameter    = 0.15 // m
	referenceDischargePressure = 10.0 // MPa
)

type engine struct {
	chamber  Chamber
	nozzle   Nozzle
	injector Injector
	pump     Turbopump
	fuel     FuelTank
	oxidizer OxidizerTank
}

// CalculatePerformance evaluates a design against a propellant. It has no side effects and the
// same inputs always give the same record.
//
// Missing or duplicated parts, insufficient pump pressure, an unusable mixture ratio and
// degenerate inputs (zero, negative, non-finite, or efficiencies outside (0, 1]) all produce an
// invalid record rather than an error, and so does any figure that overflows. A component whose type is not in the catalog is a caller bug and panics.
func CalculatePerformance(components []ComponentConfig, propellant catalog.PropellantType) EnginePerformance {
	var errs []string
	var warnings []string

	found := make(map[catalog.ComponentType]ComponentConfig, len(components))
	duplicated := make(map[catalog.ComponentType]bool)
	for _, c := range components {
		catalog.MustComponent(c.Type)
		if _, ok := found[c.Type]; ok {
			duplicated[c.Type] = true
			continue
		}
		found[c.Type] = c
	}
	for _, t := range catalog.RequiredTypes() {
		if _, ok := found[t]; !ok {
			errs = append(errs, "Missing "+catalog.MustComponent(t).Label)
		}
	}
	if len(errs) > 0 {
		return invalid(errs)
	}
	for _, t := range catalog.RequiredTypes() {
		if duplicated[t] {
			errs = append(errs, "Duplicate "+catalog.MustComponent(t).Label)
		}
	}
	if len(errs) > 0 {
		return invalid(errs)
	}

	e := engine{
		chamber:  found[catalog.CombustionChamber].Parameters().(Chamber),
		nozzle:   found[catalog.Nozzle].Parameters().(Nozzle),
		injector: found[catalog.FuelInjector].Parameters().(Injector),
		pump:     found[catalog.Turbopump].Parameters().(Turbopump),
		fuel:     found[catalog.FuelTank].Parameters().(FuelTank),
		oxidizer: found[catalog.OxidizerTank].Parameters().(OxidizerTank),
	}
	if errs = degenerate(e, propellant); len(errs) > 0 {
		return invalid(errs)
	}

	requiredPumpPressure := e.chamber.Pressure * PumpPressureMargin
	if e.pump.DischargePressure < requiredPumpPressure {
		errs = append(errs, fmt.Sprintf("Turbopump pressure (%g MPa) too low. Need ≥%.1f MPa for %g MPa chamber",
			e.pump.DischargePressure, requiredPumpPressure, e.chamber.Pressure))
	}

	mixtureRatio := e.oxidizer.PropellantMass / e.fuel.PropellantMass
	deviation := MixtureDeviation(mixtureRatio, propellant.OptimalMixtureRatio)
	if deviation > MixtureErrorDeviation {
		errs = append(errs, fmt.Sprintf("O/F ratio %.2f is too far from optimal %.2f",
			mixtureRatio, propellant.OptimalMixtureRatio))
	} else if deviation > MixtureWarningDeviation {
		warnings = append(warnings, fmt.Sprintf("O/F ratio %.2f differs from optimal %.2f, reduced efficiency",
			mixtureRatio, propellant.OptimalMixtureRatio))
	}
	nozzleEfficiency := NozzleEfficiency(e.nozzle.ExpansionRatio)
	if nozzleEfficiency <= 0 {
		errs = append(errs, fmt.Sprintf("Expansion ratio %g leaves no usable nozzle efficiency", e.nozzle.ExpansionRatio))
	}
	if len(errs) > 0 {
		return invalid(errs)
	}

	throatArea := math.Pi * math.Pow(e.nozzle.ThroatDiameter/2, 2)
	cStar := propellant.CharacteristicVelocity * e.injector.CombustionEfficiency
	// choked flow: ṁ = Pc·At / c*
	massFlowRate := (e.chamber.Pressure * 1e6 * throatArea) / cStar

	eff := Efficiency{
		Combustion: e.injector.CombustionEfficiency,
		Mixture:    MixtureEfficiency(deviation),
		Nozzle:     nozzleEfficiency,
	}
	eff.Overall = eff.Combustion * eff.Mixture * eff.Nozzle

	// turbine drive flow is propellant that never reaches the chamber
	specificImpulse := propellant.SpecificImpulseSeaLevel * eff.Overall * math.Sqrt(e.pump.Efficiency)
	exitVelocity := specificImpulse * G0
	thrustNewtons := massFlowRate * exitVelocity

	dryMass := DryMass(components)
	propellantMass := e.fuel.PropellantMass + e.oxidizer.PropellantMass
	totalMass := dryMass + propellantMass
	thrustToWeight := thrustNewtons / (totalMass * G0)
	burnTime := propellantMass / massFlowRate
	totalCost := TotalCost(components)

	if errs = overflowed(map[string]float64{
		"thrust":           thrustNewtons,
		"mass flow":        massFlowRate,
		"dry mass":         dryMass,
		"thrust-to-weight": thrustToWeight,
		"burn time":        burnTime,
		"cost":             totalCost,
	}); len(errs) > 0 {
		return invalid(errs)
	}

	if thrustToWeight < MinThrustToWeight {
		warnings = append(warnings, fmt.Sprintf("T/W ratio %.2f < 1.0, engine cannot lift itself", thrustToWeight))
	} else if thrustToWeight < MarginalThrustToWeight {
		warnings = append(warnings, fmt.Sprintf("T/W ratio %.2f is marginal, aim for >%.1f", thrustToWeight, MarginalThrustToWeight))
	}
	if burnTime < MinBurnTime {
		warnings = append(warnings, fmt.Sprintf("Burn time only %.1fs, consider more propellant", burnTime))
	}
	if warnings == nil {
		warnings = []string{}
	}

	return EnginePerformance{
		Thrust:           thrustNewtons / 1000,
		SpecificImpulse:  specificImpulse,
		ThrustToWeight:   thrustToWeight,
		MassFlowRate:     massFlowRate,
		ExitVelocity:     exitVelocity,
		ChamberPressure:  e.chamber.Pressure,
		DryMass:          dryMass,
		PropellantMass:   propellantMass,
		TotalMass:        totalMass,
		BurnTime:         burnTime,
		TotalCost:        totalCost,
		MixtureRatio:     mixtureRatio,
		Efficiency:       eff,
		IsValid:          true,
		ValidationErrors: []string{},
		Warnings:         warnings,
	}
}

func degenerate(e engine, propellant catalog.PropellantType) (errs []string) {
	check := func(name string, v float64, unit string) {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			errs = append(errs, fmt.Sprintf("%s must be greater than zero, got %g%s", name, v, unit))
		}
	}
	check("Chamber pressure", e.chamber.Pressure, " MPa")
	check("Throat diameter", e.nozzle.ThroatDiameter, " m")
	check("Expansion ratio", e.nozzle.ExpansionRatio, "")
	fraction := func(name string, v float64) {
		if math.IsNaN(v) || v <= 0 || v > 1 {
			errs = append(errs, fmt.Sprintf("%s must be within (0, 1], got %g", name, v))
		}
	}
	fraction("Combustion efficiency", e.injector.CombustionEfficiency)
	fraction("Pump efficiency", e.pump.Efficiency)
	check("Turbopump discharge pressure", e.pump.DischargePressure, " MPa")
	check("Fuel mass", e.fuel.PropellantMass, " kg")
	check("Oxidizer mass", e.oxidizer.PropellantMass, " kg")
	check("Propellant optimal O/F ratio", propellant.OptimalMixtureRatio, "")
	check("Propellant characteristic velocity", propellant.CharacteristicVelocity, " m/s")
	return
}

// overflowed reports every figure that came out non-finite, in name order.
func overflowed(figures map[string]float64) (errs []string) {
	names := maps.Keys(figures)
	slices.Sort(names)
	for _, name := range names {
		if v := figures[name]; math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Sprintf("Engine %s is out of range (%g)", name, v))
		}
	}
	return
}

// MixtureDeviation is |actual − optimal| / optimal.
func MixtureDeviation(actual, optimal float64) float64 {
	return math.Abs(actual-optimal) / optimal
}

// MixtureEfficiency applies a linear penalty for running off the optimal O/F ratio. Deviations
// that reach it are at most MixtureErrorDeviation, so it never drops below 0.85.
func MixtureEfficiency(deviation float64) float64 {
	return 1 - deviation*mixturePenalty
}

// NozzleEfficiency peaks at OptimalExpansionRatio. Over-expansion is penalised more steeply than
// under-expansion because flow separation costs more than unused expansion.
func NozzleEfficiency(expansionRatio float64) float64 {
	if expansionRatio < OptimalExpansionRatio {
		deviation := (OptimalExpansionRatio - expansionRatio) / OptimalExpansionRatio
		return PeakNozzleEfficiency - deviation*underExpansionPenalty
	}
	deviation := (expansionRatio - OptimalExpansionRatio) / OptimalExpansionRatio
	return PeakNozzleEfficiency - deviation*overExpansionPenalty
}
