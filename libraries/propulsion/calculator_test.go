package propulsion

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"testing"

	"enginelab/libraries/catalog"
)

func rp1(t *testing.T) catalog.PropellantType {
	t.Helper()
	p, ok := catalog.Propellant(catalog.RP1LOX)
	if !ok {
		t.Fatal("RP1-LOX missing from catalog")
	}
	return p
}

// nominal is scenario A: every component at its catalog default, all steel.
func nominal() []ComponentConfig {
	return []ComponentConfig{
		{ID: "comp_1", Type: catalog.CombustionChamber, Material: catalog.Steel, Size: Medium, Params: Chamber{Pressure: 7.0}},
		{ID: "comp_2", Type: catalog.Nozzle, Material: catalog.Steel, Size: Medium, Params: Nozzle{ThroatDiameter: 0.15, ExpansionRatio: 16}},
		{ID: "comp_3", Type: catalog.FuelInjector, Material: catalog.Steel, Size: Medium, Params: Injector{Elements: 100, CombustionEfficiency: 0.95}},
		{ID: "comp_4", Type: catalog.Turbopump, Material: catalog.Steel, Size: Medium, Params: Turbopump{DischargePressure: 10.0, Efficiency: 0.70}},
		{ID: "comp_5", Type: catalog.FuelTank, Material: catalog.Steel, Size: Medium, Params: FuelTank{PropellantMass: 400}},
		{ID: "comp_6", Type: catalog.OxidizerTank, Material: catalog.Steel, Size: Medium, Params: OxidizerTank{PropellantMass: 1000}},
	}
}

// tweak replaces the parameters of the first component of the same type.
func tweak(components []ComponentConfig, p Params) []ComponentConfig {
	out := make([]ComponentConfig, len(components))
	copy(out, components)
	for i := range out {
		if out[i].Type == p.Type() {
			out[i].Params = p
			break
		}
	}
	return out
}

func near(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func assertZero(t *testing.T, p EnginePerformance) {
	t.Helper()
	numeric := []float64{
		p.Thrust, p.SpecificImpulse, p.ThrustToWeight, p.MassFlowRate, p.ExitVelocity, p.ChamberPressure,
		p.DryMass, p.PropellantMass, p.TotalMass, p.BurnTime, p.TotalCost, p.MixtureRatio,
		p.Efficiency.Combustion, p.Efficiency.Mixture, p.Efficiency.Nozzle, p.Efficiency.Overall,
	}
	for i, v := range numeric {
		if v != 0 {
			t.Errorf("expected numeric field %d to be 0 on an invalid record, got %v", i, v)
		}
	}
	if p.IsValid {
		t.Error("expected an invalid record")
	}
	if len(p.ValidationErrors) == 0 {
		t.Error("expected validation errors on an invalid record")
	}
}

func TestNominalEngine(t *testing.T) {
	p := CalculatePerformance(nominal(), rp1(t))
	if !p.IsValid {
		t.Fatalf("expected a valid engine, got errors %v", p.ValidationErrors)
	}
	if len(p.ValidationErrors) != 0 {
		t.Errorf("expected no validation errors, got %v", p.ValidationErrors)
	}
	if len(p.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", p.Warnings)
	}
	checks := []struct {
		name      string
		got, want float64
		tolerance float64
	}{
		{"mixture ratio", p.MixtureRatio, 2.5, 1e-12},
		{"mass flow", p.MassFlowRate, 72.3393, 1e-3},
		{"specific impulse", p.SpecificImpulse, 212.1487, 1e-3},
		{"exit velocity", p.ExitVelocity, 212.14870791 * G0, 1e-3},
		{"thrust", p.Thrust, 150.4996, 1e-3},
		{"chamber pressure", p.ChamberPressure, 7.0, 0},
		{"dry mass", p.DryMass, 356, 0},
		{"propellant mass", p.PropellantMass, 1400, 0},
		{"total mass", p.TotalMass, 1756, 0},
		{"thrust to weight", p.ThrustToWeight, 8.7396, 1e-3},
		{"burn time", p.BurnTime, 19.3532, 1e-3},
		{"total cost", p.TotalCost, 94870, 0},
		{"nozzle efficiency", p.Efficiency.Nozzle, PeakNozzleEfficiency, 0},
		{"combustion efficiency", p.Efficiency.Combustion, 0.95, 0},
	}
	for _, c := range checks {
		if !near(c.got, c.want, c.tolerance) {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, c.got)
		}
	}
	if dev := MixtureDeviation(p.MixtureRatio, 2.34); !near(dev, 0.0684, 1e-3) {
		t.Errorf("expected deviation near 6.8%%, got %v", dev)
	}
}

func TestDefaultsMatchExplicitParameters(t *testing.T) {
	implicit := nominal()
	for i := range implicit {
		implicit[i].Params = nil
	}
	if !reflect.DeepEqual(CalculatePerformance(implicit, rp1(t)), CalculatePerformance(nominal(), rp1(t))) {
		t.Error("expected components without parameters to use the catalog defaults")
	}
}

func TestMissingComponents(t *testing.T) {
	all := nominal()
	for mask := 0; mask < 1<<len(all)-1; mask++ {
		var subset []ComponentConfig
		missing := 0
		for i, c := range all {
			if mask&(1<<i) != 0 {
				subset = append(subset, c)
			} else {
				missing++
			}
		}
		p := CalculatePerformance(subset, rp1(t))
		assertZero(t, p)
		if len(p.ValidationErrors) != missing {
			t.Errorf("mask %06b: expected %d errors, got %v", mask, missing, p.ValidationErrors)
		}
		for _, e := range p.ValidationErrors {
			if !strings.HasPrefix(e, "Missing ") {
				t.Errorf("mask %06b: unexpected error %q", mask, e)
			}
		}
	}
}

func TestMissingMessagesUseLabels(t *testing.T) {
	p := CalculatePerformance(nil, rp1(t))
	want := []string{
		"Missing combustion chamber",
		"Missing nozzle",
		"Missing fuel injector",
		"Missing turbopump",
		"Missing fuel tank",
		"Missing oxidizer tank",
	}
	if !reflect.DeepEqual(p.ValidationErrors, want) {
		t.Errorf("expected %v, got %v", want, p.ValidationErrors)
	}
}

func TestDeterminism(t *testing.T) {
	a := CalculatePerformance(nominal(), rp1(t))
	b := CalculatePerformance(nominal(), rp1(t))
	if !reflect.DeepEqual(a, b) {
		t.Errorf("expected identical results, got\n%#v\n%#v", a, b)
	}
}

func TestThrustRisesWithChamberPressure(t *testing.T) {
	last := 0.0
	for pc := 3.0; pc <= 15.0; pc += 0.5 {
		components := tweak(tweak(nominal(), Chamber{Pressure: pc}), Turbopump{DischargePressure: 25, Efficiency: 0.7})
		p := CalculatePerformance(components, rp1(t))
		if !p.IsValid {
			t.Fatalf("pc=%v: unexpected errors %v", pc, p.ValidationErrors)
		}
		if p.Thrust <= last {
			t.Errorf("pc=%v: thrust %v did not exceed %v", pc, p.Thrust, last)
		}
		last = p.Thrust
	}
}

func TestOptimalMixture(t *testing.T) {
	components := tweak(tweak(nominal(), FuelTank{PropellantMass: 500}), OxidizerTank{PropellantMass: 1170})
	p := CalculatePerformance(components, rp1(t))
	if !p.IsValid {
		t.Fatalf("unexpected errors %v", p.ValidationErrors)
	}
	if p.MixtureRatio != 2.34 {
		t.Fatalf("expected an exact 2.34 mixture, got %v", p.MixtureRatio)
	}
	if p.Efficiency.Mixture != 1.0 {
		t.Errorf("expected mixture efficiency 1.0, got %v", p.Efficiency.Mixture)
	}
	for _, w := range p.Warnings {
		if strings.Contains(w, "O/F") {
			t.Errorf("unexpected mixture warning %q", w)
		}
	}
}

func TestNozzleOptimum(t *testing.T) {
	best := CalculatePerformance(nominal(), rp1(t))
	for ratio := 8.0; ratio <= 40; ratio++ {
		if ratio == OptimalExpansionRatio {
			continue
		}
		if NozzleEfficiency(ratio) >= NozzleEfficiency(OptimalExpansionRatio) {
			t.Errorf("ratio %v: efficiency %v not below the optimum", ratio, NozzleEfficiency(ratio))
		}
		p := CalculatePerformance(tweak(nominal(), Nozzle{ThroatDiameter: 0.15, ExpansionRatio: ratio}), rp1(t))
		if p.Thrust >= best.Thrust {
			t.Errorf("ratio %v: thrust %v not below optimum thrust %v", ratio, p.Thrust, best.Thrust)
		}
	}
}

func TestNozzleEfficiencySlopes(t *testing.T) {
	if !near(NozzleEfficiency(8), 0.98-0.5*0.15, 1e-12) {
		t.Errorf("unexpected under-expanded efficiency %v", NozzleEfficiency(8))
	}
	if !near(NozzleEfficiency(32), 0.98-0.25, 1e-12) {
		t.Errorf("unexpected over-expanded efficiency %v", NozzleEfficiency(32))
	}
	// equal distance either side: over-expansion costs more
	if NozzleEfficiency(24) >= NozzleEfficiency(8) {
		t.Errorf("expected ratio 24 (%v) to be worse than ratio 8 (%v)", NozzleEfficiency(24), NozzleEfficiency(8))
	}
}

func TestPumpPressureViolation(t *testing.T) {
	p := CalculatePerformance(tweak(nominal(), Turbopump{DischargePressure: 5.0, Efficiency: 0.7}), rp1(t))
	assertZero(t, p)
	if len(p.ValidationErrors) != 1 {
		t.Fatalf("expected one error, got %v", p.ValidationErrors)
	}
	if !strings.Contains(p.ValidationErrors[0], "Turbopump pressure") || !strings.Contains(p.ValidationErrors[0], "8.8") {
		t.Errorf("unexpected error %q", p.ValidationErrors[0])
	}
}

func TestPumpPressureAtExactMargin(t *testing.T) {
	p := CalculatePerformance(tweak(nominal(), Turbopump{DischargePressure: 8.75, Efficiency: 0.7}), rp1(t))
	if !p.IsValid {
		t.Errorf("expected 8.75 MPa to satisfy a 7 MPa chamber, got %v", p.ValidationErrors)
	}
}

func TestMixtureViolation(t *testing.T) {
	components := tweak(tweak(nominal(), FuelTank{PropellantMass: 100}), OxidizerTank{PropellantMass: 1000})
	p := CalculatePerformance(components, rp1(t))
	assertZero(t, p)
	if len(p.ValidationErrors) != 1 || !strings.Contains(p.ValidationErrors[0], "O/F ratio 10.00") {
		t.Errorf("expected one mixture error, got %v", p.ValidationErrors)
	}
}

func TestPumpAndMixtureErrorsAreBothReported(t *testing.T) {
	components := tweak(tweak(nominal(), FuelTank{PropellantMass: 100}), Turbopump{DischargePressure: 5, Efficiency: 0.7})
	p := CalculatePerformance(components, rp1(t))
	assertZero(t, p)
	if len(p.ValidationErrors) != 2 {
		t.Fatalf("expected two errors, got %v", p.ValidationErrors)
	}
	if !strings.HasPrefix(p.ValidationErrors[0], "Turbopump") || !strings.HasPrefix(p.ValidationErrors[1], "O/F") {
		t.Errorf("unexpected error order %v", p.ValidationErrors)
	}
}

func TestMixtureWarning(t *testing.T) {
	components := tweak(nominal(), OxidizerTank{PropellantMass: 1123.2})
	p := CalculatePerformance(components, rp1(t))
	if !p.IsValid {
		t.Fatalf("expected a 20%% deviation to stay valid, got %v", p.ValidationErrors)
	}
	if len(p.Warnings) != 1 || !strings.Contains(p.Warnings[0], "O/F ratio") {
		t.Errorf("expected one mixture warning, got %v", p.Warnings)
	}
	if !near(p.Efficiency.Mixture, 0.9, 1e-9) {
		t.Errorf("expected mixture efficiency 0.9, got %v", p.Efficiency.Mixture)
	}
	if !near(p.Thrust, 140.2443, 1e-3) {
		t.Errorf("expected thrust near 140.24 kN, got %v", p.Thrust)
	}
}

func TestThrustToWeightWarnings(t *testing.T) {
	cases := []struct {
		name     string
		fuel, ox float64
		want     string
	}{
		{"cannot lift", 1500, 3510, "cannot lift itself"},
		{"marginal", 1000, 2340, "marginal"},
	}
	for _, c := range cases {
		components := tweak(tweak(tweak(nominal(),
			Nozzle{ThroatDiameter: 0.08, ExpansionRatio: 16}),
			FuelTank{PropellantMass: c.fuel}),
			OxidizerTank{PropellantMass: c.ox})
		p := CalculatePerformance(components, rp1(t))
		if !p.IsValid {
			t.Fatalf("%s: unexpected errors %v", c.name, p.ValidationErrors)
		}
		if len(p.Warnings) != 1 || !strings.Contains(p.Warnings[0], c.want) {
			t.Errorf("%s: expected a %q warning, got %v (T/W %v)", c.name, c.want, p.Warnings, p.ThrustToWeight)
		}
	}
}

func TestShortBurnWarning(t *testing.T) {
	components := tweak(tweak(tweak(nominal(),
		Nozzle{ThroatDiameter: 0.30, ExpansionRatio: 16}),
		FuelTank{PropellantMass: 100}),
		OxidizerTank{PropellantMass: 234})
	p := CalculatePerformance(components, rp1(t))
	if !p.IsValid {
		t.Fatalf("unexpected errors %v", p.ValidationErrors)
	}
	if p.BurnTime >= MinBurnTime {
		t.Fatalf("expected a short burn, got %v s", p.BurnTime)
	}
	if len(p.Warnings) != 1 || !strings.Contains(p.Warnings[0], "Burn time only 1.2s") {
		t.Errorf("expected a short burn warning, got %v", p.Warnings)
	}
}

func TestDegenerateInputs(t *testing.T) {
	cases := []struct {
		name   string
		params Params
		want   string
	}{
		{"empty fuel tank", FuelTank{PropellantMass: 0}, "Fuel mass"},
		{"negative oxidizer", OxidizerTank{PropellantMass: -10}, "Oxidizer mass"},
		{"closed throat", Nozzle{ThroatDiameter: 0, ExpansionRatio: 16}, "Throat diameter"},
		{"nan chamber", Chamber{Pressure: math.NaN()}, "Chamber pressure"},
		{"infinite pump", Turbopump{DischargePressure: math.Inf(1), Efficiency: 0.7}, "Turbopump discharge pressure"},
		{"dead pump", Turbopump{DischargePressure: 10, Efficiency: 0}, "Pump efficiency"},
		{"perpetual pump", Turbopump{DischargePressure: 10, Efficiency: 1.2}, "Pump efficiency"},
		{"impossible injector", Injector{Elements: 100, CombustionEfficiency: 3}, "Combustion efficiency"},
		{"giant bell", Nozzle{ThroatDiameter: 0.15, ExpansionRatio: 100}, "Expansion ratio"},
	}
	for _, c := range cases {
		p := CalculatePerformance(tweak(nominal(), c.params), rp1(t))
		assertZero(t, p)
		if len(p.ValidationErrors) != 1 || !strings.HasPrefix(p.ValidationErrors[0], c.want) {
			t.Errorf("%s: expected one %q error, got %v", c.name, c.want, p.ValidationErrors)
		}
	}
}

func TestOverflowingFiguresAreInvalid(t *testing.T) {
	components := tweak(tweak(nominal(), Chamber{Pressure: 1e305}), Turbopump{DischargePressure: 1e306, Efficiency: 0.7})
	p := CalculatePerformance(components, rp1(t))
	assertZero(t, p)
	if len(p.ValidationErrors) == 0 {
		t.Fatal("expected validation errors")
	}
	for _, e := range p.ValidationErrors {
		if !strings.HasPrefix(e, "Engine ") {
			t.Errorf("expected only out-of-range errors, got %q", e)
		}
	}
	if _, err := json.Marshal(p); err != nil {
		t.Errorf("expected the record to encode, got %v", err)
	}
}

func TestFullEfficiencyIsAccepted(t *testing.T) {
	p := CalculatePerformance(tweak(nominal(), Injector{Elements: 100, CombustionEfficiency: 1}), rp1(t))
	if !p.IsValid {
		t.Errorf("expected a perfect injector to be valid, got %v", p.ValidationErrors)
	}
}

func TestDuplicateComponents(t *testing.T) {
	components := append(nominal(), ComponentConfig{ID: "comp_7", Type: catalog.Nozzle, Material: catalog.Steel, Size: Medium})
	p := CalculatePerformance(components, rp1(t))
	assertZero(t, p)
	if !reflect.DeepEqual(p.ValidationErrors, []string{"Duplicate nozzle"}) {
		t.Errorf("expected a duplicate nozzle error, got %v", p.ValidationErrors)
	}
}

func TestUnknownComponentTypePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	CalculatePerformance(append(nominal(), ComponentConfig{ID: "x", Type: "warpCore"}), rp1(t))
}

func TestMismatchedParamsPanic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	c := ComponentConfig{ID: "x", Type: catalog.Nozzle, Params: Chamber{Pressure: 7}}
	c.Parameters()
}

func TestOtherPropellant(t *testing.T) {
	ch4, ok := catalog.Propellant(catalog.CH4LOX)
	if !ok {
		t.Fatal("CH4-LOX missing")
	}
	components := tweak(tweak(nominal(), FuelTank{PropellantMass: 400}), OxidizerTank{PropellantMass: 1440})
	p := CalculatePerformance(components, ch4)
	if !p.IsValid || p.Efficiency.Mixture != 1 {
		t.Fatalf("expected an optimal methalox engine, got %#v", p)
	}
	// the ideal RP-1 engine is the same hardware with lower c* and Isp
	if rp := CalculatePerformance(tweak(tweak(nominal(), FuelTank{PropellantMass: 500}), OxidizerTank{PropellantMass: 1170}), rp1(t)); p.SpecificImpulse <= rp.SpecificImpulse {
		t.Errorf("expected methalox Isp %v to beat RP-1 %v", p.SpecificImpulse, rp.SpecificImpulse)
	}
}
