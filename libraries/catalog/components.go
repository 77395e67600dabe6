package catalog

type ComponentType string

const (
	CombustionChamber ComponentType = "combustionChamber"
	Nozzle            ComponentType = "nozzle"
	FuelInjector      ComponentType = "fuelInjector"
	Turbopump         ComponentType = "turbopump"
	FuelTank          ComponentType = "fuelTank"
	OxidizerTank      ComponentType = "oxidizerTank"
)

// PropertyKey names a tunable property of a component, e.g. "chamberPressure".
type PropertyKey = string

const (
	ChamberPressure      PropertyKey = "chamberPressure"
	ThroatDiameter       PropertyKey = "throatDiameter"
	ExpansionRatio       PropertyKey = "expansionRatio"
	InjectorElements     PropertyKey = "injectorElements"
	CombustionEfficiency PropertyKey = "combustionEfficiency"
	DischargePressure    PropertyKey = "dischargePressure"
	PumpEfficiency       PropertyKey = "pumpEfficiency"
	PropellantMass       PropertyKey = "propellantMass"
)

type PropertyRange struct {
	Key   PropertyKey `json:"key"`
	Min   float64     `json:"min"`
	Max   float64     `json:"max"`
	Step  float64     `json:"step"`
	Unit  string      `json:"unit"`
	Label string      `json:"label"`
}

// Normalize maps v onto [0,1] across the range. Values outside the range are not clamped.
func (r PropertyRange) Normalize(v float64) float64 {
	if r.Max == r.Min {
		return 0
	}
	return (v - r.Min) / (r.Max - r.Min)
}

// Contains reports whether v lies inside the declared range.
func (r PropertyRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

type ComponentDefinition struct {
	Type ComponentType `json:"type"`
	Name string        `json:"name"`
	// Label is the lower case noun used in validation messages.
	Label       string                  `json:"label"`
	Description string                  `json:"description"`
	BaseCost    float64                 `json:"base_cost"`
	BaseMass    float64                 `json:"base_mass"` // kg, dry
	Required    bool                    `json:"required"`
	Defaults    map[PropertyKey]float64 `json:"defaults"`
	// Ranges are in display order.
	Ranges []PropertyRange `json:"ranges"`
}

// Range returns the declared range for key.
func (d ComponentDefinition) Range(key PropertyKey) (PropertyRange, bool) {
	for _, r := range d.Ranges {
		if r.Key == key {
			return r, true
		}
	}
	return PropertyRange{}, false
}

// Default returns the default value for key, or zero if the component has no such property.
func (d ComponentDefinition) Default(key PropertyKey) float64 {
	return d.Defaults[key]
}

// componentOrder is the order components are checked, reported and displayed in.
var componentOrder = []ComponentType{
	CombustionChamber,
	Nozzle,
	FuelInjector,
	Turbopump,
	FuelTank,
	OxidizerTank,
}

var definitions = map[ComponentType]ComponentDefinition{
	CombustionChamber: {
		Type:        CombustionChamber,
		Name:        "Combustion Chamber",
		Label:       "combustion chamber",
		Description: "Where propellants mix and burn. Higher pressure means more thrust but heavier walls.",
		BaseCost:    15000,
		BaseMass:    45,
		Required:    true,
		Defaults:    map[PropertyKey]float64{ChamberPressure: 7.0},
		Ranges: []PropertyRange{
			{Key: ChamberPressure, Min: 3.0, Max: 15.0, Step: 0.5, Unit: "MPa", Label: "Chamber Pressure"},
		},
	},
	Nozzle: {
		Type:        Nozzle,
		Name:        "Nozzle (De Laval)",
		Label:       "nozzle",
		Description: "Converging-diverging nozzle. Throat size sets mass flow, expansion ratio sets exhaust efficiency.",
		BaseCost:    8000,
		BaseMass:    25,
		Required:    true,
		Defaults:    map[PropertyKey]float64{ThroatDiameter: 0.15, ExpansionRatio: 16},
		Ranges: []PropertyRange{
			{Key: ThroatDiameter, Min: 0.08, Max: 0.30, Step: 0.01, Unit: "m", Label: "Throat Diameter"},
			{Key: ExpansionRatio, Min: 8, Max: 40, Step: 1, Unit: ":1", Label: "Expansion Ratio"},
		},
	},
	FuelInjector: {
		Type:        FuelInjector,
		Name:        "Injector Plate",
		Label:       "fuel injector",
		Description: "Atomizes and mixes propellants. Better mixing gives higher combustion efficiency.",
		BaseCost:    12000,
		BaseMass:    18,
		Required:    true,
		Defaults:    map[PropertyKey]float64{InjectorElements: 100, CombustionEfficiency: 0.95},
		Ranges: []PropertyRange{
			{Key: InjectorElements, Min: 40, Max: 200, Step: 10, Unit: "", Label: "Injector Elements"},
			{Key: CombustionEfficiency, Min: 0.90, Max: 0.99, Step: 0.01, Unit: "", Label: "Combustion Efficiency"},
		},
	},
	Turbopump: {
		Type:        Turbopump,
		Name:        "Turbopump Assembly",
		Label:       "turbopump",
		Description: "Pressurizes propellants. Discharge must exceed chamber pressure plus injector drop.",
		BaseCost:    25000,
		BaseMass:    65,
		Required:    true,
		Defaults:    map[PropertyKey]float64{DischargePressure: 10.0, PumpEfficiency: 0.70},
		Ranges: []PropertyRange{
			{Key: DischargePressure, Min: 5.0, Max: 25.0, Step: 0.5, Unit: "MPa", Label: "Discharge Pressure"},
			{Key: PumpEfficiency, Min: 0.55, Max: 0.80, Step: 0.05, Unit: "", Label: "Pump Efficiency"},
		},
	},
	FuelTank: {
		Type:        FuelTank,
		Name:        "Fuel Tank",
		Label:       "fuel tank",
		Description: "Stores fuel. Tank structure is a fraction of the propellant mass it holds.",
		BaseCost:    5000,
		BaseMass:    15,
		Required:    true,
		Defaults:    map[PropertyKey]float64{PropellantMass: 400},
		Ranges: []PropertyRange{
			{Key: PropellantMass, Min: 100, Max: 1500, Step: 50, Unit: "kg", Label: "Fuel Load"},
		},
	},
	OxidizerTank: {
		Type:        OxidizerTank,
		Name:        "Oxidizer Tank",
		Label:       "oxidizer tank",
		Description: "Stores liquid oxygen. Slightly heavier than the fuel tank because of insulation.",
		BaseCost:    6000,
		BaseMass:    20,
		Required:    true,
		Defaults:    map[PropertyKey]float64{PropellantMass: 1000},
		Ranges: []PropertyRange{
			{Key: PropellantMass, Min: 200, Max: 4000, Step: 100, Unit: "kg", Label: "LOX Load"},
		},
	},
}
