package catalog

// PropellantKey identifies a propellant combination, e.g. "RP1-LOX".
type PropellantKey = string

type PropellantType struct {
	Key                     PropellantKey `json:"key"`
	Name                    string        `json:"name"`
	FuelName                string        `json:"fuel_name"`
	OxidizerName            string        `json:"oxidizer_name"`
	SpecificImpulseVacuum   float64       `json:"isp_vacuum"`              // s
	SpecificImpulseSeaLevel float64       `json:"isp_sea_level"`           // s
	DensityFuel             float64       `json:"density_fuel"`            // kg/m³
	DensityOxidizer         float64       `json:"density_oxidizer"`        // kg/m³
	OptimalMixtureRatio     float64       `json:"optimal_mixture_ratio"`   // O/F by mass
	CombustionTemp          float64       `json:"combustion_temp"`         // K
	CharacteristicVelocity  float64       `json:"characteristic_velocity"` // c*, m/s
}

const (
	RP1LOX PropellantKey = "RP1-LOX"
	CH4LOX PropellantKey = "CH4-LOX"
)

var propellants = map[PropellantKey]PropellantType{
	RP1LOX: {
		Key:          RP1LOX,
		Name:         "RP-1/LOX",
		FuelName:     "RP-1 (Kerosene)",
		OxidizerName: "Liquid Oxygen",
		// Merlin 1D class
		SpecificImpulseVacuum:   311,
		SpecificImpulseSeaLevel: 282,
		DensityFuel:             810,
		DensityOxidizer:         1141,
		OptimalMixtureRatio:     2.34,
		CombustionTemp:          3670,
		CharacteristicVelocity:  1800,
	},
	CH4LOX: {
		Key:          CH4LOX,
		Name:         "Methane/LOX",
		FuelName:     "Liquid Methane",
		OxidizerName: "Liquid Oxygen",
		// Raptor class
		SpecificImpulseVacuum:   363,
		SpecificImpulseSeaLevel: 330,
		DensityFuel:             422,
		DensityOxidizer:         1141,
		OptimalMixtureRatio:     3.6,
		CombustionTemp:          3550,
		CharacteristicVelocity:  1850,
	},
}
