package catalog

// MaterialKey identifies a structural material, e.g. "inconel".
type MaterialKey = string

type MaterialType struct {
	Key           MaterialKey `json:"key"`
	Name          string      `json:"name"`
	Density       float64     `json:"density"`        // kg/m³
	MaxTemp       float64     `json:"max_temp"`       // K, service limit
	YieldStrength float64     `json:"yield_strength"` // MPa
	CostPerKg     float64     `json:"cost_per_kg"`
}

const (
	Steel    MaterialKey = "steel"
	Aluminum MaterialKey = "aluminum"
	Inconel  MaterialKey = "inconel"
)

// Reference is the material every density and cost factor is normalised against.
const Reference = Steel

var materials = map[MaterialKey]MaterialType{
	Steel: {
		Key:           Steel,
		Name:          "Stainless Steel 304L",
		Density:       8000,
		MaxTemp:       1089,
		YieldStrength: 170,
		CostPerKg:     4,
	},
	Aluminum: {
		Key:           Aluminum,
		Name:          "Aluminum 2219-T87",
		Density:       2840,
		MaxTemp:       422,
		YieldStrength: 393,
		CostPerKg:     12,
	},
	Inconel: {
		Key:           Inconel,
		Name:          "Inconel 718",
		Density:       8190,
		MaxTemp:       1255,
		YieldStrength: 1034,
		CostPerKg:     45,
	},
}

// DensityFactor is the material's density relative to the reference material.
func (m MaterialType) DensityFactor() float64 {
	return m.Density / materials[Reference].Density
}

// CostFactor is the material's cost per kg relative to the reference material.
func (m MaterialType) CostFactor() float64 {
	return m.CostPerKg / materials[Reference].CostPerKg
}
