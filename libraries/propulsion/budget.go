package propulsion

import (
	"math"

	"enginelab/libraries/catalog"
)

// ComponentMass is the dry mass of one component. Walls thicken with pressure, the nozzle grows
// with throat and expansion ratio, the pump with its discharge pressure and tanks with their load.
// Unknown materials count as the reference material.
func ComponentMass(c ComponentConfig) float64 {
	def := catalog.MustComponent(c.Type)
	material := catalog.MaterialOrReference(c.Material)
	densityFactor := material.DensityFactor()

	switch p := c.Parameters().(type) {
	case Chamber:
		return def.BaseMass * math.Pow(p.Pressure/referenceChamberPressure, 1.5) * densityFactor
	case Nozzle:
		throatFactor := math.Pow(p.ThroatDiameter/referenceThroatDiameter, 2)
		expansionFactor := math.Pow(p.ExpansionRatio/OptimalExpansionRatio, 0.7)
		return def.BaseMass * throatFactor * expansionFactor * densityFactor
	case Turbopump:
		return def.BaseMass * math.Pow(p.DischargePressure/referenceDischargePressure, 1.2)
	case FuelTank:
		return def.BaseMass + p.PropellantMass*tankRatio(material)
	case OxidizerTank:
		return def.BaseMass + p.PropellantMass*tankRatio(material)
	default:
		return def.BaseMass * densityFactor
	}
}

func tankRatio(m catalog.MaterialType) float64 {
	if m.Key == catalog.Aluminum {
		return aluminumTankMassRatio
	}
	return tankMassRatio
}

// DryMass is the summed component mass, rounded to the nearest kg.
func DryMass(components []ComponentConfig) float64 {
	var mass float64
	for _, c := range components {
		mass += ComponentMass(c)
	}
	return math.Round(mass)
}

// ComponentCost scales the base cost by material and by how far each tunable property is pushed
// towards the top of its range.
func ComponentCost(c ComponentConfig) float64 {
	def := catalog.MustComponent(c.Type)
	cost := def.BaseCost * catalog.MaterialOrReference(c.Material).CostFactor()
	values := c.Parameters().Values()
	for _, r := range def.Ranges {
		v, ok := values[r.Key]
		if !ok {
			continue
		}
		cost *= 1 + r.Normalize(v)*propertyCostPremium
	}
	return cost
}

// TotalCost is the summed component cost, rounded to the nearest whole unit.
func TotalCost(components []ComponentConfig) float64 {
	var cost float64
	for _, c := range components {
		cost += ComponentCost(c)
	}
	return math.Round(cost)
}
