package propulsion

// Efficiency is the breakdown behind a specific impulse figure.
type Efficiency struct {
	Combustion float64 `json:"combustion"`
	Mixture    float64 `json:"mixture"`
	Nozzle     float64 `json:"nozzle"`
	Overall    float64 `json:"overall"`
}

// EnginePerformance is the result of one calculation. It is produced fresh every time and never
// modified afterwards.
//
// When IsValid is false every numeric field is zero and ValidationErrors says why. When IsValid is
// true ValidationErrors is empty. Warnings only ever appear on a valid record.
type EnginePerformance struct {
	Thrust          float64 `json:"thrust"`           // kN
	SpecificImpulse float64 `json:"specific_impulse"` // s
	ThrustToWeight  float64 `json:"thrust_to_weight"`

	MassFlowRate    float64 `json:"mass_flow_rate"`   // kg/s
	ExitVelocity    float64 `json:"exit_velocity"`    // m/s
	ChamberPressure float64 `json:"chamber_pressure"` // MPa

	DryMass        float64 `json:"dry_mass"`        // kg
	PropellantMass float64 `json:"propellant_mass"` // kg
	TotalMass      float64 `json:"total_mass"`      // kg

	BurnTime     float64 `json:"burn_time"` // s
	TotalCost    float64 `json:"total_cost"`
	MixtureRatio float64 `json:"mixture_ratio"`

	Efficiency Efficiency `json:"efficiency"`

	IsValid          bool     `json:"is_valid"`
	ValidationErrors []string `json:"validation_errors"`
	Warnings         []string `json:"warnings"`
}

func invalid(errs []string) EnginePerformance {
	return EnginePerformance{
		IsValid:          false,
		ValidationErrors: errs,
		Warnings:         []string{},
	}
}
