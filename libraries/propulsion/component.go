package propulsion

import (
	"encoding/json"
	"errors"
	"fmt"

	"enginelab/libraries/catalog"
)

var ErrUnknownProperty = errors.New("unknown property")

type ComponentID = string

type Size string

const (
	Small  Size = "small"
	Medium Size = "medium"
	Large  Size = "large"
)

func (s Size) Valid() bool {
	return s == Small || s == Medium || s == Large
}

// Params is the typed property set of one component. Every implementation is a plain value type, so
// copying a ComponentConfig copies its parameters too.
//
// Values and With are the key/value view used by sliders and other generic bindings; engine code
// reads the typed fields directly.
type Params interface {
	Type() catalog.ComponentType
	Values() map[catalog.PropertyKey]float64
	With(key catalog.PropertyKey, v float64) (Params, error)
}

type Chamber struct {
	Pressure float64 // MPa
}

type Nozzle struct {
	ThroatDiameter float64 // m
	ExpansionRatio float64 // Ae/At
}

type Injector struct {
	Elements             float64
	CombustionEfficiency float64 // η c*
}

type Turbopump struct {
	DischargePressure float64 // MPa
	Efficiency        float64
}

type FuelTank struct {
	PropellantMass float64 // kg
}

type OxidizerTank struct {
	PropellantMass float64 // kg
}

func (Chamber) Type() catalog.ComponentType      { return catalog.CombustionChamber }
func (Nozzle) Type() catalog.ComponentType       { return catalog.Nozzle }
func (Injector) Type() catalog.ComponentType     { return catalog.FuelInjector }
func (Turbopump) Type() catalog.ComponentType    { return catalog.Turbopump }
func (FuelTank) Type() catalog.ComponentType     { return catalog.FuelTank }
func (OxidizerTank) Type() catalog.ComponentType { return catalog.OxidizerTank }

func (p Chamber) Values() map[catalog.PropertyKey]float64 {
	return map[catalog.PropertyKey]float64{catalog.ChamberPressure: p.Pressure}
}

func (p Nozzle) Values() map[catalog.PropertyKey]float64 {
	return map[catalog.PropertyKey]float64{
		catalog.ThroatDiameter: p.ThroatDiameter,
		catalog.ExpansionRatio: p.ExpansionRatio,
	}
}

func (p Injector) Values() map[catalog.PropertyKey]float64 {
	return map[catalog.PropertyKey]float64{
		catalog.InjectorElements:     p.Elements,
		catalog.CombustionEfficiency: p.CombustionEfficiency,
	}
}

func (p Turbopump) Values() map[catalog.PropertyKey]float64 {
	return map[catalog.PropertyKey]float64{
		catalog.DischargePressure: p.DischargePressure,
		catalog.PumpEfficiency:    p.Efficiency,
	}
}

func (p FuelTank) Values() map[catalog.PropertyKey]float64 {
	return map[catalog.PropertyKey]float64{catalog.PropellantMass: p.PropellantMass}
}

func (p OxidizerTank) Values() map[catalog.PropertyKey]float64 {
	return map[catalog.PropertyKey]float64{catalog.PropellantMass: p.PropellantMass}
}

func unknownProperty(t catalog.ComponentType, key catalog.PropertyKey) error {
	return fmt.Errorf("%w %q for %s", ErrUnknownProperty, key, t)
}

func (p Chamber) With(key catalog.PropertyKey, v float64) (Params, error) {
	switch key {
	case catalog.ChamberPressure:
		p.Pressure = v
	default:
		return p, unknownProperty(p.Type(), key)
	}
	return p, nil
}

func (p Nozzle) With(key catalog.PropertyKey, v float64) (Params, error) {
	switch key {
	case catalog.ThroatDiameter:
		p.ThroatDiameter = v
	case catalog.ExpansionRatio:
		p.ExpansionRatio = v
	default:
		return p, unknownProperty(p.Type(), key)
	}
	return p, nil
}

func (p Injector) With(key catalog.PropertyKey, v float64) (Params, error) {
	switch key {
	case catalog.InjectorElements:
		p.Elements = v
	case catalog.CombustionEfficiency:
		p.CombustionEfficiency = v
	default:
		return p, unknownProperty(p.Type(), key)
	}
	return p, nil
}

func (p Turbopump) With(key catalog.PropertyKey, v float64) (Params, error) {
	switch key {
	case catalog.DischargePressure:
		p.DischargePressure = v
	case catalog.PumpEfficiency:
		p.Efficiency = v
	default:
		return p, unknownProperty(p.Type(), key)
	}
	return p, nil
}

func (p FuelTank) With(key catalog.PropertyKey, v float64) (Params, error) {
	if key != catalog.PropellantMass {
		return p, unknownProperty(p.Type(), key)
	}
	p.PropellantMass = v
	return p, nil
}

func (p OxidizerTank) With(key catalog.PropertyKey, v float64) (Params, error) {
	if key != catalog.PropellantMass {
		return p, unknownProperty(p.Type(), key)
	}
	p.PropellantMass = v
	return p, nil
}

func zeroParams(t catalog.ComponentType) Params {
	switch t {
	case catalog.CombustionChamber:
		return Chamber{}
	case catalog.Nozzle:
		return Nozzle{}
	case catalog.FuelInjector:
		return Injector{}
	case catalog.Turbopump:
		return Turbopump{}
	case catalog.FuelTank:
		return FuelTank{}
	case catalog.OxidizerTank:
		return OxidizerTank{}
	}
	panic(fmt.Sprintf("propulsion: unknown component type %q", t))
}

// ParamsFromValues builds typed parameters for t from a key/value map. Keys missing from values take
// the catalog default; keys the component does not have are rejected.
func ParamsFromValues(t catalog.ComponentType, values map[catalog.PropertyKey]float64) (Params, error) {
	def, ok := catalog.Component(t)
	if !ok {
		return nil, fmt.Errorf("propulsion: unknown component type %q", t)
	}
	p := zeroParams(t)
	var err error
	for _, r := range def.Ranges {
		if p, err = p.With(r.Key, def.Default(r.Key)); err != nil {
			return nil, err
		}
	}
	for key, v := range values {
		if p, err = p.With(key, v); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// DefaultParams returns the catalog defaults for t. It panics if t is not a catalog type.
func DefaultParams(t catalog.ComponentType) Params {
	p, err := ParamsFromValues(t, nil)
	if err != nil {
		panic(err)
	}
	return p
}

type ComponentConfig struct {
	ID       ComponentID           `json:"id"`
	Type     catalog.ComponentType `json:"type"`
	Material catalog.MaterialKey   `json:"material"`
	Size     Size                  `json:"size"`
	// Params may be left nil, in which case the catalog defaults apply.
	Params Params `json:"-"`
}

// Parameters returns the component's typed parameters, or the catalog defaults when none are set.
// A Params value of the wrong type is a programming error and panics.
func (c ComponentConfig) Parameters() Params {
	if c.Params == nil {
		return DefaultParams(c.Type)
	}
	if c.Params.Type() != c.Type {
		panic(fmt.Sprintf("propulsion: component %s is a %s but carries %s parameters", c.ID, c.Type, c.Params.Type()))
	}
	return c.Params
}

// Property reads one parameter through the key/value view.
func (c ComponentConfig) Property(key catalog.PropertyKey) (float64, bool) {
	v, ok := c.Parameters().Values()[key]
	return v, ok
}

type componentJSON struct {
	ID         ComponentID                     `json:"id"`
	Type       catalog.ComponentType           `json:"type"`
	Material   catalog.MaterialKey             `json:"material"`
	Size       Size                            `json:"size"`
	Properties map[catalog.PropertyKey]float64 `json:"properties"`
}

func (c ComponentConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(componentJSON{
		ID:         c.ID,
		Type:       c.Type,
		Material:   c.Material,
		Size:       c.Size,
		Properties: c.Parameters().Values(),
	})
}

func (c *ComponentConfig) UnmarshalJSON(b []byte) error {
	var raw componentJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	p, err := ParamsFromValues(raw.Type, raw.Properties)
	if err != nil {
		return err
	}
	*c = ComponentConfig{ID: raw.ID, Type: raw.Type, Material: raw.Material, Size: raw.Size, Params: p}
	return nil
}
