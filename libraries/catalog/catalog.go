// Package catalog holds the read-only definition tables the bench is built from: component types,
// materials and propellants. Lookups return copies, so callers can never mutate a table.
package catalog

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func copyDefinition(d ComponentDefinition) ComponentDefinition {
	d.Defaults = maps.Clone(d.Defaults)
	d.Ranges = slices.Clone(d.Ranges)
	return d
}

// Component returns the definition for t.
func Component(t ComponentType) (ComponentDefinition, bool) {
	d, ok := definitions[t]
	if !ok {
		return ComponentDefinition{}, false
	}
	return copyDefinition(d), true
}

// MustComponent is Component for callers that already know t is valid. It panics otherwise.
func MustComponent(t ComponentType) ComponentDefinition {
	d, ok := Component(t)
	if !ok {
		panic(fmt.Sprintf("catalog: unknown component type %q", t))
	}
	return d
}

// ComponentTypes lists every component type in check and display order.
func ComponentTypes() []ComponentType {
	return slices.Clone(componentOrder)
}

// RequiredTypes lists the types a complete engine must contain, in check order.
func RequiredTypes() (r []ComponentType) {
	for _, t := range componentOrder {
		if definitions[t].Required {
			r = append(r, t)
		}
	}
	return
}

func Material(key MaterialKey) (MaterialType, bool) {
	m, ok := materials[key]
	return m, ok
}

// MaterialOrReference returns the material for key, falling back to the reference material.
func MaterialOrReference(key MaterialKey) MaterialType {
	if m, ok := materials[key]; ok {
		return m
	}
	return materials[Reference]
}

// MaterialKeys lists every material key, sorted.
func MaterialKeys() []MaterialKey {
	keys := maps.Keys(materials)
	slices.Sort(keys)
	return keys
}

func Propellant(key PropellantKey) (PropellantType, bool) {
	p, ok := propellants[key]
	return p, ok
}

// PropellantKeys lists every propellant key, sorted.
func PropellantKeys() []PropellantKey {
	keys := maps.Keys(propellants)
	slices.Sort(keys)
	return keys
}
