// Package design holds the design session: the component list a player is editing, the budget and
// propellant it is judged against, and the performance record that is recomputed after every edit.
//
// A Session belongs to one owner and is not safe for concurrent use. Use state/hangar to hand out
// one session per owner when designs are served concurrently.
package design

import (
	"errors"
	"fmt"

	"enginelab/engine/library"
	"enginelab/libraries/catalog"
	"enginelab/libraries/propulsion"
	"golang.org/x/exp/slices"
)

var (
	ErrUnknownComponentType = errors.New("unknown component type")
	ErrUnknownMaterial      = errors.New("unknown material")
	ErrUnknownPropellant    = errors.New("unknown propellant")
	ErrUnknownLevel         = errors.New("unknown level")
	ErrUnavailable          = errors.New("not available in this level")
	ErrInvalidSize          = errors.New("invalid size")
)

// Listener is called after every recalculation with the fresh record and the session that made it.
type Listener func(p propulsion.EnginePerformance, s *Session)

type subscription struct {
	id int
	fn Listener
}

// ComponentUpdate is a partial edit. Empty Material and Size leave those fields alone; Properties
// are merged into the existing values.
type ComponentUpdate struct {
	Material   catalog.MaterialKey
	Size       propulsion.Size
	Properties map[catalog.PropertyKey]float64
}

type Session struct {
	id          string
	level       LevelConfig
	propellant  catalog.PropellantType
	components  []propulsion.ComponentConfig
	totalBudget float64
	spentBudget float64
	performance propulsion.EnginePerformance

	listeners      []subscription
	nextListenerID int
	nextComponent  int
}

// New starts an empty design for the given level.
func New(id string, level LevelConfig) (*Session, error) {
	propellant, ok := catalog.Propellant(level.Propellant)
	if !ok {
		return nil, fmt.Errorf("level %d: %w %q", level.ID, ErrUnknownPropellant, level.Propellant)
	}
	s := &Session{
		id:          id,
		level:       copyLevel(level),
		propellant:  propellant,
		totalBudget: level.Budget,
	}
	s.calculate()
	return s, nil
}

// NewForLevel is New with a level looked up by ID.
func NewForLevel(id string, levelID int) (*Session, error) {
	level, ok := Level(levelID)
	if !ok {
		return nil, fmt.Errorf("%w %d", ErrUnknownLevel, levelID)
	}
	return New(id, level)
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Level() LevelConfig {
	return copyLevel(s.level)
}

func (s *Session) Propellant() catalog.PropellantType {
	return s.propellant
}

// Performance is the record produced by the most recent recalculation.
func (s *Session) Performance() propulsion.EnginePerformance {
	return s.performance
}

func (s *Session) TotalBudget() float64 {
	return s.totalBudget
}

func (s *Session) SpentBudget() float64 {
	return s.spentBudget
}

func (s *Session) RemainingBudget() float64 {
	return s.totalBudget - s.spentBudget
}

// Components returns a copy of the current component list.
func (s *Session) Components() []propulsion.ComponentConfig {
	return slices.Clone(s.components)
}

func (s *Session) Component(id propulsion.ComponentID) (propulsion.ComponentConfig, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return propulsion.ComponentConfig{}, false
	}
	return s.components[i], true
}

func (s *Session) HasComponent(t catalog.ComponentType) bool {
	return slices.IndexFunc(s.components, func(c propulsion.ComponentConfig) bool { return c.Type == t }) >= 0
}

func (s *Session) indexOf(id propulsion.ComponentID) int {
	return slices.IndexFunc(s.components, func(c propulsion.ComponentConfig) bool { return c.ID == id })
}

func (s *Session) checkMaterial(m catalog.MaterialKey) error {
	if _, ok := catalog.Material(m); !ok {
		return fmt.Errorf("%w %q", ErrUnknownMaterial, m)
	}
	if !s.level.AllowsMaterial(m) {
		return fmt.Errorf("material %q: %w", m, ErrUnavailable)
	}
	return nil
}

// AddComponent appends a component of type t with the catalog defaults and recalculates.
func (s *Session) AddComponent(t catalog.ComponentType, material catalog.MaterialKey) (propulsion.ComponentConfig, error) {
	if _, ok := catalog.Component(t); !ok {
		return propulsion.ComponentConfig{}, fmt.Errorf("%w %q", ErrUnknownComponentType, t)
	}
	if !s.level.Allows(t) {
		return propulsion.ComponentConfig{}, fmt.Errorf("component %q: %w", t, ErrUnavailable)
	}
	if err := s.checkMaterial(material); err != nil {
		return propulsion.ComponentConfig{}, err
	}
	s.nextComponent++
	c := propulsion.ComponentConfig{
		ID:       fmt.Sprintf("comp_%d", s.nextComponent),
		Type:     t,
		Material: material,
		Size:     propulsion.Medium,
		Params:   propulsion.DefaultParams(t),
	}
	s.components = append(s.components, c)
	library.LogCLI(fmt.Sprintf("session %s: added %s %s (%s)", s.id, material, t, c.ID), 3)
	s.Recalculate()
	return c, nil
}

// RemoveComponent removes the component with the given ID. An unknown ID is a no-op and reports false.
func (s *Session) RemoveComponent(id propulsion.ComponentID) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.components = slices.Delete(s.components, i, i+1)
	library.LogCLI(fmt.Sprintf("session %s: removed %s", s.id, id), 3)
	s.Recalculate()
	return true
}

// UpdateComponent merges u into the component with the given ID. An unknown ID is a no-op and
// reports false. An invalid update is rejected whole, nothing is applied and nobody is notified.
func (s *Session) UpdateComponent(id propulsion.ComponentID, u ComponentUpdate) (bool, error) {
	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	c := s.components[i]
	if u.Material != "" {
		if err := s.checkMaterial(u.Material); err != nil {
			return false, err
		}
		c.Material = u.Material
	}
	if u.Size != "" {
		if !u.Size.Valid() {
			return false, fmt.Errorf("%w %q", ErrInvalidSize, u.Size)
		}
		c.Size = u.Size
	}
	params := c.Parameters()
	var err error
	for key, v := range u.Properties {
		if params, err = params.With(key, v); err != nil {
			return false, err
		}
	}
	c.Params = params
	s.components[i] = c
	library.LogCLI(fmt.Sprintf("session %s: updated %s", s.id, id), 3)
	s.Recalculate()
	return true, nil
}

// SetProperty is the (component, property, value) form of UpdateComponent that slider bindings use.
// The value is not clamped to the declared range.
func (s *Session) SetProperty(id propulsion.ComponentID, key catalog.PropertyKey, v float64) (bool, error) {
	return s.UpdateComponent(id, ComponentUpdate{Properties: map[catalog.PropertyKey]float64{key: v}})
}

// SetPropellant switches propellant and recalculates.
func (s *Session) SetPropellant(key catalog.PropellantKey) error {
	p, ok := catalog.Propellant(key)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownPropellant, key)
	}
	s.propellant = p
	s.Recalculate()
	return nil
}

// Reset clears the design and restarts component numbering.
func (s *Session) Reset() {
	s.components = nil
	s.nextComponent = 0
	s.Recalculate()
}

// LoadLevel switches level, budget and propellant, then resets the design.
func (s *Session) LoadLevel(id int) error {
	level, ok := Level(id)
	if !ok {
		return fmt.Errorf("%w %d", ErrUnknownLevel, id)
	}
	propellant, ok := catalog.Propellant(level.Propellant)
	if !ok {
		return fmt.Errorf("level %d: %w %q", id, ErrUnknownPropellant, level.Propellant)
	}
	s.level = level
	s.totalBudget = level.Budget
	s.propellant = propellant
	library.LogCLI(fmt.Sprintf("session %s: loaded level %d %q", s.id, level.ID, level.Name), 4)
	s.Reset()
	return nil
}

func (s *Session) calculate() {
	s.performance = propulsion.CalculatePerformance(s.components, s.propellant)
	s.spentBudget = s.performance.TotalCost
}

// Recalculate runs the calculator over the current design, stores the record, updates the spent
// budget and then calls every listener in subscription order before returning.
func (s *Session) Recalculate() {
	s.calculate()
	for _, sub := range slices.Clone(s.listeners) {
		sub.fn(s.performance, s)
	}
}

// Subscribe registers fn and returns a function that removes it again. The returned function may be
// called more than once, and from inside a listener.
func (s *Session) Subscribe(fn Listener) (unsubscribe func()) {
	s.nextListenerID++
	id := s.nextListenerID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	return func() {
		if i := slices.IndexFunc(s.listeners, func(l subscription) bool { return l.id == id }); i >= 0 {
			s.listeners = slices.Delete(s.listeners, i, i+1)
		}
	}
}

// IsReadyForTest is true when the design is valid and paid for.
func (s *Session) IsReadyForTest() bool {
	return s.performance.IsValid && s.spentBudget <= s.totalBudget
}

// CheckObjectives evaluates each objective against the current record, in order.
func (s *Session) CheckObjectives(objectives []Objective) []ObjectiveResult {
	results := make([]ObjectiveResult, 0, len(objectives))
	for _, o := range objectives {
		results = append(results, ObjectiveResult{Objective: o, Met: o.Check != nil && o.Check(s.performance, s)})
	}
	return results
}

// CheckLevelObjectives is CheckObjectives for the loaded level's objectives.
func (s *Session) CheckLevelObjectives() []ObjectiveResult {
	return s.CheckObjectives(s.level.Objectives)
}
