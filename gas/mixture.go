/*
Copyright © 2021 the Gasify authors.
This file is part of Gasify.

Gasify is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Gasify is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Gasify.  If not, see <http://www.gnu.org/licenses/>.
*/

package gas

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/swinburne-sensing/gasify/quantity"
	"gonum.org/v1/gonum/floats"
)

const (
	// BalanceTolerance is the amount by which the total of a mixture may
	// differ from 100% and still be considered balanced.
	BalanceTolerance = 1e-12

	// EqualTolerance is the largest difference between two fractional
	// concentrations that are considered equal.
	EqualTolerance = 1e-15
)

// Mixture is a set of concentrations with at most one entry per compound,
// sorted by compound order and then name. Mixtures are immutable; every
// operation returns a new value.
type Mixture struct {
	name  string
	parts []Concentration
}

// NewMixture merges the given components into a mixture, summing the
// concentrations of repeated compounds.
func NewMixture(parts ...Components) Mixture {
	return NewNamedMixture("", parts...)
}

// NewNamedMixture is like NewMixture but also names the mixture.
func NewNamedMixture(name string, parts ...Components) Mixture {
	var merged []Concentration
	for _, p := range parts {
		if p == nil {
			continue
		}
	next:
		for _, cc := range p.Concentrations() {
			for i, m := range merged {
				if m.compound.Equal(cc.compound) {
					merged[i] = sum(m, cc)
					continue next
				}
			}
			merged = append(merged, cc)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].compound.Less(merged[j].compound)
	})
	return Mixture{name: name, parts: merged}
}

// sum adds two concentrations of the same compound.
func sum(a, b Concentration) Concentration {
	q, err := a.amount.Add(b.amount)
	if err != nil {
		panic(fmt.Errorf("gas: adding concentrations %s and %s: %v", a, b, err))
	}
	return Concentration{amount: q.Compact(), compound: a.compound}
}

// Combine merges any number of components into a new mixture.
func Combine(parts ...Components) Mixture {
	return NewMixture(parts...)
}

// AutoBalance creates a mixture from parts, topping it up to 100% with
// the balance compound. It returns ErrOverSpecified if the parts already
// sum to more than 100%.
func AutoBalance(balance *Compound, parts ...Components) (Mixture, error) {
	return AutoBalanceNamed("", balance, parts...)
}

// AutoBalanceNamed is like AutoBalance but also names the mixture.
func AutoBalanceNamed(name string, balance *Compound, parts ...Components) (Mixture, error) {
	if balance == nil {
		return Mixture{}, fmt.Errorf("gas: nil balance compound: %w", ErrType)
	}
	m := NewMixture(parts...)
	remainder := 1 - m.fractionTotal()
	if remainder < -BalanceTolerance {
		return Mixture{}, fmt.Errorf("gas: balancing %s with %s: total is %v: %w", m, balance, m.Total(), ErrOverSpecified)
	}
	if remainder < 0 {
		remainder = 0
	}
	cc, err := newConcentration(quantity.Number(remainder), balance)
	if err != nil {
		return Mixture{}, err
	}
	return NewNamedMixture(name, m, cc), nil
}

// Name returns the mixture name, which may be empty.
func (m Mixture) Name() string { return m.name }

// WithName returns a copy of m with the given name.
func (m Mixture) WithName(name string) Mixture {
	return Mixture{name: name, parts: m.parts}
}

// Len returns the number of compounds in the mixture.
func (m Mixture) Len() int { return len(m.parts) }

// Concentrations implements Components. The returned slice is a copy.
func (m Mixture) Concentrations() []Concentration {
	return append([]Concentration(nil), m.parts...)
}

// Compounds returns the compounds in the mixture in sorted order.
func (m Mixture) Compounds() []*Compound {
	o := make([]*Compound, len(m.parts))
	for i, p := range m.parts {
		o[i] = p.compound
	}
	return o
}

// Get returns the concentration of c in the mixture.
func (m Mixture) Get(c *Compound) (Concentration, bool) {
	for _, p := range m.parts {
		if p.compound.Equal(c) {
			return p, true
		}
	}
	return Concentration{}, false
}

// Contains reports whether x is in the mixture. x may be a *Compound or a
// Concentration, which must match both compound and amount.
func (m Mixture) Contains(x interface{}) bool {
	switch v := x.(type) {
	case *Compound:
		_, ok := m.Get(v)
		return ok
	case Concentration:
		p, ok := m.Get(v.compound)
		return ok && Equal(p, v)
	}
	return false
}

// Add returns a new mixture that combines m with other components.
func (m Mixture) Add(o ...Components) Mixture {
	return Combine(append([]Components{m}, o...)...)
}

func (m Mixture) fractionTotal() float64 {
	f := make([]float64, len(m.parts))
	for i, p := range m.parts {
		f[i] = p.Fraction()
	}
	return floats.Sum(f)
}

// Total returns the sum of all concentrations as a compact quantity.
func (m Mixture) Total() quantity.Quantity {
	q, _ := quantity.Number(m.fractionTotal()).To(quantity.Percent)
	return q.Compact()
}

// Balanced reports whether the mixture sums to 100%.
func (m Mixture) Balanced() bool {
	return math.Abs(m.fractionTotal()-1) <= BalanceTolerance
}

// Analyte reports whether any compound in the mixture is an analyte.
func (m Mixture) Analyte() bool {
	for _, p := range m.parts {
		if p.compound.Analyte() {
			return true
		}
	}
	return false
}

// Humid reports whether the mixture contains water vapour.
func (m Mixture) Humid() bool {
	for _, p := range m.parts {
		if p.compound.Humid() {
			return true
		}
	}
	return false
}

// Normalise returns the mixture scaled so that it sums to 100%.
func (m Mixture) Normalise() (Mixture, error) {
	total := m.fractionTotal()
	if total == 0 {
		return Mixture{}, fmt.Errorf("gas: normalising %s: %w", m, ErrEmpty)
	}
	parts := make([]Concentration, len(m.parts))
	for i, p := range m.parts {
		parts[i] = Concentration{amount: p.amount.Scale(1 / total).Compact(), compound: p.compound}
	}
	return Mixture{name: m.name, parts: parts}, nil
}

// GCF returns the gas correction factor of the mixture:
//
//	0.3106 * Σ(cᵢ·sᵢ) / Σ(cᵢ·dᵢ·cpᵢ)
//
// where c is the fractional concentration, s the molecular structure
// factor, d the density in g/L and cp the specific heat in cal/(g K).
// Every compound lacking one of these properties is listed in the
// returned error, which wraps ErrMissingProperties.
func (m Mixture) GCF() (float64, error) {
	var missing []string
	num := make([]float64, len(m.parts))
	den := make([]float64, len(m.parts))
	for i, p := range m.parts {
		s, d, cp, ok := p.compound.properties()
		if !ok {
			missing = append(missing, p.String())
			continue
		}
		num[i] = p.Fraction() * s
		den[i] = p.Fraction() * d * cp
	}
	if len(missing) > 0 {
		return 0, fmt.Errorf("gas: cannot calculate GCF, %w: %s", ErrMissingProperties, strings.Join(missing, ", "))
	}
	d := floats.Sum(den)
	if d == 0 {
		return 0, fmt.Errorf("gas: GCF of %s: %w", m, ErrEmpty)
	}
	return gcfConstant * floats.Sum(num) / d, nil
}

// Keys returns the registry keys of the mixture: its name, or its
// string form if it has no name.
func (m Mixture) Keys() []string {
	if m.name != "" {
		return []string{m.name}
	}
	return []string{m.String()}
}

// Mixture returns m. It allows a Mixture to be used as a registry Entry.
func (m Mixture) Mixture() Mixture { return m }

// EqualMixture reports whether m and o contain the same compounds in the
// same amounts. Names are ignored.
func (m Mixture) EqualMixture(o Mixture) bool {
	if len(m.parts) != len(o.parts) {
		return false
	}
	for _, p := range m.parts {
		q, ok := o.Get(p.compound)
		if !ok || !Equal(p, q) {
			return false
		}
	}
	return true
}

func (m Mixture) String() string {
	s := make([]string, len(m.parts))
	for i, p := range m.parts {
		s[i] = p.String()
	}
	return strings.Join(s, ", ")
}
