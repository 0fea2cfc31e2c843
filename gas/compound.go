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

// Package gas models gas compounds, concentrations and mixtures, and
// calculates gas correction factors (GCF) for thermal mass flow
// controllers.
package gas

import (
	"fmt"
	"strings"

	"github.com/swinburne-sensing/gasify/quantity"
)

// gcfConstant is the numerator of the MKS gas correction factor formula.
const gcfConstant = 0.3106

// MolecularStructure classifies a compound by the number of atoms in its
// molecule. The zero value means the structure is unknown.
type MolecularStructure int

// Molecular structures.
const (
	UnknownStructure MolecularStructure = iota
	Monatomic
	Diatomic
	Triatomic
	Polyatomic
)

// Factor returns the structure constant used in gas correction factor
// calculations, or 0 if the structure is unknown.
// Reference: MKS Instruments, "Gas correction factors for thermal-based
// mass flow controllers".
func (s MolecularStructure) Factor() float64 {
	switch s {
	case Monatomic:
		return 1.03
	case Diatomic:
		return 1
	case Triatomic:
		return 0.941
	case Polyatomic:
		return 0.88
	}
	return 0
}

func (s MolecularStructure) String() string {
	switch s {
	case Monatomic:
		return "monatomic"
	case Diatomic:
		return "diatomic"
	case Triatomic:
		return "triatomic"
	case Polyatomic:
		return "polyatomic"
	}
	return "unknown"
}

// ParseMolecularStructure returns the structure with the given name.
// The empty string gives UnknownStructure.
func ParseMolecularStructure(s string) (MolecularStructure, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return UnknownStructure, nil
	case "monatomic":
		return Monatomic, nil
	case "diatomic":
		return Diatomic, nil
	case "triatomic":
		return Triatomic, nil
	case "polyatomic":
		return Polyatomic, nil
	}
	return UnknownStructure, fmt.Errorf("gas: invalid molecular structure %q", s)
}

// Units of the physical properties of a compound.
var (
	SpecificHeatUnit = quantity.Calorie.Div(quantity.Gram).Div(quantity.Kelvin)
	DensityUnit      = quantity.Gram.Div(quantity.Liter)
)

// Compound is a pure gas. Compounds are identified by name and ordered
// by (order, name). They are immutable once created.
type Compound struct {
	name    string
	symbol  string
	aliases []string

	structure    MolecularStructure
	specificHeat *quantity.Quantity
	density      *quantity.Quantity

	analyte bool
	humid   bool
	order   int
}

// CompoundOption configures a Compound.
type CompoundOption func(*Compound) error

// WithSymbol sets the chemical symbol of a compound, such as "CO_2".
func WithSymbol(symbol string) CompoundOption {
	return func(c *Compound) error {
		c.symbol = symbol
		return nil
	}
}

// WithAlias adds alternative names for a compound.
func WithAlias(aliases ...string) CompoundOption {
	return func(c *Compound) error {
		c.aliases = append(c.aliases, aliases...)
		return nil
	}
}

// WithStructure sets the molecular structure of a compound.
func WithStructure(s MolecularStructure) CompoundOption {
	return func(c *Compound) error {
		c.structure = s
		return nil
	}
}

// WithSpecificHeat sets the specific heat of a compound. Bare numbers are
// in cal/(g K).
func WithSpecificHeat(x interface{}) CompoundOption {
	return func(c *Compound) error {
		q, err := quantity.Parse(x, SpecificHeatUnit)
		if err != nil {
			return fmt.Errorf("gas: specific heat of %s: %w", c.name, err)
		}
		c.specificHeat = &q
		return nil
	}
}

// WithDensity sets the density of a compound. Bare numbers are in g/L.
func WithDensity(x interface{}) CompoundOption {
	return func(c *Compound) error {
		q, err := quantity.Parse(x, DensityUnit)
		if err != nil {
			return fmt.Errorf("gas: density of %s: %w", c.name, err)
		}
		c.density = &q
		return nil
	}
}

// NonAnalyte marks a compound as a carrier or balance gas rather than a
// gas of interest.
func NonAnalyte() CompoundOption {
	return func(c *Compound) error {
		c.analyte = false
		return nil
	}
}

// Humid marks a compound as water vapour.
func Humid() CompoundOption {
	return func(c *Compound) error {
		c.humid = true
		return nil
	}
}

// WithOrder sets the sort order of a compound. Compounds with a lower
// order sort first, so balance gases usually have a high order.
func WithOrder(order int) CompoundOption {
	return func(c *Compound) error {
		c.order = order
		return nil
	}
}

// NewCompound creates a compound. Compounds are analytes unless the
// NonAnalyte option is given.
func NewCompound(name string, opts ...CompoundOption) (*Compound, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("gas: compound name must not be empty")
	}
	c := &Compound{name: name, analyte: true}
	for _, o := range opts {
		if err := o(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustCompound is like NewCompound but panics on error.
func MustCompound(name string, opts ...CompoundOption) *Compound {
	c, err := NewCompound(name, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the name of the compound.
func (c *Compound) Name() string { return c.name }

// Symbol returns the chemical symbol, which may be empty.
func (c *Compound) Symbol() string { return c.symbol }

// Aliases returns the alternative names of the compound.
func (c *Compound) Aliases() []string { return append([]string(nil), c.aliases...) }

// Structure returns the molecular structure of the compound.
func (c *Compound) Structure() MolecularStructure { return c.structure }

// SpecificHeat returns the specific heat of the compound if known.
func (c *Compound) SpecificHeat() (quantity.Quantity, bool) {
	if c.specificHeat == nil {
		return quantity.Quantity{}, false
	}
	return *c.specificHeat, true
}

// Density returns the density of the compound if known.
func (c *Compound) Density() (quantity.Quantity, bool) {
	if c.density == nil {
		return quantity.Quantity{}, false
	}
	return *c.density, true
}

// Analyte reports whether the compound is a gas of interest.
func (c *Compound) Analyte() bool { return c.analyte }

// Humid reports whether the compound is water vapour.
func (c *Compound) Humid() bool { return c.humid }

// Order returns the sort order of the compound.
func (c *Compound) Order() int { return c.order }

// Keys returns the registry keys of the compound: its name, symbol and
// aliases.
func (c *Compound) Keys() []string {
	keys := []string{c.name}
	if c.symbol != "" {
		keys = append(keys, c.symbol)
	}
	return append(keys, c.aliases...)
}

// Equal reports whether c and o have the same name.
func (c *Compound) Equal(o *Compound) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.name == o.name
}

// Less reports whether c sorts before o.
func (c *Compound) Less(o *Compound) bool {
	if c.order != o.order {
		return c.order < o.order
	}
	return c.name < o.name
}

// properties returns the magnitudes used in GCF calculations.
func (c *Compound) properties() (structure, density, specificHeat float64, ok bool) {
	if c.structure == UnknownStructure || c.density == nil || c.specificHeat == nil {
		return 0, 0, 0, false
	}
	d, err := c.density.In(DensityUnit)
	if err != nil {
		return 0, 0, 0, false
	}
	cp, err := c.specificHeat.In(SpecificHeatUnit)
	if err != nil {
		return 0, 0, 0, false
	}
	return c.structure.Factor(), d, cp, true
}

// GCF returns the gas correction factor of the pure compound. It returns
// false if the structure, density or specific heat is unknown.
func (c *Compound) GCF() (float64, bool) {
	s, d, cp, ok := c.properties()
	if !ok {
		return 0, false
	}
	return gcfConstant * s / (d * cp), true
}

// Scale returns a concentration of c. x may be a number, a string or a
// dimensionless quantity; bare numbers are fractions, so 0.21 is 21%.
func (c *Compound) Scale(x interface{}) (Concentration, error) {
	if !scalar(x) {
		return Concentration{}, fmt.Errorf("gas: %s * %T: %w", c, x, ErrType)
	}
	return NewConcentration(x, c)
}

func (c *Compound) mustScale(x interface{}) Concentration {
	cc, err := c.Scale(x)
	if err != nil {
		panic(err)
	}
	return cc
}

// Mixture returns the pure compound as a mixture.
func (c *Compound) Mixture() Mixture {
	return NewNamedMixture(c.name, c.mustScale(1))
}

func (c *Compound) String() string {
	if c.symbol != "" {
		return c.symbol
	}
	return c.name
}

// scalar reports whether x is an operand that can be parsed as a
// concentration or a factor.
func scalar(x interface{}) bool {
	switch x.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
		float32, float64, string, quantity.Quantity, *quantity.Quantity:
		return true
	}
	return false
}
