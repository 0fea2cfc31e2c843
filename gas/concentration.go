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

	"github.com/swinburne-sensing/gasify/quantity"
)

// Components is implemented by anything that can be combined into a
// Mixture.
type Components interface {
	Concentrations() []Concentration
}

// Concentration is the amount of one compound in a mixture, held as a
// dimensionless quantity such as 21%, 400 ppm or 5 ppb.
type Concentration struct {
	amount   quantity.Quantity
	compound *Compound
}

// NewConcentration creates a concentration of compound c. x is parsed with
// quantity.Parse; bare numbers are fractions and are converted to percent.
// The result is compacted to percent, ppm or ppb.
// It returns ErrNotDimensionless or ErrNegative for invalid amounts.
func NewConcentration(x interface{}, c *Compound) (Concentration, error) {
	if c == nil {
		return Concentration{}, fmt.Errorf("gas: concentration of nil compound: %w", ErrType)
	}
	q, err := quantity.Parse(x, nil)
	if err != nil {
		return Concentration{}, fmt.Errorf("gas: concentration of %s: %w", c, err)
	}
	return newConcentration(q, c)
}

func newConcentration(q quantity.Quantity, c *Compound) (Concentration, error) {
	if !q.IsDimensionless() {
		return Concentration{}, fmt.Errorf("gas: concentration of %s is %v: %w", c, q, ErrNotDimensionless)
	}
	if q.Sign() < 0 {
		return Concentration{}, fmt.Errorf("gas: concentration of %s is %v: %w", c, q, ErrNegative)
	}
	if q.IsUnitless() {
		q, _ = q.To(quantity.Percent)
	}
	return Concentration{amount: q.Compact(), compound: c}, nil
}

// Compound returns the compound.
func (cc Concentration) Compound() *Compound { return cc.compound }

// Amount returns the concentration as a compact dimensionless quantity.
func (cc Concentration) Amount() quantity.Quantity { return cc.amount }

// Fraction returns the concentration as a plain fraction, so 21% is 0.21.
func (cc Concentration) Fraction() float64 { return cc.amount.Value() }

// GCF returns the gas correction factor of the compound, which does not
// depend on its concentration.
func (cc Concentration) GCF() (float64, bool) { return cc.compound.GCF() }

// Scale returns the concentration multiplied by the dimensionless factor x.
func (cc Concentration) Scale(x interface{}) (Concentration, error) {
	f, err := factor(x)
	if err != nil {
		return Concentration{}, fmt.Errorf("gas: %s * %v: %w", cc, x, err)
	}
	return newConcentration(cc.amount.Scale(f), cc.compound)
}

// Divide returns the concentration divided by the dimensionless factor x.
func (cc Concentration) Divide(x interface{}) (Concentration, error) {
	f, err := factor(x)
	if err != nil {
		return Concentration{}, fmt.Errorf("gas: %s / %v: %w", cc, x, err)
	}
	if f == 0 {
		return Concentration{}, fmt.Errorf("gas: %s / %v: division by zero", cc, x)
	}
	return newConcentration(cc.amount.Scale(1/f), cc.compound)
}

// Add combines the concentration with other components into a Mixture.
func (cc Concentration) Add(o ...Components) Mixture {
	return Combine(append([]Components{cc}, o...)...)
}

// Concentrations implements Components.
func (cc Concentration) Concentrations() []Concentration { return []Concentration{cc} }

func (cc Concentration) String() string {
	return fmt.Sprintf("%v %s", cc.amount, cc.compound)
}

// factor parses x as a dimensionless multiplier.
func factor(x interface{}) (float64, error) {
	if !scalar(x) {
		return 0, fmt.Errorf("%T: %w", x, ErrType)
	}
	q, err := quantity.Parse(x, nil)
	if err != nil {
		return 0, err
	}
	if !q.IsDimensionless() {
		return 0, fmt.Errorf("%v: %w", q, ErrNotDimensionless)
	}
	return q.Value(), nil
}

// Concentrations is a list of concentrations that is not yet merged into
// a mixture.
type Concentrations []Concentration

// Concentrations implements Components.
func (c Concentrations) Concentrations() []Concentration { return c }
