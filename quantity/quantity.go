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

// Package quantity provides physical quantities with units on top of the
// github.com/ctessum/unit dimensional engine. It adds a table of named
// units (including percent, ppm, ppb, temperature scales and gas flow
// units), parsing of strings such as "21%" or "30.359 g/m^3", and
// compact human-readable formatting.
package quantity

import (
	"fmt"
	"math"

	"github.com/ctessum/unit"
)

// Quantity is an immutable magnitude expressed in a unit. The zero
// value is the bare number 0.
type Quantity struct {
	mag float64
	u   *Unit
}

// New returns a quantity of magnitude expressed in u. A nil unit or
// Dimensionless gives a bare number.
func New(magnitude float64, u *Unit) Quantity {
	if u == Dimensionless {
		u = nil
	}
	return Quantity{mag: magnitude, u: u}
}

// Number returns the bare number v.
func Number(v float64) Quantity { return Quantity{mag: v} }

// FromSI returns the quantity in u corresponding to the SI value v.
// It returns ErrIncompatibleUnits if the dimensions of v and u differ.
func FromSI(v *unit.Unit, u *Unit) (Quantity, error) {
	if !v.Dimensions().Matches(u.Dimensions()) {
		return Quantity{}, fmt.Errorf("quantity: cannot express %v in %s: %w", v, u, ErrIncompatibleUnits)
	}
	return New((v.Value()-u.Offset())/u.Scale(), u), nil
}

// Magnitude returns the numeric value of q in its own unit.
func (q Quantity) Magnitude() float64 { return q.mag }

// Unit returns the unit of q.
func (q Quantity) Unit() *Unit {
	if q.u == nil {
		return Dimensionless
	}
	return q.u
}

// SI returns q as a value of the dimensional engine, in SI base units.
func (q Quantity) SI() *unit.Unit {
	return unit.New(q.mag*q.u.Scale()+q.u.Offset(), q.u.Dimensions())
}

// Value returns the magnitude of q in SI base units.
func (q Quantity) Value() float64 { return q.mag*q.u.Scale() + q.u.Offset() }

// Dimensions returns the physical dimensions of q.
func (q Quantity) Dimensions() unit.Dimensions { return q.u.Dimensions() }

// IsUnitless reports whether q is a bare number.
func (q Quantity) IsUnitless() bool { return q.u == nil }

// IsDimensionless reports whether q has no physical dimensions. Ratios
// such as percent and ppm are dimensionless but not unitless.
func (q Quantity) IsDimensionless() bool { return q.u.IsDimensionless() }

// CompatibleWith reports whether q can be converted to u.
func (q Quantity) CompatibleWith(u *Unit) bool { return q.u.CompatibleWith(u) }

// In returns the magnitude of q expressed in u.
func (q Quantity) In(u *Unit) (float64, error) {
	if u == nil {
		u = Dimensionless
	}
	if q.u == u || (q.u == nil && u == Dimensionless) {
		return q.mag, nil
	}
	if !q.CompatibleWith(u) {
		return 0, fmt.Errorf("quantity: cannot convert %s to %s: %w", q.Unit(), u, ErrIncompatibleUnits)
	}
	if q.u.Offset() == 0 && u.Offset() == 0 {
		return q.mag * (q.u.Scale() / u.Scale()), nil
	}
	return (q.Value() - u.Offset()) / u.Scale(), nil
}

// To returns q converted to u.
func (q Quantity) To(u *Unit) (Quantity, error) {
	m, err := q.In(u)
	if err != nil {
		return Quantity{}, err
	}
	return New(m, u), nil
}

func (q Quantity) mustTo(u *Unit) Quantity {
	o, err := q.To(u)
	if err != nil {
		panic(err)
	}
	return o
}

// absolute replaces an offset unit with its absolute counterpart.
func (q Quantity) absolute() Quantity {
	if q.u != nil && q.u.abs != nil {
		return q.mustTo(q.u.abs)
	}
	return q
}

// Add returns q+o in the unit of q.
func (q Quantity) Add(o Quantity) (Quantity, error) {
	return q.additive(o, func(a, b *unit.Unit) *unit.Unit { return unit.Add(a, b) })
}

// Sub returns q-o in the unit of q.
func (q Quantity) Sub(o Quantity) (Quantity, error) {
	return q.additive(o, func(a, b *unit.Unit) *unit.Unit { return unit.Sub(a, b) })
}

func (q Quantity) additive(o Quantity, f func(a, b *unit.Unit) *unit.Unit) (Quantity, error) {
	if !q.Dimensions().Matches(o.Dimensions()) {
		return Quantity{}, fmt.Errorf("quantity: cannot combine %s and %s: %w", q.Unit(), o.Unit(), ErrIncompatibleUnits)
	}
	if q.u.Offset() != 0 || o.u.Offset() != 0 {
		return Quantity{}, fmt.Errorf("quantity: adding %s and %s: %w", q.Unit(), o.Unit(), ErrOffsetUnit)
	}
	if q.u == o.u {
		d := q.Dimensions()
		return New(f(unit.New(q.mag, d), unit.New(o.mag, d)).Value(), q.u), nil
	}
	return FromSI(f(q.SI(), o.SI()), q.u)
}

// Mul returns the product of q and o. Offset temperatures are converted
// to kelvin first.
func (q Quantity) Mul(o Quantity) Quantity {
	a, b := q.absolute(), o.absolute()
	return New(a.mag*b.mag, a.u.Mul(b.u))
}

// Div returns q divided by o. Offset temperatures are converted to
// kelvin first.
func (q Quantity) Div(o Quantity) Quantity {
	a, b := q.absolute(), o.absolute()
	return New(a.mag/b.mag, a.u.Div(b.u))
}

// Scale returns q with its magnitude multiplied by f.
func (q Quantity) Scale(f float64) Quantity {
	return Quantity{mag: q.mag * f, u: q.u}
}

// Round returns q with its magnitude rounded to the given number of
// decimal places.
func (q Quantity) Round(places int) Quantity {
	return Quantity{mag: roundPlaces(q.mag, places), u: q.u}
}

func roundPlaces(v float64, places int) float64 {
	p := pow10(places)
	return math.Round(v*p) / p
}

// Cmp compares q and o by their SI values, returning -1, 0 or +1.
func (q Quantity) Cmp(o Quantity) (int, error) {
	if !q.Dimensions().Matches(o.Dimensions()) {
		return 0, fmt.Errorf("quantity: cannot compare %s and %s: %w", q.Unit(), o.Unit(), ErrIncompatibleUnits)
	}
	a, b := q.Value(), o.Value()
	if q.u == o.u {
		a, b = q.mag, o.mag
	}
	switch {
	case a < b:
		return -1, nil
	case a > b:
		return 1, nil
	}
	return 0, nil
}

// Equal reports whether q and o have the same dimensions and value.
func (q Quantity) Equal(o Quantity) bool {
	c, err := q.Cmp(o)
	return err == nil && c == 0
}

// IsZero reports whether the magnitude of q is zero.
func (q Quantity) IsZero() bool { return q.mag == 0 }

// Sign returns -1, 0 or +1 depending on the sign of the SI value of q.
func (q Quantity) Sign() int {
	switch v := q.Value(); {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
