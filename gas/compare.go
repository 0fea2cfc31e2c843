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

	"github.com/swinburne-sensing/gasify/quantity"
)

// Compare returns -1, 0 or +1 depending on whether a sorts before, equal
// to or after b.
//
// Compounds are ordered by (order, name). Concentrations of the same
// compound are ordered by amount; otherwise by compound. A concentration
// may also be compared with a number, string or dimensionless quantity,
// in which case only the amount is used. Any other pairing returns
// ErrType.
func Compare(a, b interface{}) (int, error) {
	switch x := a.(type) {
	case *Compound:
		if y, ok := b.(*Compound); ok && x != nil && y != nil {
			return compareCompounds(x, y), nil
		}
	case Concentration:
		switch y := b.(type) {
		case Concentration:
			if x.compound.Equal(y.compound) {
				return compareFractions(x.Fraction(), y.Fraction()), nil
			}
			return compareCompounds(x.compound, y.compound), nil
		default:
			if scalar(b) {
				return compareAmount(x, b)
			}
		}
	default:
		if y, ok := b.(Concentration); ok && scalar(a) {
			c, err := compareAmount(y, a)
			return -c, err
		}
	}
	return 0, fmt.Errorf("gas: cannot compare %T with %T: %w", a, b, ErrType)
}

// Equal reports whether a and b are equal. Concentrations are equal when
// they are of the same compound and differ by no more than
// EqualTolerance. A concentration equals a compound when the compounds
// match, and equals a scalar when the amounts match.
func Equal(a, b interface{}) bool {
	switch x := a.(type) {
	case *Compound:
		switch y := b.(type) {
		case *Compound:
			return x.Equal(y)
		case Concentration:
			return x.Equal(y.compound)
		}
		return false
	case Concentration:
		if y, ok := b.(*Compound); ok {
			return x.compound.Equal(y)
		}
		if y, ok := b.(Concentration); ok && !x.compound.Equal(y.compound) {
			return false
		}
	}
	c, err := Compare(a, b)
	return err == nil && c == 0
}

func compareCompounds(a, b *Compound) int {
	switch {
	case a.Equal(b):
		return 0
	case a.Less(b):
		return -1
	}
	return 1
}

func compareFractions(a, b float64) int {
	switch {
	case math.Abs(a-b) <= EqualTolerance:
		return 0
	case a < b:
		return -1
	}
	return 1
}

func compareAmount(cc Concentration, x interface{}) (int, error) {
	q, err := quantity.Parse(x, nil)
	if err != nil {
		return 0, fmt.Errorf("gas: comparing %s with %v: %w", cc, x, err)
	}
	if !q.IsDimensionless() {
		return 0, fmt.Errorf("gas: comparing %s with %v: %w", cc, q, ErrNotDimensionless)
	}
	return compareFractions(cc.Fraction(), q.Value()), nil
}
