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

package quantity

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

var numberPrefix = regexp.MustCompile(`^([-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?)(.*)$`)

// Parse converts x to a Quantity. x may be a Quantity, a *Quantity, a
// time.Duration, any Go number or a string such as "5%", "1.0 degC",
// "30.359 g/m^3" or "kPa" (a bare unit has magnitude 1).
//
// If to is not nil it is resolved with ParseUnit. A bare number is then
// reinterpreted as a magnitude in that unit, while a value that already
// has a unit is converted to it, returning ErrIncompatibleUnits if the
// dimensions differ.
func Parse(x, to interface{}) (Quantity, error) {
	q, err := parseQuantity(x)
	if err != nil {
		return Quantity{}, err
	}
	if to == nil {
		return q, nil
	}
	u, err := ParseUnit(to)
	if err != nil {
		return Quantity{}, err
	}
	if q.IsUnitless() {
		return New(q.mag, u), nil
	}
	return q.To(u)
}

// MustParse is like Parse but panics on error. It is intended for
// constants.
func MustParse(x, to interface{}) Quantity {
	q, err := Parse(x, to)
	if err != nil {
		panic(err)
	}
	return q
}

// ParseRounded is like Parse, rounding the magnitude to the given number
// of decimal places after any conversion.
func ParseRounded(x, to interface{}, places int) (Quantity, error) {
	q, err := Parse(x, to)
	if err != nil {
		return Quantity{}, err
	}
	return q.Round(places), nil
}

// ParseUnit converts x to a unit. x may be a *Unit, a Quantity (whose
// unit is returned) or a unit expression such as "kPa", "°C", "g/m^3"
// or "cal/(g K)".
func ParseUnit(x interface{}) (*Unit, error) {
	switch v := x.(type) {
	case nil:
		return nil, fmt.Errorf("quantity: nil unit: %w", ErrParse)
	case *Unit:
		if v == nil {
			return nil, fmt.Errorf("quantity: nil unit: %w", ErrParse)
		}
		return v, nil
	case Quantity:
		return v.Unit(), nil
	case *Quantity:
		if v == nil {
			return nil, fmt.Errorf("quantity: nil unit: %w", ErrParse)
		}
		return v.Unit(), nil
	case string:
		return parseExpr(v)
	}
	return nil, fmt.Errorf("quantity: cannot use %T as a unit: %w", x, ErrParse)
}

// ParseMagnitude parses x, interpreting bare numbers in inputUnit, and
// returns its magnitude in magnitudeUnit. If inputUnit is nil bare numbers
// are in magnitudeUnit, and if both are nil the magnitude of x is returned
// unconverted.
func ParseMagnitude(x, magnitudeUnit, inputUnit interface{}) (float64, error) {
	if inputUnit == nil {
		inputUnit = magnitudeUnit
	}
	q, err := Parse(x, inputUnit)
	if err != nil {
		return 0, err
	}
	if magnitudeUnit == nil {
		return q.mag, nil
	}
	u, err := ParseUnit(magnitudeUnit)
	if err != nil {
		return 0, err
	}
	return q.In(u)
}

// ParseDuration converts x to a time.Duration. Bare numbers are seconds.
func ParseDuration(x interface{}) (time.Duration, error) {
	if d, ok := x.(time.Duration); ok {
		return d, nil
	}
	s, err := ParseMagnitude(x, Second, Second)
	if err != nil {
		return 0, err
	}
	return time.Duration(s * float64(time.Second)), nil
}

// Converter returns a function that parses its argument to a Quantity
// in unit to. If optional is true a nil argument gives a nil result
// instead of an error.
func Converter(to interface{}, optional bool) (func(x interface{}) (*Quantity, error), error) {
	u, err := ParseUnit(to)
	if err != nil {
		return nil, err
	}
	return func(x interface{}) (*Quantity, error) {
		if x == nil && optional {
			return nil, nil
		}
		q, err := Parse(x, u)
		if err != nil {
			return nil, err
		}
		return &q, nil
	}, nil
}

func parseQuantity(x interface{}) (Quantity, error) {
	switch v := x.(type) {
	case nil:
		return Quantity{}, fmt.Errorf("quantity: nil value: %w", ErrParse)
	case Quantity:
		return v, nil
	case *Quantity:
		if v == nil {
			return Quantity{}, fmt.Errorf("quantity: nil value: %w", ErrParse)
		}
		return *v, nil
	case *Unit:
		if v == nil {
			return Quantity{}, fmt.Errorf("quantity: nil value: %w", ErrParse)
		}
		return New(1, v), nil
	case string:
		return parseString(v)
	case time.Duration:
		return New(v.Seconds(), Second), nil
	case bool:
		return Quantity{}, fmt.Errorf("quantity: cannot parse %T: %w", x, ErrParse)
	}
	f, err := cast.ToFloat64E(x)
	if err != nil {
		return Quantity{}, fmt.Errorf("quantity: cannot parse %T: %w", x, ErrParse)
	}
	return Number(f), nil
}

func parseString(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Quantity{}, fmt.Errorf("quantity: empty string: %w", ErrParse)
	}
	m := numberPrefix.FindStringSubmatch(s)
	if m == nil {
		u, err := parseExpr(s)
		if err != nil {
			return Quantity{}, err
		}
		return New(1, u), nil
	}
	mag, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("quantity: %q: %w", s, ErrParse)
	}
	rest := strings.TrimSpace(m[2])
	if rest == "" {
		return Number(mag), nil
	}
	if strings.HasPrefix(rest, "/") {
		rest = "1" + rest
	}
	u, err := parseExpr(rest)
	if err != nil {
		return Quantity{}, err
	}
	return New(mag, u), nil
}
