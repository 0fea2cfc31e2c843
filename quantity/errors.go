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

import "errors"

// ErrUnit is the root of all errors returned by this package.
// Use errors.Is to test for it.
var ErrUnit = errors.New("unit error")

var (
	// ErrParse is returned for missing, malformed or unsupported input.
	ErrParse error = &kindError{"cannot parse quantity"}

	// ErrUnknownUnit is returned when a unit name is not in the unit table.
	ErrUnknownUnit error = &kindError{"unknown unit"}

	// ErrIncompatibleUnits is returned when two quantities or units
	// have different physical dimensions.
	ErrIncompatibleUnits error = &kindError{"incompatible units"}

	// ErrOffsetUnit is returned for additive arithmetic on offset
	// temperature units such as degrees Celsius.
	ErrOffsetUnit error = &kindError{"ambiguous operation on offset unit"}
)

type kindError struct{ msg string }

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return ErrUnit }
