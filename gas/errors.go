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

import "errors"

var (
	// ErrType is returned when an operation is given an operand of an
	// unsupported type.
	ErrType = errors.New("gas: unsupported operand type")

	// ErrNotDimensionless is returned when a concentration has physical
	// dimensions.
	ErrNotDimensionless = errors.New("gas: concentration must be dimensionless")

	// ErrNegative is returned for concentrations below zero.
	ErrNegative = errors.New("gas: concentration cannot be below zero")

	// ErrOverSpecified is returned when the components of a mixture
	// already sum to more than 100% before a balance is added.
	ErrOverSpecified = errors.New("gas: mixture components exceed 100%")

	// ErrMultipleBalance is returned when more than one balance
	// compound is given for a mixture.
	ErrMultipleBalance = errors.New("gas: more than one balance compound")

	// ErrMissingProperties is returned when a gas correction factor
	// cannot be calculated because a compound lacks physical properties.
	ErrMissingProperties = errors.New("gas: missing compound properties")

	// ErrEmpty is returned for operations that need a non-zero total.
	ErrEmpty = errors.New("gas: mixture total is zero")

	// ErrNotFound is returned for registry keys that do not exist.
	ErrNotFound = errors.New("gas: not found in registry")

	// ErrDuplicateKey is returned when two registry entries share a key.
	ErrDuplicateKey = errors.New("gas: duplicate registry key")
)
