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

// CorrectFlow converts a flow indicated by a thermal mass flow controller
// calibrated for one gas into the actual flow of another:
//
//	actual = indicated * GCF(target) / GCF(calibration)
//
// indicated must be a volumetric flow such as "100 sccm".
func CorrectFlow(indicated interface{}, target, calibration Entry) (quantity.Quantity, error) {
	q, err := quantity.Parse(indicated, nil)
	if err != nil {
		return quantity.Quantity{}, fmt.Errorf("gas: indicated flow: %w", err)
	}
	if !q.CompatibleWith(quantity.SCCM) {
		return quantity.Quantity{}, fmt.Errorf("gas: indicated flow %v: %w", q, quantity.ErrIncompatibleUnits)
	}
	ratio, err := FlowRatio(target, calibration)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return q.Scale(ratio), nil
}

// FlowRatio returns GCF(target) / GCF(calibration), the factor by which
// the reading of a flow controller calibrated for calibration must be
// multiplied to give the flow of target.
func FlowRatio(target, calibration Entry) (float64, error) {
	t, err := target.Mixture().GCF()
	if err != nil {
		return 0, fmt.Errorf("gas: flow of %s: %w", target, err)
	}
	c, err := calibration.Mixture().GCF()
	if err != nil {
		return 0, fmt.Errorf("gas: flow calibrated for %s: %w", calibration, err)
	}
	return t / c, nil
}
