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

package humidity

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/swinburne-sensing/gasify/quantity"
)

// WaterGasConstant is the specific gas constant of water vapour, in
// J/(g K).
const WaterGasConstant = 0.4615

// Units of absolute and relative humidity.
var (
	AbsoluteUnit = quantity.Gram.Div(quantity.Meter.Pow(3))
	RelativeUnit = quantity.Percent
)

// Calculator converts between absolute and relative humidity.
type Calculator struct {
	// Method selects the saturation vapour pressure calculation. It is
	// ignored if Func is set.
	Method Method

	// Func, if set, calculates the saturation vapour pressure.
	Func VPFunc

	// Log receives a warning for each calculation outside the valid
	// temperature range of the method. It defaults to the standard
	// logger.
	Log logrus.FieldLogger
}

// DefaultCalculator uses the Wagner-Pruss method.
var DefaultCalculator = &Calculator{}

func (c *Calculator) log() logrus.FieldLogger {
	if c.Log == nil {
		return logrus.StandardLogger()
	}
	return c.Log
}

// WaterVPSat returns the saturation vapour pressure of water at the
// given temperature. Range warnings are logged, not returned.
func (c *Calculator) WaterVPSat(temperature interface{}) (quantity.Quantity, error) {
	f := c.Func
	if f == nil {
		f = c.Method.Func()
	}
	p, err := f(temperature)
	var w *RangeWarning
	if errors.As(err, &w) {
		c.log().WithFields(logrus.Fields{
			"method":      w.Method.String(),
			"temperature": w.Temperature.String(),
		}).Warn(w.Error())
		return p, nil
	}
	return p, err
}

func (c *Calculator) saturation(temperature interface{}) (pascal, kelvin float64, err error) {
	_, kelvin, err = parseTemperature(temperature)
	if err != nil {
		return 0, 0, err
	}
	p, err := c.WaterVPSat(temperature)
	if err != nil {
		return 0, 0, err
	}
	if pascal, err = p.In(quantity.Pascal); err != nil {
		return 0, 0, fmt.Errorf("humidity: saturation pressure %v: %w", p, err)
	}
	return pascal, kelvin, nil
}

// AbsoluteToRelative converts an absolute humidity to a relative
// humidity in percent at the given temperature. Bare numbers are g/m³
// and °C respectively.
func (c *Calculator) AbsoluteToRelative(absolute, temperature interface{}) (quantity.Quantity, error) {
	a, err := quantity.ParseMagnitude(absolute, AbsoluteUnit, AbsoluteUnit)
	if err != nil {
		return quantity.Quantity{}, fmt.Errorf("humidity: absolute humidity: %w", err)
	}
	p, k, err := c.saturation(temperature)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return quantity.Number(WaterGasConstant * k * a / p).To(RelativeUnit)
}

// RelativeToAbsolute converts a relative humidity to an absolute
// humidity in g/m³ at the given temperature. Bare numbers are fractions
// and °C respectively, so 0.5 is 50%.
func (c *Calculator) RelativeToAbsolute(relative, temperature interface{}) (quantity.Quantity, error) {
	r, err := quantity.ParseMagnitude(relative, quantity.Dimensionless, quantity.Dimensionless)
	if err != nil {
		return quantity.Quantity{}, fmt.Errorf("humidity: relative humidity: %w", err)
	}
	p, k, err := c.saturation(temperature)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return quantity.New(r*p/(WaterGasConstant*k), AbsoluteUnit), nil
}

// AbsoluteToRelative converts using the Wagner-Pruss method.
func AbsoluteToRelative(absolute, temperature interface{}) (quantity.Quantity, error) {
	return DefaultCalculator.AbsoluteToRelative(absolute, temperature)
}

// RelativeToAbsolute converts using the Wagner-Pruss method.
func RelativeToAbsolute(relative, temperature interface{}) (quantity.Quantity, error) {
	return DefaultCalculator.RelativeToAbsolute(relative, temperature)
}
