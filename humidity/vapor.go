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

// Package humidity calculates the saturation vapour pressure of water
// and converts between absolute and relative humidity.
package humidity

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/swinburne-sensing/gasify/quantity"
)

// Physical constants of water.
var (
	// CriticalPressure is the pressure at the critical point of water.
	CriticalPressure = quantity.New(22.064, quantity.Megapascal)

	// CriticalTemperature is the temperature at the critical point of
	// water.
	CriticalTemperature = quantity.New(647.096, quantity.Kelvin)

	// FreezingTemperature and BoilingTemperature are at standard
	// pressure.
	FreezingTemperature = quantity.New(0, quantity.Celsius)
	BoilingTemperature  = quantity.New(100, quantity.Celsius)
)

// ErrSupercritical is returned by methods that cannot be evaluated above
// the critical temperature of water.
var ErrSupercritical = errors.New("humidity: temperature above the critical point")

const (
	criticalKelvin = 647.096
	freezeKelvin   = 273.15
	boilKelvin     = 373.15
)

// VPFunc calculates the saturation vapour pressure of water at a
// temperature. Bare numbers are in °C. If the temperature is outside
// the range the method is valid for, the pressure is returned along with
// a *RangeWarning.
type VPFunc func(temperature interface{}) (quantity.Quantity, error)

// Method is a saturation vapour pressure calculation method. The zero
// value is WagnerPruss.
type Method int

// Calculation methods.
const (
	WagnerPruss Method = iota
	Simple
	Antoine
	Magnus
	Tetens
	Buck
)

var methodNames = []string{"Wagner-Pruss", "Simple", "Antoine", "Magnus", "Tetens", "Buck"}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// ParseMethod returns the method with the given name, ignoring case,
// spaces, hyphens and underscores.
func ParseMethod(s string) (Method, error) {
	n := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(s))
	for i, name := range methodNames {
		if n == strings.ToLower(strings.Replace(name, "-", "", -1)) {
			return Method(i), nil
		}
	}
	return 0, fmt.Errorf("humidity: unknown vapour pressure method %q", s)
}

// Func returns the calculation function of m.
func (m Method) Func() VPFunc {
	switch m {
	case Simple:
		return WaterVPSatSimple
	case Antoine:
		return WaterVPSatAntoine
	case Magnus:
		return WaterVPSatMagnus
	case Tetens:
		return WaterVPSatTetens
	case Buck:
		return WaterVPSatBuck
	}
	return WaterVPSatWagnerPruss
}

// RangeWarning is returned with a result calculated for a temperature
// outside the range of the method. The result is still usable.
type RangeWarning struct {
	Method      Method
	Temperature quantity.Quantity

	// Limit is the bound that was exceeded.
	Limit quantity.Quantity
	Above bool
}

func (w *RangeWarning) Error() string {
	dir := "below"
	if w.Above {
		dir = "above"
	}
	return fmt.Sprintf("humidity: %s method not suitable for temperatures %s %v (have %v)", w.Method, dir, w.Limit, w.Temperature)
}

// IsRangeWarning reports whether err is, or wraps, a *RangeWarning.
func IsRangeWarning(err error) bool {
	var w *RangeWarning
	return errors.As(err, &w)
}

// parseTemperature parses x as a temperature in °C if it has no unit.
func parseTemperature(x interface{}) (t quantity.Quantity, kelvin float64, err error) {
	t, err = quantity.Parse(x, nil)
	if err != nil {
		return t, 0, fmt.Errorf("humidity: temperature: %w", err)
	}
	if t.IsUnitless() {
		t = quantity.New(t.Magnitude(), quantity.Celsius)
	}
	kelvin, err = t.In(quantity.Kelvin)
	if err != nil {
		return t, 0, fmt.Errorf("humidity: temperature: %w", err)
	}
	return t, kelvin, nil
}

// checkRange returns a *RangeWarning if kelvin is outside [min, max].
func checkRange(m Method, t quantity.Quantity, kelvin float64, min, max quantity.Quantity) error {
	lo, _ := min.In(quantity.Kelvin)
	hi, _ := max.In(quantity.Kelvin)
	switch {
	case kelvin < lo:
		return &RangeWarning{Method: m, Temperature: t, Limit: min}
	case kelvin > hi:
		return &RangeWarning{Method: m, Temperature: t, Limit: max, Above: true}
	}
	return nil
}

// WaterVPSatWagnerPruss uses the Wagner and Pruss (2002) equation, which
// is valid up to the critical point. The result is in MPa. Above the
// critical point it returns ErrSupercritical.
// Reference: https://doi.org/10.1063/1.1461829
func WaterVPSatWagnerPruss(temperature interface{}) (quantity.Quantity, error) {
	t, k, err := parseTemperature(temperature)
	if err != nil {
		return quantity.Quantity{}, err
	}
	tau := 1 - k/criticalKelvin
	if tau < -1e-12 {
		return quantity.Quantity{}, fmt.Errorf("%w: have %v", ErrSupercritical, t)
	}
	if tau < 0 {
		tau = 0
	}
	ln := criticalKelvin / k * (-7.85951783*tau +
		1.84408259*math.Pow(tau, 1.5) +
		-11.78649*math.Pow(tau, 3) +
		22.6807411*math.Pow(tau, 3.5) +
		-15.9618719*math.Pow(tau, 4) +
		1.80122502*math.Pow(tau, 7.5))
	return CriticalPressure.Scale(math.Exp(ln)), nil
}

// WaterVPSatSimple uses a single exponential, valid from freezing to the
// critical point. The result is in mmHg.
// Reference: https://www.omnicalculator.com/chemistry/vapour-pressure-of-water
func WaterVPSatSimple(temperature interface{}) (quantity.Quantity, error) {
	t, k, err := parseTemperature(temperature)
	if err != nil {
		return quantity.Quantity{}, err
	}
	p := quantity.New(math.Exp(20.386-5132/k), quantity.MillimeterMercury)
	return p, checkRange(Simple, t, k, FreezingTemperature, CriticalTemperature)
}

// WaterVPSatAntoine uses the Antoine equation, with a second set of
// coefficients above boiling. It is valid from freezing to the critical
// point. The result is in mmHg.
func WaterVPSatAntoine(temperature interface{}) (quantity.Quantity, error) {
	t, k, err := parseTemperature(temperature)
	if err != nil {
		return quantity.Quantity{}, err
	}
	a, b, c := 8.07131, 1730.63, 233.426
	if k > boilKelvin {
		a, b, c = 8.14019, 1810.94, 244.485
	}
	p := quantity.New(math.Pow(10, a-b/(c+k-freezeKelvin)), quantity.MillimeterMercury)
	return p, checkRange(Antoine, t, k, FreezingTemperature, CriticalTemperature)
}

// WaterVPSatMagnus uses the August-Roche-Magnus equation, valid from 0
// to 100 °C. The result is in kPa.
func WaterVPSatMagnus(temperature interface{}) (quantity.Quantity, error) {
	t, k, err := parseTemperature(temperature)
	if err != nil {
		return quantity.Quantity{}, err
	}
	c := k - freezeKelvin
	p := quantity.New(0.61094*math.Exp(17.625*c/(c+243.04)), quantity.Kilopascal)
	return p, checkRange(Magnus, t, k, FreezingTemperature, BoilingTemperature)
}

var tetensMax = quantity.New(75, quantity.Celsius)

// WaterVPSatTetens uses the Tetens equation, valid from 0 to 75 °C. The
// result is in kPa.
func WaterVPSatTetens(temperature interface{}) (quantity.Quantity, error) {
	t, k, err := parseTemperature(temperature)
	if err != nil {
		return quantity.Quantity{}, err
	}
	c := k - freezeKelvin
	p := quantity.New(0.61078*math.Exp(17.27*c/(c+237.3)), quantity.Kilopascal)
	return p, checkRange(Tetens, t, k, FreezingTemperature, tetensMax)
}

// WaterVPSatBuck uses the Buck equation, valid from 0 to 75 °C. The
// result is in kPa.
func WaterVPSatBuck(temperature interface{}) (quantity.Quantity, error) {
	t, k, err := parseTemperature(temperature)
	if err != nil {
		return quantity.Quantity{}, err
	}
	c := k - freezeKelvin
	p := quantity.New(0.61121*math.Exp((18.678-c/234.5)*(c/(257.14+c))), quantity.Kilopascal)
	return p, checkRange(Buck, t, k, FreezingTemperature, tetensMax)
}
