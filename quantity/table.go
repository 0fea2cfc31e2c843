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
	"sort"
	"strings"

	"github.com/ctessum/unit"
)

// Named units. They are populated when the package is initialized.
var (
	Dimensionless, Percent, PPM, PPB *Unit

	Meter, Kilometer, Centimeter *Unit
	Gram, Kilogram               *Unit
	Second, Minute, Hour, Day    *Unit

	Kelvin, Celsius, Fahrenheit *Unit

	Pascal, Kilopascal, Megapascal *Unit
	Bar, Millibar, Atmosphere      *Unit
	PSI, MillimeterMercury, Torr   *Unit

	Joule, Calorie, Watt *Unit
	Liter, Milliliter    *Unit

	Volt, Ampere, Ohm, Hertz *Unit

	CCM, SCCM, LPM, SLPM *Unit
)

var units = make(map[string]*Unit)

type prefix struct {
	symbol, name string
	exp          int
}

var prefixes = []prefix{
	{"Y", "yotta", 24}, {"Z", "zetta", 21}, {"E", "exa", 18}, {"P", "peta", 15},
	{"T", "tera", 12}, {"G", "giga", 9}, {"M", "mega", 6}, {"k", "kilo", 3},
	{"h", "hecto", 2}, {"da", "deca", 1}, {"d", "deci", -1}, {"c", "centi", -2},
	{"m", "milli", -3}, {"u", "micro", -6}, {"n", "nano", -9}, {"p", "pico", -12},
	{"f", "femto", -15}, {"a", "atto", -18}, {"z", "zepto", -21}, {"y", "yocto", -24},
}

var (
	lengthDims      = unit.Meter
	massDims        = unit.Kilogram
	timeDims        = unit.Second
	temperatureDims = unit.Kelvin
	currentDims     = unit.Dimensions{unit.CurrentDim: 1}
	voltageDims     = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 2, unit.TimeDim: -3, unit.CurrentDim: -1}
	resistanceDims  = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 2, unit.TimeDim: -3, unit.CurrentDim: -2}
)

// define adds a named unit and its aliases to the table. When
// prefixable is true the SI-prefixed forms are added as well.
func define(symbol, name string, scale, offset float64, dims unit.Dimensions, prefixable bool, aliases ...string) *Unit {
	u := &Unit{symbol: symbol, name: name, scale: scale, offset: offset, dims: copyDims(dims)}
	register(u, append([]string{symbol, name}, aliases...)...)
	if !prefixable {
		return u
	}
	u.root = u
	u.prefixed = map[int]*Unit{0: u}
	for _, p := range prefixes {
		pu := &Unit{
			symbol: p.symbol + symbol,
			name:   p.name + name,
			scale:  scale * pow10(p.exp),
			dims:   u.dims,
			root:   u,
			exp:    p.exp,
		}
		u.prefixed[p.exp] = pu
		keys := []string{pu.symbol, pu.name}
		for _, a := range aliases {
			keys = append(keys, p.symbol+a, p.name+a)
		}
		register(pu, keys...)
	}
	return u
}

func register(u *Unit, keys ...string) {
	for _, k := range keys {
		if k == "" {
			continue
		}
		k = normalizeUnitName(k)
		if old, ok := units[k]; ok && old != u {
			panic(fmt.Errorf("quantity: duplicate unit name %q", k))
		}
		units[k] = u
	}
}

// pow10 avoids the rounding of math.Pow10 for negative exponents,
// so that 1e-3 is exactly the literal 0.001.
func pow10(exp int) float64 {
	if exp < 0 {
		v := 1.0
		for i := 0; i < -exp; i++ {
			v /= 10
		}
		return v
	}
	v := 1.0
	for i := 0; i < exp; i++ {
		v *= 10
	}
	return v
}

var unitNameReplacer = strings.NewReplacer("μ", "u", "µ", "u", "\u2126", "Ω")

func normalizeUnitName(s string) string {
	return unitNameReplacer.Replace(s)
}

// Lookup returns the named unit with the given symbol, long name or
// alias. The micro sign may be written as μ, µ or u.
func Lookup(name string) (*Unit, error) {
	if u, ok := units[normalizeUnitName(name)]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("quantity: %q: %w", name, ErrUnknownUnit)
}

func mustLookup(name string) *Unit {
	u, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return u
}

// Names returns the sorted list of all unit names known to the table.
func Names() []string {
	o := make([]string, 0, len(units))
	for k := range units {
		o = append(o, k)
	}
	sort.Strings(o)
	return o
}

func init() {
	Dimensionless = define("dimensionless", "", 1, 0, unit.Dimless, false)
	Percent = define("%", "percent", 0.01, 0, unit.Dimless, false)
	PPM = define("ppm", "parts_per_million", 1e-6, 0, unit.Dimless, false)
	PPB = define("ppb", "parts_per_billion", 1e-9, 0, unit.Dimless, false)

	Meter = define("m", "meter", 1, 0, lengthDims, true, "metre")
	Gram = define("g", "gram", 1e-3, 0, massDims, true)
	Second = define("s", "second", 1, 0, timeDims, true, "sec")
	Minute = define("min", "minute", 60, 0, timeDims, false)
	Hour = define("h", "hour", 3600, 0, timeDims, false, "hr")
	Day = define("day", "day", 86400, 0, timeDims, false)

	Kelvin = define("K", "kelvin", 1, 0, temperatureDims, false, "degK")
	Celsius = define("°C", "degree_Celsius", 1, 273.15, temperatureDims, false, "degC", "celsius")
	Fahrenheit = define("°F", "degree_Fahrenheit", 5.0/9.0, 273.15-32*5.0/9.0, temperatureDims, false, "degF", "fahrenheit")
	Celsius.abs = Kelvin
	Fahrenheit.abs = Kelvin

	Pascal = define("Pa", "pascal", 1, 0, unit.Pascal, true)
	Bar = define("bar", "bar", 1e5, 0, unit.Pascal, true)
	Atmosphere = define("atm", "atmosphere", 101325, 0, unit.Pascal, false)
	PSI = define("psi", "pound_force_per_square_inch", 6894.757293168361, 0, unit.Pascal, false, "PSI")
	MillimeterMercury = define("mmHg", "millimeter_Hg", 133.322387415, 0, unit.Pascal, false)
	Torr = define("Torr", "torr", 101325.0/760, 0, unit.Pascal, false)

	Joule = define("J", "joule", 1, 0, unit.Joule, true)
	Calorie = define("cal", "calorie", 4.184, 0, unit.Joule, true)
	Watt = define("W", "watt", 1, 0, unit.Watt, true)
	Liter = define("L", "liter", 1e-3, 0, unit.Meter3, true, "l", "litre")

	Volt = define("V", "volt", 1, 0, voltageDims, true)
	Ampere = define("A", "ampere", 1, 0, currentDims, true, "amp")
	Ohm = define("Ω", "ohm", 1, 0, resistanceDims, true, "ohm")
	Hertz = define("Hz", "hertz", 1, 0, unit.Herz, true)

	CCM = define("ccm", "cubic_centimeter_per_minute", 1e-6/60, 0, unit.Meter3PerSecond, false, "CCM")
	SCCM = define("sccm", "standard_cubic_centimeter_per_minute", 1e-6/60, 0, unit.Meter3PerSecond, false, "SCCM")
	LPM = define("lpm", "liter_per_minute", 1e-3/60, 0, unit.Meter3PerSecond, false, "LPM")
	SLPM = define("slpm", "standard_liter_per_minute", 1e-3/60, 0, unit.Meter3PerSecond, false, "SLPM")

	Kilometer = mustLookup("km")
	Centimeter = mustLookup("cm")
	Kilogram = mustLookup("kg")
	Kilopascal = mustLookup("kPa")
	Megapascal = mustLookup("MPa")
	Millibar = mustLookup("mbar")
	Milliliter = mustLookup("mL")
}
