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
	"math"
	"strconv"
)

// maxLength is the SI length above which compaction stops at km.
const maxLength = 1e6

// Compact returns q in the unit that gives the most readable magnitude.
// The SI value is unchanged. The rules are applied in order:
//
// Bare numbers are returned unchanged.
//
// Lengths of 1000 km or more are expressed in km.
//
// Ratios move between percent, ppm and ppb: percent below 0.1 becomes
// ppm, ppm below 1 becomes ppb, ppb of 1000 or more becomes ppm and ppm
// of 1000 or more becomes percent.
//
// Otherwise units with SI prefixes take the engineering prefix
// (a power of 1000) that leaves a magnitude in [1, 1000).
// Other units are returned unchanged.
func (q Quantity) Compact() Quantity {
	switch {
	case q.u == nil:
		return q
	case math.IsNaN(q.mag) || math.IsInf(q.mag, 0) || q.mag == 0:
		return q
	case q.u.dims.Matches(lengthDims) && math.Abs(q.Value()) >= maxLength:
		return q.mustTo(Kilometer)
	case q.u == Percent || q.u == PPM || q.u == PPB:
		return q.compactRatio()
	case q.u.root != nil:
		return q.compactPrefix()
	}
	return q
}

func (q Quantity) compactRatio() Quantity {
	for {
		m := math.Abs(q.mag)
		switch {
		case q.u == Percent && m < 0.1:
			q = Quantity{mag: q.mag * 1e4, u: PPM}
		case q.u == PPM && m < 1:
			q = Quantity{mag: q.mag * 1e3, u: PPB}
		case q.u == PPB && m >= 1000:
			q = Quantity{mag: q.mag / 1e3, u: PPM}
		case q.u == PPM && m >= 1000:
			q = Quantity{mag: q.mag / 1e4, u: Percent}
		default:
			return q
		}
	}
}

func (q Quantity) compactPrefix() Quantity {
	root := q.u.root
	base := q.mag * pow10(q.u.exp)
	if q.u.exp < 0 {
		base = q.mag / pow10(-q.u.exp)
	}

	exp := 0
	for exp < 24 && math.Abs(base)/pow10(exp) >= 1000 {
		exp += 3
	}
	for exp > -24 && math.Abs(base)*pow10(-exp) < 1 {
		exp -= 3
	}
	if exp == q.u.exp {
		return q
	}
	u := root.prefixed[exp]
	if exp < 0 {
		return Quantity{mag: base * pow10(-exp), u: u}
	}
	return Quantity{mag: base / pow10(exp), u: u}
}

// String returns the compact form of q with its magnitude formatted to
// six significant figures, such as "21%", "1 ppm", "3.17 kPa" or "0.5".
func (q Quantity) String() string {
	return q.Compact().Text('g', 6)
}

// Text returns q without compaction, formatting the magnitude with
// strconv.FormatFloat using the given format and precision.
func (q Quantity) Text(format byte, prec int) string {
	return strconv.FormatFloat(q.mag, format, prec, 64) + q.suffix()
}

// Format implements fmt.Formatter. The %v and %s verbs print the
// compact form. The %e, %f and %g verbs format the magnitude in the
// unit of q, honouring the precision.
func (q Quantity) Format(fs fmt.State, c rune) {
	switch c {
	case 'e', 'E', 'f', 'F', 'g', 'G':
		p, ok := fs.Precision()
		if !ok {
			p = -1
			if c != 'g' && c != 'G' {
				p = 6
			}
		}
		if c == 'F' {
			c = 'f'
		}
		fmt.Fprint(fs, q.Text(byte(c), p))
	case 'v', 's':
		fmt.Fprint(fs, q.String())
	default:
		fmt.Fprintf(fs, "%%!%c(quantity.Quantity=%s)", c, q.String())
	}
}

func (q Quantity) suffix() string {
	switch q.u {
	case nil:
		return ""
	case Percent:
		return "%"
	}
	return " " + q.u.String()
}
