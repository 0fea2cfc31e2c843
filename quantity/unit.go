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
	"strings"

	"github.com/ctessum/unit"
)

// Unit is a named unit of measure, such as kPa or ppm, or a product of
// named units raised to integer powers, such as g/m^3.
// A value expressed in a unit is converted to SI as
// value*Scale + Offset. Units are immutable and are compared by
// identity, so every named unit exists exactly once.
type Unit struct {
	symbol string
	name   string
	scale  float64
	offset float64
	dims   unit.Dimensions

	// root is the unprefixed unit of an SI-prefix family, exp
	// the decimal exponent of the prefix. prefixed is only set on roots.
	root     *Unit
	exp      int
	prefixed map[int]*Unit

	// abs is the absolute unit that replaces an offset unit
	// inside a product.
	abs *Unit

	terms []term
}

type term struct {
	u   *Unit
	pow int
}

// Symbol returns the short symbol used when formatting u.
func (u *Unit) Symbol() string { return u.String() }

// Name returns the long name of u. Composite units have no long name
// and return their symbol.
func (u *Unit) Name() string {
	if u == nil {
		return "dimensionless"
	}
	if u.name == "" {
		return u.String()
	}
	return u.name
}

// Scale returns the factor that converts a value in u to SI.
func (u *Unit) Scale() float64 {
	if u == nil {
		return 1
	}
	return u.scale
}

// Offset returns the SI offset of u. It is only non-zero for
// temperature scales with a shifted zero point.
func (u *Unit) Offset() float64 {
	if u == nil {
		return 0
	}
	return u.offset
}

// Dimensions returns a copy of the SI dimensions of u.
func (u *Unit) Dimensions() unit.Dimensions {
	if u == nil {
		return unit.Dimensions{}
	}
	return copyDims(u.dims)
}

// IsDimensionless reports whether u has no physical dimensions.
func (u *Unit) IsDimensionless() bool {
	return u == nil || len(u.dims) == 0
}

// IsComposite reports whether u is a product of other units.
func (u *Unit) IsComposite() bool {
	return u != nil && u.terms != nil
}

// CompatibleWith reports whether values in u can be converted to o.
func (u *Unit) CompatibleWith(o *Unit) bool {
	return u.Dimensions().Matches(o.Dimensions())
}

func (u *Unit) String() string {
	if u == nil {
		return "dimensionless"
	}
	if u.terms == nil {
		return u.symbol
	}
	var num, den []string
	for _, t := range u.terms {
		p := t.pow
		list := &num
		if p < 0 {
			p = -p
			list = &den
		}
		s := t.u.symbol
		if p != 1 {
			s = fmt.Sprintf("%s^%d", s, p)
		}
		*list = append(*list, s)
	}
	if len(num) == 0 {
		num = []string{"1"}
	}
	if len(den) == 0 {
		return strings.Join(num, " ")
	}
	return strings.Join(num, " ") + "/" + strings.Join(den, "/")
}

func (u *Unit) expand() []term {
	if u == nil {
		return nil
	}
	if u.terms != nil {
		return u.terms
	}
	return []term{{u: u, pow: 1}}
}

// Mul returns the product of u and o. A nil unit is treated as a
// bare number.
func (u *Unit) Mul(o *Unit) *Unit {
	return compose(append(append([]term{}, u.expand()...), o.expand()...))
}

// Div returns u divided by o.
func (u *Unit) Div(o *Unit) *Unit {
	return u.Mul(o.Pow(-1))
}

// Pow returns u raised to the integer power n.
func (u *Unit) Pow(n int) *Unit {
	ts := u.expand()
	out := make([]term, len(ts))
	for i, t := range ts {
		out[i] = term{u: t.u, pow: t.pow * n}
	}
	return compose(out)
}

// compose merges the terms of a unit product. A single term with power
// one collapses to the named unit and an empty product collapses to nil.
func compose(ts []term) *Unit {
	if len(ts) == 1 && ts[0].pow == 1 {
		return ts[0].u
	}
	var merged []term
	for _, t := range ts {
		u := t.u
		if u.abs != nil {
			u = u.abs
		}
		found := false
		for i := range merged {
			if merged[i].u == u {
				merged[i].pow += t.pow
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, term{u: u, pow: t.pow})
		}
	}
	var out []term
	for _, t := range merged {
		if t.pow != 0 {
			out = append(out, t)
		}
	}
	switch {
	case len(out) == 0:
		return nil
	case len(out) == 1 && out[0].pow == 1:
		return out[0].u
	}
	c := &Unit{scale: 1, dims: unit.Dimensions{}, terms: out}
	for _, t := range out {
		c.scale *= math.Pow(t.u.scale, float64(t.pow))
		for d, p := range t.u.dims {
			c.dims[d] += p * t.pow
			if c.dims[d] == 0 {
				delete(c.dims, d)
			}
		}
	}
	return c
}

func copyDims(d unit.Dimensions) unit.Dimensions {
	o := make(unit.Dimensions, len(d))
	for k, v := range d {
		if v != 0 {
			o[k] = v
		}
	}
	return o
}
