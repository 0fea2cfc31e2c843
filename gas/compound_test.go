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
	"errors"
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/swinburne-sensing/gasify/quantity"
)

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

func mustGet(t *testing.T, key string) *Compound {
	c, err := Builtin().Compound(key)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func mustScale(t *testing.T, c *Compound, x interface{}) Concentration {
	cc, err := c.Scale(x)
	if err != nil {
		t.Fatal(err)
	}
	return cc
}

func TestCompoundEqual(t *testing.T) {
	if !Oxygen.Equal(mustGet(t, "oxygen")) {
		t.Error("oxygen should equal itself")
	}
	if !Oxygen.Equal(MustCompound("Oxygen")) {
		t.Error("compounds with the same name should be equal")
	}
	if Oxygen.Equal(Nitrogen) {
		t.Error("oxygen should not equal nitrogen")
	}
	if Oxygen.Equal(MustCompound("Nitrogen")) {
		t.Error("oxygen should not equal a compound named nitrogen")
	}
}

func TestCompoundSort(t *testing.T) {
	hydrogen := mustGet(t, "hydrogen")
	have := []*Compound{Oxygen, hydrogen, Nitrogen}
	sort.Slice(have, func(i, j int) bool { return have[i].Less(have[j]) })
	want := []*Compound{hydrogen, Oxygen, Nitrogen}
	for i := range want {
		if have[i] != want[i] {
			t.Errorf("%d: have %s, want %s", i, have[i], want[i])
		}
	}

	c, err := Compare(hydrogen, Oxygen)
	if err != nil {
		t.Fatal(err)
	}
	if c != -1 {
		t.Errorf("hydrogen vs oxygen: have %d, want -1", c)
	}
}

func TestNewCompound(t *testing.T) {
	c, err := NewCompound("Hydrogen-sulfide",
		WithSymbol("H_2S"),
		WithStructure(Triatomic),
		WithSpecificHeat("0.2397 cal/(g K)"),
		WithDensity(1.52),
		WithOrder(3),
	)
	if err != nil {
		t.Fatal(err)
	}
	if c.String() != "H_2S" {
		t.Errorf("have %s, want H_2S", c)
	}
	if !c.Analyte() {
		t.Error("compounds should be analytes by default")
	}
	d, ok := c.Density()
	if !ok || d.Unit().String() != "g/L" || d.Magnitude() != 1.52 {
		t.Errorf("density: have %v", d)
	}

	if _, err := NewCompound(" "); err == nil {
		t.Error("empty name should be an error")
	}
	if _, err := NewCompound("Bad", WithDensity("3 m")); !errors.Is(err, quantity.ErrIncompatibleUnits) {
		t.Errorf("have %v, want ErrIncompatibleUnits", err)
	}
	if _, err := NewCompound("Bad", WithStructure(Diatomic), WithSpecificHeat("2 kg")); !errors.Is(err, quantity.ErrUnit) {
		t.Errorf("have %v, want a unit error", err)
	}
}

func TestCompoundGCF(t *testing.T) {
	var tests = []struct {
		name string
		want float64
	}{
		{name: "nitrogen", want: 1},
		{name: "oxygen", want: 0.993},
		{name: "chlorine", want: 0.86},
		{name: "fluorine", want: 0.98},
		{name: "nitric oxide", want: 0.99},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			gcf, ok := mustGet(t, test.name).GCF()
			if !ok {
				t.Fatal("missing properties")
			}
			if math.Abs(gcf-test.want) > 0.01 {
				t.Errorf("have %g, want %g", gcf, test.want)
			}
		})
	}

	if _, ok := mustGet(t, "NO_x").GCF(); ok {
		t.Error("NO_x has no properties")
	}

	want, _ := Oxygen.GCF()
	for _, x := range []interface{}{0.01, "21%", "400 ppm"} {
		cc, err := Oxygen.Scale(x)
		if err != nil {
			t.Fatal(err)
		}
		if gcf, ok := cc.GCF(); !ok || gcf != want {
			t.Errorf("%v: have %g, %v; want %g", x, gcf, ok, want)
		}
	}
}

func TestMolecularStructure(t *testing.T) {
	for _, s := range []MolecularStructure{UnknownStructure, Monatomic, Diatomic, Triatomic, Polyatomic} {
		have, err := ParseMolecularStructure(s.String())
		if s == UnknownStructure {
			if err == nil {
				t.Error("unknown should not parse")
			}
			continue
		}
		if err != nil {
			t.Fatal(err)
		}
		if have != s {
			t.Errorf("have %v, want %v", have, s)
		}
	}
	if s, err := ParseMolecularStructure(""); err != nil || s != UnknownStructure {
		t.Errorf("have %v, %v", s, err)
	}
}

func TestConcentration(t *testing.T) {
	var tests = []struct {
		in   interface{}
		want float64
		str  string
	}{
		{in: 0.1, want: 0.1, str: "10% O_2"},
		{in: 1, want: 1, str: "100% O_2"},
		{in: "21%", want: 0.21, str: "21% O_2"},
		{in: "500 ppm", want: 500e-6, str: "500 ppm O_2"},
		{in: 0.0005, want: 500e-6, str: "500 ppm O_2"},
		{in: "20 ppb", want: 20e-9, str: "20 ppb O_2"},
		{in: quantity.Number(0.1), want: 0.1, str: "10% O_2"},
		{in: quantity.New(2500, quantity.PPM), want: 0.0025, str: "0.25% O_2"},
	}
	for _, test := range tests {
		t.Run(fmt.Sprint(test.in), func(t *testing.T) {
			cc := mustScale(t, Oxygen, test.in)
			if cc.Compound() != Oxygen {
				t.Errorf("compound: have %s", cc.Compound())
			}
			if different(cc.Fraction(), test.want, 1e-9) {
				t.Errorf("fraction: have %g, want %g", cc.Fraction(), test.want)
			}
			if cc.String() != test.str {
				t.Errorf("string: have %q, want %q", cc.String(), test.str)
			}
		})
	}
}

func TestConcentrationErrors(t *testing.T) {
	if _, err := Oxygen.Scale(struct{}{}); !errors.Is(err, ErrType) {
		t.Errorf("have %v, want ErrType", err)
	}
	if _, err := Oxygen.Scale("3 m"); !errors.Is(err, ErrNotDimensionless) {
		t.Errorf("have %v, want ErrNotDimensionless", err)
	}
	if _, err := Oxygen.Scale(-0.1); !errors.Is(err, ErrNegative) {
		t.Errorf("have %v, want ErrNegative", err)
	}
	if _, err := NewConcentration(0.1, nil); !errors.Is(err, ErrType) {
		t.Errorf("have %v, want ErrType", err)
	}
	cc := mustScale(t, Oxygen, 0.1)
	if _, err := cc.Scale(new(int)); !errors.Is(err, ErrType) {
		t.Errorf("have %v, want ErrType", err)
	}
	if _, err := cc.Divide(0); err == nil {
		t.Error("division by zero should fail")
	}
}

func TestConcentrationArithmetic(t *testing.T) {
	half := mustScale(t, Oxygen, 0.5)
	whole := mustScale(t, Oxygen, 1.0)
	for _, x := range []interface{}{2, 2.0, quantity.Number(2), "2", "200%"} {
		t.Run(fmt.Sprint(x), func(t *testing.T) {
			m, err := half.Scale(x)
			if err != nil {
				t.Fatal(err)
			}
			if different(m.Fraction(), 1, 1e-9) || m.Compound() != Oxygen {
				t.Errorf("scale: have %s", m)
			}
			d, err := whole.Divide(x)
			if err != nil {
				t.Fatal(err)
			}
			if different(d.Fraction(), 0.5, 1e-9) || d.Compound() != Oxygen {
				t.Errorf("divide: have %s", d)
			}
		})
	}
}

func TestConcentrationCompare(t *testing.T) {
	a := mustScale(t, Oxygen, 1.0)
	b := mustScale(t, Oxygen, 0.5)
	h := mustScale(t, mustGet(t, "hydrogen"), 0.5)

	var tests = []struct {
		name string
		a, b interface{}
		want int
	}{
		{name: "same compound", a: a, b: b, want: 1},
		{name: "same compound reversed", a: b, b: a, want: -1},
		{name: "equal", a: a, b: mustScale(t, Oxygen, "100%"), want: 0},
		{name: "different compound", a: a, b: h, want: 1},
		{name: "different compound reversed", a: h, b: a, want: -1},
		{name: "number above", a: a, b: 2.0, want: -1},
		{name: "number equal", a: a, b: 1.0, want: 0},
		{name: "number below", a: a, b: 0.5, want: 1},
		{name: "string", a: a, b: "50%", want: 1},
		{name: "number first", a: 0.5, b: a, want: -1},
		{name: "quantity", a: b, b: quantity.New(500000, quantity.PPM), want: 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, err := Compare(test.a, test.b)
			if err != nil {
				t.Fatal(err)
			}
			if c != test.want {
				t.Errorf("have %d, want %d", c, test.want)
			}
		})
	}

	for _, x := range []interface{}{struct{}{}, nil, true, Air} {
		if _, err := Compare(a, x); !errors.Is(err, ErrType) {
			t.Errorf("%v: have %v, want ErrType", x, err)
		}
	}
	if _, err := Compare(a, "3 m"); !errors.Is(err, ErrNotDimensionless) {
		t.Errorf("have %v, want ErrNotDimensionless", err)
	}
}

func TestConcentrationEqual(t *testing.T) {
	a := mustScale(t, Oxygen, 1.0)
	b := mustScale(t, Oxygen, 1.0)
	c := mustScale(t, Nitrogen, 1.0)

	if Equal(a, struct{}{}) {
		t.Error("a concentration should not equal an unrelated value")
	}
	if !Equal(a, b) {
		t.Error("a should equal b")
	}
	if Equal(a, c) {
		t.Error("oxygen should not equal nitrogen")
	}
	if !Equal(a, Oxygen) || !Equal(Oxygen, a) {
		t.Error("a concentration should equal its compound")
	}
	if Equal(a, Nitrogen) {
		t.Error("a concentration should not equal another compound")
	}
	if !Equal(a, 1.0) {
		t.Error("a should equal 1")
	}
	if !Equal(a, mustScale(t, Oxygen, 1+EqualTolerance/2)) {
		t.Error("concentrations within tolerance should be equal")
	}
	if Equal(a, mustScale(t, Oxygen, 1+1e-9)) {
		t.Error("concentrations outside tolerance should differ")
	}
}
