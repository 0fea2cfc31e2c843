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
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in       interface{}
		to       interface{}
		wantMag  float64
		wantUnit *Unit
	}{
		{in: "1.0 degC", wantMag: 1, wantUnit: Celsius},
		{in: "25 °C", wantMag: 25, wantUnit: Celsius},
		{in: "5%", wantMag: 5, wantUnit: Percent},
		{in: "5 %", wantMag: 5, wantUnit: Percent},
		{in: "12 ppm", wantMag: 12, wantUnit: PPM},
		{in: "1.5e3 Pa", wantMag: 1500, wantUnit: Pascal},
		{in: "3 kPa", to: "Pa", wantMag: 3000, wantUnit: Pascal},
		{in: "100 μg", wantMag: 100, wantUnit: mustLookup("ug")},
		{in: "100 µg", wantMag: 100, wantUnit: mustLookup("ug")},
		{in: "2 kohm", wantMag: 2, wantUnit: mustLookup("kΩ")},
		{in: "10 SCCM", wantMag: 10, wantUnit: SCCM},
		{in: "14.7 PSI", wantMag: 14.7, wantUnit: PSI},
		{in: "kPa", wantMag: 1, wantUnit: Kilopascal},
		{in: 3, wantMag: 3, wantUnit: Dimensionless},
		{in: int64(3), to: Percent, wantMag: 3, wantUnit: Percent},
		{in: float32(0.5), to: "ppm", wantMag: 0.5, wantUnit: PPM},
		{in: "0.21", to: Percent, wantMag: 0.21, wantUnit: Percent},
		{in: New(21, Percent), to: Dimensionless, wantMag: 0.21, wantUnit: Dimensionless},
		{in: 90 * time.Second, to: Minute, wantMag: 1.5, wantUnit: Minute},
		{in: "25 degC", to: "K", wantMag: 298.15, wantUnit: Kelvin},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%v", test.in), func(t *testing.T) {
			q, err := Parse(test.in, test.to)
			if err != nil {
				t.Fatal(err)
			}
			if q.Unit() != test.wantUnit {
				t.Errorf("unit: have %s, want %s", q.Unit(), test.wantUnit)
			}
			if different(q.Magnitude(), test.wantMag, 1e-12) {
				t.Errorf("magnitude: have %g, want %g", q.Magnitude(), test.wantMag)
			}
		})
	}
}

func TestParseComposite(t *testing.T) {
	for _, s := range []string{"30.359 g/m^3", "30.359 g/m**3", "30.359 g / m ^ 3", "30.359 g m^-3", "30.359 g/(m m m)"} {
		t.Run(s, func(t *testing.T) {
			q, err := Parse(s, nil)
			if err != nil {
				t.Fatal(err)
			}
			if have := q.Unit().String(); have != "g/m^3" {
				t.Errorf("unit: have %q, want g/m^3", have)
			}
			if different(q.Value(), 30.359e-3, 1e-12) {
				t.Errorf("value: have %g", q.Value())
			}
		})
	}

	q, err := Parse("0.2193 cal/(g K)", nil)
	if err != nil {
		t.Fatal(err)
	}
	if have := q.Unit().String(); have != "cal/g/K" {
		t.Errorf("unit: have %q, want cal/g/K", have)
	}
	if _, err := Parse("5 2/s", nil); !errors.Is(err, ErrParse) {
		t.Errorf("have %v, want ErrParse", err)
	}
	q, err = Parse("5 /s", nil)
	if err != nil {
		t.Fatal(err)
	}
	if have := q.Unit().String(); have != "1/s" {
		t.Errorf("unit: have %q, want 1/s", have)
	}
}

func TestParseSuperscript(t *testing.T) {
	tests := []struct {
		in, to string
		want   float64
	}{
		{in: "30.359 g/m³", to: "g/m^3", want: 30.359},
		{in: "2 m²", to: "cm^2", want: 20000},
		{in: "5 m s⁻¹", to: "m/s", want: 5},
	}
	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			have, err := ParseMagnitude(test.in, test.to, nil)
			if err != nil {
				t.Fatal(err)
			}
			if different(have, test.want, 1e-12) {
				t.Errorf("have %g, want %g", have, test.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		to   interface{}
		want error
	}{
		{name: "nil", in: nil, want: ErrParse},
		{name: "nil pointer", in: (*Quantity)(nil), want: ErrParse},
		{name: "bool", in: true, want: ErrParse},
		{name: "slice", in: []int{1}, want: ErrParse},
		{name: "empty", in: "  ", want: ErrParse},
		{name: "unknown", in: "3 potato", want: ErrUnknownUnit},
		{name: "bad char", in: "3 m$", want: ErrParse},
		{name: "incompatible", in: "3 m", to: "s", want: ErrIncompatibleUnits},
		{name: "bad target", in: "3 m", to: 6, want: ErrParse},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(test.in, test.to)
			if !errors.Is(err, test.want) {
				t.Errorf("have %v, want %v", err, test.want)
			}
			if !errors.Is(err, ErrUnit) {
				t.Errorf("%v should be a unit error", err)
			}
		})
	}
}

func TestParseRounded(t *testing.T) {
	tests := []struct {
		in     interface{}
		places int
		want   float64
	}{
		{in: 0.5001, places: 0, want: 1},
		{in: 0.0005001, places: 3, want: 0.001},
		{in: 1.4999, places: 1, want: 1.5},
	}
	for _, test := range tests {
		t.Run(fmt.Sprint(test.in), func(t *testing.T) {
			q, err := ParseRounded(test.in, nil, test.places)
			if err != nil {
				t.Fatal(err)
			}
			if q.Magnitude() != test.want {
				t.Errorf("have %g, want %g", q.Magnitude(), test.want)
			}
		})
	}

	t.Run("after conversion", func(t *testing.T) {
		q, err := ParseRounded("1234 m", "km", 1)
		if err != nil {
			t.Fatal(err)
		}
		if q.Magnitude() != 1.2 || q.Unit() != Kilometer {
			t.Errorf("have %v, want 1.2 km", q)
		}
	})
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in   interface{}
		want *Unit
	}{
		{in: "K", want: Kelvin},
		{in: "kelvin", want: Kelvin},
		{in: "degK", want: Kelvin},
		{in: "°C", want: Celsius},
		{in: "degC", want: Celsius},
		{in: "%", want: Percent},
		{in: "percent", want: Percent},
		{in: "", want: Dimensionless},
		{in: Percent, want: Percent},
		{in: New(3, Volt), want: Volt},
		{in: "mV", want: mustLookup("millivolt")},
		{in: "Ω", want: Ohm},
		{in: "\u2126", want: Ohm},
	}
	for _, test := range tests {
		t.Run(fmt.Sprint(test.in), func(t *testing.T) {
			u, err := ParseUnit(test.in)
			if err != nil {
				t.Fatal(err)
			}
			if u != test.want {
				t.Errorf("have %s, want %s", u, test.want)
			}
		})
	}

	if _, err := ParseUnit("potato"); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("have %v, want ErrUnknownUnit", err)
	}
	if _, err := ParseUnit(6); !errors.Is(err, ErrParse) {
		t.Errorf("have %v, want ErrParse", err)
	}
}

func TestParseMagnitude(t *testing.T) {
	m, err := ParseMagnitude("1 V", "mV", nil)
	if err != nil {
		t.Fatal(err)
	}
	if different(m, 1000, 1e-12) {
		t.Errorf("have %g, want 1000", m)
	}

	m, err = ParseMagnitude(2, "mV", Volt)
	if err != nil {
		t.Fatal(err)
	}
	if different(m, 2000, 1e-12) {
		t.Errorf("have %g, want 2000", m)
	}

	m, err = ParseMagnitude(5, "kPa", nil)
	if err != nil {
		t.Fatal(err)
	}
	if m != 5 {
		t.Errorf("have %g, want 5", m)
	}

	m, err = ParseMagnitude("7 ppm", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if m != 7 {
		t.Errorf("have %g, want 7", m)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   interface{}
		want time.Duration
	}{
		{in: 90, want: 90 * time.Second},
		{in: "2 min", want: 2 * time.Minute},
		{in: "1.5 h", want: 90 * time.Minute},
		{in: "250 ms", want: 250 * time.Millisecond},
		{in: time.Hour, want: time.Hour},
	}
	for _, test := range tests {
		t.Run(fmt.Sprint(test.in), func(t *testing.T) {
			d, err := ParseDuration(test.in)
			if err != nil {
				t.Fatal(err)
			}
			if d != test.want {
				t.Errorf("have %v, want %v", d, test.want)
			}
		})
	}
	if _, err := ParseDuration("3 m"); !errors.Is(err, ErrIncompatibleUnits) {
		t.Errorf("have %v, want ErrIncompatibleUnits", err)
	}
}

func TestConverter(t *testing.T) {
	toPa, err := Converter("Pa", false)
	if err != nil {
		t.Fatal(err)
	}
	q, err := toPa("1 bar")
	if err != nil {
		t.Fatal(err)
	}
	if q.Unit() != Pascal || different(q.Magnitude(), 1e5, 1e-12) {
		t.Errorf("have %v, want 100000 Pa", q)
	}
	if _, err := toPa(nil); !errors.Is(err, ErrParse) {
		t.Errorf("have %v, want ErrParse", err)
	}

	optional, err := Converter(Percent, true)
	if err != nil {
		t.Fatal(err)
	}
	q, err = optional(nil)
	if err != nil || q != nil {
		t.Errorf("have %v, %v, want nil, nil", q, err)
	}

	if _, err := Converter("potato", true); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("have %v, want ErrUnknownUnit", err)
	}
}

func TestParseConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, err := ParseUnit("J/(g K)"); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
