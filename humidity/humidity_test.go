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
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/swinburne-sensing/gasify/quantity"
)

type vpTest struct {
	celsius float64
	mpa     float64
	places  int
}

func checkVP(t *testing.T, f VPFunc, tests []vpTest) {
	t.Helper()
	for _, test := range tests {
		t.Run(fmt.Sprintf("%g °C", test.celsius), func(t *testing.T) {
			p, err := f(quantity.New(test.celsius, quantity.Celsius))
			if err != nil && !IsRangeWarning(err) {
				t.Fatal(err)
			}
			have, err := p.In(quantity.Megapascal)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(have-test.mpa) > math.Pow(10, -float64(test.places)) {
				t.Errorf("have %g MPa, want %g MPa", have, test.mpa)
			}
		})
	}
}

func TestWagnerPruss(t *testing.T) {
	checkVP(t, WaterVPSatWagnerPruss, []vpTest{
		{-100, 0.003683e-6, 6},
		{-75, 0.25484e-6, 6},
		{-50, 6.447e-6, 6},
		{-25, 80.88e-6, 6},
		{0, 611.2e-6, 6},
		{25, 3170e-6, 6},
		{50, 12352e-6, 5},
		{75, 38597e-6, 5},
		{100, 101418e-6, 5},
		{150, 476159e-6, 5},
		{200, 1554939e-6, 4},
		{300, 8587867e-6, 5},
	})
}

func TestWagnerPrussCritical(t *testing.T) {
	p, err := WaterVPSatWagnerPruss(CriticalTemperature)
	if err != nil {
		t.Fatal(err)
	}
	have, _ := p.In(quantity.Megapascal)
	if math.Abs(have-22.064) > 1e-9 {
		t.Errorf("have %g MPa, want 22.064 MPa", have)
	}
}

func TestWagnerPrussSupercritical(t *testing.T) {
	p, err := WaterVPSatWagnerPruss("700 K")
	if !errors.Is(err, ErrSupercritical) {
		t.Fatalf("have %v, %v; want ErrSupercritical", p, err)
	}
	if IsRangeWarning(err) {
		t.Error("supercritical temperature should not be a range warning")
	}
	if _, err := AbsoluteToRelative("10 g/m^3", "400 °C"); !errors.Is(err, ErrSupercritical) {
		t.Errorf("have %v, want ErrSupercritical", err)
	}
	if _, err := RelativeToAbsolute(0.5, "700 K"); !errors.Is(err, ErrSupercritical) {
		t.Errorf("have %v, want ErrSupercritical", err)
	}
}

func TestAntoine(t *testing.T) {
	checkVP(t, WaterVPSatAntoine, []vpTest{
		{0, 0.0006056, 6},
		{25, 0.003158, 5},
		{50, 0.012306, 5},
		{75, 0.03846, 4},
		{100, 0.10134, 4},
		{150, 0.47255, 4},
		{200, 1.552, 3},
		{300, 8.692, 3},
		{373.946, 21.73, 1},
	})
}

func TestAntoineWarning(t *testing.T) {
	p, err := WaterVPSatAntoine(-1)
	if !IsRangeWarning(err) {
		t.Fatalf("have %v, want a range warning", err)
	}
	var w *RangeWarning
	if !errors.As(err, &w) || w.Above || w.Method != Antoine {
		t.Errorf("have %#v", w)
	}
	if p.Unit() != quantity.MillimeterMercury || math.IsNaN(p.Magnitude()) || math.IsInf(p.Magnitude(), 0) {
		t.Errorf("have %v, want a finite pressure", p)
	}
	if different(p.Magnitude(), 4.22, 0.01) {
		t.Errorf("have %v", p)
	}
}

func TestSimple(t *testing.T) {
	checkVP(t, WaterVPSatSimple, []vpTest{
		{0, 0.0006521, 4},
		{25, 0.003157, 4},
		{50, 0.01197, 3},
		{75, 0.03748, 3},
		{100, 0.10072, 2},
		{150, 0.47255, 1},
	})
}

func TestMagnus(t *testing.T) {
	checkVP(t, WaterVPSatMagnus, []vpTest{
		{0, 0.000611, 4},
		{25, 0.003162, 5},
		{50, 0.01236, 3},
		{75, 0.039, 2},
		{100, 0.10408, 2},
		{150, 0.5096, 4},
		{200, 1.7435, 3},
		{300, 10.343, 3},
	})
}

func TestTetens(t *testing.T) {
	checkVP(t, WaterVPSatTetens, []vpTest{
		{0, 0.0006108, 4},
		{25, 0.0031677, 5},
		{50, 0.012336, 3},
		{75, 0.038646, 2},
		{100, 0.10221, 2},
		{150, 0.4906, 4},
		{200, 1.645, 3},
		{300, 9.411, 3},
	})
}

func TestBuck(t *testing.T) {
	checkVP(t, WaterVPSatBuck, []vpTest{
		{0, 0.0006112, 4},
		{25, 0.0031685, 5},
		{50, 0.01235, 3},
		{75, 0.038595, 2},
		{100, 0.1013, 2},
		{150, 0.4703, 4},
		{200, 1.4895, 3},
		{300, 7.16, 3},
	})
}

func TestRanges(t *testing.T) {
	var tests = []struct {
		method Method
		in     interface{}
		warn   bool
		above  bool
	}{
		{method: WagnerPruss, in: -50, warn: false},
		{method: Simple, in: 0, warn: false},
		{method: Simple, in: -0.5, warn: true},
		{method: Simple, in: "650 K", warn: true, above: true},
		{method: Antoine, in: 300, warn: false},
		{method: Magnus, in: 100, warn: false},
		{method: Magnus, in: 101, warn: true, above: true},
		{method: Tetens, in: "75 degC", warn: false},
		{method: Tetens, in: "80 degC", warn: true, above: true},
		{method: Buck, in: "280 K", warn: false},
		{method: Buck, in: "76 °C", warn: true, above: true},
		{method: Buck, in: -10, warn: true},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%v %v", test.method, test.in), func(t *testing.T) {
			_, err := test.method.Func()(test.in)
			if IsRangeWarning(err) != test.warn {
				t.Fatalf("have %v, want warning %v", err, test.warn)
			}
			if !test.warn && err != nil {
				t.Fatal(err)
			}
			var w *RangeWarning
			if errors.As(err, &w) && w.Above != test.above {
				t.Errorf("above: have %v, want %v", w.Above, test.above)
			}
		})
	}
}

func TestTemperatureErrors(t *testing.T) {
	for _, m := range []Method{WagnerPruss, Simple, Antoine, Magnus, Tetens, Buck} {
		_, err := m.Func()("3 m")
		if !errors.Is(err, quantity.ErrIncompatibleUnits) || IsRangeWarning(err) {
			t.Errorf("%v: have %v, want ErrIncompatibleUnits", m, err)
		}
		if _, err := m.Func()(nil); !errors.Is(err, quantity.ErrParse) {
			t.Errorf("%v: have %v, want ErrParse", m, err)
		}
	}
}

func TestParseMethod(t *testing.T) {
	var tests = []struct {
		in   string
		want Method
	}{
		{in: "Wagner-Pruss", want: WagnerPruss},
		{in: "wagner_pruss", want: WagnerPruss},
		{in: "WagnerPruss", want: WagnerPruss},
		{in: "simple", want: Simple},
		{in: "ANTOINE", want: Antoine},
		{in: "magnus", want: Magnus},
		{in: "Tetens", want: Tetens},
		{in: "buck", want: Buck},
	}
	for _, test := range tests {
		m, err := ParseMethod(test.in)
		if err != nil {
			t.Fatal(err)
		}
		if m != test.want {
			t.Errorf("%s: have %v, want %v", test.in, m, test.want)
		}
	}
	if _, err := ParseMethod("guess"); err == nil {
		t.Error("unknown method should fail")
	}
	if s := Method(42).String(); s != "Method(42)" {
		t.Errorf("have %q", s)
	}
}

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

func TestRelativeToAbsolute(t *testing.T) {
	for _, rel := range []interface{}{"100%", 1, 1.0, quantity.New(100, quantity.Percent)} {
		t.Run(fmt.Sprint(rel), func(t *testing.T) {
			abs, err := RelativeToAbsolute(rel, quantity.New(30, quantity.Celsius))
			if err != nil {
				t.Fatal(err)
			}
			have, err := abs.In(AbsoluteUnit)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(have-30.359) > 0.005 {
				t.Errorf("have %v, want 30.359 g/m^3", abs)
			}
		})
	}
}

func TestAbsoluteToRelative(t *testing.T) {
	for _, abs := range []interface{}{"30.359 g/m^3", 30.359, "0.030359 kg/m^3"} {
		t.Run(fmt.Sprint(abs), func(t *testing.T) {
			rel, err := AbsoluteToRelative(abs, 30)
			if err != nil {
				t.Fatal(err)
			}
			if rel.Unit() != quantity.Percent {
				t.Errorf("unit: have %s, want %%", rel.Unit())
			}
			if math.Abs(rel.Value()-1) > 0.005 {
				t.Errorf("have %v, want 100%%", rel)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, m := range []Method{WagnerPruss, Simple, Antoine, Magnus, Tetens, Buck} {
		c := &Calculator{Method: m}
		abs, err := c.RelativeToAbsolute("45%", "22 °C")
		if err != nil {
			t.Fatal(err)
		}
		rel, err := c.AbsoluteToRelative(abs, "22 °C")
		if err != nil {
			t.Fatal(err)
		}
		if different(rel.Value(), 0.45, 1e-12) {
			t.Errorf("%v: have %v, want 45%%", m, rel)
		}
	}
}

func TestCalculatorWarning(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	c := &Calculator{Method: Tetens, Log: logger}

	if _, err := c.RelativeToAbsolute("50%", 25); err != nil {
		t.Fatal(err)
	}
	if len(hook.Entries) != 0 {
		t.Errorf("have %d log entries, want 0", len(hook.Entries))
	}

	want, _ := WaterVPSatTetens(90)
	p, err := c.WaterVPSat(90)
	if err != nil {
		t.Fatalf("range warnings should not be returned: %v", err)
	}
	if p != want {
		t.Errorf("have %v, want %v", p, want)
	}
	e := hook.LastEntry()
	if e == nil {
		t.Fatal("no warning logged")
	}
	if e.Level != logrus.WarnLevel {
		t.Errorf("level: have %v", e.Level)
	}
	if e.Data["method"] != "Tetens" || e.Data["temperature"] != "90 °C" {
		t.Errorf("fields: have %v", e.Data)
	}
	hook.Reset()

	custom := &Calculator{Func: WaterVPSatMagnus, Log: logger}
	if _, err := custom.AbsoluteToRelative(10, -5); err != nil {
		t.Fatal(err)
	}
	if e := hook.LastEntry(); e == nil || e.Data["method"] != "Magnus" {
		t.Errorf("have %v", e)
	}
}

func TestCalculatorErrors(t *testing.T) {
	if _, err := RelativeToAbsolute("3 m", 25); !errors.Is(err, quantity.ErrIncompatibleUnits) {
		t.Errorf("have %v, want ErrIncompatibleUnits", err)
	}
	if _, err := AbsoluteToRelative("3 Pa", 25); !errors.Is(err, quantity.ErrIncompatibleUnits) {
		t.Errorf("have %v, want ErrIncompatibleUnits", err)
	}
	if _, err := AbsoluteToRelative(10, "25 Pa"); !errors.Is(err, quantity.ErrIncompatibleUnits) {
		t.Errorf("have %v, want ErrIncompatibleUnits", err)
	}
}
