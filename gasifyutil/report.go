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

package gasifyutil

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/GaryBoone/GoStats/stats"
	"github.com/Knetic/govaluate"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/swinburne-sensing/gasify/gas"
	"github.com/swinburne-sensing/gasify/quantity"
	"gonum.org/v1/gonum/floats"
)

// Variables returns the values report expressions can use for mixture m
// flowing through a controller calibrated for calibration and indicating
// flow. Bare numbers are sccm. Every compound in r is included, with a
// fraction of zero if m does not contain it.
//
// GCF and FlowRatio are left out if the correction factor of m or
// calibration is unknown.
func Variables(r *gas.Registry, m gas.Mixture, calibration gas.Entry, flow interface{}) (map[string]interface{}, error) {
	sccm, err := quantity.ParseMagnitude(flow, quantity.SCCM, quantity.SCCM)
	if err != nil {
		return nil, fmt.Errorf("gasify: flow: %v", err)
	}
	vars := map[string]interface{}{
		"Flow":    sccm,
		"Total":   m.Total().Value(),
		"Analyte": m.Analyte(),
		"Humid":   m.Humid(),
	}
	for _, e := range r.Entries() {
		c, ok := e.(*gas.Compound)
		if !ok {
			continue
		}
		var x float64
		if cc, ok := m.Get(c); ok {
			x = cc.Fraction()
		}
		vars[c.Name()] = x
	}

	if gcf, err := m.GCF(); err == nil {
		vars["GCF"] = gcf
	} else {
		logrus.WithField("mixture", m.String()).Debugf("no GCF: %v", err)
	}
	if ratio, err := gas.FlowRatio(m, calibration); err == nil {
		vars["FlowRatio"] = ratio
	} else {
		logrus.WithField("mixture", m.String()).Debugf("no flow ratio: %v", err)
	}
	return vars, nil
}

// DefaultFunctions are the functions available to report expressions.
var DefaultFunctions = map[string]govaluate.ExpressionFunction{
	"exp": func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("gasify: got %d arguments for function 'exp', but needs 1", len(arg))
		}
		x, err := cast.ToFloat64E(arg[0])
		if err != nil {
			return nil, err
		}
		return math.Exp(x), nil
	},
	"log": func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("gasify: got %d arguments for function 'log', but needs 1", len(arg))
		}
		x, err := cast.ToFloat64E(arg[0])
		if err != nil {
			return nil, err
		}
		return math.Log(x), nil
	},
	"sum": func(arg ...interface{}) (interface{}, error) {
		x, err := floatArgs("sum", 1, arg)
		if err != nil {
			return nil, err
		}
		return floats.Sum(x), nil
	},
	"mean": func(arg ...interface{}) (interface{}, error) {
		x, err := floatArgs("mean", 1, arg)
		if err != nil {
			return nil, err
		}
		return stats.StatsMean(x), nil
	},
	"stddev": func(arg ...interface{}) (interface{}, error) {
		x, err := floatArgs("stddev", 2, arg)
		if err != nil {
			return nil, err
		}
		return stats.StatsSampleStandardDeviation(x), nil
	},
}

// floatArgs converts the arguments of a variadic function to floats.
func floatArgs(name string, atLeast int, arg []interface{}) ([]float64, error) {
	if len(arg) < atLeast {
		return nil, fmt.Errorf("gasify: got %d arguments for function '%s', but needs at least %d", len(arg), name, atLeast)
	}
	x := make([]float64, len(arg))
	for i, a := range arg {
		var err error
		if x[i], err = cast.ToFloat64E(a); err != nil {
			return nil, err
		}
	}
	return x, nil
}

// Evaluate evaluates the named expressions using vars and the default
// functions plus any in funcs. Expressions may refer to other
// expressions by name, in any order, but may not share a name with a
// variable. Boolean results are reported as 1 or 0.
func Evaluate(exprs map[string]string, vars map[string]interface{}, funcs map[string]govaluate.ExpressionFunction) (map[string]float64, error) {
	functions := make(map[string]govaluate.ExpressionFunction, len(DefaultFunctions)+len(funcs))
	for k, f := range DefaultFunctions {
		functions[k] = f
	}
	for k, f := range funcs {
		functions[k] = f
	}

	params := make(map[string]interface{}, len(vars)+len(exprs))
	for k, v := range vars {
		params[k] = v
	}

	compiled := make(map[string]*govaluate.EvaluableExpression, len(exprs))
	pending := make([]string, 0, len(exprs))
	for name, e := range exprs {
		if _, ok := vars[name]; ok {
			return nil, fmt.Errorf("gasify: expression %s has the same name as a variable", name)
		}
		e = strings.NewReplacer("\r\n", " ", "\n", " ").Replace(e)
		expr, err := govaluate.NewEvaluableExpressionWithFunctions(e, functions)
		if err != nil {
			return nil, fmt.Errorf("gasify: expression %s: %v", name, err)
		}
		compiled[name] = expr
		pending = append(pending, name)
	}
	sort.Strings(pending)

	results := make(map[string]float64, len(exprs))
	for len(pending) > 0 {
		var (
			retry   []string
			missing error
		)
		for _, name := range pending {
			if v := undefined(compiled[name], params); v != "" {
				retry = append(retry, name)
				missing = fmt.Errorf("gasify: expression %s: variable %s is not defined", name, v)
				continue
			}
			v, err := compiled[name].Evaluate(params)
			if err != nil {
				return nil, fmt.Errorf("gasify: expression %s: %v", name, err)
			}
			x, err := toFloat(v)
			if err != nil {
				return nil, fmt.Errorf("gasify: expression %s: %v", name, err)
			}
			params[name] = x
			results[name] = x
		}
		if len(retry) == len(pending) {
			return nil, missing
		}
		pending = retry
	}
	return results, nil
}

// undefined returns the first variable in expr that is not in params.
func undefined(expr *govaluate.EvaluableExpression, params map[string]interface{}) string {
	for _, tok := range expr.Tokens() {
		if tok.Kind != govaluate.VARIABLE {
			continue
		}
		name, _ := tok.Value.(string)
		if _, ok := params[name]; !ok {
			return name
		}
	}
	return ""
}

func toFloat(v interface{}) (float64, error) {
	switch x := v.(type) {
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case float64:
		return x, nil
	}
	return 0, fmt.Errorf("result %#v is not a number", v)
}
