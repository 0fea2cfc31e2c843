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
	"sort"
	"strings"

	"github.com/swinburne-sensing/gasify/quantity"
)

// balanceKeyword marks the component that makes a mixture up to 100%.
const balanceKeyword = "balance"

// ParseMixture creates a mixture from a map of registry keys to amounts,
// such as {"Oxygen": "21%", "Nitrogen": "balance"}. Keys may name
// compounds or mixtures; a mixture is scaled as a whole. At most one
// component may be "balance".
func (r *Registry) ParseMixture(parts map[string]string) (Mixture, error) {
	keys := make([]string, 0, len(parts))
	for k := range parts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var (
		components []Components
		balance    Entry
	)
	for _, k := range keys {
		e, err := r.Get(k)
		if err != nil {
			return Mixture{}, err
		}
		amount := strings.TrimSpace(parts[k])
		if strings.EqualFold(amount, balanceKeyword) {
			if balance != nil {
				return Mixture{}, fmt.Errorf("gas: %s and %s: %w", balance, e, ErrMultipleBalance)
			}
			balance = e
			continue
		}
		c, err := scaleEntry(e, amount)
		if err != nil {
			return Mixture{}, err
		}
		components = append(components, c)
	}
	return balanceMixture(balance, components)
}

// ParseMixtureString creates a mixture from a comma separated list such
// as "21% Oxygen, balance Nitrogen". Each part is an amount followed by
// a registry key, or the word "balance" followed by a registry key.
func (r *Registry) ParseMixtureString(s string) (Mixture, error) {
	var (
		components []Components
		balance    Entry
	)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Fields(part)
		if strings.EqualFold(fields[0], balanceKeyword) {
			e, err := r.Get(strings.Join(fields[1:], " "))
			if err != nil {
				return Mixture{}, err
			}
			if balance != nil {
				return Mixture{}, fmt.Errorf("gas: %s and %s: %w", balance, e, ErrMultipleBalance)
			}
			balance = e
			continue
		}
		c, err := r.parseComponent(fields)
		if err != nil {
			return Mixture{}, fmt.Errorf("gas: parsing %q: %w", part, err)
		}
		components = append(components, c)
	}
	return balanceMixture(balance, components)
}

// parseComponent splits fields into an amount and the longest registry
// key that follows it, so that both "21 % Oxygen" and "5 ppm Carbon
// monoxide" are accepted.
func (r *Registry) parseComponent(fields []string) (Components, error) {
	for i := 1; i < len(fields); i++ {
		key := strings.Join(fields[i:], " ")
		if !r.Contains(key) {
			continue
		}
		e, _ := r.Get(key)
		return scaleEntry(e, strings.Join(fields[:i], " "))
	}
	return nil, fmt.Errorf("no amount and known compound in %q: %w", strings.Join(fields, " "), ErrNotFound)
}

// scaleEntry returns the concentrations of e at the given amount.
func scaleEntry(e Entry, amount interface{}) (Components, error) {
	if c, ok := e.(*Compound); ok {
		return c.Scale(amount)
	}
	f, err := factor(amount)
	if err != nil {
		return nil, fmt.Errorf("gas: amount of %s: %w", e, err)
	}
	if f < 0 {
		return nil, fmt.Errorf("gas: amount of %s is %v: %w", e, amount, ErrNegative)
	}
	parts := e.Mixture().Concentrations()
	for i, p := range parts {
		if parts[i], err = p.Scale(f); err != nil {
			return nil, err
		}
	}
	return Concentrations(parts), nil
}

func balanceMixture(balance Entry, components []Components) (Mixture, error) {
	if balance == nil {
		m := NewMixture(components...)
		if m.fractionTotal() > 1+BalanceTolerance {
			return Mixture{}, fmt.Errorf("gas: %s: total is %v: %w", m, m.Total(), ErrOverSpecified)
		}
		return m, nil
	}
	if c, ok := balance.(*Compound); ok {
		return AutoBalance(c, components...)
	}
	m := NewMixture(components...)
	remainder := 1 - m.fractionTotal()
	if remainder < -BalanceTolerance {
		return Mixture{}, fmt.Errorf("gas: balancing %s with %s: total is %v: %w", m, balance, m.Total(), ErrOverSpecified)
	}
	if remainder < 0 {
		remainder = 0
	}
	b, err := scaleEntry(balance, quantity.Number(remainder))
	if err != nil {
		return Mixture{}, err
	}
	return m.Add(b), nil
}
