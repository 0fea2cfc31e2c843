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
	"io"
	"sort"

	"github.com/BurntSushi/toml"
)

// Definitions holds user-defined compounds and mixtures, usually read
// from a TOML file such as:
//
//	[[Compound]]
//	Name = "Hydrogen-sulfide"
//	Symbol = "H_2S"
//	Structure = "triatomic"
//	SpecificHeat = 0.2382
//	Density = 1.52
//
//	[Mixture.Zero-air]
//	Oxygen = "20.9%"
//	Nitrogen = "balance"
type Definitions struct {
	Compound []CompoundDefinition

	// Mixture maps mixture names to their components. Component
	// amounts are as accepted by Registry.ParseMixture.
	Mixture map[string]map[string]string
}

// CompoundDefinition describes a compound in a definitions file.
type CompoundDefinition struct {
	Name      string
	Symbol    string
	Alias     []string
	Structure string

	// SpecificHeat and Density may be numbers, in cal/(g K) and g/L
	// respectively, or strings with units.
	SpecificHeat interface{}
	Density      interface{}

	NonAnalyte bool
	Humid      bool
	Order      int
}

// LoadDefinitions reads definitions in TOML format from r.
func LoadDefinitions(r io.Reader) (*Definitions, error) {
	d := new(Definitions)
	if _, err := toml.DecodeReader(r, d); err != nil {
		return nil, fmt.Errorf("gas: reading definitions: %v", err)
	}
	return d, nil
}

// Compounds creates the compounds described by the definitions.
func (d *Definitions) Compounds() ([]*Compound, error) {
	o := make([]*Compound, len(d.Compound))
	for i, cd := range d.Compound {
		s, err := ParseMolecularStructure(cd.Structure)
		if err != nil {
			return nil, err
		}
		opts := []CompoundOption{WithStructure(s), WithOrder(cd.Order)}
		if cd.Symbol != "" {
			opts = append(opts, WithSymbol(cd.Symbol))
		}
		if len(cd.Alias) > 0 {
			opts = append(opts, WithAlias(cd.Alias...))
		}
		if cd.SpecificHeat != nil {
			opts = append(opts, WithSpecificHeat(cd.SpecificHeat))
		}
		if cd.Density != nil {
			opts = append(opts, WithDensity(cd.Density))
		}
		if cd.NonAnalyte {
			opts = append(opts, NonAnalyte())
		}
		if cd.Humid {
			opts = append(opts, Humid())
		}
		if o[i], err = NewCompound(cd.Name, opts...); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Apply returns a new registry holding the entries of r plus the
// compounds and mixtures in d. Mixtures may refer to compounds and to
// other mixtures in d, in any order.
func (d *Definitions) Apply(r *Registry) (*Registry, error) {
	compounds, err := d.Compounds()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, len(compounds))
	for i, c := range compounds {
		entries[i] = c
	}
	if r, err = r.With(entries...); err != nil {
		return nil, err
	}

	pending := make([]string, 0, len(d.Mixture))
	for name := range d.Mixture {
		pending = append(pending, name)
	}
	sort.Strings(pending)
	for len(pending) > 0 {
		var (
			retry   []string
			lastErr error
		)
		for _, name := range pending {
			m, err := r.ParseMixture(d.Mixture[name])
			if errors.Is(err, ErrNotFound) {
				retry = append(retry, name)
				lastErr = err
				continue
			} else if err != nil {
				return nil, fmt.Errorf("gas: mixture %s: %w", name, err)
			}
			if r, err = r.With(m.WithName(name)); err != nil {
				return nil, err
			}
		}
		if len(retry) == len(pending) {
			return nil, fmt.Errorf("gas: mixture %s: %w", retry[0], lastErr)
		}
		pending = retry
	}
	return r, nil
}
