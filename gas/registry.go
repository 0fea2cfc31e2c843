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
	"strings"
	"sync"
)

// Entry is a named item held in a Registry: either a *Compound or a
// Mixture.
type Entry interface {
	// Keys returns the names the entry can be looked up by.
	Keys() []string

	// Analyte reports whether the entry is, or contains, a gas of
	// interest.
	Analyte() bool

	// Mixture returns the entry as a mixture.
	Mixture() Mixture

	String() string
}

// Registry is an immutable lookup table of compounds and mixtures.
// Keys are matched case-insensitively, and spaces, hyphens and
// underscores are treated as the same character.
type Registry struct {
	entries []Entry
	index   map[string]Entry
}

var keyReplacer = strings.NewReplacer(" ", "_", "-", "_")

func normalizeKey(k string) string {
	return keyReplacer.Replace(strings.ToLower(strings.TrimSpace(k)))
}

// NewRegistry creates a registry holding the given entries. It returns
// ErrDuplicateKey if two entries share a key.
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{index: make(map[string]Entry)}
	for _, e := range entries {
		if err := r.add(e); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) add(e Entry) error {
	if e == nil {
		return fmt.Errorf("gas: nil registry entry: %w", ErrType)
	}
	keys := make(map[string]bool)
	for _, k := range e.Keys() {
		if k = normalizeKey(k); k != "" {
			keys[k] = true
		}
	}
	if len(keys) == 0 {
		return fmt.Errorf("gas: registry entry %s has no keys", e)
	}
	for k := range keys {
		if o, ok := r.index[k]; ok {
			return fmt.Errorf("gas: key %q of %s is used by %s: %w", k, e, o, ErrDuplicateKey)
		}
	}
	for k := range keys {
		r.index[k] = e
	}
	r.entries = append(r.entries, e)
	return nil
}

// With returns a new registry holding the entries of r followed by the
// given entries. r is not changed.
func (r *Registry) With(entries ...Entry) (*Registry, error) {
	return NewRegistry(append(r.Entries(), entries...)...)
}

// Get returns the entry with the given key.
func (r *Registry) Get(key string) (Entry, error) {
	e, ok := r.index[normalizeKey(key)]
	if !ok {
		return nil, fmt.Errorf("gas: %q: %w", key, ErrNotFound)
	}
	return e, nil
}

// Compound returns the compound with the given key. It returns ErrType
// if the key refers to a mixture.
func (r *Registry) Compound(key string) (*Compound, error) {
	e, err := r.Get(key)
	if err != nil {
		return nil, err
	}
	c, ok := e.(*Compound)
	if !ok {
		return nil, fmt.Errorf("gas: %q is a mixture, not a compound: %w", key, ErrType)
	}
	return c, nil
}

// Mixture returns the entry with the given key as a mixture. Compounds
// are returned as pure mixtures.
func (r *Registry) Mixture(key string) (Mixture, error) {
	e, err := r.Get(key)
	if err != nil {
		return Mixture{}, err
	}
	return e.Mixture(), nil
}

// Contains reports whether the registry has an entry with the given key.
func (r *Registry) Contains(key string) bool {
	_, ok := r.index[normalizeKey(key)]
	return ok
}

// Entries returns the entries in the order they were added.
func (r *Registry) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Len returns the number of entries.
func (r *Registry) Len() int { return len(r.entries) }

// Compounds that are referenced directly by other built-in definitions.
var (
	Nitrogen = MustCompound("Nitrogen",
		WithSymbol("N_2"),
		WithStructure(Diatomic),
		WithSpecificHeat(0.2485),
		WithDensity(1.25),
		NonAnalyte(),
		WithOrder(2),
	)

	Oxygen = MustCompound("Oxygen",
		WithSymbol("O_2"),
		WithStructure(Diatomic),
		WithSpecificHeat(0.2193),
		WithDensity(1.427),
		NonAnalyte(),
		WithOrder(1),
	)

	Water = MustCompound("Water",
		WithSymbol("H_2O"),
		WithAlias("Water vapour", "Water vapor", "Humidity"),
		NonAnalyte(),
		Humid(),
		WithOrder(1),
	)

	// Air is 21% oxygen with a nitrogen balance.
	Air = mustMixture(AutoBalanceNamed("Air", Nitrogen, Oxygen.mustScale("21%")))
)

func mustMixture(m Mixture, err error) Mixture {
	if err != nil {
		panic(err)
	}
	return m
}

var (
	builtinOnce sync.Once
	builtin     *Registry
)

// Builtin returns the registry of built-in compounds and mixtures. It is
// created on first use and shared by all callers.
func Builtin() *Registry {
	builtinOnce.Do(func() {
		r, err := NewRegistry(builtinEntries()...)
		if err != nil {
			panic(fmt.Errorf("gas: building built-in registry: %v", err))
		}
		builtin = r
	})
	return builtin
}

// builtinEntries returns the compound table. Physical properties are
// from MKS Instruments, "Gas correction factors for thermal-based mass
// flow controllers".
func builtinEntries() []Entry {
	type props struct {
		name      string
		symbol    string
		structure MolecularStructure
		cp        float64
		density   float64
		carrier   bool
	}
	table := []props{
		{"Acetone", "(CH_3)_2CO", Polyatomic, 0.51, 0.21, false},
		{"Ammonia", "NH_3", Polyatomic, 0.492, 0.76, false},
		{"Argon", "Ar", Monatomic, 0.1244, 1.782, true},
		{"Arsine", "", Polyatomic, 0.1167, 3.478, false},
		{"Bromine", "Br_2", Diatomic, 0.0539, 7.13, false},
		{"Carbon-dioxide", "CO_2", Triatomic, 0.2016, 1.964, false},
		{"Carbon-monoxide", "CO", Diatomic, 0.2488, 1.25, false},
		{"Carbon-tetrachloride", "", Polyatomic, 0.1655, 6.86, false},
		{"Carbon-tetrafluoride", "", Polyatomic, 0.1654, 3.926, false},
		{"Chlorine", "Cl_2", Diatomic, 0.1144, 3.163, false},
		{"Cyanogen", "", Polyatomic, 0.2613, 2.322, false},
		{"Deuterium", "H_2/D_2", Diatomic, 1.722, 0.1799, false},
		{"Ethane", "C_2H_6", Polyatomic, 0.4097, 1.342, false},
		{"Fluorine", "F_2", Diatomic, 0.1873, 1.695, false},
		{"Helium", "He", Monatomic, 1.241, 0.1786, true},
		{"Hexane", "C_6H_14", Polyatomic, 0.54, 0.672, false},
		{"Hydrogen", "H_2", Diatomic, 3.3852, 0.0899, false},
		{"Hydrogen-chloride", "HCl", Diatomic, 0.1912, 1.627, false},
		{"Hydrogen-fluoride", "HF", Diatomic, 0.3479, 0.893, false},
		{"Methane", "CH_4", Polyatomic, 0.5223, 0.716, false},
		{"Neon", "Ne", Monatomic, 0.246, 0.9, true},
		{"Nitric-oxide", "NO", Diatomic, 0.2328, 1.339, false},
		{"Nitrogen-dioxide", "NO_2", Triatomic, 0.1933, 2.052, false},
		{"Nitrous-oxide", "N_2O", Triatomic, 0.2088, 1.964, false},
		{"Phosphine", "PH_3", Polyatomic, 0.2374, 1.517, false},
		{"Propane", "C_3H_8", Polyatomic, 0.3885, 1.967, false},
		{"Propylene", "C_3H_6", Polyatomic, 0.3541, 1.877, false},
		{"Sulfur-hexafluoride", "SF_6", Polyatomic, 0.1592, 6.516, false},
		{"Xenon", "Xe", Monatomic, 0.0378, 5.858, true},
	}

	entries := make([]Entry, 0, len(table)+5)
	for _, p := range table {
		opts := []CompoundOption{
			WithStructure(p.structure),
			WithSpecificHeat(p.cp),
			WithDensity(p.density),
		}
		if p.symbol != "" {
			opts = append(opts, WithSymbol(p.symbol))
		}
		if p.carrier {
			opts = append(opts, NonAnalyte(), WithOrder(2))
		}
		entries = append(entries, MustCompound(p.name, opts...))
	}
	// Lumped oxides of nitrogen have no single set of properties.
	entries = append(entries,
		MustCompound("Nitric-oxides", WithSymbol("NO_x")),
		Nitrogen,
		Oxygen,
		Water,
		Air,
	)
	return entries
}
