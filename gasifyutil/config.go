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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/swinburne-sensing/gasify/gas"
)

// Registry returns the built-in registry extended with the compounds and
// mixtures declared in the TOML configuration file, if there is one, and
// in the definitions files.
func Registry(cfg *viper.Viper) (*gas.Registry, error) {
	var files []string
	if f := cfg.GetString("config"); strings.EqualFold(filepath.Ext(f), ".toml") {
		files = append(files, f)
	}
	defs, err := cast.ToStringSliceE(cfg.Get("definitions"))
	if err != nil {
		return nil, fmt.Errorf("gasify: definitions: %v", err)
	}
	files = append(files, expandStringSlice(defs)...)

	r := gas.Builtin()
	for _, f := range files {
		if r, err = loadDefinitions(r, f); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func loadDefinitions(r *gas.Registry, path string) (*gas.Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gasify: opening definitions: %v", err)
	}
	defer f.Close()
	d, err := gas.LoadDefinitions(f)
	if err != nil {
		return nil, fmt.Errorf("gasify: %s: %v", path, err)
	}
	if r, err = d.Apply(r); err != nil {
		return nil, fmt.Errorf("gasify: %s: %v", path, err)
	}
	logrus.WithFields(logrus.Fields{
		"file":      path,
		"compounds": len(d.Compound),
		"mixtures":  len(d.Mixture),
	}).Debug("loaded definitions")
	return r, nil
}

// expandStringSlice expands the environment variables in a slice of strings.
func expandStringSlice(s []string) []string {
	o := make([]string, 0, len(s))
	for _, v := range s {
		if v = strings.TrimSpace(os.ExpandEnv(v)); v != "" {
			o = append(o, v)
		}
	}
	return o
}

// GetStringMapString returns a map[string]string from a viper configuration,
// accounting for the fact that it might be a json object if it was set
// from a command line argument.
func GetStringMapString(varName string, cfg *viper.Viper) (map[string]string, error) {
	switch v := cfg.Get(varName).(type) {
	case map[string]string:
		return v, nil
	case map[string]interface{}:
		return cast.ToStringMapStringE(v)
	case string:
		o := make(map[string]string)
		if err := json.Unmarshal([]byte(v), &o); err != nil {
			return nil, fmt.Errorf("gasify: parsing %s: %v", varName, err)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("gasify: invalid type for %s: %#v", varName, v)
	}
}
