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

// Package gasifyutil contains the command-line interface to Gasify.
package gasifyutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/swinburne-sensing/gasify"
	"github.com/swinburne-sensing/gasify/gas"
	"github.com/swinburne-sensing/gasify/humidity"
	"github.com/swinburne-sensing/gasify/quantity"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to Gasify.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location. A TOML
              configuration file may also declare compounds and mixtures
              in the same format as a definitions file.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "verbose",
			usage: `
              verbose turns on debug logging.`,
			shorthand:  "v",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "definitions",
			usage: `
              definitions are paths to TOML files declaring additional
              compounds ([[Compound]] tables) and mixtures ([Mixture.<name>]
              tables). The paths can include environment variables.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "method",
			usage: `
              method is the saturation vapour pressure calculation. Valid
              options are "Wagner-Pruss", "Simple", "Antoine", "Magnus",
              "Tetens" and "Buck".`,
			shorthand:  "m",
			defaultVal: humidity.WagnerPruss.String(),
			flagsets:   []*pflag.FlagSet{vpCmd.Flags(), humidityCmd.PersistentFlags()},
		},
		{
			name: "unit",
			usage: `
              unit, if set, is the unit saturation vapour pressures are
              printed in, such as "kPa" or "mbar". By default each method
              uses its own unit.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{vpCmd.Flags()},
		},
		{
			name: "temperature",
			usage: `
              temperature is the temperature humidity is converted at.
              Numbers without units are in °C.`,
			shorthand:  "t",
			defaultVal: "25 °C",
			flagsets:   []*pflag.FlagSet{humidityCmd.PersistentFlags()},
		},
		{
			name: "calibration",
			usage: `
              calibration is the mixture a thermal mass flow controller is
              calibrated for. It may be a compound or mixture name, or a
              mixture such as "21% Oxygen, balance Nitrogen".`,
			shorthand:  "c",
			defaultVal: "Nitrogen",
			flagsets:   []*pflag.FlagSet{flowCmd.Flags(), reportCmd.Flags()},
		},
		{
			name: "flow",
			usage: `
              flow is the flow indicated by the flow controller. Numbers
              without units are in sccm.`,
			shorthand:  "f",
			defaultVal: "100 sccm",
			flagsets:   []*pflag.FlagSet{reportCmd.Flags()},
		},
		{
			name: "expressions",
			usage: `
              expressions are the quantities to report, as a map of names
              to expressions. Expressions may use the variables GCF, Total,
              Flow (the indicated flow in sccm), FlowRatio and
              the fraction of each compound by name, such as Oxygen or
              [Carbon-dioxide]. Expressions may refer to each other, and
              the functions exp, log, sum, mean and stddev are available.`,
			defaultVal: map[string]string{
				"ActualFlow":   "Flow * FlowRatio",
				"TotalPercent": "Total * 100",
			},
			flagsets: []*pflag.FlagSet{reportCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("GASIFY")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, v, option.usage)
			case []string:
				set.StringSliceP(option.name, option.shorthand, v, option.usage)
			case bool:
				set.BoolP(option.name, option.shorthand, v, option.usage)
			case map[string]string:
				b := bytes.NewBuffer(nil)
				e := json.NewEncoder(b)
				e.Encode(v)
				set.StringP(option.name, option.shorthand, strings.TrimSpace(b.String()), option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
			Cfg.BindEnv(option.name)
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(compoundsCmd)
	Root.AddCommand(mixCmd)
	Root.AddCommand(gcfCmd)
	Root.AddCommand(flowCmd)
	Root.AddCommand(vpCmd)
	Root.AddCommand(humidityCmd)
	humidityCmd.AddCommand(abs2relCmd)
	humidityCmd.AddCommand(rel2absCmd)
	Root.AddCommand(reportCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the logging level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("gasify: problem reading configuration file: %v", err)
		}
	}
	if Cfg.GetBool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "gasify",
	Short: "Gas mixture, flow and humidity calculations.",
	Long: `Gasify describes gas compounds and mixtures and calculates their
properties. Use the subcommands specified below to access its functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'GASIFY_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of Gasify.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Gasify v%s\n", gasify.Version)
	},
	DisableAutoGenTag: true,
}

var compoundsCmd = &cobra.Command{
	Use:   "compounds",
	Short: "List the known compounds and mixtures.",
	Long: `compounds lists the built-in compounds and mixtures along with any
declared in the configuration or definitions files, and their gas correction
factors.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := Registry(Cfg)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tFORMULA\tGCF")
		for _, e := range r.Entries() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", e.Keys()[0], formula(e), gcfText(e.Mixture()))
		}
		return w.Flush()
	},
	DisableAutoGenTag: true,
}

var mixCmd = &cobra.Command{
	Use:   "mix <mixture>",
	Short: "Describe a gas mixture.",
	Long: `mix prints the components, total and gas correction factor of a
mixture. The mixture may be the name of a known compound or mixture, or a comma
separated list of components such as "500 ppm Carbon monoxide, 21% Oxygen,
balance Nitrogen".`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := Registry(Cfg)
		if err != nil {
			return err
		}
		m, err := mixtureArg(r, strings.Join(args, " "))
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, c := range m.Concentrations() {
			fmt.Fprintf(w, "%s\t%v\n", c.Compound().Name(), c.Amount())
		}
		fmt.Fprintf(w, "Total\t%v\n", m.Total())
		fmt.Fprintf(w, "GCF\t%s\n", gcfText(m))
		fmt.Fprintf(w, "Analyte\t%v\n", m.Analyte())
		fmt.Fprintf(w, "Humid\t%v\n", m.Humid())
		return w.Flush()
	},
	DisableAutoGenTag: true,
}

var gcfCmd = &cobra.Command{
	Use:   "gcf <mixture>",
	Short: "Print the gas correction factor of a mixture.",
	Long: `gcf prints the gas correction factor of a mixture relative to
nitrogen, as used by thermal mass flow controllers.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := Registry(Cfg)
		if err != nil {
			return err
		}
		m, err := mixtureArg(r, strings.Join(args, " "))
		if err != nil {
			return err
		}
		gcf, err := m.GCF()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%.4g\n", gcf)
		return nil
	},
	DisableAutoGenTag: true,
}

var flowCmd = &cobra.Command{
	Use:   "flow <indicated flow> <mixture>",
	Short: "Correct a flow controller reading for the gas flowing.",
	Long: `flow converts the flow indicated by a thermal mass flow controller,
calibrated for the --calibration mixture, into the actual flow of the given
mixture.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := Registry(Cfg)
		if err != nil {
			return err
		}
		target, err := mixtureArg(r, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		calibration, err := mixtureArg(r, Cfg.GetString("calibration"))
		if err != nil {
			return err
		}
		q, err := gas.CorrectFlow(indicatedFlow(args[0]), target, calibration)
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"indicated":   args[0],
			"mixture":     target.String(),
			"calibration": calibration.String(),
		}).Debug("corrected flow")
		fmt.Fprintf(cmd.OutOrStdout(), "%.4g\n", q)
		return nil
	},
	DisableAutoGenTag: true,
}

var vpCmd = &cobra.Command{
	Use:   "vp <temperature>...",
	Short: "Calculate the saturation vapour pressure of water.",
	Long: `vp calculates the saturation vapour pressure of water at each of the
given temperatures. Temperatures without units are in °C.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := calculator(Cfg)
		if err != nil {
			return err
		}
		unit := Cfg.GetString("unit")
		for _, t := range args {
			p, err := c.WaterVPSat(t)
			if err != nil {
				return err
			}
			if unit != "" {
				if p, err = quantity.Parse(p, unit); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.6g\n", t, p)
		}
		return nil
	},
	DisableAutoGenTag: true,
}

var humidityCmd = &cobra.Command{
	Use:   "humidity",
	Short: "Convert between absolute and relative humidity.",
	Long: `humidity converts between absolute and relative humidity. Use the
subcommands specified below to choose the direction of the conversion.`,
	DisableAutoGenTag: true,
}

var abs2relCmd = &cobra.Command{
	Use:   "abs2rel <absolute humidity>",
	Short: "Convert absolute humidity to relative humidity.",
	Long: `abs2rel converts an absolute humidity to a relative humidity at
--temperature. Numbers without units are in g/m³.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := calculator(Cfg)
		if err != nil {
			return err
		}
		rel, err := c.AbsoluteToRelative(args[0], Cfg.GetString("temperature"))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%.4g\n", rel)
		return nil
	},
	DisableAutoGenTag: true,
}

var rel2absCmd = &cobra.Command{
	Use:   "rel2abs <relative humidity>",
	Short: "Convert relative humidity to absolute humidity.",
	Long: `rel2abs converts a relative humidity to an absolute humidity at
--temperature. Numbers without units are fractions, so 0.5 is 50%.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := calculator(Cfg)
		if err != nil {
			return err
		}
		abs, err := c.RelativeToAbsolute(args[0], Cfg.GetString("temperature"))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%.5g\n", abs)
		return nil
	},
	DisableAutoGenTag: true,
}

var reportCmd = &cobra.Command{
	Use:   "report <mixture>",
	Short: "Evaluate expressions over the properties of a mixture.",
	Long: `report evaluates each of the --expressions over the properties of
the given mixture flowing through a controller calibrated for --calibration
and indicating --flow, and prints the results sorted by name.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := Registry(Cfg)
		if err != nil {
			return err
		}
		m, err := mixtureArg(r, strings.Join(args, " "))
		if err != nil {
			return err
		}
		calibration, err := mixtureArg(r, Cfg.GetString("calibration"))
		if err != nil {
			return err
		}
		vars, err := Variables(r, m, calibration, indicatedFlow(Cfg.GetString("flow")))
		if err != nil {
			return err
		}
		exprs, err := GetStringMapString("expressions", Cfg)
		if err != nil {
			return err
		}
		results, err := Evaluate(exprs, vars, nil)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(results))
		for name := range results {
			names = append(names, name)
		}
		sort.Strings(names)
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, name := range names {
			fmt.Fprintf(w, "%s\t%.6g\n", name, results[name])
		}
		return w.Flush()
	},
	DisableAutoGenTag: true,
}

// mixtureArg returns the registry entry with key s as a mixture, or
// parses s as a mixture.
func mixtureArg(r *gas.Registry, s string) (gas.Mixture, error) {
	s = strings.TrimSpace(s)
	if r.Contains(s) {
		return r.Mixture(s)
	}
	return r.ParseMixtureString(s)
}

// indicatedFlow interprets bare numbers as sccm.
func indicatedFlow(s string) interface{} {
	q, err := quantity.Parse(s, nil)
	if err == nil && q.IsUnitless() {
		return quantity.New(q.Magnitude(), quantity.SCCM)
	}
	return s
}

func formula(e gas.Entry) string {
	if c, ok := e.(*gas.Compound); ok {
		return c.Symbol()
	}
	return e.Mixture().String()
}

func gcfText(m gas.Mixture) string {
	gcf, err := m.GCF()
	if err != nil {
		return "-"
	}
	return fmt.Sprintf("%.4g", gcf)
}

// calculator returns a humidity calculator using the configured method.
func calculator(cfg *viper.Viper) (*humidity.Calculator, error) {
	m, err := humidity.ParseMethod(cfg.GetString("method"))
	if err != nil {
		return nil, err
	}
	return &humidity.Calculator{Method: m}, nil
}
