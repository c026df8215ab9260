package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/internal/config"
	"github.com/cwbudde/algo-eq/internal/logging"
	"github.com/cwbudde/algo-eq/internal/preset"
)

// app is the state shared by every subcommand after PersistentPreRunE.
type app struct {
	configFile string
	cfg        config.Config
	logger     *slog.Logger
	store      *eq.ParameterStore
	overrides  eqOverrides
}

// eqFlag ties a command-line flag to the parameter it overrides.
type eqFlag struct {
	name  string
	id    eq.ParamID
	usage string
}

var eqFlags = []eqFlag{
	{"lowcut", eq.ParamLowCutFreq, "low-cut frequency in Hz"},
	{"lowcut-slope", eq.ParamLowCutSlope, "low-cut slope: 12, 24, 36 or 48 dB/oct"},
	{"highcut", eq.ParamHighCutFreq, "high-cut frequency in Hz"},
	{"highcut-slope", eq.ParamHighCutSlope, "high-cut slope: 12, 24, 36 or 48 dB/oct"},
	{"peak-freq", eq.ParamPeakFreq, "peak band center frequency in Hz"},
	{"peak-gain", eq.ParamPeakGain, "peak band gain in dB"},
	{"peak-q", eq.ParamPeakQ, "peak band quality"},
}

// flagKeys maps config keys to the persistent flags that override them.
var flagKeys = map[string]string{
	"preset":     "preset",
	"log.level":  "log-level",
	"log.format": "log-format",
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "simpleeq",
		Short:         "Three-band parametric equalizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default ./simpleeq.yaml or ~/.config/simpleeq/simpleeq.yaml)")
	pf.String("preset", "", "preset YAML file applied before flag overrides")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", logging.FormatText, "log format: text or json")

	for _, f := range eqFlags {
		p := eq.Param(f.id)
		if p.IsChoice() {
			pf.String(f.name, p.Choices[int(p.Default)], f.usage)
			continue
		}
		pf.Float64(f.name, p.Default, f.usage)
	}

	root.AddCommand(
		newRenderCommand(a),
		newLiveCommand(a),
		newResponseCommand(a),
		newParamsCommand(a),
	)

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	v := config.New(a.configFile)
	if err := config.BindFlags(v, cmd.Flags(), flagKeys); err != nil {
		return err
	}
	if err := config.BindFlags(v, cmd.Flags(), commandKeys[cmd.Name()]); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logger, err = logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	a.store = eq.NewParameterStore()
	if cfg.Preset != "" {
		p, err := preset.Load(cfg.Preset)
		if err != nil {
			return err
		}
		if err := p.ApplyTo(a.store); err != nil {
			return err
		}
		a.logger.Debug("preset applied", "path", cfg.Preset)
	}

	a.overrides, err = parseEQFlags(cmd.Flags())
	if err != nil {
		return err
	}
	a.store.SetSettings(a.overrides.apply(a.store.Snapshot()))

	a.logger.Debug("settings", "eq", a.store.Snapshot().String())

	return nil
}

// eqOverrides holds the EQ flags set on the command line, in store units.
type eqOverrides map[eq.ParamID]float64

func (o eqOverrides) apply(cs eq.ChainSettings) eq.ChainSettings {
	for id, v := range o {
		cs = cs.With(id, v)
	}
	return cs
}

// parseEQFlags collects every explicitly set EQ flag.
func parseEQFlags(flags *pflag.FlagSet) (eqOverrides, error) {
	o := eqOverrides{}
	for _, f := range eqFlags {
		if !flags.Changed(f.name) {
			continue
		}

		if eq.Param(f.id).IsChoice() {
			text, err := flags.GetString(f.name)
			if err != nil {
				return nil, err
			}
			slope, err := eq.ParseSlope(text)
			if err != nil {
				return nil, fmt.Errorf("--%s: %w", f.name, err)
			}
			o[f.id] = float64(slope.Index())
			continue
		}

		v, err := flags.GetFloat64(f.name)
		if err != nil {
			return nil, err
		}
		o[f.id] = v
	}

	return o, nil
}
