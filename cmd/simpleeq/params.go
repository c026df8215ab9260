package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/internal/preset"
)

func newParamsCommand(a *app) *cobra.Command {
	var save string

	cmd := &cobra.Command{
		Use:   "params",
		Short: "List the parameters with their ranges and current values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tNAME\tRANGE\tDEFAULT\tVALUE\tNORM")
			for _, p := range eq.Parameters() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.3f\n",
					p.Key, p.Name, formatRange(p),
					formatValue(p, p.Default), formatValue(p, a.store.Get(p.ID)),
					a.store.Normalized(p.ID))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if save == "" {
				return nil
			}
			if err := preset.FromSettings(a.store.Snapshot()).Save(save); err != nil {
				return err
			}
			a.logger.Info("preset saved", "path", save)
			return nil
		},
	}

	cmd.Flags().StringVar(&save, "save", "", "write the current settings as a preset file")

	return cmd
}

func formatRange(p eq.Parameter) string {
	if p.IsChoice() {
		return strings.Join(p.Choices, " | ")
	}
	r := p.Range
	s := fmt.Sprintf("%g..%g step %g", r.Min, r.Max, r.Step)
	if r.Skew != 1 {
		s += fmt.Sprintf(" skew %g", r.Skew)
	}
	return s
}

func formatValue(p eq.Parameter, v float64) string {
	if p.IsChoice() {
		return p.Choices[int(v)]
	}
	if p.Unit == "" {
		return fmt.Sprintf("%g", v)
	}
	return fmt.Sprintf("%g %s", v, p.Unit)
}
