// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dropbox/godropbox/errors"
	"github.com/spf13/cobra"

	itm "github.com/YindSoft/itm-purego"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the native library version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withLibrary(itm.ProfileGeneral, func(lib *itm.Library) error {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %g\n", lib.Path(), lib.Version())
				return nil
			})
		},
	}
}

func newP2PCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "p2p",
		Short: "Point-to-point loss over an elevation profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			elev, err := parseFloats(a.v.GetString("elev"))
			if err != nil {
				return err
			}
			p := itm.PointToPointParams{
				Elevation:    elev,
				TxHeight:     a.v.GetFloat64("tx"),
				RxHeight:     a.v.GetFloat64("rx"),
				Dielectric:   a.v.GetFloat64("eps"),
				Conductivity: a.v.GetFloat64("sgm"),
				Refractivity: a.v.GetFloat64("ns"),
				FrequencyMHz: a.v.GetFloat64("freq"),
				Climate:      a.v.GetInt32("climate"),
				Polarization: a.v.GetInt32("pol"),
				Confidence:   a.v.GetFloat64("conf"),
				Reliability:  a.v.GetFloat64("rel"),
			}
			out := cmd.OutOrStdout()
			variant := a.v.GetString("variant")
			need := itm.ProfileFull
			if variant == "text" {
				need = itm.ProfileGeneral
			}
			return a.withLibrary(need, func(lib *itm.Library) error {
				switch variant {
				case "text":
					res, err := lib.PointToPoint(p)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "dbloss: %g\nstrmode: %s\nerrnum: %d\n", res.Loss, res.Mode, res.ErrNum)
				case "dh":
					res, err := lib.PointToPointDH(p)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "dbloss: %g\ndeltaH: %g\nerrnum: %d\n", res.Loss, res.DeltaH, res.ErrNum)
				case "mdh":
					res, err := lib.PointToPointMDH(itm.PointToPointMDHParams{
						Elevation:     p.Elevation,
						TxHeight:      p.TxHeight,
						RxHeight:      p.RxHeight,
						Dielectric:    p.Dielectric,
						Conductivity:  p.Conductivity,
						Refractivity:  p.Refractivity,
						FrequencyMHz:  p.FrequencyMHz,
						Climate:       p.Climate,
						Polarization:  p.Polarization,
						TimePct:       a.v.GetFloat64("time"),
						LocationPct:   a.v.GetFloat64("loc"),
						ConfidencePct: p.Confidence,
					})
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "dbloss: %g\npropmode: %d\ndeltaH: %g\nerrnum: %d\n",
						res.Loss, res.PropMode, res.DeltaH, res.ErrNum)
				default:
					return errors.Newf("unknown variant %q (want text, dh or mdh)", variant)
				}
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.String("elev", "3,10,0,10,20,0", "profile: intervals, spacing (m), then elevations (m)")
	f.Float64("tx", 5, "transmitter height (m)")
	f.Float64("rx", 6, "receiver height (m)")
	groundFlags(cmd, 1500)
	f.Int32("pol", 1, "polarization: 0 horizontal, 1 vertical")
	f.Float64("conf", 0.5, "confidence fraction")
	f.Float64("rel", 0.5, "reliability fraction")
	f.Float64("time", 0.5, "time fraction (mdh variant)")
	f.Float64("loc", 0.5, "location fraction (mdh variant)")
	f.String("variant", "text", "native entry point: text, dh or mdh (dh and mdh default to --profile full)")
	return cmd
}

func newAreaCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "area",
		Short: "Area-mode loss from terrain statistics",
		Long: "Area-mode loss from terrain statistics. Needs a library build that exports\n" +
			"area and ITMAreadBLoss; the profile defaults to full.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := itm.AreaParams{
				ModVar:         a.v.GetInt32("modvar"),
				DeltaH:         a.v.GetFloat64("deltah"),
				TxHeight:       a.v.GetFloat64("tx"),
				RxHeight:       a.v.GetFloat64("rx"),
				DistanceKm:     a.v.GetFloat64("dist"),
				TxSiteCriteria: a.v.GetInt32("tx-site"),
				RxSiteCriteria: a.v.GetInt32("rx-site"),
				Dielectric:     a.v.GetFloat64("eps"),
				Conductivity:   a.v.GetFloat64("sgm"),
				Refractivity:   a.v.GetFloat64("ns"),
				FrequencyMHz:   a.v.GetFloat64("freq"),
				Climate:        a.v.GetInt32("climate"),
				Polarization:   a.v.GetInt32("pol"),
				TimePct:        a.v.GetFloat64("time"),
				LocationPct:    a.v.GetFloat64("loc"),
				ConfidencePct:  a.v.GetFloat64("conf"),
			}
			out := cmd.OutOrStdout()
			return a.withLibrary(itm.ProfileFull, func(lib *itm.Library) error {
				if a.v.GetBool("direct") {
					loss, err := lib.AreaDBLoss(p)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "dbloss: %g\n", loss)
					return nil
				}
				res, err := lib.Area(p)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "dbloss: %g\nerrnum: %d\n", res.Loss, res.ErrNum)
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.Int32("modvar", 0, "variability mode 0..3")
	f.Float64("deltah", 5, "terrain irregularity (m)")
	f.Float64("tx", 10, "transmitter height (m)")
	f.Float64("rx", 1, "receiver height (m)")
	f.Float64("dist", 50, "path distance (km)")
	f.Int32("tx-site", 0, "transmitter siting: 0 random, 1 careful, 2 very careful")
	f.Int32("rx-site", 1, "receiver siting: 0 random, 1 careful, 2 very careful")
	groundFlags(cmd, 2000)
	f.Int32("pol", 0, "polarization: 0 horizontal, 1 vertical")
	f.Float64("time", 0.5, "time fraction")
	f.Float64("loc", 0.6, "location fraction")
	f.Float64("conf", 0.7, "confidence fraction")
	f.Bool("direct", false, "use ITMAreadBLoss instead of area")
	return cmd
}

func groundFlags(cmd *cobra.Command, freq float64) {
	f := cmd.Flags()
	f.Float64("eps", 15, "ground relative permittivity")
	f.Float64("sgm", 0.005, "ground conductivity (S/m)")
	f.Float64("ns", 301, "surface refractivity (N-units)")
	f.Float64("freq", freq, "frequency (MHz)")
	f.Int32("climate", 5, "radio climate 1..7")
}

// parseFloats reads a comma or space separated list of numbers.
func parseFloats(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "bad profile value %q: ", f)
		}
		out = append(out, v)
	}
	return out, nil
}
