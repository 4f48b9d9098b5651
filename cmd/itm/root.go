// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package main

import (
	"strings"

	"github.com/dropbox/godropbox/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	itm "github.com/YindSoft/itm-purego"
)

type app struct {
	v   *viper.Viper
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "itm",
		Short:         "Longley-Rice (ITM) path loss through the native library",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.String("library", itm.DefaultPath, "path to the native ITM module")
	pf.String("profile", "general", "symbol profile: general or full (area and the dh/mdh variants default to full)")
	pf.String("config", "", "optional config file (yaml, json or toml)")
	pf.Bool("verbose", false, "log library lifecycle to stderr")
	_ = a.v.BindPFlags(pf)

	root.AddCommand(newVersionCmd(a), newP2PCmd(a), newAreaCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	a.v.SetEnvPrefix("ITM")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	_ = a.v.BindPFlags(cmd.Flags())

	if cfg := a.v.GetString("config"); cfg != "" {
		a.v.SetConfigFile(cfg)
		if err := a.v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading config %s: ", cfg)
		}
	}

	if a.v.GetBool("verbose") {
		l, err := zap.NewDevelopment()
		if err != nil {
			return errors.Wrap(err, "creating logger: ")
		}
		a.log = l
	} else {
		a.log = zap.NewNop()
	}
	return nil
}

// profile returns the configured profile. When none was given by flag,
// environment or config file, need is used.
func (a *app) profile(need itm.Profile) (itm.Profile, error) {
	if !a.v.IsSet("profile") {
		return need, nil
	}
	return itm.ParseProfile(a.v.GetString("profile"))
}

func (a *app) open(need itm.Profile) (*itm.Library, error) {
	profile, err := a.profile(need)
	if err != nil {
		return nil, err
	}
	return itm.Open(&itm.Options{
		Path:    a.v.GetString("library"),
		Profile: profile,
		Logger:  a.log,
	})
}

// withLibrary opens the library for the duration of fn.
func (a *app) withLibrary(need itm.Profile, fn func(*itm.Library) error) error {
	lib, err := a.open(need)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := lib.Close(); cerr != nil {
			a.log.Warn("closing library", zap.Error(cerr))
		}
	}()
	return fn(lib)
}
