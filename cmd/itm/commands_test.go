// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	itm "github.com/YindSoft/itm-purego"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseFloats(t *testing.T) {
	got, err := parseFloats("3,10, 0 10,20,0")
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 10, 0, 10, 20, 0}, got)

	_, err = parseFloats("3,ten")
	assert.Error(t, err)
}

func TestMissingLibrary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "libitm.so")
	for _, sub := range []string{"version", "p2p", "area"} {
		_, err := run(t, sub, "--library", path)
		var nf *itm.ModuleNotFoundError
		require.True(t, errors.As(err, &nf), "%s: %v", sub, err)
		assert.Equal(t, path, nf.Path)
	}
}

func TestLibraryFromEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "from-env.so")
	t.Setenv("ITM_LIBRARY", path)
	_, err := run(t, "version")
	var nf *itm.ModuleNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, path, nf.Path)
}

func TestLibraryFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "itm.yaml")
	lib := filepath.Join(dir, "cfg.so")
	require.NoError(t, os.WriteFile(cfg, []byte("library: "+lib+"\n"), 0o644))

	_, err := run(t, "version", "--config", cfg)
	var nf *itm.ModuleNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, lib, nf.Path)
}

func TestBadProfile(t *testing.T) {
	_, err := run(t, "version", "--profile", "partial")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown profile")
}

func TestP2PAgainstNativeLibrary(t *testing.T) {
	path := os.Getenv("ITM_LIBRARY")
	if path == "" {
		t.Skip("ITM_LIBRARY not set")
	}
	out, err := run(t, "p2p", "--library", path)
	require.NoError(t, err)
	assert.Contains(t, out, "dbloss:")
	assert.Contains(t, out, "errnum: 0")
}

func TestProfileDefaultsToWhatTheCommandNeeds(t *testing.T) {
	a := &app{v: viper.New()}
	p, err := a.profile(itm.ProfileFull)
	require.NoError(t, err)
	assert.Equal(t, itm.ProfileFull, p)

	p, err = a.profile(itm.ProfileGeneral)
	require.NoError(t, err)
	assert.Equal(t, itm.ProfileGeneral, p)
}

func TestExplicitProfileWins(t *testing.T) {
	a := &app{v: viper.New()}
	a.v.Set("profile", "general")
	p, err := a.profile(itm.ProfileFull)
	require.NoError(t, err)
	assert.Equal(t, itm.ProfileGeneral, p)

	t.Setenv("ITM_PROFILE", "full")
	b := &app{v: viper.New()}
	b.v.SetEnvPrefix("ITM")
	b.v.AutomaticEnv()
	p, err = b.profile(itm.ProfileGeneral)
	require.NoError(t, err)
	assert.Equal(t, itm.ProfileFull, p)
}

func TestUnknownProfileError(t *testing.T) {
	_, err := run(t, "area", "--profile", "partial")
	assert.ErrorIs(t, err, itm.ErrUnknownProfile)
	assert.NotContains(t, err.Error(), "STACK")
}
