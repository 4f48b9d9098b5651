// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package itm

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	float64PtrType = reflect.TypeOf((*float64)(nil))
	int32PtrType   = reflect.TypeOf((*int32)(nil))
	bytePtrType    = reflect.TypeOf((*byte)(nil))
	structPtrTypes = map[reflect.Type]bool{
		reflect.TypeOf((*Prop)(nil)):  true,
		reflect.TypeOf((*PropV)(nil)): true,
		reflect.TypeOf((*PropA)(nil)): true,
	}
)

// kindAccepts reports whether a Go parameter of type t can carry k across
// the boundary.
func kindAccepts(k Kind, t reflect.Type) bool {
	switch k {
	case KindFloat64:
		return t.Kind() == reflect.Float64
	case KindInt32:
		return t.Kind() == reflect.Int32
	case KindFloat64Array, KindFloat64Out:
		return t == float64PtrType
	case KindInt32Array, KindInt32Out:
		return t == int32PtrType
	case KindByteBuffer:
		return t == bytePtrType
	case KindStructPtr:
		return structPtrTypes[t]
	}
	return false
}

// The table is the hand-audited contract; this keeps the Go func fields in
// step with it.
func TestSignatureTableMatchesGoBindings(t *testing.T) {
	n := &natives{}
	for _, sig := range Signatures(ProfileFull) {
		t.Run(sig.Symbol, func(t *testing.T) {
			fptr := n.target(sig.Symbol)
			require.NotNil(t, fptr, "no Go binding for %s", sig.Symbol)
			ft := reflect.TypeOf(fptr).Elem()
			require.Equal(t, reflect.Func, ft.Kind())

			require.Equal(t, len(sig.Params), ft.NumIn(), "parameter count of %s", sig)
			for i, k := range sig.Params {
				assert.True(t, kindAccepts(k, ft.In(i)),
					"%s param %d: declared %s, Go type %s", sig.Symbol, i, k, ft.In(i))
			}

			switch sig.Return {
			case KindNone:
				assert.Equal(t, 0, ft.NumOut())
			case KindFloat64:
				require.Equal(t, 1, ft.NumOut())
				assert.Equal(t, reflect.Float64, ft.Out(0).Kind())
			default:
				t.Fatalf("unsupported return kind %s", sig.Return)
			}
		})
	}
}

func TestSignaturesByProfile(t *testing.T) {
	general := Signatures(ProfileGeneral)
	require.Len(t, general, 2)
	assert.Equal(t, "ITMDLLVersion", general[0].Symbol)
	assert.Equal(t, "point_to_point", general[1].Symbol)

	full := Signatures(ProfileFull)
	var names []string
	for _, s := range full {
		names = append(names, s.Symbol)
	}
	assert.Equal(t, []string{
		"ITMDLLVersion", "point_to_point", "point_to_pointDH", "point_to_pointMDH",
		"area", "ITMAreadBLoss", "avar", "lrprop", "qerfi", "qlra",
	}, names)
}

func TestSignaturesReturnsCopy(t *testing.T) {
	s := Signatures(ProfileGeneral)
	s[1].Params[0] = KindNone
	assert.Equal(t, KindFloat64Array, Signatures(ProfileGeneral)[1].Params[0])
}

func TestSignatureString(t *testing.T) {
	s := Signatures(ProfileFull)
	var qerfi Signature
	for _, sig := range s {
		if sig.Symbol == "qerfi" {
			qerfi = sig
		}
	}
	assert.Equal(t, "f64 qerfi(f64)", qerfi.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func TestParseProfile(t *testing.T) {
	for in, want := range map[string]Profile{
		"":        ProfileGeneral,
		"general": ProfileGeneral,
		" FULL ":  ProfileFull,
		"Full":    ProfileFull,
	} {
		got, err := ParseProfile(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseProfile("partial")
	assert.ErrorIs(t, err, ErrUnknownProfile)
	assert.Equal(t, "full", ProfileFull.String())
}

// Entry points with more than 15 arguments: purego cannot pass them on
// windows/amd64, so they must have hand-written wide-call bindings there.
var wideSymbols = map[string]bool{
	"point_to_pointMDH": true,
	"area":              true,
	"ITMAreadBLoss":     true,
}

func TestSignaturesOverFifteenArgsAreWide(t *testing.T) {
	for _, sig := range Signatures(ProfileFull) {
		assert.Equal(t, wideSymbols[sig.Symbol], len(sig.Params) > 15,
			"%s has %d params", sig.Symbol, len(sig.Params))
	}
}

func TestRegisteredSignaturesFitPlatformLimit(t *testing.T) {
	noLookup := func(string) (uintptr, error) { return 0, nil }
	for _, sig := range Signatures(ProfileFull) {
		if !needsWideCall(sig) {
			if registerArgLimit > 0 {
				assert.LessOrEqual(t, len(sig.Params), registerArgLimit, sig.Symbol)
			}
			continue
		}
		n := &natives{}
		require.NoError(t, bindWide(n, sig, 0, noLookup), sig.Symbol)
		assert.False(t, reflect.ValueOf(n.target(sig.Symbol)).Elem().IsNil(), sig.Symbol)
	}
}
