// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package itm

import (
	"fmt"
	"strings"

	"github.com/dropbox/godropbox/errors"
	"github.com/ebitengine/purego"
)

// Kind describes how one parameter or return value crosses the native
// boundary.
type Kind int

const (
	KindNone         Kind = iota // no value (return only)
	KindFloat64                  // double by value
	KindInt32                    // int by value
	KindInt32Array               // int[] caller-allocated, contiguous
	KindFloat64Array             // double[] caller-allocated, contiguous
	KindFloat64Out               // double& output
	KindInt32Out                 // int& output
	KindStructPtr                // struct& in/out
	KindByteBuffer               // char[modeBufferSize] text output
)

var kindNames = [...]string{
	KindNone:         "none",
	KindFloat64:      "f64",
	KindInt32:        "i32",
	KindInt32Array:   "i32[]",
	KindFloat64Array: "f64[]",
	KindFloat64Out:   "*f64",
	KindInt32Out:     "*i32",
	KindStructPtr:    "*struct",
	KindByteBuffer:   "char[]",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Profile selects which build of the native library is being bound.
type Profile int

const (
	// ProfileGeneral binds only the version query and point_to_point.
	ProfileGeneral Profile = iota
	// ProfileFull binds every entry point, including area mode and the
	// lower-level structure-based steps.
	ProfileFull
)

func (p Profile) String() string {
	switch p {
	case ProfileGeneral:
		return "general"
	case ProfileFull:
		return "full"
	}
	return fmt.Sprintf("Profile(%d)", int(p))
}

// ParseProfile accepts "general" or "full" (case-insensitive).
func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "general":
		return ProfileGeneral, nil
	case "full":
		return ProfileFull, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownProfile)
}

// Signature is the hand-declared calling convention of one native entry
// point. Nothing checks it against the native binary; a wrong row is
// undefined behavior, not an error.
type Signature struct {
	Symbol  string
	Params  []Kind
	Return  Kind
	Profile Profile // smallest profile that binds the symbol
}

func (s Signature) String() string {
	parts := make([]string, len(s.Params))
	for i, k := range s.Params {
		parts[i] = k.String()
	}
	return fmt.Sprintf("%s %s(%s)", s.Return, s.Symbol, strings.Join(parts, ", "))
}

const (
	symVersion      = "ITMDLLVersion"
	symPointToPoint = "point_to_point"
	symPointToPtDH  = "point_to_pointDH"
	symPointToPtMDH = "point_to_pointMDH"
	symArea         = "area"
	symAreaDBLoss   = "ITMAreadBLoss"
	symAVar         = "avar"
	symLRProp       = "lrprop"
	symQErfI        = "qerfi"
	symQLRA         = "qlra"
)

const (
	f64  = KindFloat64
	i32  = KindInt32
	f64s = KindFloat64Array
	i32s = KindInt32Array
	f64o = KindFloat64Out
	i32o = KindInt32Out
	sptr = KindStructPtr
	cbuf = KindByteBuffer
)

// Verified against the ITM v1.2.2 exports (itm.cpp).
var signatures = []Signature{
	{symVersion, nil, f64, ProfileGeneral},
	{symPointToPoint, []Kind{f64s, f64, f64, f64, f64, f64, f64, i32, i32, f64, f64, f64o, cbuf, i32o}, KindNone, ProfileGeneral},
	{symPointToPtDH, []Kind{f64s, f64, f64, f64, f64, f64, f64, i32, i32, f64, f64, f64o, f64o, i32o}, KindNone, ProfileFull},
	{symPointToPtMDH, []Kind{f64s, f64, f64, f64, f64, f64, f64, i32, i32, f64, f64, f64, f64o, i32o, f64o, i32o}, KindNone, ProfileFull},
	{symArea, []Kind{i32, f64, f64, f64, f64, i32, i32, f64, f64, f64, f64, i32, i32, f64, f64, f64, f64o, cbuf, i32o}, KindNone, ProfileFull},
	{symAreaDBLoss, []Kind{i32, f64, f64, f64, f64, i32, i32, f64, f64, f64, f64, i32, i32, f64, f64, f64}, f64, ProfileFull},
	{symAVar, []Kind{f64, f64, f64, sptr, sptr}, f64, ProfileFull},
	{symLRProp, []Kind{f64, sptr, sptr}, KindNone, ProfileFull},
	{symQErfI, []Kind{f64}, f64, ProfileFull},
	{symQLRA, []Kind{i32s, i32, i32, sptr, sptr}, KindNone, ProfileFull},
}

// Signatures returns the audited table of entry points bound under p.
func Signatures(p Profile) []Signature {
	var out []Signature
	for _, s := range signatures {
		if s.Profile <= p {
			params := append([]Kind(nil), s.Params...)
			out = append(out, Signature{s.Symbol, params, s.Return, s.Profile})
		}
	}
	return out
}

// natives holds one Go func per native entry point. Each field's type must
// agree with its row in signatures.
type natives struct {
	version func() float64

	pointToPoint func(elev *float64, thtM, rhtM, epsDielect, sgmConductivity, enoNsSurfref, frqMHz float64,
		radioClimate, pol int32, conf, rel float64,
		dbloss *float64, strmode *byte, errnum *int32)

	pointToPointDH func(elev *float64, thtM, rhtM, epsDielect, sgmConductivity, enoNsSurfref, frqMHz float64,
		radioClimate, pol int32, conf, rel float64,
		dbloss *float64, deltaH *float64, errnum *int32)

	pointToPointMDH func(elev *float64, thtM, rhtM, epsDielect, sgmConductivity, enoNsSurfref, frqMHz float64,
		radioClimate, pol int32, timePct, locPct, confPct float64,
		dbloss *float64, propMode *int32, deltaH *float64, errnum *int32)

	area func(modVar int32, deltaH, thtM, rhtM, distKm float64, tSiteCriteria, rSiteCriteria int32,
		epsDielect, sgmConductivity, enoNsSurfref, frqMHz float64, radioClimate, pol int32,
		pctTime, pctLoc, pctConf float64,
		dbloss *float64, strmode *byte, errnum *int32)

	areaDBLoss func(modVar int32, deltaH, thtM, rhtM, distKm float64, tSiteCriteria, rSiteCriteria int32,
		epsDielect, sgmConductivity, enoNsSurfref, frqMHz float64, radioClimate, pol int32,
		pctTime, pctLoc, pctConf float64) float64

	avar   func(zzt, zzl, zzc float64, prop *Prop, propv *PropV) float64
	lrprop func(d float64, prop *Prop, propa *PropA)
	qerfi  func(q float64) float64
	qlra   func(kst *int32, klimx, mdvarx int32, prop *Prop, propv *PropV)
}

// target returns a pointer to the func field bound to symbol, or nil.
func (n *natives) target(symbol string) any {
	switch symbol {
	case symVersion:
		return &n.version
	case symPointToPoint:
		return &n.pointToPoint
	case symPointToPtDH:
		return &n.pointToPointDH
	case symPointToPtMDH:
		return &n.pointToPointMDH
	case symArea:
		return &n.area
	case symAreaDBLoss:
		return &n.areaDBLoss
	case symAVar:
		return &n.avar
	case symLRProp:
		return &n.lrprop
	case symQErfI:
		return &n.qerfi
	case symQLRA:
		return &n.qlra
	}
	return nil
}

// bindAll resolves every symbol of profile p in handle and registers the
// matching func field. The first missing symbol aborts binding.
//
// Symbols with more arguments than purego can pass on this platform
// (registerArgLimit) are bound by bindWide instead.
func bindAll(n *natives, handle uintptr, path string, p Profile) (map[string]bool, error) {
	lookup := func(name string) (uintptr, error) {
		addr, err := getSymbolAddr(handle, name)
		if err != nil {
			return 0, &SymbolNotFoundError{Symbol: name, Path: path, Err: err}
		}
		return addr, nil
	}

	bound := make(map[string]bool)
	for _, sig := range Signatures(p) {
		fptr := n.target(sig.Symbol)
		if fptr == nil {
			return nil, errors.Newf("itm: no Go binding declared for %s", sig.Symbol)
		}
		addr, err := lookup(sig.Symbol)
		if err != nil {
			return nil, err
		}
		if needsWideCall(sig) {
			if err := bindWide(n, sig, addr, lookup); err != nil {
				return nil, err
			}
		} else {
			purego.RegisterFunc(fptr, addr)
		}
		bound[sig.Symbol] = true
	}
	return bound, nil
}

// needsWideCall reports whether sig has too many arguments for
// purego.RegisterFunc on this platform.
func needsWideCall(sig Signature) bool {
	return registerArgLimit > 0 && len(sig.Params) > registerArgLimit
}
