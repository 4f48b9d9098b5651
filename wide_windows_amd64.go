// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

//go:build windows && amd64

package itm

import (
	"math"
	"syscall"
	"unsafe"

	"github.com/dropbox/godropbox/errors"
)

// purego on windows/amd64 copies every argument into a fixed array of 15
// slots. Longer signatures go through syscall.SyscallN, whose trampoline also
// loads the first four slots into XMM0-XMM3, so float arguments land where
// the x64 convention expects them. SyscallN cannot read a float return.
const registerArgLimit = 15

func f64Arg(v float64) uintptr { return uintptr(math.Float64bits(v)) }

func i32Arg(v int32) uintptr { return uintptr(v) }

// bindWide assigns hand-written SyscallN closures for the entry points that
// exceed registerArgLimit.
func bindWide(n *natives, sig Signature, addr uintptr, lookup func(string) (uintptr, error)) error {
	switch sig.Symbol {
	case symPointToPtMDH:
		n.pointToPointMDH = func(elev *float64, thtM, rhtM, epsDielect, sgmConductivity, enoNsSurfref, frqMHz float64,
			radioClimate, pol int32, timePct, locPct, confPct float64,
			dbloss *float64, propMode *int32, deltaH *float64, errnum *int32) {
			syscall.SyscallN(addr,
				uintptr(unsafe.Pointer(elev)), f64Arg(thtM), f64Arg(rhtM), f64Arg(epsDielect),
				f64Arg(sgmConductivity), f64Arg(enoNsSurfref), f64Arg(frqMHz),
				i32Arg(radioClimate), i32Arg(pol), f64Arg(timePct), f64Arg(locPct), f64Arg(confPct),
				uintptr(unsafe.Pointer(dbloss)), uintptr(unsafe.Pointer(propMode)),
				uintptr(unsafe.Pointer(deltaH)), uintptr(unsafe.Pointer(errnum)))
		}
		return nil

	case symArea:
		n.area = areaCall(addr)
		return nil

	case symAreaDBLoss:
		// ITMAreadBLoss returns area()'s dbloss in XMM0, which SyscallN
		// cannot read. The symbol must still be present; the call is routed
		// through area with a scratch mode buffer.
		areaAddr, err := lookup(symArea)
		if err != nil {
			return err
		}
		call := areaCall(areaAddr)
		n.areaDBLoss = func(modVar int32, deltaH, thtM, rhtM, distKm float64, tSiteCriteria, rSiteCriteria int32,
			epsDielect, sgmConductivity, enoNsSurfref, frqMHz float64, radioClimate, pol int32,
			pctTime, pctLoc, pctConf float64) float64 {
			var (
				dbloss float64
				mode   [modeBufferSize]byte
				errnum int32
			)
			call(modVar, deltaH, thtM, rhtM, distKm, tSiteCriteria, rSiteCriteria,
				epsDielect, sgmConductivity, enoNsSurfref, frqMHz, radioClimate, pol,
				pctTime, pctLoc, pctConf, &dbloss, &mode[0], &errnum)
			return dbloss
		}
		return nil
	}
	return errors.Newf("itm: %s has %d arguments and no wide-call binding", sig.Symbol, len(sig.Params))
}

func areaCall(addr uintptr) func(int32, float64, float64, float64, float64, int32, int32,
	float64, float64, float64, float64, int32, int32, float64, float64, float64,
	*float64, *byte, *int32) {
	return func(modVar int32, deltaH, thtM, rhtM, distKm float64, tSiteCriteria, rSiteCriteria int32,
		epsDielect, sgmConductivity, enoNsSurfref, frqMHz float64, radioClimate, pol int32,
		pctTime, pctLoc, pctConf float64,
		dbloss *float64, strmode *byte, errnum *int32) {
		syscall.SyscallN(addr,
			i32Arg(modVar), f64Arg(deltaH), f64Arg(thtM), f64Arg(rhtM), f64Arg(distKm),
			i32Arg(tSiteCriteria), i32Arg(rSiteCriteria),
			f64Arg(epsDielect), f64Arg(sgmConductivity), f64Arg(enoNsSurfref), f64Arg(frqMHz),
			i32Arg(radioClimate), i32Arg(pol),
			f64Arg(pctTime), f64Arg(pctLoc), f64Arg(pctConf),
			uintptr(unsafe.Pointer(dbloss)), uintptr(unsafe.Pointer(strmode)), uintptr(unsafe.Pointer(errnum)))
	}
}
