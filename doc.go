// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

// Package itm binds the native ITM v1.2.2 (Longley-Rice) propagation library
// without cgo.
//
// The native module is loaded with purego and each exported function is
// bound to a Go func whose parameter list is declared by hand (see
// [Signatures]). The propagation math stays in the native code; this package
// only moves inputs in and outputs out.
//
// Basic usage:
//
//	lib, err := itm.Open(&itm.Options{Path: "lib/libitm.so"})
//	if err != nil { ... }
//	defer lib.Close()
//
//	res, err := lib.PointToPoint(itm.PointToPointParams{
//	    Elevation:    []float64{3, 10, 0, 10, 20, 0},
//	    TxHeight:     5,
//	    RxHeight:     6,
//	    Dielectric:   15,
//	    Conductivity: 0.005,
//	    Refractivity: 301,
//	    FrequencyMHz: 1500,
//	    Climate:      5,
//	    Polarization: 1,
//	    Confidence:   0.5,
//	    Reliability:  0.5,
//	})
//	// res.Loss (dB), res.Mode, res.ErrNum
//
// Native error codes are returned as values (ErrNum) and never converted into
// Go errors. Go errors come only from Open (missing module or symbol) and
// from calls made after Close or outside the bound [Profile].
//
// Area mode and the lower-level steps (avar, lrprop, qerfi, qlra) require a
// build that exports them; open it with Profile: [ProfileFull]. The [Prop],
// [PropV] and [PropA] mirrors are passed by reference and updated in place.
//
// Input arrays are copied and passed through unvalidated. A malformed
// elevation profile is the native library's problem, and may crash the
// process.
//
// Requirements: a 64-bit build of the ITM library (libitm.so on Linux,
// libitm.dylib on macOS, ITM122.dll on Windows). Without Options.Path,
// [DefaultPath] is used.
package itm
