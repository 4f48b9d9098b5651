// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package itm

import (
	"bytes"
	"runtime"
)

// modeBufferSize is the capacity of the strmode buffer documented by the
// native library.
const modeBufferSize = 42

// PointToPointParams are the inputs of point_to_point and point_to_pointDH.
//
// Elevation follows the native profile convention: Elevation[0] is the number
// of intervals (samples minus one), Elevation[1] the sample spacing in meters,
// then the samples. The slice is passed through unvalidated.
type PointToPointParams struct {
	Elevation    []float64
	TxHeight     float64 // m
	RxHeight     float64 // m
	Dielectric   float64 // relative permittivity
	Conductivity float64 // S/m
	Refractivity float64 // N-units
	FrequencyMHz float64
	Climate      int32 // radio climate, 1..7
	Polarization int32 // 0 horizontal, 1 vertical
	Confidence   float64
	Reliability  float64
}

// PointToPointResult is the output of point_to_point.
type PointToPointResult struct {
	Loss   float64 // dB
	Mode   string  // e.g. "Line-Of-Sight Mode"
	ErrNum int32   // 0 normal, otherwise native warning or error level
}

// PointToPointDHResult is the output of point_to_pointDH.
type PointToPointDHResult struct {
	Loss   float64
	DeltaH float64 // terrain irregularity derived from the profile, m
	ErrNum int32
}

// PointToPointMDHParams are the inputs of point_to_pointMDH, which takes
// time, location and confidence fractions instead of confidence/reliability.
type PointToPointMDHParams struct {
	Elevation     []float64
	TxHeight      float64
	RxHeight      float64
	Dielectric    float64
	Conductivity  float64
	Refractivity  float64
	FrequencyMHz  float64
	Climate       int32
	Polarization  int32
	TimePct       float64
	LocationPct   float64
	ConfidencePct float64
}

// PointToPointMDHResult is the output of point_to_pointMDH.
type PointToPointMDHResult struct {
	Loss     float64
	PropMode int32 // numeric propagation mode
	DeltaH   float64
	ErrNum   int32
}

// AreaParams are the inputs of area and ITMAreadBLoss.
type AreaParams struct {
	ModVar         int32   // variability mode 0..3
	DeltaH         float64 // terrain irregularity, m
	TxHeight       float64
	RxHeight       float64
	DistanceKm     float64
	TxSiteCriteria int32 // 0 random, 1 careful, 2 very careful
	RxSiteCriteria int32
	Dielectric     float64
	Conductivity   float64
	Refractivity   float64
	FrequencyMHz   float64
	Climate        int32
	Polarization   int32
	TimePct        float64
	LocationPct    float64
	ConfidencePct  float64
}

// AreaResult is the output of area. Mode is whatever the native code leaves
// in the buffer; area mode does not meaningfully populate it.
type AreaResult struct {
	Loss   float64
	Mode   string
	ErrNum int32
}

// PointToPoint runs point_to_point. The native error code is returned in the
// result; the error is non-nil only for ErrClosed or ErrNotInProfile.
func (l *Library) PointToPoint(p PointToPointParams) (PointToPointResult, error) {
	nat, err := l.enter(symPointToPoint)
	if err != nil {
		return PointToPointResult{}, err
	}
	defer l.mu.Unlock()

	elev := float64Buffer(p.Elevation)
	var (
		dbloss float64
		mode   [modeBufferSize]byte
		errnum int32
	)
	nat.pointToPoint(firstFloat64(elev), p.TxHeight, p.RxHeight, p.Dielectric, p.Conductivity,
		p.Refractivity, p.FrequencyMHz, p.Climate, p.Polarization, p.Confidence, p.Reliability,
		&dbloss, &mode[0], &errnum)
	runtime.KeepAlive(elev)

	return PointToPointResult{Loss: dbloss, Mode: decodeMode(mode[:]), ErrNum: errnum}, nil
}

// PointToPointDH runs point_to_pointDH, which also reports delta H.
func (l *Library) PointToPointDH(p PointToPointParams) (PointToPointDHResult, error) {
	nat, err := l.enter(symPointToPtDH)
	if err != nil {
		return PointToPointDHResult{}, err
	}
	defer l.mu.Unlock()

	elev := float64Buffer(p.Elevation)
	var (
		dbloss float64
		deltaH float64
		errnum int32
	)
	nat.pointToPointDH(firstFloat64(elev), p.TxHeight, p.RxHeight, p.Dielectric, p.Conductivity,
		p.Refractivity, p.FrequencyMHz, p.Climate, p.Polarization, p.Confidence, p.Reliability,
		&dbloss, &deltaH, &errnum)
	runtime.KeepAlive(elev)

	return PointToPointDHResult{Loss: dbloss, DeltaH: deltaH, ErrNum: errnum}, nil
}

// PointToPointMDH runs point_to_pointMDH, which reports a numeric mode.
func (l *Library) PointToPointMDH(p PointToPointMDHParams) (PointToPointMDHResult, error) {
	nat, err := l.enter(symPointToPtMDH)
	if err != nil {
		return PointToPointMDHResult{}, err
	}
	defer l.mu.Unlock()

	elev := float64Buffer(p.Elevation)
	var (
		dbloss   float64
		propMode int32
		deltaH   float64
		errnum   int32
	)
	nat.pointToPointMDH(firstFloat64(elev), p.TxHeight, p.RxHeight, p.Dielectric, p.Conductivity,
		p.Refractivity, p.FrequencyMHz, p.Climate, p.Polarization, p.TimePct, p.LocationPct, p.ConfidencePct,
		&dbloss, &propMode, &deltaH, &errnum)
	runtime.KeepAlive(elev)

	return PointToPointMDHResult{Loss: dbloss, PropMode: propMode, DeltaH: deltaH, ErrNum: errnum}, nil
}

// Area runs area-mode prediction.
func (l *Library) Area(p AreaParams) (AreaResult, error) {
	nat, err := l.enter(symArea)
	if err != nil {
		return AreaResult{}, err
	}
	defer l.mu.Unlock()

	var (
		dbloss float64
		mode   [modeBufferSize]byte
		errnum int32
	)
	nat.area(p.ModVar, p.DeltaH, p.TxHeight, p.RxHeight, p.DistanceKm, p.TxSiteCriteria, p.RxSiteCriteria,
		p.Dielectric, p.Conductivity, p.Refractivity, p.FrequencyMHz, p.Climate, p.Polarization,
		p.TimePct, p.LocationPct, p.ConfidencePct,
		&dbloss, &mode[0], &errnum)

	return AreaResult{Loss: dbloss, Mode: decodeMode(mode[:]), ErrNum: errnum}, nil
}

// AreaDBLoss runs ITMAreadBLoss and returns only the loss.
func (l *Library) AreaDBLoss(p AreaParams) (float64, error) {
	nat, err := l.enter(symAreaDBLoss)
	if err != nil {
		return 0, err
	}
	defer l.mu.Unlock()

	return nat.areaDBLoss(p.ModVar, p.DeltaH, p.TxHeight, p.RxHeight, p.DistanceKm, p.TxSiteCriteria, p.RxSiteCriteria,
		p.Dielectric, p.Conductivity, p.Refractivity, p.FrequencyMHz, p.Climate, p.Polarization,
		p.TimePct, p.LocationPct, p.ConfidencePct), nil
}

// AVar evaluates the variability model at standard normal deviates zzt, zzl
// and zzc. prop and propv are live storage and are updated in place; nil
// pointers are replaced by zeroed scratch values.
func (l *Library) AVar(zzt, zzl, zzc float64, prop *Prop, propv *PropV) (float64, error) {
	nat, err := l.enter(symAVar)
	if err != nil {
		return 0, err
	}
	defer l.mu.Unlock()

	if prop == nil {
		prop = &Prop{}
	}
	if propv == nil {
		propv = &PropV{}
	}
	return nat.avar(zzt, zzl, zzc, prop, propv), nil
}

// LRProp runs the distance-dependent setup of lrprop for distance d (m),
// updating prop and propa in place.
func (l *Library) LRProp(d float64, prop *Prop, propa *PropA) error {
	nat, err := l.enter(symLRProp)
	if err != nil {
		return err
	}
	defer l.mu.Unlock()

	if prop == nil {
		prop = &Prop{}
	}
	if propa == nil {
		propa = &PropA{}
	}
	nat.lrprop(d, prop, propa)
	return nil
}

// QErfI returns the inverse complementary normal distribution value for q.
func (l *Library) QErfI(q float64) (float64, error) {
	nat, err := l.enter(symQErfI)
	if err != nil {
		return 0, err
	}
	defer l.mu.Unlock()

	return nat.qerfi(q), nil
}

// QLRA prepares prop and propv for area mode from the siting criteria kst
// (one per terminal), climate klimx and variability mode mdvarx.
func (l *Library) QLRA(kst []int32, klimx, mdvarx int32, prop *Prop, propv *PropV) error {
	nat, err := l.enter(symQLRA)
	if err != nil {
		return err
	}
	defer l.mu.Unlock()

	if prop == nil {
		prop = &Prop{}
	}
	if propv == nil {
		propv = &PropV{}
	}
	sites := append([]int32(nil), kst...)
	var first *int32
	if len(sites) > 0 {
		first = &sites[0]
	}
	nat.qlra(first, klimx, mdvarx, prop, propv)
	runtime.KeepAlive(sites)
	return nil
}

// float64Buffer copies s into a fresh contiguous buffer owned by the call.
func float64Buffer(s []float64) []float64 {
	return append([]float64(nil), s...)
}

func firstFloat64(s []float64) *float64 {
	if len(s) == 0 {
		return nil
	}
	return &s[0]
}

// decodeMode reads buf up to the first NUL, or its full capacity when the
// native code wrote none.
func decodeMode(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf)
}
