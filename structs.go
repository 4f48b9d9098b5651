// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package itm

// The types below mirror the native aggregates field for field. Order, widths
// and array lengths are part of the binary contract with the library; do not
// reorder or resize them. structs_test.go pins every offset.

// Prop mirrors prop_type: the propagation geometry and intermediate state.
type Prop struct {
	Aref     float64    // reference attenuation
	Dist     float64    // path distance
	Hg       [2]float64 // antenna structural heights
	Wn       float64    // wave number
	Dh       float64    // terrain irregularity parameter
	Ens      float64    // surface refractivity
	Gme      float64    // effective earth curvature
	ZgndReal float64    // surface transfer impedance, real part
	ZgndImag float64    // surface transfer impedance, imaginary part
	He       [2]float64 // effective antenna heights
	Dl       [2]float64 // horizon distances
	The      [2]float64 // horizon elevation angles
	Kwx      int32      // error indicator
	Mdp      int32      // controlling mode
}

// Snapshot copies the current field values, keyed by native field name. The
// result is a copy and must not be used as live storage for a native call.
func (p *Prop) Snapshot() map[string]any {
	return map[string]any{
		"aref":     p.Aref,
		"dist":     p.Dist,
		"hg":       p.Hg,
		"wn":       p.Wn,
		"dh":       p.Dh,
		"ens":      p.Ens,
		"gme":      p.Gme,
		"zgndreal": p.ZgndReal,
		"zgndimag": p.ZgndImag,
		"he":       p.He,
		"dl":       p.Dl,
		"the":      p.The,
		"kwx":      p.Kwx,
		"mdp":      p.Mdp,
	}
}

// PropV mirrors propv_type: variability parameters.
type PropV struct {
	Sgc   float64 // standard deviation of the confidence
	Lvar  int32   // which parameters still need recomputing
	Mdvar int32   // variability mode
	Klim  int32   // radio climate
}

func (p *PropV) Snapshot() map[string]any {
	return map[string]any{
		"sgc":   p.Sgc,
		"lvar":  p.Lvar,
		"mdvar": p.Mdvar,
		"klim":  p.Klim,
	}
}

// PropA mirrors propa_type: distance breakpoints and attenuation
// coefficients for line-of-sight, diffraction and scatter.
type PropA struct {
	Dlsa float64
	Dx   float64
	Ael  float64
	Ak1  float64
	Ak2  float64
	Aed  float64
	Emd  float64
	Aes  float64
	Ems  float64
	Dls  [2]float64
	Dla  float64
	Tha  float64
}

func (p *PropA) Snapshot() map[string]any {
	return map[string]any{
		"dlsa": p.Dlsa,
		"dx":   p.Dx,
		"ael":  p.Ael,
		"ak1":  p.Ak1,
		"ak2":  p.Ak2,
		"aed":  p.Aed,
		"emd":  p.Emd,
		"aes":  p.Aes,
		"ems":  p.Ems,
		"dls":  p.Dls,
		"dla":  p.Dla,
		"tha":  p.Tha,
	}
}

// Complex mirrors tcomplex.
type Complex struct {
	Real float64
	Imag float64
}

func (c *Complex) Snapshot() map[string]any {
	return map[string]any{
		"tcreal": c.Real,
		"tcimag": c.Imag,
	}
}

// Complex128 converts to a Go complex value.
func (c Complex) Complex128() complex128 {
	return complex(c.Real, c.Imag)
}

// Zgnd returns the surface transfer impedance held in p.
func (p *Prop) Zgnd() Complex {
	return Complex{Real: p.ZgndReal, Imag: p.ZgndImag}
}
