// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package itm

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropLayout(t *testing.T) {
	var p Prop
	assert.Equal(t, uintptr(136), unsafe.Sizeof(p))
	assert.Equal(t, uintptr(0), unsafe.Offsetof(p.Aref))
	assert.Equal(t, uintptr(8), unsafe.Offsetof(p.Dist))
	assert.Equal(t, uintptr(16), unsafe.Offsetof(p.Hg))
	assert.Equal(t, uintptr(32), unsafe.Offsetof(p.Wn))
	assert.Equal(t, uintptr(40), unsafe.Offsetof(p.Dh))
	assert.Equal(t, uintptr(48), unsafe.Offsetof(p.Ens))
	assert.Equal(t, uintptr(56), unsafe.Offsetof(p.Gme))
	assert.Equal(t, uintptr(64), unsafe.Offsetof(p.ZgndReal))
	assert.Equal(t, uintptr(72), unsafe.Offsetof(p.ZgndImag))
	assert.Equal(t, uintptr(80), unsafe.Offsetof(p.He))
	assert.Equal(t, uintptr(96), unsafe.Offsetof(p.Dl))
	assert.Equal(t, uintptr(112), unsafe.Offsetof(p.The))
	assert.Equal(t, uintptr(128), unsafe.Offsetof(p.Kwx))
	assert.Equal(t, uintptr(132), unsafe.Offsetof(p.Mdp))
}

func TestPropVLayout(t *testing.T) {
	var p PropV
	assert.Equal(t, uintptr(24), unsafe.Sizeof(p))
	assert.Equal(t, uintptr(0), unsafe.Offsetof(p.Sgc))
	assert.Equal(t, uintptr(8), unsafe.Offsetof(p.Lvar))
	assert.Equal(t, uintptr(12), unsafe.Offsetof(p.Mdvar))
	assert.Equal(t, uintptr(16), unsafe.Offsetof(p.Klim))
}

func TestPropALayout(t *testing.T) {
	var p PropA
	assert.Equal(t, uintptr(104), unsafe.Sizeof(p))
	assert.Equal(t, uintptr(64), unsafe.Offsetof(p.Ems))
	assert.Equal(t, uintptr(72), unsafe.Offsetof(p.Dls))
	assert.Equal(t, uintptr(88), unsafe.Offsetof(p.Dla))
	assert.Equal(t, uintptr(96), unsafe.Offsetof(p.Tha))
}

func TestComplexLayout(t *testing.T) {
	var c Complex
	assert.Equal(t, uintptr(16), unsafe.Sizeof(c))
	assert.Equal(t, uintptr(8), unsafe.Offsetof(c.Imag))
	// Same layout as a Go complex128.
	assert.Equal(t, unsafe.Sizeof(complex128(0)), unsafe.Sizeof(c))
}

func TestPropSnapshotIsCopy(t *testing.T) {
	p := Prop{Aref: 1, Hg: [2]float64{5, 6}, Kwx: 2, Mdp: -1}
	snap := p.Snapshot()
	require.Len(t, snap, 14)
	assert.Equal(t, [2]float64{5, 6}, snap["hg"])
	assert.Equal(t, int32(2), snap["kwx"])

	p.Hg[0] = 99
	p.Aref = 7
	assert.Equal(t, [2]float64{5, 6}, snap["hg"])
	assert.Equal(t, 1.0, snap["aref"])
}

func TestSnapshotKeys(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{"sgc", "lvar", "mdvar", "klim"},
		keys((&PropV{}).Snapshot()))
	assert.ElementsMatch(t,
		[]string{"dlsa", "dx", "ael", "ak1", "ak2", "aed", "emd", "aes", "ems", "dls", "dla", "tha"},
		keys((&PropA{}).Snapshot()))
	assert.ElementsMatch(t, []string{"tcreal", "tcimag"}, keys((&Complex{}).Snapshot()))
}

func TestZgnd(t *testing.T) {
	p := Prop{ZgndReal: 3, ZgndImag: -4}
	assert.Equal(t, complex(3, -4), p.Zgnd().Complex128())
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
