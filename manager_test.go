// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// findMonomial reports whether coefficient coeff and variable list vars
// occur among ms.
func findMonomial(t *testing.T, ms []Monomial, coeff Rational, vars []int) bool {
	t.Helper()
	for _, mono := range ms {
		if !mono.Coeff.Equal(coeff) {
			continue
		}
		if len(mono.Vars) != len(vars) {
			continue
		}
		got := append([]int(nil), mono.Vars...)
		want := append([]int(nil), vars...)
		sortInts(got)
		sortInts(want)
		match := true
		for i := range got {
			if got[i] != want[i] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

// Seed scenario 1: (v0+1)*(v0+1) = v0^2 + 2*v0 + 1 in Q-mode; v0^2 + 1 in
// mod-2 mode.
func TestSeedSquarePlusOne(t *testing.T) {
	m := New(4)
	v0 := m.MkVar(0)
	one := m.One()
	sum, err := m.Add(v0, one)
	require.NoError(t, err)
	sq, err := m.Mul(sum, sum)
	require.NoError(t, err)

	ms := m.ToMonomials(sq)
	require.True(t, findMonomial(t, ms, RatInt(1), []int{0, 0}))
	require.True(t, findMonomial(t, ms, RatInt(2), []int{0}))
	require.True(t, findMonomial(t, ms, RatInt(1), nil))
	require.Len(t, ms, 3)

	m2 := New(4, Mod2Semantics())
	v0b := m2.MkVar(0)
	oneB := m2.One()
	sumB, err := m2.Add(v0b, oneB)
	require.NoError(t, err)
	sqB, err := m2.Mul(sumB, sumB)
	require.NoError(t, err)
	msB := m2.ToMonomials(sqB)
	require.True(t, findMonomial(t, msB, RatInt(1), []int{0, 0}))
	require.True(t, findMonomial(t, msB, RatInt(1), nil))
	require.Len(t, msB, 2)
}

// Seed scenario 2: add(mul(v1,v0), mul(v0,v1)) == mul(2, mul(v0,v1)) in
// Q-mode; == 0 in mod-2 mode.
func TestSeedCommutativeCross(t *testing.T) {
	m := New(4)
	v0, v1 := m.MkVar(0), m.MkVar(1)
	a, err := m.Mul(v1, v0)
	require.NoError(t, err)
	b, err := m.Mul(v0, v1)
	require.NoError(t, err)
	lhs, err := m.Add(a, b)
	require.NoError(t, err)

	v0v1, err := m.Mul(v0, v1)
	require.NoError(t, err)
	rhs, err := m.MulScalar(RatInt(2), v0v1)
	require.NoError(t, err)

	require.Equal(t, rhs.id, lhs.id, "canonicity: same polynomial must share the same node id")

	m2 := New(4, Mod2Semantics())
	v0b, v1b := m2.MkVar(0), m2.MkVar(1)
	a2, err := m2.Mul(v1b, v0b)
	require.NoError(t, err)
	b2, err := m2.Mul(v0b, v1b)
	require.NoError(t, err)
	sum2, err := m2.Add(a2, b2)
	require.NoError(t, err)
	require.Equal(t, zeroID, sum2.id)
}

// Seed scenario 3: a = v2*v1+v0, b = v2*v0+1; trySpoly(a,b) must return a
// polynomial whose monomials are {v1, -v0*v0}.
func TestSeedSpoly(t *testing.T) {
	m := New(4)
	v0, v1, v2 := m.MkVar(0), m.MkVar(1), m.MkVar(2)

	v2v1, err := m.Mul(v2, v1)
	require.NoError(t, err)
	a, err := m.Add(v2v1, v0)
	require.NoError(t, err)

	v2v0, err := m.Mul(v2, v0)
	require.NoError(t, err)
	b, err := m.Add(v2v0, m.One())
	require.NoError(t, err)

	r, ok, err := m.TrySpoly(a, b)
	require.NoError(t, err)
	require.True(t, ok)

	ms := m.ToMonomials(r)
	require.Len(t, ms, 2)
	hasV1 := findMonomial(t, ms, RatInt(1), []int{1})
	hasNegV0Sq := findMonomial(t, ms, RatInt(-1), []int{0, 0})
	require.True(t, hasV1 || findMonomial(t, ms, RatInt(-1), []int{1}))
	require.True(t, hasNegV0Sq || findMonomial(t, ms, RatInt(1), []int{0, 0}))
}

// Seed scenario 4: reduce(v0*v0*v1 + v0, v0*v1 + 1) == 0 in Q-mode.
func TestSeedReduceToZero(t *testing.T) {
	m := New(4)
	v0, v1 := m.MkVar(0), m.MkVar(1)

	v0v0, err := m.Mul(v0, v0)
	require.NoError(t, err)
	v0v0v1, err := m.Mul(v0v0, v1)
	require.NoError(t, err)
	p, err := m.Add(v0v0v1, v0)
	require.NoError(t, err)

	v0v1, err := m.Mul(v0, v1)
	require.NoError(t, err)
	q, err := m.Add(v0v1, m.One())
	require.NoError(t, err)

	r, err := m.Reduce(p, q)
	require.NoError(t, err)
	require.Equal(t, zeroID, r.id)
}

// Seed scenario 5: degree(v0*v0*v0 + v1) == 3; freeVars == {0,1}.
func TestSeedDegreeAndFreeVars(t *testing.T) {
	m := New(4)
	v0, v1 := m.MkVar(0), m.MkVar(1)
	v0v0, err := m.Mul(v0, v0)
	require.NoError(t, err)
	v0v0v0, err := m.Mul(v0v0, v0)
	require.NoError(t, err)
	p, err := m.Add(v0v0v0, v1)
	require.NoError(t, err)

	require.Equal(t, 3, m.Degree(p))
	require.ElementsMatch(t, []int{0, 1}, m.FreeVars(p))
}

// Hitting a node ceiling that leaves no room even after a resize attempt
// must return errMemory and leave the manager's accumulated diagnostic set,
// per the same seterror/Error/Errored contract the teacher package exposes
// on BDD. Each successive power of v0 is a structurally distinct node (the
// unique table never collapses v0^k with v0^(k-1)), so repeated
// multiplication by v0 reliably exhausts a small, non-GC'd node pool.
func TestOutOfMemoryRecordsError(t *testing.T) {
	m := New(2, MaxNumNodes(10), InitialNodeCapacity(6), DisableGC())
	require.False(t, m.Errored())

	v0 := m.MkVar(0)
	p := v0
	var lastErr error
	for i := 0; i < 1000; i++ {
		next, err := m.Mul(p, v0)
		if err != nil {
			lastErr = err
			break
		}
		p = next
	}
	require.Error(t, lastErr)
	require.True(t, m.Errored())
	require.Error(t, m.Error())
}

// Seed scenario 6: 10000 random linear combinations of {v0,v1,v2}; drop
// every other handle, force GC; surviving handles' to_monomials output
// must be unchanged.
func TestSeedGCSoundness(t *testing.T) {
	m := New(4)
	v := []*Handle{m.MkVar(0), m.MkVar(1), m.MkVar(2)}
	rng := rand.New(rand.NewSource(1))

	const n = 10000
	handles := make([]*Handle, n)
	before := make([][]Monomial, n)
	for i := 0; i < n; i++ {
		acc := m.Zero()
		for j := 0; j < 3; j++ {
			c, err := m.MulScalar(RatInt(int64(rng.Intn(7)-3)), v[j])
			require.NoError(t, err)
			acc, err = m.Add(acc, c)
			require.NoError(t, err)
		}
		handles[i] = acc
		before[i] = m.ToMonomials(acc)
	}

	for i := 0; i < n; i += 2 {
		handles[i].Release()
		handles[i] = nil
	}

	m.gc()

	for i := 1; i < n; i += 2 {
		after := m.ToMonomials(handles[i])
		require.Equal(t, before[i], after)
	}
}
