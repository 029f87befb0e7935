// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func randomPoly(t *testing.T, m *Manager, vars []*Handle, rng *rand.Rand, terms int) *Handle {
	t.Helper()
	acc := m.Zero()
	for i := 0; i < terms; i++ {
		term, err := m.MkVal(RatInt(int64(rng.Intn(9) - 4)))
		require.NoError(t, err)
		for _, v := range vars {
			if rng.Intn(2) == 0 {
				term, err = m.Mul(term, v)
				require.NoError(t, err)
			}
		}
		acc, err = m.Add(acc, term)
		require.NoError(t, err)
	}
	return acc
}

func TestRingLawsQ(t *testing.T) {
	m := New(3)
	vars := []*Handle{m.MkVar(0), m.MkVar(1), m.MkVar(2)}
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 30; i++ {
		p := randomPoly(t, m, vars, rng, 4)
		q := randomPoly(t, m, vars, rng, 4)
		r := randomPoly(t, m, vars, rng, 4)

		pq, err := m.Add(p, q)
		require.NoError(t, err)
		qp, err := m.Add(q, p)
		require.NoError(t, err)
		require.Equal(t, pq.id, qp.id, "add must be commutative")

		pqr1, err := m.Add(pq, r)
		require.NoError(t, err)
		qr, err := m.Add(q, r)
		require.NoError(t, err)
		pqr2, err := m.Add(p, qr)
		require.NoError(t, err)
		require.Equal(t, pqr1.id, pqr2.id, "add must be associative")

		pmq, err := m.Mul(p, q)
		require.NoError(t, err)
		qmp, err := m.Mul(q, p)
		require.NoError(t, err)
		require.Equal(t, pmq.id, qmp.id, "mul must be commutative")

		pmqr1, err := m.Mul(pmq, r)
		require.NoError(t, err)
		qmr, err := m.Mul(q, r)
		require.NoError(t, err)
		pmqr2, err := m.Mul(p, qmr)
		require.NoError(t, err)
		require.Equal(t, pmqr1.id, pmqr2.id, "mul must be associative")

		// distributivity: p*(q+r) == p*q + p*r
		lhs, err := m.Mul(p, qr)
		require.NoError(t, err)
		pr, err := m.Mul(p, r)
		require.NoError(t, err)
		rhs, err := m.Add(pmq, pr)
		require.NoError(t, err)
		require.Equal(t, lhs.id, rhs.id, "mul must distribute over add")

		negP, err := m.Minus(p)
		require.NoError(t, err)
		zero, err := m.Add(p, negP)
		require.NoError(t, err)
		require.Equal(t, zeroID, zero.id, "add(p, minus(p)) must be zero")
	}
}

func TestRingLawsMod2(t *testing.T) {
	m := New(3, Mod2Semantics())
	vars := []*Handle{m.MkVar(0), m.MkVar(1), m.MkVar(2)}
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 20; i++ {
		p := randomPoly(t, m, vars, rng, 4)
		self, err := m.Add(p, p)
		require.NoError(t, err)
		require.Equal(t, zeroID, self.id, "add(p,p) must be zero in mod-2 mode")

		negP, err := m.Minus(p)
		require.NoError(t, err)
		require.Equal(t, p.id, negP.id, "minus must be the identity in mod-2 mode")
	}
}

func TestZeroSuppression(t *testing.T) {
	m := New(3)
	vars := []*Handle{m.MkVar(0), m.MkVar(1), m.MkVar(2)}
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		_ = randomPoly(t, m, vars, rng, 5)
		require.NoError(t, m.CheckInvariants(), "zero-suppression and level ordering must hold after every build")
	}
}

func TestIsLinear(t *testing.T) {
	m := New(3)
	v0, v1 := m.MkVar(0), m.MkVar(1)

	require.True(t, m.IsLinear(v0))

	sum, err := m.Add(v0, v1)
	require.NoError(t, err)
	require.True(t, m.IsLinear(sum), "v0+v1 has total degree 1 in every monomial")

	square, err := m.Mul(v0, v0)
	require.NoError(t, err)
	require.False(t, m.IsLinear(square), "v0*v0 has total degree 2")

	cross, err := m.Mul(v0, v1)
	require.NoError(t, err)
	require.False(t, m.IsLinear(cross), "v0*v1 has total degree 2 even though the factors sit at different levels")
}

func TestRefcountPreservation(t *testing.T) {
	m := New(2)
	v0, v1 := m.MkVar(0), m.MkVar(1)
	p, err := m.Add(v0, v1)
	require.NoError(t, err)

	before := m.nodes[p.id].refcount
	clones := make([]*Handle, 10)
	for i := range clones {
		clones[i] = p.Clone()
	}
	for _, c := range clones {
		c.Release()
	}
	require.Equal(t, before, m.nodes[p.id].refcount)
}

func TestReductionShrinksLeadingTerm(t *testing.T) {
	m := New(3)
	v0, v1 := m.MkVar(0), m.MkVar(1)
	v0v0, err := m.Mul(v0, v0)
	require.NoError(t, err)
	p, err := m.Add(v0v0, v1)
	require.NoError(t, err)
	v0v1, err := m.Mul(v0, v1)
	require.NoError(t, err)
	q, err := m.Add(v0v1, m.One())
	require.NoError(t, err)

	r, err := m.Reduce(p, q)
	require.NoError(t, err)
	if r.id != p.id {
		require.False(t, m.lmDivides(q.id, r.id))
	}
}
