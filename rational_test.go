// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRationalArithmetic(t *testing.T) {
	a := RatFrac(1, 2)
	b := RatFrac(1, 3)

	require.True(t, a.Add(b).Equal(RatFrac(5, 6)))
	require.True(t, a.Sub(b).Equal(RatFrac(1, 6)))
	require.True(t, a.Mul(b).Equal(RatFrac(1, 6)))
	require.True(t, a.Quo(b).Equal(RatFrac(3, 2)))
	require.True(t, a.Neg().Equal(RatFrac(-1, 2)))
	require.False(t, a.IsInt())
	require.True(t, RatInt(4).IsInt())
}

func TestRationalMod2(t *testing.T) {
	require.True(t, RatInt(0).Mod2().IsZero())
	require.True(t, RatInt(2).Mod2().IsZero())
	require.True(t, RatInt(1).Mod2().IsOne())
	require.True(t, RatInt(3).Mod2().IsOne())
	require.True(t, RatInt(-1).Mod2().IsOne())
}

func TestGcdReduce(t *testing.T) {
	a, b := gcdReduce(RatInt(6), RatInt(9))
	require.True(t, a.Equal(RatInt(2)))
	require.True(t, b.Equal(RatInt(3)))

	c, d := gcdReduce(RatFrac(1, 2), RatInt(3))
	require.True(t, c.Equal(RatFrac(1, 2)))
	require.True(t, d.Equal(RatInt(3)))
}
