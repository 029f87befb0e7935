// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package exprlang

import (
	"testing"

	"github.com/dalzilio/pdd"
	"github.com/stretchr/testify/require"
)

func TestParseBasic(t *testing.T) {
	m := pdd.New(2)
	h, err := Parse(m, "(x0 + 1) * (x0 + 1)")
	require.NoError(t, err)

	ms := m.ToMonomials(h)
	require.Len(t, ms, 3)
}

func TestParseRationalLiteral(t *testing.T) {
	m := pdd.New(1)
	h, err := Parse(m, "1/2 * x0")
	require.NoError(t, err)
	require.False(t, h == nil)
}

func TestParseSyntaxError(t *testing.T) {
	m := pdd.New(1)
	_, err := Parse(m, "x0 + ")
	require.Error(t, err)
}
