// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

import "math/big"

// Rational is the concrete realisation of the abstract coefficient type the
// PDD arithmetic kernel is specified against: an exact, arbitrary-precision
// fraction. It wraps math/big.Rat, the same package the teacher already
// reaches for (Satcount, primes.go) whenever it needs arithmetic wider than
// a machine word.
type Rational struct {
	r *big.Rat
}

// RatInt builds a Rational from a plain integer.
func RatInt(n int64) Rational {
	return Rational{r: new(big.Rat).SetInt64(n)}
}

// RatFrac builds a Rational equal to num/den.
func RatFrac(num, den int64) Rational {
	return Rational{r: big.NewRat(num, den)}
}

func ratZero() Rational { return RatInt(0) }
func ratOne() Rational  { return RatInt(1) }

func (a Rational) big() *big.Rat {
	if a.r == nil {
		return new(big.Rat)
	}
	return a.r
}

// Add returns a+b.
func (a Rational) Add(b Rational) Rational {
	return Rational{r: new(big.Rat).Add(a.big(), b.big())}
}

// Sub returns a-b.
func (a Rational) Sub(b Rational) Rational {
	return Rational{r: new(big.Rat).Sub(a.big(), b.big())}
}

// Mul returns a*b.
func (a Rational) Mul(b Rational) Rational {
	return Rational{r: new(big.Rat).Mul(a.big(), b.big())}
}

// Quo returns a/b. The caller must ensure b is non-zero; the only internal
// caller, ltQuotient, divides by a leading coefficient already known
// non-zero by lmDivides.
func (a Rational) Quo(b Rational) Rational {
	return Rational{r: new(big.Rat).Quo(a.big(), b.big())}
}

// Neg returns -a.
func (a Rational) Neg() Rational {
	return Rational{r: new(big.Rat).Neg(a.big())}
}

// Sign returns -1, 0 or 1.
func (a Rational) Sign() int { return a.big().Sign() }

// IsZero reports whether a == 0.
func (a Rational) IsZero() bool { return a.Sign() == 0 }

// IsOne reports whether a == 1.
func (a Rational) IsOne() bool { return a.big().Cmp(big.NewRat(1, 1)) == 0 }

// IsInt reports whether a has an integer value.
func (a Rational) IsInt() bool { return a.big().IsInt() }

// Equal reports whether a == b.
func (a Rational) Equal(b Rational) bool { return a.big().Cmp(b.big()) == 0 }

// Mod2 reduces a modulo 2, returning ratZero or ratOne. Only integers are
// meaningful operands for GF(2) coefficients; a non-integer is reduced via
// its numerator's parity once scaled out, which is the only case the mod-2
// evaluator can ever construct since every mod-2 value originates from
// another Mod2 call or from a literal integer.
func (a Rational) Mod2() Rational {
	if a.IsZero() {
		return ratZero()
	}
	n := a.big().Num()
	d := a.big().Denom()
	// d is odd for every value that can arise in mod-2 mode (all literals
	// are integers); dividing out d's parity is unnecessary in practice, so
	// we only need the numerator's low bit.
	_ = d
	if n.Bit(0) == 0 {
		return ratZero()
	}
	return ratOne()
}

// String renders a in the usual "num/den" (or bare integer) form.
func (a Rational) String() string {
	if a.big().IsInt() {
		return a.big().Num().String()
	}
	return a.big().RatString()
}

// key is the canonical string used to look a rational up in the manager's
// value table; two equal rationals always produce the same key regardless
// of how they were constructed, because big.Rat keeps fractions reduced.
func (a Rational) key() string { return a.String() }

// gcdReduce divides two integer rationals by the gcd of their numerators,
// the Q-mode normalisation common_factors applies to leading coefficients.
// Non-integer operands, or either operand equal to zero, are returned
// unchanged.
func gcdReduce(a, b Rational) (Rational, Rational) {
	if !a.IsInt() || !b.IsInt() || a.IsZero() || b.IsZero() {
		return a, b
	}
	an, bn := a.big().Num(), b.big().Num()
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(an), new(big.Int).Abs(bn))
	if g.Sign() == 0 || g.Cmp(big.NewInt(1)) == 0 {
		return a, b
	}
	gr := new(big.Rat).SetInt(g)
	return Rational{r: new(big.Rat).Quo(a.big(), gr)}, Rational{r: new(big.Rat).Quo(b.big(), gr)}
}
