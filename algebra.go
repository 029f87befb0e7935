// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

// lmDivides reports whether the leading monomial of p divides that of q,
// walking both hi-spines in step (spec §4.3).
func (m *Manager) lmDivides(p, q int) bool {
	for {
		if m.isValue(p) {
			return true
		}
		if m.isValue(q) {
			return false
		}
		lp, lq := m.level(p), m.level(q)
		if lp == lq {
			p, q = m.hi(p), m.hi(q)
			continue
		}
		if lp > lq {
			return false
		}
		q = m.hi(q)
	}
}

// ltQuotient returns a PDD representing -lt(b)/lt(a), under the
// precondition lmDivides(a, b); it is used by reduceOnMatch so that
// add(b, mul(ltQuotient(a,b), a)) cancels the leading term of b.
func (m *Manager) ltQuotient(a, b int) (int, error) {
	if m.isValue(a) && m.isValue(b) {
		return m.imkVal(m.valueOf(b).Neg().Quo(m.valueOf(a)))
	}
	if !m.isValue(a) && !m.isValue(b) && m.level(a) == m.level(b) {
		return m.ltQuotient(m.hi(a), m.hi(b))
	}
	// level(a) < level(b) (guaranteed by the precondition): descend on
	// b's hi spine and prepend the variable bound to b's level.
	m.push(a)
	m.push(b)
	sub, err := m.ltQuotient(a, m.hi(b))
	if err != nil {
		m.pop(2)
		return -1, err
	}
	m.push(sub)
	res, err := m.makeNode(m.level(b), zeroID, sub)
	m.pop(3)
	return res, err
}

// leadingSpine returns the sequence of levels visited along n's hi chain
// down to its leading value; repeated levels encode a power of that
// variable.
func (m *Manager) leadingSpine(n int) []int {
	var levels []int
	for !m.isValue(n) {
		levels = append(levels, m.level(n))
		n = m.hi(n)
	}
	return levels
}

func (m *Manager) leadingCoeff(n int) Rational {
	for !m.isValue(n) {
		n = m.hi(n)
	}
	return m.valueOf(n)
}

func levelCounts(levels []int) map[int]int {
	c := make(map[int]int, len(levels))
	for _, l := range levels {
		c[l]++
	}
	return c
}

// commonFactors computes the variable lists p, q (as repeated level
// numbers) such that x^p*lm(a) = x^q*lm(b) = lcm(lm(a),lm(b)), and the
// corresponding leading coefficients, reduced by their gcd in Q-mode. The
// final bool reports whether a and b's leading monomials share any
// variable at all; if not there is nothing to superpose on and p, q, pc,
// qc are zero values.
func (m *Manager) commonFactors(a, b int) (p, q []int, pc, qc Rational, ok bool) {
	spineA := m.leadingSpine(a)
	spineB := m.leadingSpine(b)
	countA := levelCounts(spineA)
	countB := levelCounts(spineB)

	shared := false
	for lvl := range countA {
		if countB[lvl] > 0 {
			shared = true
			break
		}
	}
	if !shared {
		return nil, nil, Rational{}, Rational{}, false
	}

	seen := make(map[int]bool, len(countA)+len(countB))
	var levels []int
	for _, l := range spineA {
		if !seen[l] {
			seen[l] = true
			levels = append(levels, l)
		}
	}
	for _, l := range spineB {
		if !seen[l] {
			seen[l] = true
			levels = append(levels, l)
		}
	}

	for _, lvl := range levels {
		ca, cb := countA[lvl], countB[lvl]
		lcmCount := ca
		if cb > lcmCount {
			lcmCount = cb
		}
		for i := 0; i < lcmCount-ca; i++ {
			p = append(p, lvl)
		}
		for i := 0; i < lcmCount-cb; i++ {
			q = append(q, lvl)
		}
	}

	pc, qc = m.leadingCoeff(a), m.leadingCoeff(b)
	if !m.mod2 {
		pc, qc = gcdReduce(pc, qc)
	}
	return p, q, pc, qc, true
}

// mulByMonomial computes n * coeff * product(var(l) for l in levels),
// folding mul over the variable list.
func (m *Manager) mulByMonomial(n int, coeff Rational, levels []int) (int, error) {
	m.push(n)
	coeffID, err := m.imkVal(coeff)
	if err != nil {
		m.pop(1)
		return -1, err
	}
	m.push(coeffID)
	res, err := m.applyOp(n, coeffID, opMul)
	if err != nil {
		m.pop(2)
		return -1, err
	}
	m.pop(2)
	for _, lvl := range levels {
		v := m.var2pdd[m.level2var[lvl]]
		m.push(res)
		m.push(v)
		res, err = m.applyOp(res, v, opMul)
		m.pop(2)
		if err != nil {
			return -1, err
		}
	}
	return res, nil
}

// spoly returns a*(qc*x^p) - b*(pc*x^q), the critical-pair combination that
// cancels the joint leading term of a and b (x^p*lm(a) = x^q*lm(b), as
// computed by commonFactors).
func (m *Manager) spoly(a, b int, p, q []int, pc, qc Rational) (int, error) {
	t1, err := m.mulByMonomial(a, qc, p)
	if err != nil {
		return -1, err
	}
	m.push(t1)
	t2, err := m.mulByMonomial(b, pc, q)
	if err != nil {
		m.pop(1)
		return -1, err
	}
	m.push(t2)
	negT2, err := m.minus(t2)
	if err != nil {
		m.pop(2)
		return -1, err
	}
	m.push(negT2)
	res, err := m.applyOp(t1, negT2, opAdd)
	m.pop(3)
	return res, err
}

// trySpoly wraps commonFactors and spoly: it returns (id, true, nil) when a
// and b's leading monomials share a variable, (0, false, nil) otherwise.
func (m *Manager) trySpoly(a, b int) (int, bool, error) {
	p, q, pc, qc, ok := m.commonFactors(a, b)
	if !ok {
		return 0, false, nil
	}
	res, err := m.spoly(a, b, p, q, pc, qc)
	if err != nil {
		return -1, false, err
	}
	return res, true, nil
}

// lt is a lexicographic comparison of leading monomials: a value is always
// less than any variable term; at equal levels, it descends on lo/lo if
// hi/hi already coincide, otherwise on hi/hi; unequal levels, the higher
// level is the greater term.
func (m *Manager) lt(a, b int) bool {
	for {
		av, bv := m.isValue(a), m.isValue(b)
		if av && bv {
			return false
		}
		if av {
			return true
		}
		if bv {
			return false
		}
		la, lb := m.level(a), m.level(b)
		if la != lb {
			return la < lb
		}
		if m.hi(a) == m.hi(b) {
			a, b = m.lo(a), m.lo(b)
		} else {
			a, b = m.hi(a), m.hi(b)
		}
	}
}

// differentLeadingTerm reports whether a and b have different leading
// monomials.
func (m *Manager) differentLeadingTerm(a, b int) bool {
	for {
		av, bv := m.isValue(a), m.isValue(b)
		if av && bv {
			return false
		}
		if av != bv {
			return true
		}
		if m.level(a) != m.level(b) {
			return true
		}
		a, b = m.hi(a), m.hi(b)
	}
}

// isLinear reports whether every monomial of p has total degree at most 1.
// A node whose hi-child sits at the same level as itself is one obvious
// witness of degree >= 2 (a repeated variable, e.g. v0*v0), but so is any
// longer hi-chain through different levels (e.g. v0*v1): both encode two
// variables multiplied together. degree(p) already counts the longest
// hi-chain regardless of level, so isLinear is just a threshold on it.
func (m *Manager) isLinear(p int) bool {
	return m.degree(p) <= 1
}

// degree returns the maximal total degree among p's monomials: the longest
// run of hi-edges reachable from p, memoized per node to avoid
// recomputation across the shared DAG.
func (m *Manager) degree(p int) int {
	memo := make(map[int]int)
	var rec func(int) int
	rec = func(n int) int {
		if m.isValue(n) {
			return 0
		}
		if d, ok := memo[n]; ok {
			return d
		}
		d := 1 + rec(m.hi(n))
		if lo := rec(m.lo(n)); lo > d {
			d = lo
		}
		memo[n] = d
		return d
	}
	return rec(p)
}

// dagSize counts the number of distinct nodes reachable from p, counting
// shared subgraphs once. The reserved constants 0 and 1 are not counted.
func (m *Manager) dagSize(p int) int {
	m.newMarkEpoch()
	count := 0
	var rec func(int)
	rec = func(n int) {
		if n < firstRealID || m.ismarked(n) {
			return
		}
		m.setmark(n)
		count++
		if m.isValue(n) {
			return
		}
		rec(m.lo(n))
		rec(m.hi(n))
	}
	rec(p)
	return count
}

// treeSize counts nodes as if p were unfolded into a tree, without sharing:
// it may be exponentially larger than dagSize for a heavily shared DAG. The
// two queries answer different questions.
func (m *Manager) treeSize(p int) int {
	if m.isValue(p) {
		return 1
	}
	return 1 + m.treeSize(m.lo(p)) + m.treeSize(m.hi(p))
}

// freeVars returns the set of variable indices appearing anywhere in p,
// expressed as a sorted slice.
func (m *Manager) freeVars(p int) []int {
	m.newMarkEpoch()
	seen := make(map[int]bool)
	var rec func(int)
	rec = func(n int) {
		if n < firstRealID || m.ismarked(n) {
			return
		}
		m.setmark(n)
		if m.isValue(n) {
			return
		}
		seen[m.level2var[m.level(n)]] = true
		rec(m.lo(n))
		rec(m.hi(n))
	}
	rec(p)
	vars := make([]int, 0, len(seen))
	for v := range seen {
		vars = append(vars, v)
	}
	for i := 1; i < len(vars); i++ {
		for j := i; j > 0 && vars[j-1] > vars[j]; j-- {
			vars[j-1], vars[j] = vars[j], vars[j-1]
		}
	}
	return vars
}

// Monomial is one term of a polynomial expanded out of PDD form: a
// coefficient together with the (possibly repeated) variable indices of
// its monomial, in ascending level order (lowest level first).
type Monomial struct {
	Coeff Rational
	Vars  []int
}

// toMonomials expands p into its list of monomials (spec §4.7). A value
// yields one monomial with an empty variable list, dropped entirely if the
// value is zero; a decision node at level ℓ returns the monomials of hi(p)
// each extended by var(p), followed by the monomials of lo(p).
func (m *Manager) toMonomials(p int) []Monomial {
	if m.isValue(p) {
		v := m.valueOf(p)
		if v.IsZero() {
			return nil
		}
		return []Monomial{{Coeff: v}}
	}
	varIdx := m.level2var[m.level(p)]
	hiMonos := m.toMonomials(m.hi(p))
	out := make([]Monomial, 0, len(hiMonos))
	for _, mono := range hiMonos {
		vars := make([]int, len(mono.Vars)+1)
		copy(vars, mono.Vars)
		vars[len(mono.Vars)] = varIdx
		out = append(out, Monomial{Coeff: mono.Coeff, Vars: vars})
	}
	out = append(out, m.toMonomials(m.lo(p))...)
	return out
}
