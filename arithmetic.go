// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

import "go.uber.org/zap"

// applyOp is the entry point wrapping the memoized recursive worker with
// the retry-after-try_gc discipline of spec §4.2: at most two attempts,
// with a try_gc in between, before the out-of-memory error is propagated.
func (m *Manager) applyOp(a, b int, op opcode) (int, error) {
	res, err := m.applyRec(a, b, op)
	if err == nil {
		return res, nil
	}
	if err != errMemory {
		return -1, err
	}
	m.debugf("retrying apply after try_gc", zap.Int("a", a), zap.Int("b", b), zap.Uint8("op", uint8(op)))
	m.tryGC()
	return m.applyRec(a, b, op)
}

// applyRec is the canonical BDD/ZDD-style memoized recursion, specialised
// per operator. It applies the structural short-circuits and the canonical
// argument-order rule of spec §4.2 before consulting the op cache.
func (m *Manager) applyRec(p, q int, op opcode) (int, error) {
	switch op {
	case opAdd:
		if p == zeroID {
			return q, nil
		}
		if q == zeroID {
			return p, nil
		}
		if m.isValue(p) && m.isValue(q) {
			return m.imkVal(m.valueOf(p).Add(m.valueOf(q)))
		}
	case opMul:
		if p == zeroID || q == zeroID {
			return zeroID, nil
		}
		if p == oneID {
			return q, nil
		}
		if q == oneID {
			return p, nil
		}
		if m.isValue(p) && m.isValue(q) {
			return m.imkVal(m.valueOf(p).Mul(m.valueOf(q)))
		}
	case opReduce:
		if q == zeroID {
			return p, nil
		}
		if m.isValue(p) {
			return p, nil
		}
		if !m.isValue(q) && m.level(p) < m.level(q) {
			return p, nil
		}
	}

	if op == opAdd || op == opMul {
		if m.isValue(p) || (!m.isValue(q) && m.level(p) < m.level(q)) {
			p, q = q, p
		}
	}

	key := cacheKey{p, q, op}
	if res, ok := m.cacheLookup(key); ok {
		return res, nil
	}
	m.cacheReserve(key)

	var res int
	var err error
	switch op {
	case opAdd:
		res, err = m.addRec(p, q)
	case opMul:
		res, err = m.mulRec(p, q)
	case opReduce:
		res, err = m.reduceRec(p, q)
	}
	if err != nil {
		m.cacheAbort(key)
		return -1, err
	}
	m.cacheFill(key, res)
	return res, nil
}

// addRec implements the three recursive cases of spec §4.2 "add". By the
// time it runs, the structural short-circuits have already handled the
// value+value and either-operand-zero cases, and canonical ordering
// guarantees that, if q is a value, p is not, and otherwise level(p) >=
// level(q).
func (m *Manager) addRec(p, q int) (int, error) {
	lp := m.level(p)
	if m.isValue(q) {
		m.push(p)
		m.push(q)
		lo, err := m.applyOp(m.lo(p), q, opAdd)
		if err != nil {
			m.pop(2)
			return -1, err
		}
		m.push(lo)
		res, err := m.makeNode(lp, lo, m.hi(p))
		m.pop(3)
		return res, err
	}
	lq := m.level(q)
	if lp == lq {
		m.push(p)
		m.push(q)
		lo, err := m.applyOp(m.lo(p), m.lo(q), opAdd)
		if err != nil {
			m.pop(2)
			return -1, err
		}
		m.push(lo)
		hi, err := m.applyOp(m.hi(p), m.hi(q), opAdd)
		if err != nil {
			m.pop(3)
			return -1, err
		}
		m.push(hi)
		res, err := m.makeNode(lp, lo, hi)
		m.pop(4)
		return res, err
	}
	// lp > lq, guaranteed by canonical ordering.
	m.push(p)
	m.push(q)
	lo, err := m.applyOp(m.lo(p), q, opAdd)
	if err != nil {
		m.pop(2)
		return -1, err
	}
	m.push(lo)
	res, err := m.makeNode(lp, lo, m.hi(p))
	m.pop(3)
	return res, err
}

// mulRec implements the recursive cases of spec §4.2 "mul".
func (m *Manager) mulRec(p, q int) (int, error) {
	lp := m.level(p)
	if m.isValue(q) || m.level(q) < lp {
		return m.mulDistribute(p, q, lp)
	}
	// lp == level(q): the interesting case.
	if m.mod2 {
		return m.mulMod2(p, q, lp)
	}
	return m.mulQ(p, q, lp)
}

// mulDistribute handles "q is a value, p decision" and "level(p) >
// level(q)": both distribute q over p's branches.
func (m *Manager) mulDistribute(p, q, lp int) (int, error) {
	m.push(p)
	m.push(q)
	lo, err := m.applyOp(m.lo(p), q, opMul)
	if err != nil {
		m.pop(2)
		return -1, err
	}
	m.push(lo)
	hi, err := m.applyOp(m.hi(p), q, opMul)
	if err != nil {
		m.pop(3)
		return -1, err
	}
	m.push(hi)
	res, err := m.makeNode(lp, lo, hi)
	m.pop(4)
	return res, err
}

// mulQ is the default (Q-mode) equal-level multiplication: p = x*a+b,
// q = x*c+d, compute the four cross products and lift an extra factor of x
// out of ad+bc if it turns out to still carry one.
func (m *Manager) mulQ(p, q, lvl int) (int, error) {
	a, b, c, d := m.hi(p), m.lo(p), m.hi(q), m.lo(q)
	m.push(p)
	m.push(q)
	ac, err := m.applyOp(a, c, opMul)
	if err != nil {
		m.pop(2)
		return -1, err
	}
	m.push(ac)
	ad, err := m.applyOp(a, d, opMul)
	if err != nil {
		m.pop(3)
		return -1, err
	}
	m.push(ad)
	bc, err := m.applyOp(b, c, opMul)
	if err != nil {
		m.pop(4)
		return -1, err
	}
	m.push(bc)
	bd, err := m.applyOp(b, d, opMul)
	if err != nil {
		m.pop(5)
		return -1, err
	}
	m.push(bd)
	n, err := m.applyOp(ad, bc, opAdd)
	if err != nil {
		m.pop(6)
		return -1, err
	}
	m.push(n)
	if !m.isValue(n) && m.level(n) == lvl {
		hiPrime, err := m.applyOp(ac, m.hi(n), opAdd)
		if err != nil {
			m.pop(7)
			return -1, err
		}
		m.push(hiPrime)
		inner, err := m.makeNode(lvl, m.lo(n), hiPrime)
		if err != nil {
			m.pop(8)
			return -1, err
		}
		m.push(inner)
		res, err := m.makeNode(lvl, bd, inner)
		m.pop(9)
		return res, err
	}
	inner, err := m.makeNode(lvl, n, ac)
	if err != nil {
		m.pop(7)
		return -1, err
	}
	m.push(inner)
	res, err := m.makeNode(lvl, bd, inner)
	m.pop(8)
	return res, err
}

// mulMod2 is the GF(2) equal-level multiplication, using the identity
// (xa+b)(xc+d) mod 2 = x*((a+b)(c+d)+bd) + bd, which needs two recursive
// multiplications where the Q-mode case (mulQ) needs four.
func (m *Manager) mulMod2(p, q, lvl int) (int, error) {
	a, b, c, d := m.hi(p), m.lo(p), m.hi(q), m.lo(q)
	m.push(p)
	m.push(q)
	bd, err := m.applyOp(b, d, opMul)
	if err != nil {
		m.pop(2)
		return -1, err
	}
	m.push(bd)
	u, err := m.applyOp(a, b, opAdd)
	if err != nil {
		m.pop(3)
		return -1, err
	}
	m.push(u)
	v, err := m.applyOp(c, d, opAdd)
	if err != nil {
		m.pop(4)
		return -1, err
	}
	m.push(v)
	uv, err := m.applyOp(u, v, opMul)
	if err != nil {
		m.pop(5)
		return -1, err
	}
	m.push(uv)
	w, err := m.applyOp(uv, bd, opAdd)
	if err != nil {
		m.pop(6)
		return -1, err
	}
	m.push(w)
	res, err := m.makeNode(lvl, bd, w)
	m.pop(7)
	return res, err
}

// reduceRec implements the recursive cases of spec §4.2 "reduce". The
// structural short-circuits (q==0, p a value, level(p)<level(q)) have
// already run in applyRec.
func (m *Manager) reduceRec(p, q int) (int, error) {
	if m.level(p) > m.level(q) {
		m.push(p)
		m.push(q)
		lo, err := m.applyOp(m.lo(p), q, opReduce)
		if err != nil {
			m.pop(2)
			return -1, err
		}
		m.push(lo)
		hi, err := m.applyOp(m.hi(p), q, opReduce)
		if err != nil {
			m.pop(3)
			return -1, err
		}
		m.push(hi)
		res, err := m.makeNode(m.level(p), lo, hi)
		m.pop(4)
		return res, err
	}
	return m.reduceOnMatch(p, q)
}

// reduceOnMatch handles the equal-level case: repeatedly cancel p's leading
// monomial against q's leading term until q's leading monomial no longer
// divides p's.
func (m *Manager) reduceOnMatch(p, q int) (int, error) {
	m.push(q) // protects q across every iteration of the loop below
	for m.lmDivides(q, p) {
		m.push(p)
		qt, err := m.ltQuotient(q, p)
		if err != nil {
			m.pop(2) // p, q
			return -1, err
		}
		m.push(qt)
		r, err := m.applyOp(qt, q, opMul)
		if err != nil {
			m.pop(3) // p, qt, q
			return -1, err
		}
		m.push(r)
		next, err := m.applyOp(p, r, opAdd)
		if err != nil {
			m.pop(4) // p, qt, r, q
			return -1, err
		}
		m.pop(3) // p, qt, r -- q stays pushed for the next iteration
		p = next
	}
	m.pop(1) // q
	return p, nil
}

// minus implements unary negation: the identity in mod-2 mode, otherwise a
// recursive negation of every value node, memoized under opMinus (q is
// unused and fixed to sentinelNone so it shares the (p, op) cache key
// space without colliding with the binary operators). It is the retry-
// wrapped entry point, mirroring applyOp's two-attempt-then-propagate
// discipline (spec §4.2, §7).
func (m *Manager) minus(p int) (int, error) {
	if m.mod2 {
		return p, nil
	}
	res, err := m.minusApply(p)
	if err == nil {
		return res, nil
	}
	if err != errMemory {
		return -1, err
	}
	m.tryGC()
	return m.minusApply(p)
}

func (m *Manager) minusApply(p int) (int, error) {
	key := cacheKey{p, sentinelNone, opMinus}
	if res, ok := m.cacheLookup(key); ok {
		return res, nil
	}
	m.cacheReserve(key)
	res, err := m.minusRec(p)
	if err != nil {
		m.cacheAbort(key)
		return -1, err
	}
	m.cacheFill(key, res)
	return res, nil
}

func (m *Manager) minusRec(p int) (int, error) {
	if m.isValue(p) {
		return m.imkVal(m.valueOf(p).Neg())
	}
	m.push(p)
	lo, err := m.minus(m.lo(p))
	if err != nil {
		m.pop(1)
		return -1, err
	}
	m.push(lo)
	hi, err := m.minus(m.hi(p))
	if err != nil {
		m.pop(2)
		return -1, err
	}
	m.push(hi)
	res, err := m.makeNode(m.level(p), lo, hi)
	m.pop(3)
	return res, err
}
