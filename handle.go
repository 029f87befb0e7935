// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

import "runtime"

// Handle is an owning, refcounted reference to one node of a Manager's DAG:
// the sole user-visible representation of a polynomial. The zero Handle is
// not valid; every Handle must come from a Manager method.
//
// Like the teacher's Node, a Handle piggybacks on the host garbage
// collector: when the last reference to a Handle is dropped, a finalizer
// releases the manager-side refcount. Unlike Node, a Handle explicitly
// carries its owning Manager, so that passing it to a different Manager is
// detected and rejected rather than silently corrupting unrelated state.
type Handle struct {
	m  *Manager
	id int
}

func (m *Manager) wrap(id int) *Handle {
	m.incRef(id)
	h := &Handle{m: m, id: id}
	runtime.SetFinalizer(h, (*Handle).finalize)
	return h
}

func (h *Handle) finalize() {
	h.m.decRef(h.id)
}

// Clone returns a second, independent owning reference to the same node.
func (h *Handle) Clone() *Handle {
	h.check()
	return h.m.wrap(h.id)
}

// Release drops this handle's refcount immediately, instead of waiting for
// the garbage collector to run the finalizer. Using h after Release is a
// programmer error.
func (h *Handle) Release() {
	h.check()
	runtime.SetFinalizer(h, nil)
	h.m.decRef(h.id)
}

func (h *Handle) check() {
	if h == nil || h.m == nil {
		violate("handle", "use of a zero-value Handle")
	}
}

func (m *Manager) checkHandle(h *Handle) {
	if h == nil || h.m == nil {
		violate("handle", "use of a zero-value Handle")
	}
	if h.m != m {
		violate("cross-manager", "handle belongs to a different Manager")
	}
}

// Zero returns a handle to the constant polynomial 0.
func (m *Manager) Zero() *Handle { return m.wrap(zeroID) }

// One returns a handle to the constant polynomial 1.
func (m *Manager) One() *Handle { return m.wrap(oneID) }

// MkVar returns a handle to the pinned decision node for variable i.
func (m *Manager) MkVar(i int) *Handle {
	if i < 0 || i >= m.varnum {
		violate("precondition", "MkVar: variable %d out of range [0,%d)", i, m.varnum)
	}
	return m.wrap(m.var2pdd[i])
}

// MkVal returns a handle to the constant rational r.
func (m *Manager) MkVal(r Rational) (*Handle, error) {
	id, err := m.imkVal(r)
	if err != nil {
		return nil, err
	}
	return m.wrap(id), nil
}

// Add returns p+q.
func (m *Manager) Add(p, q *Handle) (*Handle, error) {
	m.checkHandle(p)
	m.checkHandle(q)
	id, err := m.applyOp(p.id, q.id, opAdd)
	if err != nil {
		return nil, err
	}
	return m.wrap(id), nil
}

// Sub returns p-q.
func (m *Manager) Sub(p, q *Handle) (*Handle, error) {
	m.checkHandle(p)
	m.checkHandle(q)
	negQ, err := m.minus(q.id)
	if err != nil {
		return nil, err
	}
	m.push(negQ)
	id, err := m.applyOp(p.id, negQ, opAdd)
	m.pop(1)
	if err != nil {
		return nil, err
	}
	return m.wrap(id), nil
}

// Mul returns p*q.
func (m *Manager) Mul(p, q *Handle) (*Handle, error) {
	m.checkHandle(p)
	m.checkHandle(q)
	id, err := m.applyOp(p.id, q.id, opMul)
	if err != nil {
		return nil, err
	}
	return m.wrap(id), nil
}

// Reduce returns p reduced modulo q (p mod q).
func (m *Manager) Reduce(p, q *Handle) (*Handle, error) {
	m.checkHandle(p)
	m.checkHandle(q)
	id, err := m.applyOp(p.id, q.id, opReduce)
	if err != nil {
		return nil, err
	}
	return m.wrap(id), nil
}

// Minus returns -p.
func (m *Manager) Minus(p *Handle) (*Handle, error) {
	m.checkHandle(p)
	id, err := m.minus(p.id)
	if err != nil {
		return nil, err
	}
	return m.wrap(id), nil
}

// AddScalar returns r+p.
func (m *Manager) AddScalar(r Rational, p *Handle) (*Handle, error) {
	m.checkHandle(p)
	rid, err := m.imkVal(r)
	if err != nil {
		return nil, err
	}
	m.push(rid)
	id, err := m.applyOp(rid, p.id, opAdd)
	m.pop(1)
	if err != nil {
		return nil, err
	}
	return m.wrap(id), nil
}

// MulScalar returns r*p.
func (m *Manager) MulScalar(r Rational, p *Handle) (*Handle, error) {
	m.checkHandle(p)
	rid, err := m.imkVal(r)
	if err != nil {
		return nil, err
	}
	m.push(rid)
	id, err := m.applyOp(rid, p.id, opMul)
	m.pop(1)
	if err != nil {
		return nil, err
	}
	return m.wrap(id), nil
}

// IsLinear reports whether every monomial of p has total degree <= 1.
func (m *Manager) IsLinear(p *Handle) bool {
	m.checkHandle(p)
	return m.isLinear(p.id)
}

// Lt reports whether the leading term of a is lexicographically less than
// the leading term of b.
func (m *Manager) Lt(a, b *Handle) bool {
	m.checkHandle(a)
	m.checkHandle(b)
	return m.lt(a.id, b.id)
}

// DifferentLeadingTerm reports whether a and b have different leading
// monomials.
func (m *Manager) DifferentLeadingTerm(a, b *Handle) bool {
	m.checkHandle(a)
	m.checkHandle(b)
	return m.differentLeadingTerm(a.id, b.id)
}

// DagSize returns the number of distinct shared nodes reachable from p, not
// counting the constants 0 and 1.
func (m *Manager) DagSize(p *Handle) int {
	m.checkHandle(p)
	return m.dagSize(p.id)
}

// TreeSize returns the number of nodes in p's unfolded expression tree.
func (m *Manager) TreeSize(p *Handle) int {
	m.checkHandle(p)
	return m.treeSize(p.id)
}

// Degree returns the maximal total degree among p's monomials.
func (m *Manager) Degree(p *Handle) int {
	m.checkHandle(p)
	return m.degree(p.id)
}

// FreeVars returns the set of variable indices appearing in p.
func (m *Manager) FreeVars(p *Handle) []int {
	m.checkHandle(p)
	return m.freeVars(p.id)
}

// TrySpoly attempts to build the S-polynomial of a and b. The second
// return value is false when their leading monomials share no variable.
func (m *Manager) TrySpoly(a, b *Handle) (*Handle, bool, error) {
	m.checkHandle(a)
	m.checkHandle(b)
	id, ok, err := m.trySpoly(a.id, b.id)
	if err != nil || !ok {
		return nil, ok, err
	}
	return m.wrap(id), true, nil
}

// CommonFactors exposes the variable lists and leading coefficients needed
// to build the S-polynomial of a and b without constructing it.
func (m *Manager) CommonFactors(a, b *Handle) (p, q []int, pc, qc Rational, ok bool) {
	m.checkHandle(a)
	m.checkHandle(b)
	return m.commonFactors(a.id, b.id)
}

// ToMonomials expands p into its list of monomials.
func (m *Manager) ToMonomials(p *Handle) []Monomial {
	m.checkHandle(p)
	return m.toMonomials(p.id)
}
