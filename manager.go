// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

import "go.uber.org/zap"

// dkey is the content of a decision node, used as the unique-table key for
// hash-consing: two decision nodes with the same (level, lo, hi) are always
// the same node.
type dkey struct {
	level  int
	lo, hi int
}

// Manager owns every node, value, and cache belonging to one family of
// polynomials. A Manager is not safe for concurrent use (spec §5): all
// operations on a given Manager must be serialised by the caller.
type Manager struct {
	configs

	nodes  []pddNode
	unique map[dkey]int

	freepos int // head of the free-node list, or internalFree if empty
	freenum int

	values      []Rational
	freeValues  []int
	valueNodes  map[string]int
	freezeValue int // index into values[] of the most recently materialised rational, or -1

	opCache map[cacheKey]cacheEntry

	evalStack []int

	markLevel uint32

	varnum    int
	var2level []int
	level2var []int
	var2pdd   []int

	produced int
	gcRuns   int

	err error
}

// New creates a manager with numVars variables, pre-allocating one pinned
// decision node per variable at consecutive levels 0..numVars-1.
func New(numVars int, opts ...Option) *Manager {
	cfg := defaultConfigs()
	for _, o := range opts {
		o(&cfg)
	}
	m := &Manager{
		configs:     cfg,
		nodes:       make([]pddNode, firstRealID, cfg.nodesize),
		unique:      make(map[dkey]int, cfg.cachesize),
		freepos:     internalFree,
		valueNodes:  make(map[string]int),
		freezeValue: -1,
		opCache:     make(map[cacheKey]cacheEntry, cfg.cachesize),
		varnum:      numVars,
		var2level:   make([]int, numVars),
		level2var:   make([]int, numVars),
		var2pdd:     make([]int, numVars),
	}
	// ids 0..firstRealID-1 are reserved; 0 and 1 are the value nodes for
	// the constants zero and one, both pinned at maxRC; 2 and 3 are never
	// real nodes and are left zeroed.
	m.nodes[zeroID] = pddNode{valueIdx: 0, refcount: maxRC}
	m.nodes[oneID] = pddNode{valueIdx: 1, refcount: maxRC}
	m.nodes[sentinelNone] = pddNode{valueIdx: -1, lo: internalFree}
	m.nodes[sentinelPending] = pddNode{valueIdx: -1, lo: internalFree}
	m.values = []Rational{ratZero(), ratOne()}
	m.valueNodes[ratZero().key()] = zeroID
	m.valueNodes[ratOne().key()] = oneID
	m.growNodePool(cfg.nodesize)

	for v := 0; v < numVars; v++ {
		m.var2level[v] = v
		m.level2var[v] = v
	}
	m.rebuildVarPins()
	return m
}

// Close releases resources held by the manager. It exists for symmetry with
// Go's usual resource-lifetime conventions; unlike a single Handle, a
// Manager is typically long-lived and explicitly scoped by its owner, so
// its cleanup is explicit rather than left to a finalizer. It also resets
// freezeValue, per the §9 open-question resolution recorded in DESIGN.md.
func (m *Manager) Close() {
	m.freezeValue = -1
	m.nodes = nil
	m.unique = nil
	m.values = nil
	m.valueNodes = nil
	m.opCache = nil
	m.evalStack = nil
}

// Varnum returns the number of variables the manager was created with.
func (m *Manager) Varnum() int { return m.varnum }

// growNodePool appends n fresh, free slots to the node pool and pushes them
// onto the front of the free list, so the new slots pop in ascending order
// of id ahead of any slots already on the list. gc's top-down sweep rebuilds
// the whole list so that it pops low ids first.
func (m *Manager) growNodePool(n int) {
	old := len(m.nodes)
	grown := make([]pddNode, old+n)
	copy(grown, m.nodes)
	m.nodes = grown
	for i := len(m.nodes) - 1; i >= old; i-- {
		m.nodes[i] = pddNode{lo: internalFree, hi: m.freepos}
		m.freepos = i
		m.freenum++
	}
	m.debugf("grew node pool", zap.Int("size", len(m.nodes)))
}

// allocNode pops a free slot from the node pool, running GC and/or growth
// first if none is available. It never fails to find room unless both GC
// and growth leave the pool empty and growth would breach maxNumNodes, in
// which case it reports errMemory.
func (m *Manager) allocNode() (int, error) {
	if m.freepos == internalFree {
		if !m.disableGC {
			m.gc()
		}
		if (m.freenum*100)/len(m.nodes) <= _MINFREENODES || m.freepos == internalFree {
			if err := m.resize(); err != nil && m.freepos == internalFree {
				m.seterror(err)
				return -1, err
			}
		}
		if m.freepos == internalFree {
			m.seterror(errMemory)
			return -1, errMemory
		}
	}
	id := m.freepos
	m.freepos = m.nodes[id].hi
	m.freenum--
	return id, nil
}

// resize grows the node pool by 50%, capped at maxNumNodes.
func (m *Manager) resize() error {
	old := len(m.nodes)
	if old >= m.maxNumNodes {
		return errMemory
	}
	next := old + old/2
	if next <= old {
		next = old + 1
	}
	if next > m.maxNumNodes {
		next = m.maxNumNodes
	}
	if next <= old {
		return errMemory
	}
	m.debugf("starting resize", zap.Int("from", old), zap.Int("to", next))
	m.growNodePool(next - old)
	m.debugf("end resize", zap.Int("size", len(m.nodes)))
	return nil
}

// insertNode is the sole path for creating structural (decision) nodes. It
// consults the unique table first; on a miss it allocates a fresh slot,
// populates it, and records it in the unique table.
func (m *Manager) insertNode(level, lo, hi int) (int, error) {
	key := dkey{level, lo, hi}
	if id, ok := m.unique[key]; ok {
		return id, nil
	}
	id, err := m.allocNode()
	if err != nil {
		return -1, err
	}
	m.nodes[id] = pddNode{level: level, lo: lo, hi: hi, valueIdx: -1}
	m.unique[key] = id
	m.produced++
	return id, nil
}

// makeNode enforces zero-suppression: a node whose hi branch is the zero
// constant carries no information on x_level and collapses to lo. It also
// asserts the level ordering between a node and its branches.
func (m *Manager) makeNode(level, lo, hi int) (int, error) {
	if hi == zeroID {
		return lo, nil
	}
	if !m.isValue(lo) && m.level(lo) >= level {
		violate("decision-node-level", "level(lo)=%d >= level(self)=%d", m.level(lo), level)
	}
	if !m.isValue(hi) && m.level(hi) > level {
		violate("decision-node-level", "level(hi)=%d > level(self)=%d", m.level(hi), level)
	}
	return m.insertNode(level, lo, hi)
}

// rebuildVarPins (re)creates the pinned per-variable decision nodes
// var2pdd[v], each at level var2level[v] with lo=zero, hi=one, and pins
// them at maxRC so they are never swept.
func (m *Manager) rebuildVarPins() {
	for v := 0; v < m.varnum; v++ {
		id, err := m.insertNode(m.var2level[v], zeroID, oneID)
		if err != nil {
			// allocNode grows the pool as needed, so this fails only when
			// the pins alone exceed maxNumNodes.
			panic(err)
		}
		m.nodes[id].refcount = maxRC
		m.var2pdd[v] = id
	}
}

// push/pop implement the evaluation-stack GC-root discipline of spec §5:
// ids must be pushed before any call that might allocate (and so might
// trigger GC), and every recursive arm balances what it pushed before
// returning.
func (m *Manager) push(id int) int {
	m.evalStack = append(m.evalStack, id)
	return id
}

func (m *Manager) pop(n int) {
	m.evalStack = m.evalStack[:len(m.evalStack)-n]
}

// incRef/decRef are the saturating reference-count primitives of spec §4.4.
func (m *Manager) incRef(id int) {
	n := &m.nodes[id]
	if n.refcount != maxRC {
		n.refcount++
	}
}

func (m *Manager) decRef(id int) {
	n := &m.nodes[id]
	if n.refcount != maxRC && n.refcount > 0 {
		n.refcount--
	}
}

// SetLevel2Var installs a new variable/level permutation. It is only valid
// immediately after New, before any arithmetic has produced nodes beyond
// the initial variable pins: the spec's monomial ordering is fixed
// lexicographic-by-level and dynamic reordering in the presence of live
// polynomials is explicitly out of scope (§1 Non-goals).
func (m *Manager) SetLevel2Var(perm []int) {
	if len(perm) != m.varnum {
		violate("precondition", "SetLevel2Var: permutation length %d != varnum %d", len(perm), m.varnum)
	}
	if m.produced != m.varnum || len(m.valueNodes) != 2 {
		violate("precondition", "SetLevel2Var: manager already has live polynomials beyond the variable pins")
	}
	seen := make([]bool, m.varnum)
	for _, v := range perm {
		if v < 0 || v >= m.varnum || seen[v] {
			violate("precondition", "SetLevel2Var: %v is not a permutation of [0,%d)", perm, m.varnum)
		}
		seen[v] = true
	}
	for lvl, v := range perm {
		m.level2var[lvl] = v
		m.var2level[v] = lvl
	}
	m.unique = make(map[dkey]int, len(m.unique))
	m.opCache = make(map[cacheKey]cacheEntry, len(m.opCache))
	for i := firstRealID; i < len(m.nodes); i++ {
		m.nodes[i] = pddNode{lo: internalFree, hi: m.freepos}
		m.freepos = i
	}
	m.freenum = len(m.nodes) - firstRealID
	m.produced = 0
	m.rebuildVarPins()
}
