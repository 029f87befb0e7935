// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

import "go.uber.org/zap"

// gc runs the mark-and-sweep collector described in spec §4.6. It is
// triggered from allocNode whenever the free list is exhausted (unless
// disableGC is set).
func (m *Manager) gc() {
	m.gcRuns++
	m.debugf("starting GC", zap.Int("nodes", len(m.nodes)), zap.Int("free", m.freenum))

	m.newMarkEpoch()
	for _, id := range m.evalStack {
		m.markrec(id)
	}
	for id := range m.nodes {
		if m.nodes[id].refcount > 0 {
			m.markrec(id)
		}
	}

	m.freepos = internalFree
	m.freenum = 0
	newUnique := make(map[dkey]int, len(m.unique))

	for id := len(m.nodes) - 1; id >= firstRealID; id-- {
		n := &m.nodes[id]
		if n.lo == internalFree {
			// already free: chain it onto the rebuilt free list
			n.hi = m.freepos
			m.freepos = id
			m.freenum++
			continue
		}
		if n.valueIdx >= 0 && int(n.valueIdx) == m.freezeValue {
			// held back to avoid thrashing the value table within one
			// operation, even though currently unreachable.
			continue
		}
		if m.ismarked(id) {
			if n.valueIdx < 0 {
				newUnique[dkey{n.level, n.lo, n.hi}] = id
			}
			continue
		}
		if n.valueIdx >= 0 {
			delete(m.valueNodes, m.values[n.valueIdx].key())
			m.freeValueSlot(int(n.valueIdx))
		}
		*n = pddNode{lo: internalFree, hi: m.freepos}
		m.freepos = id
		m.freenum++
	}
	m.unique = newUnique

	// Partition the op cache: keep pending entries (active recursion
	// frames), drop completed ones (they are just memoised results and can
	// be recomputed).
	for k, e := range m.opCache {
		if !e.pending {
			delete(m.opCache, k)
		}
	}

	m.debugf("end GC", zap.Int("free", m.freenum))
}

// tryGC is the one-shot collector run between the two attempts of apply on
// an out-of-memory signal. Unlike a routine gc, it flushes the op cache
// unconditionally: any entry still marked pending belonged to the aborted
// attempt (whose call stack has already unwound via the returned error) and
// so is no longer an active recursion frame protecting anything.
func (m *Manager) tryGC() {
	m.gc()
	m.opCache = make(map[cacheKey]cacheEntry, len(m.opCache))
}

func (m *Manager) markrec(id int) {
	if id < firstRealID || m.ismarked(id) || m.nodes[id].lo == internalFree {
		return
	}
	m.setmark(id)
	if m.nodes[id].valueIdx >= 0 {
		return
	}
	m.markrec(m.nodes[id].lo)
	m.markrec(m.nodes[id].hi)
}
