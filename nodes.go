// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

// internalFree is the sentinel value stored in node.lo while a slot sits on
// the free list, mirroring the teacher's own "low == -1 means free" node
// encoding in hudd.go/hkernel.go.
const internalFree = -1

// pddNode is a single slot in the manager's node pool. A decision node has
// valueIdx == -1 and denotes x_level*hi + lo; a value node has level == 0,
// lo == 0, hi == 0, and valueIdx indexing into the manager's values pool.
type pddNode struct {
	level    int
	lo, hi   int
	valueIdx int32

	refcount uint32
	mark     uint32
}

func (m *Manager) isValue(id int) bool {
	return m.nodes[id].valueIdx >= 0
}

func (m *Manager) level(id int) int {
	return m.nodes[id].level
}

func (m *Manager) lo(id int) int {
	return m.nodes[id].lo
}

func (m *Manager) hi(id int) int {
	return m.nodes[id].hi
}

func (m *Manager) valueOf(id int) Rational {
	return m.values[m.nodes[id].valueIdx]
}

// ismarked/setmark implement the mark-epoch scheme of spec §4.5: a
// single manager-wide mark counter and a per-node field avoid clearing a
// full visited-set on every traversal.
func (m *Manager) ismarked(id int) bool {
	return m.nodes[id].mark == m.markLevel
}

func (m *Manager) setmark(id int) {
	m.nodes[id].mark = m.markLevel
}

// newMarkEpoch starts a fresh traversal: every node's mark field is
// considered "unmarked" relative to the new markLevel unless explicitly set
// again. On wrap-around of the counter we fall back to physically clearing
// every node's mark field once, then resume from 1.
func (m *Manager) newMarkEpoch() {
	m.markLevel++
	if m.markLevel == 0 {
		for i := range m.nodes {
			m.nodes[i].mark = 0
		}
		m.markLevel = 1
	}
}
