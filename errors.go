// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

import (
	"fmt"

	"go.uber.org/multierr"
)

// InvariantError is the panic value raised when an internal invariant or a
// precondition is violated: a malformed handle, a handle used against the
// wrong manager, or a broken structural constraint on the node store. These
// are programmer errors, never recoverable conditions, and are never caught
// internally.
type InvariantError struct {
	Name string // short tag describing what broke, e.g. "decision-node-level" or "cross-manager"
	msg  string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("pdd: invariant %s violated: %s", e.Name, e.msg)
}

func violate(name, format string, args ...interface{}) {
	panic(&InvariantError{Name: name, msg: fmt.Sprintf(format, args...)})
}

// seterror records a non-fatal diagnostic against the manager. The first
// error to be set sticks; once m.err is non-nil, further calls fold the new
// error in without ever clearing or replacing the original complaint, the
// same "first failure wins, keep accumulating detail" behaviour the teacher
// package gives its own Error()/Errored()/seterror trio.
func (m *Manager) seterror(err error) {
	if err == nil {
		return
	}
	m.err = multierr.Append(m.err, err)
}

// Error returns the accumulated diagnostic error for the manager, or nil if
// nothing has gone wrong yet. It never includes InvariantError panics, which
// are never recovered.
func (m *Manager) Error() error {
	return m.err
}

// Errored reports whether the manager has ever recorded a diagnostic error.
func (m *Manager) Errored() bool {
	return m.err != nil
}

// CheckInvariants walks every live node reachable from the unique table and
// the variable pins and reports every structural invariant violation found,
// combined with multierr.Combine rather than stopping at the first one. It
// is a diagnostic helper, not part of the arithmetic hot path; it exists for
// tests that want to assert "GC soundness" and similar properties over the
// whole manager rather than a single handle.
func (m *Manager) CheckInvariants() error {
	var errs []error
	for id := firstRealID; id < len(m.nodes); id++ {
		n := &m.nodes[id]
		if n.lo == internalFree {
			continue
		}
		if n.valueIdx >= 0 {
			if n.lo != 0 || n.hi != 0 {
				errs = append(errs, fmt.Errorf("value node %d has non-zero lo/hi", id))
			}
			continue
		}
		if n.hi == zeroID {
			errs = append(errs, fmt.Errorf("decision node %d has hi == zero, should have been suppressed", id))
		}
		if !m.isValue(n.lo) && m.level(n.lo) >= n.level {
			errs = append(errs, fmt.Errorf("node %d has level(lo) >= level(self)", id))
		}
		if !m.isValue(n.hi) && m.level(n.hi) > n.level {
			errs = append(errs, fmt.Errorf("node %d has level(hi) > level(self)", id))
		}
	}
	return multierr.Combine(errs...)
}
