// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Stats summarises the current state of a manager's node pool, value pool,
// and op cache, in the spirit of the teacher's own Stats()/stdio.go.
type Stats struct {
	Nodes       int
	FreeNodes   int
	Values      int
	FreeValues  int
	CacheSize   int
	GCRuns      int
	Produced    int
}

// Stats reports the manager's current size statistics.
func (m *Manager) Stats() Stats {
	return Stats{
		Nodes:      len(m.nodes),
		FreeNodes:  m.freenum,
		Values:     len(m.values),
		FreeValues: len(m.freeValues),
		CacheSize:  len(m.opCache),
		GCRuns:     m.gcRuns,
		Produced:   m.produced,
	}
}

// DisplayManager writes a tabular summary of the manager's resource usage
// to w, the PDD analogue of the teacher's Print-family helpers in stdio.go.
func (m *Manager) DisplayManager(w io.Writer) {
	s := m.Stats()
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	fmt.Fprintf(tw, "nodes:\t%d\t(%d free)\n", s.Nodes, s.FreeNodes)
	fmt.Fprintf(tw, "values:\t%d\t(%d free)\n", s.Values, s.FreeValues)
	fmt.Fprintf(tw, "op cache:\t%d\n", s.CacheSize)
	fmt.Fprintf(tw, "gc runs:\t%d\n", s.GCRuns)
	fmt.Fprintf(tw, "produced:\t%d\n", s.Produced)
	tw.Flush()
}

// DisplayHandle writes p's expansion into monomials to w, one term per
// line, largest leading monomial first, each term's variable list reversed
// so variables print in descending level order.
func (m *Manager) DisplayHandle(w io.Writer, p *Handle) {
	m.checkHandle(p)
	monos := m.toMonomials(p.id)
	if len(monos) == 0 {
		fmt.Fprintln(w, "0")
		return
	}
	parts := make([]string, len(monos))
	for i, mono := range monos {
		parts[i] = mono.string(m)
	}
	fmt.Fprintln(w, strings.Join(parts, " + "))
}

func (mono Monomial) string(m *Manager) string {
	if len(mono.Vars) == 0 {
		return mono.Coeff.String()
	}
	vars := make([]int, len(mono.Vars))
	copy(vars, mono.Vars)
	for i, j := 0, len(vars)-1; i < j; i, j = i+1, j-1 {
		vars[i], vars[j] = vars[j], vars[i]
	}
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = fmt.Sprintf("x%d", v)
	}
	if mono.Coeff.IsOne() {
		return strings.Join(names, "*")
	}
	return mono.Coeff.String() + "*" + strings.Join(names, "*")
}
