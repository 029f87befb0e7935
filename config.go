// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

import "go.uber.org/zap"

// configs bundles the knobs a Manager can be built with. Following the
// teacher's config.go, every knob is set through a functional Option rather
// than through exported struct fields, so new options can be added without
// breaking callers.
type configs struct {
	mod2        bool
	maxNumNodes int
	nodesize    int
	cachesize   int
	disableGC   bool
	logger      *zap.Logger
}

func defaultConfigs() configs {
	return configs{
		mod2:        false,
		maxNumNodes: _DEFAULTMAXNODES,
		nodesize:    _DEFAULTNODESIZE,
		cachesize:   _DEFAULTCACHESIZE,
		disableGC:   false,
		logger:      nil,
	}
}

// Option configures a Manager at construction time.
type Option func(*configs)

// Mod2Semantics switches all coefficient arithmetic to GF(2): minus becomes
// the identity and mul uses the Karatsuba-style identity of mulMod2
// (arithmetic.go), which makes two recursive multiplications per
// equal-level step where the Q-mode case makes four. It only has an effect
// when supplied to New; switching modes on a manager that already holds
// polynomials is not supported.
func Mod2Semantics() Option {
	return func(c *configs) { c.mod2 = true }
}

// MaxNumNodes sets the hard ceiling on the size of the node pool. Once
// reached, insertNode reports an out-of-memory error instead of growing
// further. The default is 2^24.
func MaxNumNodes(n int) Option {
	return func(c *configs) {
		if n > 0 {
			c.maxNumNodes = n
		}
	}
}

// InitialNodeCapacity sets the number of node slots preallocated by New.
func InitialNodeCapacity(n int) Option {
	return func(c *configs) {
		if n > firstRealID {
			c.nodesize = n
		}
	}
}

// InitialCacheCapacity sets the number of op-cache buckets the manager
// starts with, as a sizing hint for the underlying Go map.
func InitialCacheCapacity(n int) Option {
	return func(c *configs) {
		if n > 0 {
			c.cachesize = n
		}
	}
}

// DisableGC skips garbage collection inside insertNode; running out of free
// slots then always grows the node pool (or fails with out-of-memory once
// the ceiling is hit) instead of reclaiming unreachable nodes first.
func DisableGC() Option {
	return func(c *configs) { c.disableGC = true }
}

// WithLogger attaches a zap.Logger used for Debug-level instrumentation of
// GC runs (gc.go), node-pool growth and resizes (manager.go), and the
// out-of-memory retry applyOp takes before giving up (arithmetic.go). A
// Manager built without this option logs nothing: the logger field stays
// nil and every call site guards on it, mirroring the teacher's own
// _DEBUG/_LOGLEVEL-gated log.Printf calls, just routed through a structured
// logger instead of the standard library's log package.
func WithLogger(l *zap.Logger) Option {
	return func(c *configs) { c.logger = l }
}

func (m *Manager) debugf(msg string, fields ...zap.Field) {
	if m.logger != nil {
		m.logger.Debug(msg, fields...)
	}
}
