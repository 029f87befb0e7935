// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

import "errors"

// Reserved node ids. 0 and 1 are the constants zero and one; 2 and 3 are
// sentinels used only inside the op cache and are never the id of a real
// node; real structural nodes start at firstRealID.
const (
	zeroID = 0
	oneID  = 1

	sentinelNone    = 2
	sentinelPending = 3

	firstRealID = 4
)

// maxRC is the saturating value a refcount sticks to once reached; nodes at
// maxRC are considered pinned and never swept.
const maxRC = ^uint32(0)

const (
	_MINFREENODES      = 20   // percentage of free slots under which we resize
	_DEFAULTMAXNODES   = 1 << 24 // default ceiling on the size of the node pool
	_DEFAULTNODESIZE   = 1 << 10 // initial node pool size
	_DEFAULTCACHESIZE  = 1 << 10 // initial op-cache size hint
)

// errMemory is returned by insertNode/applyOp when the node pool cannot grow
// any further (the configured ceiling has been reached) after GC and growth
// have both been tried.
var errMemory = errors.New("pdd: node ceiling reached, out of memory")
