// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

//go:build debug

package pdd

import "go.uber.org/zap"

// DefaultDebugLogger returns a development-mode zap.Logger suitable for
// passing to WithLogger. It only exists in builds tagged "debug", mirroring
// the teacher's own debug.go (+build debug) which wires up its _DEBUG/
// _LOGLEVEL stdout logging the same way.
func DefaultDebugLogger() *zap.Logger {
	l, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return l
}
