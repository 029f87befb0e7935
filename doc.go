// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package pdd defines a concrete type for Polynomial Decision Diagrams (PDD), a
data structure used to represent multivariate polynomials over the rationals
(or, optionally, over GF(2)) as a shared, canonical DAG.

Basics

Each Manager owns a fixed number of variables, declared when it is
initialized with New, and every variable is bound to a position in the
interval [0..Varnum), called a level. Multiple managers can coexist, each
with its own variables, node table, and caches; a Handle obtained from one
manager must never be passed to another, doing so panics.

Most operations on a Manager return a Handle: an owning, refcounted
reference to a node in the manager's DAG. A decision node at level ℓ with
branches lo and hi denotes the polynomial x_ℓ·hi + lo; a value node denotes
a rational constant. Two handles denoting the same polynomial always share
the same underlying node id, the hash-consing ("unique table") property
that makes the arithmetic kernel fast, since every sub-polynomial that
recurs anywhere in the manager is stored and computed exactly once.

Automatic memory management

A Handle piggybacks on the host runtime's garbage collector: dropping the
last reference lets a finalizer release the manager-side refcount
automatically. Handle.Release does the same thing eagerly, and Handle.Clone
increments the refcount when a second, independent owner is needed.
Internally, the manager also runs its own mark-and-sweep collector over the
node table, value pool, and memoization cache whenever the unique table
runs out of free slots.
*/
package pdd
