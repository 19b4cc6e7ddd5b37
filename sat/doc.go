// Package sat implements the core of a CDCL (conflict-driven clause
// learning) SAT engine: a two-watched-literal unit-propagation engine with
// decision levels, conflict analysis (first-UIP learning with redundancy
// minimization), and non-chronological backjumping.
//
// The package makes no decisions of its own and runs no search loop.
// Callers drive the engine by pushing and popping decision levels and by
// resolving conflicts; branching heuristics, restart policy, clause
// database reduction, and DIMACS/file I/O are external concerns.
package sat
