// Package subsume removes subsumed clauses from a CNF formula: a clause c1
// subsumes c2 when every literal of c1 also appears in c2, which makes c2
// redundant (any assignment satisfying c1 also satisfies c2).
//
// The eliminator never compares clauses pairwise. It runs in two phases:
// first every clause, regardless of whether it will itself survive, is
// parked in the watch list of exactly one of its own literals; only once
// every clause is registered does the second phase test each candidate
// against the clauses watching one of the candidate's own literals. Any
// clause that could subsume a candidate must be watching a literal the
// candidate also contains, so walking every one of the candidate's own
// literals' watch lists is enough to find it -- and since registration
// precedes testing, this holds regardless of which of two clauses occurs
// first in the input.
package subsume

import "github.com/rhartert/sprop/sat"

// EliminateSubsumed returns a new slice parallel to clauses: each entry is
// either the original clause (if nothing in clauses subsumes it) or an
// empty slice of the same underlying type (if it is subsumed). Detection is
// independent of input order; among a run of identical clauses, the one
// occurring first in clauses survives and the rest are eliminated.
//
// numVars must cover every variable occurring in clauses.
func EliminateSubsumed[C ~[]sat.Lit](clauses []C, numVars sat.Var) []C {
	c := newChecker(clauses, numVars)
	c.registerAll()

	result := make([]C, len(clauses))
	for i, clause := range clauses {
		if c.isSubsumed(i, clause) {
			result[i] = clause[:0]
		} else {
			result[i] = clause
		}
	}
	return result
}

type checker[C ~[]sat.Lit] struct {
	clauses    []C
	watchLists [][]int // indexed by literal: indices into clauses
	inClause   *sat.StampSet[sat.Lit]
}

func newChecker[C ~[]sat.Lit](clauses []C, numVars sat.Var) *checker[C] {
	return &checker[C]{
		clauses:    clauses,
		watchLists: make([][]int, 2*numVars),
		inClause:   sat.NewStampSet[sat.Lit](2 * int(numVars)),
	}
}

// registerAll parks every non-empty clause under one of its own literals.
// It runs for the whole input before isSubsumed tests any clause, so a
// candidate that occurs before its subsumer in the input still finds it.
func (c *checker[C]) registerAll() {
	for i, clause := range c.clauses {
		if len(clause) == 0 {
			continue
		}
		watch := clause[0]
		c.watchLists[watch] = append(c.watchLists[watch], i)
	}
}

// isSubsumed reports whether some other clause in the input is a subset of
// candidate (at index idx).
func (c *checker[C]) isSubsumed(idx int, candidate C) bool {
	if len(candidate) == 0 {
		return false
	}
	c.inClause.Assign(candidate)

	for _, l := range candidate {
		for _, otherIdx := range c.watchLists[l] {
			if otherIdx == idx {
				continue
			}
			if c.subsumes(otherIdx, c.clauses[otherIdx], idx, candidate) {
				return true
			}
		}
	}
	return false
}

// subsumes reports whether other (at otherIdx) is a subset of candidate (at
// candidateIdx). Among clauses of equal length -- including exact
// duplicates -- only the lower-indexed one counts as a subsumer, so that of
// a run of duplicates exactly one survives.
func (c *checker[C]) subsumes(otherIdx int, other C, candidateIdx int, candidate C) bool {
	if len(other) > len(candidate) {
		return false
	}
	if len(other) == len(candidate) && otherIdx >= candidateIdx {
		return false
	}
	for _, ol := range other {
		if !c.inClause.Contains(ol) {
			return false
		}
	}
	return true
}
