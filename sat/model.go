package sat

import (
	"fmt"
	"sort"
)

// ModelBuilder accumulates clauses into a CNF formula and classifies them by
// length (unary / binary / longer) as they are finalized. It is used to
// initialize a Propagator; it has no notion of a trail or propagation of its
// own.
type ModelBuilder struct {
	currentLit Lit

	unaryClauses  []Lit
	binaryClauses [][]Lit
	longerClauses [][]Lit

	clauseBuffer []Lit
}

// AddVariable adds a new variable to the model and returns its positive
// literal. Manually adding variables is not necessary: adding a clause
// automatically grows the variable count to cover the largest variable used.
func (b *ModelBuilder) AddVariable() Lit {
	result := b.currentLit
	b.currentLit += 2
	return result
}

// ReserveVariables ensures the model has at least n variables.
func (b *ModelBuilder) ReserveVariables(n Var) {
	newMax := 2 * n
	if newMax > b.currentLit {
		b.currentLit = newMax
	}
}

// NumVars returns the number of variables currently in the model.
func (b *ModelBuilder) NumVars() Var {
	return b.currentLit.Var()
}

// AddLiteral appends a literal to the clause currently being built.
func (b *ModelBuilder) AddLiteral(l Lit) {
	b.clauseBuffer = append(b.clauseBuffer, l)
}

// AddLiterals appends several literals to the clause currently being built.
func (b *ModelBuilder) AddLiterals(ls ...Lit) {
	b.clauseBuffer = append(b.clauseBuffer, ls...)
}

// FinalizeClause finalizes the clause currently being built and adds it to
// the model, returning ErrEmptyClause if the clause is empty.
func (b *ModelBuilder) FinalizeClause() error {
	return b.finalize()
}

// AddClause adds a complete clause built from the given literals.
func (b *ModelBuilder) AddClause(ls ...Lit) error {
	b.clauseBuffer = append(b.clauseBuffer, ls...)
	return b.finalize()
}

// AddClauseSlice adds a complete clause built from a slice of literals; it
// behaves exactly like AddClause but avoids a variadic copy for callers that
// already have a slice.
func (b *ModelBuilder) AddClauseSlice(ls []Lit) error {
	b.clauseBuffer = append(b.clauseBuffer, ls...)
	return b.finalize()
}

// finalize sorts and deduplicates the pending clause buffer, drops
// tautologies, grows the variable count, and classifies the clause by
// length.
func (b *ModelBuilder) finalize() error {
	if len(b.clauseBuffer) == 0 {
		return ErrEmptyClause
	}

	sort.Slice(b.clauseBuffer, func(i, j int) bool { return b.clauseBuffer[i] < b.clauseBuffer[j] })
	b.clauseBuffer = dedupSorted(b.clauseBuffer)

	for i := 1; i < len(b.clauseBuffer); i++ {
		if b.clauseBuffer[i-1].Negate() == b.clauseBuffer[i] {
			b.clauseBuffer = b.clauseBuffer[:0]
			return nil // tautology: silently dropped
		}
	}

	if last := b.clauseBuffer[len(b.clauseBuffer)-1]; last >= b.currentLit {
		b.currentLit = last.Absolute() + 2
	}

	switch len(b.clauseBuffer) {
	case 1:
		b.unaryClauses = append(b.unaryClauses, b.clauseBuffer[0])
	case 2:
		b.addBinary(b.clauseBuffer[0], b.clauseBuffer[1])
	default:
		clause := make([]Lit, len(b.clauseBuffer))
		copy(clause, b.clauseBuffer)
		b.longerClauses = append(b.longerClauses, clause)
	}
	b.clauseBuffer = b.clauseBuffer[:0]
	return nil
}

func (b *ModelBuilder) addBinary(l1, l2 Lit) {
	for Lit(len(b.binaryClauses)) < b.currentLit {
		b.binaryClauses = append(b.binaryClauses, nil)
	}
	b.binaryClauses[l1] = append(b.binaryClauses[l1], l2)
	b.binaryClauses[l2] = append(b.binaryClauses[l2], l1)
}

// NumClauses returns the total number of clauses currently in the model.
func (b *ModelBuilder) NumClauses() int {
	binaryCount := 0
	for _, list := range b.binaryClauses {
		binaryCount += len(list)
	}
	return len(b.unaryClauses) + binaryCount/2 + len(b.longerClauses)
}

// dedupSorted removes adjacent duplicates from a sorted slice in place.
func dedupSorted(ls []Lit) []Lit {
	if len(ls) == 0 {
		return ls
	}
	j := 0
	for i := 1; i < len(ls); i++ {
		if ls[i] != ls[j] {
			j++
			ls[j] = ls[i]
		}
	}
	return ls[:j+1]
}

// VerifyTrail checks that the given trail is a complete, valid assignment
// for the model: it must contain exactly one literal per variable and must
// satisfy every clause. Returns nil if the trail is valid, otherwise an
// error describing the first violation found.
func (b *ModelBuilder) VerifyTrail(fullTrail []Lit) error {
	n := b.NumVars()
	if Var(len(fullTrail)) != n {
		return fmt.Errorf("trail has wrong length: expected %d, got %d", n, len(fullTrail))
	}
	seen := make([]bool, n)
	assignment := make([]bool, n)
	for _, l := range fullTrail {
		v := l.Var()
		if v >= n {
			return fmt.Errorf("trail contains variable %d which is not in the model", v)
		}
		if seen[v] {
			return fmt.Errorf("trail contains variable %d multiple times", v)
		}
		seen[v] = true
		if l.IsPositive() {
			assignment[v] = true
		}
	}
	return b.VerifyAssignment(assignment)
}

// VerifyAssignment checks that the given assignment (assignment[v] == true
// means variable v is true) satisfies every clause in the model.
func (b *ModelBuilder) VerifyAssignment(assignment []bool) error {
	n := b.NumVars()
	if Var(len(assignment)) != n {
		return fmt.Errorf("assignment has wrong length: expected %d, got %d", n, len(assignment))
	}
	for _, l := range b.unaryClauses {
		v := l.Var()
		if assignment[v] != l.IsPositive() {
			return fmt.Errorf("unary clause %d is not satisfied in assignment", l)
		}
	}
	for l1 := Lit(0); int(l1) < len(b.binaryClauses); l1++ {
		v1 := l1.Var()
		if assignment[v1] == l1.IsPositive() {
			continue
		}
		for _, l2 := range b.binaryClauses[l1] {
			v2 := l2.Var()
			if assignment[v2] != l2.IsPositive() {
				return fmt.Errorf("binary clause %d %d is not satisfied in assignment", l1, l2)
			}
		}
	}
	satisfies := func(l Lit) bool { return assignment[l.Var()] == l.IsPositive() }
	for _, clause := range b.longerClauses {
		satisfied := false
		for _, l := range clause {
			if satisfies(l) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return fmt.Errorf("longer clause %v is not satisfied in assignment", clause)
		}
	}
	return nil
}
