package sat

import "fmt"

// Lit is a literal: for variable v, the positive literal is 2*v and the
// negative literal is 2*v+1.
type Lit uint32

// Var is a variable index.
type Var = Lit

// ClauseRef identifies a long clause (length >= 3) as an index into the
// propagator's contiguous clause store. References are stable for the
// lifetime of the propagator: clauses are appended, never moved.
type ClauseRef = Lit

// ClauseLen is the length of a clause.
type ClauseLen = Lit

// NIL is a sentinel value denoting "no literal/clause/variable". It is the
// maximum representable Lit, so it can never collide with a real literal for
// any formula with fewer than NIL/2 variables.
const NIL Lit = 1<<32 - 1

// MaxVars is the largest number of variables this package supports. It is
// kept well below 2^31 so that 2*numVars never overflows a uint32 when
// iterating over every literal.
const MaxVars Var = 1 << 30

// Negate returns the opposite literal.
func (l Lit) Negate() Lit { return l ^ 1 }

// Var returns the variable of the literal.
func (l Lit) Var() Var { return l / 2 }

// IsPositive reports whether l is a positive literal (i.e. not a negation).
func (l Lit) IsPositive() bool { return l&1 == 0 }

// IsNegative reports whether l is a negative literal.
func (l Lit) IsNegative() bool { return l&1 != 0 }

// Absolute returns the positive version of the literal.
func (l Lit) Absolute() Lit { return l &^ 1 }

func (l Lit) String() string {
	if l == NIL {
		return "NIL"
	}
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.Var())
	}
	return fmt.Sprintf("!%d", l.Var())
}

// PositiveLit returns the positive literal of variable v.
func PositiveLit(v Var) Lit { return 2 * v }

// NegativeLit returns the negative literal of variable v.
func NegativeLit(v Var) Lit { return 2*v + 1 }

// Negate is the free-function form of Lit.Negate, handy when used as a
// value (e.g. passed as a function argument the way the reference's
// lit::negate is used in test helpers).
func Negate(l Lit) Lit { return l.Negate() }
