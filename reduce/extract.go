// Package reduce extracts a reduced-size CNF formula out of a propagator's
// partial assignment: every currently-assigned variable is baked in as a
// fixed truth value, every clause it satisfies is dropped, and the
// remaining open variables are renumbered contiguously so the reduced
// formula can be handed to a fresh, smaller propagator.
package reduce

import (
	"github.com/rhartert/sprop/sat"
	"github.com/rhartert/sprop/subsume"
)

// FixedTrue and FixedFalse are the translation targets for literals whose
// variable is already assigned: they carry no variable index of their own,
// so TranslateToNew returns one of them instead of a literal in the
// reduced numbering.
const (
	FixedTrue  sat.Lit = sat.NIL - 1
	FixedFalse sat.Lit = sat.NIL - 2
)

// Extractor builds a reduced ModelBuilder from a propagator's current
// partial assignment and remembers the literal translation between the old
// and new numbering.
type Extractor struct {
	oldToNew []sat.Lit // indexed by old literal; FixedTrue/FixedFalse or a new literal
	newToOld []sat.Lit // indexed by new literal
	numVars  sat.Var   // number of variables in the reduced numbering

	reduced  *sat.ModelBuilder
	clauses  [][]sat.Lit // surviving translated clauses, after subsumption elimination
}

// Extract builds the reduced formula implied by p's current assignment. p
// must not be conflicting. The translated clauses are passed through
// subsume.EliminateSubsumed before being stored, so a clause that is already
// implied by another translated clause never reaches the reduced formula.
func Extract(p *sat.Propagator) *Extractor {
	e := &Extractor{reduced: &sat.ModelBuilder{}}
	e.makeLiteralMaps(p)

	var translated [][]sat.Lit
	translated = e.appendTranslatedBinaries(p, translated)
	translated = e.appendTranslatedLongerClauses(p, translated)

	e.reduced.ReserveVariables(e.numVars)
	for _, clause := range subsume.EliminateSubsumed(translated, e.numVars) {
		if len(clause) == 0 {
			continue
		}
		e.clauses = append(e.clauses, clause)
		e.reduced.AddClauseSlice(clause)
	}
	return e
}

// makeLiteralMaps partitions p's variables into fixed (already assigned)
// and open, assigning each open variable a new, contiguous index.
func (e *Extractor) makeLiteralMaps(p *sat.Propagator) {
	numVars := p.NumVars()
	e.oldToNew = make([]sat.Lit, 2*numVars)
	var next sat.Var

	for v := sat.Var(0); v < numVars; v++ {
		pos := sat.PositiveLit(v)
		if p.IsOpen(pos) {
			newPos := sat.PositiveLit(next)
			newNeg := sat.NegativeLit(next)
			e.oldToNew[pos] = newPos
			e.oldToNew[pos.Negate()] = newNeg
			e.newToOld = append(e.newToOld, pos, pos.Negate())
			next++
			continue
		}
		if p.IsTrue(pos) {
			e.oldToNew[pos] = FixedTrue
			e.oldToNew[pos.Negate()] = FixedFalse
		} else {
			e.oldToNew[pos] = FixedFalse
			e.oldToNew[pos.Negate()] = FixedTrue
		}
	}
	e.numVars = next
}

// translateClause maps every literal of lits through the old-to-new table,
// dropping the clause entirely if it is already satisfied and dropping
// individual literals that are fixed false. The result is nil if the
// clause is satisfied.
func (e *Extractor) translateClause(lits []sat.Lit, buf []sat.Lit) []sat.Lit {
	buf = buf[:0]
	for _, l := range lits {
		switch nl := e.oldToNew[l]; nl {
		case FixedTrue:
			return nil
		case FixedFalse:
		default:
			buf = append(buf, nl)
		}
	}
	return buf
}

// appendTranslatedBinaries walks every binary clause exactly once -- each
// is stored in both of its literals' adjacency lists, so only the l1 < l2
// direction is processed -- and appends its translation to out.
func (e *Extractor) appendTranslatedBinaries(p *sat.Propagator, out [][]sat.Lit) [][]sat.Lit {
	numVars := p.NumVars()
	for l1 := sat.Lit(0); l1 < sat.Lit(2*numVars); l1++ {
		for _, l2 := range p.BinaryPartnersOf(l1) {
			if l1 >= l2 {
				continue
			}
			translated := e.translateClause([]sat.Lit{l1, l2}, nil)
			if len(translated) > 0 {
				out = append(out, translated)
			}
		}
	}
	return out
}

// appendTranslatedLongerClauses translates every clause of length >= 3 and
// appends its translation to out.
func (e *Extractor) appendTranslatedLongerClauses(p *sat.Propagator, out [][]sat.Lit) [][]sat.Lit {
	for ref := p.FirstLongerClause(); ref < p.LongerClauseEnd(); ref = p.NextClause(ref) {
		translated := e.translateClause(p.LitsOf(ref), nil)
		if len(translated) > 0 {
			out = append(out, translated)
		}
	}
	return out
}

// ReducedModel returns the reduced formula's model builder: callers can
// call sat.NewPropagatorFromModel on it directly, or add further clauses
// first.
func (e *Extractor) ReducedModel() *sat.ModelBuilder { return e.reduced }

// ReducedClauses returns the surviving translated clauses, in the reduced
// numbering, after subsumption elimination. The returned slices must not be
// mutated by the caller.
func (e *Extractor) ReducedClauses() [][]sat.Lit { return e.clauses }

// ReducedNumVars returns the number of variables in the reduced formula.
func (e *Extractor) ReducedNumVars() sat.Var { return e.numVars }

// ReducedNumClauses returns the number of clauses in the reduced formula.
func (e *Extractor) ReducedNumClauses() int { return e.reduced.NumClauses() }

// TranslateToNew maps a literal of the original formula to the reduced
// formula's numbering, or to FixedTrue/FixedFalse if its variable was
// already assigned.
func (e *Extractor) TranslateToNew(oldLit sat.Lit) sat.Lit { return e.oldToNew[oldLit] }

// TranslateToOld maps a literal of the reduced formula back to the
// original formula's numbering.
func (e *Extractor) TranslateToOld(newLit sat.Lit) sat.Lit { return e.newToOld[newLit] }
