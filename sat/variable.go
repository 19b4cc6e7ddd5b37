package sat

// variableState tracks the assignment state of a single variable: whether
// it is open, and if not, its polarity, decision level, and trail position.
//
// A C-style implementation might pack level and polarity into one signed
// word with sign-bit tricks; Go gives no portable, readable way to do that,
// so this uses three separate fields answering the same queries instead.
type variableState struct {
	level    int32 // -1 if open, decision level otherwise
	polarity uint8 // 0 if variable is true, 1 if false; meaningless while open
	stamp    uint32
	trailPos uint32 // NIL if open
}

func newVariableState() variableState {
	return variableState{level: -1, trailPos: uint32(NIL)}
}

func (vs *variableState) getTrailPos() uint32 { return vs.trailPos }

func (vs *variableState) getStamp() uint32 { return vs.stamp }

func (vs *variableState) stampWith(v uint32) { vs.stamp = v }

// assign marks the variable as assigned to the truth value matching lTrue's
// polarity, at the given trail position and decision level.
func (vs *variableState) assign(trailPos uint32, lTrue Lit, level int32) {
	vs.level = level
	vs.polarity = uint8(lTrue & 1)
	vs.trailPos = trailPos
}

// getLevel returns the decision level at which the variable was assigned. The
// result is meaningless if the variable is open.
func (vs *variableState) getLevel() int32 { return vs.level }

func (vs *variableState) makeOpen() {
	vs.level = -1
	vs.trailPos = uint32(NIL)
}

func (vs *variableState) isOpen() bool { return vs.level < 0 }

// isTrue reports whether the variable's current assignment is "true"
// (i.e. its positive literal holds).
func (vs *variableState) isTrue() bool { return !vs.isOpen() && vs.polarity == 0 }

// isFalse reports whether the variable's current assignment is "false".
func (vs *variableState) isFalse() bool { return !vs.isOpen() && vs.polarity == 1 }

// isLitTrue reports whether literal l (of this variable) is currently true.
func (vs *variableState) isLitTrue(l Lit) bool {
	return !vs.isOpen() && uint8(l&1) == vs.polarity
}

// isLitFalse reports whether literal l (of this variable) is currently
// false.
func (vs *variableState) isLitFalse(l Lit) bool {
	return !vs.isOpen() && uint8(l&1) != vs.polarity
}

// isLitOpenOrTrue reports whether literal l is open or true (i.e. not
// false).
func (vs *variableState) isLitOpenOrTrue(l Lit) bool {
	return vs.isOpen() || uint8(l&1) == vs.polarity
}

// state returns 1 if l is true, 0 if l is false, -1 if the variable is open.
func (vs *variableState) state(l Lit) int32 {
	if vs.isOpen() {
		return -1
	}
	if uint8(l&1) == vs.polarity {
		return 1
	}
	return 0
}

// levelInfo records where a decision level begins in the trail, plus a
// stamp field. Conflict analysis does not mark levels with it; the stamp is
// only reset to 0 when the propagator's stamp counter restarts.
type levelInfo struct {
	trailPos uint32
	stamp    uint32
}

func newLevelInfo(trailPos uint32) levelInfo {
	return levelInfo{trailPos: trailPos}
}

func (li *levelInfo) getStamp() uint32 { return li.stamp }

func (li *levelInfo) stampWith(v uint32) { li.stamp = v }

func (li *levelInfo) levelBegin() uint32 { return li.trailPos }
