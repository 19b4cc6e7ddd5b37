package sat

// watcher attaches a clause to one literal's watch list. blocker is one of
// the two currently watched literals of the clause; if blocker is true, the
// clause is already satisfied and the clause body does not need to be
// inspected.
type watcher struct {
	blocker Lit
	clause  ClauseRef
}
