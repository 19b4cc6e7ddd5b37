package sat

// StampSet is a membership filter over values 0..universeSize-1, backed by a
// generation counter. Insertion records the current generation at the
// value's index; clearing bumps the generation instead of touching every
// element, giving amortized O(1) insert/contains/clear. When the generation
// counter wraps around to zero the backing array is reset and the counter
// restarts at 1.
type StampSet[V ~uint32] struct {
	stamps  []uint32
	current uint32
}

// NewStampSet creates a StampSet over the given universe size.
func NewStampSet[V ~uint32](universeSize int) *StampSet[V] {
	return &StampSet[V]{
		stamps:  make([]uint32, universeSize),
		current: 1,
	}
}

// UniverseSize returns the number of distinct values the set can hold.
func (s *StampSet[V]) UniverseSize() int { return len(s.stamps) }

// Clear empties the set in amortized O(1) time.
func (s *StampSet[V]) Clear() {
	s.current++
	if s.current == 0 {
		for i := range s.stamps {
			s.stamps[i] = 0
		}
		s.current = 1
	}
}

// Assign clears the set, then inserts every value in vs.
func (s *StampSet[V]) Assign(vs []V) {
	s.Clear()
	for _, v := range vs {
		s.Insert(v)
	}
}

// Insert adds v to the set.
func (s *StampSet[V]) Insert(v V) {
	s.stamps[v] = s.current
}

// Erase removes v from the set.
func (s *StampSet[V]) Erase(v V) {
	s.stamps[v] = 0
}

// Contains reports whether v is in the set.
func (s *StampSet[V]) Contains(v V) bool {
	return s.stamps[v] == s.current
}

// CheckInsert inserts v and reports whether it was absent beforehand.
func (s *StampSet[V]) CheckInsert(v V) bool {
	wasAbsent := s.stamps[v] != s.current
	s.stamps[v] = s.current
	return wasAbsent
}

// CheckErase erases v and reports whether it was present beforehand.
func (s *StampSet[V]) CheckErase(v V) bool {
	wasPresent := s.stamps[v] == s.current
	s.stamps[v] = 0
	return wasPresent
}
