package physics

// bodySet is dense storage for bodies keyed by ID. Bodies are appended in
// creation order and IDs only grow, so the dense slice stays sorted by ID.
// Removal preserves that order.
type bodySet struct {
	dense []Body
	index map[BodyID]int
}

func newBodySet() *bodySet {
	return &bodySet{index: make(map[BodyID]int)}
}

// Get returns a pointer into the dense storage, or nil. The pointer is only
// valid until the next insert or removal.
func (s *bodySet) Get(id BodyID) *Body {
	if s == nil {
		return nil
	}
	idx, ok := s.index[id]
	if !ok {
		return nil
	}
	return &s.dense[idx]
}

// Insert appends b. IDs must be strictly increasing.
func (s *bodySet) Insert(b Body) {
	if s == nil {
		return
	}
	if idx, ok := s.index[b.ID]; ok {
		s.dense[idx] = b
		return
	}
	s.dense = append(s.dense, b)
	s.index[b.ID] = len(s.dense) - 1
}

// Compact drops every body for which keep returns false and returns how many
// were dropped.
func (s *bodySet) Compact(keep func(b *Body) bool) int {
	if s == nil {
		return 0
	}
	out := s.dense[:0]
	dropped := 0
	for i := range s.dense {
		if keep(&s.dense[i]) {
			out = append(out, s.dense[i])
			continue
		}
		delete(s.index, s.dense[i].ID)
		dropped++
	}
	if dropped == 0 {
		return 0
	}
	// zero the tail so stale copies are not retained
	for i := len(out); i < len(s.dense); i++ {
		s.dense[i] = Body{}
	}
	s.dense = out
	for i := range s.dense {
		s.index[s.dense[i].ID] = i
	}
	return dropped
}

// Reset removes everything.
func (s *bodySet) Reset() {
	if s == nil {
		return
	}
	s.dense = s.dense[:0]
	s.index = make(map[BodyID]int)
}

// Len returns the number of stored bodies, dead or alive.
func (s *bodySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.dense)
}

// Values returns the dense body slice. Callers inside the package may mutate
// elements but must not append.
func (s *bodySet) Values() []Body {
	if s == nil {
		return nil
	}
	return s.dense
}
