package menu

// TagSet is an insertion-ordered set of tags.
// Order only matters for deterministic output.
type TagSet struct {
	order []string
	index map[string]struct{}
}

// NewTagSet creates a set seeded with tags; duplicates are dropped.
func NewTagSet(tags ...string) *TagSet {
	s := &TagSet{index: make(map[string]struct{}, len(tags))}
	s.Merge(tags...)
	return s
}

// Add inserts tag if absent and reports whether it was inserted.
func (s *TagSet) Add(tag string) bool {
	if _, ok := s.index[tag]; ok {
		return false
	}
	s.index[tag] = struct{}{}
	s.order = append(s.order, tag)
	return true
}

// Merge adds every tag and returns how many were new.
func (s *TagSet) Merge(tags ...string) int {
	n := 0
	for _, t := range tags {
		if s.Add(t) {
			n++
		}
	}
	return n
}

// Has reports membership.
func (s *TagSet) Has(tag string) bool {
	_, ok := s.index[tag]
	return ok
}

// Len returns the number of distinct tags.
func (s *TagSet) Len() int { return len(s.order) }

// Values returns the tags in insertion order. Never nil, so an empty set
// serializes as [].
func (s *TagSet) Values() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
