package variantweaver

// TagStack holds the tags opened by "if" directives, outer to inner.
//
// It is not a strict stack: end(tag) removes the nearest matching entry
// from the top even when other tags sit above it. A tag may appear more
// than once.
type TagStack struct {
	tags []string
}

// Push appends tags in the given order.
func (s *TagStack) Push(tags ...string) {
	s.tags = append(s.tags, tags...)
}

// Pop removes the top entry.
func (s *TagStack) Pop() (string, bool) {
	if len(s.tags) == 0 {
		return "", false
	}
	top := s.tags[len(s.tags)-1]
	s.tags = s.tags[:len(s.tags)-1]
	return top, true
}

// RemoveLast removes the entry equal to tag that is closest to the top.
// It reports false if tag is not on the stack.
func (s *TagStack) RemoveLast(tag string) bool {
	for i := len(s.tags) - 1; i >= 0; i-- {
		if s.tags[i] == tag {
			s.tags = append(s.tags[:i], s.tags[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of open entries.
func (s *TagStack) Len() int { return len(s.tags) }

// Tags returns a copy of the entries, outer to inner.
func (s *TagStack) Tags() []string {
	out := make([]string, len(s.tags))
	copy(out, s.tags)
	return out
}

// AllIn is the conditions predicate: every open tag is active.
// An empty stack always passes.
func (s *TagStack) AllIn(settings Settings) bool {
	for _, t := range s.tags {
		if !settings.Has(t) {
			return false
		}
	}
	return true
}
