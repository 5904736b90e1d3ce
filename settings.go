package variantweaver

import (
	"sort"
	"strings"
)

// Settings is the set of tags that are "on" for one render.
// The zero value is the empty set.
type Settings struct {
	active map[string]struct{}
}

// NewSettings builds a Settings from tag names. Duplicates collapse.
func NewSettings(tags ...string) Settings {
	s := Settings{active: make(map[string]struct{}, len(tags))}
	for _, t := range tags {
		s.active[t] = struct{}{}
	}
	return s
}

// ParseTagList turns a comma separated flag value such as "A, B" into
// Settings. Empty elements are dropped, so "" yields the empty set.
func ParseTagList(list string) Settings {
	var tags []string
	for _, part := range strings.Split(list, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return NewSettings(tags...)
}

// Has reports whether tag is active.
func (s Settings) Has(tag string) bool {
	_, ok := s.active[tag]
	return ok
}

// Len returns the number of distinct active tags.
func (s Settings) Len() int { return len(s.active) }

// Tags returns the active tags in sorted order.
func (s Settings) Tags() []string {
	out := make([]string, 0, len(s.active))
	for t := range s.active {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func (s Settings) String() string {
	return "{" + strings.Join(s.Tags(), ",") + "}"
}
