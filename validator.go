package variantweaver

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// DefaultTagPattern is the tag syntax accepted by the CLI.
const DefaultTagPattern = `^[A-Za-z0-9_.-]+$`

// TagValidator checks tag names opened by "if" directives.
type TagValidator interface {
	// Validate checks if the tag is acceptable.
	// Returns nil if valid, or an error if invalid.
	Validate(tag string, pos Position) error
}

// RegexTagValidator validates tags against a regular expression.
type RegexTagValidator struct {
	Pattern     *regexp.Regexp
	Description string // Human-readable description of what the pattern expects
}

// NewRegexTagValidator compiles pattern into a RegexTagValidator.
func NewRegexTagValidator(pattern, description string) (*RegexTagValidator, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid tag pattern %q: %w", pattern, err)
	}
	return &RegexTagValidator{Pattern: re, Description: description}, nil
}

// Validate implements the TagValidator interface.
func (v *RegexTagValidator) Validate(tag string, pos Position) error {
	if !v.Pattern.MatchString(tag) {
		return NewInvalidTagError(pos, tag,
			fmt.Sprintf("tag does not match expected pattern: %s", v.Description), "")
	}
	return nil
}

// FuncTagValidator uses a custom function to validate tags.
type FuncTagValidator struct {
	ValidateFunc func(tag string, pos Position) error
}

// Validate implements the TagValidator interface.
func (v *FuncTagValidator) Validate(tag string, pos Position) error {
	return v.ValidateFunc(tag, pos)
}

// SetTagValidator only accepts tags from a fixed allow-list, typically the
// tags declared in a manifest. It catches typos such as "if(sovled)".
type SetTagValidator struct {
	allowed map[string]struct{}
}

// NewSetTagValidator creates a SetTagValidator.
func NewSetTagValidator(tags ...string) *SetTagValidator {
	v := &SetTagValidator{allowed: make(map[string]struct{}, len(tags))}
	for _, t := range tags {
		v.allowed[t] = struct{}{}
	}
	return v
}

// Validate implements the TagValidator interface.
func (v *SetTagValidator) Validate(tag string, pos Position) error {
	if _, ok := v.allowed[tag]; ok {
		return nil
	}
	known := make([]string, 0, len(v.allowed))
	for t := range v.allowed {
		known = append(known, t)
	}
	sort.Strings(known)
	return NewInvalidTagError(pos, tag,
		fmt.Sprintf("tag is not declared (known: %s)", strings.Join(known, ", ")), "")
}

// TagValidators runs several validators in order and stops at the first failure.
type TagValidators []TagValidator

// Validate implements the TagValidator interface.
func (vs TagValidators) Validate(tag string, pos Position) error {
	for _, v := range vs {
		if v == nil {
			continue
		}
		if err := v.Validate(tag, pos); err != nil {
			return err
		}
	}
	return nil
}

// withContext fills in the source snippet of a validator error, which only
// the processor knows.
func withContext(err error, pos Position, source string) error {
	var it *InvalidTagError
	if errors.As(err, &it) && it.Context == "" {
		it.Context = extractContext(source, pos)
	}
	return err
}
