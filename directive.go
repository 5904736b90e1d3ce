package variantweaver

import "strings"

// Escape syntax of the template language. These define the wire format of
// templates and are not configurable.
const (
	EscapeStart      = "#{"
	EscapeEnd   rune = '}'
)

// Directive is a parsed directive body such as "if(A, B)".
type Directive struct {
	Name string
	// Args is nil when the body has no argument list. "if()" yields a
	// single empty argument.
	Args []string
}

// HasArgs reports whether the directive carried an argument list.
func (d Directive) HasArgs() bool { return d.Args != nil }

func (d Directive) String() string {
	if d.Args == nil {
		return d.Name
	}
	return d.Name + "(" + strings.Join(d.Args, ", ") + ")"
}

// parseDirective splits body into a name and an argument list. When ok is
// false, kind tells which rule was broken.
func parseDirective(body string) (d Directive, kind MalformedKind, ok bool) {
	name, argList, hasList := strings.Cut(body, "(")
	if !hasList {
		if strings.ContainsRune(body, ')') {
			return Directive{}, StrayParen, false
		}
		return Directive{Name: body}, 0, true
	}

	closeAt := strings.LastIndexByte(argList, ')')
	if closeAt < 0 {
		return Directive{}, UnterminatedArguments, false
	}
	if closeAt != len(argList)-1 {
		return Directive{}, TrailingCharacters, false
	}

	parts := strings.Split(argList[:closeAt], ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return Directive{Name: name, Args: parts}, 0, true
}

// ParseDirective parses a directive body, the text between EscapeStart and
// EscapeEnd. The returned error is a *MalformedDirectiveError without a
// position.
func ParseDirective(body string) (Directive, error) {
	d, kind, ok := parseDirective(body)
	if !ok {
		return Directive{}, NewMalformedDirectiveError(Position{}, body, kind, "")
	}
	return d, nil
}
