package variantweaver

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Position represents a position in the template.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number, counted in runes
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// advance moves the cursor past r.
func (p *Position) advance(r rune) {
	if r == '\n' {
		p.Line++
		p.Column = 1
		return
	}
	p.Column++
}

// ParseError is the base error type for all template errors.
type ParseError struct {
	Pos     Position // Position where the error occurred
	Message string   // Error message
	Context string   // Surrounding content for context
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s at %s\nContext: %s", e.Message, e.Pos, e.Context)
	}
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

// MalformedKind tells which syntax rule a malformed directive broke.
type MalformedKind int

const (
	UnterminatedArguments MalformedKind = iota // "(" without a closing ")"
	TrailingCharacters                         // text after the closing ")"
	StrayParen                                 // ")" in a directive without "("
)

func (k MalformedKind) String() string {
	switch k {
	case UnterminatedArguments:
		return "unterminated argument list"
	case TrailingCharacters:
		return "trailing characters after argument list"
	case StrayParen:
		return "stray closing parenthesis"
	default:
		return fmt.Sprintf("MalformedKind(%d)", int(k))
	}
}

// MalformedDirectiveError represents a directive body that cannot be parsed.
type MalformedDirectiveError struct {
	ParseError
	Directive string // Raw directive body
	Kind      MalformedKind
}

// Error implements the error interface.
func (e *MalformedDirectiveError) Error() string {
	return fmt.Sprintf("malformed directive #{%s} at %s: %s\nContext: %s",
		e.Directive, e.Pos, e.Kind, e.Context)
}

// MissingArgumentsError represents a directive invoked without its required tags.
type MissingArgumentsError struct {
	ParseError
	Directive string // Name of the directive
}

// Error implements the error interface.
func (e *MissingArgumentsError) Error() string {
	return fmt.Sprintf("directive %q at %s: %s\nContext: %s",
		e.Directive, e.Pos, e.Message, e.Context)
}

// UnbalancedEndError represents an "end" with nothing to close.
type UnbalancedEndError struct {
	ParseError
	Tag string // Tag named by end(...); empty for a bare end
}

// Error implements the error interface.
func (e *UnbalancedEndError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("end(%s) at %s: tag is not open\nContext: %s", e.Tag, e.Pos, e.Context)
	}
	return fmt.Sprintf("end at %s: no open block to close\nContext: %s", e.Pos, e.Context)
}

// UnknownDirectiveError represents a directive name outside the vocabulary.
type UnknownDirectiveError struct {
	ParseError
	Name string
}

// Error implements the error interface.
func (e *UnknownDirectiveError) Error() string {
	return fmt.Sprintf("unknown directive %q at %s\nContext: %s", e.Name, e.Pos, e.Context)
}

// UnclosedBlockError reports tags still open at the end of the template.
type UnclosedBlockError struct {
	ParseError
	Tags []string // Open tags, outer to inner
}

// Error implements the error interface.
func (e *UnclosedBlockError) Error() string {
	return fmt.Sprintf("unclosed block(s) %s at end of template (%s)",
		strings.Join(e.Tags, ", "), e.Pos)
}

// InvalidTagError is returned by tag validators.
type InvalidTagError struct {
	ParseError
	Tag string
}

// Error implements the error interface.
func (e *InvalidTagError) Error() string {
	return fmt.Sprintf("invalid tag %q at %s: %s\nContext: %s", e.Tag, e.Pos, e.Message, e.Context)
}

// EncodingError reports a template that is not valid UTF-8.
type EncodingError struct {
	ParseError
}

// NewParseError creates a new ParseError with context.
func NewParseError(pos Position, message, context string) *ParseError {
	return &ParseError{
		Pos:     pos,
		Message: message,
		Context: extractContext(context, pos),
	}
}

// NewMalformedDirectiveError creates a new MalformedDirectiveError.
func NewMalformedDirectiveError(pos Position, directive string, kind MalformedKind, context string) *MalformedDirectiveError {
	return &MalformedDirectiveError{
		ParseError: ParseError{
			Pos:     pos,
			Message: kind.String(),
			Context: extractContext(context, pos),
		},
		Directive: directive,
		Kind:      kind,
	}
}

// NewMissingArgumentsError creates a new MissingArgumentsError.
func NewMissingArgumentsError(pos Position, directive, message, context string) *MissingArgumentsError {
	return &MissingArgumentsError{
		ParseError: ParseError{
			Pos:     pos,
			Message: message,
			Context: extractContext(context, pos),
		},
		Directive: directive,
	}
}

// NewUnbalancedEndError creates a new UnbalancedEndError.
func NewUnbalancedEndError(pos Position, tag, context string) *UnbalancedEndError {
	msg := "no open block to close"
	if tag != "" {
		msg = "tag is not open"
	}
	return &UnbalancedEndError{
		ParseError: ParseError{
			Pos:     pos,
			Message: msg,
			Context: extractContext(context, pos),
		},
		Tag: tag,
	}
}

// NewUnknownDirectiveError creates a new UnknownDirectiveError.
func NewUnknownDirectiveError(pos Position, name, context string) *UnknownDirectiveError {
	return &UnknownDirectiveError{
		ParseError: ParseError{
			Pos:     pos,
			Message: "unknown directive",
			Context: extractContext(context, pos),
		},
		Name: name,
	}
}

// NewUnclosedBlockError creates a new UnclosedBlockError.
func NewUnclosedBlockError(pos Position, tags []string) *UnclosedBlockError {
	return &UnclosedBlockError{
		ParseError: ParseError{
			Pos:     pos,
			Message: "unclosed block",
		},
		Tags: tags,
	}
}

// NewInvalidTagError creates a new InvalidTagError.
func NewInvalidTagError(pos Position, tag, message, context string) *InvalidTagError {
	return &InvalidTagError{
		ParseError: ParseError{
			Pos:     pos,
			Message: message,
			Context: extractContext(context, pos),
		},
		Tag: tag,
	}
}

// extractContext extracts a snippet of text around the error position for context.
// It includes up to three lines before the error line and one after it.
func extractContext(content string, pos Position) string {
	if content == "" {
		return ""
	}

	lines := strings.Split(content, "\n")
	if pos.Line > len(lines) {
		return content // Fallback if position is out of range
	}

	startLine := max(0, pos.Line-3)
	endLine := min(len(lines)-1, pos.Line)

	var b strings.Builder
	for i := startLine; i <= endLine; i++ {
		lineNum := i + 1
		if lineNum == pos.Line {
			b.WriteString(fmt.Sprintf("-> %d: %s\n", lineNum, lines[i]))

			// Caret under the column; the prefix is "-> N: "
			if pos.Column <= utf8.RuneCountInString(lines[i])+1 {
				pad := len(fmt.Sprintf("-> %d: ", lineNum)) + pos.Column - 1
				b.WriteString(strings.Repeat(" ", pad) + "^\n")
			}
		} else {
			b.WriteString(fmt.Sprintf("   %d: %s\n", lineNum, lines[i]))
		}
	}

	return b.String()
}
