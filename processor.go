package variantweaver

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFinished is returned when a processor is fed after Finish.
var ErrFinished = errors.New("variantweaver: processor already finished")

// ParseState is the scanner state.
type ParseState int

const (
	NormalText  ParseState = iota // emitting or discarding text
	MaybeEscape                   // matching a prefix of EscapeStart
	Command                       // collecting a directive body
)

func (s ParseState) String() string {
	switch s {
	case NormalText:
		return "NormalText"
	case MaybeEscape:
		return "MaybeEscape"
	case Command:
		return "Command"
	default:
		return fmt.Sprintf("ParseState(%d)", int(s))
	}
}

var escapeStart = []rune(EscapeStart)

// Processor renders one template for one Settings value. It is fed one
// rune at a time and must not be shared between goroutines.
type Processor struct {
	engine   *Engine
	settings Settings

	state ParseState
	pos   Position
	stack TagStack

	// limbo holds runes not yet classified as text or directive syntax.
	limbo  []rune
	output strings.Builder
	// source is everything consumed so far, kept for error context.
	source strings.Builder

	unclosed []string
	finished bool
	err      error
}

func newProcessor(e *Engine, settings Settings) *Processor {
	return &Processor{
		engine:   e,
		settings: settings,
		state:    NormalText,
		pos:      Position{Line: 1, Column: 1},
	}
}

// ProcessRune consumes a single rune. After the first error the processor
// is failed and keeps returning that error.
func (p *Processor) ProcessRune(r rune) error {
	if p.err != nil {
		return p.err
	}
	if p.finished {
		return ErrFinished
	}
	p.source.WriteRune(r)

	var err error
	switch p.state {
	case NormalText:
		if r == escapeStart[0] {
			p.limbo = append(p.limbo, r)
			p.state = MaybeEscape
		} else if p.stack.AllIn(p.settings) {
			p.output.WriteRune(r)
		}

	case MaybeEscape:
		p.limbo = append(p.limbo, r)
		if r == escapeStart[len(p.limbo)-1] {
			if len(p.limbo) == len(escapeStart) {
				p.limbo = p.limbo[:0]
				p.state = Command
			}
		} else {
			// Not an escape after all. The buffered runes go out as they
			// are, without consulting the tag stack.
			p.flushLimbo()
			p.state = NormalText
		}

	case Command:
		if r == EscapeEnd {
			body := string(p.limbo)
			p.limbo = p.limbo[:0]
			p.state = NormalText
			err = p.execute(body)
		} else {
			p.limbo = append(p.limbo, r)
		}
	}

	if err != nil {
		p.err = err
		return err
	}
	p.pos.advance(r)
	return nil
}

// ProcessString feeds every rune of s.
func (p *Processor) ProcessString(s string) error {
	for _, r := range s {
		if err := p.ProcessRune(r); err != nil {
			return err
		}
	}
	return nil
}

// Finish marks the end of input. An incomplete escape or directive left in
// limbo is emitted as plain text. Blocks still open are handled according
// to the engine's UnclosedPolicy.
func (p *Processor) Finish() error {
	if p.err != nil {
		return p.err
	}
	if p.finished {
		return nil
	}
	p.finished = true
	p.flushLimbo()

	if p.stack.Len() == 0 {
		return nil
	}
	p.unclosed = p.stack.Tags()

	switch p.engine.policy {
	case UnclosedAudit:
		p.engine.logger.Warn().
			Strs("tags", p.unclosed).
			Stringer("pos", p.pos).
			Msg("template ends with open blocks")
	case UnclosedStrict:
		p.err = NewUnclosedBlockError(p.pos, p.unclosed)
		return p.err
	}
	return nil
}

// Output returns the text emitted so far. It is only meaningful once
// Finish returned nil.
func (p *Processor) Output() string { return p.output.String() }

// Position returns the position of the next rune to be consumed, or of the
// rune that caused the error.
func (p *Processor) Position() Position { return p.pos }

// State returns the current scanner state.
func (p *Processor) State() ParseState { return p.state }

// Stack returns the open tags, outer to inner.
func (p *Processor) Stack() []string { return p.stack.Tags() }

// Unclosed returns the tags that were still open when Finish was called.
func (p *Processor) Unclosed() []string { return p.unclosed }

// Err returns the error that failed the processor, if any.
func (p *Processor) Err() error { return p.err }

func (p *Processor) flushLimbo() {
	for _, r := range p.limbo {
		p.output.WriteRune(r)
	}
	p.limbo = p.limbo[:0]
}

func (p *Processor) execute(body string) error {
	d, kind, ok := parseDirective(body)
	if !ok {
		return NewMalformedDirectiveError(p.pos, body, kind, p.source.String())
	}
	fn, ok := builtins.get(d.Name)
	if !ok {
		return NewUnknownDirectiveError(p.pos, d.Name, p.source.String())
	}
	if err := fn(p, d); err != nil {
		return err
	}
	p.engine.logger.Debug().
		Str("directive", d.String()).
		Stringer("pos", p.pos).
		Strs("stack", p.stack.Tags()).
		Msg("directive executed")
	return nil
}
