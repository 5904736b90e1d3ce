package variantweaver

import (
	"bufio"
	"errors"
	"io"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// NewEngine creates an Engine. An Engine holds configuration only and may
// be shared by concurrent renders; each render gets its own Processor.
func NewEngine(opts ...func(*Engine)) *Engine {
	e := &Engine{policy: UnclosedIgnore, logger: zerolog.Nop()}
	for _, o := range opts {
		o(e)
	}
	return e
}

func WithUnclosedPolicy(p UnclosedPolicy) func(*Engine) {
	return func(e *Engine) { e.policy = p }
}

func WithLogger(l zerolog.Logger) func(*Engine) {
	return func(e *Engine) { e.logger = l }
}

// WithTagValidator checks every tag opened by an "if" directive.
func WithTagValidator(v TagValidator) func(*Engine) {
	return func(e *Engine) { e.validator = v }
}

// Policy returns the engine's UnclosedPolicy.
func (e *Engine) Policy() UnclosedPolicy { return e.policy }

// NewProcessor returns a fresh Processor for one render.
func (e *Engine) NewProcessor(settings Settings) *Processor {
	return newProcessor(e, settings)
}

// Render processes template with settings and returns the rendered text.
// Any error aborts the render and no output is returned.
func (e *Engine) Render(template string, settings Settings) (string, error) {
	p := e.NewProcessor(settings)
	if err := p.ProcessString(template); err != nil {
		return "", err
	}
	if err := p.Finish(); err != nil {
		return "", err
	}
	return p.Output(), nil
}

// ProcessStream reads a UTF-8 template from r one rune at a time and writes
// the rendered text to w. Nothing is written unless the whole render
// succeeds.
func (e *Engine) ProcessStream(r io.Reader, w io.Writer, settings Settings) error {
	br := bufio.NewReader(r)
	p := e.NewProcessor(settings)

	for {
		ch, size, err := br.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if ch == utf8.RuneError && size == 1 {
			return &EncodingError{ParseError: *NewParseError(p.Position(), "invalid UTF-8 in template", "")}
		}
		if perr := p.ProcessRune(ch); perr != nil {
			return perr
		}
	}
	if err := p.Finish(); err != nil {
		return err
	}

	_, err := io.WriteString(w, p.Output())
	return err
}

var defaultEngine = NewEngine()

// Render renders template with the default engine: unclosed blocks are
// ignored and no tag validation is done.
func Render(template string, settings Settings) (string, error) {
	return defaultEngine.Render(template, settings)
}

// IsTemplateError reports whether err comes from the template itself
// rather than from I/O.
func IsTemplateError(err error) bool {
	var (
		pe *ParseError
		me *MalformedDirectiveError
		ma *MissingArgumentsError
		ue *UnbalancedEndError
		ud *UnknownDirectiveError
		uc *UnclosedBlockError
		it *InvalidTagError
		ee *EncodingError
	)
	return errors.As(err, &pe) || errors.As(err, &me) || errors.As(err, &ma) ||
		errors.As(err, &ue) || errors.As(err, &ud) || errors.As(err, &uc) ||
		errors.As(err, &it) || errors.As(err, &ee)
}
