package variantweaver

// directiveFunc executes one parsed directive against a processor.
type directiveFunc func(p *Processor, d Directive) error

type directiveTable struct {
	byName map[string]directiveFunc
}

func (t *directiveTable) register(name string, fn directiveFunc) {
	t.byName[name] = fn
}

func (t *directiveTable) get(name string) (directiveFunc, bool) {
	fn, ok := t.byName[name]
	return fn, ok
}

// builtins is the complete directive vocabulary. Names are case sensitive.
var builtins = func() *directiveTable {
	t := &directiveTable{byName: map[string]directiveFunc{}}
	t.register("nop", execNop)
	t.register("if", execIf)
	t.register("end", execEnd)
	return t
}()

func execNop(*Processor, Directive) error { return nil }

// execIf opens one block per argument, left to right.
func execIf(p *Processor, d Directive) error {
	if !d.HasArgs() {
		return NewMissingArgumentsError(p.pos, d.Name, "requires at least one tag", p.source.String())
	}
	for _, tag := range d.Args {
		if tag == "" {
			return NewMissingArgumentsError(p.pos, d.Name, "empty tag name in argument list", p.source.String())
		}
		if v := p.engine.validator; v != nil {
			if err := v.Validate(tag, p.pos); err != nil {
				return withContext(err, p.pos, p.source.String())
			}
		}
	}
	p.stack.Push(d.Args...)
	return nil
}

// execEnd closes the innermost block, or for end(a, b) the nearest open
// entry of each named tag in turn.
func execEnd(p *Processor, d Directive) error {
	if !d.HasArgs() {
		if _, ok := p.stack.Pop(); !ok {
			return NewUnbalancedEndError(p.pos, "", p.source.String())
		}
		return nil
	}
	for _, tag := range d.Args {
		if tag == "" {
			return NewMissingArgumentsError(p.pos, d.Name, "empty tag name in argument list", p.source.String())
		}
		if !p.stack.RemoveLast(tag) {
			return NewUnbalancedEndError(p.pos, tag, p.source.String())
		}
	}
	return nil
}
