package variantweaver

import "github.com/rs/zerolog"

// UnclosedPolicy decides what happens when a template ends inside a block.
type UnclosedPolicy int

const (
	UnclosedIgnore UnclosedPolicy = iota // render as if the blocks were closed
	UnclosedAudit                        // render, log a warning, record Processor.Unclosed
	UnclosedStrict                       // fail with *UnclosedBlockError
)

func (p UnclosedPolicy) String() string {
	switch p {
	case UnclosedIgnore:
		return "ignore"
	case UnclosedAudit:
		return "audit"
	case UnclosedStrict:
		return "strict"
	default:
		return "unknown"
	}
}

type Engine struct {
	policy    UnclosedPolicy
	logger    zerolog.Logger
	validator TagValidator
}
