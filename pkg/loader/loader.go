package loader

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"stackvm/pkg/image"
	"stackvm/pkg/isa"
)

var (
	ErrEmptyLine       = errors.New("empty instruction line")
	ErrUnknownMnemonic = errors.New("unknown mnemonic")
	ErrOperandCount    = errors.New("invalid argument count")
	ErrBadLiteral      = errors.New("invalid integer literal")
	ErrUnmatchedLoop   = image.ErrUnmatchedLoop
	ErrDuplicateLabel  = image.ErrDuplicateLabel
)

// LoadError reports the first line that made a load fail
type LoadError struct {
	Index int    // 0-based position in the line sequence
	Text  string // offending line
	Err   error  // one of the Err* kinds above, possibly wrapped
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("instruction %d %q: %v", e.Index, e.Text, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load validates the instruction lines against the catalog and decodes them
// into a program image. Loading is all-or-nothing: on any error no image is returned.
func Load(lines []string, cat isa.Catalog) (*image.Image, error) {
	instrs := make([]isa.Instruction, 0, len(lines))
	starts := make(map[string]bool)
	ends := make(map[string]bool)

	for idx, line := range lines {
		fail := func(err error) (*image.Image, error) {
			log.Debug("Rejected program", "instruction", idx, "line", line, "error", err)
			return nil, &LoadError{Index: idx, Text: line, Err: err}
		}

		toks := strings.Fields(line)
		if len(toks) == 0 {
			return fail(ErrEmptyLine)
		}

		mnem := isa.Mnemonic(toks[0])
		want, ok := cat.Tokens(mnem)
		if !ok {
			return fail(fmt.Errorf("%w: %s", ErrUnknownMnemonic, toks[0]))
		}

		if len(toks) != want {
			return fail(fmt.Errorf("%w: %s takes %d operand(s), got %d", ErrOperandCount, mnem, want-1, len(toks)-1))
		}

		var in isa.Instruction
		switch mnem {
		case isa.LoadValOp:
			v, err := strconv.ParseInt(toks[1], 10, 64)
			if err != nil {
				return fail(fmt.Errorf("%w: %s", ErrBadLiteral, toks[1]))
			}
			in = isa.LoadVal(v)

		case isa.ReadVarOp:
			in = isa.ReadVar(toks[1])

		case isa.WriteVarOp:
			in = isa.WriteVar(toks[1])

		case isa.LoopStartOp:
			label := toks[1]
			if starts[label] {
				return fail(fmt.Errorf("%w: %s", ErrDuplicateLabel, label))
			}
			if !hasLoopEnd(lines[idx+1:], label) {
				return fail(fmt.Errorf("%w: %s end not found", ErrUnmatchedLoop, label))
			}
			starts[label] = true
			in = isa.LoopStart(label, toks[2])

		case isa.LoopEndOp:
			label := toks[1]
			if ends[label] {
				return fail(fmt.Errorf("%w: %s", ErrDuplicateLabel, label))
			}
			if !starts[label] {
				return fail(fmt.Errorf("%w: %s start not found", ErrUnmatchedLoop, label))
			}
			ends[label] = true
			in = isa.LoopEnd(label)

		default:
			in = isa.Instruction{Op: mnem}
		}

		instrs = append(instrs, in)
	}

	img, err := image.New(instrs)
	if err != nil {
		return nil, &LoadError{Index: -1, Err: err}
	}

	log.Debug("Loaded program", "instructions", img.Len())
	return img, nil
}

// hasLoopEnd scans the remaining lines for "LOOPW_END <label>"
func hasLoopEnd(lines []string, label string) bool {
	for _, line := range lines {
		toks := strings.Fields(line)
		if len(toks) >= 2 && isa.Mnemonic(toks[0]) == isa.LoopEndOp && toks[1] == label {
			return true
		}
	}

	return false
}
