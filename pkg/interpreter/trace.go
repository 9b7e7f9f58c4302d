package interpreter

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jedib0t/go-pretty/v6/table"

	"stackvm/pkg/isa"
)

// Event describes one executed instruction
type Event struct {
	Step        int
	PC          int
	Instruction isa.Instruction
	Stack       []int64 // operand stack after the instruction
	Err         error   // fault raised by the instruction, if any
}

// Tracer observes execution, one call per executed instruction
type Tracer interface {
	Trace(Event)
}

// TracerFunc adapts a function to the Tracer interface
type TracerFunc func(Event)

func (f TracerFunc) Trace(e Event) { f(e) }

// LogTracer writes every step to the default logger at debug level
type LogTracer struct{}

func (LogTracer) Trace(e Event) {
	if e.Err != nil {
		log.Debug("Step", "step", e.Step, "pc", e.PC, "instr", e.Instruction.String(), "error", e.Err)
		return
	}
	log.Debug("Step", "step", e.Step, "pc", e.PC, "instr", e.Instruction.String(), "depth", len(e.Stack))
}

// TraceTable records events and renders them as a table.
// Limit caps the number of kept events (0 = keep all); later events are counted but dropped.
type TraceTable struct {
	Limit   int
	events  []Event
	dropped int
}

func (t *TraceTable) Trace(e Event) {
	if t.Limit > 0 && len(t.events) >= t.Limit {
		t.dropped++
		return
	}
	t.events = append(t.events, e)
}

// Events returns the recorded events
func (t *TraceTable) Events() []Event {
	return t.events
}

// Render writes the recorded events to w
func (t *TraceTable) Render(w io.Writer) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Step", "PC", "Instruction", "Stack"})

	for _, e := range t.Events() {
		stack := formatStack(e.Stack)
		if e.Err != nil {
			stack = e.Err.Error()
		}
		tw.AppendRow(table.Row{e.Step, e.PC, e.Instruction.String(), stack})
	}

	if t.dropped > 0 {
		tw.AppendFooter(table.Row{"", "", fmt.Sprintf("%d more steps", t.dropped), ""})
	}

	tw.Render()
}

func formatStack(s []int64) string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
