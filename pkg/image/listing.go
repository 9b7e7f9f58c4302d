package image

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Listing writes a disassembly table of the image
func Listing(img *Image, w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Instruction", "Jump"})

	lines := img.Lines()
	for idx, line := range lines {
		jump := ""
		if target, ok := img.Target(idx); ok {
			jump = fmt.Sprintf("-> %d", target)
		}
		t.AppendRow(table.Row{idx, line, jump})
	}

	t.AppendFooter(table.Row{"", fmt.Sprintf("%d instructions", len(lines)), ""})
	t.Render()
}
