package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Listing is the instruction lines of a program file with comments and blank
// lines removed. LineNumbers[i] is the 1-based file line of Lines[i].
type Listing struct {
	Lines       []string
	LineNumbers []int
}

// Read collects instruction lines from r. Whole-line comments start with "//"
// or "#"; a trailing "//" comment is cut off.
func Read(r io.Reader) (Listing, error) {
	var l Listing

	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Text()

		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		l.Lines = append(l.Lines, line)
		l.LineNumbers = append(l.LineNumbers, n)
	}

	if err := scanner.Err(); err != nil {
		return Listing{}, fmt.Errorf("read failed at line %d: %w", n+1, err)
	}

	return l, nil
}

// ReadFile reads a program file
func ReadFile(path string) (Listing, error) {
	f, err := os.Open(path)
	if err != nil {
		return Listing{}, err
	}
	defer f.Close()

	return Read(f)
}

// FromLines wraps in-memory lines, numbering them from 1
func FromLines(lines []string) Listing {
	l := Listing{
		Lines:       append([]string(nil), lines...),
		LineNumbers: make([]int, len(lines)),
	}
	for i := range lines {
		l.LineNumbers[i] = i + 1
	}
	return l
}

// SourceLine maps an instruction index back to its file line, or 0 if out of range
func (l Listing) SourceLine(idx int) int {
	if idx < 0 || idx >= len(l.LineNumbers) {
		return 0
	}
	return l.LineNumbers[idx]
}
