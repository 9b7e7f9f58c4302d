// Package samples holds built-in programs that can be run without a source file.
package samples

import "sort"

// Arithmetic computes (x+1)*y with x=5 and y=2 and returns 12.
var Arithmetic = []string{
	"LOAD_VAL 5",
	"WRITE_VAR x",
	"LOAD_VAL 2",
	"WRITE_VAR y",
	"READ_VAR x",
	"LOAD_VAL 1",
	"ADD",
	"READ_VAR y",
	"MULTIPLY",
	"RETURN_VALUE",
}

// Counter increments y while z is positive. z never changes, so the loop only
// stops when the step budget runs out.
var Counter = []string{
	"LOAD_VAL 1",
	"WRITE_VAR y",
	"LOAD_VAL 1",
	"WRITE_VAR z",
	"LOOPW_START myid z",
	"READ_VAR y",
	"LOAD_VAL 1",
	"ADD",
	"WRITE_VAR y",
	"LOOPW_END myid",
	"EXIT",
}

// Countdown returns 5, 4, 3, 2, 1 and exits.
var Countdown = []string{
	"LOAD_VAL 5",
	"WRITE_VAR n",
	"LOOPW_START down n",
	"READ_VAR n",
	"RETURN_VALUE",
	"LOAD_VAL -1",
	"READ_VAR n",
	"ADD",
	"WRITE_VAR n",
	"LOOPW_END down",
	"EXIT",
}

var registry = map[string][]string{
	"arithmetic": Arithmetic,
	"counter":    Counter,
	"countdown":  Countdown,
	"reference":  append(append([]string(nil), Arithmetic...), Counter...),
}

// Lookup returns a copy of the named sample
func Lookup(name string) ([]string, bool) {
	p, ok := registry[name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), p...), true
}

// Names lists the available samples
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
