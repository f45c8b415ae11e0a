package vision

import "matchtuner/internal/equalizer"

// table is an ordered parameter table backing an algorithm adapter. Names
// are kept in the declaration order so discovery is deterministic.
type table struct {
	names    []string
	values   map[string]equalizer.Value
	settable map[string]bool
}

func newTable() table {
	return table{
		values:   make(map[string]equalizer.Value),
		settable: make(map[string]bool),
	}
}

// add registers a parameter with its default value.
func (t *table) add(name string, v equalizer.Value, settable bool) {
	t.names = append(t.names, name)
	t.values[name] = v
	t.settable[name] = settable
}

// Params returns the readable parameters in declaration order.
func (t *table) Params() []equalizer.TunableParam {
	out := make([]equalizer.TunableParam, 0, len(t.names))
	for _, name := range t.names {
		out = append(out, equalizer.TunableParam{Name: name, Value: t.values[name]})
	}
	return out
}

// Set writes a parameter value; it reports false for unknown or read-only
// parameters so the synchronizer can skip them without error.
func (t *table) Set(name string, v equalizer.Value) bool {
	if !t.settable[name] {
		return false
	}
	t.values[name] = v
	return true
}

func (t *table) intVal(name string) int {
	return t.values[name].Int()
}

func (t *table) floatVal(name string) float64 {
	return t.values[name].Float()
}

func (t *table) boolVal(name string) bool {
	return t.values[name].Bool()
}
