package equalizer

// ParamSet is an insertion-ordered mapping from parameter name to Parameter.
// Match-file key order follows the insertion order.
type ParamSet struct {
	names  []string
	byName map[string]*Parameter
}

func newParamSet() *ParamSet {
	return &ParamSet{byName: make(map[string]*Parameter)}
}

// Get returns the named parameter, if registered.
func (s *ParamSet) Get(name string) (*Parameter, bool) {
	p, ok := s.byName[name]
	return p, ok
}

// Put registers or overwrites a parameter. An overwrite keeps the original
// position in the ordering.
func (s *ParamSet) Put(name string, p *Parameter) {
	if _, ok := s.byName[name]; !ok {
		s.names = append(s.names, name)
	}
	s.byName[name] = p
}

// Names returns the parameter names in insertion order.
func (s *ParamSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of registered parameters.
func (s *ParamSet) Len() int { return len(s.names) }
