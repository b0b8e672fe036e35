package deadbasic

// Variable is one named, typed slot in the store. The type never
// changes after declaration.
type Variable struct {
	Name  string
	Type  Type
	Value Value
}

// VariableStore is an ordered mapping from variable name to a typed
// value, scoped to one execution session.
type VariableStore struct {
	vars  map[string]*Variable
	order []string
}

// NewVariableStore creates an empty store.
func NewVariableStore() *VariableStore {
	return &VariableStore{vars: make(map[string]*Variable)}
}

// Declare creates a new variable. Re-declaring an existing name fails.
func (s *VariableStore) Declare(name string, t Type, v Value) error {
	if _, exists := s.vars[name]; exists {
		return runtimeErr("DUPLICATE_VARIABLE", ErrDuplicateVariable).WithDetail(name)
	}
	if v.Type != t {
		return runtimeErr("TYPE_MISMATCH", ErrTypeMismatch).WithDetail(name)
	}
	s.vars[name] = &Variable{Name: name, Type: t, Value: v}
	s.order = append(s.order, name)
	return nil
}

// Assign replaces the value of a declared variable. The value's type
// must match the declared type exactly.
func (s *VariableStore) Assign(name string, v Value) error {
	variable, exists := s.vars[name]
	if !exists {
		return runtimeErr("UNKNOWN_VARIABLE", ErrUnknownVariable).WithDetail(name)
	}
	if v.Type != variable.Type {
		return runtimeErr("TYPE_MISMATCH", ErrTypeMismatch).
			WithDetail(name + " is " + variable.Type.String() + ", not " + v.Type.String())
	}
	variable.Value = v
	return nil
}

// Get returns the typed value of a declared variable.
func (s *VariableStore) Get(name string) (Value, bool) {
	variable, exists := s.vars[name]
	if !exists {
		return Value{}, false
	}
	return variable.Value, true
}

// Put declares the variable if absent, or overwrites its value if it
// already exists with the same type. Used by the input command.
func (s *VariableStore) Put(name string, t Type, v Value) error {
	if variable, exists := s.vars[name]; exists {
		if variable.Type != t {
			return runtimeErr("TYPE_MISMATCH", ErrTypeMismatch).
				WithDetail(name + " is " + variable.Type.String() + ", not " + t.String())
		}
		variable.Value = v
		return nil
	}
	return s.Declare(name, t, v)
}

// BindStr force-binds a Str variable, replacing any previous slot.
// Only the catch error variable uses this path.
func (s *VariableStore) BindStr(name, text string) {
	if variable, exists := s.vars[name]; exists {
		variable.Type = TypeStr
		variable.Value = StrValue(text)
		return
	}
	s.vars[name] = &Variable{Name: name, Type: TypeStr, Value: StrValue(text)}
	s.order = append(s.order, name)
}

// Len reports the number of declared variables.
func (s *VariableStore) Len() int { return len(s.order) }

// All yields the variables in declaration order.
func (s *VariableStore) All(yield func(Variable) bool) {
	for _, name := range s.order {
		if !yield(*s.vars[name]) {
			return
		}
	}
}
