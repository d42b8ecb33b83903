package main

// Var is a declared local variable or parameter.
//
// Slot is the 1-based declaration index within its function. Offset is
// filled in by the generator's frame layout and is the distance below the
// frame base (rbp) at which the variable lives.
type Var struct {
	Type   *Type
	Name   string
	Slot   int
	Offset int
}

// Scope is one lexical frame: an insertion-ordered name→Var mapping and a
// link to the enclosing frame.
type Scope struct {
	outer *Scope
	names []string
	vars  map[string]*Var
}

func NewScope(outer *Scope) *Scope {
	return &Scope{outer: outer, vars: make(map[string]*Var)}
}

func (s *Scope) Outer() *Scope {
	return s.outer
}

// Set binds name in this frame, replacing any earlier binding of the same
// name in this frame.
func (s *Scope) Set(name string, v *Var) {
	if _, ok := s.vars[name]; !ok {
		s.names = append(s.names, name)
	}
	s.vars[name] = v
}

// Get returns the binding of name in this frame only.
func (s *Scope) Get(name string) *Var {
	return s.vars[name]
}

// Names lists the names bound in this frame in first-declaration order.
func (s *Scope) Names() []string {
	return s.names
}

// Lookup searches this frame and then each enclosing frame.
func (s *Scope) Lookup(name string) *Var {
	for sc := s; sc != nil; sc = sc.outer {
		if v := sc.vars[name]; v != nil {
			return v
		}
	}
	return nil
}

// ScopeChain is the parser's symbol state: the current frame plus the
// variables of the function being parsed.
type ScopeChain struct {
	top   *Scope
	vars  []*Var
	nslot int
}

func NewScopeChain() *ScopeChain {
	return &ScopeChain{top: NewScope(nil)}
}

// Current returns the innermost frame.
func (c *ScopeChain) Current() *Scope {
	return c.top
}

func (c *ScopeChain) Push() {
	c.top = NewScope(c.top)
}

func (c *ScopeChain) Pop() {
	if c.top.outer == nil {
		panic("scope chain: pop of root frame")
	}
	c.top = c.top.outer
}

// BeginFunction starts a new function: the variable list is emptied and
// slot numbering restarts at 1.
func (c *ScopeChain) BeginFunction() {
	c.vars = nil
	c.nslot = 0
}

// Declare creates a Var in the current frame with the next slot index and
// records it in the function's variable list.
func (c *ScopeChain) Declare(name string, ty *Type) *Var {
	c.nslot++
	v := &Var{Type: ty, Name: name, Slot: c.nslot}
	c.top.Set(name, v)
	c.vars = append(c.vars, v)
	return v
}

func (c *ScopeChain) Lookup(name string) *Var {
	return c.top.Lookup(name)
}

// FuncVars returns the variables declared since BeginFunction, in
// declaration order.
func (c *ScopeChain) FuncVars() []*Var {
	return c.vars
}
