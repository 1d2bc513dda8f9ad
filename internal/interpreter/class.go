package interpreter

import "fmt"

// Class is a Lox class value: a name, an optional superclass, and a
// name->Function method table (spec.md §3).
type Class struct {
	Name       string
	Superclass *Class // nil if no "< Super" clause
	Methods    map[string]*Function
}

func (c *Class) Type() string   { return "CLASS" }
func (c *Class) String() string { return c.Name }

// Arity is the constructor's arity: the `init` method's, if one exists,
// else 0 (spec.md §4.5's instantiation rule).
func (c *Class) Arity() int {
	if init := c.findMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call instantiates the class: a fresh Instance with an empty field table,
// running `init` (bound to the new instance) if one is declared (spec.md
// §4.5).
func (c *Class) Call(i *Interpreter, args []Value) (Value, error) {
	instance := NewInstance(c)
	if init := c.findMethod("init"); init != nil {
		if _, err := init.Bind(instance).Call(i, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// findMethod looks up name in this class's method table, then recurses up
// the superclass chain (spec.md §4.5's Get lookup order).
func (c *Class) findMethod(name string) *Function {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.findMethod(name)
	}
	return nil
}

// Instance is a runtime object: a class reference plus a field table
// (spec.md §3).
type Instance struct {
	class  *Class
	fields map[string]Value
}

// NewInstance creates an Instance of class with an empty field table.
func NewInstance(class *Class) *Instance {
	return &Instance{class: class, fields: make(map[string]Value)}
}

func (i *Instance) Type() string   { return "INSTANCE" }
func (i *Instance) String() string { return i.class.Name + " instance" }

// Get implements spec.md §4.5's property-access lookup order: instance
// fields first, then the class's (possibly inherited) methods, bound to
// this instance.
func (i *Instance) Get(name string) (Value, bool) {
	if v, ok := i.fields[name]; ok {
		return v, true
	}
	if method := i.class.findMethod(name); method != nil {
		return method.Bind(i), true
	}
	return nil, false
}

// Set stores value in the instance's field table, overwriting an existing
// field or shadowing a method of the same name (spec.md §4.5).
func (i *Instance) Set(name string, value Value) {
	i.fields[name] = value
}

func undefinedPropertyError(name string) error {
	return fmt.Errorf("undefined property '%s'", name)
}
