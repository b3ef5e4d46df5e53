package parser

import "github.com/Aidix21/Conf-SH-A-R-Pr4/value"

// Constants maps constant names to their bound values for one parse.
// Bindings are made in declaration order; rebinding a name replaces the
// earlier value.
type Constants struct {
	vals  map[string]value.Value
	order []string
}

// NewConstants creates an empty constant table.
func NewConstants() *Constants {
	return &Constants{vals: make(map[string]value.Value)}
}

// Bind sets name to v.
func (c *Constants) Bind(name string, v value.Value) {
	if _, ok := c.vals[name]; !ok {
		c.order = append(c.order, name)
	}
	c.vals[name] = v
}

// Lookup returns the value bound to name. Table values are returned as deep
// copies so that no two places in a tree share a table.
func (c *Constants) Lookup(name string) (value.Value, bool) {
	v, ok := c.vals[name]
	if !ok {
		return nil, false
	}
	if t, isTable := v.(*value.Table); isTable {
		return t.Clone(), true
	}
	return v, true
}

// Has reports whether name is bound.
func (c *Constants) Has(name string) bool {
	_, ok := c.vals[name]
	return ok
}

// Names returns the bound names in first-declaration order.
func (c *Constants) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of bound names.
func (c *Constants) Len() int { return len(c.order) }
