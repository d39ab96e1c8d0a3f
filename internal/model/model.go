// Package model is the span-free view of a parsed program that renderers
// and the diagram emitter consume.
package model

import (
	"strings"
)

// Attribute is a member or parameter.
type Attribute struct {
	Name string  `json:"name" msgpack:"name"`
	Type *string `json:"type,omitempty" msgpack:"type,omitempty"`
}

func (a Attribute) String() string {
	if a.Type == nil {
		return a.Name
	}
	return a.Name + ": " + *a.Type
}

type StatementKind uint8

const (
	StmtCall StatementKind = iota
	StmtAssign
)

// Statement is one element of a flattened method body. For StmtAssign,
// Name is the target and Expr holds the assigned call.
type Statement struct {
	Kind   StatementKind `json:"kind" msgpack:"kind"`
	Name   string        `json:"name,omitempty" msgpack:"name,omitempty"`
	Expr   []Statement   `json:"expr,omitempty" msgpack:"expr,omitempty"`
	Root   string        `json:"root,omitempty" msgpack:"root,omitempty"`
	Access *string       `json:"access,omitempty" msgpack:"access,omitempty"`
	Args   []string      `json:"args,omitempty" msgpack:"args,omitempty"`
}

type Method struct {
	Name       string      `json:"name" msgpack:"name"`
	Parameters []Attribute `json:"parameters,omitempty" msgpack:"parameters,omitempty"`
	RetType    *string     `json:"ret_type,omitempty" msgpack:"ret_type,omitempty"`
	Body       []Statement `json:"body,omitempty" msgpack:"body,omitempty"`
}

// Signature renders name(params): Ret.
func (m Method) Signature() string {
	params := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		params[i] = p.String()
	}
	sig := m.Name + "(" + strings.Join(params, ", ") + ")"
	if m.RetType != nil {
		sig += ": " + *m.RetType
	}
	return sig
}

type Class struct {
	Name       string      `json:"name" msgpack:"name"`
	Attributes []Attribute `json:"attributes,omitempty" msgpack:"attributes,omitempty"`
	Methods    []Method    `json:"methods,omitempty" msgpack:"methods,omitempty"`
}

// Call is a function call element of an annotated block.
type Call struct {
	Root   string   `json:"root" msgpack:"root"`
	Access *string  `json:"access,omitempty" msgpack:"access,omitempty"`
	Args   []string `json:"args,omitempty" msgpack:"args,omitempty"`
}

type Block struct {
	Annotation string `json:"annotation" msgpack:"annotation"`
	Calls      []Call `json:"calls" msgpack:"calls"`
}

// Model groups classes by name and blocks by annotation tag.
type Model struct {
	Classes map[string]*Class  `json:"classes" msgpack:"classes"`
	Order   []string           `json:"order" msgpack:"order"`
	Blocks  map[string][]Block `json:"blocks,omitempty" msgpack:"blocks,omitempty"`
}

func New() *Model {
	return &Model{
		Classes: make(map[string]*Class),
		Blocks:  make(map[string][]Block),
	}
}

// ClassList returns the classes in the order their names first appeared.
func (m *Model) ClassList() []*Class {
	out := make([]*Class, 0, len(m.Order))
	for _, name := range m.Order {
		if c, ok := m.Classes[name]; ok {
			out = append(out, c)
		}
	}
	return out
}

// AddClass stores c, replacing an earlier class with the same name.
func (m *Model) AddClass(c *Class) {
	if _, seen := m.Classes[c.Name]; !seen {
		m.Order = append(m.Order, c.Name)
	}
	m.Classes[c.Name] = c
}

// Merge adds the contents of other, later definitions winning.
func (m *Model) Merge(other *Model) {
	for _, c := range other.ClassList() {
		m.AddClass(c)
	}
	for tag, blocks := range other.Blocks {
		m.Blocks[tag] = append(m.Blocks[tag], blocks...)
	}
}
