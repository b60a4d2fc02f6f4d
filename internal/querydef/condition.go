package querydef

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/biyonik/sqlselect/cond"
)

// operators lists the keys a condition mapping may use. Exactly one is allowed.
var operators = []string{
	"and", "or", "not",
	"eq", "ne", "lt", "gt", "lte", "gte",
	"between", "in", "is_null", "is_not_null", "like",
}

// operandKeys lists the keys allowed inside a leaf operand mapping.
var operandKeys = map[string][]string{
	"eq":      {"column", "rhs", "value"},
	"ne":      {"column", "rhs", "value"},
	"lt":      {"column", "rhs", "value"},
	"gt":      {"column", "rhs", "value"},
	"lte":     {"column", "rhs", "value"},
	"gte":     {"column", "rhs", "value"},
	"between": {"column", "start", "end"},
	"in":      {"column", "values"},
	"like":    {"column", "pattern"},
}

// Condition is one node of a condition tree. Exactly one field is set.
type Condition struct {
	And       []*Condition `yaml:"and,omitempty"`
	Or        []*Condition `yaml:"or,omitempty"`
	Not       *Condition   `yaml:"not,omitempty"`
	Eq        *Comparison  `yaml:"eq,omitempty"`
	Ne        *Comparison  `yaml:"ne,omitempty"`
	Lt        *Comparison  `yaml:"lt,omitempty"`
	Gt        *Comparison  `yaml:"gt,omitempty"`
	Lte       *Comparison  `yaml:"lte,omitempty"`
	Gte       *Comparison  `yaml:"gte,omitempty"`
	Between   *Between     `yaml:"between,omitempty"`
	In        *In          `yaml:"in,omitempty"`
	IsNull    string       `yaml:"is_null,omitempty"`
	IsNotNull string       `yaml:"is_not_null,omitempty"`
	Like      *Like        `yaml:"like,omitempty"`

	line int
}

func (c *Condition) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return &DefinitionError{Line: node.Line, Reason: "condition must be a mapping with exactly one operator"}
	}

	key := node.Content[0]
	if !slices.Contains(operators, key.Value) {
		return &DefinitionError{Line: key.Line, Reason: fmt.Sprintf("unknown condition operator %q", key.Value)}
	}
	if keys, ok := operandKeys[key.Value]; ok {
		if err := checkKeys(node.Content[1], keys...); err != nil {
			return err
		}
	}

	type plain Condition
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*c = Condition(p)
	c.line = node.Line
	return nil
}

// Comparison is the operand of eq/ne/lt/gt/lte/gte.
//
// With rhs the node compares two columns. With value it is bound; `value: null`
// binds SQL NULL. Without either the node stays unbound.
type Comparison struct {
	Column string    `yaml:"column"`
	Rhs    string    `yaml:"rhs,omitempty"`
	Value  yaml.Node `yaml:"value,omitempty"`
}

// Between is the operand of between.
type Between struct {
	Column string `yaml:"column"`
	Start  any    `yaml:"start"`
	End    any    `yaml:"end"`
}

// In is the operand of in. Without values the node stays unbound.
type In struct {
	Column string `yaml:"column"`
	Values []any  `yaml:"values,omitempty"`
}

// Like is the operand of like.
type Like struct {
	Column  string `yaml:"column"`
	Pattern any    `yaml:"pattern"`
}

type comparisonCtor func(column string, rhs ...string) *cond.Comparison

// Node converts the definition into a condition tree.
func (c *Condition) Node() (cond.Node, error) {
	switch {
	case c.And != nil:
		return c.group(cond.And, c.And)
	case c.Or != nil:
		return c.group(cond.Or, c.Or)
	case c.Not != nil:
		child, err := c.Not.Node()
		if err != nil {
			return nil, err
		}
		return cond.Not(child), nil
	case c.Eq != nil:
		return c.Eq.node(cond.Eq, c.line)
	case c.Ne != nil:
		return c.Ne.node(cond.Ne, c.line)
	case c.Lt != nil:
		return c.Lt.node(cond.Lt, c.line)
	case c.Gt != nil:
		return c.Gt.node(cond.Gt, c.line)
	case c.Lte != nil:
		return c.Lte.node(cond.Lte, c.line)
	case c.Gte != nil:
		return c.Gte.node(cond.Gte, c.line)
	case c.Between != nil:
		return cond.Between(c.Between.Column, c.Between.Start, c.Between.End), nil
	case c.In != nil:
		if c.In.Values == nil {
			return cond.In(c.In.Column), nil
		}
		return cond.In(c.In.Column).Bind(c.In.Values), nil
	case c.IsNull != "":
		return cond.IsNull(c.IsNull), nil
	case c.IsNotNull != "":
		return cond.IsNotNull(c.IsNotNull), nil
	case c.Like != nil:
		return cond.Like(c.Like.Column, c.Like.Pattern), nil
	}
	return nil, &DefinitionError{Line: c.line, Reason: "condition has an empty operand"}
}

func (c *Condition) group(combine func(...cond.Node) *cond.Group, children []*Condition) (cond.Node, error) {
	nodes := make([]cond.Node, 0, len(children))
	for _, child := range children {
		if child == nil {
			return nil, &DefinitionError{Line: c.line, Reason: "group contains an empty condition"}
		}
		n, err := child.Node()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return combine(nodes...), nil
}

func (cmp *Comparison) node(ctor comparisonCtor, line int) (cond.Node, error) {
	hasValue := !cmp.Value.IsZero()

	if cmp.Rhs != "" {
		if hasValue {
			return nil, &DefinitionError{Line: line, Reason: "comparison takes either rhs or value, not both"}
		}
		return ctor(cmp.Column, cmp.Rhs), nil
	}

	n := ctor(cmp.Column)
	if !hasValue {
		return n, nil
	}

	var v any
	if err := cmp.Value.Decode(&v); err != nil {
		return nil, &DefinitionError{Line: cmp.Value.Line, Reason: err.Error()}
	}
	return n.Bind(v), nil
}
