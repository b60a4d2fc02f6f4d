// Package querydef, SELECT ifadelerini YAML dosyalarından okur.
//
// Bir tanım, Statement zincirinin çağrılarını sırasıyla tarif eder:
//
//	select: [id, title]
//	from: [article]
//	joins:
//	  - kind: inner
//	    table: users
//	    using: userId
//	where:
//	  eq: {column: category, value: 5}
//	limit: {count: 10, offset: 20}
//
// Tanım, genel zincir üzerinden yeniden oynatılır; bu yüzden sıra kuralları ve
// bütün doğrulamalar kodla kurulan ifadelerle aynıdır.
//
// @author Ahmet ALTUN
// @github github.com/biyonik
// @linkedin linkedin.com/in/biyonik
// @email ahmet.altun60@gmail.com
package querydef

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDefinition is matched by every DefinitionError.
var ErrInvalidDefinition = errors.New("querydef: invalid definition")

// DefinitionError reports a structural problem in a query file.
type DefinitionError struct {
	Line   int
	Reason string
}

func (e *DefinitionError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("querydef: line %d: %s", e.Line, e.Reason)
	}
	return "querydef: " + e.Reason
}

func (e *DefinitionError) Is(target error) bool {
	return target == ErrInvalidDefinition
}

// Definition is one SELECT statement described in YAML.
type Definition struct {
	Name        string     `yaml:"name,omitempty"`
	Description string     `yaml:"description,omitempty"`
	Select      []Column   `yaml:"select,omitempty"`
	Options     []string   `yaml:"options,omitempty"`
	From        []Column   `yaml:"from,omitempty"`
	Joins       []Join     `yaml:"joins,omitempty"`
	Where       *Condition `yaml:"where,omitempty"`
	GroupBy     stringList `yaml:"group_by,omitempty"`
	Having      *Condition `yaml:"having,omitempty"`
	OrderBy     []Order    `yaml:"order_by,omitempty"`
	Limit       *Limit     `yaml:"limit,omitempty"`
}

// Column is a column or source entry: a bare name, {name, as} or {raw, as}.
type Column struct {
	Name string `yaml:"name,omitempty"`
	As   string `yaml:"as,omitempty"`
	Raw  string `yaml:"raw,omitempty"`
}

func (c *Column) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		c.Name = node.Value
		return nil
	}

	if err := checkKeys(node, "name", "as", "raw"); err != nil {
		return err
	}

	type plain Column
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	if (p.Name == "") == (p.Raw == "") {
		return &DefinitionError{Line: node.Line, Reason: "column needs exactly one of name or raw"}
	}
	*c = Column(p)
	return nil
}

// Join is one JOIN clause. Exactly one of On and Using is set.
type Join struct {
	Kind  string     `yaml:"kind,omitempty"`
	Table Column     `yaml:"table"`
	On    *Condition `yaml:"on,omitempty"`
	Using stringList `yaml:"using,omitempty"`

	line int
}

func (j *Join) UnmarshalYAML(node *yaml.Node) error {
	if err := checkKeys(node, "kind", "table", "on", "using"); err != nil {
		return err
	}

	type plain Join
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*j = Join(p)
	j.line = node.Line
	return nil
}

// Order is an ORDER BY entry: a bare column (ascending) or {column, direction}.
type Order struct {
	Column    string `yaml:"column"`
	Direction string `yaml:"direction,omitempty"`
}

func (o *Order) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		o.Column = node.Value
		return nil
	}

	if err := checkKeys(node, "column", "direction"); err != nil {
		return err
	}

	type plain Order
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*o = Order(p)
	return nil
}

// Limit holds LIMIT and the optional OFFSET.
type Limit struct {
	Count  int  `yaml:"count"`
	Offset *int `yaml:"offset,omitempty"`
}

// stringList accepts a single scalar or a sequence of scalars.
type stringList []string

func (l *stringList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*l = stringList{node.Value}
		return nil
	}

	var values []string
	if err := node.Decode(&values); err != nil {
		return err
	}
	*l = values
	return nil
}

// checkKeys rejects keys outside allowed. Nested decoders do not inherit KnownFields.
func checkKeys(node *yaml.Node, allowed ...string) error {
	if node.Kind != yaml.MappingNode {
		return &DefinitionError{Line: node.Line, Reason: "expected a mapping"}
	}
	for i := 0; i < len(node.Content); i += 2 {
		key := node.Content[i]
		if !slices.Contains(allowed, key.Value) {
			return &DefinitionError{Line: key.Line, Reason: fmt.Sprintf("unknown key %q", key.Value)}
		}
	}
	return nil
}

// Parse decodes a definition. Unknown keys are rejected.
func Parse(data []byte) (*Definition, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a definition from r. Unknown keys are rejected.
func Decode(r io.Reader) (*Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &DefinitionError{Reason: "document is empty"}
		}
		return nil, fmt.Errorf("querydef: parse: %w", err)
	}
	return &def, nil
}

// Load reads and parses the definition at path on fs.
func Load(fs afero.Fs, path string) (*Definition, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("querydef: read %s: %w", path, err)
	}
	return Parse(data)
}
