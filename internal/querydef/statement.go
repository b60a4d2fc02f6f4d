package querydef

import (
	"fmt"
	"strings"

	"github.com/biyonik/sqlselect"
	"github.com/biyonik/sqlselect/dialect"
)

// Starter begins a statement. sqlselect.Select and (*sqlselect.DB).Select both fit.
type Starter func(columns ...any) *sqlselect.Statement

// Statement replays the definition through the statement chain started by start.
// A nil start uses sqlselect.Select. The statement's accumulated error is returned
// together with the statement so callers can still inspect its state.
func (d *Definition) Statement(start Starter) (*sqlselect.Statement, error) {
	if start == nil {
		start = sqlselect.Select
	}

	columns := make([]any, 0, len(d.Options)+len(d.Select))
	for _, opt := range d.Options {
		columns = append(columns, sqlselect.SelectOption(opt))
	}
	for _, c := range d.Select {
		columns = append(columns, c.entry())
	}
	s := start(columns...)

	if len(d.From) > 0 {
		sources := make([]any, 0, len(d.From))
		for _, c := range d.From {
			sources = append(sources, c.entry())
		}
		s.From(sources...)
	}

	for _, j := range d.Joins {
		if err := j.apply(s); err != nil {
			return s, err
		}
	}

	if d.Where != nil {
		n, err := d.Where.Node()
		if err != nil {
			return s, err
		}
		s.Where(n)
	}

	if len(d.GroupBy) > 0 {
		s.GroupBy(d.GroupBy...)
	}

	if d.Having != nil {
		n, err := d.Having.Node()
		if err != nil {
			return s, err
		}
		s.Having(n)
	}

	if len(d.OrderBy) > 0 {
		entries := make([]any, 0, len(d.OrderBy))
		for _, o := range d.OrderBy {
			entries = append(entries, sqlselect.Order{Column: o.Column, Direction: dialect.OrderDirection(o.Direction)})
		}
		s.OrderBy(entries...)
	}

	if d.Limit != nil {
		if d.Limit.Offset != nil {
			s.Limit(d.Limit.Count, *d.Limit.Offset)
		} else {
			s.Limit(d.Limit.Count)
		}
	}

	return s, s.Err()
}

func (c Column) entry() any {
	switch {
	case c.Raw != "":
		return sqlselect.NewRaw(c.Raw).As(c.As)
	case c.As != "":
		return sqlselect.As(c.Name, c.As)
	default:
		return c.Name
	}
}

func (j Join) apply(s *sqlselect.Statement) error {
	if (j.On == nil) == (len(j.Using) == 0) {
		return &DefinitionError{Line: j.line, Reason: "join needs exactly one of on or using"}
	}

	var on any = []string(j.Using)
	if j.On != nil {
		n, err := j.On.Node()
		if err != nil {
			return err
		}
		on = n
	}

	table := j.Table.entry()
	switch strings.ToLower(j.Kind) {
	case "", "inner":
		s.InnerJoin(table, on)
	case "left":
		s.LeftJoin(table, on)
	case "right":
		s.RightJoin(table, on)
	default:
		return &DefinitionError{Line: j.line, Reason: fmt.Sprintf("unknown join kind %q", j.Kind)}
	}
	return nil
}
